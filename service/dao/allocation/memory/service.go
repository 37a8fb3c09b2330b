package memory

import (
	"context"
	"sync"

	"github.com/viant/allocor/model/allocation"
	"github.com/viant/allocor/service/dao"
	"github.com/viant/allocor/service/dao/criteria"
)

// Service implements an in-memory, thread-safe allocation registry. Records
// are snapshot isolated: Save stores a private copy and Load/List return
// copies, so a reader can never observe a writer's transition mid-flight.
// Writers mutate their own copy and save it back.
type Service struct {
	allocations map[string]*allocation.Allocation
	mux         sync.RWMutex
}

var _ dao.Service[string, allocation.Allocation] = (*Service)(nil)

func (s *Service) Save(_ context.Context, a *allocation.Allocation) error {
	if a == nil {
		return dao.ErrNilEntity
	}
	if a.ID == "" {
		return dao.ErrInvalidID
	}

	s.mux.Lock()
	defer s.mux.Unlock()
	s.allocations[a.ID] = a.Clone()
	return nil
}

func (s *Service) Load(_ context.Context, id string) (*allocation.Allocation, error) {
	if id == "" {
		return nil, dao.ErrInvalidID
	}

	s.mux.RLock()
	defer s.mux.RUnlock()

	a, ok := s.allocations[id]
	if !ok {
		return nil, dao.ErrNotFound
	}
	return a.Clone(), nil
}

func (s *Service) Delete(_ context.Context, id string) error {
	if id == "" {
		return dao.ErrInvalidID
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	if _, ok := s.allocations[id]; !ok {
		return dao.ErrNotFound
	}
	delete(s.allocations, id)
	return nil
}

func (s *Service) List(_ context.Context, parameters ...*dao.Parameter) ([]*allocation.Allocation, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	out := make([]*allocation.Allocation, 0, len(s.allocations))
	for _, a := range s.allocations {
		fields := map[string]string{
			"State": string(a.State),
			"JobID": a.JobID,
		}
		if !criteria.Matches(fields, parameters) {
			continue
		}
		out = append(out, a.Clone())
	}
	return out, nil
}

func New() *Service {
	return &Service{allocations: map[string]*allocation.Allocation{}}
}

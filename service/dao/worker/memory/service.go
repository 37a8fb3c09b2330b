package memory

import (
	"context"
	"sync"

	"github.com/viant/allocor/model/worker"
	"github.com/viant/allocor/service/dao"
	"github.com/viant/allocor/service/dao/criteria"
)

// Service implements an in-memory, thread-safe worker node store keyed by
// worker name. Records are snapshot isolated: Save stores a private copy and
// Load/List return copies, so readers never race a concurrent status change.
type Service struct {
	workers map[string]*worker.Worker
	mux     sync.RWMutex
}

var _ dao.Service[string, worker.Worker] = (*Service)(nil)

func (s *Service) Save(_ context.Context, w *worker.Worker) error {
	if w == nil {
		return dao.ErrNilEntity
	}
	if w.Name == "" {
		return dao.ErrInvalidID
	}

	s.mux.Lock()
	defer s.mux.Unlock()
	s.workers[w.Name] = w.Clone()
	return nil
}

func (s *Service) Load(_ context.Context, name string) (*worker.Worker, error) {
	if name == "" {
		return nil, dao.ErrInvalidID
	}

	s.mux.RLock()
	defer s.mux.RUnlock()

	w, ok := s.workers[name]
	if !ok {
		return nil, dao.ErrNotFound
	}
	return w.Clone(), nil
}

func (s *Service) Delete(_ context.Context, name string) error {
	if name == "" {
		return dao.ErrInvalidID
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	if _, ok := s.workers[name]; !ok {
		return dao.ErrNotFound
	}
	delete(s.workers, name)
	return nil
}

func (s *Service) List(_ context.Context, parameters ...*dao.Parameter) ([]*worker.Worker, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	out := make([]*worker.Worker, 0, len(s.workers))
	for _, w := range s.workers {
		fields := map[string]string{
			"Type":   string(w.Type),
			"Status": string(w.Status),
		}
		if !criteria.Matches(fields, parameters) {
			continue
		}
		out = append(out, w.Clone())
	}
	return out, nil
}

func New() *Service {
	return &Service{workers: map[string]*worker.Worker{}}
}

package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/allocor/model/allocation"
	"github.com/viant/allocor/service/dao"
)

func TestService_CRUD(t *testing.T) {
	service := New()
	ctx := context.Background()

	record := allocation.New("alloc-1", "j1", nil, 2, allocation.PriorityNormal, 3600, nil)
	require.Nil(t, service.Save(ctx, record))

	loaded, err := service.Load(ctx, "alloc-1")
	require.Nil(t, err)
	assert.Equal(t, record, loaded)

	_, err = service.Load(ctx, "alloc-missing")
	assert.Equal(t, dao.ErrNotFound, err)

	assert.Nil(t, service.Delete(ctx, "alloc-1"))
	assert.Equal(t, dao.ErrNotFound, service.Delete(ctx, "alloc-1"))
}

func TestService_Save_Validation(t *testing.T) {
	service := New()
	ctx := context.Background()

	assert.Equal(t, dao.ErrNilEntity, service.Save(ctx, nil))
	assert.Equal(t, dao.ErrInvalidID, service.Save(ctx, &allocation.Allocation{}))

	_, err := service.Load(ctx, "")
	assert.Equal(t, dao.ErrInvalidID, err)
	assert.Equal(t, dao.ErrInvalidID, service.Delete(ctx, ""))
}

func TestService_SnapshotIsolation(t *testing.T) {
	service := New()
	ctx := context.Background()

	record := allocation.New("alloc-1", "j1", nil, 1, allocation.PriorityNormal, 3600, nil)
	require.Nil(t, service.Save(ctx, record))

	// Mutating the saved pointer after Save does not leak into the store.
	record.State = allocation.StateReleasing
	loaded, err := service.Load(ctx, "alloc-1")
	require.Nil(t, err)
	assert.Equal(t, allocation.StatePending, loaded.State)

	// Mutating a loaded copy does not leak into the store either.
	loaded.State = allocation.StateFailed
	loaded.Metadata["error"] = "poisoned"
	again, err := service.Load(ctx, "alloc-1")
	require.Nil(t, err)
	assert.Equal(t, allocation.StatePending, again.State)
	assert.NotContains(t, again.Metadata, "error")

	// Listed records are copies as well.
	listed, err := service.List(ctx)
	require.Nil(t, err)
	require.Len(t, listed, 1)
	listed[0].JobID = "other"
	final, err := service.Load(ctx, "alloc-1")
	require.Nil(t, err)
	assert.Equal(t, "j1", final.JobID)
}

func TestService_List(t *testing.T) {
	service := New()
	ctx := context.Background()

	active := allocation.New("alloc-1", "j1", nil, 1, allocation.PriorityNormal, 3600, nil)
	active.Activate()
	released := allocation.New("alloc-2", "j1", nil, 1, allocation.PriorityNormal, 3600, nil)
	released.Release()
	otherJob := allocation.New("alloc-3", "j2", nil, 1, allocation.PriorityNormal, 3600, nil)
	otherJob.Activate()

	for _, record := range []*allocation.Allocation{active, released, otherJob} {
		require.Nil(t, service.Save(ctx, record))
	}

	all, err := service.List(ctx)
	require.Nil(t, err)
	assert.Len(t, all, 3)

	activeOnly, err := service.List(ctx, dao.NewParameter("State", string(allocation.StateActive)))
	require.Nil(t, err)
	assert.Len(t, activeOnly, 2)

	activeJ1, err := service.List(ctx,
		dao.NewParameter("State", string(allocation.StateActive)),
		dao.NewParameter("JobID", "j1"))
	require.Nil(t, err)
	require.Len(t, activeJ1, 1)
	assert.Equal(t, "alloc-1", activeJ1[0].ID)

	// Unknown filter fields are ignored rather than excluding everything.
	ignored, err := service.List(ctx, dao.NewParameter("Unknown", "x"))
	require.Nil(t, err)
	assert.Len(t, ignored, 3)
}

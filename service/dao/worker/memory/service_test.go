package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/allocor/model/worker"
	"github.com/viant/allocor/service/dao"
)

func TestService_CRUD(t *testing.T) {
	service := New()
	ctx := context.Background()

	record := &worker.Worker{Name: "node-1", Type: worker.TypePermanent, Status: worker.StatusReady}
	require.Nil(t, service.Save(ctx, record))

	loaded, err := service.Load(ctx, "node-1")
	require.Nil(t, err)
	assert.Equal(t, record, loaded)

	assert.Equal(t, dao.ErrNilEntity, service.Save(ctx, nil))
	assert.Equal(t, dao.ErrInvalidID, service.Save(ctx, &worker.Worker{}))

	_, err = service.Load(ctx, "node-missing")
	assert.Equal(t, dao.ErrNotFound, err)

	assert.Nil(t, service.Delete(ctx, "node-1"))
	assert.Equal(t, dao.ErrNotFound, service.Delete(ctx, "node-1"))
}

func TestService_SnapshotIsolation(t *testing.T) {
	service := New()
	ctx := context.Background()

	record := &worker.Worker{Name: "burst-1", Type: worker.TypeBurst, Status: worker.StatusProvisioning}
	require.Nil(t, service.Save(ctx, record))

	// Mutating the saved pointer after Save does not leak into the store.
	record.Status = worker.StatusDraining
	loaded, err := service.Load(ctx, "burst-1")
	require.Nil(t, err)
	assert.Equal(t, worker.StatusProvisioning, loaded.Status)

	// Mutating a loaded copy does not leak into the store either.
	loaded.Status = worker.StatusNotReady
	again, err := service.Load(ctx, "burst-1")
	require.Nil(t, err)
	assert.Equal(t, worker.StatusProvisioning, again.Status)

	listed, err := service.List(ctx)
	require.Nil(t, err)
	require.Len(t, listed, 1)
	listed[0].Status = worker.StatusNotReady
	final, err := service.Load(ctx, "burst-1")
	require.Nil(t, err)
	assert.Equal(t, worker.StatusProvisioning, final.Status)
}

func TestService_List(t *testing.T) {
	service := New()
	ctx := context.Background()

	records := []*worker.Worker{
		{Name: "perm-1", Type: worker.TypePermanent, Status: worker.StatusReady},
		{Name: "burst-1", Type: worker.TypeBurst, Status: worker.StatusProvisioning},
		{Name: "burst-2", Type: worker.TypeBurst, Status: worker.StatusDraining},
	}
	for _, record := range records {
		require.Nil(t, service.Save(ctx, record))
	}

	all, err := service.List(ctx)
	require.Nil(t, err)
	assert.Len(t, all, 3)

	burst, err := service.List(ctx, dao.NewParameter("Type", string(worker.TypeBurst)))
	require.Nil(t, err)
	assert.Len(t, burst, 2)

	draining, err := service.List(ctx,
		dao.NewParameter("Type", string(worker.TypeBurst)),
		dao.NewParameter("Status", string(worker.StatusDraining)))
	require.Nil(t, err)
	require.Len(t, draining, 1)
	assert.Equal(t, "burst-2", draining[0].Name)
}

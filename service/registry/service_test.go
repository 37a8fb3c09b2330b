package registry

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/allocor/model/allocation"
	"github.com/viant/allocor/service/ledger"
)

func TestService_Acquire_Reuse(t *testing.T) {
	capacityLedger := ledger.New(ledger.DefaultConfig())
	service := New(capacityLedger, DefaultConfig())

	first := service.Acquire("github")
	second := service.Acquire("github")

	assert.Equal(t, "github", first.Name)
	assert.Equal(t, allocation.ServiceStatusRunning, first.Status)
	assert.Equal(t, 9000, first.Port)
	assert.Equal(t, "http://localhost:9000", first.Endpoint)
	assert.Same(t, first, second, "second acquire must reuse the running instance")

	snapshot := capacityLedger.Snapshot()
	assert.Equal(t, []string{"github"}, snapshot.RunningServices)
}

func TestService_Acquire_DistinctNames(t *testing.T) {
	capacityLedger := ledger.New(ledger.DefaultConfig())
	service := New(capacityLedger, DefaultConfig())

	github := service.Acquire("github")
	filesystem := service.Acquire("filesystem")

	assert.NotEqual(t, github.Port, filesystem.Port)
	assert.NotEqual(t, github.Endpoint, filesystem.Endpoint)
	assert.Equal(t, 9001, filesystem.Port)
	assert.Len(t, service.Instances(), 2)
}

func TestService_Acquire_PortWrap(t *testing.T) {
	capacityLedger := ledger.New(ledger.DefaultConfig())
	service := New(capacityLedger, Config{PortRangeStart: 9000, PortRangeSize: 3})

	for i := 0; i < 3; i++ {
		instance := service.Acquire(fmt.Sprintf("svc-%d", i))
		assert.Equal(t, 9000+i, instance.Port)
	}
	// Pool exhausted: the index wraps and the port is reissued.
	wrapped := service.Acquire("svc-3")
	assert.Equal(t, 9000, wrapped.Port)
}

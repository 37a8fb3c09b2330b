package provisioner

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/allocor/model/allocation"
)

func TestService_Synthesize(t *testing.T) {
	service := New(DefaultConfig())

	workers := service.Synthesize(3, "job-1")
	assert.Len(t, workers, 3)
	for i, w := range workers {
		assert.Equal(t, allocation.WorkerStatusActive, w.Status)
		assert.Equal(t, 1.0, w.CPU)
		assert.Equal(t, 2048, w.MemoryMB)
		assert.Equal(t, fmt.Sprintf("http://localhost:%d", 8000+i), w.Endpoint)
	}
	assert.Equal(t, "worker-job-1-000", workers[0].ID)
	assert.Equal(t, "worker-job-1-002", workers[2].ID)
}

func TestService_Synthesize_BatchSpacing(t *testing.T) {
	service := New(DefaultConfig())

	first := service.Synthesize(2, "job-a")
	second := service.Synthesize(2, "job-b")

	assert.Equal(t, "http://localhost:8000", first[0].Endpoint)
	assert.Equal(t, "http://localhost:8001", first[1].Endpoint)
	assert.Equal(t, "http://localhost:8010", second[0].Endpoint)
	assert.Equal(t, "http://localhost:8011", second[1].Endpoint)
}

func TestService_Shape(t *testing.T) {
	service := New(Config{WorkerCPU: 2.0, WorkerMemoryMB: 4096, BasePort: 7000})
	cpu, memory := service.Shape()
	assert.Equal(t, 2.0, cpu)
	assert.Equal(t, 4096, memory)
}

package sensorrepo

import (
	"context"
	"sync"

	"github.com/1DS22AIOO3adarsh/Clear-sky-challenge/internal/domain/pollution"
)

// MemoryRepository is an in-memory SampleSource used for tests/dev.
type MemoryRepository struct {
	mu      sync.RWMutex
	samples []pollution.SensorSample
}

// NewMemoryRepository constructs an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Set replaces the stored samples.
func (r *MemoryRepository) Set(samples []pollution.SensorSample) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.samples = make([]pollution.SensorSample, len(samples))
	copy(r.samples, samples)
}

// Samples returns a copy of the stored samples.
func (r *MemoryRepository) Samples(_ context.Context) ([]pollution.SensorSample, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]pollution.SensorSample, len(r.samples))
	copy(out, r.samples)
	return out, nil
}

var _ pollution.SampleSource = (*MemoryRepository)(nil)

package sequence

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/salonkit/backend/internal/domain/shared"
)

// InMemorySequenceGenerator implements shared.SequenceGenerator with a
// process-local map. Suitable for single-instance deployments and testing.
// WARNING: counters are not shared across process instances and reset on
// restart, which breaks number uniqueness in distributed deployments.
type InMemorySequenceGenerator struct {
	mu       sync.Mutex
	counters map[string]int64
}

// NewInMemorySequenceGenerator creates a new in-memory sequence generator
func NewInMemorySequenceGenerator() *InMemorySequenceGenerator {
	return &InMemorySequenceGenerator{
		counters: make(map[string]int64),
	}
}

// Next returns the next number in the named sequence for a business
func (g *InMemorySequenceGenerator) Next(ctx context.Context, businessID uuid.UUID, name string) (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	key := fmt.Sprintf("%s:%s", businessID, name)
	g.counters[key]++
	return g.counters[key], nil
}

// Ensure InMemorySequenceGenerator implements SequenceGenerator
var _ shared.SequenceGenerator = (*InMemorySequenceGenerator)(nil)

package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// ScopeLocker is an in-process (event, service) lock for tests and
// single-node deployments. Each scope is a one-slot semaphore so a
// blocked Acquire can still honor ctx cancellation.
type ScopeLocker struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

func NewScopeLocker() *ScopeLocker {
	return &ScopeLocker{locks: make(map[string]chan struct{})}
}

func (l *ScopeLocker) Acquire(ctx context.Context, eventID uuid.UUID, service string) (func(), error) {
	key := fmt.Sprintf("%s:%s", eventID.String(), service)

	l.mu.Lock()
	sem, ok := l.locks[key]
	if !ok {
		sem = make(chan struct{}, 1)
		l.locks[key] = sem
	}
	l.mu.Unlock()

	select {
	case sem <- struct{}{}:
		return func() { <-sem }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

package service

import (
	"sync"

	"github.com/psahay/classwork/internal/models"
)

// ScopeLocks serializes mutations per scope. Commands touching a scope
// take its lock for the duration of the call, so validate-then-write
// sequences are atomic; reads go straight to the store, which hands out
// consistent snapshots on its own.
type ScopeLocks struct {
	mu sync.Map // models.Scope -> *sync.Mutex
}

// NewScopeLocks creates an empty lock table.
func NewScopeLocks() *ScopeLocks {
	return &ScopeLocks{}
}

// Lock acquires the lock for scope and returns the unlock function.
func (l *ScopeLocks) Lock(scope models.Scope) func() {
	v, _ := l.mu.LoadOrStore(scope, &sync.Mutex{})
	m := v.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

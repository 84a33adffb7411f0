// Package memory keeps applications in process memory. It backs local
// runs and tests where no database is configured.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fbcbank/card-intake/internal/domain"
	"github.com/fbcbank/card-intake/internal/service/application"
)

// ApplicationRepo is a mutex-guarded map of applications by id.
type ApplicationRepo struct {
	mu   sync.RWMutex
	apps map[string]domain.Application
}

func NewApplicationRepo() *ApplicationRepo {
	return &ApplicationRepo{apps: make(map[string]domain.Application)}
}

func (r *ApplicationRepo) Create(_ context.Context, a *domain.Application) (string, error) {
	if a.ID != "" {
		return "", application.ErrAlreadyPersisted
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.New().String()
	for _, taken := r.apps[id]; taken; _, taken = r.apps[id] {
		id = uuid.New().String()
	}
	a.ID = id
	a.CreatedAt = time.Now().UTC()
	r.apps[id] = *a
	return id, nil
}

// Get returns a copy of the stored record.
func (r *ApplicationRepo) Get(id string) (domain.Application, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.apps[id]
	return a, ok
}

func (r *ApplicationRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.apps)
}

func (r *ApplicationRepo) Ping(context.Context) error { return nil }

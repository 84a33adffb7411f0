package application

import (
	"context"

	"github.com/fbcbank/card-intake/internal/domain"
	"github.com/fbcbank/card-intake/internal/notify"
	"github.com/fbcbank/card-intake/internal/schema"
)

// Repository defines the data access contract for applications.
// Implementations must be safe for concurrent use.
type Repository interface {
	// Create assigns a new unique id, stores the record and returns the id.
	// Returns ErrAlreadyPersisted if the record already carries an id.
	Create(ctx context.Context, a *domain.Application) (string, error)
}

// Renderer turns a payload into document bytes.
type Renderer interface {
	Render(v schema.Values) ([]byte, error)
}

// DocumentStore keeps rendered documents.
type DocumentStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

// Composer builds the confirmation email.
type Composer interface {
	Compose(c notify.Confirmation) (notify.Message, error)
}

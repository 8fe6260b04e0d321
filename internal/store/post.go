package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/posts-api/internal/domain"
)

// PostStore defines the interface for post persistence.
// Implementations must be safe for concurrent use.
type PostStore interface {
	// Create saves a new post to the store.
	// Returns ErrInvalidEntity if the post fails domain validation and
	// ErrPostExists if its ID is already taken.
	Create(ctx context.Context, post *domain.Post) error

	// GetByID retrieves a post by its unique ID.
	// Returns ErrPostNotFound if the post does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)

	// List returns posts ordered by creation time, newest first.
	// Returns an empty slice when offset is past the end.
	List(ctx context.Context, limit, offset int) ([]*domain.Post, error)

	// Update replaces the title, content and updated_at of an existing post.
	// Returns ErrPostNotFound if the post does not exist.
	Update(ctx context.Context, post *domain.Post) error

	// Delete removes a post by its unique ID.
	// Returns ErrPostNotFound if the post does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error

	// Close releases the store's connections.
	Close() error
}

package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/posts-api/internal/domain"
	"github.com/phrazzld/posts-api/internal/store"
)

// PostStore implements store.PostStore in memory.
// Safe for concurrent use. Posts are copied on the way in and out so callers
// cannot mutate stored state through a pointer.
type PostStore struct {
	mu    sync.RWMutex
	posts map[uuid.UUID]domain.Post
}

// NewPostStore creates an empty in-memory store.
func NewPostStore() *PostStore {
	return &PostStore{posts: make(map[uuid.UUID]domain.Post)}
}

// Ensure PostStore implements store.PostStore.
var _ store.PostStore = (*PostStore)(nil)

// Create saves a new post.
func (s *PostStore) Create(ctx context.Context, post *domain.Post) error {
	if err := post.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.posts[post.ID]; exists {
		return store.ErrPostExists
	}
	s.posts[post.ID] = *post
	return nil
}

// GetByID retrieves a post by ID.
func (s *PostStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, store.ErrPostNotFound
	}
	return &p, nil
}

// List returns posts newest first.
func (s *PostStore) List(ctx context.Context, limit, offset int) ([]*domain.Post, error) {
	s.mu.RLock()
	all := make([]domain.Post, 0, len(s.posts))
	for _, p := range s.posts {
		all = append(all, p)
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID.String() > all[j].ID.String()
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	out := make([]*domain.Post, 0, limit)
	for i := offset; i < len(all) && len(out) < limit; i++ {
		p := all[i]
		out = append(out, &p)
	}
	return out, nil
}

// Update replaces an existing post's mutable fields.
func (s *PostStore) Update(ctx context.Context, post *domain.Post) error {
	if err := post.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.posts[post.ID]
	if !ok {
		return store.ErrPostNotFound
	}
	existing.Title = post.Title
	existing.Content = post.Content
	existing.UpdatedAt = post.UpdatedAt
	s.posts[post.ID] = existing
	return nil
}

// Delete removes a post.
func (s *PostStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return store.ErrPostNotFound
	}
	delete(s.posts, id)
	return nil
}

// Ping always succeeds.
func (s *PostStore) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op.
func (s *PostStore) Close() error {
	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/posts-api/internal/domain"
	"github.com/phrazzld/posts-api/internal/events"
	"github.com/phrazzld/posts-api/internal/platform/logger"
	"github.com/phrazzld/posts-api/internal/store"
)

// Pagination bounds for List.
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// PostService provides post operations.
type PostService interface {
	// Create stores a new post.
	Create(ctx context.Context, title, content string) (*domain.Post, error)

	// Get retrieves a post by its ID.
	Get(ctx context.Context, id uuid.UUID) (*domain.Post, error)

	// List returns a page of posts, newest first. Out-of-range limit and
	// offset are clamped.
	List(ctx context.Context, limit, offset int) ([]*domain.Post, error)

	// Update applies a partial update and returns the stored result.
	Update(ctx context.Context, id uuid.UUID, patch domain.PostPatch) (*domain.Post, error)

	// Delete removes a post.
	Delete(ctx context.Context, id uuid.UUID) error
}

// PostServiceError wraps unexpected errors from the post service with context.
type PostServiceError struct {
	// Operation is the operation that failed (e.g., "create_post")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for PostServiceError.
func (e *PostServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("post service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("post service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *PostServiceError) Unwrap() error {
	return e.Err
}

// NewPostServiceError wraps err with operation context. Expected conditions
// (not found, duplicate, validation) are returned unwrapped.
func NewPostServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, store.ErrDuplicate),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation):
		return err
	}

	return &PostServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// postServiceImpl implements the PostService interface
type postServiceImpl struct {
	posts   store.PostStore
	emitter events.EventEmitter
	logger  *slog.Logger
}

// PostServiceOption configures the post service.
type PostServiceOption func(*postServiceImpl)

// WithEventEmitter publishes a PostEvent after every successful write.
func WithEventEmitter(e events.EventEmitter) PostServiceOption {
	return func(s *postServiceImpl) {
		s.emitter = e
	}
}

// NewPostService creates a PostService backed by posts.
func NewPostService(posts store.PostStore, logger *slog.Logger, opts ...PostServiceOption) (PostService, error) {
	if posts == nil {
		return nil, errors.New("post store cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	s := &postServiceImpl{
		posts:  posts,
		logger: logger.With(slog.String("component", "post_service")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// emit publishes an event for a write that has already been stored. Handler
// failures are logged and never reported to the caller.
func (s *postServiceImpl) emit(ctx context.Context, eventType events.Type, postID uuid.UUID) {
	if s.emitter == nil {
		return
	}
	if err := s.emitter.EmitEvent(ctx, events.NewPostEvent(eventType, postID)); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("post event handler failed",
			slog.String("event_type", string(eventType)),
			slog.String("post_id", postID.String()),
			slog.String("error", err.Error()))
	}
}

func (s *postServiceImpl) Create(ctx context.Context, title, content string) (*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	post, err := domain.NewPost(title, content)
	if err != nil {
		log.Debug("rejected invalid post", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, NewPostServiceError("create_post", "failed to store post", err)
	}

	log.Debug("post created", slog.String("post_id", post.ID.String()))
	s.emit(ctx, events.PostCreated, post.ID)
	return post, nil
}

func (s *postServiceImpl) Get(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, NewPostServiceError("get_post", "failed to load post", err)
	}
	return post, nil
}

func (s *postServiceImpl) List(ctx context.Context, limit, offset int) ([]*domain.Post, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	posts, err := s.posts.List(ctx, limit, offset)
	if err != nil {
		return nil, NewPostServiceError("list_posts", "failed to list posts", err)
	}
	return posts, nil
}

func (s *postServiceImpl) Update(ctx context.Context, id uuid.UUID, patch domain.PostPatch) (*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, NewPostServiceError("update_post", "failed to load post", err)
	}

	if patch.IsEmpty() {
		return post, nil
	}

	if err := post.Apply(patch); err != nil {
		log.Debug("rejected invalid post update",
			slog.String("post_id", id.String()),
			slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, NewPostServiceError("update_post", "failed to store post", err)
	}

	log.Debug("post updated", slog.String("post_id", id.String()))
	s.emit(ctx, events.PostUpdated, id)
	return post, nil
}

func (s *postServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.posts.Delete(ctx, id); err != nil {
		return NewPostServiceError("delete_post", "failed to delete post", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("post deleted", slog.String("post_id", id.String()))
	s.emit(ctx, events.PostDeleted, id)
	return nil
}

package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Type names a post lifecycle change.
type Type string

// Post lifecycle event types.
const (
	PostCreated Type = "post.created"
	PostUpdated Type = "post.updated"
	PostDeleted Type = "post.deleted"
)

// PostEvent records one change to one post.
type PostEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is the kind of change
	Type Type `json:"type"`

	// PostID identifies the post that changed
	PostID uuid.UUID `json:"post_id"`

	// OccurredAt is when the change was stored
	OccurredAt time.Time `json:"occurred_at"`
}

// NewPostEvent creates a PostEvent of the given type for postID.
func NewPostEvent(eventType Type, postID uuid.UUID) *PostEvent {
	return &PostEvent{
		ID:         uuid.New(),
		Type:       eventType,
		PostID:     postID,
		OccurredAt: time.Now().UTC(),
	}
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	HandleEvent(ctx context.Context, event *PostEvent) error
}

// HandlerFunc adapts a function to EventHandler.
type HandlerFunc func(ctx context.Context, event *PostEvent) error

// HandleEvent calls f.
func (f HandlerFunc) HandleEvent(ctx context.Context, event *PostEvent) error {
	return f(ctx, event)
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *PostEvent) error
}

package domain

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Length limits for post fields, counted in characters.
const (
	MaxPostTitleLength   = 200
	MaxPostContentLength = 10000
)

// Validation errors for Post.
var (
	ErrEmptyPostID        = fmt.Errorf("%w: post ID cannot be empty", ErrValidation)
	ErrPostTitleTooLong   = fmt.Errorf("%w: post title exceeds %d characters", ErrValidation, MaxPostTitleLength)
	ErrPostContentTooLong = fmt.Errorf("%w: post content exceeds %d characters", ErrValidation, MaxPostContentLength)
	ErrMissingTimestamps  = fmt.Errorf("%w: post timestamps must be set", ErrValidation)
)

// Post is a titled piece of text content.
type Post struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPost creates a Post with a fresh ID and the current time as both
// timestamps. Returns an error if validation fails.
func NewPost(title, content string) (*Post, error) {
	now := time.Now().UTC()
	post := &Post{
		ID:        uuid.New(),
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := post.Validate(); err != nil {
		return nil, err
	}

	return post, nil
}

// Validate checks if the Post has valid data.
// Empty title and content are allowed; only presence is checked at the HTTP boundary.
func (p *Post) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyPostID
	}
	if utf8.RuneCountInString(p.Title) > MaxPostTitleLength {
		return ErrPostTitleTooLong
	}
	if utf8.RuneCountInString(p.Content) > MaxPostContentLength {
		return ErrPostContentTooLong
	}
	if p.CreatedAt.IsZero() || p.UpdatedAt.IsZero() {
		return ErrMissingTimestamps
	}
	return nil
}

// PostPatch holds the fields of a partial update. Nil fields are left unchanged.
type PostPatch struct {
	Title   *string `json:"title,omitempty" mapstructure:"title"`
	Content *string `json:"content,omitempty" mapstructure:"content"`
}

// IsEmpty reports whether the patch changes nothing.
func (pp PostPatch) IsEmpty() bool {
	return pp.Title == nil && pp.Content == nil
}

// Apply copies the set fields of patch onto p, bumps UpdatedAt and
// revalidates. p is left unchanged when validation fails.
func (p *Post) Apply(patch PostPatch) error {
	updated := *p
	if patch.Title != nil {
		updated.Title = *patch.Title
	}
	if patch.Content != nil {
		updated.Content = *patch.Content
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := updated.Validate(); err != nil {
		return err
	}

	*p = updated
	return nil
}

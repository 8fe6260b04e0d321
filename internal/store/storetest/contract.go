// Package storetest holds behaviour tests shared by every store.PostStore
// implementation.
package storetest

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/posts-api/internal/domain"
	"github.com/phrazzld/posts-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns an empty store. It is called once per subtest.
type Factory func(t *testing.T) store.PostStore

// post builds a valid post created at base+offset.
func post(title string, base time.Time, offset time.Duration) *domain.Post {
	ts := base.Add(offset)
	return &domain.Post{
		ID:        uuid.New(),
		Title:     title,
		Content:   "content of " + title,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

// RunPostStoreContract exercises the behaviour every PostStore must share.
func RunPostStoreContract(t *testing.T, newStore Factory) {
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Create and GetByID", func(t *testing.T) {
		s := newStore(t)
		p := post("first", base, 0)

		require.NoError(t, s.Create(ctx, p))

		got, err := s.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.ID, got.ID)
		assert.Equal(t, p.Title, got.Title)
		assert.Equal(t, p.Content, got.Content)
		assert.WithinDuration(t, p.CreatedAt, got.CreatedAt, time.Millisecond)
		assert.WithinDuration(t, p.UpdatedAt, got.UpdatedAt, time.Millisecond)
	})

	t.Run("Create keeps empty strings", func(t *testing.T) {
		s := newStore(t)
		p := post("", base, 0)
		p.Content = ""

		require.NoError(t, s.Create(ctx, p))

		got, err := s.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Title)
		assert.Empty(t, got.Content)
	})

	t.Run("Create rejects invalid post", func(t *testing.T) {
		s := newStore(t)
		p := post(strings.Repeat("t", domain.MaxPostTitleLength+1), base, 0)

		err := s.Create(ctx, p)
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})

	t.Run("Create rejects duplicate id", func(t *testing.T) {
		s := newStore(t)
		p := post("dup", base, 0)
		require.NoError(t, s.Create(ctx, p))

		err := s.Create(ctx, p)
		assert.ErrorIs(t, err, store.ErrDuplicate)
	})

	t.Run("GetByID missing", func(t *testing.T) {
		s := newStore(t)
		_, err := s.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, store.ErrPostNotFound)
	})

	t.Run("Update", func(t *testing.T) {
		s := newStore(t)
		p := post("before", base, 0)
		require.NoError(t, s.Create(ctx, p))

		p.Title = "after"
		p.UpdatedAt = base.Add(time.Hour)
		require.NoError(t, s.Update(ctx, p))

		got, err := s.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "after", got.Title)
		assert.Equal(t, p.Content, got.Content)
		assert.WithinDuration(t, base, got.CreatedAt, time.Millisecond)
		assert.WithinDuration(t, base.Add(time.Hour), got.UpdatedAt, time.Millisecond)
	})

	t.Run("Update missing", func(t *testing.T) {
		s := newStore(t)
		err := s.Update(ctx, post("ghost", base, 0))
		assert.ErrorIs(t, err, store.ErrPostNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		s := newStore(t)
		p := post("doomed", base, 0)
		require.NoError(t, s.Create(ctx, p))

		require.NoError(t, s.Delete(ctx, p.ID))

		_, err := s.GetByID(ctx, p.ID)
		assert.ErrorIs(t, err, store.ErrPostNotFound)

		err = s.Delete(ctx, p.ID)
		assert.ErrorIs(t, err, store.ErrPostNotFound)
	})

	t.Run("List newest first with pagination", func(t *testing.T) {
		s := newStore(t)
		oldest := post("oldest", base, time.Second)
		middle := post("middle", base, 2*time.Second)
		newest := post("newest", base, 3*time.Second)
		for _, p := range []*domain.Post{middle, oldest, newest} {
			require.NoError(t, s.Create(ctx, p))
		}

		page, err := s.List(ctx, 2, 0)
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, newest.ID, page[0].ID)
		assert.Equal(t, middle.ID, page[1].ID)

		page, err = s.List(ctx, 2, 2)
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, oldest.ID, page[0].ID)

		page, err = s.List(ctx, 10, 100)
		require.NoError(t, err)
		assert.NotNil(t, page)
		assert.Empty(t, page)
	})

	t.Run("List omits deleted posts", func(t *testing.T) {
		s := newStore(t)
		keep := post("keep", base, time.Second)
		drop := post("drop", base, 2*time.Second)
		require.NoError(t, s.Create(ctx, keep))
		require.NoError(t, s.Create(ctx, drop))
		require.NoError(t, s.Delete(ctx, drop.ID))

		page, err := s.List(ctx, 10, 0)
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, keep.ID, page[0].ID)
	})

	t.Run("Ping", func(t *testing.T) {
		s := newStore(t)
		assert.NoError(t, s.Ping(ctx))
	})
}

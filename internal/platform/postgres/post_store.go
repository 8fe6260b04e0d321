package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/posts-api/internal/domain"
	"github.com/phrazzld/posts-api/internal/platform/logger"
	"github.com/phrazzld/posts-api/internal/store"
)

// PostgresPostStore implements the store.PostStore interface
// using a PostgreSQL database as the storage backend.
type PostgresPostStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresPostStore creates a PostgreSQL implementation of store.PostStore.
// The store takes ownership of db and closes it in Close.
// If logger is nil, a default logger will be used.
func NewPostgresPostStore(db *sql.DB, logger *slog.Logger) *PostgresPostStore {
	if db == nil {
		// ALLOW-PANIC: constructor dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPostStore{
		db:     db,
		logger: logger.With(slog.String("component", "post_store")),
	}
}

// Ensure PostgresPostStore implements store.PostStore interface
var _ store.PostStore = (*PostgresPostStore)(nil)

const postColumns = `id, title, content, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*domain.Post, error) {
	var p domain.Post
	if err := row.Scan(&p.ID, &p.Title, &p.Content, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create implements store.PostStore.Create.
func (s *PostgresPostStore) Create(ctx context.Context, post *domain.Post) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := post.Validate(); err != nil {
		log.Warn("post validation failed during create",
			slog.String("error", err.Error()),
			slog.String("post_id", post.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO posts (`+postColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		post.ID, post.Title, post.Content, post.CreatedAt, post.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("duplicate post id", slog.String("post_id", post.ID.String()))
			return fmt.Errorf("%w: %v", store.ErrPostExists, err)
		}
		log.Error("failed to create post",
			slog.String("error", err.Error()),
			slog.String("post_id", post.ID.String()))
		return store.NewStoreError("post", "create", "insert failed", MapError(err))
	}

	log.Info("post created successfully", slog.String("post_id", post.ID.String()))
	return nil
}

// GetByID implements store.PostStore.GetByID.
func (s *PostgresPostStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	p, err := scanPost(s.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("post not found", slog.String("post_id", id.String()))
			return nil, store.ErrPostNotFound
		}
		log.Error("failed to get post by ID",
			slog.String("error", err.Error()),
			slog.String("post_id", id.String()))
		return nil, store.NewStoreError("post", "get", "query failed", MapError(err))
	}

	return p, nil
}

// List implements store.PostStore.List.
func (s *PostgresPostStore) List(ctx context.Context, limit, offset int) ([]*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+postColumns+` FROM posts ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		log.Error("failed to list posts", slog.String("error", err.Error()))
		return nil, store.NewStoreError("post", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	posts := make([]*domain.Post, 0, limit)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, store.NewStoreError("post", "list", "scan failed", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("post", "list", "row iteration failed", MapError(err))
	}

	return posts, nil
}

// Update implements store.PostStore.Update. The row is locked while it is
// rewritten so concurrent updates apply one after the other.
func (s *PostgresPostStore) Update(ctx context.Context, post *domain.Post) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := post.Validate(); err != nil {
		log.Warn("post validation failed during update",
			slog.String("error", err.Error()),
			slog.String("post_id", post.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return updatePost(ctx, tx, post)
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("post not found for update", slog.String("post_id", post.ID.String()))
			return err
		}
		log.Error("failed to update post",
			slog.String("error", err.Error()),
			slog.String("post_id", post.ID.String()))
		return store.NewStoreError("post", "update", "update failed", err)
	}

	log.Info("post updated successfully", slog.String("post_id", post.ID.String()))
	return nil
}

// updatePost locks the post row and rewrites it. q should be a transaction
// for the lock to outlive the SELECT.
func updatePost(ctx context.Context, q store.DBTX, post *domain.Post) error {
	var id uuid.UUID
	err := q.QueryRowContext(ctx, `SELECT id FROM posts WHERE id = $1 FOR UPDATE`, post.ID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrPostNotFound
	}
	if err != nil {
		return MapError(err)
	}

	result, err := q.ExecContext(ctx,
		`UPDATE posts SET title = $1, content = $2, updated_at = $3 WHERE id = $4`,
		post.Title, post.Content, post.UpdatedAt, post.ID)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrPostNotFound)
}

// Delete implements store.PostStore.Delete.
func (s *PostgresPostStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete post",
			slog.String("error", err.Error()),
			slog.String("post_id", id.String()))
		return store.NewStoreError("post", "delete", "delete failed", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrPostNotFound); err != nil {
		if !store.IsNotFoundError(err) {
			return store.NewStoreError("post", "delete", "rows affected unavailable", err)
		}
		log.Debug("post not found for delete", slog.String("post_id", id.String()))
		return err
	}

	log.Info("post deleted successfully", slog.String("post_id", id.String()))
	return nil
}

// Ping implements store.PostStore.Ping.
func (s *PostgresPostStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return MapError(err)
	}
	return nil
}

// Close closes the connection pool.
func (s *PostgresPostStore) Close() error {
	err := s.db.Close()
	s.logger.Info("database connection closed")
	return err
}

// Package postgres implements store.PostStore on PostgreSQL through the pgx
// database/sql driver. The schema ships with the binary as embedded goose
// migrations (see Migrate).
package postgres

// Package redis implements store.PostStore on Redis, used as a document
// database: each post is a JSON document under its own key, and a sorted set
// indexes post IDs by creation time for listing.
//
// Key layout, with the default "posts:" prefix:
//
//	posts:post:<uuid>   JSON document
//	posts:posts         ZSET of <uuid> scored by created_at (Unix microseconds)
package redis

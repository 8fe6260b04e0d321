// Package middleware provides the HTTP middleware and pipeline stages used
// by the API: request tracing, panic recovery, request metrics, and the
// schema validation gate that runs in front of write handlers.
package middleware

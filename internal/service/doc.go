// Package service contains the application-specific use cases. It
// orchestrates domain objects and the store interfaces (internal/store)
// without depending on any particular store implementation.
//
// Error handling:
//   - expected conditions come back as store sentinels (store.ErrPostNotFound)
//     or domain validation errors, so callers can use errors.Is
//   - unexpected failures are wrapped in *PostServiceError, which unwraps to
//     the cause
//   - the API layer maps both to HTTP status codes
package service

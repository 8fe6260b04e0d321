// Package memory provides an in-process store.PostStore for local runs and tests.
package memory

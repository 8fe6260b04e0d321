// Package events lets services announce post lifecycle changes without
// knowing who listens.
//
// The primary components are:
// - PostEvent: a post was created, updated or deleted
// - EventHandler: interface for components that react to events
// - EventEmitter: interface for components that dispatch events
//
// Events are emitted after the store write has succeeded; a failing handler
// never undoes the write.
package events

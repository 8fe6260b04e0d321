// Package schema declares the structural shape of request bodies and checks
// untyped input against it.
//
// A Schema is an ordered list of fields, each carrying a small list of
// constraints (Required, TypeIs, Rule). Checking input is two steps:
//
//   - Coerce copies the declared fields out of a raw map into an Instance.
//     Undeclared keys are dropped and never cause an error at this step.
//   - Evaluate walks every declared field of the Instance and returns all
//     violations at once, never stopping at the first failure, so a client
//     can fix every problem in a single round trip.
//
// Schemas are immutable after New and may be shared by concurrent requests.
package schema

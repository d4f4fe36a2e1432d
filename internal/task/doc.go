// Package task holds the task model, the ordered task collection, and the
// error kinds shared by the parser and the storage codec.
//
// # Variants
//
// A task is one of three closed variants:
//
//   - Todo: a description only
//   - Deadline: a description and a due date-time
//   - Event: a description, a start and an end date-time
//
// Each variant renders to a single display line:
//
//	[T][ ] buy milk
//	[D][X] finish report (by: Jan 1 2025 6PM)
//	[E][ ] meeting (from: Jan 1 2025 9AM to: Jan 1 2025 10AM)
//
// # Date-times
//
// All user-supplied and persisted date-times use the canonical pattern
// yyyy-MM-dd HHmm (Go layout "2006-01-02 1504"). Display uses a shorter
// human form.
//
// # Indices
//
// List indices are 0-based in code and 1-based in anything shown to a user.
package task

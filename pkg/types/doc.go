// Package types defines the register schemas, the Record entity with its
// derived display state, and the standard error values shared across the
// registerdesk engine packages.
package types

// Package services defines the shared error taxonomy for operations that
// touch the filesystem or external tools.
//
// Errors are tagged with sentinel markers (not found, validation,
// configuration, external tool) at the point of failure so the CLI and the
// history store can classify them without string matching. Wrap attaches
// operation context while preserving the marker for errors.Is checks.
package services

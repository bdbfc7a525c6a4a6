// Package build implements the capture-directory-to-video build rule.
//
// The Engine derives the source directory from the requested output name
// (same stem, extension stripped), fail-fast validates that the directory
// exists and contains at least one frame, then invokes the external encoder
// synchronously and records the attempt in the history store. Validation uses
// an explicitly sorted frame listing; the encoder itself consumes the glob
// pattern, which ffmpeg orders the same way for zero-padded frame names.
package build

// Package capture discovers capture directories and their frame files.
//
// A capture directory is recognized by a configurable literal name prefix
// (default "capture-") followed by an unvalidated suffix, and contains JPEG
// frames written by an external capture tool. Frame listings are explicitly
// sorted so every order-sensitive consumer sees a deterministic sequence.
package capture

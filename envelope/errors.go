// Package envelope implements the optional wire envelopes that wrap a
// payload before it is handed to the fountain encoder: a compression
// envelope (gzip, with a skip-if-no-benefit policy) and a file envelope
// (a length-prefixed filename). Both are pure byte-to-byte transforms with
// no relationship to the fountain codec itself.
package envelope

import "errors"

var (
	// ErrUnknownAlgorithm is returned when a compression envelope declares
	// an algo byte this build does not have registered. Unlike the
	// codec-layer error kinds, this one is surfaced to the caller per
	// spec §7 — the caller decides whether to discard the transfer or try
	// a fallback.
	ErrUnknownAlgorithm = errors.New("envelope: unknown compression algorithm")

	// ErrAlgorithmRegistered is the value Register panics with when the
	// same algo byte is registered twice.
	ErrAlgorithmRegistered = errors.New("envelope: algorithm already registered")

	// ErrNameTooLong is returned by WrapFile when the filename, once
	// UTF-8 encoded, would overflow the 16-bit length prefix.
	ErrNameTooLong = errors.New("envelope: filename too long for file envelope")
)

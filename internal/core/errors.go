package core

import "errors"

// Fatal parse errors: no ParsedFile is returned when these occur.
var (
	// ErrFileTooShort is returned when the buffer is too small to hold a header.
	ErrFileTooShort = errors.New("bgui: file too short to contain a header")

	// ErrRegisterNotFound is returned when the 14-byte register signature is
	// absent from the buffer.
	ErrRegisterNotFound = errors.New("bgui: register signature not found")
)

// MinFileSize is the buffer length below which Parse reports
// ErrFileTooShort. A buffer of at least this length that is still shorter
// than the 14-byte register signature fails with ErrRegisterNotFound.
const MinFileSize = 8

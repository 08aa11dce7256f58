package dxf

import "errors"

// Terminal failure kinds of a ReadFile call, matched with errors.Is.
var (
	// ErrFileNotFound indicates the input path does not exist.
	ErrFileNotFound = errors.New("file does not exist")

	// ErrNotRegularFile indicates the input path exists but is not a
	// regular file (e.g. a directory).
	ErrNotRegularFile = errors.New("path is not a regular file")

	// ErrCannotOpen indicates the file exists but could not be opened.
	ErrCannotOpen = errors.New("cannot open file")

	// ErrNoEntities indicates the scan completed without finding a single
	// valid 3DFACE. An empty mesh is never returned as success.
	ErrNoEntities = errors.New("no 3D faces found in DXF file")

	// ErrParse wraps an unexpected failure while reading file content.
	ErrParse = errors.New("parse error")
)

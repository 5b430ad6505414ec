// Package fsx defines the file-storage port used for generated report
// artifacts, complaint evidence and message attachments.
package fsx

import (
	"context"
	"io"
)

// FileReader reads stored files.
type FileReader interface {
	// ReadFile returns the full contents of the file at path.
	ReadFile(ctx context.Context, path string) ([]byte, error)

	// ReadFileStream returns a reader over the file at path. The caller
	// closes it.
	ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error)
}

// FileSystem is the full storage port.
type FileSystem interface {
	FileReader

	// WriteFile stores data at path, overwriting any existing object.
	WriteFile(ctx context.Context, path string, data []byte) error

	// DeleteFile removes the object at path.
	DeleteFile(ctx context.Context, path string) error

	// Exists checks whether an object is stored at path.
	Exists(ctx context.Context, path string) (bool, error)

	// Join builds a storage path from segments.
	Join(segments ...string) string
}

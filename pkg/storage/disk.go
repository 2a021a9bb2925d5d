// Package storage abstracts where uploaded product images live.
//
// Two drivers ship out of the box:
//   - "local" — local filesystem (default)
//   - "s3"    — S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
// Boot once at startup, then write through the default disk:
//
//	storage.Connect()
//	storage.PutStream("products/pen.jpg", file)
//	url := storage.URL("products/pen.jpg")
package storage

import "io"

// Disk is the driver interface.
type Disk interface {
	// Put writes content to path, creating parent directories as needed.
	Put(path string, content []byte) error

	// PutStream writes from r to path.
	PutStream(path string, r io.Reader) error

	// Get returns the full content of the file at path.
	Get(path string) ([]byte, error)

	// Exists reports whether a file exists at path.
	Exists(path string) bool

	// Delete removes a file. Deleting a missing file is not an error.
	Delete(path string) error

	// URL returns the public URL for path.
	URL(path string) string
}

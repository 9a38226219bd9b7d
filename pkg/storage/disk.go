// Package storage abstracts where medicine images and report exports live.
// Two drivers: "local" (default) and "s3" (any S3-compatible store).
//
//	storage.Connect()
//	storage.Put("medicines/42.jpg", data)
//	url := storage.URL("medicines/42.jpg")
package storage

import (
	"io"
	"time"
)

// Disk is the filesystem driver interface.
type Disk interface {
	Put(path string, content []byte) error
	PutStream(path string, r io.Reader) error
	Get(path string) ([]byte, error)
	GetStream(path string) (io.ReadCloser, error)
	Exists(path string) bool
	Size(path string) (int64, error)
	LastModified(path string) (time.Time, error)
	URL(path string) string
	Delete(path string) error
	Files(directory string) ([]string, error)
}

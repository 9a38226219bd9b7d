package storage

import (
	"fmt"
	"io"
	"sync"

	"github.com/hassanmehmood/medicart/config"
	"github.com/hassanmehmood/medicart/pkg/logger"
)

var (
	managerMu   sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk = "local"
)

// Connect boots the configured disks. Call once at startup; S3 boots only
// when a bucket is configured.
func Connect() {
	managerMu.Lock()
	defer managerMu.Unlock()

	defaultDisk = config.StorageDefault()
	disks["local"] = newLocalDisk()

	if config.StorageS3Bucket() != "" {
		d, err := newS3Disk()
		if err != nil {
			logger.Warn("storage: s3 disk disabled", "error", err)
		} else {
			disks["s3"] = d
		}
	}

	if _, ok := disks[defaultDisk]; !ok {
		logger.Warn("storage: default disk not available, falling back to local", "disk", defaultDisk)
		defaultDisk = "local"
	}
}

// Use returns the named disk ("local" or "s3").
func Use(name string) Disk {
	managerMu.RLock()
	d, ok := disks[name]
	managerMu.RUnlock()
	if !ok {
		panic(fmt.Sprintf("storage: disk %q is not configured", name))
	}
	return d
}

// RegisterDisk plugs in a custom Disk (used by tests).
func RegisterDisk(name string, d Disk) {
	managerMu.Lock()
	disks[name] = d
	managerMu.Unlock()
}

func def() Disk {
	managerMu.RLock()
	name := defaultDisk
	managerMu.RUnlock()
	return Use(name)
}

// Default-disk helpers.

func Put(path string, content []byte) error     { return def().Put(path, content) }
func PutStream(path string, r io.Reader) error  { return def().PutStream(path, r) }
func Get(path string) ([]byte, error)           { return def().Get(path) }
func GetStream(path string) (io.ReadCloser, error) { return def().GetStream(path) }
func Exists(path string) bool                   { return def().Exists(path) }
func Delete(path string) error                  { return def().Delete(path) }
func URL(path string) string                    { return def().URL(path) }
func Files(directory string) ([]string, error)  { return def().Files(directory) }

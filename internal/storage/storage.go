// Package storage provides the artifact store used for degraded-path prompt
// artifacts and completed-result manifests. It defines the Store interface
// (port) with local-disk and S3 implementations.
package storage

import (
	"context"
	"io"
)

// Store defines the interface for writing small artifacts to storage.
// The generation pipeline never reads or writes generated videos itself;
// it only persists text artifacts and JSON manifests next to them.
type Store interface {
	// Put writes data under key and returns the URI of the stored artifact.
	Put(ctx context.Context, key, contentType string, data io.Reader) (uri string, err error)
}

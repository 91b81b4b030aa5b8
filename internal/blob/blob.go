// Package blob stores uploaded document files and hands back retrievable URLs.
package blob

import "context"

// Store writes document blobs. A hosted object store can be substituted
// behind this interface without touching the upload workflow.
type Store interface {
	// Put writes the blob under a caller-chosen key and returns a
	// retrievable URL for it.
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

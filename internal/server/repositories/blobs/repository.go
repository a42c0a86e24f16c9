// Package blobs stores staged content addressed by CID.
package blobs

import "context"

// Repository is a content-addressed byte store. Put is idempotent: storing a
// CID that already exists is a no-op.
type Repository interface {
	Put(ctx context.Context, cid string, data []byte) error
	Get(ctx context.Context, cid string) ([]byte, error)
	Exists(ctx context.Context, cid string) (bool, error)
}

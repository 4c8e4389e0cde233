// Copyright (c) 2026 Eternize. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package objstore provides durable blob storage for user-uploaded media.

It abstracts the physical object store behind the [BlobStore] interface so
that domain services depend only on Save/Delete semantics, never on the
concrete S3 wire protocol. The production implementation targets any
S3-compatible endpoint (Cloudflare R2, MinIO, AWS S3).
*/
package objstore

import (
	"context"
	"io"
)

// BlobStore is the write interface for binary media content.
//
// # Contract
//
// Save returns the publicly reachable URL of the stored object. Delete is
// idempotent: removing a key that does not exist is not an error.
type BlobStore interface {
	Save(ctx context.Context, key string, content io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
}

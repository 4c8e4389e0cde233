// Copyright (c) 2026 Eternize. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package memorial

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/eternize/eternize/internal/platform/ctxutil"
	"github.com/eternize/eternize/internal/platform/objstore"
	"github.com/eternize/eternize/pkg/keysafe"
	"github.com/eternize/eternize/pkg/uuid"
)

// # Media Kinds

// MediaKind classifies a gallery asset by its content type.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
	MediaAudio MediaKind = "audio"
)

// IsValid reports whether k is a recognised [MediaKind] value.
func (k MediaKind) IsValid() bool {
	switch k {
	case MediaImage, MediaVideo, MediaAudio:
		return true
	}
	return false
}

// Category returns the storage path segment for the kind.
func (k MediaKind) Category() string {
	switch k {
	case MediaVideo:
		return "video"
	case MediaAudio:
		return "audio"
	default:
		return "gallery"
	}
}

// # Reconciliation

// MediaUpload is one gallery item as submitted by the editor at save time.
//
// Existing items carry the durable URL they already have; new items carry
// pending binary content that has not been uploaded anywhere yet.
type MediaUpload struct {
	ID         string
	Kind       MediaKind
	IsExisting bool
	URL        string    // Durable location, set only when IsExisting
	FileName   string
	Content    io.Reader // Pending binary, set only when !IsExisting
}

// Plan is the outcome of reconciling the editor's media state against the
// persisted gallery. It is computed purely; execution happens separately.
type Plan struct {
	Uploads  []MediaUpload // New items to upload exactly once
	Deletes  []string      // Persisted ids to remove, already deduplicated
	Retained []MediaUpload // Existing items that survive untouched
}

// IsEmpty reports whether executing the plan would change nothing.
func (p Plan) IsEmpty() bool {
	return len(p.Uploads) == 0 && len(p.Deletes) == 0
}

// BuildPlan partitions submitted items into uploads and retained assets and
// carries the accumulated removal set along.
//
// # Invariants
//
// An existing item is never re-uploaded. An item marked for removal is
// excluded even if it also appears in the submitted set. Removal ids are
// deduplicated so execution stays idempotent.
func BuildPlan(items []MediaUpload, removedIDs []string) Plan {
	removed := make(map[string]struct{}, len(removedIDs))
	deletes := make([]string, 0, len(removedIDs))
	for _, id := range removedIDs {
		if _, seen := removed[id]; seen || id == "" {
			continue
		}
		removed[id] = struct{}{}
		deletes = append(deletes, id)
	}

	plan := Plan{Deletes: deletes}
	for _, item := range items {
		if _, gone := removed[item.ID]; gone {
			continue
		}
		if item.IsExisting {
			plan.Retained = append(plan.Retained, item)
			continue
		}
		plan.Uploads = append(plan.Uploads, item)
	}

	return plan
}

// # Upload Execution

// Uploader pushes pending media binaries to durable blob storage.
type Uploader struct {
	blobs objstore.BlobStore
}

// NewUploader wires the uploader to a blob store.
func NewUploader(blobs objstore.BlobStore) *Uploader {
	return &Uploader{blobs: blobs}
}

// UploadAll stores every pending item concurrently and returns the durable
// [MediaItem] records for the ones that succeeded, in submission order.
//
// # Failure Model
//
// Each upload is independent. A failed item is logged and dropped; its
// siblings and the surrounding save operation are unaffected. There are no
// retries.
func (u *Uploader) UploadAll(ctx context.Context, ownerID, memorialID string, uploads []MediaUpload) []MediaItem {
	if len(uploads) == 0 {
		return nil
	}

	logger := ctxutil.GetLogger(ctx)
	results := make([]*MediaItem, len(uploads))

	var waitGroup sync.WaitGroup
	for index, upload := range uploads {
		waitGroup.Add(1)
		go func(index int, upload MediaUpload) {
			defer waitGroup.Done()

			key := ObjectKey(ownerID, memorialID, upload.Kind, upload.FileName)
			url, err := u.blobs.Save(ctx, key, upload.Content)
			if err != nil {
				logger.WarnContext(ctx, "media_upload_failed",
					slog.String("memorial_id", memorialID),
					slog.String("file_name", upload.FileName),
					slog.String("kind", string(upload.Kind)),
					slog.Any("error", err),
				)
				return
			}

			results[index] = &MediaItem{
				ID:         uuid.Must(),
				MemorialID: memorialID,
				Kind:       upload.Kind,
				URL:        url,
				FileName:   upload.FileName,
			}
		}(index, upload)
	}
	waitGroup.Wait()

	stored := make([]MediaItem, 0, len(uploads))
	for _, result := range results {
		if result != nil {
			stored = append(stored, *result)
		}
	}
	return stored
}

// ObjectKey builds the storage key for a pending media binary.
// Layout: {ownerID}/{memorialID}/{category}/{uuid}_{sanitized-name}
func ObjectKey(ownerID, memorialID string, kind MediaKind, fileName string) string {
	return fmt.Sprintf("%s/%s/%s/%s_%s",
		ownerID, memorialID, kind.Category(), uuid.Must(), keysafe.FileName(fileName))
}

// Copyright (c) 2026 Eternize. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package memorial_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eternize/eternize/internal/memorial"
)

// flakyBlobStore fails saves for keys containing a marker substring.
type flakyBlobStore struct {
	mu      sync.Mutex
	failOn  string
	saved   []string
	deleted []string
}

func (f *flakyBlobStore) Save(_ context.Context, key string, _ io.Reader) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failOn != "" && strings.Contains(key, f.failOn) {
		return "", errors.New("storage unavailable")
	}
	f.saved = append(f.saved, key)
	return "https://cdn.example.com/" + key, nil
}

func (f *flakyBlobStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, key)
	return nil
}

/*
TestBuildPlan_Partitioning verifies the existing/new/removed split.
*/
func TestBuildPlan_Partitioning(t *testing.T) {
	items := []memorial.MediaUpload{
		{ID: "m1", Kind: memorial.MediaImage, IsExisting: true, URL: "https://cdn/x/1.jpg"},
		{ID: "m2", Kind: memorial.MediaImage, IsExisting: true, URL: "https://cdn/x/2.jpg"},
		{ID: "local-1", Kind: memorial.MediaVideo, FileName: "wedding.mp4"},
	}

	plan := memorial.BuildPlan(items, []string{"m2"})

	require.Len(t, plan.Retained, 1)
	assert.Equal(t, "m1", plan.Retained[0].ID)

	require.Len(t, plan.Uploads, 1)
	assert.Equal(t, "local-1", plan.Uploads[0].ID)

	assert.Equal(t, []string{"m2"}, plan.Deletes)
}

/*
TestBuildPlan_ExistingNeverReuploaded asserts that items with a durable URL
never land in the upload set.
*/
func TestBuildPlan_ExistingNeverReuploaded(t *testing.T) {
	items := []memorial.MediaUpload{
		{ID: "m1", Kind: memorial.MediaImage, IsExisting: true, URL: "https://cdn/x/1.jpg"},
		{ID: "m2", Kind: memorial.MediaAudio, IsExisting: true, URL: "https://cdn/x/2.mp3"},
	}

	plan := memorial.BuildPlan(items, nil)

	assert.Empty(t, plan.Uploads)
	assert.Empty(t, plan.Deletes)
	assert.Len(t, plan.Retained, 2)
	assert.True(t, plan.IsEmpty())
}

/*
TestBuildPlan_DeduplicatesRemovals verifies removal-set idempotence.
*/
func TestBuildPlan_DeduplicatesRemovals(t *testing.T) {
	plan := memorial.BuildPlan(nil, []string{"m1", "m1", "", "m2", "m1"})
	assert.Equal(t, []string{"m1", "m2"}, plan.Deletes)
}

/*
TestBuildPlan_Empty verifies the zero-item no-op contract.
*/
func TestBuildPlan_Empty(t *testing.T) {
	plan := memorial.BuildPlan(nil, nil)
	assert.True(t, plan.IsEmpty())
}

/*
TestBuildPlan_FiveImageEdit covers the canonical edit scenario: five stored
images, two removed, one added. Four items survive.
*/
func TestBuildPlan_FiveImageEdit(t *testing.T) {
	items := []memorial.MediaUpload{
		{ID: "m1", Kind: memorial.MediaImage, IsExisting: true, URL: "https://cdn/x/1.jpg"},
		{ID: "m2", Kind: memorial.MediaImage, IsExisting: true, URL: "https://cdn/x/2.jpg"},
		{ID: "m3", Kind: memorial.MediaImage, IsExisting: true, URL: "https://cdn/x/3.jpg"},
		{ID: "m4", Kind: memorial.MediaImage, IsExisting: true, URL: "https://cdn/x/4.jpg"},
		{ID: "m5", Kind: memorial.MediaImage, IsExisting: true, URL: "https://cdn/x/5.jpg"},
		{ID: "local-1", Kind: memorial.MediaImage, FileName: "new.jpg"},
	}

	plan := memorial.BuildPlan(items, []string{"m2", "m4"})

	assert.Len(t, plan.Retained, 3)
	assert.Len(t, plan.Uploads, 1)
	assert.Len(t, plan.Deletes, 2)

	// 3 retained + 1 upload = 4 items after the save
	assert.Equal(t, 4, len(plan.Retained)+len(plan.Uploads))
}

/*
TestUploader_UploadAll verifies concurrent upload success and key layout.
*/
func TestUploader_UploadAll(t *testing.T) {
	blobs := &flakyBlobStore{}
	uploader := memorial.NewUploader(blobs)

	uploads := []memorial.MediaUpload{
		{ID: "local-1", Kind: memorial.MediaImage, FileName: "beach.jpg", Content: strings.NewReader("a")},
		{ID: "local-2", Kind: memorial.MediaVideo, FileName: "wedding.mp4", Content: strings.NewReader("b")},
		{ID: "local-3", Kind: memorial.MediaAudio, FileName: "voice.mp3", Content: strings.NewReader("c")},
	}

	stored := uploader.UploadAll(context.Background(), "user-1", "mem-1", uploads)

	require.Len(t, stored, 3)
	for _, item := range stored {
		assert.NotEmpty(t, item.ID)
		assert.Equal(t, "mem-1", item.MemorialID)
		assert.Contains(t, item.URL, "https://cdn.example.com/user-1/mem-1/")
	}

	// Each kind lands in its own category prefix
	assert.Contains(t, stored[0].URL, "/gallery/")
	assert.Contains(t, stored[1].URL, "/video/")
	assert.Contains(t, stored[2].URL, "/audio/")
}

/*
TestUploader_PartialFailure verifies that one failed upload is dropped while
its siblings survive.
*/
func TestUploader_PartialFailure(t *testing.T) {
	blobs := &flakyBlobStore{failOn: "broken"}
	uploader := memorial.NewUploader(blobs)

	uploads := []memorial.MediaUpload{
		{ID: "local-1", Kind: memorial.MediaImage, FileName: "ok-one.jpg", Content: strings.NewReader("a")},
		{ID: "local-2", Kind: memorial.MediaImage, FileName: "broken.jpg", Content: strings.NewReader("b")},
		{ID: "local-3", Kind: memorial.MediaImage, FileName: "ok-two.jpg", Content: strings.NewReader("c")},
	}

	stored := uploader.UploadAll(context.Background(), "user-1", "mem-1", uploads)

	// 2 of 3 succeed; the save still proceeds with what survived
	require.Len(t, stored, 2)
	assert.Contains(t, stored[0].FileName, "ok")
	assert.Contains(t, stored[1].FileName, "ok")
}

/*
TestUploader_NoUploads verifies the empty fan-out no-op.
*/
func TestUploader_NoUploads(t *testing.T) {
	uploader := memorial.NewUploader(&flakyBlobStore{})
	assert.Nil(t, uploader.UploadAll(context.Background(), "user-1", "mem-1", nil))
}

/*
TestObjectKey verifies the storage layout and file name sanitization.
*/
func TestObjectKey(t *testing.T) {
	key := memorial.ObjectKey("user-1", "mem-1", memorial.MediaImage, "Férias 2020.JPG")

	assert.True(t, strings.HasPrefix(key, "user-1/mem-1/gallery/"))
	assert.True(t, strings.HasSuffix(key, "_ferias-2020.jpg"))
}

// Copyright (c) 2026 Eternize. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/eternize/eternize/internal/platform/apperr"
	"github.com/eternize/eternize/internal/platform/objstore"
	"github.com/eternize/eternize/pkg/keysafe"
	"github.com/eternize/eternize/pkg/uuid"
)

// # Service Layer

// Service orchestrates profile presentation assets.
//
// Replaced images are not deleted from blob storage; old URLs simply stop
// being referenced, the same retention rule the memorial gallery follows.
type Service struct {
	profiles Repository
	blobs    objstore.BlobStore
	logger   *slog.Logger
}

// NewService constructs a new profile [Service] with its dependencies.
func NewService(profiles Repository, blobs objstore.BlobStore, logger *slog.Logger) *Service {
	return &Service{
		profiles: profiles,
		blobs:    blobs,
		logger:   logger,
	}
}

/*
Get retrieves the profile assets for a user.

Description: A user without a stored row receives an empty profile rather
than an error; missing images are a normal state.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *Profile: Current or empty profile
  - error: Storage failures
*/
func (service *Service) Get(context context.Context, userID string) (*Profile, error) {
	profile, err := service.profiles.FindByUserID(context, userID)
	if err != nil {
		if ae := apperr.As(err); ae != nil && ae.Code == "NOT_FOUND" {
			return &Profile{UserID: userID, UpdatedAt: time.Now()}, nil
		}
		return nil, fmt.Errorf("profile_service_get_failed: %w", err)
	}
	return profile, nil
}

/*
UploadAvatar replaces the user's avatar image.

Parameters:
  - context: context.Context
  - userID: string
  - fileName: string (Original upload name)
  - content: io.Reader

Returns:
  - *Profile: The profile with the new avatar URL
  - error: Upload or persistence failures
*/
func (service *Service) UploadAvatar(context context.Context, userID, fileName string, content io.Reader) (*Profile, error) {
	return service.replaceImage(context, userID, fileName, content, "avatars", func(profile *Profile, url string) {
		profile.AvatarURL = url
	})
}

/*
UploadCover replaces the user's cover image.

Parameters:
  - context: context.Context
  - userID: string
  - fileName: string (Original upload name)
  - content: io.Reader

Returns:
  - *Profile: The profile with the new cover URL
  - error: Upload or persistence failures
*/
func (service *Service) UploadCover(context context.Context, userID, fileName string, content io.Reader) (*Profile, error) {
	return service.replaceImage(context, userID, fileName, content, "covers", func(profile *Profile, url string) {
		profile.CoverURL = url
	})
}

// replaceImage uploads the new image and persists the refreshed URL.
func (service *Service) replaceImage(
	context context.Context,
	userID, fileName string,
	content io.Reader,
	category string,
	assign func(*Profile, string),
) (*Profile, error) {

	key := objectKey(userID, category, fileName)

	url, err := service.blobs.Save(context, key, content)
	if err != nil {
		return nil, fmt.Errorf("profile_service_upload_failed: %w", err)
	}

	profile, err := service.Get(context, userID)
	if err != nil {
		return nil, err
	}

	assign(profile, url)

	if err := service.profiles.Upsert(context, profile); err != nil {
		return nil, fmt.Errorf("profile_service_save_failed: %w", err)
	}

	service.logger.Info("profile_image_updated",
		slog.String("user_id", userID),
		slog.String("category", category),
	)

	return profile, nil
}

// objectKey builds the blob path for a profile image.
//
// Layout: {userID}/profile/{avatars|covers}/{uuid}_{sanitized-name}
func objectKey(userID, category, fileName string) string {
	return fmt.Sprintf("%s/profile/%s/%s_%s", userID, category, uuid.Must(), keysafe.FileName(fileName))
}

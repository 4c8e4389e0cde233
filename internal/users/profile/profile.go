// Copyright (c) 2026 Eternize. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package profile manages the public-facing presentation of a user account.

It stores the avatar and cover images shown on the member's dashboard and
handles their upload to durable blob storage.
*/
package profile

import (
	"context"
	"time"
)

// # Domain Entities

// Profile holds the presentation assets of one user.
//
// The row shares its primary key with users.account; a user without a row
// simply has no custom images yet.
type Profile struct {
	UserID    string    `json:"user_id"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CoverURL  string    `json:"cover_url,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// # Field Identifiers

const (
	FieldAvatar = "avatar"
	FieldCover  = "cover"
)

// # Data Access

// Repository defines the data access contract for user profiles.
type Repository interface {

	/*
		FindByUserID returns the profile row for a user.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - *Profile: Hydrated entity
		  - error: apperr.NotFound when no row exists
	*/
	FindByUserID(context context.Context, userID string) (*Profile, error)

	/*
		Upsert inserts or replaces the profile row for a user.

		Parameters:
		  - context: context.Context
		  - profile: *Profile

		Returns:
		  - error: Persistence failures
	*/
	Upsert(context context.Context, profile *Profile) error
}

// Copyright (c) 2026 Eternize. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package memorial defines the core domain of the Eternize platform.

It manages the lifecycle of digital memorial pages: creation through a
multi-step editor, admin approval, media galleries, biographical timelines,
and the view-time access decision.

Core Responsibility:

  - Lifecycle: Pending/Approved approval states and the admin-only toggle.
  - Media: Reconciliation of existing, new, and removed gallery items.
  - Timeline: Year-ordered life events with a stable sort contract.
  - Access: The first-match-wins view predicate (demo, approved, owner, admin).

This package acts as the source of truth for all memorial-related data models.
*/
package memorial

import (
	"strings"
	"time"
)

// # Domain Enums

// ApprovalState represents the moderation state of a memorial.
//
// At rest the state is a nullable boolean column; the store normalizes it
// into this enum on every read so the rest of the codebase never branches
// on raw booleans. NULL reads as [ApprovalPending].
type ApprovalState string

const (
	// ApprovalPending means the memorial awaits the administrator's review.
	// Every new memorial starts here, regardless of payment interaction.
	ApprovalPending ApprovalState = "pending"

	// ApprovalApproved means the administrator has published the memorial.
	ApprovalApproved ApprovalState = "approved"
)

// IsValid reports whether s is a recognised [ApprovalState] value.
func (s ApprovalState) IsValid() bool {
	switch s {
	case ApprovalPending, ApprovalApproved:
		return true
	}
	return false
}

// ApprovalFromBool normalizes the persisted nullable boolean into the enum.
func ApprovalFromBool(approved *bool) ApprovalState {
	if approved != nil && *approved {
		return ApprovalApproved
	}
	return ApprovalPending
}

// Bool returns the persisted boolean form of the state.
func (s ApprovalState) Bool() bool {
	return s == ApprovalApproved
}

// # Demo Records

// DemoIDPrefix marks the ids of curated demonstration memorials.
// Demo records never hit the database and are always viewable.
const DemoIDPrefix = "demo-"

// IsDemoID reports whether the id belongs to the demo registry.
func IsDemoID(id string) bool {
	return strings.HasPrefix(id, DemoIDPrefix)
}

// # Core Entities

// Memorial is the central aggregate of the Eternize domain.
// It represents a single tribute page owned by one user.
type Memorial struct {
	ID           string        `json:"id"`
	UserID       string        `json:"user_id"`
	Name         string        `json:"name"`
	Relationship string        `json:"relationship,omitempty"`
	BirthDate    string        `json:"birth_date,omitempty"` // YYYY-MM-DD, optional
	DeathDate    string        `json:"death_date,omitempty"` // YYYY-MM-DD, optional
	Biography    string        `json:"biography,omitempty"`
	IsPublic     bool          `json:"is_public"` // Owner intent; orthogonal to Status
	Status       ApprovalState `json:"status"`

	CoverImageURL   string `json:"cover_image_url,omitempty"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`

	Timeline []TimelineEvent `json:"timeline,omitempty"`
	Media    []MediaItem     `json:"media,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsOwnedBy reports whether the given user id owns this memorial.
func (m *Memorial) IsOwnedBy(userID string) bool {
	return userID != "" && m.UserID == userID
}

// TimelineEvent is a single dated entry in a memorial's life story.
type TimelineEvent struct {
	ID          string `json:"id"`
	MemorialID  string `json:"memorial_id,omitempty"`
	Year        string `json:"year"` // Free text; numeric parse drives ordering
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// MediaItem is a durable, already-stored gallery asset.
type MediaItem struct {
	ID         string    `json:"id"`
	MemorialID string    `json:"memorial_id,omitempty"`
	Kind       MediaKind `json:"type"`
	URL        string    `json:"url"`
	FileName   string    `json:"file_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// # Search & Filtering

// Filter holds the parameters for a filtered memorial list query.
type Filter struct {
	Query    string `json:"q,omitempty"` // Name search term
	OwnerID  string `json:"owner_id,omitempty"`
	Public   *bool  `json:"public,omitempty"`
	Approved *bool  `json:"approved,omitempty"`
}

// # Field Identifiers

// Global field names for validation and dynamic query mapping.
const (
	FieldID              = "id"
	FieldUserID          = "user_id"
	FieldName            = "name"
	FieldRelationship    = "relationship"
	FieldBirthDate       = "birth_date"
	FieldDeathDate       = "death_date"
	FieldBiography       = "biography"
	FieldIsPublic        = "is_public"
	FieldStatus          = "status"
	FieldCoverImageURL   = "cover_image_url"
	FieldProfileImageURL = "profile_image_url"
)

// Field identifiers for the [TimelineEvent] and [MediaItem] domains.
const (
	FieldYear        = "year"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldMediaKind   = "type"
	FieldMediaURL    = "url"
	FieldFileName    = "file_name"
)

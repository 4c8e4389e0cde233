// Copyright (c) 2026 Eternize. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package memorial

import (
	"context"
	"log/slog"

	"github.com/eternize/eternize/internal/platform/apperr"
	"github.com/eternize/eternize/internal/platform/ctxutil"
	"github.com/eternize/eternize/internal/platform/objstore"
	"github.com/eternize/eternize/internal/platform/sec"
	"github.com/eternize/eternize/internal/platform/validate"
	"github.com/eternize/eternize/pkg/optimistic"
	"github.com/eternize/eternize/pkg/pagination"
	"github.com/eternize/eternize/pkg/uuid"
)

// # Service

// Service implements the memorial lifecycle: creation, editing, approval,
// deletion, and the view-time access decision.
type Service struct {
	memorials MemorialRepository
	timelines TimelineRepository
	media     MediaRepository
	uploader  *Uploader
	demos     *DemoRegistry
	admin     sec.AdminMatcher

	publicOrigin string
	paymentURL   string
}

// NewService wires the memorial service with its dependencies.
func NewService(
	memorials MemorialRepository,
	timelines TimelineRepository,
	media MediaRepository,
	blobs objstore.BlobStore,
	demos *DemoRegistry,
	admin sec.AdminMatcher,
	publicOrigin string,
	paymentURL string,
) *Service {
	return &Service{
		memorials:    memorials,
		timelines:    timelines,
		media:        media,
		uploader:     NewUploader(blobs),
		demos:        demos,
		admin:        admin,
		publicOrigin: publicOrigin,
		paymentURL:   paymentURL,
	}
}

// Viewer derives the access-control identity for a set of claims, using the
// service's configured admin matcher.
func (service *Service) Viewer(claims *sec.AuthClaims) ViewerContext {
	return ViewerFromClaims(claims, service.admin)
}

// # Inputs

// TimelineEntry is one life event as submitted by the editor.
type TimelineEntry struct {
	ID          string `json:"id,omitempty"`
	Year        string `json:"year"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// SaveInput is the full editor state submitted on create and on edit.
//
// The editor always sends everything: the memorial fields, the complete
// timeline, the complete media set (existing and new), and the accumulated
// removal ids. Reconciliation happens server-side.
type SaveInput struct {
	Name         string
	Relationship string
	BirthDate    string
	DeathDate    string
	Biography    string
	IsPublic     bool

	Timeline        []TimelineEntry
	Media           []MediaUpload
	RemovedMediaIDs []string

	// Optional replacement images for the page itself
	ProfileImage *MediaUpload
	CoverImage   *MediaUpload
}

// CreateResult pairs the new memorial with the advisory payment redirect.
type CreateResult struct {
	Memorial   *Memorial `json:"memorial"`
	PaymentURL string    `json:"payment_url"`
}

// validateSaveInput checks the editor state before any write happens.
func validateSaveInput(input SaveInput) error {
	v := &validate.Validator{}
	v.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 150).
		Date(FieldBirthDate, input.BirthDate).
		Date(FieldDeathDate, input.DeathDate)

	for _, entry := range input.Timeline {
		v.Custom(FieldYear, entry.Year == "", "Every timeline event needs a year").
			Custom(FieldTitle, entry.Title == "", "Every timeline event needs a title")
		if v.HasErrors() {
			break
		}
	}

	for _, item := range input.Media {
		if !item.Kind.IsValid() {
			v.Custom(FieldMediaKind, true, "Unknown media type: "+string(item.Kind))
			break
		}
	}

	return v.Err()
}

// # Lifecycle Operations

/*
Create persists a new memorial for the owner.

The approval state is always Pending on creation, no matter what the client
sent or whether a payment page was visited. The response carries the
advisory payment URL; completing it is self-reported and never verified.

Parameters:
  - context: context.Context
  - ownerID: string (Authenticated user)
  - input: SaveInput (Full editor state)

Returns:
  - *CreateResult: The stored memorial plus the payment redirect
  - error: Validation or persistence failures
*/
func (service *Service) Create(context context.Context, ownerID string, input SaveInput) (*CreateResult, error) {
	if err := validateSaveInput(input); err != nil {
		return nil, err
	}

	logger := ctxutil.GetLogger(context)

	memorial := &Memorial{
		ID:           uuid.Must(),
		UserID:       ownerID,
		Name:         input.Name,
		Relationship: input.Relationship,
		BirthDate:    input.BirthDate,
		DeathDate:    input.DeathDate,
		Biography:    input.Biography,
		IsPublic:     input.IsPublic,
		Status:       ApprovalPending,
	}

	// Page images are best-effort like every other upload
	memorial.ProfileImageURL = service.saveImage(context, ownerID, memorial.ID, input.ProfileImage, "")
	memorial.CoverImageURL = service.saveImage(context, ownerID, memorial.ID, input.CoverImage, "")

	if err := service.memorials.Create(context, memorial); err != nil {
		return nil, err
	}

	if err := service.writeTimeline(context, memorial, input.Timeline); err != nil {
		return nil, err
	}

	memorial.Media = service.writeMedia(context, memorial, BuildPlan(input.Media, input.RemovedMediaIDs), nil)

	logger.InfoContext(context, "memorial_created",
		slog.String("memorial_id", memorial.ID),
		slog.String("user_id", ownerID),
	)

	return &CreateResult{Memorial: memorial, PaymentURL: service.paymentURL}, nil
}

/*
Update rewrites an existing memorial from the full editor state.

Only the owner may edit. The approval state is never touched here: an
approved memorial stays approved through an edit, a pending one stays
pending.

Parameters:
  - context: context.Context
  - viewer: ViewerContext (Must be the owner)
  - id: string (Memorial UUID)
  - input: SaveInput (Full editor state)

Returns:
  - *Memorial: The updated, hydrated memorial
  - error: Forbidden, validation, or persistence failures
*/
func (service *Service) Update(context context.Context, viewer ViewerContext, id string, input SaveInput) (*Memorial, error) {
	if IsDemoID(id) {
		return nil, apperr.Forbidden("Demo content cannot be edited")
	}

	existing, err := service.memorials.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if !existing.IsOwnedBy(viewer.UserID) {
		return nil, apperr.Forbidden("Only the owner can edit this memorial")
	}

	if err := validateSaveInput(input); err != nil {
		return nil, err
	}

	memorial := &Memorial{
		ID:           existing.ID,
		UserID:       existing.UserID,
		Name:         input.Name,
		Relationship: input.Relationship,
		BirthDate:    input.BirthDate,
		DeathDate:    input.DeathDate,
		Biography:    input.Biography,
		IsPublic:     input.IsPublic,
		Status:       existing.Status,
		CreatedAt:    existing.CreatedAt,
	}

	// A failed replacement keeps the previous image
	memorial.ProfileImageURL = service.saveImage(context, existing.UserID, id, input.ProfileImage, existing.ProfileImageURL)
	memorial.CoverImageURL = service.saveImage(context, existing.UserID, id, input.CoverImage, existing.CoverImageURL)

	if err := service.memorials.Update(context, memorial, viewer.UserID); err != nil {
		return nil, err
	}

	if err := service.writeTimeline(context, memorial, input.Timeline); err != nil {
		return nil, err
	}

	plan := BuildPlan(input.Media, input.RemovedMediaIDs)
	retained := make([]MediaItem, 0, len(plan.Retained))
	for _, item := range plan.Retained {
		retained = append(retained, MediaItem{
			ID: item.ID, MemorialID: id, Kind: item.Kind,
			URL: item.URL, FileName: item.FileName,
		})
	}
	memorial.Media = service.writeMedia(context, memorial, plan, retained)

	ctxutil.GetLogger(context).InfoContext(context, "memorial_updated",
		slog.String("memorial_id", id),
		slog.String("user_id", viewer.UserID),
	)

	return memorial, nil
}

/*
SetApproval toggles the approval state of a memorial.

This is the only promotion path in the system and it is reversible: the
administrator can demote an approved memorial back to pending. The admin
predicate is re-checked here even though the route is already gated.

Demo records toggle against the in-memory registry through the same
optimistic apply/confirm cycle as database records.

Parameters:
  - context: context.Context
  - viewer: ViewerContext (Must be the administrator)
  - id: string (Memorial or demo id)
  - state: ApprovalState (Target state)

Returns:
  - *Memorial: The memorial with its confirmed state
  - error: Forbidden, validation, or persistence failures
*/
func (service *Service) SetApproval(context context.Context, viewer ViewerContext, id string, state ApprovalState) (*Memorial, error) {

	// Secondary guard: never trust a stale admin flag from routing alone
	if !viewer.IsAdmin {
		return nil, apperr.Forbidden("Insufficient permissions")
	}

	if !state.IsValid() {
		return nil, validate.RequiredError(FieldStatus, "Must be 'pending' or 'approved'")
	}

	logger := ctxutil.GetLogger(context)

	if IsDemoID(id) {
		err := service.demos.Update(id,
			func(record *Memorial) { record.Status = state },
			func() error { return nil },
		)
		if err != nil {
			return nil, err
		}

		logger.InfoContext(context, "memorial_approval_changed",
			slog.String("memorial_id", id),
			slog.String("state", string(state)),
			slog.Bool("demo", true),
		)
		return service.demos.Get(id), nil
	}

	memorial, err := service.memorials.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	// Apply locally, confirm against the store, roll back on failure
	err = optimistic.Apply(memorial,
		func(m *Memorial) { m.Status = state },
		func() error { return service.memorials.SetApproval(context, id, state) },
	)
	if err != nil {
		return nil, err
	}

	logger.InfoContext(context, "memorial_approval_changed",
		slog.String("memorial_id", id),
		slog.String("state", string(state)),
	)

	return memorial, nil
}

/*
Delete removes a memorial in any state. Owner and administrator may delete.

Database rows cascade; storage blobs are intentionally left behind and the
retention is logged so operators can reclaim space out of band.
*/
func (service *Service) Delete(context context.Context, viewer ViewerContext, id string) error {
	if IsDemoID(id) {
		return apperr.Forbidden("Demo content cannot be deleted")
	}

	memorial, err := service.memorials.FindByID(context, id)
	if err != nil {
		return err
	}
	if !memorial.IsOwnedBy(viewer.UserID) && !viewer.IsAdmin {
		return apperr.Forbidden("Only the owner or an administrator can delete this memorial")
	}

	if err := service.memorials.Delete(context, id); err != nil {
		return err
	}

	ctxutil.GetLogger(context).InfoContext(context, "memorial_deleted",
		slog.String("memorial_id", id),
		slog.String("user_id", viewer.UserID),
		slog.Bool("blobs_retained", true),
	)

	return nil
}

// # Read Operations

/*
GetFull loads a memorial with its sorted timeline and media, then applies
the view-time access decision.

Returns:
  - *Memorial: The hydrated page when the viewer is allowed
  - error: apperr.Locked (neutral 403) when denied; NotFound when missing
*/
func (service *Service) GetFull(context context.Context, viewer ViewerContext, id string) (*Memorial, error) {
	if IsDemoID(id) {
		record := service.demos.Get(id)
		if record == nil {
			return nil, apperr.NotFound("Memorial")
		}
		SortEvents(record.Timeline)
		return record, nil
	}

	memorial, err := service.memorials.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if Decide(viewer, memorial) != DecisionAllow {
		return nil, apperr.Locked("memorial")
	}

	events, err := service.timelines.ListByMemorial(context, id)
	if err != nil {
		return nil, err
	}
	SortEvents(events)
	memorial.Timeline = events

	items, err := service.media.ListByMemorial(context, id)
	if err != nil {
		return nil, err
	}
	memorial.Media = items

	return memorial, nil
}

/*
Share builds the share link and QR render URL for a memorial the viewer is
allowed to see.
*/
func (service *Service) Share(context context.Context, viewer ViewerContext, id string) (*ShareLink, error) {
	if IsDemoID(id) {
		if service.demos.Get(id) == nil {
			return nil, apperr.NotFound("Memorial")
		}
	} else {
		memorial, err := service.memorials.FindByID(context, id)
		if err != nil {
			return nil, err
		}
		if Decide(viewer, memorial) != DecisionAllow {
			return nil, apperr.Locked("memorial")
		}
	}

	link := NewShareLink(service.publicOrigin, id)
	return &link, nil
}

/*
ListPublic returns the public catalogue: memorials that are both public and
approved. When the catalogue is empty and no search is active, the curated
demo pages are returned instead so the discovery screen is never blank.
*/
func (service *Service) ListPublic(context context.Context, query string, params pagination.Params) ([]*Memorial, pagination.Meta, error) {
	isPublic := true
	isApproved := true
	filter := Filter{Query: query, Public: &isPublic, Approved: &isApproved}

	memorials, total, err := service.memorials.List(context, filter, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	// Demo fallback keeps the public screen populated pre-launch
	if total == 0 && query == "" {
		demos := service.demos.List()
		list := make([]*Memorial, 0, len(demos))
		for i := range demos {
			list = append(list, &demos[i])
		}
		return list, pagination.NewMeta(params.Page, params.Limit, len(list)), nil
	}

	return memorials, pagination.NewMeta(params.Page, params.Limit, total), nil
}

/*
ListByOwner returns every memorial of one user for the dashboard, pending
and approved alike.
*/
func (service *Service) ListByOwner(context context.Context, ownerID string, params pagination.Params) ([]*Memorial, pagination.Meta, error) {
	memorials, total, err := service.memorials.List(context, Filter{OwnerID: ownerID}, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return memorials, pagination.NewMeta(params.Page, params.Limit, total), nil
}

/*
ListAll returns the full moderation queue for the administrator, demo
records included so the moderation screen behaves uniformly.
*/
func (service *Service) ListAll(context context.Context, viewer ViewerContext, params pagination.Params) ([]*Memorial, pagination.Meta, error) {

	// Secondary guard, same as SetApproval
	if !viewer.IsAdmin {
		return nil, pagination.Meta{}, apperr.Forbidden("Insufficient permissions")
	}

	memorials, total, err := service.memorials.List(context, Filter{}, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	// Demo records ride along on the first page only
	if params.Page <= 1 {
		demos := service.demos.List()
		withDemos := make([]*Memorial, 0, len(demos)+len(memorials))
		for i := range demos {
			withDemos = append(withDemos, &demos[i])
		}
		withDemos = append(withDemos, memorials...)
		memorials = withDemos
	}

	return memorials, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// # Internal Helpers

// saveImage uploads an optional page image and returns its durable URL.
// On failure (or when no image was submitted) the fallback URL is kept.
func (service *Service) saveImage(context context.Context, ownerID, memorialID string, upload *MediaUpload, fallback string) string {
	if upload == nil || upload.Content == nil {
		return fallback
	}

	stored := service.uploader.UploadAll(context, ownerID, memorialID, []MediaUpload{*upload})
	if len(stored) == 0 {
		return fallback
	}
	return stored[0].URL
}

// writeTimeline sorts and persists the full submitted timeline.
func (service *Service) writeTimeline(context context.Context, memorial *Memorial, entries []TimelineEntry) error {
	events := make([]TimelineEvent, 0, len(entries))
	for _, entry := range entries {
		id := entry.ID
		if id == "" {
			id = uuid.Must()
		}
		events = append(events, TimelineEvent{
			ID:          id,
			MemorialID:  memorial.ID,
			Year:        entry.Year,
			Title:       entry.Title,
			Description: entry.Description,
		})
	}
	SortEvents(events)

	if err := service.timelines.Replace(context, memorial.ID, events); err != nil {
		return err
	}
	memorial.Timeline = events
	return nil
}

// writeMedia executes a reconciliation plan: row deletes first, then the
// concurrent upload fan-out, then inserts for whatever survived.
func (service *Service) writeMedia(context context.Context, memorial *Memorial, plan Plan, retained []MediaItem) []MediaItem {
	logger := ctxutil.GetLogger(context)

	if len(plan.Deletes) > 0 {
		if err := service.media.DeleteByIDs(context, memorial.ID, plan.Deletes); err != nil {
			// Removal failure is not fatal to the save; rows are retried on the next edit
			logger.WarnContext(context, "media_delete_failed",
				slog.String("memorial_id", memorial.ID),
				slog.Any("error", err),
			)
		}
	}

	stored := service.uploader.UploadAll(context, memorial.UserID, memorial.ID, plan.Uploads)
	if len(stored) > 0 {
		if err := service.media.Insert(context, stored); err != nil {
			logger.WarnContext(context, "media_insert_failed",
				slog.String("memorial_id", memorial.ID),
				slog.Any("error", err),
			)
			stored = nil
		}
	}

	return append(retained, stored...)
}

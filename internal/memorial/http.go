// Copyright (c) 2026 Eternize. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package memorial

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/eternize/eternize/internal/platform/middleware"
	requestutil "github.com/eternize/eternize/internal/platform/request"
	"github.com/eternize/eternize/internal/platform/respond"
	"github.com/eternize/eternize/internal/platform/sec"
	"github.com/eternize/eternize/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for memorial pages.
// It translates web requests into domain service calls.
type Handler struct {
	service *Service
	admin   sec.AdminMatcher
}

// NewHandler constructs a new memorial [Handler] with its dependencies.
func NewHandler(service *Service, admin sec.AdminMatcher) *Handler {
	return &Handler{service: service, admin: admin}
}

// Routes returns a [chi.Router] configured with the memorial endpoints.
//
// # Routing Strategy
//
//   - Discovery (Public): Catalogue browsing and page viewing; the view-time
//     access decision happens in the service, not the router.
//   - Authoring (Authenticated): Create, edit, and delete.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Discovery Endpoints
	router.Get("/", handler.listMemorials)
	router.Get("/{id}", handler.getMemorial)
	router.Get("/{id}/share", handler.shareMemorial)

	// ## Authoring (Authenticated)
	router.Group(func(owner chi.Router) {
		owner.Use(middleware.RequireAuth)

		owner.Post("/", handler.createMemorial)
		owner.Patch("/{id}", handler.updateMemorial)
		owner.Delete("/{id}", handler.deleteMemorial)
	})

	return router
}

// OwnerRoutes returns the dashboard endpoints mounted under /me.
func (handler *Handler) OwnerRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/memorials", handler.listMyMemorials)

	return router
}

// AdminRoutes returns the moderation endpoints mounted under /admin.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)
	router.Use(middleware.RequireAdmin(handler.admin))

	router.Get("/memorials", handler.listAllMemorials)
	router.Patch("/memorials/{id}/status", handler.setApprovalStatus)

	return router
}

// # Request Payloads

// mediaManifestEntry describes one media slot in the submitted editor state.
//
// Existing items carry their stored URL; new items name the multipart form
// part that holds the file content.
type mediaManifestEntry struct {
	ID         string    `json:"id"`
	Kind       MediaKind `json:"type"`
	IsExisting bool      `json:"is_existing"`
	URL        string    `json:"url,omitempty"`
	FileName   string    `json:"file_name,omitempty"`
	Part       string    `json:"part,omitempty"`
}

// saveMemorialRequest defines the inbound editor state for create and edit.
type saveMemorialRequest struct {
	Name            string               `json:"name"`
	Relationship    string               `json:"relationship"`
	BirthDate       string               `json:"birth_date"`
	DeathDate       string               `json:"death_date"`
	Biography       string               `json:"biography"`
	IsPublic        bool                 `json:"is_public"`
	Timeline        []TimelineEntry      `json:"timeline"`
	Media           []mediaManifestEntry `json:"media"`
	RemovedMediaIDs []string             `json:"removed_media_ids"`
}

/*
decodeSaveInput assembles a [SaveInput] from the request.

The editor submits multipart/form-data: a "data" field with the JSON state
plus one file part per new media item and the optional "profile_image" and
"cover_image" parts. A plain JSON body is accepted for text-only saves.

Parameters:
  - request: *http.Request

Returns:
  - SaveInput: The assembled editor state with open file readers
  - error: Parse or validation failures
*/
func decodeSaveInput(request *http.Request) (SaveInput, error) {
	var payload saveMemorialRequest

	isMultipart := strings.HasPrefix(request.Header.Get("Content-Type"), "multipart/form-data")
	if isMultipart {
		if err := requestutil.ParseMultipart(request); err != nil {
			return SaveInput{}, err
		}
		if err := requestutil.DecodeJSONPart(request, "data", &payload); err != nil {
			return SaveInput{}, err
		}
	} else {
		if err := requestutil.DecodeJSON(request, &payload); err != nil {
			return SaveInput{}, err
		}
	}

	input := SaveInput{
		Name:            payload.Name,
		Relationship:    payload.Relationship,
		BirthDate:       payload.BirthDate,
		DeathDate:       payload.DeathDate,
		Biography:       payload.Biography,
		IsPublic:        payload.IsPublic,
		Timeline:        payload.Timeline,
		RemovedMediaIDs: payload.RemovedMediaIDs,
	}

	// Media manifest resolution
	for _, entry := range payload.Media {
		upload := MediaUpload{
			ID:         entry.ID,
			Kind:       entry.Kind,
			IsExisting: entry.IsExisting,
			URL:        entry.URL,
			FileName:   entry.FileName,
		}

		if !entry.IsExisting && isMultipart && entry.Part != "" {
			file, header, err := requestutil.FormFile(request, entry.Part)
			if err != nil {
				return SaveInput{}, err
			}
			if file == nil {
				// Manifest named a part the form never delivered; skip the slot
				continue
			}
			upload.Content = file
			if upload.FileName == "" {
				upload.FileName = header.Filename
			}
		}

		input.Media = append(input.Media, upload)
	}

	if isMultipart {
		var err error
		if input.ProfileImage, err = pageImage(request, "profile_image"); err != nil {
			return SaveInput{}, err
		}
		if input.CoverImage, err = pageImage(request, "cover_image"); err != nil {
			return SaveInput{}, err
		}
	}

	return input, nil
}

// pageImage reads an optional page-level image part.
func pageImage(request *http.Request, field string) (*MediaUpload, error) {
	file, header, err := requestutil.FormFile(request, field)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, nil
	}
	return &MediaUpload{
		Kind:     MediaImage,
		FileName: header.Filename,
		Content:  file,
	}, nil
}

// # Discovery Endpoints

/*
GET /api/v1/memorials.

Description: Retrieves the public catalogue of approved memorials. When the
catalogue is empty and no search is active, curated demo pages are returned.

Request:
  - q: string (Name search)
  - limit: int
  - page: int

Response:
  - 200: []Memorial: Paginated list
*/
func (handler *Handler) listMemorials(writer http.ResponseWriter, request *http.Request) {
	// Pagination extraction using pkg/pagination
	paginationParams := pagination.FromRequest(request)

	// Domain Logic Execution
	memorials, meta, err := handler.service.ListPublic(request.Context(), request.URL.Query().Get("q"), paginationParams)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.Paginated(writer, memorials, meta)
}

/*
GET /api/v1/memorials/{id}.

Description: Retrieves a full memorial page with its sorted timeline and
media gallery. The access decision runs on every request.

Request:
  - id: string (UUID or demo id)

Response:
  - 200: Memorial: The full page
  - 403: MEMORIAL_LOCKED: Viewer is not allowed to see this page
  - 404: 404: ErrNotFound: Memorial not found
*/
func (handler *Handler) getMemorial(writer http.ResponseWriter, request *http.Request) {
	// Extract ID from URL
	memorialID := requestutil.ID(request, "id")

	// Viewer identity (may be anonymous)
	viewer := handler.service.Viewer(requestutil.Claims(request))

	// Domain Logic Execution
	memorial, err := handler.service.GetFull(request.Context(), viewer, memorialID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.OK(writer, memorial)
}

/*
GET /api/v1/memorials/{id}/share.

Description: Builds the share deep link and QR render URL for a memorial the
viewer is allowed to see.

Request:
  - id: string (UUID or demo id)

Response:
  - 200: ShareLink: Deep link plus QR image URL
  - 403: MEMORIAL_LOCKED: Viewer is not allowed to see this page
  - 404: 404: ErrNotFound: Memorial not found
*/
func (handler *Handler) shareMemorial(writer http.ResponseWriter, request *http.Request) {
	// Extract ID from URL
	memorialID := requestutil.ID(request, "id")

	// Viewer identity (may be anonymous)
	viewer := handler.service.Viewer(requestutil.Claims(request))

	// Domain Logic Execution
	link, err := handler.service.Share(request.Context(), viewer, memorialID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.OK(writer, link)
}

// # Authoring Endpoints

/*
POST /api/v1/memorials.

Description: Creates a new memorial from the full editor state. The page is
always created pending approval; the response carries the advisory payment
redirect.

Request (Body):
  - multipart/form-data: "data" JSON field plus file parts, or plain JSON

Response:
  - 201: CreateResult: The stored memorial and payment URL
  - 400: 400: ErrInvalidJSON/Validation: Invalid editor state
  - 401: 401: ErrUnauthorized: Missing or invalid token
*/
func (handler *Handler) createMemorial(writer http.ResponseWriter, request *http.Request) {
	// Session Validation
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Editor state assembly
	input, err := decodeSaveInput(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Domain Logic Execution
	result, err := handler.service.Create(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.Created(writer, result)
}

/*
PATCH /api/v1/memorials/{id}.

Description: Rewrites a memorial from the full editor state. Owner only.
The approval state is never touched by this endpoint.

Request:
  - id: string (UUID)
  - body: multipart/form-data or plain JSON (Full editor state)

Response:
  - 200: Memorial: The updated page
  - 400: 400: ErrInvalidJSON/Validation: Invalid editor state
  - 401: 401: ErrUnauthorized: Missing or invalid token
  - 403: 403: ErrForbidden: Not the owner, or a demo page
  - 404: 404: ErrNotFound: Memorial not found
*/
func (handler *Handler) updateMemorial(writer http.ResponseWriter, request *http.Request) {
	// Extract ID from URL
	memorialID := requestutil.ID(request, "id")

	// Session Validation
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Editor state assembly
	input, err := decodeSaveInput(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Domain Logic Execution
	memorial, err := handler.service.Update(request.Context(), handler.service.Viewer(claims), memorialID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.OK(writer, memorial)
}

/*
DELETE /api/v1/memorials/{id}.

Description: Removes a memorial in any state. Owner or administrator only.
Storage blobs are retained; only database rows are removed.

Request:
  - id: string (UUID)

Response:
  - 204: No Content: Success
  - 401: 401: ErrUnauthorized: Missing or invalid token
  - 403: 403: ErrForbidden: Not the owner or an administrator
  - 404: 404: ErrNotFound: Memorial not found
*/
func (handler *Handler) deleteMemorial(writer http.ResponseWriter, request *http.Request) {
	// Extract ID from URL
	memorialID := requestutil.ID(request, "id")

	// Session Validation
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Domain Logic Execution
	if err := handler.service.Delete(request.Context(), handler.service.Viewer(claims), memorialID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.NoContent(writer)
}

// # Dashboard Endpoints

/*
GET /api/v1/me/memorials.

Description: Lists every memorial of the authenticated user, pending and
approved alike.

Request:
  - limit: int
  - page: int

Response:
  - 200: []Memorial: Paginated list
  - 401: 401: ErrUnauthorized: Missing or invalid token
*/
func (handler *Handler) listMyMemorials(writer http.ResponseWriter, request *http.Request) {
	// Session Validation
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Pagination extraction using pkg/pagination
	paginationParams := pagination.FromRequest(request)

	// Domain Logic Execution
	memorials, meta, err := handler.service.ListByOwner(request.Context(), userID, paginationParams)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.Paginated(writer, memorials, meta)
}

// # Moderation Endpoints

/*
GET /api/v1/admin/memorials.

Description: Lists the full moderation queue, demo records included.

Request:
  - limit: int
  - page: int

Response:
  - 200: []Memorial: Paginated list
  - 401: 401: ErrUnauthorized: Missing or invalid token
  - 403: 403: ErrForbidden: Insufficient permissions
*/
func (handler *Handler) listAllMemorials(writer http.ResponseWriter, request *http.Request) {
	// Viewer identity
	viewer := handler.service.Viewer(requestutil.Claims(request))

	// Pagination extraction using pkg/pagination
	paginationParams := pagination.FromRequest(request)

	// Domain Logic Execution
	memorials, meta, err := handler.service.ListAll(request.Context(), viewer, paginationParams)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.Paginated(writer, memorials, meta)
}

/*
PATCH /api/v1/admin/memorials/{id}/status.

Description: Toggles the approval state of a memorial. This is the only
promotion path and it is reversible.

Request:
  - id: string (UUID or demo id)
  - body: { status: string } ("pending" or "approved")

Response:
  - 200: Memorial: The memorial with its confirmed state
  - 400: 400: ErrInvalidJSON/Validation: Unknown state
  - 401: 401: ErrUnauthorized: Missing or invalid token
  - 403: 403: ErrForbidden: Insufficient permissions
  - 404: 404: ErrNotFound: Memorial not found
*/
func (handler *Handler) setApprovalStatus(writer http.ResponseWriter, request *http.Request) {
	// Extract ID from URL
	memorialID := requestutil.ID(request, "id")

	// Strict JSON decoding
	var input struct {
		Status ApprovalState `json:"status"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Viewer identity
	viewer := handler.service.Viewer(requestutil.Claims(request))

	// Domain Logic Execution
	memorial, err := handler.service.SetApproval(request.Context(), viewer, memorialID, input.Status)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.OK(writer, memorial)
}

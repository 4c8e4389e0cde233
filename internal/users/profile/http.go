// Copyright (c) 2026 Eternize. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eternize/eternize/internal/platform/middleware"
	requestutil "github.com/eternize/eternize/internal/platform/request"
	"github.com/eternize/eternize/internal/platform/respond"
	"github.com/eternize/eternize/internal/platform/validate"
)

// # Handler Implementation

// Handler implements the HTTP layer for profile assets.
type Handler struct {
	service *Service
}

// NewHandler constructs a new profile [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the profile endpoints. All routes
// require authentication; profiles are only editable by their owner.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.getProfile)
	router.Put("/avatar", handler.uploadAvatar)
	router.Put("/cover", handler.uploadCover)

	return router
}

/*
GetProfile returns the authenticated user's presentation assets.

GET /api/v1/me/profile

Response:
  - 200: Profile: Current avatar and cover URLs (possibly empty)
  - 401: ErrUnauthorized: Missing or invalid token
*/
func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.service.Get(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

/*
UploadAvatar replaces the authenticated user's avatar image.

PUT /api/v1/me/profile/avatar

Request:
  - multipart/form-data with an "avatar" file part

Response:
  - 200: Profile: Profile with the new avatar URL
  - 400: Validation: Missing or oversized file
  - 401: ErrUnauthorized: Missing or invalid token
*/
func (handler *Handler) uploadAvatar(writer http.ResponseWriter, request *http.Request) {
	handler.uploadImage(writer, request, FieldAvatar, handler.service.UploadAvatar)
}

/*
UploadCover replaces the authenticated user's cover image.

PUT /api/v1/me/profile/cover

Request:
  - multipart/form-data with a "cover" file part

Response:
  - 200: Profile: Profile with the new cover URL
  - 400: Validation: Missing or oversized file
  - 401: ErrUnauthorized: Missing or invalid token
*/
func (handler *Handler) uploadCover(writer http.ResponseWriter, request *http.Request) {
	handler.uploadImage(writer, request, FieldCover, handler.service.UploadCover)
}

// uploadImage handles the shared multipart intake for both image slots.
func (handler *Handler) uploadImage(
	writer http.ResponseWriter,
	request *http.Request,
	field string,
	upload func(context context.Context, userID, fileName string, content io.Reader) (*Profile, error),
) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := requestutil.ParseMultipart(request); err != nil {
		respond.Error(writer, request, err)
		return
	}

	file, header, err := requestutil.FormFile(request, field)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if file == nil {
		respond.Error(writer, request, validate.RequiredError(field, "file is required"))
		return
	}
	defer file.Close()

	profile, err := upload(request.Context(), userID, header.Filename, file)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

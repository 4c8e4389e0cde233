// Copyright (c) 2026 Eternize. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/eternize/eternize/internal/platform/apperr"
	"github.com/eternize/eternize/internal/platform/constants"
	"github.com/eternize/eternize/internal/platform/ctxutil"
	"github.com/eternize/eternize/internal/platform/sec"
	"github.com/eternize/eternize/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ID retrieves a named URL parameter (UUID) from the request.
*/
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Claims extracts the authenticated user claims from the request context.

Returns nil if the request is not authenticated.
*/
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

/*
RequiredClaims ensures the request is authenticated and returns the user claims.

Returns:
  - *sec.AuthClaims: The authenticated user claims
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {

	// Get user claims
	claims := ctxutil.GetAuthUser(request.Context())

	// If the user is not authenticated, return an error
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	return claims, nil
}

/*
RequiredUserID returns the User ID of the currently logged-in user.

Returns:
  - string: User UUID
  - error: apperr.Unauthorized if not authenticated
*/
func RequiredUserID(request *http.Request) (string, error) {

	// Get user claims
	claims, err := RequiredClaims(request)

	// If the user is not authenticated, return an error
	if err != nil {
		return "", err
	}

	return claims.UserID, nil
}

/*
ParseMultipart parses a multipart/form-data body with the platform memory cap.

Returns:
  - error: apperr.ValidationError if the body is not valid multipart form data
*/
func ParseMultipart(request *http.Request) error {
	if !strings.HasPrefix(request.Header.Get("Content-Type"), "multipart/form-data") {
		return apperr.ValidationError("Expected multipart/form-data")
	}
	if err := request.ParseMultipartForm(constants.MaxUploadMemory); err != nil {
		return apperr.ValidationError("Invalid multipart form data")
	}
	return nil
}

/*
DecodeJSONPart decodes a named multipart form field containing a JSON document.

ParseMultipart must have been called on the request first.
*/
func DecodeJSONPart(request *http.Request, field string, target interface{}) error {
	raw := request.FormValue(field)
	if raw == "" {
		return apperr.ValidationError("Missing form field: " + field)
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
FormFile returns the first uploaded file for a named multipart form field,
or nil when the field is absent. Files over the platform size cap are rejected.
*/
func FormFile(request *http.Request, field string) (multipart.File, *multipart.FileHeader, error) {
	file, header, err := request.FormFile(field)
	if err == http.ErrMissingFile {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, apperr.ValidationError("Invalid file upload: " + field)
	}
	if header.Size > constants.MaxMediaFileSize {
		file.Close()
		return nil, nil, apperr.ValidationError("File too large: " + field)
	}
	return file, header, nil
}

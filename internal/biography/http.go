// Copyright (c) 2026 Eternize. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package biography

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eternize/eternize/internal/platform/middleware"
	requestutil "github.com/eternize/eternize/internal/platform/request"
	"github.com/eternize/eternize/internal/platform/respond"
	"github.com/eternize/eternize/internal/platform/validate"
)

// # Handler Implementation

// Handler implements the HTTP layer for biography generation.
type Handler struct {
	service *Service
}

// NewHandler constructs a new biography [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the biography endpoint. Generation is
// restricted to authenticated users to keep the external quota in check.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/generate", handler.generate)

	return router
}

// generateBiographyRequest defines the inbound JSON schema.
type generateBiographyRequest struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	BirthDate    string `json:"birth_date"`
	DeathDate    string `json:"death_date"`
	Memories     string `json:"memories"`
}

/*
POST /api/v1/biography/generate.

Description: Produces a celebratory biography draft from the submitted facts.
Upstream failures degrade to a locally assembled text, never to an error.

Request (Body):
  - generateBiographyRequest: JSON object (name and memories required)

Response:
  - 200: Result: Draft text and provenance flag
  - 400: 400: ErrInvalidJSON/Validation: Missing name or memories
  - 401: 401: ErrUnauthorized: Missing or invalid token
*/
func (handler *Handler) generate(writer http.ResponseWriter, request *http.Request) {
	var input generateBiographyRequest

	// Strict JSON decoding
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	// Domain Logic Execution
	result, err := handler.service.Generate(request.Context(), GenerateInput{
		Name:         input.Name,
		Relationship: input.Relationship,
		BirthDate:    input.BirthDate,
		DeathDate:    input.DeathDate,
		Memories:     input.Memories,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.OK(writer, result)
}

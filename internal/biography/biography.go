// Copyright (c) 2026 Eternize. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package biography produces draft life stories for the memorial editor.

It calls an external text-generation endpoint with a structured prompt built
from the facts the family provided. The generator is a black box: when it is
unreachable, misconfigured, or slow, the package degrades to a warm template
assembled from the same facts so the editor is never blocked.
*/
package biography

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/eternize/eternize/internal/platform/validate"
)

// # Constraints

const (
	// requestTimeout caps one generation round trip.
	requestTimeout = 30 * time.Second

	// targetWordCount is passed to the generator as a soft length hint.
	targetWordCount = 150

	// maxMemoriesLen bounds the free-text memories field.
	maxMemoriesLen = 4000
)

// Field names for validation in the biography domain.
const (
	FieldName     = "name"
	FieldMemories = "memories"
)

// # Service

// Service generates biography drafts through an external endpoint.
type Service struct {
	endpoint string
	apiKey   string
	client   *http.Client
	logger   *slog.Logger
}

// NewService constructs a biography [Service].
//
// An empty endpoint disables remote generation; every request then resolves
// to the local fallback text.
func NewService(endpoint, apiKey string, logger *slog.Logger) *Service {
	return &Service{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: requestTimeout},
		logger:   logger,
	}
}

// # Generation

// GenerateInput holds the facts a biography draft is built from.
type GenerateInput struct {
	Name         string
	Relationship string
	BirthDate    string
	DeathDate    string
	Memories     string
}

// Result is a finished draft. Generated reports whether the text came from
// the remote generator or the local fallback.
type Result struct {
	Biography string `json:"biography"`
	Generated bool   `json:"generated"`
}

/*
Generate produces a celebratory biography draft of roughly 150 words.

Description: Builds the prompt, calls the external generator, and falls back
to a locally assembled text on any upstream failure. The fallback path never
returns an error; only input validation can reject a request.

Parameters:
  - context: context.Context
  - input: GenerateInput

Returns:
  - *Result: The draft text and its provenance
  - error: Validation failures only
*/
func (service *Service) Generate(context context.Context, input GenerateInput) (*Result, error) {
	v := &validate.Validator{}
	v.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 150).
		Required(FieldMemories, input.Memories).
		MaxLen(FieldMemories, input.Memories, maxMemoriesLen)

	if err := v.Err(); err != nil {
		return nil, err
	}

	if service.endpoint != "" {
		text, err := service.callGenerator(context, buildPrompt(input))
		if err == nil && strings.TrimSpace(text) != "" {
			return &Result{Biography: strings.TrimSpace(text), Generated: true}, nil
		}

		service.logger.Warn("biography_generation_failed",
			slog.String("name", input.Name),
			slog.Any("error", err),
		)
	}

	return &Result{Biography: fallbackBiography(input), Generated: false}, nil
}

// # Generator Transport

// generateRequest is the wire payload sent to the external endpoint.
type generateRequest struct {
	Prompt    string `json:"prompt"`
	MaxWords  int    `json:"max_words"`
	Language  string `json:"language"`
	Formality string `json:"formality"`
}

// generateResponse is the wire payload returned by the external endpoint.
type generateResponse struct {
	Text string `json:"text"`
}

// callGenerator performs one round trip against the external endpoint.
func (service *Service) callGenerator(context context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(generateRequest{
		Prompt:    prompt,
		MaxWords:  targetWordCount,
		Language:  "pt-BR",
		Formality: "warm",
	})
	if err != nil {
		return "", fmt.Errorf("biography_marshal_failed: %w", err)
	}

	request, err := http.NewRequestWithContext(context, http.MethodPost, service.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("biography_request_failed: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	if service.apiKey != "" {
		request.Header.Set("Authorization", "Bearer "+service.apiKey)
	}

	response, err := service.client.Do(request)
	if err != nil {
		return "", fmt.Errorf("biography_call_failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(response.Body, 512))
		return "", fmt.Errorf("biography_upstream_status_%d: %s", response.StatusCode, string(body))
	}

	var decoded generateResponse
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("biography_decode_failed: %w", err)
	}

	return decoded.Text, nil
}

// # Prompt Assembly

// buildPrompt turns the provided facts into the generator instruction.
//
// The tone is fixed: a celebration of the person's life, never an obituary.
func buildPrompt(input GenerateInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Write a warm, celebratory biography of about %d words for a memorial page honoring %s.", targetWordCount, input.Name)

	if input.Relationship != "" {
		fmt.Fprintf(&b, " The author is their %s.", strings.ToLower(input.Relationship))
	}
	if input.BirthDate != "" && input.DeathDate != "" {
		fmt.Fprintf(&b, " They lived from %s to %s.", input.BirthDate, input.DeathDate)
	} else if input.BirthDate != "" {
		fmt.Fprintf(&b, " They were born on %s.", input.BirthDate)
	}

	fmt.Fprintf(&b, " Weave in these memories shared by the family: %s.", strings.TrimSpace(input.Memories))
	b.WriteString(" Focus on the joy they brought and the legacy they leave. Do not mention death directly; celebrate the life.")

	return b.String()
}

// fallbackBiography assembles a readable draft without the generator.
func fallbackBiography(input GenerateInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s touched the lives of everyone around them.", input.Name)

	if input.Relationship != "" {
		fmt.Fprintf(&b, " Remembered with love by their %s,", strings.ToLower(input.Relationship))
	} else {
		b.WriteString(" Remembered with love,")
	}

	b.WriteString(" they leave behind a story told in the moments their family holds dear: ")
	b.WriteString(strings.TrimSpace(input.Memories))

	if !strings.HasSuffix(b.String(), ".") {
		b.WriteString(".")
	}

	b.WriteString(" This page celebrates a life that continues to inspire all who knew them.")

	return b.String()
}

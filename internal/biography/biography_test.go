// Copyright (c) 2026 Eternize. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package biography

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

/*
TestGenerate_RemoteSuccess verifies the happy path: prompt delivery,
authorization header, and the returned draft.
*/
func TestGenerate_RemoteSuccess(t *testing.T) {
	var captured generateRequest

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		json.NewEncoder(w).Encode(generateResponse{Text: "  A life well lived.  "})
	}))
	defer upstream.Close()

	service := NewService(upstream.URL, "test-key", discardLogger())

	result, err := service.Generate(context.Background(), GenerateInput{
		Name:         "Maria da Silva",
		Relationship: "Daughter",
		BirthDate:    "1938-04-12",
		DeathDate:    "2024-11-02",
		Memories:     "She sang in the kitchen every Sunday.",
	})
	require.NoError(t, err)

	assert.True(t, result.Generated)
	assert.Equal(t, "A life well lived.", result.Biography)

	assert.Equal(t, targetWordCount, captured.MaxWords)
	assert.Contains(t, captured.Prompt, "Maria da Silva")
	assert.Contains(t, captured.Prompt, "daughter")
	assert.Contains(t, captured.Prompt, "1938-04-12")
	assert.Contains(t, captured.Prompt, "sang in the kitchen")
}

/*
TestGenerate_UpstreamFailureFallsBack verifies that a broken generator never
blocks the editor.
*/
func TestGenerate_UpstreamFailureFallsBack(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server_error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		}},
		{"invalid_json", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}},
		{"empty_text", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(generateResponse{Text: "   "})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstream := httptest.NewServer(tt.handler)
			defer upstream.Close()

			service := NewService(upstream.URL, "", discardLogger())

			result, err := service.Generate(context.Background(), GenerateInput{
				Name:     "João Pereira",
				Memories: "He built kites for the whole street.",
			})
			require.NoError(t, err)

			assert.False(t, result.Generated)
			assert.Contains(t, result.Biography, "João Pereira")
			assert.Contains(t, result.Biography, "built kites")
		})
	}
}

/*
TestGenerate_NoEndpointConfigured verifies local-only operation.
*/
func TestGenerate_NoEndpointConfigured(t *testing.T) {
	service := NewService("", "", discardLogger())

	result, err := service.Generate(context.Background(), GenerateInput{
		Name:         "Ana Costa",
		Relationship: "Grandson",
		Memories:     "Her garden fed three families.",
	})
	require.NoError(t, err)

	assert.False(t, result.Generated)
	assert.Contains(t, result.Biography, "Ana Costa")
	assert.Contains(t, result.Biography, "grandson")
}

/*
TestGenerate_Validation verifies that name and memories are mandatory.
*/
func TestGenerate_Validation(t *testing.T) {
	service := NewService("", "", discardLogger())

	tests := []struct {
		name  string
		input GenerateInput
	}{
		{"missing_name", GenerateInput{Memories: "Some memory"}},
		{"missing_memories", GenerateInput{Name: "Maria"}},
		{"memories_too_long", GenerateInput{Name: "Maria", Memories: strings.Repeat("x", maxMemoriesLen+1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Generate(context.Background(), tt.input)
			assert.Error(t, err)
		})
	}
}

/*
TestBuildPrompt_OmitsMissingFacts verifies prompt assembly with sparse input.
*/
func TestBuildPrompt_OmitsMissingFacts(t *testing.T) {
	prompt := buildPrompt(GenerateInput{
		Name:     "Maria",
		Memories: "She loved the sea.",
	})

	assert.Contains(t, prompt, "Maria")
	assert.Contains(t, prompt, "She loved the sea")
	assert.NotContains(t, prompt, "lived from")
	assert.NotContains(t, prompt, "The author is their")
}

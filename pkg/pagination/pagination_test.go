// Copyright (c) 2026 Eternize. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eternize/eternize/pkg/pagination"
)

/*
TestFromRequest verifies query parsing and clamping of hostile or absent
page/limit parameters.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected pagination.Params
	}{
		{name: "defaults when absent", url: "/memorials", expected: pagination.Params{Page: 1, Limit: 20}},
		{name: "explicit values", url: "/memorials?page=3&limit=50", expected: pagination.Params{Page: 3, Limit: 50}},
		{name: "zero page clamped", url: "/memorials?page=0", expected: pagination.Params{Page: 1, Limit: 20}},
		{name: "negative limit clamped", url: "/memorials?limit=-5", expected: pagination.Params{Page: 1, Limit: 20}},
		{name: "excessive limit clamped", url: "/memorials?limit=5000", expected: pagination.Params{Page: 1, Limit: 20}},
		{name: "garbage ignored", url: "/memorials?page=abc&limit=xyz", expected: pagination.Params{Page: 1, Limit: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", tt.url, nil)
			assert.Equal(t, tt.expected, pagination.FromRequest(request))
		})
	}
}

/*
TestOffset verifies the SQL offset derivation for 1-indexed pages.
*/
func TestOffset(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 20, pagination.Params{Page: 2, Limit: 20}.Offset())
	assert.Equal(t, 90, pagination.Params{Page: 10, Limit: 10}.Offset())
	assert.Equal(t, 0, pagination.Params{Page: 0, Limit: 20}.Offset())
}

/*
TestNewMeta verifies total page arithmetic including partial final pages.
*/
func TestNewMeta(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		total      int
		totalPages int
	}{
		{name: "exact division", page: 1, limit: 20, total: 40, totalPages: 2},
		{name: "partial final page", page: 1, limit: 20, total: 41, totalPages: 3},
		{name: "empty result", page: 1, limit: 20, total: 0, totalPages: 0},
		{name: "single item", page: 1, limit: 20, total: 1, totalPages: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := pagination.NewMeta(tt.page, tt.limit, tt.total)

			assert.Equal(t, tt.totalPages, meta.TotalPages)
			assert.Equal(t, tt.total, meta.Total)
			assert.Equal(t, tt.page, meta.Page)
		})
	}
}

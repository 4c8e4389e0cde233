// Copyright (c) 2026 Eternize. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package memorial_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eternize/eternize/internal/memorial"
	"github.com/eternize/eternize/internal/platform/apperr"
)

/*
TestTimeline_Add_Validation checks that year and title are both mandatory.
*/
func TestTimeline_Add_Validation(t *testing.T) {
	tests := []struct {
		name        string
		year        string
		title       string
		failedField string
	}{
		{"missing_year", "", "Born in Lisbon", "year"},
		{"missing_title", "1934", "", "title"},
		{"whitespace_title", "1934", "   ", "title"},
		{"valid", "1934", "Born in Lisbon", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timeline := &memorial.Timeline{}
			event, err := timeline.Add(tt.year, tt.title, "")

			if tt.failedField == "" {
				require.NoError(t, err)
				require.NotNil(t, event)
				assert.NotEmpty(t, event.ID)
				return
			}

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			assert.Equal(t, tt.failedField, ae.Details[0].Field)
			assert.Nil(t, event)
		})
	}
}

/*
TestTimeline_Add_KeepsSorted verifies ordered insertion by numeric year.
*/
func TestTimeline_Add_KeepsSorted(t *testing.T) {
	timeline := &memorial.Timeline{}

	_, err := timeline.Add("1990", "Wedding", "")
	require.NoError(t, err)
	_, err = timeline.Add("1955", "Birth", "")
	require.NoError(t, err)
	_, err = timeline.Add("2010", "Retirement", "")
	require.NoError(t, err)
	_, err = timeline.Add("1972", "Graduation", "")
	require.NoError(t, err)

	years := collectYears(timeline.Events)
	assert.Equal(t, []string{"1955", "1972", "1990", "2010"}, years)
}

/*
TestTimeline_UnparsedYearsSortFirst locks in the legacy ordering contract:
years without a numeric prefix come before every numeric year.
*/
func TestTimeline_UnparsedYearsSortFirst(t *testing.T) {
	events := []memorial.TimelineEvent{
		{ID: "a", Year: "1990", Title: "Wedding"},
		{ID: "b", Year: "unknown", Title: "Childhood"},
		{ID: "c", Year: "1955", Title: "Birth"},
		{ID: "d", Year: "circa", Title: "Youth"},
	}

	memorial.SortEvents(events)

	years := collectYears(events)
	assert.Equal(t, []string{"unknown", "circa", "1955", "1990"}, years)
}

/*
TestTimeline_NumericPrefixParsing verifies that a year like "1990s" is
ordered by its leading digits.
*/
func TestTimeline_NumericPrefixParsing(t *testing.T) {
	events := []memorial.TimelineEvent{
		{ID: "a", Year: "2001", Title: "Move"},
		{ID: "b", Year: "1990s", Title: "Career"},
		{ID: "c", Year: "1985", Title: "Marriage"},
	}

	memorial.SortEvents(events)

	years := collectYears(events)
	assert.Equal(t, []string{"1985", "1990s", "2001"}, years)
}

/*
TestTimeline_SortIsStable checks that events sharing a year keep their
relative insertion order after sorting.
*/
func TestTimeline_SortIsStable(t *testing.T) {
	events := []memorial.TimelineEvent{
		{ID: "first", Year: "1990", Title: "First"},
		{ID: "second", Year: "1990", Title: "Second"},
		{ID: "third", Year: "1990", Title: "Third"},
		{ID: "earlier", Year: "1980", Title: "Earlier"},
	}

	memorial.SortEvents(events)

	require.Len(t, events, 4)
	assert.Equal(t, "earlier", events[0].ID)
	assert.Equal(t, "first", events[1].ID)
	assert.Equal(t, "second", events[2].ID)
	assert.Equal(t, "third", events[3].ID)
}

/*
TestTimeline_Remove verifies deletion and the absent-id no-op contract.
*/
func TestTimeline_Remove(t *testing.T) {
	timeline := &memorial.Timeline{}
	event, err := timeline.Add("1955", "Birth", "")
	require.NoError(t, err)
	_, err = timeline.Add("1990", "Wedding", "")
	require.NoError(t, err)

	// Removing an existing event shrinks the slice
	timeline.Remove(event.ID)
	assert.Len(t, timeline.Events, 1)

	// Removing the same id again changes nothing
	timeline.Remove(event.ID)
	assert.Len(t, timeline.Events, 1)

	// Removing a never-seen id changes nothing
	timeline.Remove("no-such-id")
	assert.Len(t, timeline.Events, 1)
}

// collectYears extracts the year strings in slice order.
func collectYears(events []memorial.TimelineEvent) []string {
	years := make([]string, 0, len(events))
	for _, event := range events {
		years = append(years, event.Year)
	}
	return years
}

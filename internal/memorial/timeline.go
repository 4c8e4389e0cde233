// Copyright (c) 2026 Eternize. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package memorial

import (
	"sort"
	"strconv"
	"strings"

	"github.com/eternize/eternize/internal/platform/validate"
	"github.com/eternize/eternize/pkg/uuid"
)

// # Timeline Ordering

// yearSortUnparsed is the sort key assigned to events whose year has no
// leading numeric prefix. Unparsable years sort before every numeric year.
// This ordering is a compatibility contract with existing pages and must
// not be "fixed".
const yearSortUnparsed = -1 << 31

// Timeline is the ordered collection of life events under edit.
//
// # Concurrency
//
// Timeline is not safe for concurrent use. Each editing session operates on
// its own instance.
type Timeline struct {
	Events []TimelineEvent
}

// NewTimeline builds a sorted timeline from persisted events.
// Callers must never trust persistence order.
func NewTimeline(events []TimelineEvent) *Timeline {
	timeline := &Timeline{Events: append([]TimelineEvent(nil), events...)}
	SortEvents(timeline.Events)
	return timeline
}

// Add validates and inserts a new event at its ordered position.
//
// Year and title are both required. The event receives a fresh id and the
// slice stays sorted by numeric year, insertion order preserved among equal
// keys.
func (t *Timeline) Add(year, title, description string) (*TimelineEvent, error) {
	v := &validate.Validator{}
	err := v.
		Required(FieldYear, year).
		Required(FieldTitle, title).
		Err()
	if err != nil {
		return nil, err
	}

	event := TimelineEvent{
		ID:          uuid.Must(),
		Year:        strings.TrimSpace(year),
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
	}

	// Find the first position whose key exceeds the new event's key.
	// Inserting there keeps equal keys in arrival order.
	key := yearSortKey(event.Year)
	position := len(t.Events)
	for i, existing := range t.Events {
		if yearSortKey(existing.Year) > key {
			position = i
			break
		}
	}

	t.Events = append(t.Events, TimelineEvent{})
	copy(t.Events[position+1:], t.Events[position:])
	t.Events[position] = event

	return &event, nil
}

// Remove deletes the event with the given id. Absent ids are a no-op.
func (t *Timeline) Remove(id string) {
	for i, event := range t.Events {
		if event.ID == id {
			t.Events = append(t.Events[:i], t.Events[i+1:]...)
			return
		}
	}
}

// SortEvents orders events by ascending numeric year, in place and stably.
// Events whose year cannot be parsed sort before all numeric years.
func SortEvents(events []TimelineEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return yearSortKey(events[i].Year) < yearSortKey(events[j].Year)
	})
}

// yearSortKey extracts the leading integer of a year string ("1990s" → 1990).
// Strings without a numeric prefix map to [yearSortUnparsed].
func yearSortKey(year string) int {
	trimmed := strings.TrimSpace(year)
	if trimmed == "" {
		return yearSortUnparsed
	}

	end := 0
	if trimmed[0] == '-' || trimmed[0] == '+' {
		end = 1
	}
	for end < len(trimmed) && trimmed[end] >= '0' && trimmed[end] <= '9' {
		end++
	}

	parsed, err := strconv.Atoi(trimmed[:end])
	if err != nil {
		return yearSortUnparsed
	}
	return parsed
}

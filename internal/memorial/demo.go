// Copyright (c) 2026 Eternize. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package memorial

import (
	"sync"
	"time"

	"github.com/eternize/eternize/internal/platform/apperr"
	"github.com/eternize/eternize/pkg/optimistic"
)

// # Demo Registry

// DemoRegistry holds the curated demonstration memorials.
//
// Demo records live entirely in memory: they never touch PostgreSQL, they are
// always viewable, and they back the public listing when the real catalogue
// is still empty. Admin approval toggles apply to them like any other record
// so the moderation screen behaves consistently.
type DemoRegistry struct {
	mu      sync.RWMutex
	records map[string]*Memorial
	order   []string
}

// NewDemoRegistry seeds the registry with the shipped demonstration pages.
func NewDemoRegistry() *DemoRegistry {
	registry := &DemoRegistry{records: make(map[string]*Memorial)}
	for _, record := range seedDemoMemorials() {
		stored := record
		registry.records[stored.ID] = &stored
		registry.order = append(registry.order, stored.ID)
	}
	return registry
}

// Get returns a copy of the demo record, or nil when the id is unknown.
func (r *DemoRegistry) Get(id string) *Memorial {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, found := r.records[id]
	if !found {
		return nil
	}
	clone := cloneMemorial(record)
	return &clone
}

// List returns copies of all demo records in seed order.
func (r *DemoRegistry) List() []Memorial {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]Memorial, 0, len(r.order))
	for _, id := range r.order {
		list = append(list, cloneMemorial(r.records[id]))
	}
	return list
}

// Update applies an optimistic mutation to a demo record.
//
// The mutation is applied in memory first, then confirm runs; when confirm
// fails the record is restored to its prior snapshot. The registry lock is
// held for the whole cycle so readers never observe a half-confirmed state.
func (r *DemoRegistry) Update(id string, mutate func(*Memorial), confirm func() error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, found := r.records[id]
	if !found {
		return apperr.NotFound("Memorial")
	}

	return optimistic.Apply(record, mutate, confirm)
}

// cloneMemorial deep-copies the slices so callers cannot mutate the registry.
func cloneMemorial(m *Memorial) Memorial {
	clone := *m
	clone.Timeline = append([]TimelineEvent(nil), m.Timeline...)
	clone.Media = append([]MediaItem(nil), m.Media...)
	return clone
}

// seedDemoMemorials returns the curated demonstration content.
func seedDemoMemorials() []Memorial {
	seededAt := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

	return []Memorial{
		{
			ID:           DemoIDPrefix + "maria-silva",
			Name:         "Maria da Silva",
			Relationship: "Grandmother",
			BirthDate:    "1938-04-12",
			DeathDate:    "2023-11-02",
			Biography: "Maria raised four children in São Paulo and spent her " +
				"Sundays cooking for anyone who knocked on her door. She is " +
				"remembered for her laugh, her garden, and her endless patience.",
			IsPublic:        true,
			Status:          ApprovalApproved,
			ProfileImageURL: "https://cdn.eternize.app/demo/maria/profile.jpg",
			CoverImageURL:   "https://cdn.eternize.app/demo/maria/cover.jpg",
			Timeline: []TimelineEvent{
				{ID: DemoIDPrefix + "maria-t1", Year: "1938", Title: "Born in Campinas"},
				{ID: DemoIDPrefix + "maria-t2", Year: "1960", Title: "Married José", Description: "A small ceremony with the whole neighborhood."},
				{ID: DemoIDPrefix + "maria-t3", Year: "1994", Title: "First grandchild"},
			},
			Media: []MediaItem{
				{ID: DemoIDPrefix + "maria-m1", Kind: MediaImage, URL: "https://cdn.eternize.app/demo/maria/gallery/kitchen.jpg"},
				{ID: DemoIDPrefix + "maria-m2", Kind: MediaImage, URL: "https://cdn.eternize.app/demo/maria/gallery/garden.jpg"},
			},
			CreatedAt: seededAt,
			UpdatedAt: seededAt,
		},
		{
			ID:           DemoIDPrefix + "joao-pereira",
			Name:         "João Pereira",
			Relationship: "Father",
			BirthDate:    "1951-09-30",
			DeathDate:    "2024-06-18",
			Biography: "João drove a bus for thirty years and knew every street " +
				"of Belo Horizonte by heart. He taught his children that showing " +
				"up on time is a way of loving people.",
			IsPublic:        true,
			Status:          ApprovalApproved,
			ProfileImageURL: "https://cdn.eternize.app/demo/joao/profile.jpg",
			Timeline: []TimelineEvent{
				{ID: DemoIDPrefix + "joao-t1", Year: "1951", Title: "Born in Ouro Preto"},
				{ID: DemoIDPrefix + "joao-t2", Year: "1973", Title: "First day on line 52"},
			},
			Media: []MediaItem{
				{ID: DemoIDPrefix + "joao-m1", Kind: MediaImage, URL: "https://cdn.eternize.app/demo/joao/gallery/bus.jpg"},
				{ID: DemoIDPrefix + "joao-m2", Kind: MediaAudio, URL: "https://cdn.eternize.app/demo/joao/audio/story.mp3", FileName: "story.mp3"},
			},
			CreatedAt: seededAt,
			UpdatedAt: seededAt,
		},
		{
			ID:           DemoIDPrefix + "ana-costa",
			Name:         "Ana Costa",
			Relationship: "Friend",
			BirthDate:    "1989-01-05",
			DeathDate:    "2022-08-23",
			Biography: "Ana was a marine biologist who never stopped collecting " +
				"shells, photographs, and friends. Her expedition journals are " +
				"still passed around the lab she helped build.",
			IsPublic:        true,
			Status:          ApprovalApproved,
			ProfileImageURL: "https://cdn.eternize.app/demo/ana/profile.jpg",
			Timeline: []TimelineEvent{
				{ID: DemoIDPrefix + "ana-t1", Year: "1989", Title: "Born in Florianópolis"},
				{ID: DemoIDPrefix + "ana-t2", Year: "2012", Title: "Graduated in biology"},
				{ID: DemoIDPrefix + "ana-t3", Year: "2019", Title: "First Antarctic expedition"},
			},
			Media: []MediaItem{
				{ID: DemoIDPrefix + "ana-m1", Kind: MediaVideo, URL: "https://cdn.eternize.app/demo/ana/video/expedition.mp4", FileName: "expedition.mp4"},
			},
			CreatedAt: seededAt,
			UpdatedAt: seededAt,
		},
	}
}

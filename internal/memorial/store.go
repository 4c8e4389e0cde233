// Copyright (c) 2026 Eternize. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package memorial

import "context"

// # Memorial Data Access

// MemorialRepository defines the data access contract for the memorial domain.
type MemorialRepository interface {

	/*
		List returns a filtered, paginated slice of memorials and the total count.

		Parameters:
		  - context: context.Context
		  - filter: Filter (Criteria for owner, visibility, approval, search)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Memorial: Slice of matching records (timeline/media not hydrated)
		  - int: Total count of records matching the filter
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Memorial, int, error)

	/*
		FindByID returns the memorial with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *Memorial: The hydrated domain entity (approval state normalized)
		  - error: ErrNotFound if missing
	*/
	FindByID(context context.Context, id string) (*Memorial, error)

	/*
		Create persists a new memorial to the store.

		Parameters:
		  - context: context.Context
		  - memorial: *Memorial (Metadata and initial state)

		Returns:
		  - error: Storage or constraint failures
	*/
	Create(context context.Context, memorial *Memorial) error

	/*
		Update persists changes to an existing memorial's mutable fields.
		The approval state column is never part of this statement.

		Parameters:
		  - context: context.Context
		  - memorial: *Memorial (Target ID and modified attributes)
		  - ownerID: string (Guard: row must belong to this user)

		Returns:
		  - error: ErrNotFound when the row is missing or owned by someone else
	*/
	Update(context context.Context, memorial *Memorial, ownerID string) error

	/*
		SetApproval writes the approval state of a memorial.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)
		  - state: ApprovalState

		Returns:
		  - error: ErrNotFound if missing
	*/
	SetApproval(context context.Context, id string, state ApprovalState) error

	/*
		Delete removes a memorial row; timeline and media rows cascade.
		Storage blobs are intentionally left behind.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - error: ErrNotFound if missing
	*/
	Delete(context context.Context, id string) error
}

// # Timeline Data Access

// TimelineRepository defines the data access contract for life events.
type TimelineRepository interface {

	/*
		ListByMemorial returns all events for a memorial in storage order.
		Callers must re-sort; persistence order is not a contract.

		Parameters:
		  - context: context.Context
		  - memorialID: string (UUID)

		Returns:
		  - []TimelineEvent: Possibly empty, never nil on success
		  - error: Retrieval failures
	*/
	ListByMemorial(context context.Context, memorialID string) ([]TimelineEvent, error)

	/*
		Replace removes every event of a memorial and bulk-inserts the given
		set. This is the only write path for timelines: the editor always
		submits the full sequence.

		Parameters:
		  - context: context.Context
		  - memorialID: string (UUID)
		  - events: []TimelineEvent

		Returns:
		  - error: Batch failure (the delete and insert share a transaction)
	*/
	Replace(context context.Context, memorialID string, events []TimelineEvent) error
}

// # Media Data Access

// MediaRepository defines the data access contract for gallery assets.
type MediaRepository interface {

	/*
		ListByMemorial returns all media rows for a memorial.

		Parameters:
		  - context: context.Context
		  - memorialID: string (UUID)

		Returns:
		  - []MediaItem: Possibly empty, never nil on success
		  - error: Retrieval failures
	*/
	ListByMemorial(context context.Context, memorialID string) ([]MediaItem, error)

	/*
		Insert bulk-persists freshly uploaded media rows.

		Parameters:
		  - context: context.Context
		  - items: []MediaItem (Durable URLs already assigned)

		Returns:
		  - error: Batch failure
	*/
	Insert(context context.Context, items []MediaItem) error

	/*
		DeleteByIDs removes media rows by id, scoped to one memorial.
		Absent ids are skipped silently so re-submitted removal sets stay
		idempotent.

		Parameters:
		  - context: context.Context
		  - memorialID: string (UUID)
		  - ids: []string

		Returns:
		  - error: Removal failure
	*/
	DeleteByIDs(context context.Context, memorialID string, ids []string) error
}

// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

package audit

import "context"

// # Audit Trail Data Access

// Repository defines the data access contract for the append-only audit trail.
type Repository interface {

	/*
		Insert appends a new entry to the trail.

		Parameters:
		  - context: context.Context
		  - entry: *Entry (ID and CreatedAt are assigned by the database)

		Returns:
		  - error: Persistence failures
	*/
	Insert(context context.Context, entry *Entry) error

	/*
		List returns one page of entries, newest first (timestamp descending,
		entry ID descending as the tie-break), together with the total count
		matching the filter.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - limit: int
		  - offset: int

		Returns:
		  - []*EntryWithActor: Enriched page of entries
		  - int: Total matching entries
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*EntryWithActor, int, error)

	/*
		FindByID returns a single enriched entry.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *EntryWithActor: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id int64) (*EntryWithActor, error)

	/*
		CountByAction returns per-action totals across the whole trail,
		most frequent first.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*ActionCount: Summary rows
		  - error: Database retrieval failures
	*/
	CountByAction(context context.Context) ([]*ActionCount, error)

	/*
		ListRecent returns the N most recent entries for export, newest first.

		Parameters:
		  - context: context.Context
		  - limit: int

		Returns:
		  - []*EntryWithActor: Enriched entries
		  - error: Database retrieval failures
	*/
	ListRecent(context context.Context, limit int) ([]*EntryWithActor, error)
}

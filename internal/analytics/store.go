// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

package analytics

import "context"

// Repository defines the data access contract for dashboard aggregation.
type Repository interface {

	/*
		Dashboard computes every aggregate in one pass.

		Parameters:
		  - context: context.Context

		Returns:
		  - *Dashboard: All counters and rankings
		  - error: Database retrieval failures
	*/
	Dashboard(context context.Context) (*Dashboard, error)
}

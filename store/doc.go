// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists survey records, crawl statuses, archived cohorts and
the region catalog.

A single Store value serves every interface the rest of the module reads
through:

	st := store.New(conn)
	reconciler := survey.NewReconciler(st, logger)
	tracker := survey.NewCrawlTracker(st, logger)

Selected regions are kept as a JSON array in a TEXT column so the same
schema works on PostgreSQL and SQLite. A duplicate (participant_name,
cohort) insert surfaces as survey.ErrConflict on either driver.
*/
package store

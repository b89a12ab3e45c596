// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package survey implements the submission and administration rules.

# Reconciliation

A participant is identified by the exact pair (name, cohort). Reconcile
decides what a submission does:

	created          no record yet; one is inserted
	option_locked    a record exists with another option; nothing changes
	merge_candidate  same option and the union fits the quota; nothing changes yet
	rejected         the selection breaks the option quota

Confirm applies a merge: stored regions are kept and new ones appended,
created_at is untouched.

An insert that loses a race on the (name, cohort) unique constraint returns
ErrConflict from the store; the reconciler then runs once more and the
submission becomes a merge.

# Aggregation

Reports are derived from the raw records on every request:

	active, archived := survey.PartitionByArchive(records, closedCohorts)
	unique := survey.Dedupe(active)
	counts := survey.CountByRegion(unique)

# Mutation

Mutator removes regions from records and deletes records left empty.
Bulk operations return a BulkResult listing every failed item.
*/
package survey

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"

	"github.com/danielhkuo/region-survey/export"
	"github.com/danielhkuo/region-survey/regions"
	"github.com/danielhkuo/region-survey/survey"
)

// Error kinds reported in the "kind" field of error bodies
const (
	KindWrongRegionKind = "wrong_region_kind"
	KindQuotaExceeded   = "quota_exceeded"
	KindInvalidOption   = "invalid_option"
	KindDuplicateRegion = "duplicate_region"
	KindOptionLocked    = "option_locked"
	KindNotFound        = "not_found"
	KindCohortArchived  = "cohort_archived"
	KindNoRegions       = "no_regions"
	KindMissingIdentity = "missing_identity"
)

// errorKind maps a domain error to its kind and HTTP status.
// Unknown errors are store failures.
func errorKind(err error) (string, int) {
	switch {
	case errors.Is(err, regions.ErrWrongRegionKind):
		return KindWrongRegionKind, http.StatusUnprocessableEntity
	case errors.Is(err, regions.ErrQuotaExceeded):
		return KindQuotaExceeded, http.StatusUnprocessableEntity
	case errors.Is(err, regions.ErrInvalidOption):
		return KindInvalidOption, http.StatusBadRequest
	case errors.Is(err, regions.ErrDuplicateRegion):
		return KindDuplicateRegion, http.StatusConflict
	case errors.Is(err, survey.ErrOptionLocked):
		return KindOptionLocked, http.StatusConflict
	case errors.Is(err, survey.ErrRecordNotFound):
		return KindNotFound, http.StatusNotFound
	case errors.Is(err, survey.ErrCohortArchived):
		return KindCohortArchived, http.StatusConflict
	case errors.Is(err, survey.ErrMissingIdentity):
		return KindMissingIdentity, http.StatusBadRequest
	case errors.Is(err, survey.ErrEmptySubmission), errors.Is(err, export.ErrNoRegions):
		return KindNoRegions, http.StatusBadRequest
	default:
		return "", http.StatusInternalServerError
	}
}

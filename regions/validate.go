// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package regions

import (
	"errors"
	"fmt"
)

var (
	ErrWrongRegionKind = errors.New("wrong region kind")
	ErrQuotaExceeded   = errors.New("quota exceeded")
	ErrInvalidOption   = errors.New("invalid option")
	ErrDuplicateRegion = errors.New("duplicate region")
)

// Region kinds referenced by quota errors
const (
	KindSeoul    = "seoul"
	KindNonSeoul = "non_seoul"
)

// ValidationError is returned when a region batch breaks an option's rules.
// Message is meant to be shown to the participant as-is.
type ValidationError struct {
	Err     error
	Region  string // KindSeoul or KindNonSeoul, empty when not quota related
	Count   int
	Limit   int
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func quotaError(kind string, count, limit int) *ValidationError {
	name := "서울"
	if kind == KindNonSeoul {
		name = "경기/인천/지방"
	}
	return &ValidationError{
		Err:     ErrQuotaExceeded,
		Region:  kind,
		Count:   count,
		Limit:   limit,
		Message: fmt.Sprintf("%s 지역은 최대 %d개까지 선택 가능합니다. (현재 %d개)", name, limit, count),
	}
}

// Validate checks existing plus candidate regions against the option quota.
// The batch is judged as a whole; a failure rejects every candidate.
func Validate(optionType int, candidates, existing []string) error {
	seoul, nonSeoul := CountKinds(existing, candidates)

	switch optionType {
	case 1:
		if nonSeoul > 0 {
			return &ValidationError{
				Err:     ErrWrongRegionKind,
				Region:  KindNonSeoul,
				Count:   nonSeoul,
				Message: "옵션 1은 서울 지역만 선택할 수 있습니다.",
			}
		}
		if seoul > 5 {
			return quotaError(KindSeoul, seoul, 5)
		}
	case 2:
		if seoul > 0 {
			return &ValidationError{
				Err:     ErrWrongRegionKind,
				Region:  KindSeoul,
				Count:   seoul,
				Message: "옵션 2는 경기/인천/지방 지역만 선택할 수 있습니다.",
			}
		}
		if nonSeoul > 10 {
			return quotaError(KindNonSeoul, nonSeoul, 10)
		}
	case 3:
		if seoul > 3 {
			return quotaError(KindSeoul, seoul, 3)
		}
		if nonSeoul > 2 {
			return quotaError(KindNonSeoul, nonSeoul, 2)
		}
	default:
		return &ValidationError{
			Err:     ErrInvalidOption,
			Message: "올바른 옵션을 선택해주세요.",
		}
	}

	return nil
}

// Stage checks a single region being added to a draft selection.
func Stage(optionType int, candidate string, staged, existing []string) error {
	if Contains(staged, candidate) || Contains(existing, candidate) {
		return &ValidationError{
			Err:     ErrDuplicateRegion,
			Message: fmt.Sprintf("%s은(는) 이미 선택된 지역입니다.", candidate),
		}
	}

	already := make([]string, 0, len(staged)+len(existing))
	already = append(already, staged...)
	already = append(already, existing...)
	return Validate(optionType, []string{candidate}, already)
}

// Slots is how much room an option has left. Values can go negative
// when stored data already exceeds the quota.
type Slots struct {
	Seoul    int `json:"seoul"`
	NonSeoul int `json:"non_seoul"`
	Total    int `json:"total"`
}

// Remaining computes the slots left after existing and staged regions.
func Remaining(optionType int, existing, staged []string) Slots {
	opt, ok := LookupOption(optionType)
	if !ok {
		return Slots{}
	}
	seoul, nonSeoul := CountKinds(existing, staged)
	return Slots{
		Seoul:    opt.MaxSeoul - seoul,
		NonSeoul: opt.MaxNonSeoul - nonSeoul,
		Total:    opt.TotalMax - len(existing) - len(staged),
	}
}

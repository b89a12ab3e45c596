// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package regions holds the region allocation rules.

# Classification

A region label is "<top> <sub> [<leaf>]". It is a Seoul region when the
label starts with SeoulPrefix:

	regions.IsSeoul("서울 강남구 역삼동") // true

# Options

Three quota policies exist:

	1: up to 5 Seoul regions, no others
	2: up to 10 non-Seoul regions, no Seoul
	3: up to 3 Seoul and up to 2 non-Seoul regions

# Validation

Validate judges existing plus candidate regions as one batch:

	err := regions.Validate(3, []string{"서울 마포구 합정동"}, existing)
	if errors.Is(err, regions.ErrQuotaExceeded) {
		...
	}

Stage is the single-add variant and also rejects duplicates.
*/
package regions

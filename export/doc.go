// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package export renders region labels as downloadable tables.

Each label "서울 강남구 역삼동" becomes one row with the columns 시/도,
시/군/구 and 읍/면/동. The leaf column takes everything after the second
space, so multi-word leaves survive.

The CSV layout is fixed because spreadsheet tools open it directly:

	시/도,시/군/구,읍/면/동
	"서울","강남구","역삼동"

The XLSX variant carries the same rows on one sheet.
*/
package export

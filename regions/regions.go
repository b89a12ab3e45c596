// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package regions

import "strings"

// SeoulPrefix marks a top-level division as Seoul.
const SeoulPrefix = "서울"

// Option describes the quota policy a participant commits to.
type Option struct {
	ID          int
	MaxSeoul    int
	MaxNonSeoul int
	TotalMax    int
	Description string
}

// Options is the static option table, indexed by ID.
var Options = []Option{
	{ID: 1, MaxSeoul: 5, MaxNonSeoul: 0, TotalMax: 5, Description: "Seoul x5"},
	{ID: 2, MaxSeoul: 0, MaxNonSeoul: 10, TotalMax: 10, Description: "Gyeonggi/Incheon/provinces x10"},
	{ID: 3, MaxSeoul: 3, MaxNonSeoul: 2, TotalMax: 5, Description: "Seoul x3 + provinces x2"},
}

// LookupOption returns the option with the given ID
func LookupOption(id int) (Option, bool) {
	for _, opt := range Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return Option{}, false
}

// IsSeoul reports whether label belongs to Seoul.
// Exact, case-sensitive prefix match; labels are never normalized.
func IsSeoul(label string) bool {
	return strings.HasPrefix(label, SeoulPrefix)
}

// CountKinds splits labels into Seoul and non-Seoul counts. Repeats count.
func CountKinds(labels ...[]string) (seoul, nonSeoul int) {
	for _, set := range labels {
		for _, label := range set {
			if IsSeoul(label) {
				seoul++
			} else {
				nonSeoul++
			}
		}
	}
	return seoul, nonSeoul
}

// ComposeLabel joins the three division names into a region label.
// A blank leaf yields a two-part label.
func ComposeLabel(top, sub, leaf string) string {
	return strings.TrimSpace(top + " " + sub + " " + leaf)
}

// SplitLabel breaks a label into top, sub and leaf division names.
// Everything after the second space belongs to the leaf.
func SplitLabel(label string) (top, sub, leaf string) {
	parts := strings.Split(label, " ")
	if len(parts) > 0 {
		top = parts[0]
	}
	if len(parts) > 1 {
		sub = parts[1]
	}
	if len(parts) > 2 {
		leaf = strings.Join(parts[2:], " ")
	}
	return top, sub, leaf
}

// Unique drops exact-duplicate labels, keeping first occurrences in order.
func Unique(labels []string) []string {
	seen := make(map[string]bool, len(labels))
	out := make([]string, 0, len(labels))
	for _, label := range labels {
		if seen[label] {
			continue
		}
		seen[label] = true
		out = append(out, label)
	}
	return out
}

// Contains reports whether label is present in labels by exact match.
func Contains(labels []string, label string) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}

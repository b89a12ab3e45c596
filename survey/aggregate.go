// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import (
	"sort"

	"github.com/danielhkuo/region-survey/models"
)

type participantKey struct {
	name   string
	cohort string
}

// Dedupe keeps the newest record per (participant, cohort). On equal
// timestamps the record seen first wins. Output is newest first.
func Dedupe(records []models.SurveyRecord) []models.SurveyRecord {
	latest := make(map[participantKey]int, len(records))
	out := make([]models.SurveyRecord, 0, len(records))

	for _, rec := range records {
		key := participantKey{name: rec.ParticipantName, cohort: rec.Cohort}
		idx, ok := latest[key]
		if !ok {
			latest[key] = len(out)
			out = append(out, rec)
			continue
		}
		if rec.CreatedAt.After(out[idx].CreatedAt) {
			out[idx] = rec
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// CountByRegion counts, per label, how many records selected it.
// A label repeated inside one record counts once.
func CountByRegion(records []models.SurveyRecord) map[string]int {
	counts := make(map[string]int)
	for _, rec := range records {
		seen := make(map[string]bool, len(rec.SelectedRegions))
		for _, label := range rec.SelectedRegions {
			if seen[label] {
				continue
			}
			seen[label] = true
			counts[label]++
		}
	}
	return counts
}

// PartitionByArchive splits records by whether their cohort is archived.
func PartitionByArchive(records []models.SurveyRecord, archivedCohorts []string) (active, archived []models.SurveyRecord) {
	closed := make(map[string]bool, len(archivedCohorts))
	for _, c := range archivedCohorts {
		closed[c] = true
	}

	active = []models.SurveyRecord{}
	archived = []models.SurveyRecord{}
	for _, rec := range records {
		if closed[rec.Cohort] {
			archived = append(archived, rec)
		} else {
			active = append(active, rec)
		}
	}
	return active, archived
}

// Cohorts lists the distinct cohorts present, sorted.
func Cohorts(records []models.SurveyRecord) []string {
	set := make(map[string]bool)
	for _, rec := range records {
		set[rec.Cohort] = true
	}
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// OptionBreakdown counts participants per option. Records without an
// option, or with an unknown one, land in Unknown.
func OptionBreakdown(records []models.SurveyRecord) models.OptionStats {
	var stats models.OptionStats
	for _, rec := range records {
		if rec.OptionType == nil {
			stats.Unknown++
			continue
		}
		switch *rec.OptionType {
		case 1:
			stats.Option1++
		case 2:
			stats.Option2++
		case 3:
			stats.Option3++
		default:
			stats.Unknown++
		}
	}
	return stats
}

// Summarize computes headline numbers for deduplicated records.
func Summarize(records []models.SurveyRecord, counts map[string]int) models.SummaryStats {
	total := 0
	for _, rec := range records {
		total += len(rec.SelectedRegions)
	}
	return models.SummaryStats{
		Participants:    len(records),
		DistinctRegions: len(counts),
		TotalVotes:      total,
	}
}

// TopRegions ranks labels by votes, ties broken by label. n <= 0 means all.
func TopRegions(counts map[string]int, n int) []models.RegionCount {
	out := make([]models.RegionCount, 0, len(counts))
	for label, votes := range counts {
		out = append(out, models.RegionCount{Region: label, Votes: votes})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Votes != out[j].Votes {
			return out[i].Votes > out[j].Votes
		}
		return out[i].Region < out[j].Region
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

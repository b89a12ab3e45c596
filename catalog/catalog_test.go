// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/region-survey/models"
)

const seedYAML = `
cities:
  - name: 서울
    districts:
      - name: 강남구
        neighborhoods: [역삼동, 삼성동]
      - name: " 마포구 "
        neighborhoods: [합정동]
  - name: 경기
    districts:
      - name: 수원시
        neighborhoods: [영통동]
`

func TestLoadSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(seedYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	seed, err := LoadSeed(path)
	if err != nil {
		t.Fatalf("LoadSeed() error = %v", err)
	}
	if len(seed.Cities) != 2 {
		t.Fatalf("cities = %d, want 2", len(seed.Cities))
	}

	mapo := seed.Cities[0].Districts[1]
	if mapo.Name != "마포구" {
		t.Errorf("district name = %q, want trimmed 마포구", mapo.Name)
	}
	if len(mapo.Neighborhoods) != 1 || mapo.Neighborhoods[0] != "합정동" {
		t.Errorf("neighborhoods = %v, want [합정동]", mapo.Neighborhoods)
	}
	if got := seed.Cities[1].Districts[0].Neighborhoods; len(got) != 1 || got[0] != "영통동" {
		t.Errorf("경기 neighborhoods = %v", got)
	}
}

func TestParseSeed_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", "cities: []"},
		{"blank city", "cities:\n  - name: ' '\n"},
		{"blank district", "cities:\n  - name: 서울\n    districts:\n      - name: ''\n"},
		{"blank neighborhood", "cities:\n  - name: 서울\n    districts:\n      - name: 강남구\n        neighborhoods: ['']\n"},
		{"bad yaml", "cities: [unclosed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseSeed([]byte(tt.raw)); err == nil {
				t.Error("ParseSeed() expected error")
			}
		})
	}

	if _, err := ParseSeed([]byte("cities: []")); !errors.Is(err, ErrEmptySeed) {
		t.Errorf("empty seed error = %v, want ErrEmptySeed", err)
	}
}

func TestLoadSeed_MissingFile(t *testing.T) {
	if _, err := LoadSeed(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadSeed() expected error for missing file")
	}
}

func TestFilterCities(t *testing.T) {
	cities := []models.Division{{ID: 1, Name: "경기"}, {ID: 2, Name: "서울"}, {ID: 3, Name: "부산"}}

	tests := []struct {
		option int
		want   int
	}{
		{1, 1},
		{2, 2},
		{3, 3},
		{0, 3},
	}

	for _, tt := range tests {
		got := FilterCities(cities, tt.option)
		if len(got) != tt.want {
			t.Errorf("FilterCities(option %d) = %v, want %d cities", tt.option, got, tt.want)
		}
	}

	if got := FilterCities(cities, 1); got[0].Name != "서울" {
		t.Errorf("option 1 kept %v", got)
	}
}

func TestHumanize(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	then := now.Add(-72 * time.Hour)
	leaves := Humanize([]models.LeafDivision{
		{ID: 1, Name: "역삼동", LastProcessedAt: &then},
		{ID: 2, Name: "삼성동"},
	}, now)

	if leaves[0].LastProcessed != "3 days ago" {
		t.Errorf("LastProcessed = %q, want %q", leaves[0].LastProcessed, "3 days ago")
	}
	if leaves[1].LastProcessed != "" {
		t.Errorf("never processed leaf got %q", leaves[1].LastProcessed)
	}
}

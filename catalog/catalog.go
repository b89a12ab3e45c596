// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/region-survey/models"
	"github.com/danielhkuo/region-survey/regions"
)

var ErrEmptySeed = errors.New("catalog seed has no cities")

// Store reads the three-level region catalog.
type Store interface {
	ListTopDivisions(ctx context.Context) ([]models.Division, error)
	ListSubdivisions(ctx context.Context, parentID int64) ([]models.Division, error)
	ListLeafDivisions(ctx context.Context, parentID int64) ([]models.LeafDivision, error)
	ListAllLeafRegions(ctx context.Context) ([]models.CatalogRegion, error)
}

// Seed is the YAML layout of a catalog file:
//
//	cities:
//	  - name: 서울
//	    districts:
//	      - name: 강남구
//	        neighborhoods: [역삼동, 삼성동]
type Seed struct {
	Cities []SeedCity `yaml:"cities"`
}

type SeedCity struct {
	Name      string         `yaml:"name"`
	Districts []SeedDistrict `yaml:"districts"`
}

type SeedDistrict struct {
	Name          string   `yaml:"name"`
	Neighborhoods []string `yaml:"neighborhoods"`
}

// LoadSeed reads and checks a catalog file.
func LoadSeed(path string) (Seed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("read catalog seed: %w", err)
	}
	return ParseSeed(raw)
}

// ParseSeed decodes a catalog document. Names are trimmed; blank names are
// rejected because they would produce malformed labels.
func ParseSeed(raw []byte) (Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return Seed{}, fmt.Errorf("parse catalog seed: %w", err)
	}
	if len(seed.Cities) == 0 {
		return Seed{}, ErrEmptySeed
	}

	for i := range seed.Cities {
		c := &seed.Cities[i]
		c.Name = strings.TrimSpace(c.Name)
		if c.Name == "" {
			return Seed{}, fmt.Errorf("city %d: name is required", i)
		}
		for j := range c.Districts {
			d := &c.Districts[j]
			d.Name = strings.TrimSpace(d.Name)
			if d.Name == "" {
				return Seed{}, fmt.Errorf("%s district %d: name is required", c.Name, j)
			}
			for k, n := range d.Neighborhoods {
				d.Neighborhoods[k] = strings.TrimSpace(n)
				if d.Neighborhoods[k] == "" {
					return Seed{}, fmt.Errorf("%s %s neighborhood %d: name is required", c.Name, d.Name, k)
				}
			}
		}
	}
	return seed, nil
}

// FilterCities narrows top-level divisions to what an option may pick:
// option 1 keeps Seoul only, option 2 drops Seoul, anything else keeps all.
func FilterCities(cities []models.Division, optionType int) []models.Division {
	if optionType != 1 && optionType != 2 {
		return cities
	}
	out := make([]models.Division, 0, len(cities))
	for _, c := range cities {
		if regions.IsSeoul(c.Name) == (optionType == 1) {
			out = append(out, c)
		}
	}
	return out
}

// Humanize fills LastProcessed with a relative time such as "3 days ago".
func Humanize(leaves []models.LeafDivision, now time.Time) []models.LeafDivision {
	for i := range leaves {
		if leaves[i].LastProcessedAt != nil {
			leaves[i].LastProcessed = RelativeTime(*leaves[i].LastProcessedAt, now)
		}
	}
	return leaves
}

// RelativeTime renders t relative to now.
func RelativeTime(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}

// Index maps leaf labels to their catalog entry.
func Index(leaves []models.CatalogRegion) map[string]models.CatalogRegion {
	m := make(map[string]models.CatalogRegion, len(leaves))
	for _, l := range leaves {
		m[l.Label] = l
	}
	return m
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danielhkuo/region-survey/catalog"
	"github.com/danielhkuo/region-survey/models"
	"github.com/danielhkuo/region-survey/regions"
)

func (s *Store) listDivisions(ctx context.Context, query string, args ...any) ([]models.Division, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Division{}
	for rows.Next() {
		var d models.Division
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) ListTopDivisions(ctx context.Context) ([]models.Division, error) {
	out, err := s.listDivisions(ctx, `SELECT id, name FROM city ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	return out, nil
}

func (s *Store) ListSubdivisions(ctx context.Context, parentID int64) ([]models.Division, error) {
	out, err := s.listDivisions(ctx, `SELECT id, name FROM district WHERE city_id = $1 ORDER BY name`, parentID)
	if err != nil {
		return nil, fmt.Errorf("list districts: %w", err)
	}
	return out, nil
}

func (s *Store) ListLeafDivisions(ctx context.Context, parentID int64) ([]models.LeafDivision, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, last_crawled_at FROM neighborhood
		WHERE district_id = $1 ORDER BY name
	`, parentID)
	if err != nil {
		return nil, fmt.Errorf("list neighborhoods: %w", err)
	}
	defer rows.Close()

	out := []models.LeafDivision{}
	for rows.Next() {
		var (
			leaf models.LeafDivision
			last sql.NullTime
		)
		if err := rows.Scan(&leaf.ID, &leaf.Name, &last); err != nil {
			return nil, fmt.Errorf("scan neighborhood: %w", err)
		}
		if last.Valid {
			t := last.Time.UTC()
			leaf.LastProcessedAt = &t
		}
		out = append(out, leaf)
	}
	return out, rows.Err()
}

// ListAllLeafRegions returns every neighborhood as a full region label.
func (s *Store) ListAllLeafRegions(ctx context.Context) ([]models.CatalogRegion, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.name, d.name, n.name, n.last_crawled_at
		FROM neighborhood n
		JOIN district d ON d.id = n.district_id
		JOIN city c ON c.id = d.city_id
		ORDER BY c.name, d.name, n.name
	`)
	if err != nil {
		return nil, fmt.Errorf("list catalog regions: %w", err)
	}
	defer rows.Close()

	out := []models.CatalogRegion{}
	for rows.Next() {
		var (
			top, sub, leaf string
			last           sql.NullTime
		)
		if err := rows.Scan(&top, &sub, &leaf, &last); err != nil {
			return nil, fmt.Errorf("scan catalog region: %w", err)
		}
		r := models.CatalogRegion{Label: regions.ComposeLabel(top, sub, leaf)}
		if last.Valid {
			t := last.Time.UTC()
			r.LastProcessedAt = &t
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Seed loads a catalog into the database in one transaction. Existing
// entries are kept, so seeding twice is harmless. It returns the number of
// neighborhoods in the seed.
func (s *Store) Seed(ctx context.Context, seed catalog.Seed) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	leaves := 0
	for _, c := range seed.Cities {
		cityID, err := upsertID(ctx, tx,
			`INSERT INTO city (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`,
			`SELECT id FROM city WHERE name = $1`, c.Name)
		if err != nil {
			return 0, fmt.Errorf("seed city %s: %w", c.Name, err)
		}

		for _, d := range c.Districts {
			districtID, err := upsertID(ctx, tx,
				`INSERT INTO district (name, city_id) VALUES ($1, $2) ON CONFLICT (city_id, name) DO NOTHING`,
				`SELECT id FROM district WHERE name = $1 AND city_id = $2`, d.Name, cityID)
			if err != nil {
				return 0, fmt.Errorf("seed district %s: %w", d.Name, err)
			}

			for _, n := range d.Neighborhoods {
				_, err := tx.ExecContext(ctx,
					`INSERT INTO neighborhood (name, district_id) VALUES ($1, $2) ON CONFLICT (district_id, name) DO NOTHING`,
					n, districtID)
				if err != nil {
					return 0, fmt.Errorf("seed neighborhood %s: %w", n, err)
				}
				leaves++
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return leaves, nil
}

func upsertID(ctx context.Context, tx *sql.Tx, insert, lookup string, args ...any) (int64, error) {
	if _, err := tx.ExecContext(ctx, insert, args...); err != nil {
		return 0, err
	}
	var id int64
	if err := tx.QueryRowContext(ctx, lookup, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

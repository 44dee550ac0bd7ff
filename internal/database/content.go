package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"

	"tavola/internal/models"
)

// ListMenuItems returns the menu ordered for display.
func (db *DB) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	query := `SELECT id, name, description, price, category, dietary_tags, featured, image_url
              FROM menu_items ORDER BY sort_order ASC, id ASC`
	rows, err := db.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		var (
			item  models.MenuItem
			rowID int64
			desc  sql.NullString
			tags  sql.NullString
			image sql.NullString
		)
		if err := rows.Scan(&rowID, &item.Name, &desc, &item.Price, &item.Category, &tags, &item.Featured, &image); err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		item.ID = strconv.FormatInt(rowID, 10)
		item.Description = desc.String
		item.ImageURL = image.String
		if tags.Valid && tags.String != "" {
			if err := json.Unmarshal([]byte(tags.String), &item.DietaryTags); err != nil {
				return nil, fmt.Errorf("decode dietary tags for %q: %w", item.Name, err)
			}
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ListTestimonials returns reviews, most recent first.
func (db *DB) ListTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	query := `SELECT id, name, rating, quote, date FROM testimonials ORDER BY date DESC, id DESC`
	rows, err := db.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list testimonials: %w", err)
	}
	defer rows.Close()

	var testimonials []models.Testimonial
	for rows.Next() {
		var (
			tm    models.Testimonial
			rowID int64
			date  sql.NullString
		)
		if err := rows.Scan(&rowID, &tm.Name, &tm.Rating, &tm.Quote, &date); err != nil {
			return nil, fmt.Errorf("scan testimonial: %w", err)
		}
		tm.ID = strconv.FormatInt(rowID, 10)
		tm.Date = date.String
		testimonials = append(testimonials, tm)
	}
	return testimonials, rows.Err()
}

// SeedContent loads menu items and testimonials into an empty store. Rows
// that already exist are left alone, so repeated startups are safe.
func (db *DB) SeedContent(ctx context.Context, menu []models.MenuItem, testimonials []models.Testimonial) error {
	var menuCount int
	if err := db.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM menu_items`).Scan(&menuCount); err != nil {
		return fmt.Errorf("count menu items: %w", err)
	}
	if menuCount == 0 {
		for i, item := range menu {
			tags, err := json.Marshal(item.DietaryTags)
			if err != nil {
				return fmt.Errorf("encode dietary tags: %w", err)
			}
			_, err = db.db.ExecContext(ctx,
				`INSERT INTO menu_items (name, description, price, category, dietary_tags, featured, image_url, sort_order)
                 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				item.Name, item.Description, item.Price, item.Category,
				string(tags), item.Featured, nullable(item.ImageURL), i,
			)
			if err != nil {
				return fmt.Errorf("seed menu item %q: %w", item.Name, err)
			}
		}
	}

	var reviewCount int
	if err := db.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM testimonials`).Scan(&reviewCount); err != nil {
		return fmt.Errorf("count testimonials: %w", err)
	}
	if reviewCount == 0 {
		for _, tm := range testimonials {
			_, err := db.db.ExecContext(ctx,
				`INSERT INTO testimonials (name, rating, quote, date) VALUES (?, ?, ?, ?)`,
				tm.Name, tm.Rating, tm.Quote, nullable(tm.Date),
			)
			if err != nil {
				return fmt.Errorf("seed testimonial %q: %w", tm.Name, err)
			}
		}
	}
	return nil
}

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/avandijk/medstock/internal/model"
)

// CreateCategory creates a category. Names are unique.
func (s *Store) CreateCategory(ctx context.Context, name, icon string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidf("category name required")
	}

	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM categories WHERE name = ?`, name,
	).Scan(&count)
	if err != nil {
		return nil, fmt.Errorf("checking category name: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("category %q already exists: %w", name, ErrConflict)
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO categories (name, icon) VALUES (?, ?)`, name, icon)
	if err != nil {
		return nil, fmt.Errorf("creating category: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting category id: %w", err)
	}

	category := &model.Category{}
	var iconCol sql.NullString
	err = s.db.QueryRowContext(ctx,
		`SELECT id, name, icon, created_at FROM categories WHERE id = ?`, id,
	).Scan(&category.ID, &category.Name, &iconCol, &category.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("getting category: %w", err)
	}
	category.Icon = iconCol.String
	return category, nil
}

// ListCategories returns all categories sorted by name.
func (s *Store) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, icon, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		var icon sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &icon, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		c.Icon = icon.String
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// DeleteCategory deletes a category. Items keep their category string; the
// link is by name, not by foreign key.
func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("category %d: %w", id, ErrNotFound)
	}
	return nil
}

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/avandijk/medstock/internal/model"
)

func validateItem(item *model.Item) error {
	item.Name = strings.TrimSpace(item.Name)
	item.Category = strings.TrimSpace(item.Category)
	if item.Name == "" {
		return invalidf("item name required")
	}
	if item.Category == "" {
		return invalidf("item category required")
	}
	if item.AlertEmail != "" && !strings.Contains(item.AlertEmail, "@") {
		return invalidf("alert email %q is not an email address", item.AlertEmail)
	}
	return nil
}

// CreateItem creates a new catalog item.
func (s *Store) CreateItem(ctx context.Context, item model.Item) (*model.Item, error) {
	if err := validateItem(&item); err != nil {
		return nil, err
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO items (name, category, description, expiry_date, alert_email, discontinued, replacement_item_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.Name, item.Category, item.Description, item.ExpiryDate,
		item.AlertEmail, item.Discontinued, item.ReplacementItemID,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	return s.GetItem(ctx, id)
}

const itemColumns = `id, name, category, description, expiry_date, alert_email,
	photo_path, discontinued, replacement_item_id, created_at, updated_at`

func scanItem(row interface{ Scan(...any) error }) (*model.Item, error) {
	item := &model.Item{}
	var description, alertEmail, photoPath sql.NullString
	err := row.Scan(&item.ID, &item.Name, &item.Category, &description,
		&item.ExpiryDate, &alertEmail, &photoPath, &item.Discontinued,
		&item.ReplacementItemID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	item.Description = description.String
	item.AlertEmail = alertEmail.String
	item.PhotoPath = photoPath.String
	return item, nil
}

// GetItem returns an item by ID.
func (s *Store) GetItem(ctx context.Context, id int64) (*model.Item, error) {
	item, err := scanItem(s.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("item %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// ListItems returns all items, optionally filtered by category.
func (s *Store) ListItems(ctx context.Context, category string) ([]model.Item, error) {
	var rows *sql.Rows
	var err error

	if category != "" {
		rows, err = s.db.QueryContext(ctx,
			`SELECT `+itemColumns+` FROM items WHERE category = ? ORDER BY name`, category)
	} else {
		rows, err = s.db.QueryContext(ctx,
			`SELECT `+itemColumns+` FROM items ORDER BY name`)
	}
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// UpdateItem replaces an item's catalog fields.
func (s *Store) UpdateItem(ctx context.Context, id int64, item model.Item) (*model.Item, error) {
	if err := validateItem(&item); err != nil {
		return nil, err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE items SET name = ?, category = ?, description = ?, expiry_date = ?,
		        alert_email = ?, discontinued = ?, replacement_item_id = ?,
		        updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		item.Name, item.Category, item.Description, item.ExpiryDate,
		item.AlertEmail, item.Discontinued, item.ReplacementItemID, id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating item: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("item %d: %w", id, ErrNotFound)
	}

	return s.GetItem(ctx, id)
}

// DeleteItem deletes an item. Its item locations are removed with it;
// supply-request receipts referencing it are removed by the schema cascade.
func (s *Store) DeleteItem(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("item %d: %w", id, ErrNotFound)
	}
	return nil
}

// SetItemPhoto points an item at a stored photo object.
func (s *Store) SetItemPhoto(ctx context.Context, id int64, path string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE items SET photo_path = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		path, id,
	)
	if err != nil {
		return fmt.Errorf("setting item photo: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("item %d: %w", id, ErrNotFound)
	}
	return nil
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avandijk/medstock/internal/model"
)

const locationColumns = `il.id, il.item_id, il.post_id, il.cabinet_id, il.drawer_id,
	il.contact_id, il.stock_status, il.status_changed_at, il.created_at,
	i.name, i.category, p.name, c.name, d.name, pc.name, pc.email`

const locationJoins = `
	 FROM item_locations il
	 JOIN items i ON i.id = il.item_id
	 JOIN ambulance_posts p ON p.id = il.post_id
	 JOIN cabinets c ON c.id = il.cabinet_id
	 LEFT JOIN drawers d ON d.id = il.drawer_id
	 LEFT JOIN post_contacts pc ON pc.id = il.contact_id`

func scanLocation(row interface{ Scan(...any) error }) (*model.ItemLocation, error) {
	loc := &model.ItemLocation{}
	var drawerName, contactName, contactEmail sql.NullString
	err := row.Scan(&loc.ID, &loc.ItemID, &loc.PostID, &loc.CabinetID, &loc.DrawerID,
		&loc.ContactID, &loc.StockStatus, &loc.StatusChangedAt, &loc.CreatedAt,
		&loc.ItemName, &loc.ItemCategory, &loc.PostName, &loc.CabinetName,
		&drawerName, &contactName, &contactEmail)
	if err != nil {
		return nil, err
	}
	loc.DrawerName = drawerName.String
	loc.ContactName = contactName.String
	loc.ContactEmail = contactEmail.String
	return loc, nil
}

// CreateItemLocation assigns an item to a post and cabinet. Referenced
// entities must exist; with the uniqueness rule enabled a second location for
// the same (item, post, cabinet) triple is rejected.
func (s *Store) CreateItemLocation(ctx context.Context, loc model.ItemLocation) (*model.ItemLocation, error) {
	if loc.StockStatus == "" {
		loc.StockStatus = model.StockInStock
	}
	if !model.ValidStockStatus(loc.StockStatus) {
		return nil, invalidf("stock status %q is not one of in-stock, low-stock, out-of-stock", loc.StockStatus)
	}

	if _, err := s.GetItem(ctx, loc.ItemID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, invalidf("item %d does not exist", loc.ItemID)
		}
		return nil, err
	}
	if _, err := s.GetPost(ctx, loc.PostID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, invalidf("post %q does not exist", loc.PostID)
		}
		return nil, err
	}
	if _, err := s.GetCabinet(ctx, loc.CabinetID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, invalidf("cabinet %d does not exist", loc.CabinetID)
		}
		return nil, err
	}

	if s.uniqueLocations {
		var count int
		err := s.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM item_locations WHERE item_id = ? AND post_id = ? AND cabinet_id = ?`,
			loc.ItemID, loc.PostID, loc.CabinetID,
		).Scan(&count)
		if err != nil {
			return nil, fmt.Errorf("checking location uniqueness: %w", err)
		}
		if count > 0 {
			return nil, fmt.Errorf("item %d already assigned to post %q cabinet %d: %w",
				loc.ItemID, loc.PostID, loc.CabinetID, ErrConflict)
		}
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO item_locations (item_id, post_id, cabinet_id, drawer_id, contact_id, stock_status)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		loc.ItemID, loc.PostID, loc.CabinetID, loc.DrawerID, loc.ContactID, loc.StockStatus,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item location: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item location id: %w", err)
	}
	return s.GetItemLocation(ctx, id)
}

// GetItemLocation returns a single location with joined display names.
func (s *Store) GetItemLocation(ctx context.Context, id int64) (*model.ItemLocation, error) {
	loc, err := scanLocation(s.db.QueryRowContext(ctx,
		`SELECT `+locationColumns+locationJoins+` WHERE il.id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("item location %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting item location: %w", err)
	}
	return loc, nil
}

func (s *Store) queryLocations(ctx context.Context, where string, args ...any) ([]model.ItemLocation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+locationColumns+locationJoins+where+` ORDER BY p.name, c.name, i.name`, args...)
	if err != nil {
		return nil, fmt.Errorf("listing item locations: %w", err)
	}
	defer rows.Close()

	var locations []model.ItemLocation
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item location: %w", err)
		}
		locations = append(locations, *loc)
	}
	return locations, rows.Err()
}

// ListItemLocations returns all item locations with joined display names.
func (s *Store) ListItemLocations(ctx context.Context) ([]model.ItemLocation, error) {
	return s.queryLocations(ctx, "")
}

// ListItemLocationsForItem returns the locations of one item.
func (s *Store) ListItemLocationsForItem(ctx context.Context, itemID int64) ([]model.ItemLocation, error) {
	return s.queryLocations(ctx, ` WHERE il.item_id = ?`, itemID)
}

// SetStockStatus updates a location's stock status. The episode timestamp
// only advances when the value actually changes, so repeated writes of the
// same status don't reset the "already sent" window.
func (s *Store) SetStockStatus(ctx context.Context, id int64, status string) (*model.ItemLocation, error) {
	if !model.ValidStockStatus(status) {
		return nil, invalidf("stock status %q is not one of in-stock, low-stock, out-of-stock", status)
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE item_locations
		 SET status_changed_at = CASE WHEN stock_status = ? THEN status_changed_at ELSE CURRENT_TIMESTAMP END,
		     stock_status = ?
		 WHERE id = ?`,
		status, status, id,
	)
	if err != nil {
		return nil, fmt.Errorf("setting stock status: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("item location %d: %w", id, ErrNotFound)
	}
	return s.GetItemLocation(ctx, id)
}

// DeleteItemLocation removes an item assignment. Supply-request receipts for
// the location are kept with a nulled location reference.
func (s *Store) DeleteItemLocation(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM item_locations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting item location: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("item location %d: %w", id, ErrNotFound)
	}
	return nil
}

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avandijk/medstock/internal/model"
)

// CreateSupplyRequest records that a restock email was sent. Receipts are
// immutable; there is no update or delete.
func (s *Store) CreateSupplyRequest(ctx context.Context, itemID int64, locationID *int64, recipient string, urgent bool) (*model.SupplyRequest, error) {
	if recipient == "" {
		return nil, invalidf("supply request recipient required")
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO supply_requests (item_id, location_id, recipient, urgent)
		 VALUES (?, ?, ?, ?)`,
		itemID, locationID, recipient, urgent,
	)
	if err != nil {
		return nil, fmt.Errorf("creating supply request: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting supply request id: %w", err)
	}
	return s.GetSupplyRequest(ctx, id)
}

func scanSupplyRequest(row interface{ Scan(...any) error }) (*model.SupplyRequest, error) {
	req := &model.SupplyRequest{}
	err := row.Scan(&req.ID, &req.ItemID, &req.LocationID, &req.Recipient, &req.Urgent, &req.SentAt)
	if err != nil {
		return nil, err
	}
	return req, nil
}

// GetSupplyRequest returns a receipt by ID.
func (s *Store) GetSupplyRequest(ctx context.Context, id int64) (*model.SupplyRequest, error) {
	req, err := scanSupplyRequest(s.db.QueryRowContext(ctx,
		`SELECT id, item_id, location_id, recipient, urgent, sent_at
		 FROM supply_requests WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("supply request %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting supply request: %w", err)
	}
	return req, nil
}

// LastSupplyRequestForLocation returns the newest receipt for a location, or
// nil when none was ever sent. Absence is a normal state, not an error.
func (s *Store) LastSupplyRequestForLocation(ctx context.Context, locationID int64) (*model.SupplyRequest, error) {
	req, err := scanSupplyRequest(s.db.QueryRowContext(ctx,
		`SELECT id, item_id, location_id, recipient, urgent, sent_at
		 FROM supply_requests WHERE location_id = ?
		 ORDER BY sent_at DESC, id DESC LIMIT 1`, locationID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting last supply request: %w", err)
	}
	return req, nil
}

// ListSupplyRequestsForItem returns an item's receipt history, newest first.
func (s *Store) ListSupplyRequestsForItem(ctx context.Context, itemID int64) ([]model.SupplyRequest, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, item_id, location_id, recipient, urgent, sent_at
		 FROM supply_requests WHERE item_id = ?
		 ORDER BY sent_at DESC, id DESC`, itemID)
	if err != nil {
		return nil, fmt.Errorf("listing supply requests: %w", err)
	}
	defer rows.Close()

	var requests []model.SupplyRequest
	for rows.Next() {
		req, err := scanSupplyRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning supply request: %w", err)
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}

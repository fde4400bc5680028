package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/avandijk/medstock/internal/cache"
	"github.com/avandijk/medstock/internal/model"
)

func validateCabinet(c *model.Cabinet) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Abbreviation = strings.TrimSpace(c.Abbreviation)
	if c.Name == "" {
		return invalidf("cabinet name required")
	}
	if c.Abbreviation == "" {
		return invalidf("cabinet abbreviation required")
	}
	if len(c.Abbreviation) > model.MaxAbbreviationLen {
		return invalidf("cabinet abbreviation %q longer than %d characters",
			c.Abbreviation, model.MaxAbbreviationLen)
	}
	return nil
}

// CreateCabinet creates a cabinet.
func (s *Store) CreateCabinet(ctx context.Context, cabinet model.Cabinet) (*model.Cabinet, error) {
	if err := validateCabinet(&cabinet); err != nil {
		return nil, err
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO cabinets (name, abbreviation, color, description, location)
		 VALUES (?, ?, ?, ?, ?)`,
		cabinet.Name, cabinet.Abbreviation, cabinet.Color, cabinet.Description, cabinet.Location,
	)
	if err != nil {
		return nil, fmt.Errorf("creating cabinet: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting cabinet id: %w", err)
	}

	s.cache.Invalidate(cache.KindCabinets)
	return s.GetCabinet(ctx, id)
}

func scanCabinet(row interface{ Scan(...any) error }) (*model.Cabinet, error) {
	c := &model.Cabinet{}
	var color, description, location sql.NullString
	err := row.Scan(&c.ID, &c.Name, &c.Abbreviation, &color, &description, &location, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.Color = color.String
	c.Description = description.String
	c.Location = location.String
	return c, nil
}

// GetCabinet returns a cabinet by ID.
func (s *Store) GetCabinet(ctx context.Context, id int64) (*model.Cabinet, error) {
	cabinet, err := scanCabinet(s.db.QueryRowContext(ctx,
		`SELECT id, name, abbreviation, color, description, location, created_at
		 FROM cabinets WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("cabinet %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting cabinet: %w", err)
	}
	return cabinet, nil
}

// ListCabinets returns all cabinets. Served from the read cache when fresh.
func (s *Store) ListCabinets(ctx context.Context) ([]model.Cabinet, error) {
	if v, ok := s.cache.Get(cache.KindCabinets, "list"); ok {
		return v.([]model.Cabinet), nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, abbreviation, color, description, location, created_at
		 FROM cabinets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing cabinets: %w", err)
	}
	defer rows.Close()

	var cabinets []model.Cabinet
	for rows.Next() {
		cabinet, err := scanCabinet(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning cabinet: %w", err)
		}
		cabinets = append(cabinets, *cabinet)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	s.cache.Set(cache.KindCabinets, "list", cabinets)
	return cabinets, nil
}

// UpdateCabinet updates a cabinet's fields.
func (s *Store) UpdateCabinet(ctx context.Context, id int64, cabinet model.Cabinet) (*model.Cabinet, error) {
	if err := validateCabinet(&cabinet); err != nil {
		return nil, err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE cabinets SET name = ?, abbreviation = ?, color = ?, description = ?, location = ?
		 WHERE id = ?`,
		cabinet.Name, cabinet.Abbreviation, cabinet.Color, cabinet.Description, cabinet.Location, id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating cabinet: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("cabinet %d: %w", id, ErrNotFound)
	}

	s.cache.Invalidate(cache.KindCabinets)
	return s.GetCabinet(ctx, id)
}

// DeleteCabinet deletes a cabinet. The check and the delete run in a single
// transaction so a cabinet with referencing item locations can never be
// removed, regardless of interleaved writers.
func (s *Store) DeleteCabinet(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM item_locations WHERE cabinet_id = ?`, id,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("checking cabinet locations: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("cabinet %d has %d item locations: %w", id, count, ErrConflict)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM cabinets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting cabinet: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("cabinet %d: %w", id, ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing cabinet delete: %w", err)
	}

	s.cache.Invalidate(cache.KindCabinets)
	return nil
}

// CabinetSummaries returns, for every cabinet, the number of item locations
// referencing it, how many of those need attention (low or out of stock), and
// the same counts broken down by item category.
func (s *Store) CabinetSummaries(ctx context.Context) ([]model.CabinetSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT c.id, c.name, c.abbreviation, c.color, i.category,
		        COUNT(il.id),
		        COALESCE(SUM(CASE WHEN il.stock_status IN ('low-stock', 'out-of-stock') THEN 1 ELSE 0 END), 0)
		 FROM cabinets c
		 LEFT JOIN item_locations il ON il.cabinet_id = c.id
		 LEFT JOIN items i ON i.id = il.item_id
		 GROUP BY c.id, i.category
		 ORDER BY c.name, c.id, i.category`)
	if err != nil {
		return nil, fmt.Errorf("querying cabinet summaries: %w", err)
	}
	defer rows.Close()

	var summaries []model.CabinetSummary
	byID := map[int64]int{}
	for rows.Next() {
		var id int64
		var name, abbreviation string
		var color, category sql.NullString
		var total, low int
		if err := rows.Scan(&id, &name, &abbreviation, &color, &category, &total, &low); err != nil {
			return nil, fmt.Errorf("scanning cabinet summary: %w", err)
		}

		idx, ok := byID[id]
		if !ok {
			summaries = append(summaries, model.CabinetSummary{
				CabinetID:    id,
				Name:         name,
				Abbreviation: abbreviation,
				Color:        color.String,
				Categories:   []model.CategoryCount{},
			})
			idx = len(summaries) - 1
			byID[id] = idx
		}

		// A NULL category means the cabinet has no locations at all.
		if !category.Valid {
			continue
		}

		summaries[idx].TotalItems += total
		summaries[idx].LowStockItems += low
		summaries[idx].Categories = append(summaries[idx].Categories, model.CategoryCount{
			Category:      category.String,
			TotalItems:    total,
			LowStockItems: low,
		})
	}
	return summaries, rows.Err()
}

// OrderedCabinetsForPost returns the cabinets present at a post, sorted by the
// post's custom display order. Cabinets without a custom position sort after
// the ordered ones, by id.
func (s *Store) OrderedCabinetsForPost(ctx context.Context, postID string) ([]model.Cabinet, error) {
	if _, err := s.GetPost(ctx, postID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT c.id, c.name, c.abbreviation, c.color, c.description, c.location,
		        c.created_at, o.sort_order
		 FROM cabinets c
		 JOIN cabinet_locations cl ON cl.cabinet_id = c.id AND cl.post_id = ?
		 LEFT JOIN post_cabinet_order o ON o.cabinet_id = c.id AND o.post_id = ?
		 ORDER BY o.sort_order IS NULL, o.sort_order, c.id`,
		postID, postID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying ordered cabinets: %w", err)
	}
	defer rows.Close()

	var cabinets []model.Cabinet
	for rows.Next() {
		c := model.Cabinet{}
		var color, description, location sql.NullString
		var sortOrder sql.NullInt64
		if err := rows.Scan(&c.ID, &c.Name, &c.Abbreviation, &color, &description,
			&location, &c.CreatedAt, &sortOrder); err != nil {
			return nil, fmt.Errorf("scanning ordered cabinet: %w", err)
		}
		c.Color = color.String
		c.Description = description.String
		c.Location = location.String
		cabinets = append(cabinets, c)
	}
	return cabinets, rows.Err()
}

// SetCabinetOrder replaces a post's cabinet display order with the given
// cabinet ids, first to last.
func (s *Store) SetCabinetOrder(ctx context.Context, postID string, cabinetIDs []int64) error {
	if _, err := s.GetPost(ctx, postID); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM post_cabinet_order WHERE post_id = ?`, postID); err != nil {
		return fmt.Errorf("clearing cabinet order: %w", err)
	}

	for i, cabinetID := range cabinetIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO post_cabinet_order (post_id, cabinet_id, sort_order) VALUES (?, ?, ?)`,
			postID, cabinetID, i); err != nil {
			return fmt.Errorf("setting cabinet order: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing cabinet order: %w", err)
	}
	return nil
}

// CreateDrawer adds a drawer to a cabinet.
func (s *Store) CreateDrawer(ctx context.Context, cabinetID int64, name string) (*model.Drawer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidf("drawer name required")
	}
	if _, err := s.GetCabinet(ctx, cabinetID); err != nil {
		return nil, err
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO drawers (cabinet_id, name) VALUES (?, ?)`, cabinetID, name)
	if err != nil {
		return nil, fmt.Errorf("creating drawer: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting drawer id: %w", err)
	}
	return &model.Drawer{ID: id, CabinetID: cabinetID, Name: name}, nil
}

// ListDrawers returns the drawers of a cabinet.
func (s *Store) ListDrawers(ctx context.Context, cabinetID int64) ([]model.Drawer, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, cabinet_id, name FROM drawers WHERE cabinet_id = ? ORDER BY name`, cabinetID)
	if err != nil {
		return nil, fmt.Errorf("listing drawers: %w", err)
	}
	defer rows.Close()

	var drawers []model.Drawer
	for rows.Next() {
		var d model.Drawer
		if err := rows.Scan(&d.ID, &d.CabinetID, &d.Name); err != nil {
			return nil, fmt.Errorf("scanning drawer: %w", err)
		}
		drawers = append(drawers, d)
	}
	return drawers, rows.Err()
}

// DeleteDrawer deletes a drawer. Item locations keep their cabinet assignment
// and drop the drawer reference through the schema's SET NULL rule.
func (s *Store) DeleteDrawer(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM drawers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting drawer: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("drawer %d: %w", id, ErrNotFound)
	}
	return nil
}

// CreateCabinetLocation records that a cabinet is present at a post.
func (s *Store) CreateCabinetLocation(ctx context.Context, cl model.CabinetLocation) (*model.CabinetLocation, error) {
	if _, err := s.GetCabinet(ctx, cl.CabinetID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, invalidf("cabinet %d does not exist", cl.CabinetID)
		}
		return nil, err
	}
	if _, err := s.GetPost(ctx, cl.PostID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, invalidf("post %q does not exist", cl.PostID)
		}
		return nil, err
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO cabinet_locations (cabinet_id, post_id, sub_location) VALUES (?, ?, ?)`,
		cl.CabinetID, cl.PostID, cl.SubLocation,
	)
	if err != nil {
		return nil, fmt.Errorf("creating cabinet location: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting cabinet location id: %w", err)
	}
	cl.ID = id
	return &cl, nil
}

// ListCabinetLocations returns cabinet placements, optionally filtered by post.
func (s *Store) ListCabinetLocations(ctx context.Context, postID string) ([]model.CabinetLocation, error) {
	query := `SELECT cl.id, cl.cabinet_id, cl.post_id, cl.sub_location, c.name, p.name
	          FROM cabinet_locations cl
	          JOIN cabinets c ON c.id = cl.cabinet_id
	          JOIN ambulance_posts p ON p.id = cl.post_id`
	var rows *sql.Rows
	var err error
	if postID != "" {
		rows, err = s.db.QueryContext(ctx, query+` WHERE cl.post_id = ? ORDER BY c.name`, postID)
	} else {
		rows, err = s.db.QueryContext(ctx, query+` ORDER BY p.name, c.name`)
	}
	if err != nil {
		return nil, fmt.Errorf("listing cabinet locations: %w", err)
	}
	defer rows.Close()

	var locations []model.CabinetLocation
	for rows.Next() {
		var cl model.CabinetLocation
		var subLocation sql.NullString
		if err := rows.Scan(&cl.ID, &cl.CabinetID, &cl.PostID, &subLocation,
			&cl.CabinetName, &cl.PostName); err != nil {
			return nil, fmt.Errorf("scanning cabinet location: %w", err)
		}
		cl.SubLocation = subLocation.String
		locations = append(locations, cl)
	}
	return locations, rows.Err()
}

// DeleteCabinetLocation removes a cabinet placement.
func (s *Store) DeleteCabinetLocation(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM cabinet_locations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting cabinet location: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("cabinet location %d: %w", id, ErrNotFound)
	}
	return nil
}

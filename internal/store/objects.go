package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// CreateObject reserves a slot for an item photo and returns its path id.
// The client uploads the bytes to the returned path afterwards, mirroring a
// pre-signed object-storage upload.
func (s *Store) CreateObject(ctx context.Context) (string, error) {
	id := uuid.NewString()
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO objects (id) VALUES (?)`, id); err != nil {
		return "", fmt.Errorf("creating object: %w", err)
	}
	return id, nil
}

// PutObject stores the bytes of a previously reserved object.
func (s *Store) PutObject(ctx context.Context, id string, data []byte, mime string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE objects SET data = ?, mime = ? WHERE id = ?`, data, mime, id)
	if err != nil {
		return fmt.Errorf("storing object: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("object %q: %w", id, ErrNotFound)
	}
	return nil
}

// GetObject returns an object's bytes and MIME type. An object that was
// reserved but never uploaded counts as not found.
func (s *Store) GetObject(ctx context.Context, id string) ([]byte, string, error) {
	var data []byte
	var mime sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT data, mime FROM objects WHERE id = ?`, id,
	).Scan(&data, &mime)
	if err == sql.ErrNoRows {
		return nil, "", fmt.Errorf("object %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting object: %w", err)
	}
	if data == nil {
		return nil, "", fmt.Errorf("object %q has no data: %w", id, ErrNotFound)
	}
	return data, mime.String, nil
}

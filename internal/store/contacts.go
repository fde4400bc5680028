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

func validateContact(c *model.PostContact) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	if c.Name == "" {
		return invalidf("contact name required")
	}
	if c.Email == "" || !strings.Contains(c.Email, "@") {
		return invalidf("contact email %q is not an email address", c.Email)
	}
	return nil
}

// CreateContact creates a post contact.
func (s *Store) CreateContact(ctx context.Context, contact model.PostContact) (*model.PostContact, error) {
	if err := validateContact(&contact); err != nil {
		return nil, err
	}
	if _, err := s.GetPost(ctx, contact.PostID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, invalidf("post %q does not exist", contact.PostID)
		}
		return nil, err
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO post_contacts (post_id, name, email, department, active)
		 VALUES (?, ?, ?, ?, ?)`,
		contact.PostID, contact.Name, contact.Email, contact.Department, contact.Active,
	)
	if err != nil {
		return nil, fmt.Errorf("creating contact: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting contact id: %w", err)
	}

	s.cache.Invalidate(cache.KindContacts)
	return s.GetContact(ctx, id)
}

func scanContact(row interface{ Scan(...any) error }) (*model.PostContact, error) {
	c := &model.PostContact{}
	var department sql.NullString
	err := row.Scan(&c.ID, &c.PostID, &c.Name, &c.Email, &department, &c.Active, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.Department = department.String
	return c, nil
}

// GetContact returns a contact by ID.
func (s *Store) GetContact(ctx context.Context, id int64) (*model.PostContact, error) {
	contact, err := scanContact(s.db.QueryRowContext(ctx,
		`SELECT id, post_id, name, email, department, active, created_at
		 FROM post_contacts WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("contact %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting contact: %w", err)
	}
	return contact, nil
}

// ListContacts returns contacts, optionally restricted to one post.
// Served from the read cache when fresh.
func (s *Store) ListContacts(ctx context.Context, postID string) ([]model.PostContact, error) {
	key := "list:" + postID
	if v, ok := s.cache.Get(cache.KindContacts, key); ok {
		return v.([]model.PostContact), nil
	}

	var rows *sql.Rows
	var err error
	if postID != "" {
		rows, err = s.db.QueryContext(ctx,
			`SELECT id, post_id, name, email, department, active, created_at
			 FROM post_contacts WHERE post_id = ? ORDER BY name`, postID)
	} else {
		rows, err = s.db.QueryContext(ctx,
			`SELECT id, post_id, name, email, department, active, created_at
			 FROM post_contacts ORDER BY post_id, name`)
	}
	if err != nil {
		return nil, fmt.Errorf("listing contacts: %w", err)
	}
	defer rows.Close()

	var contacts []model.PostContact
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning contact: %w", err)
		}
		contacts = append(contacts, *contact)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	s.cache.Set(cache.KindContacts, key, contacts)
	return contacts, nil
}

// UpdateContact updates a contact's details.
func (s *Store) UpdateContact(ctx context.Context, id int64, contact model.PostContact) (*model.PostContact, error) {
	if err := validateContact(&contact); err != nil {
		return nil, err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE post_contacts SET name = ?, email = ?, department = ?, active = ?
		 WHERE id = ?`,
		contact.Name, contact.Email, contact.Department, contact.Active, id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating contact: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("contact %d: %w", id, ErrNotFound)
	}

	s.cache.Invalidate(cache.KindContacts)
	return s.GetContact(ctx, id)
}

// DeleteContact deletes a contact. Item locations that referenced it fall
// back to the post's other contacts through the schema's SET NULL rule.
func (s *Store) DeleteContact(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM post_contacts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting contact: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("contact %d: %w", id, ErrNotFound)
	}

	s.cache.Invalidate(cache.KindContacts)
	return nil
}

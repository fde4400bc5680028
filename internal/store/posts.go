package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/avandijk/medstock/internal/cache"
	"github.com/avandijk/medstock/internal/model"
)

// CreatePost creates an ambulance post. The caller chooses the id, which must
// be a lowercase slug.
func (s *Store) CreatePost(ctx context.Context, post model.AmbulancePost) (*model.AmbulancePost, error) {
	post.Name = strings.TrimSpace(post.Name)
	if !model.ValidPostID(post.ID) {
		return nil, invalidf("post id %q must be a lowercase slug", post.ID)
	}
	if post.Name == "" {
		return nil, invalidf("post name required")
	}

	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM ambulance_posts WHERE id = ?`, post.ID,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("checking post id: %w", err)
	}
	if exists > 0 {
		return nil, fmt.Errorf("post %q already exists: %w", post.ID, ErrConflict)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO ambulance_posts (id, name, location, active) VALUES (?, ?, ?, ?)`,
		post.ID, post.Name, post.Location, post.Active,
	)
	if err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}

	s.cache.Invalidate(cache.KindPosts)
	return s.GetPost(ctx, post.ID)
}

// GetPost returns a post by ID.
func (s *Store) GetPost(ctx context.Context, id string) (*model.AmbulancePost, error) {
	post := &model.AmbulancePost{}
	var location sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, location, active, created_at FROM ambulance_posts WHERE id = ?`, id,
	).Scan(&post.ID, &post.Name, &location, &post.Active, &post.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("post %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting post: %w", err)
	}
	post.Location = location.String
	return post, nil
}

// ListPosts returns all ambulance posts. The list is served from the read
// cache when fresh.
func (s *Store) ListPosts(ctx context.Context) ([]model.AmbulancePost, error) {
	if v, ok := s.cache.Get(cache.KindPosts, "list"); ok {
		return v.([]model.AmbulancePost), nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, location, active, created_at FROM ambulance_posts ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	defer rows.Close()

	var posts []model.AmbulancePost
	for rows.Next() {
		var post model.AmbulancePost
		var location sql.NullString
		if err := rows.Scan(&post.ID, &post.Name, &location, &post.Active, &post.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning post: %w", err)
		}
		post.Location = location.String
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	s.cache.Set(cache.KindPosts, "list", posts)
	return posts, nil
}

// UpdatePost updates a post's name, location and active flag.
func (s *Store) UpdatePost(ctx context.Context, id, name, location string, active bool) (*model.AmbulancePost, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidf("post name required")
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE ambulance_posts SET name = ?, location = ?, active = ? WHERE id = ?`,
		name, location, active, id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating post: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("post %q: %w", id, ErrNotFound)
	}

	s.cache.Invalidate(cache.KindPosts)
	return s.GetPost(ctx, id)
}

// DeletePost deletes a post. Fails if item locations still reference it, so
// stock assignments are never silently dropped.
func (s *Store) DeletePost(ctx context.Context, id string) error {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM item_locations WHERE post_id = ?`, id,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("checking post locations: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("post %q has %d item locations: %w", id, count, ErrConflict)
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM ambulance_posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("post %q: %w", id, ErrNotFound)
	}

	s.cache.Invalidate(cache.KindPosts)
	s.cache.Invalidate(cache.KindContacts)
	return nil
}

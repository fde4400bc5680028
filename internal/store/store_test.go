package store

import (
	"context"
	"testing"
	"time"

	"github.com/avandijk/medstock/internal/cache"
	"github.com/avandijk/medstock/internal/db"
	"github.com/avandijk/medstock/internal/model"
)

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	return New(db.NewTestDB(t), cache.New(time.Minute), opts...)
}

// Fixtures shared across store tests.

func createTestPost(t *testing.T, s *Store, id string) *model.AmbulancePost {
	t.Helper()
	post, err := s.CreatePost(context.Background(), model.AmbulancePost{
		ID: id, Name: "Post " + id, Active: true,
	})
	if err != nil {
		t.Fatalf("CreatePost(%s): %v", id, err)
	}
	return post
}

func createTestCabinet(t *testing.T, s *Store, name, abbreviation string) *model.Cabinet {
	t.Helper()
	cabinet, err := s.CreateCabinet(context.Background(), model.Cabinet{
		Name: name, Abbreviation: abbreviation,
	})
	if err != nil {
		t.Fatalf("CreateCabinet(%s): %v", name, err)
	}
	return cabinet
}

func createTestItem(t *testing.T, s *Store, name, category string) *model.Item {
	t.Helper()
	item, err := s.CreateItem(context.Background(), model.Item{
		Name: name, Category: category,
	})
	if err != nil {
		t.Fatalf("CreateItem(%s): %v", name, err)
	}
	return item
}

func createTestLocation(t *testing.T, s *Store, itemID int64, postID string, cabinetID int64, status string) *model.ItemLocation {
	t.Helper()
	loc, err := s.CreateItemLocation(context.Background(), model.ItemLocation{
		ItemID: itemID, PostID: postID, CabinetID: cabinetID, StockStatus: status,
	})
	if err != nil {
		t.Fatalf("CreateItemLocation: %v", err)
	}
	return loc
}

func createTestContact(t *testing.T, s *Store, postID, name, email string) *model.PostContact {
	t.Helper()
	contact, err := s.CreateContact(context.Background(), model.PostContact{
		PostID: postID, Name: name, Email: email, Active: true,
	})
	if err != nil {
		t.Fatalf("CreateContact(%s): %v", name, err)
	}
	return contact
}

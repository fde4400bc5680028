package store

import (
	"context"
	"testing"

	"github.com/avandijk/medstock/internal/model"
)

func TestSupplyRequestReceipts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	createTestPost(t, s, "post-a")
	cabinet := createTestCabinet(t, s, "CAB1", "C1")
	item := createTestItem(t, s, "Bandage", "Wound Care")
	loc := createTestLocation(t, s, item.ID, "post-a", cabinet.ID, model.StockLowStock)

	// No receipt yet: nil without an error.
	last, err := s.LastSupplyRequestForLocation(ctx, loc.ID)
	if err != nil {
		t.Fatalf("LastSupplyRequestForLocation: %v", err)
	}
	if last != nil {
		t.Fatalf("expected no receipt for fresh location, got %+v", last)
	}

	if _, err := s.CreateSupplyRequest(ctx, item.ID, &loc.ID, "", false); !IsValidation(err) {
		t.Errorf("expected validation error for empty recipient, got %v", err)
	}

	first, err := s.CreateSupplyRequest(ctx, item.ID, &loc.ID, "nurse@example.org", false)
	if err != nil {
		t.Fatalf("CreateSupplyRequest: %v", err)
	}
	second, err := s.CreateSupplyRequest(ctx, item.ID, &loc.ID, "nurse@example.org", true)
	if err != nil {
		t.Fatalf("CreateSupplyRequest: %v", err)
	}

	last, err = s.LastSupplyRequestForLocation(ctx, loc.ID)
	if err != nil {
		t.Fatalf("LastSupplyRequestForLocation: %v", err)
	}
	if last == nil || last.ID != second.ID {
		t.Errorf("expected newest receipt %d, got %+v", second.ID, last)
	}
	if !last.Urgent {
		t.Error("expected newest receipt to carry the urgent flag")
	}

	history, err := s.ListSupplyRequestsForItem(ctx, item.ID)
	if err != nil {
		t.Fatalf("ListSupplyRequestsForItem: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 receipts, got %d", len(history))
	}
	if history[0].ID != second.ID || history[1].ID != first.ID {
		t.Errorf("expected newest-first history, got %v then %v", history[0].ID, history[1].ID)
	}
}

func TestSupplyRequestSurvivesLocationDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	createTestPost(t, s, "post-a")
	cabinet := createTestCabinet(t, s, "CAB1", "C1")
	item := createTestItem(t, s, "Bandage", "Wound Care")
	loc := createTestLocation(t, s, item.ID, "post-a", cabinet.ID, model.StockOutOfStock)

	receipt, err := s.CreateSupplyRequest(ctx, item.ID, &loc.ID, "nurse@example.org", true)
	if err != nil {
		t.Fatalf("CreateSupplyRequest: %v", err)
	}

	if err := s.DeleteItemLocation(ctx, loc.ID); err != nil {
		t.Fatalf("DeleteItemLocation: %v", err)
	}

	// The receipt is kept, its location reference nulled.
	kept, err := s.GetSupplyRequest(ctx, receipt.ID)
	if err != nil {
		t.Fatalf("GetSupplyRequest after location delete: %v", err)
	}
	if kept.LocationID != nil {
		t.Errorf("expected nil location id on kept receipt, got %v", *kept.LocationID)
	}
}

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/avandijk/medstock/internal/model"
)

func TestCreateCabinetValidation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cases := []model.Cabinet{
		{Name: "", Abbreviation: "C1"},
		{Name: "Cabinet", Abbreviation: ""},
		{Name: "Cabinet", Abbreviation: "LONG"}, // longer than 3
	}
	for _, cabinet := range cases {
		if _, err := s.CreateCabinet(ctx, cabinet); !IsValidation(err) {
			t.Errorf("CreateCabinet(%+v): expected validation error, got %v", cabinet, err)
		}
	}
}

func TestDeleteCabinetInUse(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	createTestPost(t, s, "post-a")
	cabinet := createTestCabinet(t, s, "CAB1", "C1")
	item := createTestItem(t, s, "Bandage", "Wound Care")
	loc := createTestLocation(t, s, item.ID, "post-a", cabinet.ID, model.StockInStock)

	if err := s.DeleteCabinet(ctx, cabinet.ID); !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict deleting cabinet in use, got %v", err)
	}

	// With the referencing location gone the delete succeeds and the
	// cabinet disappears from the list.
	if err := s.DeleteItemLocation(ctx, loc.ID); err != nil {
		t.Fatalf("DeleteItemLocation: %v", err)
	}
	if err := s.DeleteCabinet(ctx, cabinet.ID); err != nil {
		t.Fatalf("DeleteCabinet: %v", err)
	}

	cabinets, err := s.ListCabinets(ctx)
	if err != nil {
		t.Fatalf("ListCabinets: %v", err)
	}
	for _, c := range cabinets {
		if c.ID == cabinet.ID {
			t.Error("expected deleted cabinet to vanish from the list")
		}
	}
}

func TestCabinetSummaries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	createTestPost(t, s, "post-a")
	cab1 := createTestCabinet(t, s, "CAB1", "C1")
	cab2 := createTestCabinet(t, s, "CAB2", "C2")

	bandage := createTestItem(t, s, "Bandage", "Wound Care")
	gauze := createTestItem(t, s, "Gauze", "Wound Care")
	aspirin := createTestItem(t, s, "Aspirin", "Medication")

	createTestLocation(t, s, bandage.ID, "post-a", cab1.ID, model.StockInStock)
	createTestLocation(t, s, gauze.ID, "post-a", cab1.ID, model.StockLowStock)
	createTestLocation(t, s, aspirin.ID, "post-a", cab1.ID, model.StockOutOfStock)

	summaries, err := s.CabinetSummaries(ctx)
	if err != nil {
		t.Fatalf("CabinetSummaries: %v", err)
	}

	byID := map[int64]model.CabinetSummary{}
	for _, sum := range summaries {
		byID[sum.CabinetID] = sum
	}

	sum1, ok := byID[cab1.ID]
	if !ok {
		t.Fatal("expected a summary for CAB1")
	}
	if sum1.TotalItems != 3 {
		t.Errorf("expected CAB1 total 3, got %d", sum1.TotalItems)
	}
	if sum1.LowStockItems != 2 {
		t.Errorf("expected CAB1 low stock 2 (low + out), got %d", sum1.LowStockItems)
	}
	if len(sum1.Categories) != 2 {
		t.Errorf("expected 2 category groups, got %d", len(sum1.Categories))
	}
	var catTotal, catLow int
	for _, cc := range sum1.Categories {
		catTotal += cc.TotalItems
		catLow += cc.LowStockItems
	}
	if catTotal != sum1.TotalItems || catLow != sum1.LowStockItems {
		t.Errorf("category breakdown (%d/%d) does not add up to totals (%d/%d)",
			catTotal, catLow, sum1.TotalItems, sum1.LowStockItems)
	}

	// An empty cabinet still appears, with zero counts.
	sum2, ok := byID[cab2.ID]
	if !ok {
		t.Fatal("expected a summary for CAB2")
	}
	if sum2.TotalItems != 0 || sum2.LowStockItems != 0 {
		t.Errorf("expected empty CAB2 summary, got %+v", sum2)
	}
}

func TestOrderedCabinetsForPost(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	createTestPost(t, s, "post-a")
	cab1 := createTestCabinet(t, s, "Alpha", "A")
	cab2 := createTestCabinet(t, s, "Bravo", "B")
	cab3 := createTestCabinet(t, s, "Charlie", "C")

	for _, id := range []int64{cab1.ID, cab2.ID, cab3.ID} {
		if _, err := s.CreateCabinetLocation(ctx, model.CabinetLocation{
			CabinetID: id, PostID: "post-a",
		}); err != nil {
			t.Fatalf("CreateCabinetLocation: %v", err)
		}
	}

	// Without a custom order the fallback is id order.
	cabinets, err := s.OrderedCabinetsForPost(ctx, "post-a")
	if err != nil {
		t.Fatalf("OrderedCabinetsForPost: %v", err)
	}
	if len(cabinets) != 3 {
		t.Fatalf("expected 3 cabinets, got %d", len(cabinets))
	}
	if cabinets[0].ID != cab1.ID || cabinets[2].ID != cab3.ID {
		t.Errorf("expected id-order fallback, got %v %v %v",
			cabinets[0].ID, cabinets[1].ID, cabinets[2].ID)
	}

	// With a custom order, it wins.
	if err := s.SetCabinetOrder(ctx, "post-a", []int64{cab3.ID, cab1.ID, cab2.ID}); err != nil {
		t.Fatalf("SetCabinetOrder: %v", err)
	}
	cabinets, err = s.OrderedCabinetsForPost(ctx, "post-a")
	if err != nil {
		t.Fatalf("OrderedCabinetsForPost: %v", err)
	}
	want := []int64{cab3.ID, cab1.ID, cab2.ID}
	for i, cabinet := range cabinets {
		if cabinet.ID != want[i] {
			t.Errorf("position %d: expected cabinet %d, got %d", i, want[i], cabinet.ID)
		}
	}
}

func TestOrderedCabinetsUnknownPost(t *testing.T) {
	s := newTestStore(t)

	_, err := s.OrderedCabinetsForPost(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDrawers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cabinet := createTestCabinet(t, s, "CAB1", "C1")

	drawer, err := s.CreateDrawer(ctx, cabinet.ID, "Top")
	if err != nil {
		t.Fatalf("CreateDrawer: %v", err)
	}
	if _, err := s.CreateDrawer(ctx, cabinet.ID, ""); !IsValidation(err) {
		t.Errorf("expected validation error for empty drawer name, got %v", err)
	}

	drawers, err := s.ListDrawers(ctx, cabinet.ID)
	if err != nil {
		t.Fatalf("ListDrawers: %v", err)
	}
	if len(drawers) != 1 {
		t.Errorf("expected 1 drawer, got %d", len(drawers))
	}

	if err := s.DeleteDrawer(ctx, drawer.ID); err != nil {
		t.Fatalf("DeleteDrawer: %v", err)
	}
	if err := s.DeleteDrawer(ctx, drawer.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for double delete, got %v", err)
	}
}

package supply

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/avandijk/medstock/internal/cache"
	"github.com/avandijk/medstock/internal/db"
	"github.com/avandijk/medstock/internal/mail"
	"github.com/avandijk/medstock/internal/model"
	"github.com/avandijk/medstock/internal/store"
)

// fakeTransport records sent messages and can be told to fail.
type fakeTransport struct {
	sent []mail.Message
	fail bool
}

func (f *fakeTransport) Send(_ context.Context, msg mail.Message) error {
	if f.fail {
		return errors.New("relay unreachable")
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fixture struct {
	store     *store.Store
	service   *Service
	transport *fakeTransport
	item      *model.Item
	location  *model.ItemLocation
}

// newFixture sets up a post, cabinet, item and one location in the given
// stock status. alertEmail is set on the item when non-empty.
func newFixture(t *testing.T, status, alertEmail string) *fixture {
	t.Helper()
	ctx := context.Background()

	st := store.New(db.NewTestDB(t), cache.New(time.Minute))
	transport := &fakeTransport{}

	if _, err := st.CreatePost(ctx, model.AmbulancePost{
		ID: "post-a", Name: "Post A", Active: true,
	}); err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	cabinet, err := st.CreateCabinet(ctx, model.Cabinet{Name: "CAB1", Abbreviation: "C1"})
	if err != nil {
		t.Fatalf("CreateCabinet: %v", err)
	}
	item, err := st.CreateItem(ctx, model.Item{
		Name: "Bandage", Category: "Wound Care", AlertEmail: alertEmail,
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	loc, err := st.CreateItemLocation(ctx, model.ItemLocation{
		ItemID: item.ID, PostID: "post-a", CabinetID: cabinet.ID, StockStatus: status,
	})
	if err != nil {
		t.Fatalf("CreateItemLocation: %v", err)
	}

	return &fixture{
		store:     st,
		service:   NewService(st, transport),
		transport: transport,
		item:      item,
		location:  loc,
	}
}

func (f *fixture) addContact(t *testing.T, name, email string, active bool) *model.PostContact {
	t.Helper()
	contact, err := f.store.CreateContact(context.Background(), model.PostContact{
		PostID: "post-a", Name: name, Email: email, Active: active,
	})
	if err != nil {
		t.Fatalf("CreateContact: %v", err)
	}
	return contact
}

func TestSendRequest(t *testing.T) {
	f := newFixture(t, model.StockOutOfStock, "")
	f.addContact(t, "Nurse", "nurse@example.org", true)
	ctx := context.Background()

	receipt, err := f.service.SendRequest(ctx, f.location.ID)
	if err != nil {
		t.Fatalf("SendRequest: %v", err)
	}
	if receipt.Recipient != "nurse@example.org" {
		t.Errorf("expected receipt for nurse@example.org, got %q", receipt.Recipient)
	}
	if !receipt.Urgent {
		t.Error("expected an out-of-stock request to be urgent")
	}

	if len(f.transport.sent) != 1 {
		t.Fatalf("expected 1 message sent, got %d", len(f.transport.sent))
	}
	msg := f.transport.sent[0]
	if msg.To != "nurse@example.org" || !msg.Urgent {
		t.Errorf("unexpected message %+v", msg)
	}
}

func TestSendRequestPrefersLocationContact(t *testing.T) {
	f := newFixture(t, model.StockLowStock, "")
	f.addContact(t, "Fallback", "fallback@example.org", true)
	owner := f.addContact(t, "Owner", "owner@example.org", true)
	ctx := context.Background()

	// Replace the fixture location with one carrying its own contact.
	if err := f.store.DeleteItemLocation(ctx, f.location.ID); err != nil {
		t.Fatalf("DeleteItemLocation: %v", err)
	}
	loc, err := f.store.CreateItemLocation(ctx, model.ItemLocation{
		ItemID: f.item.ID, PostID: "post-a", CabinetID: f.location.CabinetID,
		ContactID: &owner.ID, StockStatus: model.StockLowStock,
	})
	if err != nil {
		t.Fatalf("CreateItemLocation: %v", err)
	}

	receipt, err := f.service.SendRequest(ctx, loc.ID)
	if err != nil {
		t.Fatalf("SendRequest: %v", err)
	}
	if receipt.Recipient != "owner@example.org" {
		t.Errorf("expected the location's own contact, got %q", receipt.Recipient)
	}
	if receipt.Urgent {
		t.Error("expected a low-stock request to not be urgent")
	}
}

func TestSendRequestSkipsInactiveContacts(t *testing.T) {
	f := newFixture(t, model.StockLowStock, "")
	f.addContact(t, "Former", "former@example.org", false)
	f.addContact(t, "Current", "current@example.org", true)

	receipt, err := f.service.SendRequest(context.Background(), f.location.ID)
	if err != nil {
		t.Fatalf("SendRequest: %v", err)
	}
	if receipt.Recipient != "current@example.org" {
		t.Errorf("expected the active contact, got %q", receipt.Recipient)
	}
}

func TestSendRequestNoContact(t *testing.T) {
	f := newFixture(t, model.StockOutOfStock, "")

	_, err := f.service.SendRequest(context.Background(), f.location.ID)
	if !errors.Is(err, ErrNoContact) {
		t.Fatalf("expected ErrNoContact, got %v", err)
	}
	if len(f.transport.sent) != 0 {
		t.Errorf("expected no message sent, got %d", len(f.transport.sent))
	}

	// Adding a contact and retrying succeeds.
	f.addContact(t, "Nurse", "nurse@example.org", true)
	if _, err := f.service.SendRequest(context.Background(), f.location.ID); err != nil {
		t.Fatalf("SendRequest after adding contact: %v", err)
	}
}

func TestSendRequestNotNeeded(t *testing.T) {
	f := newFixture(t, model.StockInStock, "")
	f.addContact(t, "Nurse", "nurse@example.org", true)

	_, err := f.service.SendRequest(context.Background(), f.location.ID)
	if !errors.Is(err, ErrNotNeeded) {
		t.Errorf("expected ErrNotNeeded for an in-stock location, got %v", err)
	}
}

func TestSendRequestTransportFailure(t *testing.T) {
	f := newFixture(t, model.StockOutOfStock, "")
	f.addContact(t, "Nurse", "nurse@example.org", true)
	ctx := context.Background()

	f.transport.fail = true
	if _, err := f.service.SendRequest(ctx, f.location.ID); err == nil {
		t.Fatal("expected an error when delivery fails")
	}

	// No receipt was written, so the request can be retried.
	last, err := f.store.LastSupplyRequestForLocation(ctx, f.location.ID)
	if err != nil {
		t.Fatalf("LastSupplyRequestForLocation: %v", err)
	}
	if last != nil {
		t.Fatalf("expected no receipt after failed delivery, got %+v", last)
	}

	f.transport.fail = false
	if _, err := f.service.SendRequest(ctx, f.location.ID); err != nil {
		t.Fatalf("SendRequest retry: %v", err)
	}
}

func TestStatus(t *testing.T) {
	f := newFixture(t, model.StockLowStock, "")
	ctx := context.Background()

	status, err := f.service.Status(ctx, f.location.ID)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !status.NeedsSupply || status.HasContact || status.AlreadySent {
		t.Errorf("expected needs-supply without contact, got %+v", status)
	}

	f.addContact(t, "Nurse", "nurse@example.org", true)
	status, err = f.service.Status(ctx, f.location.ID)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !status.HasContact || status.AlreadySent {
		t.Errorf("expected contact but nothing sent yet, got %+v", status)
	}

	if _, err := f.service.SendRequest(ctx, f.location.ID); err != nil {
		t.Fatalf("SendRequest: %v", err)
	}
	status, err = f.service.Status(ctx, f.location.ID)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !status.AlreadySent || status.LastSentAt == nil {
		t.Errorf("expected already-sent after delivery, got %+v", status)
	}
}

func TestReset(t *testing.T) {
	f := newFixture(t, model.StockOutOfStock, "")
	f.addContact(t, "Nurse", "nurse@example.org", true)
	ctx := context.Background()

	receipt, err := f.service.SendRequest(ctx, f.location.ID)
	if err != nil {
		t.Fatalf("SendRequest: %v", err)
	}

	loc, err := f.service.Reset(ctx, f.location.ID)
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if loc.StockStatus != model.StockInStock {
		t.Errorf("expected in-stock after reset, got %q", loc.StockStatus)
	}

	// Reset does not offer a new request and keeps history.
	status, err := f.service.Status(ctx, f.location.ID)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.NeedsSupply || status.AlreadySent {
		t.Errorf("expected a quiet in-stock status, got %+v", status)
	}
	if _, err := f.store.GetSupplyRequest(ctx, receipt.ID); err != nil {
		t.Errorf("expected receipt to survive reset: %v", err)
	}
}

func TestMarkItem(t *testing.T) {
	f := newFixture(t, model.StockInStock, "")
	ctx := context.Background()

	// Single location.
	locs, err := f.service.MarkItem(ctx, f.item.ID, &f.location.ID, model.StockOutOfStock)
	if err != nil {
		t.Fatalf("MarkItem: %v", err)
	}
	if len(locs) != 1 || locs[0].StockStatus != model.StockOutOfStock {
		t.Errorf("expected one out-of-stock location, got %+v", locs)
	}

	// A location belonging to a different item is rejected.
	other, err := f.store.CreateItem(ctx, model.Item{Name: "Gauze", Category: "Wound Care"})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if _, err := f.service.MarkItem(ctx, other.ID, &f.location.ID, model.StockLowStock); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for foreign location, got %v", err)
	}

	// Without a location id every location of the item is updated.
	locs, err = f.service.MarkItem(ctx, f.item.ID, nil, model.StockLowStock)
	if err != nil {
		t.Fatalf("MarkItem (all): %v", err)
	}
	if len(locs) != 1 || locs[0].StockStatus != model.StockLowStock {
		t.Errorf("expected all locations low-stock, got %+v", locs)
	}

	// An item with no locations is fine, a missing item is not.
	locs, err = f.service.MarkItem(ctx, other.ID, nil, model.StockLowStock)
	if err != nil {
		t.Fatalf("MarkItem (no locations): %v", err)
	}
	if len(locs) != 0 {
		t.Errorf("expected no locations, got %+v", locs)
	}
	if _, err := f.service.MarkItem(ctx, 999, nil, model.StockLowStock); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing item, got %v", err)
	}
}

func TestSendWarning(t *testing.T) {
	f := newFixture(t, model.StockInStock, "alerts@example.org")
	ctx := context.Background()

	receipt, err := f.service.SendWarning(ctx, f.item.ID, f.location.ID, model.StockOutOfStock)
	if err != nil {
		t.Fatalf("SendWarning: %v", err)
	}
	if receipt.Recipient != "alerts@example.org" {
		t.Errorf("expected the item's alert address, got %q", receipt.Recipient)
	}
	if !receipt.Urgent {
		t.Error("expected an out-of-stock warning to be urgent")
	}

	loc, err := f.store.GetItemLocation(ctx, f.location.ID)
	if err != nil {
		t.Fatalf("GetItemLocation: %v", err)
	}
	if loc.StockStatus != model.StockOutOfStock {
		t.Errorf("expected the location marked out of stock, got %q", loc.StockStatus)
	}
}

func TestSendWarningNoAlertEmail(t *testing.T) {
	f := newFixture(t, model.StockInStock, "")

	_, err := f.service.SendWarning(context.Background(), f.item.ID, f.location.ID, model.StockLowStock)
	if !errors.Is(err, ErrNoAlertEmail) {
		t.Errorf("expected ErrNoAlertEmail, got %v", err)
	}
}

func TestSendWarningRollsBackOnFailure(t *testing.T) {
	f := newFixture(t, model.StockInStock, "alerts@example.org")
	ctx := context.Background()

	f.transport.fail = true
	if _, err := f.service.SendWarning(ctx, f.item.ID, f.location.ID, model.StockOutOfStock); err == nil {
		t.Fatal("expected an error when delivery fails")
	}

	// The status change was compensated; the catalog shows no warning that
	// nobody received.
	loc, err := f.store.GetItemLocation(ctx, f.location.ID)
	if err != nil {
		t.Fatalf("GetItemLocation: %v", err)
	}
	if loc.StockStatus != model.StockInStock {
		t.Errorf("expected status rolled back to in-stock, got %q", loc.StockStatus)
	}
	last, err := f.store.LastSupplyRequestForLocation(ctx, f.location.ID)
	if err != nil {
		t.Fatalf("LastSupplyRequestForLocation: %v", err)
	}
	if last != nil {
		t.Errorf("expected no receipt after failed warning, got %+v", last)
	}
}

func TestSendWarningRejectsInStock(t *testing.T) {
	f := newFixture(t, model.StockInStock, "alerts@example.org")

	if _, err := f.service.SendWarning(context.Background(), f.item.ID, f.location.ID, model.StockInStock); err == nil {
		t.Error("expected an error for an in-stock warning status")
	}
}

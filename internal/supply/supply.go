// Package supply implements the restock notification trigger: deciding when
// a location may be supplied, sending the email, and recording the receipt
// that drives the "already requested" affordance.
package supply

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/avandijk/medstock/internal/mail"
	"github.com/avandijk/medstock/internal/model"
	"github.com/avandijk/medstock/internal/store"
)

// ErrNoContact is returned when a location has no contact to send to:
// neither an explicit contact on the location nor an active contact at its
// post.
var ErrNoContact = errors.New("no contact configured for location")

// ErrNoAlertEmail is returned when a warning email is requested for an item
// without an alert address.
var ErrNoAlertEmail = errors.New("no alert email configured for item")

// ErrNotNeeded is returned when a supply request is attempted for a location
// that is in stock.
var ErrNotNeeded = errors.New("location does not need supply")

// Service coordinates the store and the mail transport.
type Service struct {
	store     *store.Store
	transport mail.Transport
}

// NewService creates a Service.
func NewService(st *store.Store, transport mail.Transport) *Service {
	return &Service{store: st, transport: transport}
}

// resolveRecipient picks the email address for a location's supply request:
// the location's own contact when set, otherwise the first active contact at
// the location's post.
func (s *Service) resolveRecipient(ctx context.Context, loc *model.ItemLocation) (string, error) {
	if loc.ContactEmail != "" {
		return loc.ContactEmail, nil
	}

	contacts, err := s.store.ListContacts(ctx, loc.PostID)
	if err != nil {
		return "", err
	}
	for _, c := range contacts {
		if c.Active {
			return c.Email, nil
		}
	}
	return "", ErrNoContact
}

// SendRequest sends a restock email for a location that needs supply and
// records the receipt. The receipt is only written after successful delivery;
// a transport failure leaves no trace so the request can be retried.
func (s *Service) SendRequest(ctx context.Context, locationID int64) (*model.SupplyRequest, error) {
	loc, err := s.store.GetItemLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if !model.NeedsSupply(loc.StockStatus) {
		return nil, fmt.Errorf("location %d is %s: %w", locationID, loc.StockStatus, ErrNotNeeded)
	}

	recipient, err := s.resolveRecipient(ctx, loc)
	if err != nil {
		return nil, err
	}

	msg := composeRequest(loc)
	msg.To = recipient
	if err := s.transport.Send(ctx, msg); err != nil {
		return nil, fmt.Errorf("delivering supply request: %w", err)
	}

	receipt, err := s.store.CreateSupplyRequest(ctx, loc.ItemID, &loc.ID, recipient, msg.Urgent)
	if err != nil {
		return nil, err
	}

	slog.Info("supply request sent",
		"item", loc.ItemName, "location", loc.ID, "recipient", recipient, "urgent", msg.Urgent)
	return receipt, nil
}

// RequestStatus describes the supply-request affordance for one location.
type RequestStatus struct {
	NeedsSupply bool       `json:"needs_supply"`
	HasContact  bool       `json:"has_contact"`
	AlreadySent bool       `json:"already_sent"`
	LastSentAt  *time.Time `json:"last_sent_at,omitempty"`
}

// Status computes whether the UI should offer, disable, or suppress the send
// action for a location. A receipt counts as "already sent" only when it
// falls inside the current low/out-of-stock episode.
func (s *Service) Status(ctx context.Context, locationID int64) (*RequestStatus, error) {
	loc, err := s.store.GetItemLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}

	status := &RequestStatus{NeedsSupply: model.NeedsSupply(loc.StockStatus)}

	if _, err := s.resolveRecipient(ctx, loc); err == nil {
		status.HasContact = true
	} else if !errors.Is(err, ErrNoContact) {
		return nil, err
	}

	last, err := s.store.LastSupplyRequestForLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if last != nil {
		status.LastSentAt = &last.SentAt
		if status.NeedsSupply && !last.SentAt.Before(loc.StatusChangedAt) {
			status.AlreadySent = true
		}
	}
	return status, nil
}

// Reset puts a location back in stock so a new notification can be sent in a
// future episode. Historical receipts are untouched.
func (s *Service) Reset(ctx context.Context, locationID int64) (*model.ItemLocation, error) {
	return s.store.SetStockStatus(ctx, locationID, model.StockInStock)
}

// MarkItem sets the stock status of an item's locations. With a location id
// the location must belong to the item; without one every location of the
// item is updated.
func (s *Service) MarkItem(ctx context.Context, itemID int64, locationID *int64, status string) ([]model.ItemLocation, error) {
	if locationID != nil {
		loc, err := s.locationOfItem(ctx, itemID, *locationID)
		if err != nil {
			return nil, err
		}
		updated, err := s.store.SetStockStatus(ctx, loc.ID, status)
		if err != nil {
			return nil, err
		}
		return []model.ItemLocation{*updated}, nil
	}

	locations, err := s.store.ListItemLocationsForItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if len(locations) == 0 {
		// Distinguish a missing item from one with no locations.
		if _, err := s.store.GetItem(ctx, itemID); err != nil {
			return nil, err
		}
		return []model.ItemLocation{}, nil
	}

	updated := make([]model.ItemLocation, 0, len(locations))
	for _, loc := range locations {
		u, err := s.store.SetStockStatus(ctx, loc.ID, status)
		if err != nil {
			return nil, err
		}
		updated = append(updated, *u)
	}
	return updated, nil
}

// SendWarning marks a location low or out of stock and emails the item's
// alert address, as one logical step: when delivery fails the status change
// is rolled back, so the catalog never shows a warning that nobody received.
func (s *Service) SendWarning(ctx context.Context, itemID, locationID int64, status string) (*model.SupplyRequest, error) {
	if !model.NeedsSupply(status) {
		return nil, fmt.Errorf("warning status must be %s or %s",
			model.StockLowStock, model.StockOutOfStock)
	}

	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.AlertEmail == "" {
		return nil, fmt.Errorf("item %d: %w", itemID, ErrNoAlertEmail)
	}

	loc, err := s.locationOfItem(ctx, itemID, locationID)
	if err != nil {
		return nil, err
	}

	previous := loc.StockStatus
	loc, err = s.store.SetStockStatus(ctx, locationID, status)
	if err != nil {
		return nil, err
	}

	msg := composeWarning(item, loc)
	msg.To = item.AlertEmail
	if err := s.transport.Send(ctx, msg); err != nil {
		// Compensate: the status change and the notification are one unit.
		if _, rbErr := s.store.SetStockStatus(ctx, locationID, previous); rbErr != nil {
			slog.Error("rolling back stock status after failed warning email",
				"location", locationID, "error", rbErr)
		}
		return nil, fmt.Errorf("delivering warning email: %w", err)
	}

	receipt, err := s.store.CreateSupplyRequest(ctx, itemID, &loc.ID, item.AlertEmail, msg.Urgent)
	if err != nil {
		return nil, err
	}

	slog.Info("warning email sent",
		"item", item.Name, "location", loc.ID, "recipient", item.AlertEmail, "status", status)
	return receipt, nil
}

func (s *Service) locationOfItem(ctx context.Context, itemID, locationID int64) (*model.ItemLocation, error) {
	loc, err := s.store.GetItemLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if loc.ItemID != itemID {
		return nil, fmt.Errorf("location %d does not belong to item %d: %w",
			locationID, itemID, store.ErrNotFound)
	}
	return loc, nil
}

package model

import "time"

// SupplyRequest is an immutable receipt recording that a restock email was
// sent for an item (optionally a specific location). Receipts are never
// deleted; they drive the "already sent N days ago" affordance.
type SupplyRequest struct {
	ID         int64     `json:"id"`
	ItemID     int64     `json:"item_id"`
	LocationID *int64    `json:"location_id,omitempty"`
	Recipient  string    `json:"recipient"`
	Urgent     bool      `json:"urgent"`
	SentAt     time.Time `json:"sent_at"`
}

package model

import "time"

// Stock statuses for an item location.
const (
	StockInStock    = "in-stock"
	StockLowStock   = "low-stock"
	StockOutOfStock = "out-of-stock"
)

// ValidStockStatus reports whether s is one of the defined stock statuses.
func ValidStockStatus(s string) bool {
	return s == StockInStock || s == StockLowStock || s == StockOutOfStock
}

// NeedsSupply reports whether a location with the given status should be
// offered a supply request.
func NeedsSupply(status string) bool {
	return status == StockLowStock || status == StockOutOfStock
}

// ItemLocation binds an item to an ambulance post and cabinet (optionally a
// drawer), carrying the stock status for that spot and the contact
// responsible for replenishing it.
type ItemLocation struct {
	ID              int64     `json:"id"`
	ItemID          int64     `json:"item_id"`
	PostID          string    `json:"post_id"`
	CabinetID       int64     `json:"cabinet_id"`
	DrawerID        *int64    `json:"drawer_id,omitempty"`
	ContactID       *int64    `json:"contact_id,omitempty"`
	StockStatus     string    `json:"stock_status"`
	StatusChangedAt time.Time `json:"status_changed_at"`
	CreatedAt       time.Time `json:"created_at"`

	// Joined for convenience in list responses.
	ItemName     string `json:"item_name,omitempty"`
	ItemCategory string `json:"item_category,omitempty"`
	PostName     string `json:"post_name,omitempty"`
	CabinetName  string `json:"cabinet_name,omitempty"`
	DrawerName   string `json:"drawer_name,omitempty"`
	ContactName  string `json:"contact_name,omitempty"`
	ContactEmail string `json:"contact_email,omitempty"`
}

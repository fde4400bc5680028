package model

import "time"

// Item is a catalog entry for a medical supply, independent of where it is stocked.
type Item struct {
	ID                int64      `json:"id"`
	Name              string     `json:"name"`
	Category          string     `json:"category"`
	Description       string     `json:"description,omitempty"`
	ExpiryDate        *time.Time `json:"expiry_date,omitempty"`
	AlertEmail        string     `json:"alert_email,omitempty"`
	PhotoPath         string     `json:"photo_path,omitempty"`
	Discontinued      bool       `json:"discontinued"`
	ReplacementItemID *int64     `json:"replacement_item_id,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// Category is a named, iconized tag for items. Items reference categories by
// name, not by id, so a category can be renamed or removed without touching
// the catalog.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

package model

import "time"

// MaxAbbreviationLen is the maximum length of a cabinet abbreviation.
const MaxAbbreviationLen = 3

// Cabinet is a named storage unit, reusable across posts.
type Cabinet struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Abbreviation string    `json:"abbreviation"`
	Color        string    `json:"color,omitempty"`
	Description  string    `json:"description,omitempty"`
	Location     string    `json:"location,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Drawer belongs to exactly one cabinet.
type Drawer struct {
	ID        int64  `json:"id"`
	CabinetID int64  `json:"cabinet_id"`
	Name      string `json:"name"`
}

// CabinetLocation records that a cabinet is physically present at a post,
// with an optional free-text sub-location ("left of the sink").
type CabinetLocation struct {
	ID          int64  `json:"id"`
	CabinetID   int64  `json:"cabinet_id"`
	PostID      string `json:"post_id"`
	SubLocation string `json:"sub_location,omitempty"`

	// Joined for convenience in list responses.
	CabinetName string `json:"cabinet_name,omitempty"`
	PostName    string `json:"post_name,omitempty"`
}

// CategoryCount is a per-category slice of a cabinet summary.
type CategoryCount struct {
	Category      string `json:"category"`
	TotalItems    int    `json:"total_items"`
	LowStockItems int    `json:"low_stock_items"`
}

// CabinetSummary aggregates the stock situation of one cabinet:
// how many item locations reference it and how many of those need attention.
type CabinetSummary struct {
	CabinetID     int64           `json:"cabinet_id"`
	Name          string          `json:"name"`
	Abbreviation  string          `json:"abbreviation"`
	Color         string          `json:"color,omitempty"`
	TotalItems    int             `json:"total_items"`
	LowStockItems int             `json:"low_stock_items"`
	Categories    []CategoryCount `json:"categories"`
}

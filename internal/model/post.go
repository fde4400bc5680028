package model

import (
	"regexp"
	"time"
)

// AmbulancePost is a physical site that stocks items. Posts use short
// human-chosen string ids ("post-a") rather than autoincrement ids.
type AmbulancePost struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// postIDPattern restricts post ids to lowercase slugs.
var postIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,63}$`)

// ValidPostID reports whether id is an acceptable ambulance post id.
func ValidPostID(id string) bool {
	return postIDPattern.MatchString(id)
}

// PostContact is a person at a post responsible for restocking, eligible to
// receive supply-request emails for item locations at that post.
type PostContact struct {
	ID         int64     `json:"id"`
	PostID     string    `json:"post_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Department string    `json:"department,omitempty"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
}

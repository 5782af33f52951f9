package domain

import "time"

// CartEntry is a user's reservation of a catalog book. At most one entry
// exists per (BookID, UserID) pair; repeated adds are rejected without
// mutation. Display fields are snapshotted at add time so the cart stays
// renderable even if the catalog record changes.
type CartEntry struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	BookID   string    `json:"book_id"`
	Title    string    `json:"title"`
	Author   string    `json:"author,omitempty"`
	CoverURL string    `json:"cover_url,omitempty"`
	AddedAt  time.Time `json:"added_at"`
}

// Identity is the locally registered user identity. Its presence gates cart
// mutations; authentication itself happens elsewhere.
type Identity struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Phone       string    `json:"phone,omitempty"`
	Token       string    `json:"token,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

package domain

import "time"

// OrderStatus is the upstream's numeric order lifecycle state.
type OrderStatus int

// Order lifecycle states, in progression order.
const (
	StatusPending   OrderStatus = 1 // reserved, waiting for pickup approval
	StatusReady     OrderStatus = 2 // approved, waiting at the desk
	StatusOnLoan    OrderStatus = 3 // handed out
	StatusReturned  OrderStatus = 4
	StatusCancelled OrderStatus = 5
)

// IsActive reports whether the order still needs user attention.
func (s OrderStatus) IsActive() bool {
	return s == StatusPending || s == StatusReady
}

// IsArchived reports whether the order has left the pickup flow.
func (s OrderStatus) IsArchived() bool {
	return s >= StatusOnLoan
}

// Label returns a short display name for the status.
func (s OrderStatus) Label() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusReady:
		return "ready"
	case StatusOnLoan:
		return "on loan"
	case StatusReturned:
		return "returned"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Order is a book reservation tracked by the upstream library system.
// Book is populated by joining against the catalog snapshot; it is nil when
// the referenced book no longer exists upstream.
type Order struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id"`
	BookID    string      `json:"book_id"`
	Status    OrderStatus `json:"status"`
	Book      *Book       `json:"book,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

package entity

import (
	"time"
)

const (
	DisputeStatusOpen       = "open"
	DisputeStatusInProgress = "in_progress"
	DisputeStatusResolved   = "resolved"
)

// Terminal resolution decisions an admin can apply.
const (
	DecisionRefund    = "refund"
	DecisionRedeliver = "redeliver"
	DecisionReject    = "reject"
)

type DisputeMessage struct {
	From    string    `json:"from"` // buyer, admin
	Name    string    `json:"name"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

type Dispute struct {
	ID          string `json:"id"`
	OrderID     string `json:"order_id,omitempty"`
	Status      string `json:"status"` // open, in_progress, resolved
	Reason      string `json:"reason"`
	Description string `json:"description,omitempty"`

	// Oldest-first reply thread. Append-only; closed once resolved.
	Messages []DisputeMessage `json:"messages,omitempty"`

	// Set when Status is resolved; resolution is a one-way transition.
	Decision   string `json:"decision,omitempty"` // refund, redeliver, reject
	AdminNotes string `json:"admin_notes,omitempty"`

	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}

// Resolved reports whether the dispute has reached its terminal state.
func (d *Dispute) Resolved() bool {
	return d.Status == DisputeStatusResolved
}

package supplyrepo

import "time"

// Set of supply request statuses. Transitions only move forward:
// requested -> ordered -> received (requested -> received is allowed when
// something is bought directly).
const (
	StatusRequested = "requested"
	StatusOrdered   = "ordered"
	StatusReceived  = "received"
)

// Set of urgency levels.
const (
	UrgencyLow    = "low"
	UrgencyNormal = "normal"
	UrgencyHigh   = "high"
)

// ValidUrgency reports whether u is a known urgency.
func ValidUrgency(u string) bool {
	return u == UrgencyLow || u == UrgencyNormal || u == UrgencyHigh
}

var transitions = map[string]map[string]bool{
	StatusRequested: {StatusOrdered: true, StatusReceived: true},
	StatusOrdered:   {StatusReceived: true},
}

// CanTransition reports whether a status change is allowed.
func CanTransition(from, to string) bool {
	return transitions[from][to]
}

// SupplyRequest represents a requested household supply item.
type SupplyRequest struct {
	SupplyID    string    `db:"supply_id" json:"supply_id"`
	Name        string    `db:"name" json:"name"`
	Quantity    int       `db:"quantity" json:"quantity"`
	Urgency     string    `db:"urgency" json:"urgency"`
	Status      string    `db:"status" json:"status"`
	RequestedBy string    `db:"requested_by" json:"requested_by"`
	Notes       *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// CreateSupplyRequest contains fields for filing a new supply request.
type CreateSupplyRequest struct {
	Name        string
	Quantity    int
	Urgency     string
	RequestedBy string
	Notes       *string
}

// UpdateSupplyRequest contains fields for updating an existing supply
// request. Status changes go through Transition, not Update.
type UpdateSupplyRequest struct {
	Name     *string
	Quantity *int
	Urgency  *string
	Notes    *string
}

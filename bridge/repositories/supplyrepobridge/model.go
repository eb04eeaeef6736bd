package supplyrepobridge

import (
	"fmt"

	"github.com/hearthkeep/hearthkeep/core/repositories/supplyrepo"
)

// CreateSupplyRequestBody carries fields for filing a supply request.
type CreateSupplyRequestBody struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Urgency  string  `json:"urgency"`
	Notes    *string `json:"notes"`
}

func (r CreateSupplyRequestBody) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("missing required field: name")
	}
	if r.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}
	if r.Urgency != "" && !supplyrepo.ValidUrgency(r.Urgency) {
		return fmt.Errorf("unknown urgency: %q", r.Urgency)
	}
	return nil
}

func (r CreateSupplyRequestBody) toRepo(requestedBy string) supplyrepo.CreateSupplyRequest {
	urgency := r.Urgency
	if urgency == "" {
		urgency = supplyrepo.UrgencyNormal
	}
	return supplyrepo.CreateSupplyRequest{
		Name:        r.Name,
		Quantity:    r.Quantity,
		Urgency:     urgency,
		RequestedBy: requestedBy,
		Notes:       r.Notes,
	}
}

// UpdateSupplyRequestBody carries optional fields for a partial update.
// Status changes go through the transition endpoint instead.
type UpdateSupplyRequestBody struct {
	Name     *string `json:"name"`
	Quantity *int    `json:"quantity"`
	Urgency  *string `json:"urgency"`
	Notes    *string `json:"notes"`
}

func (r UpdateSupplyRequestBody) Validate() error {
	if r.Name != nil && *r.Name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if r.Quantity != nil && *r.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}
	if r.Urgency != nil && !supplyrepo.ValidUrgency(*r.Urgency) {
		return fmt.Errorf("unknown urgency: %q", *r.Urgency)
	}
	return nil
}

func (r UpdateSupplyRequestBody) toRepo() supplyrepo.UpdateSupplyRequest {
	return supplyrepo.UpdateSupplyRequest{
		Name:     r.Name,
		Quantity: r.Quantity,
		Urgency:  r.Urgency,
		Notes:    r.Notes,
	}
}

// TransitionRequest names the status a supply request should move to.
type TransitionRequest struct {
	Status string `json:"status"`
}

func (r TransitionRequest) Validate() error {
	switch r.Status {
	case supplyrepo.StatusOrdered, supplyrepo.StatusReceived:
		return nil
	case supplyrepo.StatusRequested:
		return fmt.Errorf("cannot transition back to %q", r.Status)
	}
	return fmt.Errorf("unknown status: %q", r.Status)
}

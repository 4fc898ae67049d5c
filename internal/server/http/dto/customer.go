package dto

import "time"

// CustomerResponse describes a registered customer.
type CustomerResponse struct {
	ID               int64     `json:"id"`
	MembershipActive bool      `json:"membership_active"`
	CreatedAt        time.Time `json:"created_at"`
}

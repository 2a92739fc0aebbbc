package models

import "time"

const (
	PaymentStatusLate    = "late"
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// PropertyRef is the property projection joined onto payment rows.
type PropertyRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	City string `json:"city,omitempty"`
}

// TenantRef is the tenant projection joined onto payment rows.
type TenantRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Payment is a rent payment row with its joined references.
type Payment struct {
	ID         string       `json:"id"`
	Amount     float64      `json:"amount"`
	DueDate    time.Time    `json:"due_date"`
	Status     string       `json:"status"`
	PropertyID string       `json:"property_id"`
	TenantID   string       `json:"tenant_id,omitempty"`
	Property   *PropertyRef `json:"properties,omitempty"`
	Tenant     *TenantRef   `json:"tenants,omitempty"`
}

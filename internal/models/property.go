package models

import "time"

const (
	PropertyStatusOccupied = "occupied"
	PropertyStatusVacant   = "vacant"
)

// Property is a rental unit owned by a user.
type Property struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city"`
	Rent      float64   `json:"rent"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	Tenants   []Tenant  `json:"tenants,omitempty"`
}

// Tenant occupies a property. ExitDate, when set, is the scheduled end of
// the lease.
type Tenant struct {
	ID         string     `json:"id"`
	PropertyID string     `json:"property_id"`
	Name       string     `json:"name"`
	ExitDate   *time.Time `json:"exit_date,omitempty"`
}

// PropertyCreate is the input for creating a property. Status defaults to
// vacant when empty.
type PropertyCreate struct {
	Name    string  `json:"name" binding:"required"`
	Address string  `json:"address"`
	City    string  `json:"city" binding:"required"`
	Rent    float64 `json:"rent"`
	Status  string  `json:"status"`
	UserID  string  `json:"user_id" binding:"required"`
}

// PropertyUpdate is the input for updating a property. ID, owner and
// creation time are immutable and deliberately absent.
type PropertyUpdate struct {
	Name    *string  `json:"name"`
	Address *string  `json:"address"`
	City    *string  `json:"city"`
	Rent    *float64 `json:"rent"`
	Status  *string  `json:"status"`
}

package models

// AlertType identifies the business rule that produced an alert.
type AlertType string

const (
	AlertLatePayment      AlertType = "late_payment"
	AlertUpcomingLeaseEnd AlertType = "upcoming_lease_end"
	AlertUnpaidAfterDays  AlertType = "unpaid_after_days"
	AlertLowOccupancy     AlertType = "low_occupancy"
)

// Severity is the urgency classification used to order alerts.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Rank maps a severity to its sort weight (high > medium > low).
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// Alert is a derived, transient record: it is computed per request from the
// source tables and never stored. ID is unique within one computation batch
// (rule prefix + source record id).
type Alert struct {
	ID       string    `json:"id"`
	Type     AlertType `json:"type"`
	Severity Severity  `json:"severity"`
	Title    string    `json:"title"`
	Message  string    `json:"message"`

	PropertyID string `json:"property_id,omitempty"`
	TenantID   string `json:"tenant_id,omitempty"`
	PaymentID  string `json:"payment_id,omitempty"`

	// Date is the event date driving the alert (due date or lease exit
	// date), formatted as YYYY-MM-DD.
	Date string `json:"date,omitempty"`

	DaysLate      int     `json:"days_late,omitempty"`
	DaysOverdue   int     `json:"days_overdue,omitempty"`
	DaysUntilExit int     `json:"days_until_exit,omitempty"`
	OccupancyRate int     `json:"occupancy_rate,omitempty"`
	Amount        float64 `json:"amount,omitempty"`

	ActionURL string `json:"action_url"`
}

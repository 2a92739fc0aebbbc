package alerts

import (
	"fmt"
	"math"
	"time"

	"rental-alert-service/internal/models"
)

const (
	// A pending payment past its due date is not alert-worthy until this
	// many days have elapsed, to avoid noise on routine processing delay.
	overdueGraceDays = 5
	overdueHighDays  = 10

	// Lease-end alerts cover exits within this future window.
	leaseEndWindowDays = 30
	leaseEndHighDays   = 7

	lowOccupancyPercent = 50.0
	// Portfolios smaller than this never trigger the occupancy alert: a
	// single vacancy in 1-2 properties is not a trend.
	minPortfolioSize = 3
)

const dateLayout = "2006-01-02"

// daysBetween returns the number of whole days from one instant to another,
// rounding toward negative infinity.
func daysBetween(from, to time.Time) int {
	return int(math.Floor(to.Sub(from).Hours() / 24))
}

func propertyName(ref *models.PropertyRef) string {
	if ref == nil || ref.Name == "" {
		return "N/A"
	}
	return ref.Name
}

// latePaymentAlerts emits one high-severity alert per late payment.
// Lateness itself is the trigger; there is no threshold.
func latePaymentAlerts(now time.Time, payments []models.Payment) []models.Alert {
	alerts := make([]models.Alert, 0, len(payments))
	for _, p := range payments {
		daysLate := daysBetween(p.DueDate, now)
		alerts = append(alerts, models.Alert{
			ID:         "late-" + p.ID,
			Type:       models.AlertLatePayment,
			Severity:   models.SeverityHigh,
			Title:      fmt.Sprintf("Late payment - %s", propertyName(p.Property)),
			Message:    fmt.Sprintf("The rent of %.2f€ is %d day(s) late.", p.Amount, daysLate),
			PropertyID: p.PropertyID,
			PaymentID:  p.ID,
			Date:       p.DueDate.Format(dateLayout),
			DaysLate:   daysLate,
			Amount:     p.Amount,
			ActionURL:  "/payments",
		})
	}
	return alerts
}

// overduePaymentAlerts emits an alert for each pending payment overdue by at
// least the grace window; severity escalates to high at overdueHighDays.
func overduePaymentAlerts(now time.Time, payments []models.Payment) []models.Alert {
	var alerts []models.Alert
	for _, p := range payments {
		daysOverdue := daysBetween(p.DueDate, now)
		if daysOverdue < overdueGraceDays {
			continue
		}
		severity := models.SeverityMedium
		if daysOverdue >= overdueHighDays {
			severity = models.SeverityHigh
		}
		alerts = append(alerts, models.Alert{
			ID:          "unpaid-" + p.ID,
			Type:        models.AlertUnpaidAfterDays,
			Severity:    severity,
			Title:       fmt.Sprintf("Unpaid payment - %s", propertyName(p.Property)),
			Message:     fmt.Sprintf("The payment of %.2f€ has been unpaid for %d day(s).", p.Amount, daysOverdue),
			PropertyID:  p.PropertyID,
			PaymentID:   p.ID,
			Date:        p.DueDate.Format(dateLayout),
			DaysOverdue: daysOverdue,
			Amount:      p.Amount,
			ActionURL:   "/payments",
		})
	}
	return alerts
}

// leaseEndAlerts emits an alert for each occupied property whose tenant
// exits within the next leaseEndWindowDays (bounds inclusive, past exits
// ignored).
func leaseEndAlerts(now time.Time, properties []models.Property) []models.Alert {
	var alerts []models.Alert
	for _, pr := range properties {
		if len(pr.Tenants) == 0 {
			continue
		}
		// Only the first tenant counts: properties are assumed to have
		// at most one active tenant.
		tenant := pr.Tenants[0]
		if tenant.ExitDate == nil {
			continue
		}
		daysUntilExit := daysBetween(now, *tenant.ExitDate)
		if daysUntilExit < 0 || daysUntilExit > leaseEndWindowDays {
			continue
		}
		severity := models.SeverityMedium
		if daysUntilExit <= leaseEndHighDays {
			severity = models.SeverityHigh
		}
		alerts = append(alerts, models.Alert{
			ID:            "lease-end-" + pr.ID,
			Type:          models.AlertUpcomingLeaseEnd,
			Severity:      severity,
			Title:         fmt.Sprintf("Upcoming lease end - %s", pr.Name),
			Message:       fmt.Sprintf("The lease of %s ends in %d day(s).", tenant.Name, daysUntilExit),
			PropertyID:    pr.ID,
			TenantID:      tenant.ID,
			Date:          tenant.ExitDate.Format(dateLayout),
			DaysUntilExit: daysUntilExit,
			ActionURL:     "/tenants",
		})
	}
	return alerts
}

// occupancyAlerts emits at most one low-severity alert when the occupancy
// rate drops below lowOccupancyPercent, guarded by the minimum portfolio
// size.
func occupancyAlerts(statuses []string) []models.Alert {
	if len(statuses) < minPortfolioSize {
		return nil
	}
	occupiedCount := 0
	for _, s := range statuses {
		if s == models.PropertyStatusOccupied {
			occupiedCount++
		}
	}
	rate := float64(occupiedCount) / float64(len(statuses)) * 100
	if rate >= lowOccupancyPercent {
		return nil
	}
	rounded := int(math.Round(rate))
	return []models.Alert{{
		ID:            "low-occupancy",
		Type:          models.AlertLowOccupancy,
		Severity:      models.SeverityLow,
		Title:         "Low occupancy rate",
		Message:       fmt.Sprintf("Your occupancy rate is %d%% (%d/%d properties occupied).", rounded, occupiedCount, len(statuses)),
		OccupancyRate: rounded,
		ActionURL:     "/properties",
	}}
}

package alerts

import (
	"strings"
	"testing"
	"time"

	"rental-alert-service/internal/models"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return testNow.AddDate(0, 0, -n)
}

func daysFromNow(n int) time.Time {
	return testNow.AddDate(0, 0, n)
}

func TestDaysBetween(t *testing.T) {
	cases := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{"exact days", daysAgo(5), testNow, 5},
		{"partial day floors down", testNow.Add(-36 * time.Hour), testNow, 1},
		{"same instant", testNow, testNow, 0},
		{"less than a day ahead", testNow, testNow.Add(12 * time.Hour), 0},
		{"past floors negative", testNow.Add(12 * time.Hour), testNow, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := daysBetween(tc.from, tc.to); got != tc.want {
				t.Errorf("daysBetween = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestLatePaymentAlerts(t *testing.T) {
	payments := []models.Payment{
		{
			ID:         "p1",
			Amount:     450,
			DueDate:    daysAgo(12),
			Status:     models.PaymentStatusLate,
			PropertyID: "prop1",
			Property:   &models.PropertyRef{ID: "prop1", Name: "Rue Victor Hugo"},
		},
		{
			ID:         "p2",
			Amount:     820.50,
			DueDate:    daysAgo(3),
			Status:     models.PaymentStatusLate,
			PropertyID: "prop2",
		},
	}

	got := latePaymentAlerts(testNow, payments)
	if len(got) != 2 {
		t.Fatalf("expected one alert per late payment, got %d", len(got))
	}

	first := got[0]
	if first.ID != "late-p1" {
		t.Errorf("ID = %q, want late-p1", first.ID)
	}
	if first.Type != models.AlertLatePayment {
		t.Errorf("Type = %q", first.Type)
	}
	if first.Severity != models.SeverityHigh {
		t.Errorf("Severity = %q, want high: lateness alone is the trigger", first.Severity)
	}
	if first.DaysLate != 12 {
		t.Errorf("DaysLate = %d, want 12", first.DaysLate)
	}
	if first.Amount != 450 {
		t.Errorf("Amount = %v, want 450", first.Amount)
	}
	if first.Date != daysAgo(12).Format("2006-01-02") {
		t.Errorf("Date = %q", first.Date)
	}
	if !strings.Contains(first.Title, "Rue Victor Hugo") {
		t.Errorf("Title should carry the property name, got %q", first.Title)
	}
	if first.ActionURL != "/payments" {
		t.Errorf("ActionURL = %q", first.ActionURL)
	}

	second := got[1]
	if second.Severity != models.SeverityHigh {
		t.Errorf("every late payment is high severity, got %q", second.Severity)
	}
	if second.DaysLate != 3 {
		t.Errorf("DaysLate = %d, want 3", second.DaysLate)
	}
	if !strings.Contains(second.Title, "N/A") {
		t.Errorf("missing property ref should render as N/A, got %q", second.Title)
	}
}

func TestOverduePaymentAlerts(t *testing.T) {
	cases := []struct {
		name         string
		daysOverdue  int
		wantEmitted  bool
		wantSeverity models.Severity
	}{
		{"below grace window", 4, false, ""},
		{"at grace window", 5, true, models.SeverityMedium},
		{"just under high threshold", 9, true, models.SeverityMedium},
		{"at high threshold", 10, true, models.SeverityHigh},
		{"far past high threshold", 45, true, models.SeverityHigh},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payments := []models.Payment{{
				ID:         "p1",
				Amount:     600,
				DueDate:    daysAgo(tc.daysOverdue),
				Status:     models.PaymentStatusPending,
				PropertyID: "prop1",
			}}
			got := overduePaymentAlerts(testNow, payments)
			if !tc.wantEmitted {
				if len(got) != 0 {
					t.Fatalf("expected no alert inside the grace window, got %d", len(got))
				}
				return
			}
			if len(got) != 1 {
				t.Fatalf("expected one alert, got %d", len(got))
			}
			a := got[0]
			if a.ID != "unpaid-p1" {
				t.Errorf("ID = %q, want unpaid-p1", a.ID)
			}
			if a.Type != models.AlertUnpaidAfterDays {
				t.Errorf("Type = %q", a.Type)
			}
			if a.Severity != tc.wantSeverity {
				t.Errorf("Severity = %q, want %q", a.Severity, tc.wantSeverity)
			}
			if a.DaysOverdue != tc.daysOverdue {
				t.Errorf("DaysOverdue = %d, want %d", a.DaysOverdue, tc.daysOverdue)
			}
		})
	}
}

func TestLeaseEndAlerts(t *testing.T) {
	property := func(exit *time.Time) []models.Property {
		p := models.Property{
			ID:     "prop1",
			Name:   "Apartment 3B",
			Status: models.PropertyStatusOccupied,
		}
		p.Tenants = []models.Tenant{{ID: "t1", PropertyID: "prop1", Name: "Marie", ExitDate: exit}}
		return []models.Property{p}
	}
	ptr := func(t time.Time) *time.Time { return &t }

	cases := []struct {
		name         string
		exit         *time.Time
		wantEmitted  bool
		wantSeverity models.Severity
		wantDays     int
	}{
		{"window upper bound inclusive", ptr(daysFromNow(30)), true, models.SeverityMedium, 30},
		{"just outside window", ptr(daysFromNow(31)), false, "", 0},
		{"high threshold boundary", ptr(daysFromNow(7)), true, models.SeverityHigh, 7},
		{"just above high threshold", ptr(daysFromNow(8)), true, models.SeverityMedium, 8},
		{"exit today", ptr(testNow), true, models.SeverityHigh, 0},
		{"already exited", ptr(daysAgo(1)), false, "", 0},
		{"no exit date", nil, false, "", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := leaseEndAlerts(testNow, property(tc.exit))
			if !tc.wantEmitted {
				if len(got) != 0 {
					t.Fatalf("expected no alert, got %d", len(got))
				}
				return
			}
			if len(got) != 1 {
				t.Fatalf("expected one alert, got %d", len(got))
			}
			a := got[0]
			if a.ID != "lease-end-prop1" {
				t.Errorf("ID = %q, want lease-end-prop1", a.ID)
			}
			if a.Severity != tc.wantSeverity {
				t.Errorf("Severity = %q, want %q", a.Severity, tc.wantSeverity)
			}
			if a.DaysUntilExit != tc.wantDays {
				t.Errorf("DaysUntilExit = %d, want %d", a.DaysUntilExit, tc.wantDays)
			}
			if a.TenantID != "t1" {
				t.Errorf("TenantID = %q, want t1", a.TenantID)
			}
		})
	}

	t.Run("only first tenant considered", func(t *testing.T) {
		exit1 := daysFromNow(60)
		exit2 := daysFromNow(10)
		props := []models.Property{{
			ID:   "prop1",
			Name: "Apartment 3B",
			Tenants: []models.Tenant{
				{ID: "t1", Name: "Marie", ExitDate: &exit1},
				{ID: "t2", Name: "Paul", ExitDate: &exit2},
			},
		}}
		if got := leaseEndAlerts(testNow, props); len(got) != 0 {
			t.Fatalf("second tenant's exit should be ignored, got %d alerts", len(got))
		}
	})

	t.Run("no tenants", func(t *testing.T) {
		props := []models.Property{{ID: "prop1", Name: "Apartment 3B"}}
		if got := leaseEndAlerts(testNow, props); len(got) != 0 {
			t.Fatalf("expected no alert, got %d", len(got))
		}
	})
}

func TestOccupancyAlerts(t *testing.T) {
	statuses := func(occupied, vacant int) []string {
		var s []string
		for i := 0; i < occupied; i++ {
			s = append(s, models.PropertyStatusOccupied)
		}
		for i := 0; i < vacant; i++ {
			s = append(s, models.PropertyStatusVacant)
		}
		return s
	}

	t.Run("sample size guard", func(t *testing.T) {
		if got := occupancyAlerts(statuses(0, 2)); len(got) != 0 {
			t.Fatalf("two fully vacant properties must not alert, got %d", len(got))
		}
	})

	t.Run("one of three occupied", func(t *testing.T) {
		got := occupancyAlerts(statuses(1, 2))
		if len(got) != 1 {
			t.Fatalf("expected exactly one alert, got %d", len(got))
		}
		a := got[0]
		if a.ID != "low-occupancy" {
			t.Errorf("ID = %q", a.ID)
		}
		if a.Severity != models.SeverityLow {
			t.Errorf("Severity = %q, want low", a.Severity)
		}
		if a.OccupancyRate != 33 {
			t.Errorf("OccupancyRate = %d, want 33", a.OccupancyRate)
		}
		if !strings.Contains(a.Message, "33%") || !strings.Contains(a.Message, "1/3") {
			t.Errorf("Message = %q", a.Message)
		}
	})

	t.Run("exactly fifty percent", func(t *testing.T) {
		if got := occupancyAlerts(statuses(2, 2)); len(got) != 0 {
			t.Fatalf("50%% is not below the threshold, got %d alerts", len(got))
		}
	})

	t.Run("healthy portfolio", func(t *testing.T) {
		if got := occupancyAlerts(statuses(5, 1)); len(got) != 0 {
			t.Fatalf("expected no alert, got %d", len(got))
		}
	})

	t.Run("no properties", func(t *testing.T) {
		if got := occupancyAlerts(nil); len(got) != 0 {
			t.Fatalf("expected no alert, got %d", len(got))
		}
	})
}

package db

import (
	"testing"
	"time"
)

type fakeRows struct {
	rows [][]any
	i    int
	err  error
}

func (f *fakeRows) Next() bool {
	f.i++
	return f.i <= len(f.rows)
}

func (f *fakeRows) Scan(dest ...any) error {
	row := f.rows[f.i-1]
	for i, d := range dest {
		switch v := d.(type) {
		case *string:
			*v = row[i].(string)
		case *float64:
			*v = row[i].(float64)
		case *time.Time:
			*v = row[i].(time.Time)
		case **string:
			if row[i] == nil {
				*v = nil
			} else {
				s := row[i].(string)
				*v = &s
			}
		}
	}
	return nil
}

func (f *fakeRows) Err() error { return f.err }

func TestScanPayments(t *testing.T) {
	due := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	rows := &fakeRows{rows: [][]any{
		// id, amount, due_date, status, property_id, tenant_id, pr.id, pr.name, pr.city, t.id, t.name
		{"p1", 450.0, due, "late", "prop1", "t1", "prop1", "Rue Victor Hugo", "Lyon", "t1", "Marie"},
		{"p2", 820.5, due, "late", "prop2", nil, nil, nil, nil, nil, nil},
	}}

	got, err := scanPayments(rows)
	if err != nil {
		t.Fatalf("scanPayments: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}

	first := got[0]
	if first.ID != "p1" || first.Amount != 450 || !first.DueDate.Equal(due) {
		t.Errorf("unexpected payment: %+v", first)
	}
	if first.Property == nil || first.Property.Name != "Rue Victor Hugo" {
		t.Errorf("property ref not joined: %+v", first.Property)
	}
	if first.Tenant == nil || first.Tenant.Name != "Marie" {
		t.Errorf("tenant ref not joined: %+v", first.Tenant)
	}
	if first.TenantID != "t1" {
		t.Errorf("TenantID = %q, want t1", first.TenantID)
	}

	// Null joins must leave the refs absent rather than zero-valued.
	second := got[1]
	if second.Property != nil {
		t.Errorf("Property = %+v, want nil", second.Property)
	}
	if second.Tenant != nil {
		t.Errorf("Tenant = %+v, want nil", second.Tenant)
	}
	if second.TenantID != "" {
		t.Errorf("TenantID = %q, want empty", second.TenantID)
	}
}

func TestScanPaymentsEmpty(t *testing.T) {
	got, err := scanPayments(&fakeRows{})
	if err != nil {
		t.Fatalf("scanPayments: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
}

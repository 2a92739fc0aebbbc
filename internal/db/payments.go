package db

import (
	"context"
	"fmt"
	"time"

	"rental-alert-service/internal/models"
)

// maxPaymentRows caps the payment source queries so one user with a large
// backlog cannot stall an alert computation.
const maxPaymentRows = 50

const paymentSelect = `
	SELECT p.id, p.amount, p.due_date, p.status, p.property_id, p.tenant_id,
	       pr.id, pr.name, pr.city,
	       t.id, t.name
	FROM payments p
	LEFT JOIN properties pr ON pr.id = p.property_id
	LEFT JOIN tenants t ON t.id = p.tenant_id`

// LatePayments returns the user's late payments, earliest due date first.
func (d *DB) LatePayments(ctx context.Context, userID string) ([]models.Payment, error) {
	query := paymentSelect + `
	WHERE p.user_id = $1 AND p.status = $2
	ORDER BY p.due_date ASC
	LIMIT $3`

	rows, err := d.Pool.Query(ctx, query, userID, models.PaymentStatusLate, maxPaymentRows)
	if err != nil {
		return nil, fmt.Errorf("failed to query late payments: %w", err)
	}
	defer rows.Close()

	return scanPayments(rows)
}

// OverduePendingPayments returns the user's pending payments whose due date
// precedes asOf, earliest due date first.
func (d *DB) OverduePendingPayments(ctx context.Context, userID string, asOf time.Time) ([]models.Payment, error) {
	query := paymentSelect + `
	WHERE p.user_id = $1 AND p.status = $2 AND p.due_date < $3
	ORDER BY p.due_date ASC
	LIMIT $4`

	rows, err := d.Pool.Query(ctx, query, userID, models.PaymentStatusPending, asOf, maxPaymentRows)
	if err != nil {
		return nil, fmt.Errorf("failed to query overdue pending payments: %w", err)
	}
	defer rows.Close()

	return scanPayments(rows)
}

type paymentRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanPayments(rows paymentRows) ([]models.Payment, error) {
	var list []models.Payment
	for rows.Next() {
		var (
			p        models.Payment
			tenantID *string
			prID     *string
			prName   *string
			prCity   *string
			tID      *string
			tName    *string
		)
		err := rows.Scan(
			&p.ID, &p.Amount, &p.DueDate, &p.Status, &p.PropertyID, &tenantID,
			&prID, &prName, &prCity,
			&tID, &tName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		if tenantID != nil {
			p.TenantID = *tenantID
		}
		if prID != nil {
			p.Property = &models.PropertyRef{ID: *prID}
			if prName != nil {
				p.Property.Name = *prName
			}
			if prCity != nil {
				p.Property.City = *prCity
			}
		}
		if tID != nil {
			p.Tenant = &models.TenantRef{ID: *tID}
			if tName != nil {
				p.Tenant.Name = *tName
			}
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read payment rows: %w", err)
	}
	return list, nil
}

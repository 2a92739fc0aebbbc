package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"rental-alert-service/internal/models"
)

// maxOccupiedRows caps the lease-end source query.
const maxOccupiedRows = 100

// OccupiedProperties returns up to 100 occupied properties for the user with
// their tenants joined. Tenants are ordered by id so "first tenant" is stable
// across calls.
func (d *DB) OccupiedProperties(ctx context.Context, userID string) ([]models.Property, error) {
	query := `
	SELECT pr.id, pr.user_id, pr.name, COALESCE(pr.address, ''), pr.city, pr.rent, pr.status, pr.created_at,
	       t.id, t.name, t.exit_date
	FROM (
		SELECT * FROM properties
		WHERE user_id = $1 AND status = $2
		LIMIT $3
	) pr
	LEFT JOIN tenants t ON t.property_id = pr.id
	ORDER BY pr.id, t.id`

	rows, err := d.Pool.Query(ctx, query, userID, models.PropertyStatusOccupied, maxOccupiedRows)
	if err != nil {
		return nil, fmt.Errorf("failed to query occupied properties: %w", err)
	}
	defer rows.Close()

	var (
		list []models.Property
		idx  = map[string]int{}
	)
	for rows.Next() {
		var (
			p        models.Property
			tID      *string
			tName    *string
			exitDate *time.Time
		)
		err := rows.Scan(
			&p.ID, &p.UserID, &p.Name, &p.Address, &p.City, &p.Rent, &p.Status, &p.CreatedAt,
			&tID, &tName, &exitDate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan occupied property: %w", err)
		}
		i, seen := idx[p.ID]
		if !seen {
			list = append(list, p)
			i = len(list) - 1
			idx[p.ID] = i
		}
		if tID != nil {
			tenant := models.Tenant{ID: *tID, PropertyID: p.ID, ExitDate: exitDate}
			if tName != nil {
				tenant.Name = *tName
			}
			list[i].Tenants = append(list[i].Tenants, tenant)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read occupied property rows: %w", err)
	}
	return list, nil
}

// PropertyStatuses returns the status of every property the user owns.
// Deliberately unbounded: the occupancy rate needs the whole portfolio.
func (d *DB) PropertyStatuses(ctx context.Context, userID string) ([]string, error) {
	rows, err := d.Pool.Query(ctx, `SELECT status FROM properties WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query property statuses: %w", err)
	}
	defer rows.Close()

	var statuses []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan property status: %w", err)
		}
		statuses = append(statuses, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read property status rows: %w", err)
	}
	return statuses, nil
}

// ListProperties returns all properties for a user, newest first, with their
// tenants attached.
func (d *DB) ListProperties(ctx context.Context, userID string) ([]models.Property, error) {
	query := `
	SELECT id, user_id, name, COALESCE(address, ''), city, rent, status, created_at
	FROM properties
	WHERE user_id = $1
	ORDER BY created_at DESC`

	rows, err := d.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	defer rows.Close()

	var (
		list []models.Property
		ids  []string
		idx  = map[string]int{}
	)
	for rows.Next() {
		var p models.Property
		err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Address, &p.City, &p.Rent, &p.Status, &p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		list = append(list, p)
		ids = append(ids, p.ID)
		idx[p.ID] = len(list) - 1
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read property rows: %w", err)
	}
	if len(ids) == 0 {
		return list, nil
	}

	tenantRows, err := d.Pool.Query(ctx,
		`SELECT id, property_id, name, exit_date FROM tenants WHERE property_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query tenants: %w", err)
	}
	defer tenantRows.Close()

	for tenantRows.Next() {
		var t models.Tenant
		if err := tenantRows.Scan(&t.ID, &t.PropertyID, &t.Name, &t.ExitDate); err != nil {
			return nil, fmt.Errorf("failed to scan tenant: %w", err)
		}
		if i, ok := idx[t.PropertyID]; ok {
			list[i].Tenants = append(list[i].Tenants, t)
		}
	}
	if err := tenantRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tenant rows: %w", err)
	}
	return list, nil
}

// GetProperty returns one property scoped to its owner.
func (d *DB) GetProperty(ctx context.Context, id, userID string) (models.Property, error) {
	var p models.Property
	err := d.Pool.QueryRow(ctx,
		`SELECT id, user_id, name, COALESCE(address, ''), city, rent, status, created_at
		 FROM properties WHERE id = $1 AND user_id = $2`, id, userID).
		Scan(&p.ID, &p.UserID, &p.Name, &p.Address, &p.City, &p.Rent, &p.Status, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Property{}, ErrNotFound
	}
	if err != nil {
		return models.Property{}, fmt.Errorf("failed to get property: %w", err)
	}

	tenantRows, err := d.Pool.Query(ctx,
		`SELECT id, property_id, name, exit_date FROM tenants WHERE property_id = $1 ORDER BY id`, id)
	if err != nil {
		return models.Property{}, fmt.Errorf("failed to query tenants: %w", err)
	}
	defer tenantRows.Close()

	for tenantRows.Next() {
		var t models.Tenant
		if err := tenantRows.Scan(&t.ID, &t.PropertyID, &t.Name, &t.ExitDate); err != nil {
			return models.Property{}, fmt.Errorf("failed to scan tenant: %w", err)
		}
		p.Tenants = append(p.Tenants, t)
	}
	if err := tenantRows.Err(); err != nil {
		return models.Property{}, fmt.Errorf("failed to read tenant rows: %w", err)
	}
	return p, nil
}

// CreateProperty inserts a new property row.
func (d *DB) CreateProperty(ctx context.Context, p models.Property) error {
	_, err := d.Pool.Exec(ctx,
		`INSERT INTO properties (id, user_id, name, address, city, rent, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.UserID, p.Name, p.Address, p.City, p.Rent, p.Status, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert property: %w", err)
	}
	return nil
}

// UpdateProperty applies the non-nil fields of upd to a property scoped to
// its owner and returns the updated row. Owner, id and creation time are
// immutable.
func (d *DB) UpdateProperty(ctx context.Context, id, userID string, upd models.PropertyUpdate) (models.Property, error) {
	var p models.Property
	err := d.Pool.QueryRow(ctx,
		`UPDATE properties SET
			name = COALESCE($3, name),
			address = COALESCE($4, address),
			city = COALESCE($5, city),
			rent = COALESCE($6, rent),
			status = COALESCE($7, status)
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, name, COALESCE(address, ''), city, rent, status, created_at`,
		id, userID, upd.Name, upd.Address, upd.City, upd.Rent, upd.Status).
		Scan(&p.ID, &p.UserID, &p.Name, &p.Address, &p.City, &p.Rent, &p.Status, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Property{}, ErrNotFound
	}
	if err != nil {
		return models.Property{}, fmt.Errorf("failed to update property: %w", err)
	}
	return p, nil
}

// DeleteProperty removes a property scoped to its owner.
func (d *DB) DeleteProperty(ctx context.Context, id, userID string) error {
	tag, err := d.Pool.Exec(ctx,
		`DELETE FROM properties WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

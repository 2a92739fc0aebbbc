package alerts

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"rental-alert-service/internal/logging"
	"rental-alert-service/internal/metrics"
	"rental-alert-service/internal/models"
)

// RecordStore is the read-only data source the engine fans out to. The four
// queries are independent of each other.
type RecordStore interface {
	LatePayments(ctx context.Context, userID string) ([]models.Payment, error)
	OverduePendingPayments(ctx context.Context, userID string, asOf time.Time) ([]models.Payment, error)
	OccupiedProperties(ctx context.Context, userID string) ([]models.Property, error)
	PropertyStatuses(ctx context.Context, userID string) ([]string, error)
}

var (
	// ErrMissingUserID means the caller supplied no identity; nothing was
	// queried.
	ErrMissingUserID = errors.New("user id is required")
	// ErrTimeout means the per-invocation deadline elapsed; partial
	// results are discarded.
	ErrTimeout = errors.New("alert computation timed out")
	// ErrUnavailable means every source query failed. Distinct from an
	// empty successful batch: callers must not present it as "no alerts".
	ErrUnavailable = errors.New("alert sources unavailable")
)

// DefaultTimeout bounds one full computation, all four queries included.
const DefaultTimeout = 15 * time.Second

// Engine derives alerts for a user from four independent source queries.
// It keeps no state between invocations.
type Engine struct {
	store   RecordStore
	logger  *logging.Logger
	timeout time.Duration

	// now is swapped out in tests.
	now func() time.Time
}

func NewEngine(store RecordStore, logger *logging.Logger, timeout time.Duration) *Engine {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Engine{store: store, logger: logger, timeout: timeout, now: time.Now}
}

// ComputeAlerts fans out the four source queries, applies the derivation
// rules to whichever succeeded, and returns the merged batch sorted by
// severity (high > medium > low, ties keeping emission order). A single
// failed query only silences its rule; all four failing is ErrUnavailable.
func (e *Engine) ComputeAlerts(ctx context.Context, userID string) ([]models.Alert, error) {
	if userID == "" {
		metrics.AlertComputeFailures.WithLabelValues("invalid").Inc()
		return nil, ErrMissingUserID
	}

	start := time.Now()
	now := e.now()

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	var (
		late     []models.Payment
		overdue  []models.Payment
		occupied []models.Property
		statuses []string
		errs     [4]error
	)

	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		late, errs[0] = e.store.LatePayments(ctx, userID)
	}()
	go func() {
		defer wg.Done()
		overdue, errs[1] = e.store.OverduePendingPayments(ctx, userID, now)
	}()
	go func() {
		defer wg.Done()
		occupied, errs[2] = e.store.OccupiedProperties(ctx, userID)
	}()
	go func() {
		defer wg.Done()
		statuses, errs[3] = e.store.PropertyStatuses(ctx, userID)
	}()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		// In-flight queries are abandoned; their eventual results are
		// dropped rather than served as a partial batch.
		metrics.AlertComputeFailures.WithLabelValues("timeout").Inc()
		return nil, fmt.Errorf("%w after %s", ErrTimeout, e.timeout)
	}

	sources := [4]string{"late_payments", "overdue_pending", "occupied_properties", "property_statuses"}
	failed := 0
	for i, err := range errs {
		if err != nil {
			failed++
			metrics.AlertQueriesTotal.WithLabelValues(sources[i], "failed").Inc()
			e.logger.Warnf("Alert source %s failed for user %s: %v", sources[i], userID, err)
			continue
		}
		metrics.AlertQueriesTotal.WithLabelValues(sources[i], "success").Inc()
	}
	if failed == len(errs) {
		metrics.AlertComputeFailures.WithLabelValues("unavailable").Inc()
		return nil, ErrUnavailable
	}

	// Concatenation order fixes the relative order of equal severities
	// under the stable sort below.
	alerts := []models.Alert{}
	if errs[0] == nil {
		alerts = append(alerts, latePaymentAlerts(now, late)...)
	}
	if errs[1] == nil {
		alerts = append(alerts, overduePaymentAlerts(now, overdue)...)
	}
	if errs[2] == nil {
		alerts = append(alerts, leaseEndAlerts(now, occupied)...)
	}
	if errs[3] == nil {
		alerts = append(alerts, occupancyAlerts(statuses)...)
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Severity.Rank() > alerts[j].Severity.Rank()
	})

	for _, a := range alerts {
		metrics.AlertsEmittedTotal.WithLabelValues(string(a.Type)).Inc()
	}
	metrics.AlertComputeDuration.Observe(time.Since(start).Seconds())
	e.logger.Debugf("Computed %d alerts for user %s (%d/4 sources ok)", len(alerts), userID, len(errs)-failed)
	return alerts, nil
}

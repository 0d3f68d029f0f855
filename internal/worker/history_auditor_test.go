package worker

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/polkiloo/marketpanel/internal/domain/model"
	"github.com/polkiloo/marketpanel/internal/metrics"
	testhelpers "github.com/polkiloo/marketpanel/internal/test"
)

func TestNewHistoryAuditorDefaults(t *testing.T) {
	a := NewHistoryAuditor(testhelpers.NewCourierBackend(), 0, 0, 0, nil, testhelpers.DiscardLogger())
	if a.batchSize != 1 {
		t.Fatalf("expected batch size default to 1, got %d", a.batchSize)
	}
	if a.workers != 1 {
		t.Fatalf("expected workers default to 1, got %d", a.workers)
	}
	if a.interval != time.Second {
		t.Fatalf("expected interval to be raised to 1s, got %v", a.interval)
	}
}

func TestAuditDetectsRewrittenHistory(t *testing.T) {
	m := metrics.New()
	a := NewHistoryAuditor(testhelpers.NewCourierBackend(), time.Minute, 1, 1, m, testhelpers.DiscardLogger())

	d := testhelpers.NewDelivery("o1", "p1", model.CourierStatusInTransit)
	a.audit(d)

	grown := testhelpers.NewDelivery("o1", "p1", model.CourierStatusOutForDelivery)
	a.audit(grown)
	if v := testutil.ToFloat64(m.HistoryViolations); v != 0 {
		t.Fatalf("appending must not count as a violation, got %v", v)
	}

	rewritten := testhelpers.NewDelivery("o1", "p1", model.CourierStatusOutForDelivery)
	rewritten.Item.StatusHistory[1].UpdatedBy.UserID = "someone-else"
	a.audit(rewritten)
	if v := testutil.ToFloat64(m.HistoryViolations); v != 1 {
		t.Fatalf("expected 1 violation, got %v", v)
	}

	truncated := testhelpers.NewDelivery("o1", "p1", model.CourierStatusPending)
	a.audit(truncated)
	if v := testutil.ToFloat64(m.HistoryViolations); v != 2 {
		t.Fatalf("expected 2 violations, got %v", v)
	}
}

func TestAuditDetectsOutOfOrderHistory(t *testing.T) {
	m := metrics.New()
	a := NewHistoryAuditor(testhelpers.NewCourierBackend(), time.Minute, 1, 1, m, testhelpers.DiscardLogger())

	d := testhelpers.NewDelivery("o1", "p1", model.CourierStatusInTransit)
	d.Item.StatusHistory[2].UpdatedAt = d.Item.StatusHistory[0].UpdatedAt.Add(-time.Hour)
	a.audit(d)

	if v := testutil.ToFloat64(m.HistoryViolations); v != 1 {
		t.Fatalf("expected 1 violation, got %v", v)
	}
}

func waitTracked(t *testing.T, a *HistoryAuditor, want int) {
	t.Helper()
	deadline := time.After(time.Second)
	for a.tracked() < want {
		select {
		case <-deadline:
			t.Fatalf("timeout waiting for %d audited deliveries, have %d", want, a.tracked())
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestHistoryAuditorProcessesBatch(t *testing.T) {
	m := metrics.New()
	backend := testhelpers.NewCourierBackend(
		testhelpers.NewDelivery("o1", "p1", model.CourierStatusPending),
		testhelpers.NewDelivery("o2", "p2", model.CourierStatusInTransit),
		testhelpers.NewDelivery("o3", "p3", model.CourierStatusDelivered),
	)
	a := NewHistoryAuditor(backend, time.Hour, 2, 2, m, testhelpers.DiscardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := a.Start(ctx); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if err := a.Start(ctx); err != nil {
		t.Fatalf("second Start returned error: %v", err)
	}

	a.runOnce(ctx)
	waitTracked(t, a, 2)
	a.Stop()
	a.Stop()

	if v := testutil.ToFloat64(m.AuditRuns); v != 1 {
		t.Fatalf("expected 1 audit run, got %v", v)
	}
	if v := testutil.ToFloat64(m.HistoryViolations); v != 0 {
		t.Fatalf("expected no violations, got %v", v)
	}
}

func TestHistoryAuditorSkipsWithoutCourierSession(t *testing.T) {
	m := metrics.New()
	backend := testhelpers.NewCourierBackend(testhelpers.NewDelivery("o1", "p1", model.CourierStatusPending))
	backend.NoSession = true
	a := NewHistoryAuditor(backend, time.Hour, 5, 1, m, testhelpers.DiscardLogger())

	a.runOnce(context.Background())

	if v := testutil.ToFloat64(m.AuditRuns); v != 0 {
		t.Fatalf("expected skipped run, got %v", v)
	}
	if a.tracked() != 0 {
		t.Fatalf("expected nothing audited")
	}
}

func TestHistoryAuditorCatchesExternalRewrite(t *testing.T) {
	m := metrics.New()
	backend := testhelpers.NewCourierBackend(testhelpers.NewDelivery("o1", "p1", model.CourierStatusOutForDelivery))
	a := NewHistoryAuditor(backend, time.Hour, 5, 1, m, testhelpers.DiscardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := a.Start(ctx); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	defer a.Stop()

	a.runOnce(ctx)
	waitTracked(t, a, 1)

	backend.Replace(testhelpers.NewDelivery("o1", "p1", model.CourierStatusPickedUp))
	a.runOnce(ctx)

	deadline := time.After(time.Second)
	for testutil.ToFloat64(m.HistoryViolations) < 1 {
		select {
		case <-deadline:
			t.Fatal("timeout waiting for violation")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

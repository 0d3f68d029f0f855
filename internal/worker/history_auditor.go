package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/polkiloo/marketpanel/internal/domain/delivery"
	domainErrors "github.com/polkiloo/marketpanel/internal/domain/errors"
	"github.com/polkiloo/marketpanel/internal/domain/model"
	"github.com/polkiloo/marketpanel/internal/metrics"
)

// DeliverySource exposes the deliveries of the signed-in courier.
// It returns domainErrors.ErrNoSession when no courier is signed in.
type DeliverySource interface {
	AuditBatch(ctx context.Context, limit int) ([]model.Delivery, error)
}

// HistoryAuditor periodically re-reads courier deliveries and checks that
// every item's status history only ever grows.
type HistoryAuditor struct {
	source    DeliverySource
	interval  time.Duration
	batchSize int
	workers   int
	metrics   *metrics.Metrics
	logger    *slog.Logger

	jobs chan model.Delivery
	wg   sync.WaitGroup

	mu     sync.Mutex
	cron   *cron.Cron
	cancel context.CancelFunc

	snapMu    sync.Mutex
	snapshots map[string][]model.StatusEntry
}

// NewHistoryAuditor constructs the auditor worker pool.
func NewHistoryAuditor(source DeliverySource, interval time.Duration, batchSize, workers int, m *metrics.Metrics, logger *slog.Logger) *HistoryAuditor {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	if interval < time.Second {
		interval = time.Second
	}
	return &HistoryAuditor{
		source:    source,
		interval:  interval,
		batchSize: batchSize,
		workers:   workers,
		metrics:   m,
		logger:    logger.With("component", "history_auditor"),
		jobs:      make(chan model.Delivery, batchSize*workers),
		snapshots: make(map[string][]model.StatusEntry),
	}
}

// Start launches the workers and schedules audit runs. Calling Start on a
// running auditor is a no-op.
func (a *HistoryAuditor) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancel != nil {
		return nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	scheduler := cron.New(
		cron.WithLogger(cronLogger{a.logger}),
		cron.WithChain(cron.SkipIfStillRunning(cronLogger{a.logger})),
	)
	if _, err := scheduler.AddFunc("@every "+a.interval.String(), func() { a.runOnce(runCtx) }); err != nil {
		cancel()
		return fmt.Errorf("schedule history audit: %w", err)
	}

	for i := 0; i < a.workers; i++ {
		a.wg.Add(1)
		go a.worker(runCtx)
	}

	a.cron = scheduler
	a.cancel = cancel
	scheduler.Start()
	a.logger.Info("history auditor started", slog.Duration("interval", a.interval), slog.Int("workers", a.workers))
	return nil
}

// Stop cancels pending work and waits for running audits to finish.
func (a *HistoryAuditor) Stop() {
	a.mu.Lock()
	scheduler, cancel := a.cron, a.cancel
	a.cron, a.cancel = nil, nil
	a.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-scheduler.Stop().Done()
	a.wg.Wait()
	a.logger.Info("history auditor stopped")
}

func (a *HistoryAuditor) runOnce(ctx context.Context) {
	batch, err := a.source.AuditBatch(ctx, a.batchSize)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNoSession) {
			a.logger.Debug("history audit skipped: no courier session")
			return
		}
		a.logger.Warn("history audit fetch failed", slog.String("error", err.Error()))
		return
	}

	for _, d := range batch {
		select {
		case <-ctx.Done():
			return
		case a.jobs <- d:
		}
	}
	a.metrics.ObserveAuditRun()
}

func (a *HistoryAuditor) worker(ctx context.Context) {
	defer a.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case d := <-a.jobs:
			a.audit(d)
		}
	}
}

// audit compares d against the last snapshot of the same item and keeps d as the new snapshot.
func (a *HistoryAuditor) audit(d model.Delivery) {
	key := d.ID + "/" + d.Item.ProductID.ID
	next := d.Item.StatusHistory

	a.snapMu.Lock()
	prev, seen := a.snapshots[key]
	a.snapshots[key] = append([]model.StatusEntry(nil), next...)
	a.snapMu.Unlock()

	err := delivery.ValidateHistory(next)
	if err == nil && seen {
		err = delivery.CheckAppendOnly(prev, next)
	}
	if err != nil {
		a.metrics.ObserveHistoryViolation()
		a.logger.Error("status history violation",
			slog.String("order_id", d.ID),
			slog.String("product_id", d.Item.ProductID.ID),
			slog.String("error", err.Error()),
		)
	}
}

func (a *HistoryAuditor) tracked() int {
	a.snapMu.Lock()
	defer a.snapMu.Unlock()
	return len(a.snapshots)
}

// cronLogger routes scheduler messages to slog.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, slog.String("error", err.Error()))...)
}

package test

import (
	"context"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/polkiloo/marketpanel/internal/apiclient"
	domainErrors "github.com/polkiloo/marketpanel/internal/domain/errors"
	"github.com/polkiloo/marketpanel/internal/domain/model"
)

// CourierBackend imitates the marketplace courier endpoints in memory.
// Status updates append one history entry unless a misbehaviour flag is set.
type CourierBackend struct {
	mu         sync.Mutex
	deliveries map[string]*model.Delivery
	now        time.Time

	// SkipAppend makes updates change the status without a history entry.
	SkipAppend bool
	// DropHistory makes updates truncate the history to the new entry.
	DropHistory bool
	// GetErr is returned by every Get call when set.
	GetErr error
	// UpdateErr is returned by UpdateStatus and ReportIssue when set.
	UpdateErr error
	// NoSession makes AuditBatch report a missing courier session.
	NoSession bool

	Updates []model.StatusUpdate
	Reports []model.IssueReport
}

func NewCourierBackend(deliveries ...model.Delivery) *CourierBackend {
	b := &CourierBackend{
		deliveries: make(map[string]*model.Delivery),
		now:        time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC),
	}
	for i := range deliveries {
		d := deliveries[i]
		b.deliveries[d.ID] = &d
	}
	return b
}

// NewDelivery builds a delivery whose item has walked up to status.
func NewDelivery(id, productID string, status model.CourierStatus) model.Delivery {
	start := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	path := []model.CourierStatus{
		model.CourierStatusPending,
		model.CourierStatusPickedUp,
		model.CourierStatusInTransit,
		model.CourierStatusOutForDelivery,
	}

	var history []model.StatusEntry
	for i, s := range path {
		history = append(history, model.StatusEntry{
			Status:    s,
			UpdatedBy: model.Actor{Role: model.RoleCourier, UserID: "courier-1"},
			UpdatedAt: start.Add(time.Duration(i) * time.Hour),
		})
		if s == status {
			break
		}
	}
	if status == model.CourierStatusDelivered || status == model.CourierStatusFailed {
		history = append(history, model.StatusEntry{
			Status:    status,
			UpdatedBy: model.Actor{Role: model.RoleCourier, UserID: "courier-1"},
			UpdatedAt: start.Add(5 * time.Hour),
		})
	}

	return model.Delivery{
		ID:      id,
		BuyerID: model.Ref{ID: "buyer-1"},
		Item: model.OrderItem{
			ProductID:     model.Ref{ID: productID},
			Quantity:      1,
			CourierStatus: status,
			StatusHistory: history,
		},
		CreatedAt: start,
	}
}

func notFound() error {
	return &apiclient.Error{Kind: apiclient.KindNotFound, Message: apiclient.MsgNotFound, Code: http.StatusNotFound}
}

func (b *CourierBackend) snapshot(d *model.Delivery) *model.Delivery {
	cp := *d
	cp.Item.StatusHistory = append([]model.StatusEntry(nil), d.Item.StatusHistory...)
	return &cp
}

func (b *CourierBackend) sorted() []*model.Delivery {
	all := make([]*model.Delivery, 0, len(b.deliveries))
	for _, d := range b.deliveries {
		all = append(all, d)
	}
	slices.SortFunc(all, func(x, y *model.Delivery) int { return strings.Compare(x.ID, y.ID) })
	return all
}

// AuditBatch returns up to limit deliveries ordered by id.
func (b *CourierBackend) AuditBatch(_ context.Context, limit int) ([]model.Delivery, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.NoSession {
		return nil, domainErrors.ErrNoSession
	}
	var out []model.Delivery
	for _, d := range b.sorted() {
		if len(out) == limit {
			break
		}
		out = append(out, *b.snapshot(d))
	}
	return out, nil
}

func (b *CourierBackend) Assigned(_ context.Context, page model.PageParams, filter model.OrderFilter) (model.Page[model.Delivery], error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	page = page.Normalize()
	var all []model.Delivery
	for _, d := range b.sorted() {
		if filter.Status == "issueReported" && !d.Item.IssueReported {
			continue
		}
		all = append(all, *b.snapshot(d))
	}

	start := (page.Page - 1) * page.Limit
	if start > len(all) {
		start = len(all)
	}
	end := min(start+page.Limit, len(all))
	return model.Page[model.Delivery]{
		Data:   all[start:end],
		Cursor: model.Cursor{Page: page.Page, Limit: page.Limit, Total: len(all)},
	}, nil
}

func (b *CourierBackend) Get(_ context.Context, id string) (*model.Delivery, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.GetErr != nil {
		return nil, b.GetErr
	}
	d, ok := b.deliveries[id]
	if !ok {
		return nil, notFound()
	}
	return b.snapshot(d), nil
}

func (b *CourierBackend) UpdateStatus(_ context.Context, id string, in model.StatusUpdate) (*model.Delivery, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.UpdateErr != nil {
		return nil, b.UpdateErr
	}
	d, ok := b.deliveries[id]
	if !ok {
		return nil, notFound()
	}

	b.Updates = append(b.Updates, in)
	b.now = b.now.Add(time.Minute)
	entry := model.StatusEntry{
		Status:    in.Status,
		UpdatedBy: model.Actor{Role: model.RoleCourier, UserID: "courier-1"},
		UpdatedAt: b.now,
	}

	d.Item.CourierStatus = in.Status
	switch {
	case b.DropHistory:
		d.Item.StatusHistory = []model.StatusEntry{entry}
	case !b.SkipAppend:
		d.Item.StatusHistory = append(d.Item.StatusHistory, entry)
	}
	return b.snapshot(d), nil
}

func (b *CourierBackend) ReportIssue(_ context.Context, id string, in model.IssueReport) (*model.Delivery, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.UpdateErr != nil {
		return nil, b.UpdateErr
	}
	d, ok := b.deliveries[id]
	if !ok {
		return nil, notFound()
	}

	b.Reports = append(b.Reports, in)
	d.Item.IssueReported = true
	d.Item.IssueReason = in.Reason
	return b.snapshot(d), nil
}

// Replace swaps the stored delivery, e.g. to simulate an external rewrite.
func (b *CourierBackend) Replace(d model.Delivery) {
	b.mu.Lock()
	b.deliveries[d.ID] = &d
	b.mu.Unlock()
}

package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/polkiloo/marketpanel/internal/apiclient"
	"github.com/polkiloo/marketpanel/internal/domain/delivery"
	domainErrors "github.com/polkiloo/marketpanel/internal/domain/errors"
	"github.com/polkiloo/marketpanel/internal/domain/model"
	"github.com/polkiloo/marketpanel/internal/metrics"
	"github.com/polkiloo/marketpanel/internal/session"
)

// Delivery list filters accepted by the courier endpoint.
const (
	FilterShipped       = "shipped"
	FilterDelivered     = "delivered"
	FilterIssueReported = "issueReported"
)

const (
	msgItemNotFound  = "Order item not found."
	msgUnknownFilter = "Unknown delivery filter."
)

// DeliveryGateway is the marketplace courier namespace.
type DeliveryGateway interface {
	Assigned(ctx context.Context, page model.PageParams, filter model.OrderFilter) (model.Page[model.Delivery], error)
	Get(ctx context.Context, id string) (*model.Delivery, error)
	UpdateStatus(ctx context.Context, id string, in model.StatusUpdate) (*model.Delivery, error)
	ReportIssue(ctx context.Context, id string, in model.IssueReport) (*model.Delivery, error)
}

// DeliveryUseCase drives courier deliveries through their lifecycle.
type DeliveryUseCase struct {
	gateway DeliveryGateway
	session *session.Store
	views   *Views
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewDeliveryUseCase(gateway DeliveryGateway, store *session.Store, views *Views, m *metrics.Metrics, logger *slog.Logger) *DeliveryUseCase {
	return &DeliveryUseCase{
		gateway: gateway,
		session: store,
		views:   views,
		metrics: m,
		logger:  logger.With("component", "deliveries"),
	}
}

// List returns the courier's deliveries, optionally filtered.
func (u *DeliveryUseCase) List(ctx context.Context, page model.PageParams, filter model.OrderFilter) (model.Page[model.Delivery], error) {
	if _, err := u.courier(); err != nil {
		return model.Page[model.Delivery]{}, err
	}
	switch filter.Status {
	case "", FilterShipped, FilterDelivered, FilterIssueReported:
	default:
		return model.Page[model.Delivery]{}, apiclient.Reject(apiclient.KindValidationFailure, msgUnknownFilter, nil)
	}

	return listView(ctx, u.views, ViewDeliveries, page, func(ctx context.Context, p model.PageParams) (model.Page[model.Delivery], error) {
		return u.gateway.Assigned(ctx, p, filter)
	})
}

func (u *DeliveryUseCase) Get(ctx context.Context, orderID string) (*model.Delivery, error) {
	if _, err := u.courier(); err != nil {
		return nil, err
	}
	return u.gateway.Get(ctx, orderID)
}

// UpdateStatus moves the item to status. The move is validated locally and the
// server stays authoritative. The returned delivery is the refetched server state.
func (u *DeliveryUseCase) UpdateStatus(ctx context.Context, orderID, productID string, status model.CourierStatus, reason string) (*model.Delivery, error) {
	if _, err := u.courier(); err != nil {
		return nil, err
	}

	current, err := u.load(ctx, orderID, productID)
	if err != nil {
		return nil, err
	}
	if err := delivery.CanTransition(current.Item.CourierStatus, status); err != nil {
		return nil, err
	}

	update := model.StatusUpdate{
		Status:    status,
		ProductID: current.Item.ProductID.ID,
		Reason:    strings.TrimSpace(reason),
	}
	updated, err := u.gateway.UpdateStatus(ctx, orderID, update)
	if err != nil {
		return nil, err
	}

	fresh, ok := u.refetch(ctx, orderID)
	if !ok {
		return updated, nil
	}
	if err := delivery.VerifyAppend(current.Item.StatusHistory, fresh.Item.StatusHistory, status); err != nil {
		u.reportViolation(orderID, err)
	}
	return fresh, nil
}

// ReportIssue flags a problem with an item that is out for delivery.
func (u *DeliveryUseCase) ReportIssue(ctx context.Context, orderID, productID, reason string) (*model.Delivery, error) {
	if _, err := u.courier(); err != nil {
		return nil, err
	}
	reason = strings.TrimSpace(reason)

	current, err := u.load(ctx, orderID, productID)
	if err != nil {
		return nil, err
	}
	if err := delivery.CanReportIssue(current.Item.CourierStatus, reason); err != nil {
		return nil, err
	}

	reported, err := u.gateway.ReportIssue(ctx, orderID, model.IssueReport{ProductID: current.Item.ProductID.ID, Reason: reason})
	if err != nil {
		return nil, err
	}

	fresh, ok := u.refetch(ctx, orderID)
	if !ok {
		return reported, nil
	}
	if err := delivery.CheckAppendOnly(current.Item.StatusHistory, fresh.Item.StatusHistory); err != nil {
		u.reportViolation(orderID, err)
	}
	return fresh, nil
}

// AuditBatch returns the first limit deliveries of the signed-in courier
// without moving the panel cursor.
func (u *DeliveryUseCase) AuditBatch(ctx context.Context, limit int) ([]model.Delivery, error) {
	profile, ok := u.session.Profile()
	if !ok || !u.session.Authenticated() || profile.Role != model.RoleCourier {
		return nil, domainErrors.ErrNoSession
	}
	page, err := u.gateway.Assigned(ctx, model.PageParams{Page: 1, Limit: limit}.Normalize(), model.OrderFilter{})
	if err != nil {
		return nil, err
	}
	return page.Data, nil
}

func (u *DeliveryUseCase) courier() (model.Profile, error) {
	profile, err := requireRole(u.session, model.RoleAdmin, model.RoleSeller, model.RoleCourier)
	if err != nil {
		return profile, err
	}
	if err := delivery.Authorize(profile.Role); err != nil {
		return profile, err
	}
	return profile, nil
}

func (u *DeliveryUseCase) load(ctx context.Context, orderID, productID string) (*model.Delivery, error) {
	current, err := u.gateway.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if productID != "" && current.Item.ProductID.ID != productID {
		return nil, apiclient.Reject(apiclient.KindNotFound, msgItemNotFound, nil)
	}
	return current, nil
}

// refetch reads the delivery after an accepted mutation. On failure the
// caller falls back to the mutation response and skips history checks.
func (u *DeliveryUseCase) refetch(ctx context.Context, orderID string) (*model.Delivery, bool) {
	fresh, err := u.gateway.Get(ctx, orderID)
	if err != nil {
		u.logger.Warn("refetch after update failed", slog.String("order_id", orderID), slog.String("error", err.Error()))
		return nil, false
	}
	return fresh, true
}

func (u *DeliveryUseCase) reportViolation(orderID string, err error) {
	u.metrics.ObserveHistoryViolation()
	u.logger.Error("status history violation", slog.String("order_id", orderID), slog.String("error", err.Error()))
}

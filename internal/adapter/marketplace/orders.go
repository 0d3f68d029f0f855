package marketplace

import (
	"context"
	"net/http"
	"net/url"

	"github.com/polkiloo/marketpanel/internal/apiclient"
	"github.com/polkiloo/marketpanel/internal/domain/model"
)

type OrdersAPI struct {
	api *apiclient.Client
}

func (o *OrdersAPI) List(ctx context.Context, page model.PageParams, filter model.OrderFilter) (model.Page[model.Order], error) {
	return apiclient.List[model.Order](ctx, o.api, "/admin/orders", page, url.Values{"status": {filter.Status}})
}

func (o *OrdersAPI) Get(ctx context.Context, id string) (*model.Order, error) {
	var out model.Order
	if err := o.api.Do(ctx, http.MethodGet, "/admin/orders/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (o *OrdersAPI) SellerList(ctx context.Context, page model.PageParams) (model.Page[model.Order], error) {
	return apiclient.List[model.Order](ctx, o.api, "/seller/orders", page, nil)
}

func (o *OrdersAPI) UpdateSellerStatus(ctx context.Context, id string, in model.SellerStatusUpdate) (*model.Order, error) {
	var out model.Order
	if err := o.api.Do(ctx, http.MethodPatch, "/seller/orders/"+url.PathEscape(id)+"/status", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeliveriesAPI covers the courier endpoints.
type DeliveriesAPI struct {
	api *apiclient.Client
}

// Assigned lists deliveries assigned to the signed-in courier.
func (d *DeliveriesAPI) Assigned(ctx context.Context, page model.PageParams, filter model.OrderFilter) (model.Page[model.Delivery], error) {
	return apiclient.List[model.Delivery](ctx, d.api, "/courier/orders", page, url.Values{"status": {filter.Status}})
}

func (d *DeliveriesAPI) Get(ctx context.Context, id string) (*model.Delivery, error) {
	var out model.Delivery
	if err := d.api.Do(ctx, http.MethodGet, "/courier/orders/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStatus submits a courier status change. The server appends the history entry.
func (d *DeliveriesAPI) UpdateStatus(ctx context.Context, id string, in model.StatusUpdate) (*model.Delivery, error) {
	var out model.Delivery
	if err := d.api.Do(ctx, http.MethodPatch, "/courier/orders/"+url.PathEscape(id)+"/status", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (d *DeliveriesAPI) ReportIssue(ctx context.Context, id string, in model.IssueReport) (*model.Delivery, error) {
	var out model.Delivery
	if err := d.api.Do(ctx, http.MethodPost, "/courier/orders/"+url.PathEscape(id)+"/report-issue", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

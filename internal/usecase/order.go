package usecase

import (
	"context"
	"strings"

	"github.com/polkiloo/marketpanel/internal/adapter/marketplace"
	"github.com/polkiloo/marketpanel/internal/apiclient"
	"github.com/polkiloo/marketpanel/internal/domain/model"
	"github.com/polkiloo/marketpanel/internal/session"
)

const msgProductRequired = "A product id is required."

// OrderUseCase serves the admin and seller order panels.
type OrderUseCase struct {
	client  *marketplace.Client
	session *session.Store
	views   *Views
}

func NewOrderUseCase(client *marketplace.Client, store *session.Store, views *Views) *OrderUseCase {
	return &OrderUseCase{client: client, session: store, views: views}
}

func (u *OrderUseCase) List(ctx context.Context, page model.PageParams, filter model.OrderFilter) (model.Page[model.Order], error) {
	if _, err := requireRole(u.session, model.RoleAdmin); err != nil {
		return model.Page[model.Order]{}, err
	}
	return listView(ctx, u.views, ViewOrders, page, func(ctx context.Context, p model.PageParams) (model.Page[model.Order], error) {
		return u.client.Orders.List(ctx, p, filter)
	})
}

func (u *OrderUseCase) Get(ctx context.Context, id string) (*model.Order, error) {
	if _, err := requireRole(u.session, model.RoleAdmin); err != nil {
		return nil, err
	}
	if err := requireID(id); err != nil {
		return nil, err
	}
	return u.client.Orders.Get(ctx, id)
}

func (u *OrderUseCase) SellerOrders(ctx context.Context, page model.PageParams) (model.Page[model.Order], error) {
	if _, err := requireRole(u.session, model.RoleSeller); err != nil {
		return model.Page[model.Order]{}, err
	}
	return listView(ctx, u.views, ViewSellerOrders, page, u.client.Orders.SellerList)
}

func (u *OrderUseCase) UpdateSellerStatus(ctx context.Context, id string, in model.SellerStatusUpdate) (*model.Order, error) {
	if _, err := requireRole(u.session, model.RoleSeller); err != nil {
		return nil, err
	}
	if err := requireID(id); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.ProductID) == "" {
		return nil, apiclient.Reject(apiclient.KindValidationFailure, msgProductRequired, nil)
	}
	if strings.TrimSpace(in.Status) == "" {
		return nil, apiclient.Reject(apiclient.KindValidationFailure, msgStatusRequired, nil)
	}
	return u.client.Orders.UpdateSellerStatus(ctx, id, in)
}

package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/polkiloo/marketpanel/internal/adapter/marketplace"
	"github.com/polkiloo/marketpanel/internal/domain/model"
	"github.com/polkiloo/marketpanel/internal/session"
)

// SummaryUseCase computes the analytics panel from collection totals.
type SummaryUseCase struct {
	client  *marketplace.Client
	session *session.Store
}

func NewSummaryUseCase(client *marketplace.Client, store *session.Store) *SummaryUseCase {
	return &SummaryUseCase{client: client, session: store}
}

// Summary fetches a one-item page of each collection concurrently and reads its total.
// The first failure cancels the remaining calls.
func (u *SummaryUseCase) Summary(ctx context.Context) (model.Summary, error) {
	if _, err := requireRole(u.session, model.RoleAdmin); err != nil {
		return model.Summary{}, err
	}

	var s model.Summary
	probe := model.PageParams{Page: 1, Limit: 1}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return total(ctx, &s.Admins, probe, u.client.Admins.List) })
	g.Go(func() error { return total(ctx, &s.Sellers, probe, u.client.Sellers.List) })
	g.Go(func() error { return total(ctx, &s.PendingSellers, probe, u.client.Sellers.Pending) })
	g.Go(func() error { return total(ctx, &s.Couriers, probe, u.client.Couriers.List) })
	g.Go(func() error { return total(ctx, &s.Buyers, probe, u.client.Buyers.List) })
	g.Go(func() error {
		return total(ctx, &s.Products, probe, func(ctx context.Context, p model.PageParams) (model.Page[model.Product], error) {
			return u.client.Products.List(ctx, p, model.ProductFilter{})
		})
	})
	g.Go(func() error {
		return total(ctx, &s.Orders, probe, func(ctx context.Context, p model.PageParams) (model.Page[model.Order], error) {
			return u.client.Orders.List(ctx, p, model.OrderFilter{})
		})
	})

	if err := g.Wait(); err != nil {
		return model.Summary{}, err
	}
	return s, nil
}

func total[T any](ctx context.Context, dst *int, page model.PageParams, fetch func(context.Context, model.PageParams) (model.Page[T], error)) error {
	result, err := fetch(ctx, page)
	if err != nil {
		return err
	}
	*dst = result.Cursor.Total
	return nil
}

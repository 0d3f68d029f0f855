package usecase

import (
	"context"
	"strings"

	"github.com/polkiloo/marketpanel/internal/adapter/marketplace"
	"github.com/polkiloo/marketpanel/internal/apiclient"
	"github.com/polkiloo/marketpanel/internal/domain/model"
	"github.com/polkiloo/marketpanel/internal/session"
)

const msgCategoryNameRequired = "Category name is required."

// CatalogUseCase manages categories and product listings.
type CatalogUseCase struct {
	client  *marketplace.Client
	session *session.Store
	views   *Views
}

func NewCatalogUseCase(client *marketplace.Client, store *session.Store, views *Views) *CatalogUseCase {
	return &CatalogUseCase{client: client, session: store, views: views}
}

func (u *CatalogUseCase) ListCategories(ctx context.Context, page model.PageParams) (model.Page[model.Category], error) {
	if _, err := requireRole(u.session, model.RoleAdmin); err != nil {
		return model.Page[model.Category]{}, err
	}
	return listView(ctx, u.views, ViewCategories, page, u.client.Categories.List)
}

func (u *CatalogUseCase) CreateCategory(ctx context.Context, in model.CategoryInput) (*model.Category, error) {
	if _, err := requireRole(u.session, model.RoleAdmin); err != nil {
		return nil, err
	}
	if in.Name = strings.TrimSpace(in.Name); in.Name == "" {
		return nil, apiclient.Reject(apiclient.KindValidationFailure, msgCategoryNameRequired, nil)
	}
	return u.client.Categories.Create(ctx, in)
}

func (u *CatalogUseCase) UpdateCategory(ctx context.Context, id string, in model.CategoryInput) (*model.Category, error) {
	if _, err := requireRole(u.session, model.RoleAdmin); err != nil {
		return nil, err
	}
	if err := requireID(id); err != nil {
		return nil, err
	}
	if in.Name = strings.TrimSpace(in.Name); in.Name == "" {
		return nil, apiclient.Reject(apiclient.KindValidationFailure, msgCategoryNameRequired, nil)
	}
	return u.client.Categories.Update(ctx, id, in)
}

func (u *CatalogUseCase) DeleteCategory(ctx context.Context, id string) error {
	if _, err := requireRole(u.session, model.RoleAdmin); err != nil {
		return err
	}
	if err := requireID(id); err != nil {
		return err
	}
	return u.client.Categories.Delete(ctx, id)
}

func (u *CatalogUseCase) ListProducts(ctx context.Context, page model.PageParams, filter model.ProductFilter) (model.Page[model.Product], error) {
	if _, err := requireRole(u.session, model.RoleAdmin); err != nil {
		return model.Page[model.Product]{}, err
	}
	return listView(ctx, u.views, ViewProducts, page, func(ctx context.Context, p model.PageParams) (model.Page[model.Product], error) {
		return u.client.Products.List(ctx, p, filter)
	})
}

func (u *CatalogUseCase) SetProductStatus(ctx context.Context, id, status string) (*model.Product, error) {
	if _, err := requireRole(u.session, model.RoleAdmin); err != nil {
		return nil, err
	}
	if err := requireID(id); err != nil {
		return nil, err
	}
	if strings.TrimSpace(status) == "" {
		return nil, apiclient.Reject(apiclient.KindValidationFailure, msgStatusRequired, nil)
	}
	return u.client.Products.SetStatus(ctx, id, status)
}

func (u *CatalogUseCase) DeleteProduct(ctx context.Context, id string) error {
	if _, err := requireRole(u.session, model.RoleAdmin); err != nil {
		return err
	}
	if err := requireID(id); err != nil {
		return err
	}
	return u.client.Products.Delete(ctx, id)
}

// SellerProducts lists the signed-in seller's own products.
func (u *CatalogUseCase) SellerProducts(ctx context.Context, page model.PageParams) (model.Page[model.Product], error) {
	if _, err := requireRole(u.session, model.RoleSeller); err != nil {
		return model.Page[model.Product]{}, err
	}
	return listView(ctx, u.views, ViewSellerProducts, page, u.client.Products.SellerList)
}

package marketplace

import (
	"context"
	"net/http"
	"net/url"

	"github.com/polkiloo/marketpanel/internal/apiclient"
	"github.com/polkiloo/marketpanel/internal/domain/model"
)

type CategoriesAPI struct {
	api *apiclient.Client
}

func (c *CategoriesAPI) List(ctx context.Context, page model.PageParams) (model.Page[model.Category], error) {
	return apiclient.List[model.Category](ctx, c.api, "/admin/categories", page, nil)
}

func (c *CategoriesAPI) Create(ctx context.Context, in model.CategoryInput) (*model.Category, error) {
	var out model.Category
	if err := c.api.Do(ctx, http.MethodPost, "/admin/categories", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *CategoriesAPI) Update(ctx context.Context, id string, in model.CategoryInput) (*model.Category, error) {
	var out model.Category
	if err := c.api.Do(ctx, http.MethodPut, "/admin/categories/"+url.PathEscape(id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *CategoriesAPI) Delete(ctx context.Context, id string) error {
	return c.api.Do(ctx, http.MethodDelete, "/admin/categories/"+url.PathEscape(id), nil, nil, nil)
}

type ProductsAPI struct {
	api *apiclient.Client
}

func (p *ProductsAPI) List(ctx context.Context, page model.PageParams, filter model.ProductFilter) (model.Page[model.Product], error) {
	extra := url.Values{
		"status":   {filter.Status},
		"category": {filter.CategoryID},
		"search":   {filter.Search},
	}
	return apiclient.List[model.Product](ctx, p.api, "/admin/products", page, extra)
}

func (p *ProductsAPI) SetStatus(ctx context.Context, id, status string) (*model.Product, error) {
	var out model.Product
	body := map[string]string{"status": status}
	if err := p.api.Do(ctx, http.MethodPatch, "/admin/products/"+url.PathEscape(id)+"/status", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *ProductsAPI) Delete(ctx context.Context, id string) error {
	return p.api.Do(ctx, http.MethodDelete, "/admin/products/"+url.PathEscape(id), nil, nil, nil)
}

// SellerList lists the products of the signed-in seller.
func (p *ProductsAPI) SellerList(ctx context.Context, page model.PageParams) (model.Page[model.Product], error) {
	return apiclient.List[model.Product](ctx, p.api, "/seller/products", page, nil)
}

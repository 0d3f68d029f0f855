package marketplace

import (
	"context"
	"net/http"
	"net/url"

	"github.com/polkiloo/marketpanel/internal/apiclient"
	"github.com/polkiloo/marketpanel/internal/domain/model"
)

type AuthAPI struct {
	api *apiclient.Client
}

func (a *AuthAPI) Login(ctx context.Context, creds model.Credentials) (*model.LoginResult, error) {
	var out model.LoginResult
	if err := a.api.Do(ctx, http.MethodPost, "/auth/login", nil, creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuthAPI) Profile(ctx context.Context) (*model.Profile, error) {
	var out model.Profile
	if err := a.api.Do(ctx, http.MethodGet, "/auth/profile", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type AdminsAPI struct {
	api *apiclient.Client
}

func (a *AdminsAPI) List(ctx context.Context, page model.PageParams) (model.Page[model.Admin], error) {
	return apiclient.List[model.Admin](ctx, a.api, "/admin/admins", page, nil)
}

func (a *AdminsAPI) Create(ctx context.Context, in model.AdminInput) (*model.Admin, error) {
	var out model.Admin
	if err := a.api.Do(ctx, http.MethodPost, "/admin/admins", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AdminsAPI) Delete(ctx context.Context, id string) error {
	return a.api.Do(ctx, http.MethodDelete, "/admin/admins/"+url.PathEscape(id), nil, nil, nil)
}

type SellersAPI struct {
	api *apiclient.Client
}

func (s *SellersAPI) List(ctx context.Context, page model.PageParams) (model.Page[model.Seller], error) {
	return apiclient.List[model.Seller](ctx, s.api, "/admin/sellers", page, nil)
}

// Pending lists sellers waiting for approval.
func (s *SellersAPI) Pending(ctx context.Context, page model.PageParams) (model.Page[model.Seller], error) {
	return apiclient.List[model.Seller](ctx, s.api, "/admin/sellers/pending", page, nil)
}

func (s *SellersAPI) Approve(ctx context.Context, id string) (*model.Seller, error) {
	var out model.Seller
	if err := s.api.Do(ctx, http.MethodPatch, "/admin/sellers/"+url.PathEscape(id)+"/approve", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *SellersAPI) Delete(ctx context.Context, id string) error {
	return s.api.Do(ctx, http.MethodDelete, "/admin/sellers/"+url.PathEscape(id), nil, nil, nil)
}

type CouriersAPI struct {
	api *apiclient.Client
}

func (c *CouriersAPI) List(ctx context.Context, page model.PageParams) (model.Page[model.Courier], error) {
	return apiclient.List[model.Courier](ctx, c.api, "/admin/couriers", page, nil)
}

func (c *CouriersAPI) Create(ctx context.Context, in model.CourierInput) (*model.Courier, error) {
	var out model.Courier
	if err := c.api.Do(ctx, http.MethodPost, "/admin/couriers", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *CouriersAPI) Delete(ctx context.Context, id string) error {
	return c.api.Do(ctx, http.MethodDelete, "/admin/couriers/"+url.PathEscape(id), nil, nil, nil)
}

type BuyersAPI struct {
	api *apiclient.Client
}

func (b *BuyersAPI) List(ctx context.Context, page model.PageParams) (model.Page[model.Buyer], error) {
	return apiclient.List[model.Buyer](ctx, b.api, "/admin/buyers", page, nil)
}

func (b *BuyersAPI) SetStatus(ctx context.Context, id, status string) (*model.Buyer, error) {
	var out model.Buyer
	body := map[string]string{"status": status}
	if err := b.api.Do(ctx, http.MethodPatch, "/admin/buyers/"+url.PathEscape(id)+"/status", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BuyersAPI) Delete(ctx context.Context, id string) error {
	return b.api.Do(ctx, http.MethodDelete, "/admin/buyers/"+url.PathEscape(id), nil, nil, nil)
}

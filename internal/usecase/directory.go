package usecase

import (
	"context"
	"strings"

	"github.com/polkiloo/marketpanel/internal/adapter/marketplace"
	"github.com/polkiloo/marketpanel/internal/apiclient"
	"github.com/polkiloo/marketpanel/internal/domain/model"
	"github.com/polkiloo/marketpanel/internal/session"
)

const (
	msgAccountFieldsRequired = "Name, email and password are required."
	msgIDRequired            = "An id is required."
	msgStatusRequired        = "A status is required."
)

// DirectoryUseCase manages admin, seller, courier and buyer accounts.
type DirectoryUseCase struct {
	client  *marketplace.Client
	session *session.Store
	views   *Views
}

func NewDirectoryUseCase(client *marketplace.Client, store *session.Store, views *Views) *DirectoryUseCase {
	return &DirectoryUseCase{client: client, session: store, views: views}
}

func (u *DirectoryUseCase) admin() error {
	_, err := requireRole(u.session, model.RoleAdmin)
	return err
}

func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return apiclient.Reject(apiclient.KindValidationFailure, msgIDRequired, nil)
	}
	return nil
}

func (u *DirectoryUseCase) ListAdmins(ctx context.Context, page model.PageParams) (model.Page[model.Admin], error) {
	if err := u.admin(); err != nil {
		return model.Page[model.Admin]{}, err
	}
	return listView(ctx, u.views, ViewAdmins, page, u.client.Admins.List)
}

func (u *DirectoryUseCase) CreateAdmin(ctx context.Context, in model.AdminInput) (*model.Admin, error) {
	if err := u.admin(); err != nil {
		return nil, err
	}
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if in.Email == "" || in.Name == "" || in.Password == "" {
		return nil, apiclient.Reject(apiclient.KindValidationFailure, msgAccountFieldsRequired, nil)
	}
	return u.client.Admins.Create(ctx, in)
}

func (u *DirectoryUseCase) DeleteAdmin(ctx context.Context, id string) error {
	if err := u.admin(); err != nil {
		return err
	}
	if err := requireID(id); err != nil {
		return err
	}
	return u.client.Admins.Delete(ctx, id)
}

func (u *DirectoryUseCase) ListSellers(ctx context.Context, page model.PageParams) (model.Page[model.Seller], error) {
	if err := u.admin(); err != nil {
		return model.Page[model.Seller]{}, err
	}
	return listView(ctx, u.views, ViewSellers, page, u.client.Sellers.List)
}

func (u *DirectoryUseCase) PendingSellers(ctx context.Context, page model.PageParams) (model.Page[model.Seller], error) {
	if err := u.admin(); err != nil {
		return model.Page[model.Seller]{}, err
	}
	return listView(ctx, u.views, ViewPendingSellers, page, u.client.Sellers.Pending)
}

func (u *DirectoryUseCase) ApproveSeller(ctx context.Context, id string) (*model.Seller, error) {
	if err := u.admin(); err != nil {
		return nil, err
	}
	if err := requireID(id); err != nil {
		return nil, err
	}
	return u.client.Sellers.Approve(ctx, id)
}

func (u *DirectoryUseCase) DeleteSeller(ctx context.Context, id string) error {
	if err := u.admin(); err != nil {
		return err
	}
	if err := requireID(id); err != nil {
		return err
	}
	return u.client.Sellers.Delete(ctx, id)
}

func (u *DirectoryUseCase) ListCouriers(ctx context.Context, page model.PageParams) (model.Page[model.Courier], error) {
	if err := u.admin(); err != nil {
		return model.Page[model.Courier]{}, err
	}
	return listView(ctx, u.views, ViewCouriers, page, u.client.Couriers.List)
}

func (u *DirectoryUseCase) CreateCourier(ctx context.Context, in model.CourierInput) (*model.Courier, error) {
	if err := u.admin(); err != nil {
		return nil, err
	}
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if in.Email == "" || in.Name == "" || in.Password == "" {
		return nil, apiclient.Reject(apiclient.KindValidationFailure, msgAccountFieldsRequired, nil)
	}
	return u.client.Couriers.Create(ctx, in)
}

func (u *DirectoryUseCase) DeleteCourier(ctx context.Context, id string) error {
	if err := u.admin(); err != nil {
		return err
	}
	if err := requireID(id); err != nil {
		return err
	}
	return u.client.Couriers.Delete(ctx, id)
}

func (u *DirectoryUseCase) ListBuyers(ctx context.Context, page model.PageParams) (model.Page[model.Buyer], error) {
	if err := u.admin(); err != nil {
		return model.Page[model.Buyer]{}, err
	}
	return listView(ctx, u.views, ViewBuyers, page, u.client.Buyers.List)
}

func (u *DirectoryUseCase) SetBuyerStatus(ctx context.Context, id, status string) (*model.Buyer, error) {
	if err := u.admin(); err != nil {
		return nil, err
	}
	if err := requireID(id); err != nil {
		return nil, err
	}
	if strings.TrimSpace(status) == "" {
		return nil, apiclient.Reject(apiclient.KindValidationFailure, msgStatusRequired, nil)
	}
	return u.client.Buyers.SetStatus(ctx, id, status)
}

func (u *DirectoryUseCase) DeleteBuyer(ctx context.Context, id string) error {
	if err := u.admin(); err != nil {
		return err
	}
	if err := requireID(id); err != nil {
		return err
	}
	return u.client.Buyers.Delete(ctx, id)
}

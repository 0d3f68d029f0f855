package handlers

import (
	"context"

	"github.com/polkiloo/marketpanel/internal/domain/model"
)

// SessionFacade opens, inspects and closes the dashboard session.
type SessionFacade interface {
	Login(ctx context.Context, creds model.Credentials) (model.Profile, error)
	Logout(ctx context.Context) error
	CurrentProfile() (model.Profile, error)
	RefreshProfile(ctx context.Context) (model.Profile, error)
}

// DirectoryFacade manages marketplace accounts.
type DirectoryFacade interface {
	Admins(ctx context.Context, page model.PageParams) (model.Page[model.Admin], error)
	CreateAdmin(ctx context.Context, in model.AdminInput) (*model.Admin, error)
	DeleteAdmin(ctx context.Context, id string) error
	Sellers(ctx context.Context, page model.PageParams) (model.Page[model.Seller], error)
	PendingSellers(ctx context.Context, page model.PageParams) (model.Page[model.Seller], error)
	ApproveSeller(ctx context.Context, id string) (*model.Seller, error)
	DeleteSeller(ctx context.Context, id string) error
	Couriers(ctx context.Context, page model.PageParams) (model.Page[model.Courier], error)
	CreateCourier(ctx context.Context, in model.CourierInput) (*model.Courier, error)
	DeleteCourier(ctx context.Context, id string) error
	Buyers(ctx context.Context, page model.PageParams) (model.Page[model.Buyer], error)
	SetBuyerStatus(ctx context.Context, id, status string) (*model.Buyer, error)
	DeleteBuyer(ctx context.Context, id string) error
}

// CatalogFacade manages categories and products.
type CatalogFacade interface {
	Categories(ctx context.Context, page model.PageParams) (model.Page[model.Category], error)
	CreateCategory(ctx context.Context, in model.CategoryInput) (*model.Category, error)
	UpdateCategory(ctx context.Context, id string, in model.CategoryInput) (*model.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	Products(ctx context.Context, page model.PageParams, filter model.ProductFilter) (model.Page[model.Product], error)
	SetProductStatus(ctx context.Context, id, status string) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	SellerProducts(ctx context.Context, page model.PageParams) (model.Page[model.Product], error)
}

// OrderFacade serves admin and seller orders.
type OrderFacade interface {
	Orders(ctx context.Context, page model.PageParams, filter model.OrderFilter) (model.Page[model.Order], error)
	Order(ctx context.Context, id string) (*model.Order, error)
	SellerOrders(ctx context.Context, page model.PageParams) (model.Page[model.Order], error)
	UpdateSellerOrderStatus(ctx context.Context, id string, in model.SellerStatusUpdate) (*model.Order, error)
}

// DeliveryFacade drives courier deliveries.
type DeliveryFacade interface {
	Deliveries(ctx context.Context, page model.PageParams, filter model.OrderFilter) (model.Page[model.Delivery], error)
	Delivery(ctx context.Context, id string) (*model.Delivery, error)
	UpdateDeliveryStatus(ctx context.Context, id string, in model.StatusUpdate) (*model.Delivery, error)
	ReportDeliveryIssue(ctx context.Context, id string, in model.IssueReport) (*model.Delivery, error)
}

// DashboardFacade serves the analytics summary and pagination state.
type DashboardFacade interface {
	Summary(ctx context.Context) (model.Summary, error)
	ViewCursor(view string) (model.Cursor, bool)
}

// PanelFacade aggregates the full set of operations used across handlers.
type PanelFacade interface {
	SessionFacade
	DirectoryFacade
	CatalogFacade
	OrderFacade
	DeliveryFacade
	DashboardFacade
}

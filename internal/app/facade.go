package app

import (
	"context"

	"github.com/polkiloo/marketpanel/internal/domain/model"
	"github.com/polkiloo/marketpanel/internal/usecase"
)

// PanelFacade exposes every dashboard operation behind one type for the HTTP layer and the auditor.
type PanelFacade struct {
	auth       *usecase.AuthUseCase
	directory  *usecase.DirectoryUseCase
	catalog    *usecase.CatalogUseCase
	orders     *usecase.OrderUseCase
	deliveries *usecase.DeliveryUseCase
	summary    *usecase.SummaryUseCase
	views      *usecase.Views
}

func NewPanelFacade(
	auth *usecase.AuthUseCase,
	directory *usecase.DirectoryUseCase,
	catalog *usecase.CatalogUseCase,
	orders *usecase.OrderUseCase,
	deliveries *usecase.DeliveryUseCase,
	summary *usecase.SummaryUseCase,
	views *usecase.Views,
) *PanelFacade {
	return &PanelFacade{
		auth:       auth,
		directory:  directory,
		catalog:    catalog,
		orders:     orders,
		deliveries: deliveries,
		summary:    summary,
		views:      views,
	}
}

func (f *PanelFacade) Login(ctx context.Context, creds model.Credentials) (model.Profile, error) {
	return f.auth.Login(ctx, creds)
}

func (f *PanelFacade) Logout(ctx context.Context) error {
	return f.auth.Logout(ctx)
}

func (f *PanelFacade) CurrentProfile() (model.Profile, error) {
	return f.auth.Current()
}

func (f *PanelFacade) RefreshProfile(ctx context.Context) (model.Profile, error) {
	return f.auth.Refresh(ctx)
}

func (f *PanelFacade) Summary(ctx context.Context) (model.Summary, error) {
	return f.summary.Summary(ctx)
}

// ViewCursor returns the last cursor recorded for a paginated panel.
func (f *PanelFacade) ViewCursor(view string) (model.Cursor, bool) {
	return f.views.Cursor(view)
}

func (f *PanelFacade) Admins(ctx context.Context, page model.PageParams) (model.Page[model.Admin], error) {
	return f.directory.ListAdmins(ctx, page)
}

func (f *PanelFacade) CreateAdmin(ctx context.Context, in model.AdminInput) (*model.Admin, error) {
	return f.directory.CreateAdmin(ctx, in)
}

func (f *PanelFacade) DeleteAdmin(ctx context.Context, id string) error {
	return f.directory.DeleteAdmin(ctx, id)
}

func (f *PanelFacade) Sellers(ctx context.Context, page model.PageParams) (model.Page[model.Seller], error) {
	return f.directory.ListSellers(ctx, page)
}

func (f *PanelFacade) PendingSellers(ctx context.Context, page model.PageParams) (model.Page[model.Seller], error) {
	return f.directory.PendingSellers(ctx, page)
}

func (f *PanelFacade) ApproveSeller(ctx context.Context, id string) (*model.Seller, error) {
	return f.directory.ApproveSeller(ctx, id)
}

func (f *PanelFacade) DeleteSeller(ctx context.Context, id string) error {
	return f.directory.DeleteSeller(ctx, id)
}

func (f *PanelFacade) Couriers(ctx context.Context, page model.PageParams) (model.Page[model.Courier], error) {
	return f.directory.ListCouriers(ctx, page)
}

func (f *PanelFacade) CreateCourier(ctx context.Context, in model.CourierInput) (*model.Courier, error) {
	return f.directory.CreateCourier(ctx, in)
}

func (f *PanelFacade) DeleteCourier(ctx context.Context, id string) error {
	return f.directory.DeleteCourier(ctx, id)
}

func (f *PanelFacade) Buyers(ctx context.Context, page model.PageParams) (model.Page[model.Buyer], error) {
	return f.directory.ListBuyers(ctx, page)
}

func (f *PanelFacade) SetBuyerStatus(ctx context.Context, id, status string) (*model.Buyer, error) {
	return f.directory.SetBuyerStatus(ctx, id, status)
}

func (f *PanelFacade) DeleteBuyer(ctx context.Context, id string) error {
	return f.directory.DeleteBuyer(ctx, id)
}

func (f *PanelFacade) Categories(ctx context.Context, page model.PageParams) (model.Page[model.Category], error) {
	return f.catalog.ListCategories(ctx, page)
}

func (f *PanelFacade) CreateCategory(ctx context.Context, in model.CategoryInput) (*model.Category, error) {
	return f.catalog.CreateCategory(ctx, in)
}

func (f *PanelFacade) UpdateCategory(ctx context.Context, id string, in model.CategoryInput) (*model.Category, error) {
	return f.catalog.UpdateCategory(ctx, id, in)
}

func (f *PanelFacade) DeleteCategory(ctx context.Context, id string) error {
	return f.catalog.DeleteCategory(ctx, id)
}

func (f *PanelFacade) Products(ctx context.Context, page model.PageParams, filter model.ProductFilter) (model.Page[model.Product], error) {
	return f.catalog.ListProducts(ctx, page, filter)
}

func (f *PanelFacade) SetProductStatus(ctx context.Context, id, status string) (*model.Product, error) {
	return f.catalog.SetProductStatus(ctx, id, status)
}

func (f *PanelFacade) DeleteProduct(ctx context.Context, id string) error {
	return f.catalog.DeleteProduct(ctx, id)
}

func (f *PanelFacade) SellerProducts(ctx context.Context, page model.PageParams) (model.Page[model.Product], error) {
	return f.catalog.SellerProducts(ctx, page)
}

func (f *PanelFacade) Orders(ctx context.Context, page model.PageParams, filter model.OrderFilter) (model.Page[model.Order], error) {
	return f.orders.List(ctx, page, filter)
}

func (f *PanelFacade) Order(ctx context.Context, id string) (*model.Order, error) {
	return f.orders.Get(ctx, id)
}

func (f *PanelFacade) SellerOrders(ctx context.Context, page model.PageParams) (model.Page[model.Order], error) {
	return f.orders.SellerOrders(ctx, page)
}

func (f *PanelFacade) UpdateSellerOrderStatus(ctx context.Context, id string, in model.SellerStatusUpdate) (*model.Order, error) {
	return f.orders.UpdateSellerStatus(ctx, id, in)
}

func (f *PanelFacade) Deliveries(ctx context.Context, page model.PageParams, filter model.OrderFilter) (model.Page[model.Delivery], error) {
	return f.deliveries.List(ctx, page, filter)
}

func (f *PanelFacade) Delivery(ctx context.Context, id string) (*model.Delivery, error) {
	return f.deliveries.Get(ctx, id)
}

func (f *PanelFacade) UpdateDeliveryStatus(ctx context.Context, id string, in model.StatusUpdate) (*model.Delivery, error) {
	return f.deliveries.UpdateStatus(ctx, id, in.ProductID, in.Status, in.Reason)
}

func (f *PanelFacade) ReportDeliveryIssue(ctx context.Context, id string, in model.IssueReport) (*model.Delivery, error) {
	return f.deliveries.ReportIssue(ctx, id, in.ProductID, in.Reason)
}

// AuditBatch feeds the history auditor.
func (f *PanelFacade) AuditBatch(ctx context.Context, limit int) ([]model.Delivery, error) {
	return f.deliveries.AuditBatch(ctx, limit)
}

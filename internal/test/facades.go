package test

import (
	"net/http"
	"testing"

	"github.com/polkiloo/marketpanel/internal/domain/model"
	"github.com/polkiloo/marketpanel/internal/metrics"
	"github.com/polkiloo/marketpanel/internal/session"
	"github.com/polkiloo/marketpanel/internal/usecase"
)

// Panel bundles use cases wired against an httptest marketplace and an
// in-memory courier backend.
type Panel struct {
	Session  *session.Store
	Views    *usecase.Views
	Metrics  *metrics.Metrics
	Couriers *CourierBackend
	Auth     AuthGatewayStub

	AuthUC      *usecase.AuthUseCase
	DirectoryUC *usecase.DirectoryUseCase
	CatalogUC   *usecase.CatalogUseCase
	OrderUC     *usecase.OrderUseCase
	DeliveryUC  *usecase.DeliveryUseCase
	SummaryUC   *usecase.SummaryUseCase
}

// NewPanel builds a Panel for role. A nil upstream answers 404 to everything.
func NewPanel(t *testing.T, role model.Role, upstream http.Handler, couriers *CourierBackend) *Panel {
	t.Helper()
	if upstream == nil {
		upstream = http.NotFoundHandler()
	}
	if couriers == nil {
		couriers = NewCourierBackend()
	}

	p := &Panel{
		Session:  NewSession(role),
		Views:    usecase.NewViews(),
		Metrics:  metrics.New(),
		Couriers: couriers,
	}
	client := NewMarketplace(t, p.Session, upstream)
	logger := DiscardLogger()

	p.AuthUC = usecase.NewAuthUseCase(p.Auth, p.Session, p.Views, logger)
	p.DirectoryUC = usecase.NewDirectoryUseCase(client, p.Session, p.Views)
	p.CatalogUC = usecase.NewCatalogUseCase(client, p.Session, p.Views)
	p.OrderUC = usecase.NewOrderUseCase(client, p.Session, p.Views)
	p.DeliveryUC = usecase.NewDeliveryUseCase(couriers, p.Session, p.Views, p.Metrics, logger)
	p.SummaryUC = usecase.NewSummaryUseCase(client, p.Session)
	return p
}

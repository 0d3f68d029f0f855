package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/marketpanel/internal/config"
	"github.com/polkiloo/marketpanel/internal/domain/model"
	"github.com/polkiloo/marketpanel/internal/metrics"
	"github.com/polkiloo/marketpanel/internal/server/http/handlers"
	"github.com/polkiloo/marketpanel/internal/server/http/middleware"
)

const metricsPath = "/metrics"

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.PanelFacade, cfg *config.Config, m *metrics.Metrics, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.Compression(metricsPath)...)

	errs := middleware.ErrorWriter{LoginRoute: cfg.LoginRoute}
	sessionRequired := middleware.SessionRequired(facade, errs)
	role := func(roles ...model.Role) gin.HandlerFunc { return middleware.RoleRequired(errs, roles...) }

	sessionHandler := handlers.NewSessionHandler(facade, errs)
	dashboardHandler := handlers.NewDashboardHandler(facade, errs)
	directoryHandler := handlers.NewDirectoryHandler(facade, errs)
	catalogHandler := handlers.NewCatalogHandler(facade, errs)
	orderHandler := handlers.NewOrderHandler(facade, errs)
	deliveryHandler := handlers.NewDeliveryHandler(facade, errs)

	engine.GET(metricsPath, gin.WrapH(m.Handler()))

	api := engine.Group("/api")
	api.POST("/session", sessionHandler.Login)
	api.GET("/session", sessionHandler.Status)
	api.DELETE("/session", sessionRequired, sessionHandler.Logout)

	dashboard := api.Group("/dashboard", sessionRequired)
	dashboard.GET("/views/:view", dashboardHandler.View)

	admin := dashboard.Group("", role(model.RoleAdmin))
	admin.GET("/summary", dashboardHandler.Summary)
	admin.GET("/admins", directoryHandler.Admins)
	admin.POST("/admins", directoryHandler.CreateAdmin)
	admin.DELETE("/admins/:id", directoryHandler.DeleteAdmin)
	admin.GET("/sellers", directoryHandler.Sellers)
	admin.GET("/sellers/pending", directoryHandler.PendingSellers)
	admin.PATCH("/sellers/:id/approve", directoryHandler.ApproveSeller)
	admin.DELETE("/sellers/:id", directoryHandler.DeleteSeller)
	admin.GET("/couriers", directoryHandler.Couriers)
	admin.POST("/couriers", directoryHandler.CreateCourier)
	admin.DELETE("/couriers/:id", directoryHandler.DeleteCourier)
	admin.GET("/buyers", directoryHandler.Buyers)
	admin.PATCH("/buyers/:id/status", directoryHandler.SetBuyerStatus)
	admin.DELETE("/buyers/:id", directoryHandler.DeleteBuyer)
	admin.GET("/categories", catalogHandler.Categories)
	admin.POST("/categories", catalogHandler.CreateCategory)
	admin.PUT("/categories/:id", catalogHandler.UpdateCategory)
	admin.DELETE("/categories/:id", catalogHandler.DeleteCategory)
	admin.GET("/products", catalogHandler.Products)
	admin.PATCH("/products/:id/status", catalogHandler.SetProductStatus)
	admin.DELETE("/products/:id", catalogHandler.DeleteProduct)
	admin.GET("/orders", orderHandler.List)
	admin.GET("/orders/:id", orderHandler.Get)

	seller := dashboard.Group("", role(model.RoleSeller))
	seller.GET("/seller-products", catalogHandler.SellerProducts)
	seller.GET("/seller-orders", orderHandler.SellerList)
	seller.PATCH("/seller-orders/:id/status", orderHandler.UpdateSellerStatus)

	courier := dashboard.Group("", role(model.RoleCourier))
	courier.GET("/deliveries", deliveryHandler.List)
	courier.GET("/deliveries/:id", deliveryHandler.Get)
	courier.PATCH("/deliveries/:id/status", deliveryHandler.UpdateStatus)
	courier.POST("/deliveries/:id/issues", deliveryHandler.ReportIssue)

	return engine
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/marketpanel/internal/domain/model"
	"github.com/polkiloo/marketpanel/internal/server/http/dto"
	"github.com/polkiloo/marketpanel/internal/server/http/middleware"
)

// OrderHandler manages admin and seller order endpoints.
type OrderHandler struct {
	facade OrderFacade
	errs   middleware.ErrorWriter
}

func NewOrderHandler(facade OrderFacade, errs middleware.ErrorWriter) *OrderHandler {
	return &OrderHandler{facade: facade, errs: errs}
}

// List handles GET /api/dashboard/orders?status=.
func (h *OrderHandler) List(c *gin.Context) {
	page, err := h.facade.Orders(c.Request.Context(), pageParams(c), model.OrderFilter{Status: c.Query("status")})
	if err != nil {
		h.errs.Abort(c, err)
		return
	}
	writePage(c, page)
}

func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.facade.Order(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.errs.Abort(c, err)
		return
	}
	writeData(c, http.StatusOK, order)
}

func (h *OrderHandler) SellerList(c *gin.Context) {
	page, err := h.facade.SellerOrders(c.Request.Context(), pageParams(c))
	if err != nil {
		h.errs.Abort(c, err)
		return
	}
	writePage(c, page)
}

func (h *OrderHandler) UpdateSellerStatus(c *gin.Context) {
	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.Abort(c, invalidBody(err))
		return
	}
	order, err := h.facade.UpdateSellerOrderStatus(c.Request.Context(), c.Param("id"), model.SellerStatusUpdate{
		Status:    req.Status,
		ProductID: req.ProductID,
	})
	if err != nil {
		h.errs.Abort(c, err)
		return
	}
	writeData(c, http.StatusOK, order)
}

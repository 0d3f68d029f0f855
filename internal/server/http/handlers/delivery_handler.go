package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/marketpanel/internal/domain/model"
	"github.com/polkiloo/marketpanel/internal/server/http/dto"
	"github.com/polkiloo/marketpanel/internal/server/http/middleware"
)

// DeliveryHandler serves the courier panel.
type DeliveryHandler struct {
	facade DeliveryFacade
	errs   middleware.ErrorWriter
}

func NewDeliveryHandler(facade DeliveryFacade, errs middleware.ErrorWriter) *DeliveryHandler {
	return &DeliveryHandler{facade: facade, errs: errs}
}

// List handles GET /api/dashboard/deliveries?status=shipped|delivered|issueReported.
func (h *DeliveryHandler) List(c *gin.Context) {
	page, err := h.facade.Deliveries(c.Request.Context(), pageParams(c), model.OrderFilter{Status: c.Query("status")})
	if err != nil {
		h.errs.Abort(c, err)
		return
	}
	writePage(c, page)
}

func (h *DeliveryHandler) Get(c *gin.Context) {
	d, err := h.facade.Delivery(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.errs.Abort(c, err)
		return
	}
	writeData(c, http.StatusOK, d)
}

// UpdateStatus handles PATCH /api/dashboard/deliveries/:id/status.
func (h *DeliveryHandler) UpdateStatus(c *gin.Context) {
	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.Abort(c, invalidBody(err))
		return
	}
	d, err := h.facade.UpdateDeliveryStatus(c.Request.Context(), c.Param("id"), model.StatusUpdate{
		Status:    model.CourierStatus(req.Status),
		ProductID: req.ProductID,
		Reason:    req.Reason,
	})
	if err != nil {
		h.errs.Abort(c, err)
		return
	}
	writeData(c, http.StatusOK, d)
}

// ReportIssue handles POST /api/dashboard/deliveries/:id/issues.
func (h *DeliveryHandler) ReportIssue(c *gin.Context) {
	var req dto.IssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.Abort(c, invalidBody(err))
		return
	}
	d, err := h.facade.ReportDeliveryIssue(c.Request.Context(), c.Param("id"), model.IssueReport{
		ProductID: req.ProductID,
		Reason:    req.Reason,
	})
	if err != nil {
		h.errs.Abort(c, err)
		return
	}
	writeData(c, http.StatusOK, d)
}

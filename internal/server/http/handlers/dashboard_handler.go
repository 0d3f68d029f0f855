package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/marketpanel/internal/apiclient"
	"github.com/polkiloo/marketpanel/internal/server/http/dto"
	"github.com/polkiloo/marketpanel/internal/server/http/middleware"
)

const msgUnknownView = "No pagination state for this view."

// DashboardHandler serves the analytics summary and view state.
type DashboardHandler struct {
	facade DashboardFacade
	errs   middleware.ErrorWriter
}

func NewDashboardHandler(facade DashboardFacade, errs middleware.ErrorWriter) *DashboardHandler {
	return &DashboardHandler{facade: facade, errs: errs}
}

func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.facade.Summary(c.Request.Context())
	if err != nil {
		h.errs.Abort(c, err)
		return
	}
	writeData(c, http.StatusOK, summary)
}

// View handles GET /api/dashboard/views/:view.
func (h *DashboardHandler) View(c *gin.Context) {
	cursor, ok := h.facade.ViewCursor(c.Param("view"))
	if !ok {
		h.errs.Abort(c, apiclient.Reject(apiclient.KindNotFound, msgUnknownView, nil))
		return
	}
	c.JSON(http.StatusOK, dto.NewPagination(cursor))
}

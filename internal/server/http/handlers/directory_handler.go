package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/marketpanel/internal/domain/model"
	"github.com/polkiloo/marketpanel/internal/server/http/dto"
	"github.com/polkiloo/marketpanel/internal/server/http/middleware"
)

// DirectoryHandler serves the admin account panels.
type DirectoryHandler struct {
	facade DirectoryFacade
	errs   middleware.ErrorWriter
}

func NewDirectoryHandler(facade DirectoryFacade, errs middleware.ErrorWriter) *DirectoryHandler {
	return &DirectoryHandler{facade: facade, errs: errs}
}

func (h *DirectoryHandler) Admins(c *gin.Context) {
	page, err := h.facade.Admins(c.Request.Context(), pageParams(c))
	if err != nil {
		h.errs.Abort(c, err)
		return
	}
	writePage(c, page)
}

func (h *DirectoryHandler) CreateAdmin(c *gin.Context) {
	var req model.AdminInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.Abort(c, invalidBody(err))
		return
	}
	admin, err := h.facade.CreateAdmin(c.Request.Context(), req)
	if err != nil {
		h.errs.Abort(c, err)
		return
	}
	writeData(c, http.StatusCreated, admin)
}

func (h *DirectoryHandler) DeleteAdmin(c *gin.Context) {
	h.remove(c, h.facade.DeleteAdmin)
}

func (h *DirectoryHandler) Sellers(c *gin.Context) {
	page, err := h.facade.Sellers(c.Request.Context(), pageParams(c))
	if err != nil {
		h.errs.Abort(c, err)
		return
	}
	writePage(c, page)
}

func (h *DirectoryHandler) PendingSellers(c *gin.Context) {
	page, err := h.facade.PendingSellers(c.Request.Context(), pageParams(c))
	if err != nil {
		h.errs.Abort(c, err)
		return
	}
	writePage(c, page)
}

func (h *DirectoryHandler) ApproveSeller(c *gin.Context) {
	seller, err := h.facade.ApproveSeller(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.errs.Abort(c, err)
		return
	}
	writeData(c, http.StatusOK, seller)
}

func (h *DirectoryHandler) DeleteSeller(c *gin.Context) {
	h.remove(c, h.facade.DeleteSeller)
}

func (h *DirectoryHandler) Couriers(c *gin.Context) {
	page, err := h.facade.Couriers(c.Request.Context(), pageParams(c))
	if err != nil {
		h.errs.Abort(c, err)
		return
	}
	writePage(c, page)
}

func (h *DirectoryHandler) CreateCourier(c *gin.Context) {
	var req model.CourierInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.Abort(c, invalidBody(err))
		return
	}
	courier, err := h.facade.CreateCourier(c.Request.Context(), req)
	if err != nil {
		h.errs.Abort(c, err)
		return
	}
	writeData(c, http.StatusCreated, courier)
}

func (h *DirectoryHandler) DeleteCourier(c *gin.Context) {
	h.remove(c, h.facade.DeleteCourier)
}

func (h *DirectoryHandler) Buyers(c *gin.Context) {
	page, err := h.facade.Buyers(c.Request.Context(), pageParams(c))
	if err != nil {
		h.errs.Abort(c, err)
		return
	}
	writePage(c, page)
}

func (h *DirectoryHandler) SetBuyerStatus(c *gin.Context) {
	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.Abort(c, invalidBody(err))
		return
	}
	buyer, err := h.facade.SetBuyerStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		h.errs.Abort(c, err)
		return
	}
	writeData(c, http.StatusOK, buyer)
}

func (h *DirectoryHandler) DeleteBuyer(c *gin.Context) {
	h.remove(c, h.facade.DeleteBuyer)
}

func (h *DirectoryHandler) remove(c *gin.Context, del func(ctx context.Context, id string) error) {
	if err := del(c.Request.Context(), c.Param("id")); err != nil {
		h.errs.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

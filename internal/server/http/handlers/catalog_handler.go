package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/marketpanel/internal/domain/model"
	"github.com/polkiloo/marketpanel/internal/server/http/dto"
	"github.com/polkiloo/marketpanel/internal/server/http/middleware"
)

// CatalogHandler serves category and product panels.
type CatalogHandler struct {
	facade CatalogFacade
	errs   middleware.ErrorWriter
}

func NewCatalogHandler(facade CatalogFacade, errs middleware.ErrorWriter) *CatalogHandler {
	return &CatalogHandler{facade: facade, errs: errs}
}

func (h *CatalogHandler) Categories(c *gin.Context) {
	page, err := h.facade.Categories(c.Request.Context(), pageParams(c))
	if err != nil {
		h.errs.Abort(c, err)
		return
	}
	writePage(c, page)
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req model.CategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.Abort(c, invalidBody(err))
		return
	}
	category, err := h.facade.CreateCategory(c.Request.Context(), req)
	if err != nil {
		h.errs.Abort(c, err)
		return
	}
	writeData(c, http.StatusCreated, category)
}

func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	var req model.CategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.Abort(c, invalidBody(err))
		return
	}
	category, err := h.facade.UpdateCategory(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.errs.Abort(c, err)
		return
	}
	writeData(c, http.StatusOK, category)
}

func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	if err := h.facade.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		h.errs.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Products handles GET /api/dashboard/products?status=&category=&search=.
func (h *CatalogHandler) Products(c *gin.Context) {
	filter := model.ProductFilter{
		Status:     c.Query("status"),
		CategoryID: c.Query("category"),
		Search:     c.Query("search"),
	}
	page, err := h.facade.Products(c.Request.Context(), pageParams(c), filter)
	if err != nil {
		h.errs.Abort(c, err)
		return
	}
	writePage(c, page)
}

func (h *CatalogHandler) SetProductStatus(c *gin.Context) {
	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.Abort(c, invalidBody(err))
		return
	}
	product, err := h.facade.SetProductStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		h.errs.Abort(c, err)
		return
	}
	writeData(c, http.StatusOK, product)
}

func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	if err := h.facade.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		h.errs.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) SellerProducts(c *gin.Context) {
	page, err := h.facade.SellerProducts(c.Request.Context(), pageParams(c))
	if err != nil {
		h.errs.Abort(c, err)
		return
	}
	writePage(c, page)
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/marketpanel/internal/apiclient"
	"github.com/polkiloo/marketpanel/internal/domain/model"
	"github.com/polkiloo/marketpanel/internal/server/http/dto"
)

const msgInvalidBody = "Invalid request body."

// pageParams reads ?page=&limit=. Missing or malformed values fall back to defaults.
func pageParams(c *gin.Context) model.PageParams {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return model.PageParams{Page: page, Limit: limit}.Normalize()
}

func invalidBody(err error) error {
	return apiclient.Reject(apiclient.KindValidationFailure, msgInvalidBody, err)
}

func writePage[T any](c *gin.Context, page model.Page[T]) {
	c.JSON(http.StatusOK, dto.NewPageResponse(page))
}

func writeData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

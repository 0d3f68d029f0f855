package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/marketpanel/internal/domain/model"
	"github.com/polkiloo/marketpanel/internal/server/http/dto"
	"github.com/polkiloo/marketpanel/internal/server/http/middleware"
)

// SessionHandler processes login, logout and session checks.
type SessionHandler struct {
	facade SessionFacade
	errs   middleware.ErrorWriter
}

func NewSessionHandler(facade SessionFacade, errs middleware.ErrorWriter) *SessionHandler {
	return &SessionHandler{facade: facade, errs: errs}
}

// Login handles POST /api/session.
func (h *SessionHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.Abort(c, invalidBody(err))
		return
	}

	profile, err := h.facade.Login(c.Request.Context(), model.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		h.errs.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SessionResponse{Authenticated: true, User: &profile})
}

// Status handles GET /api/session. A missing session is not an error here.
func (h *SessionHandler) Status(c *gin.Context) {
	profile, err := h.facade.CurrentProfile()
	if err != nil {
		c.JSON(http.StatusOK, dto.SessionResponse{})
		return
	}
	if c.Query("refresh") == "true" {
		if profile, err = h.facade.RefreshProfile(c.Request.Context()); err != nil {
			h.errs.Abort(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, dto.SessionResponse{Authenticated: true, User: &profile})
}

// Logout handles DELETE /api/session.
func (h *SessionHandler) Logout(c *gin.Context) {
	if err := h.facade.Logout(c.Request.Context()); err != nil {
		h.errs.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

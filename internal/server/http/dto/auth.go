package dto

import "github.com/polkiloo/marketpanel/internal/domain/model"

// LoginRequest describes the email/password payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse reports whether a dashboard session is open.
type SessionResponse struct {
	Authenticated bool           `json:"isAuthenticated"`
	User          *model.Profile `json:"user,omitempty"`
}

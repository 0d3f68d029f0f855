package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/polkiloo/marketpanel/internal/apiclient"
	"github.com/polkiloo/marketpanel/internal/domain/model"
	"github.com/polkiloo/marketpanel/internal/session"
)

const (
	msgCredentialsRequired = "Email and password are required."
	msgNoPanel             = "This account has no access to the dashboard."
)

// AuthGateway is the marketplace auth namespace.
type AuthGateway interface {
	Login(ctx context.Context, creds model.Credentials) (*model.LoginResult, error)
	Profile(ctx context.Context) (*model.Profile, error)
}

// AuthUseCase opens and closes the panel session.
type AuthUseCase struct {
	gateway AuthGateway
	session *session.Store
	views   *Views
	logger  *slog.Logger
}

func NewAuthUseCase(gateway AuthGateway, store *session.Store, views *Views, logger *slog.Logger) *AuthUseCase {
	return &AuthUseCase{gateway: gateway, session: store, views: views, logger: logger.With("component", "auth")}
}

// Login exchanges credentials for a token. Buyers are refused a panel session.
func (u *AuthUseCase) Login(ctx context.Context, creds model.Credentials) (model.Profile, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if creds.Email == "" || creds.Password == "" {
		return model.Profile{}, apiclient.Reject(apiclient.KindValidationFailure, msgCredentialsRequired, nil)
	}

	result, err := u.gateway.Login(ctx, creds)
	if err != nil {
		return model.Profile{}, err
	}
	if result.Token == "" {
		return model.Profile{}, apiclient.Reject(apiclient.KindUnknown, apiclient.MsgInvalidData, nil)
	}
	if !result.User.Role.HasPanel() {
		return model.Profile{}, apiclient.Reject(apiclient.KindForbidden, msgNoPanel, nil)
	}

	if err := u.session.Open(ctx, result.Token, result.User); err != nil {
		return model.Profile{}, apiclient.Reject(apiclient.KindUnknown, apiclient.MsgUnexpected, err)
	}
	u.views.Reset()

	u.logger.Info("session opened", slog.String("user_id", result.User.ID), slog.String("role", string(result.User.Role)))
	return result.User, nil
}

// Logout clears the session and every pagination cursor.
func (u *AuthUseCase) Logout(ctx context.Context) error {
	u.views.Reset()
	if err := u.session.Clear(ctx); err != nil {
		return apiclient.Reject(apiclient.KindUnknown, apiclient.MsgUnexpected, err)
	}
	u.logger.Info("session closed")
	return nil
}

// Current returns the cached profile without a network call.
func (u *AuthUseCase) Current() (model.Profile, error) {
	return requireRole(u.session, model.RoleAdmin, model.RoleSeller, model.RoleCourier)
}

// Refresh re-reads the profile from the marketplace and updates the cache.
func (u *AuthUseCase) Refresh(ctx context.Context) (model.Profile, error) {
	if _, err := u.Current(); err != nil {
		return model.Profile{}, err
	}

	profile, err := u.gateway.Profile(ctx)
	if err != nil {
		return model.Profile{}, err
	}

	token, ok := u.session.Token()
	if !ok {
		return model.Profile{}, apiclient.Reject(apiclient.KindUnauthorized, msgLoginRequired, nil)
	}
	if err := u.session.Open(ctx, token, *profile); err != nil {
		return model.Profile{}, apiclient.Reject(apiclient.KindUnknown, apiclient.MsgUnexpected, err)
	}
	return *profile, nil
}

package test

import (
	"context"

	"github.com/polkiloo/marketpanel/internal/domain/model"
)

// AuthGatewayStub answers login and profile calls from fields or funcs.
type AuthGatewayStub struct {
	LoginFn   func(context.Context, model.Credentials) (*model.LoginResult, error)
	ProfileFn func(context.Context) (*model.Profile, error)
}

func (s AuthGatewayStub) Login(ctx context.Context, creds model.Credentials) (*model.LoginResult, error) {
	if s.LoginFn != nil {
		return s.LoginFn(ctx, creds)
	}
	return &model.LoginResult{
		Token: "token-" + creds.Email,
		User:  model.Profile{ID: "u1", Email: creds.Email, Role: model.RoleAdmin},
	}, nil
}

func (s AuthGatewayStub) Profile(ctx context.Context) (*model.Profile, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx)
	}
	return &model.Profile{ID: "u1", Role: model.RoleAdmin}, nil
}

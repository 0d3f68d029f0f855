package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/polkiloo/marketpanel/internal/apiclient"
	"github.com/polkiloo/marketpanel/internal/domain/model"
	"github.com/polkiloo/marketpanel/internal/test"
	"github.com/polkiloo/marketpanel/internal/usecase"
)

func loginAs(role model.Role) func(context.Context, model.Credentials) (*model.LoginResult, error) {
	return func(_ context.Context, creds model.Credentials) (*model.LoginResult, error) {
		return &model.LoginResult{
			Token: "tok",
			User:  model.Profile{ID: "u1", Email: creds.Email, Role: role},
		}, nil
	}
}

func TestLoginOpensSessionAndResetsViews(t *testing.T) {
	store := test.NewSession("")
	views := usecase.NewViews()
	views.Record(usecase.ViewAdmins, model.Cursor{Page: 3, Limit: 10, Total: 40})
	uc := usecase.NewAuthUseCase(test.AuthGatewayStub{LoginFn: loginAs(model.RoleCourier)}, store, views, test.DiscardLogger())

	profile, err := uc.Login(context.Background(), model.Credentials{Email: " c@example.com ", Password: "secret"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if profile.Role != model.RoleCourier || profile.Email != "c@example.com" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
	if token, ok := store.Token(); !ok || token != "tok" {
		t.Fatalf("expected token to be stored, got %q", token)
	}
	if _, ok := views.Cursor(usecase.ViewAdmins); ok {
		t.Fatalf("expected cursors to be reset on login")
	}

	current, err := uc.Current()
	if err != nil || current.ID != "u1" {
		t.Fatalf("expected cached profile, got %+v (%v)", current, err)
	}
}

func TestLoginRejections(t *testing.T) {
	cases := []struct {
		name  string
		creds model.Credentials
		login func(context.Context, model.Credentials) (*model.LoginResult, error)
		kind  apiclient.Kind
	}{
		{
			name:  "missing password",
			creds: model.Credentials{Email: "a@example.com"},
			kind:  apiclient.KindValidationFailure,
		},
		{
			name:  "buyer",
			creds: model.Credentials{Email: "b@example.com", Password: "pw"},
			login: loginAs(model.RoleBuyer),
			kind:  apiclient.KindForbidden,
		},
		{
			name:  "empty token",
			creds: model.Credentials{Email: "a@example.com", Password: "pw"},
			login: func(context.Context, model.Credentials) (*model.LoginResult, error) {
				return &model.LoginResult{User: model.Profile{Role: model.RoleAdmin}}, nil
			},
			kind: apiclient.KindUnknown,
		},
		{
			name:  "gateway failure",
			creds: model.Credentials{Email: "a@example.com", Password: "pw"},
			login: func(context.Context, model.Credentials) (*model.LoginResult, error) {
				return nil, apiclient.Reject(apiclient.KindValidationFailure, "Invalid credentials", nil)
			},
			kind: apiclient.KindValidationFailure,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := test.NewSession("")
			uc := usecase.NewAuthUseCase(test.AuthGatewayStub{LoginFn: tc.login}, store, usecase.NewViews(), test.DiscardLogger())

			_, err := uc.Login(context.Background(), tc.creds)
			requireKind(t, err, tc.kind)
			if store.Authenticated() {
				t.Fatalf("rejected login must not open a session")
			}
		})
	}
}

func TestLogoutClearsSession(t *testing.T) {
	store := test.NewSession(model.RoleAdmin)
	uc := usecase.NewAuthUseCase(test.AuthGatewayStub{}, store, usecase.NewViews(), test.DiscardLogger())

	if err := uc.Logout(context.Background()); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if store.Authenticated() {
		t.Fatalf("expected session to be cleared")
	}
	_, err := uc.Current()
	requireKind(t, err, apiclient.KindUnauthorized)
}

func TestRefreshUpdatesCachedProfile(t *testing.T) {
	store := test.NewSession(model.RoleSeller)
	gateway := test.AuthGatewayStub{ProfileFn: func(context.Context) (*model.Profile, error) {
		return &model.Profile{ID: "seller-1", Name: "Renamed", Role: model.RoleSeller}, nil
	}}
	uc := usecase.NewAuthUseCase(gateway, store, usecase.NewViews(), test.DiscardLogger())

	profile, err := uc.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if profile.Name != "Renamed" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
	cached, _ := store.Profile()
	if cached.Name != "Renamed" {
		t.Fatalf("expected cache to be updated, got %+v", cached)
	}
}

func TestRefreshKeepsErrorFromGateway(t *testing.T) {
	store := test.NewSession(model.RoleAdmin)
	boom := errors.New("boom")
	gateway := test.AuthGatewayStub{ProfileFn: func(context.Context) (*model.Profile, error) { return nil, boom }}
	uc := usecase.NewAuthUseCase(gateway, store, usecase.NewViews(), test.DiscardLogger())

	if _, err := uc.Refresh(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected gateway error, got %v", err)
	}
}

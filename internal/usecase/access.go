package usecase

import (
	"slices"

	"github.com/polkiloo/marketpanel/internal/apiclient"
	domainErrors "github.com/polkiloo/marketpanel/internal/domain/errors"
	"github.com/polkiloo/marketpanel/internal/domain/model"
	"github.com/polkiloo/marketpanel/internal/session"
)

const msgLoginRequired = "Please log in to continue."

// requireRole returns the session profile when its role is one of roles.
func requireRole(store *session.Store, roles ...model.Role) (model.Profile, error) {
	profile, ok := store.Profile()
	if !ok || !store.Authenticated() {
		return model.Profile{}, apiclient.Reject(apiclient.KindUnauthorized, msgLoginRequired, domainErrors.ErrNoSession)
	}
	if !slices.Contains(roles, profile.Role) {
		return profile, apiclient.Reject(apiclient.KindForbidden, apiclient.MsgAccessDenied, nil)
	}
	return profile, nil
}

package middleware

import (
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/marketpanel/internal/apiclient"
	"github.com/polkiloo/marketpanel/internal/domain/model"
)

// ProfileContextKey is a gin context key for the signed-in profile.
const ProfileContextKey = "profile"

// ProfileSource returns the cached session profile.
type ProfileSource interface {
	CurrentProfile() (model.Profile, error)
}

// SessionRequired rejects requests made without an open dashboard session.
func SessionRequired(source ProfileSource, errs ErrorWriter) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := source.CurrentProfile()
		if err != nil {
			errs.Abort(c, err)
			return
		}
		c.Set(ProfileContextKey, profile)
		c.Next()
	}
}

// RoleRequired lets through only sessions whose role is one of roles.
// It must run after SessionRequired.
func RoleRequired(errs ErrorWriter, roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, ok := CurrentProfile(c)
		if !ok || !slices.Contains(roles, profile.Role) {
			errs.Abort(c, apiclient.Reject(apiclient.KindForbidden, apiclient.MsgAccessDenied, nil))
			return
		}
		c.Next()
	}
}

// CurrentProfile extracts the profile stored by SessionRequired.
func CurrentProfile(c *gin.Context) (model.Profile, bool) {
	val, ok := c.Get(ProfileContextKey)
	if !ok {
		return model.Profile{}, false
	}
	profile, ok := val.(model.Profile)
	return profile, ok
}

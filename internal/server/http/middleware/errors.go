package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/marketpanel/internal/apiclient"
	"github.com/polkiloo/marketpanel/internal/server/http/dto"
)

const (
	// ClientLocationHeader carries the dashboard route the request was made from.
	ClientLocationHeader = "X-Client-Location"
	// RedirectHeader tells the dashboard where to navigate after the response.
	RedirectHeader = "X-Redirect-To"
)

// ErrorWriter renders normalized errors as JSON responses.
type ErrorWriter struct {
	LoginRoute string
}

// Abort writes err and stops the handler chain. Errors that are not
// normalized yet are reported as unexpected.
func (w ErrorWriter) Abort(c *gin.Context, err error) {
	normalized, ok := apiclient.AsError(err)
	if !ok {
		normalized = apiclient.Reject(apiclient.KindUnknown, apiclient.MsgUnexpected, err)
		normalized.Code = http.StatusInternalServerError
	}

	body := dto.ErrorResponse{
		Kind:               string(normalized.Kind),
		Message:            normalized.Message,
		Code:               normalized.Code,
		IsBigError:         normalized.IsBigError,
		SessionInvalidated: normalized.SessionInvalidated,
		Notice:             dto.NoticeInline,
	}
	if normalized.IsBigError {
		body.Notice = dto.NoticeGlobal
	}

	location := c.GetHeader(ClientLocationHeader)
	if location == "" {
		location = c.Request.URL.Path
	}
	if route, redirect := apiclient.LoginRedirect(normalized, location, w.LoginRoute); redirect {
		body.Redirect = route
		c.Header(RedirectHeader, route)
	}

	status := normalized.Code
	if status == 0 {
		status = http.StatusServiceUnavailable
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, body)
}

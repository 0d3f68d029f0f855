package apiclient

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	domainErrors "github.com/polkiloo/marketpanel/internal/domain/errors"
	"github.com/polkiloo/marketpanel/internal/metrics"
)

const (
	MsgOffline        = "No internet connection. Please check your network."
	MsgBadRequest     = "Bad request. Something went wrong with the system."
	MsgServerError    = "Internal server error. Please try again later."
	MsgInvalidRequest = "Invalid request. Please check your input."
	MsgSessionExpired = "Session expired. Please log in again."
	MsgAccessDenied   = "Access denied. Insufficient permissions."
	MsgNotFound       = "Resource not found."
	MsgConflict       = "Resource conflict."
	MsgUnexpected     = "An unexpected error occurred"
	MsgInvalidData    = "Invalid data received from server."
)

// SessionClearer drops the stored credential.
type SessionClearer interface {
	Clear(ctx context.Context) error
}

// Classifier maps transport failures to normalized errors.
type Classifier struct {
	session SessionClearer
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewClassifier(session SessionClearer, m *metrics.Metrics, logger *slog.Logger) *Classifier {
	return &Classifier{session: session, metrics: m, logger: logger.With("component", "classifier")}
}

// Classify normalizes err. Errors already normalized pass through unchanged.
func (c *Classifier) Classify(ctx context.Context, err error) *Error {
	if err == nil {
		return nil
	}
	if normalized, ok := AsError(err); ok {
		return normalized
	}

	var result *Error
	var terr *TransportError
	switch {
	case errors.As(err, &terr):
		result = c.classifyTransport(ctx, terr)
	case errors.Is(err, domainErrors.ErrInvalidResponse):
		result = &Error{Kind: KindUnknown, Message: MsgInvalidData, Code: http.StatusInternalServerError}
	default:
		result = &Error{Kind: KindUnknown, Message: MsgUnexpected, Code: http.StatusInternalServerError}
	}
	result.Original = err

	c.metrics.ObserveError(string(result.Kind))
	c.logger.Debug("request error classified",
		slog.String("kind", string(result.Kind)),
		slog.Int("code", result.Code),
		slog.Bool("big", result.IsBigError),
		slog.String("cause", err.Error()),
	)
	return result
}

func (c *Classifier) classifyTransport(ctx context.Context, terr *TransportError) *Error {
	status := terr.StatusCode
	message := terr.ServerMessage()

	switch {
	case terr.Offline:
		return &Error{Kind: KindNetworkUnavailable, Message: MsgOffline, Code: 0, IsBigError: true}
	case status == http.StatusBadRequest && message == "":
		return &Error{Kind: KindMalformedRequest, Message: MsgBadRequest, Code: status, IsBigError: true}
	case status == http.StatusInternalServerError:
		return &Error{Kind: KindServerFault, Message: MsgServerError, Code: status, IsBigError: true}
	case status == http.StatusBadRequest:
		return &Error{Kind: KindValidationFailure, Message: message, Code: status}
	case status == http.StatusUnauthorized:
		c.invalidateSession(ctx)
		return &Error{
			Kind:               KindUnauthorized,
			Message:            orDefault(message, MsgSessionExpired),
			Code:               status,
			SessionInvalidated: true,
		}
	case status == http.StatusForbidden:
		return &Error{Kind: KindForbidden, Message: orDefault(message, MsgAccessDenied), Code: status}
	case status == http.StatusNotFound:
		return &Error{Kind: KindNotFound, Message: orDefault(message, MsgNotFound), Code: status}
	case status == http.StatusConflict:
		return &Error{Kind: KindConflict, Message: orDefault(message, MsgConflict), Code: status}
	case status > http.StatusInternalServerError:
		return &Error{Kind: KindServerFault, Message: MsgUnexpected, Code: http.StatusInternalServerError}
	default:
		return &Error{Kind: KindUnknown, Message: MsgUnexpected, Code: http.StatusInternalServerError}
	}
}

func (c *Classifier) invalidateSession(ctx context.Context) {
	c.metrics.ObserveSessionInvalidated()
	if c.session == nil {
		return
	}
	if err := c.session.Clear(context.WithoutCancel(ctx)); err != nil {
		c.logger.Error("failed to clear session", slog.String("error", err.Error()))
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// LoginRedirect returns the login route when err invalidated the session
// and the caller is not already on it.
func LoginRedirect(err error, currentLocation, loginRoute string) (string, bool) {
	normalized, ok := AsError(err)
	if !ok || !normalized.SessionInvalidated {
		return "", false
	}
	if currentLocation == loginRoute {
		return "", false
	}
	return loginRoute, true
}

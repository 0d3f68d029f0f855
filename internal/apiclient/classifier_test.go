package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	domainErrors "github.com/polkiloo/marketpanel/internal/domain/errors"
	"github.com/polkiloo/marketpanel/internal/metrics"
)

func TestClassifyPolicyTable(t *testing.T) {
	cases := []struct {
		name    string
		err     *TransportError
		kind    Kind
		message string
		code    int
		big     bool
	}{
		{"offline", &TransportError{Offline: true}, KindNetworkUnavailable, MsgOffline, 0, true},
		{"offline wins over status", &TransportError{Offline: true, StatusCode: 500}, KindNetworkUnavailable, MsgOffline, 0, true},
		{"400 without message", &TransportError{StatusCode: 400, Body: []byte(`{}`)}, KindMalformedRequest, MsgBadRequest, 400, true},
		{"400 with non-json body", &TransportError{StatusCode: 400, Body: []byte(`oops`)}, KindMalformedRequest, MsgBadRequest, 400, true},
		{"500", &TransportError{StatusCode: 500, Body: []byte(`{"message":"db down"}`)}, KindServerFault, MsgServerError, 500, true},
		{"400 with message", &TransportError{StatusCode: 400, Body: []byte(`{"message":"Email is required"}`)}, KindValidationFailure, "Email is required", 400, false},
		{"403 default", &TransportError{StatusCode: 403}, KindForbidden, MsgAccessDenied, 403, false},
		{"403 server message", &TransportError{StatusCode: 403, Body: []byte(`{"message":"Admins only"}`)}, KindForbidden, "Admins only", 403, false},
		{"404 default", &TransportError{StatusCode: 404}, KindNotFound, MsgNotFound, 404, false},
		{"409 server message", &TransportError{StatusCode: 409, Body: []byte(`{"message":"Email taken"}`)}, KindConflict, "Email taken", 409, false},
		{"503", &TransportError{StatusCode: 503}, KindServerFault, MsgUnexpected, 500, false},
		{"422", &TransportError{StatusCode: 422, Body: []byte(`{"message":"bad"}`)}, KindUnknown, MsgUnexpected, 500, false},
		{"timeout", &TransportError{TimedOut: true}, KindUnknown, MsgUnexpected, 500, false},
		{"refused connection", &TransportError{Err: &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}}, KindUnknown, MsgUnexpected, 500, false},
		{"dns failure", &TransportError{Err: &net.DNSError{Err: "no such host", Name: "market.invalid", IsNotFound: true}}, KindUnknown, MsgUnexpected, 500, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewClassifier(nil, nil, testLogger())
			got := c.Classify(context.Background(), tc.err)

			if got.Kind != tc.kind || got.Message != tc.message || got.Code != tc.code || got.IsBigError != tc.big {
				t.Fatalf("expected %s/%q/%d/%v, got %s/%q/%d/%v",
					tc.kind, tc.message, tc.code, tc.big, got.Kind, got.Message, got.Code, got.IsBigError)
			}
			if !errors.Is(got, tc.err) {
				t.Fatal("expected original error to be preserved")
			}
		})
	}
}

func TestClassifyUnauthorizedClearsSession(t *testing.T) {
	store := &tokenStub{token: "tok"}
	m := metrics.New()
	c := NewClassifier(store, m, testLogger())

	got := c.Classify(context.Background(), &TransportError{StatusCode: 401})

	if got.Kind != KindUnauthorized || got.Code != 401 || got.IsBigError {
		t.Fatalf("unexpected classification %+v", got)
	}
	if got.Message != MsgSessionExpired {
		t.Fatalf("expected default message, got %q", got.Message)
	}
	if !got.SessionInvalidated {
		t.Fatal("expected session invalidated flag")
	}
	if _, ok := store.Token(); ok {
		t.Fatal("expected token cleared")
	}
	if v := testutil.ToFloat64(m.SessionInvalidations); v != 1 {
		t.Fatalf("expected invalidation counted, got %v", v)
	}
	if v := testutil.ToFloat64(m.ClassifiedErrors.WithLabelValues(string(KindUnauthorized))); v != 1 {
		t.Fatalf("expected classified error counted, got %v", v)
	}

	withMessage := c.Classify(context.Background(), &TransportError{StatusCode: 401, Body: []byte(`{"message":"Token expired"}`)})
	if withMessage.Message != "Token expired" {
		t.Fatalf("expected server message, got %q", withMessage.Message)
	}
}

func TestClassifyPassesNormalizedErrorsThrough(t *testing.T) {
	c := NewClassifier(nil, nil, testLogger())
	local := Reject(KindValidationFailure, "Cannot skip statuses.", nil)

	if got := c.Classify(context.Background(), fmt.Errorf("wrapped: %w", local)); got != local {
		t.Fatalf("expected the same error back, got %+v", got)
	}
	if c.Classify(context.Background(), nil) != nil {
		t.Fatal("expected nil for nil error")
	}
}

func TestClassifyInvalidResponse(t *testing.T) {
	c := NewClassifier(nil, nil, testLogger())
	got := c.Classify(context.Background(), fmt.Errorf("%w: data is not an array", domainErrors.ErrInvalidResponse))

	if got.Kind != KindUnknown || got.Message != MsgInvalidData || got.Code != 500 || got.IsBigError {
		t.Fatalf("unexpected classification %+v", got)
	}

	plain := c.Classify(context.Background(), errors.New("boom"))
	if plain.Message != MsgUnexpected || plain.Code != 500 {
		t.Fatalf("unexpected classification %+v", plain)
	}
}

func TestLoginRedirect(t *testing.T) {
	invalidated := &Error{Kind: KindUnauthorized, Code: 401, SessionInvalidated: true}

	if route, ok := LoginRedirect(invalidated, "/dashboard/admins", "/login"); !ok || route != "/login" {
		t.Fatalf("expected redirect to /login, got %q ok=%v", route, ok)
	}
	if _, ok := LoginRedirect(invalidated, "/login", "/login"); ok {
		t.Fatal("expected no redirect when already on the login route")
	}
	if _, ok := LoginRedirect(&Error{Kind: KindForbidden, Code: 403}, "/dashboard", "/login"); ok {
		t.Fatal("expected no redirect without invalidation")
	}
	if _, ok := LoginRedirect(errors.New("plain"), "/dashboard", "/login"); ok {
		t.Fatal("expected no redirect for plain errors")
	}
}

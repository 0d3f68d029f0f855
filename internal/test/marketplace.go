package test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/polkiloo/marketpanel/internal/adapter/marketplace"
	"github.com/polkiloo/marketpanel/internal/apiclient"
	"github.com/polkiloo/marketpanel/internal/session"
)

// NoSleep is a backoff sleeper that returns immediately.
func NoSleep(ctx context.Context, _ time.Duration) error { return ctx.Err() }

// NewMarketplace serves handler on an httptest server and returns a marketplace
// client authorized with store's token. Retries do not wait.
func NewMarketplace(t *testing.T, store *session.Store, handler http.Handler) *marketplace.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := DiscardLogger()
	pipeline, err := apiclient.NewPipeline(srv.URL+"/api", store,
		apiclient.WithSleeper(NoSleep),
		apiclient.WithLogger(logger),
	)
	if err != nil {
		t.Fatalf("failed to create pipeline: %v", err)
	}
	return marketplace.New(apiclient.NewClient(pipeline, apiclient.NewClassifier(store, nil, logger)))
}

// JSON writes body with the given status code.
func JSON(code int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_, _ = w.Write([]byte(body))
	}
}

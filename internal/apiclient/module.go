package apiclient

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/marketpanel/internal/config"
	"github.com/polkiloo/marketpanel/internal/metrics"
	"github.com/polkiloo/marketpanel/internal/session"
)

// Module exposes the access layer to the fx graph.
var Module = fx.Options(
	fx.Provide(
		newPipeline,
		func(s *session.Store, m *metrics.Metrics, l *slog.Logger) *Classifier { return NewClassifier(s, m, l) },
		NewClient,
	),
)

type pipelineParams struct {
	fx.In

	Config       *config.Config
	Session      *session.Store
	Metrics      *metrics.Metrics
	Logger       *slog.Logger
	Connectivity Connectivity `optional:"true"`
}

func newPipeline(p pipelineParams) (*Pipeline, error) {
	opts := []Option{
		WithPolicy(Policy{
			Timeout:    p.Config.RequestTimeout,
			MaxRetries: p.Config.MaxRetries,
			BaseDelay:  p.Config.RetryDelay,
		}),
		WithLogger(p.Logger),
		WithMetrics(p.Metrics),
	}
	if p.Connectivity != nil {
		opts = append(opts, WithConnectivity(p.Connectivity))
	}
	return NewPipeline(p.Config.APIBaseURL, p.Session, opts...)
}

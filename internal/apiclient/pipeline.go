package apiclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	domainErrors "github.com/polkiloo/marketpanel/internal/domain/errors"
	"github.com/polkiloo/marketpanel/internal/metrics"
)

const (
	RequestIDHeader     = "X-Request-ID"
	AuthorizationHeader = "Authorization"
	tracerName          = "github.com/polkiloo/marketpanel/internal/apiclient"
)

// Request is one logical call to the marketplace API.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   []byte
}

// Response is a successful (2xx) reply.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Credentials supplies the bearer token, read at every attempt.
type Credentials interface {
	Token() (string, bool)
}

// Connectivity reports whether the host is online.
type Connectivity interface {
	Online() bool
}

type ConnectivityFunc func() bool

func (f ConnectivityFunc) Online() bool { return f() }

// AlwaysOnline is the default connectivity probe.
var AlwaysOnline = ConnectivityFunc(func() bool { return true })

type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// Sleeper waits d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Policy controls attempt timeouts and linear retry backoff.
type Policy struct {
	Timeout    time.Duration
	MaxRetries int
	BaseDelay  time.Duration
}

func DefaultPolicy() Policy {
	return Policy{Timeout: 10 * time.Second, MaxRetries: 3, BaseDelay: time.Second}
}

// Delay returns the wait before retry number attempt (1-based).
func (p Policy) Delay(attempt int) time.Duration {
	return time.Duration(attempt) * p.BaseDelay
}

// Pipeline sends requests with auth headers, per-attempt timeouts and retries.
type Pipeline struct {
	baseURL *url.URL
	creds   Credentials
	online  Connectivity
	doer    Doer
	policy  Policy
	sleep   Sleeper
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

type Option func(*Pipeline)

func WithHTTPClient(d Doer) Option {
	return func(p *Pipeline) { p.doer = d }
}

func WithConnectivity(c Connectivity) Option {
	return func(p *Pipeline) { p.online = c }
}

func WithPolicy(policy Policy) Option {
	return func(p *Pipeline) { p.policy = policy }
}

func WithSleeper(s Sleeper) Option {
	return func(p *Pipeline) { p.sleep = s }
}

func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// NewPipeline creates a pipeline rooted at baseURL.
func NewPipeline(baseURL string, creds Credentials, opts ...Option) (*Pipeline, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("api url must be absolute")
	}

	p := &Pipeline{
		baseURL: parsed,
		creds:   creds,
		online:  AlwaysOnline,
		doer:    &http.Client{},
		policy:  DefaultPolicy(),
		sleep:   sleepContext,
		logger:  slog.New(slog.DiscardHandler),
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With("component", "pipeline")
	return p, nil
}

func (p *Pipeline) resolve(req Request) string {
	endpoint := *p.baseURL
	endpoint.Path = strings.TrimSuffix(endpoint.Path, "/") + "/" + strings.TrimPrefix(req.Path, "/")
	if len(req.Query) > 0 {
		endpoint.RawQuery = req.Query.Encode()
	}
	return endpoint.String()
}

// Send performs the logical request. Failures are returned as *TransportError.
func (p *Pipeline) Send(ctx context.Context, req Request) (*Response, error) {
	requestID := uuid.NewString()
	endpoint := p.resolve(req)

	ctx, span := p.tracer.Start(ctx, req.Method+" "+req.Path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("url.full", endpoint),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var last *TransportError
	for attempt := 0; ; attempt++ {
		if attempt > 0 {
			delay := p.policy.Delay(attempt)
			p.metrics.ObserveRetry()
			p.logger.Debug("retrying request",
				slog.String("request_id", requestID),
				slog.Int("retry", attempt),
				slog.Duration("delay", delay),
			)
			if err := p.sleep(ctx, delay); err != nil {
				last.Err = errors.Join(err, last.Err)
				break
			}
		}

		resp, terr := p.attempt(ctx, req, endpoint, requestID)
		if terr == nil {
			span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
			return resp, nil
		}
		terr.Attempts = attempt + 1
		last = terr

		if ctx.Err() != nil || !terr.Retryable() || attempt >= p.policy.MaxRetries {
			break
		}
	}

	span.RecordError(last)
	span.SetStatus(codes.Error, last.Error())
	p.logger.Warn("request failed",
		slog.String("request_id", requestID),
		slog.String("method", req.Method),
		slog.String("path", req.Path),
		slog.Int("status", last.StatusCode),
		slog.Int("attempts", last.Attempts),
		slog.Bool("offline", last.Offline),
	)
	return nil, last
}

func (p *Pipeline) attempt(ctx context.Context, req Request, endpoint, requestID string) (*Response, *TransportError) {
	terr := &TransportError{Method: req.Method, URL: endpoint}

	if !p.online.Online() {
		terr.Offline = true
		terr.Err = domainErrors.ErrOffline
		p.metrics.ObserveAttempt(req.Method, 0)
		return nil, terr
	}

	attemptCtx, cancel := context.WithTimeout(ctx, p.policy.Timeout)
	defer cancel()

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(attemptCtx, req.Method, endpoint, body)
	if err != nil {
		terr.Err = fmt.Errorf("build request: %w", err)
		return nil, terr
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(RequestIDHeader, requestID)
	if token, ok := p.creds.Token(); ok {
		httpReq.Header.Set(AuthorizationHeader, "Bearer "+token)
	}

	resp, err := p.doer.Do(httpReq)
	if err != nil {
		terr.Err = err
		terr.TimedOut = ctx.Err() == nil && attemptCtx.Err() != nil
		p.metrics.ObserveAttempt(req.Method, 0)
		return nil, terr
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	p.metrics.ObserveAttempt(req.Method, resp.StatusCode)
	if err != nil {
		terr.Err = fmt.Errorf("read body: %w", err)
		terr.TimedOut = ctx.Err() == nil && attemptCtx.Err() != nil
		return nil, terr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		terr.StatusCode = resp.StatusCode
		terr.Body = data
		return nil, terr
	}

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

package soapclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"pkt.systems/jirasoap/internal/soapenc"
	"pkt.systems/jirasoap/internal/version"
	"pkt.systems/jirasoap/schema"
	"pkt.systems/pslog"
)

const (
	// DefaultEndpointPath is the path of the SOAP endpoint below the base URL.
	DefaultEndpointPath = "/rpc/soap/jirasoapservice-v2"
	// DefaultTimeout bounds a single call when the default HTTP client is used.
	DefaultTimeout = 60 * time.Second

	maxResponseBytes = 64 << 20
	tracerName       = "pkt.systems/jirasoap/soapclient"
)

// Client implements schema.Service by calling a remote SOAP endpoint.
type Client struct {
	baseURL   string
	endpoint  string
	path      string
	http      *http.Client
	logger    pslog.Logger
	userAgent string
	tracer    trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client used for calls.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithEndpointPath overrides DefaultEndpointPath.
func WithEndpointPath(path string) Option {
	return func(c *Client) {
		path = strings.TrimSpace(path)
		if path == "" {
			return
		}
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		c.path = path
	}
}

// WithLogger sets the logger used when the call context carries none.
func WithLogger(logger pslog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// New constructs a client for the tracker at baseURL. Dashboard URLs are
// accepted and normalized.
func New(baseURL string, opts ...Option) (*Client, error) {
	normalized, err := NormalizeBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   normalized,
		path:      DefaultEndpointPath,
		userAgent: version.UserAgent(),
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.http == nil {
		c.http = &http.Client{
			Timeout:   DefaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	c.endpoint = c.baseURL + c.path
	return c, nil
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Endpoint returns the full SOAP endpoint URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

func (c *Client) log(ctx context.Context) pslog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return pslog.Ctx(ctx)
}

// call performs one round trip. out must be a pointer to the result, or nil
// for void operations.
func (c *Client) call(ctx context.Context, operation string, out any, args ...any) (err error) {
	start := time.Now()
	ctx, span := c.tracer.Start(ctx, "jirasoap/"+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("rpc.system", "soap"),
			attribute.String("rpc.method", operation),
		),
	)
	status := 0
	defer func() {
		logger := c.log(ctx).With("op", operation)
		fields := []any{"status", status, "duration_ms", time.Since(start).Milliseconds()}
		switch {
		case err == nil:
			span.SetStatus(codes.Ok, "")
			logger.Debug("soap call", fields...)
		case schema.KindOf(err) != "":
			span.SetAttributes(attribute.String("jirasoap.fault", string(schema.KindOf(err))))
			span.SetStatus(codes.Error, err.Error())
			logger.Debug("soap call fault", append(fields, "fault", schema.KindOf(err))...)
		default:
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			logger.Warn("soap call failed", append(fields, "err", err)...)
		}
		span.End()
	}()

	var body bytes.Buffer
	if err := soapenc.EncodeRequest(&body, operation, args...); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return &TransportError{Operation: operation, Err: err}
	}
	req.Header.Set("Content-Type", soapenc.ContentType)
	req.Header.Set("SOAPAction", `""`)
	req.Header.Set("User-Agent", c.userAgent)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Operation: operation, Err: err}
	}
	defer resp.Body.Close()
	status = resp.StatusCode
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusInternalServerError {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &TransportError{Operation: operation, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status %s: %s", resp.Status, strings.TrimSpace(string(snippet)))}
	}
	if err := soapenc.DecodeResponse(io.LimitReader(resp.Body, maxResponseBytes), operation, out); err != nil {
		var fault *schema.Fault
		if errors.As(err, &fault) {
			return fault
		}
		return &TransportError{Operation: operation, StatusCode: resp.StatusCode, Err: err}
	}
	return nil
}

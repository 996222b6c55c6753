package hdns

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultEndpoint is the public API entry point.
	DefaultEndpoint = "https://dns.hetzner.com/api/v1"

	// authHeader carries the access token on every request.
	authHeader = "Auth-API-Token"

	// defaultTimeout bounds calls whose context has no deadline of its own.
	defaultTimeout = 30 * time.Second

	// defaultZoneIDCacheSize is the capacity of the zone name to ID memo.
	defaultZoneIDCacheSize = 128

	tracerName = "github.com/haukened/hdns"
)

// Error message constants for consistent error handling
const (
	errMsgEmptyToken      = "api token must not be empty"
	errMsgInvalidEndpoint = "endpoint must be an absolute URL"
	errMsgNilHTTPClient   = "http client must not be nil"
	errMsgNilLogger       = "logger must not be nil"
	errMsgCacheSize       = "zone id cache size must not be negative"
)

// Doer executes a single HTTP request. *http.Client satisfies it; tests and
// callers with special transport needs substitute their own.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the Hetzner DNS API. Construct it with New; the zero value
// is not usable. A Client holds no per-request state and is safe for
// concurrent use.
type Client struct {
	endpoint        string
	token           string
	httpClient      Doer
	timeout         time.Duration
	log             Logger
	tracer          trace.Tracer
	userAgent       string
	appName         string
	appVersion      string
	zoneIDCacheSize int

	// Zones operates on DNS zones.
	Zones *ZoneClient
	// Records operates on the records within zones.
	Records *RecordClient
	// PrimaryServers operates on primary servers of secondary zones.
	PrimaryServers *PrimaryServerClient
}

// ClientOption adjusts a Client during construction.
type ClientOption func(*Client)

// WithEndpoint points the client at a different API URL, mainly for tests
// and mirrors. Trailing slashes are stripped.
func WithEndpoint(endpoint string) ClientOption {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithHTTPClient substitutes the transport used for all requests.
func WithHTTPClient(httpClient Doer) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout bounds every call that arrives without a context deadline.
// Calls whose context already carries a deadline keep it unchanged. A zero
// duration disables the client-side bound.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithLogger routes client diagnostics to l.
func WithLogger(l Logger) ClientOption {
	return func(c *Client) {
		c.log = l
	}
}

// WithApplication prepends "name/version" to the User-Agent header so API
// logs can attribute traffic to the calling application. Version may be
// empty.
func WithApplication(name, version string) ClientOption {
	return func(c *Client) {
		c.appName = name
		c.appVersion = version
	}
}

// WithZoneIDCacheSize sizes the zone name to ID memo behind
// Zones.IDByName. A size of 0 disables memoization so every lookup hits
// the API.
func WithZoneIDCacheSize(size int) ClientOption {
	return func(c *Client) {
		c.zoneIDCacheSize = size
	}
}

// New creates a Client authenticated by token. The token is required;
// everything else has a default that options can override.
func New(token string, opts ...ClientOption) (*Client, error) {
	if strings.TrimSpace(token) == "" {
		return nil, &ConfigurationError{Reason: errMsgEmptyToken}
	}

	c := &Client{
		endpoint:        DefaultEndpoint,
		token:           token,
		httpClient:      &http.Client{},
		timeout:         defaultTimeout,
		log:             &noopLogger{},
		tracer:          otel.Tracer(tracerName),
		zoneIDCacheSize: defaultZoneIDCacheSize,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		return nil, &ConfigurationError{Reason: errMsgNilHTTPClient}
	}
	if c.log == nil {
		return nil, &ConfigurationError{Reason: errMsgNilLogger}
	}
	if c.timeout < 0 {
		c.timeout = 0
	}

	c.endpoint = strings.TrimRight(c.endpoint, "/")
	u, err := url.Parse(c.endpoint)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return nil, &ConfigurationError{Reason: errMsgInvalidEndpoint}
	}

	c.userAgent = "hdns/" + Version
	if c.appName != "" {
		ua := c.appName
		if c.appVersion != "" {
			ua += "/" + c.appVersion
		}
		c.userAgent = ua + " " + c.userAgent
	}

	if c.zoneIDCacheSize < 0 {
		return nil, &ConfigurationError{Reason: errMsgCacheSize}
	}
	zones := &ZoneClient{client: c}
	if c.zoneIDCacheSize > 0 {
		ids, err := newIDCache(c.zoneIDCacheSize)
		if err != nil {
			return nil, &ConfigurationError{Reason: err.Error()}
		}
		zones.ids = ids
	}
	c.Zones = zones
	c.Records = &RecordClient{client: c}
	c.PrimaryServers = &PrimaryServerClient{client: c}

	return c, nil
}

// request describes one API call before it becomes an *http.Request.
type request struct {
	op       string     // operation name used in traces and logs
	method   string
	path     string     // endpoint-relative, segments already escaped
	query    url.Values // nil or empty values are omitted entirely
	body     any        // JSON-encoded when set
	raw      io.Reader  // plain text body for the zone file endpoints
	resource string     // resource kind reported on 404
	id       string     // resource id reported on 404
}

// apiPath joins path segments, escaping each so identifiers cannot break out
// of their segment.
func apiPath(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return strings.Join(escaped, "/")
}

// ensureDeadline adds the client timeout when the caller's context has no
// deadline of its own. Returns the context and a cancel function if one was
// created.
func (c *Client) ensureDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); !ok && c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return ctx, nil
}

// do runs one request through the shared pipeline: deadline, trace span,
// build, send, decode. out receives the decoded payload; pass nil to discard
// the body, or an *string to capture it verbatim (zone file export).
func (c *Client) do(ctx context.Context, req request, out any) error {
	ctx, cancel := c.ensureDeadline(ctx)
	if cancel != nil {
		defer cancel()
	}

	ctx, span := c.tracer.Start(ctx, req.op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.method),
			attribute.String("url.path", req.path),
		),
	)
	defer span.End()

	err := c.roundTrip(ctx, req, out, span)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// roundTrip sends the request and decodes the response. The response body is
// closed on every path.
func (c *Client) roundTrip(ctx context.Context, req request, out any, span trace.Span) error {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return err
	}

	c.log.Debug(map[string]any{
		"op":     req.op,
		"method": req.method,
		"path":   req.path,
	}, "sending api request")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return c.classifySendError(ctx, req.op, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.classifySendError(ctx, req.op, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := c.errorFromResponse(req, resp.StatusCode, resp.Header, body)
		c.log.Debug(map[string]any{
			"op":     req.op,
			"status": resp.StatusCode,
			"error":  apiErr.Error(),
		}, "api request failed")
		return apiErr
	}

	switch target := out.(type) {
	case nil:
		return nil
	case *string:
		*target = string(body)
		return nil
	default:
		if err := json.Unmarshal(body, out); err != nil {
			return &DecodeError{Message: "unexpected response body", Err: err}
		}
		return nil
	}
}

// buildRequest turns the request description into an *http.Request with
// authentication and content negotiation headers set.
func (c *Client) buildRequest(ctx context.Context, req request) (*http.Request, error) {
	u := c.endpoint + "/" + req.path
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}

	var body io.Reader
	var contentType string
	switch {
	case req.body != nil:
		encoded, err := json.Marshal(req.body)
		if err != nil {
			return nil, &DecodeError{Message: "encoding request body", Err: err}
		}
		body = bytes.NewReader(encoded)
		contentType = "application/json"
	case req.raw != nil:
		body = req.raw
		contentType = "text/plain"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, body)
	if err != nil {
		return nil, &TransportError{Op: req.op, Err: err}
	}

	httpReq.Header.Set(authHeader, c.token)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	return httpReq, nil
}

// classifySendError separates caller-driven cancellation from genuine
// transport failures so the two are never conflated.
func (c *Client) classifySendError(ctx context.Context, op string, err error) error {
	if cerr := ctx.Err(); cerr != nil {
		return &CancelledError{Err: cerr}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &CancelledError{Err: err}
	}
	c.log.Warn(map[string]any{"op": op, "error": err.Error()}, "transport failure")
	return &TransportError{Op: op, Err: err}
}

// errorFromResponse maps a non-2xx response onto the error taxonomy.
func (c *Client) errorFromResponse(req request, status int, header http.Header, body []byte) error {
	msg, details := parseAPIError(body)
	if msg == "" {
		msg = http.StatusText(status)
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &AuthError{StatusCode: status, Message: msg}
	case status == http.StatusNotFound:
		return &NotFoundError{Resource: req.resource, ID: req.id}
	case status == http.StatusConflict:
		return &ConflictError{Message: msg}
	case status == http.StatusUnprocessableEntity:
		return &ValidationError{Message: msg, Fields: details}
	case status == http.StatusTooManyRequests:
		return &RateLimitError{RetryAfter: retryAfter(header), Message: msg}
	default:
		return &ServiceError{StatusCode: status, Message: msg}
	}
}

// retryAfter reads the Retry-After header, which carries either a number of
// seconds or an HTTP-date.
func retryAfter(header http.Header) time.Duration {
	v := header.Get("Retry-After")
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
	}
	return 0
}

var _ Doer = (*http.Client)(nil)

package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/cook/internal/session"
	"github.com/desertthunder/cook/internal/shared"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL  = "http://localhost:8080/api"
	RequestIDHeader = "X-Request-ID"
)

// GatewayOpts configures a [Gateway].
type GatewayOpts struct {
	BaseURL           string
	Session           session.Store
	HTTPClient        *http.Client
	Timeout           time.Duration
	RequestsPerSecond float64 // 0 disables the limiter
	Logger            *log.Logger
}

// Gateway is the single outbound HTTP client for the recipe backend.
type Gateway struct {
	client  *resty.Client
	session session.Store
	limiter *rate.Limiter
	logger  *log.Logger
}

// NewGateway creates a [Gateway]. A nil Session behaves like an empty store.
func NewGateway(opts GatewayOpts) *Gateway {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}
	if opts.Session == nil {
		opts.Session = session.NewMemoryStore("")
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	g := &Gateway{
		session: opts.Session,
		logger:  shared.WithLogger(opts.Logger, "component", "gateway"),
	}
	if opts.RequestsPerSecond > 0 {
		g.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}

	g.client = resty.NewWithClient(opts.HTTPClient).
		SetBaseURL(opts.BaseURL).
		SetLogger(g.logger).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		OnBeforeRequest(g.authorize)
	if opts.Timeout > 0 {
		g.client.SetTimeout(opts.Timeout)
	}

	return g
}

// BaseURL returns the configured backend base URL.
func (g *Gateway) BaseURL() string {
	return g.client.BaseURL
}

// authorize runs before every request: pacing, request id and the bearer token.
func (g *Gateway) authorize(_ *resty.Client, r *resty.Request) error {
	if g.limiter != nil {
		if err := g.limiter.Wait(r.Context()); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	r.SetHeader(RequestIDHeader, shared.GenerateID())

	token, ok, err := g.session.Get(r.Context())
	if err != nil {
		g.logger.Warn("session unavailable, sending request unauthenticated", "error", err)
		return nil
	}
	if ok {
		r.SetAuthToken(token)
	}
	return nil
}

// Do sends a request and decodes a 2xx JSON body into result (when non-nil).
//
// Non-2xx responses are returned as [*shared.APIError] together with the raw response.
func (g *Gateway) Do(ctx context.Context, method, path string, body, result any) (*resty.Response, error) {
	req := g.client.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}

	g.logger.Debug("request", "method", method, "path", path)

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("%s %s: request failed: %w", method, path, err)
	}

	if resp.IsError() || resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		apiErr := &shared.APIError{StatusCode: resp.StatusCode(), Message: messageOf(resp.Body())}
		g.logger.Debug("request rejected", "method", method, "path", path, "status", resp.StatusCode())
		return resp, fmt.Errorf("%s %s: %w", method, path, apiErr)
	}

	if result != nil && len(resp.Body()) > 0 {
		if err := json.Unmarshal(resp.Body(), result); err != nil {
			return resp, fmt.Errorf("%s %s: failed to decode response: %w", method, path, err)
		}
	}

	return resp, nil
}

// Get is [Gateway.Do] with GET.
func (g *Gateway) Get(ctx context.Context, path string, result any) (*resty.Response, error) {
	return g.Do(ctx, http.MethodGet, path, nil, result)
}

// Post is [Gateway.Do] with POST.
func (g *Gateway) Post(ctx context.Context, path string, body, result any) (*resty.Response, error) {
	return g.Do(ctx, http.MethodPost, path, body, result)
}

// Delete is [Gateway.Do] with DELETE.
func (g *Gateway) Delete(ctx context.Context, path string, result any) (*resty.Response, error) {
	return g.Do(ctx, http.MethodDelete, path, nil, result)
}

// messageOf returns the "message" (or "error") field of a JSON object body, or "".
func messageOf(body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	for _, key := range []string{"message", "error", "detail"} {
		if s, ok := payload[key].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

var errNoList = errors.New("response does not contain a list")

// decodeList decodes either a bare JSON array or an object wrapping the array under one of keys.
func decodeList[T any](body []byte, keys ...string) ([]T, error) {
	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "[") {
		var items []T
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, err
		}
		return items, nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return nil, err
	}
	for _, key := range keys {
		raw, ok := wrapper[key]
		if !ok {
			continue
		}
		if string(raw) == "null" {
			return []T{}, nil
		}
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
		return items, nil
	}
	return nil, errNoList
}

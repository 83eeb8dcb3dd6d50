// Package directions is a small typed client for the Mapbox Directions v5 API.
package directions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"smartroute/internal/metrics"
	"smartroute/internal/model"
)

const DefaultBaseURL = "https://api.mapbox.com"

var (
	// ErrMissingToken is returned before any request when no access token is configured.
	ErrMissingToken = errors.New("directions: missing access token")
	// ErrNoRoute means the provider answered but had no usable route.
	ErrNoRoute = errors.New("directions: no route")
)

// HTTPError is a non-2xx provider response. Body is truncated.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("directions: http %d: %s", e.StatusCode, e.Body)
}

// ProviderError is a 200 response whose code is not "Ok".
type ProviderError struct {
	Code    string
	Message string
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return "directions: " + e.Code
	}
	return "directions: " + e.Code + ": " + e.Message
}

func (e *ProviderError) Unwrap() error {
	if e.Code == "NoRoute" || e.Code == "NoSegment" {
		return ErrNoRoute
	}
	return nil
}

// Query is one profile call.
type Query struct {
	Profile     string
	Origin      model.Location
	Destination model.Location
	// Exclude lists road classes to avoid (motorway, toll).
	Exclude []string
	// Local widens snapping for trips inside a known city area.
	Local        bool
	Alternatives bool
}

// ExcludeFor maps request preferences to provider road classes.
func ExcludeFor(req model.RouteRequest) []string {
	var out []string
	if req.AvoidHighways {
		out = append(out, "motorway")
	}
	if req.AvoidTolls {
		out = append(out, "toll")
	}
	return out
}

// Options configures a Client. Zero values get sensible defaults.
type Options struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	RPS     float64
	Burst   int
	HTTP    *http.Client
	Log     *zap.Logger
}

type Client struct {
	baseURL string
	token   string
	timeout time.Duration
	http    *http.Client
	limiter *rate.Limiter
	log     *zap.Logger
}

func NewClient(o Options) *Client {
	c := &Client{
		baseURL: strings.TrimRight(o.BaseURL, "/"),
		token:   o.Token,
		timeout: o.Timeout,
		http:    o.HTTP,
		log:     o.Log,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.timeout <= 0 {
		c.timeout = 10 * time.Second
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	if o.RPS > 0 {
		burst := o.Burst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(o.RPS), burst)
	}
	return c
}

// HasToken reports whether requests can be issued at all.
func (c *Client) HasToken() bool { return c != nil && c.token != "" }

func coord(l model.Location) string {
	return strconv.FormatFloat(l.Lng, 'f', -1, 64) + "," + strconv.FormatFloat(l.Lat, 'f', -1, 64)
}

// URL builds the request URL for q, including the access token.
func (c *Client) URL(q Query) string {
	v := url.Values{}
	v.Set("access_token", c.token)
	v.Set("geometries", "geojson")
	v.Set("steps", "true")
	v.Set("overview", "full")
	v.Set("annotations", "duration,distance,speed,congestion")
	v.Set("alternatives", strconv.FormatBool(q.Alternatives))
	v.Set("continue_straight", "false")
	v.Set("language", "en")
	if len(q.Exclude) > 0 {
		v.Set("exclude", strings.Join(q.Exclude, ","))
	}
	if q.Local {
		v.Set("approaches", "unrestricted;unrestricted")
		v.Set("radiuses", "1000;1000")
	}
	return fmt.Sprintf("%s/directions/v5/mapbox/%s/%s;%s?%s",
		c.baseURL, url.PathEscape(q.Profile), coord(q.Origin), coord(q.Destination), v.Encode())
}

// Routes fetches the alternatives for one profile. Every failure is returned
// as an error; an answer with no usable route is ErrNoRoute.
func (c *Client) Routes(ctx context.Context, q Query) ([]Route, error) {
	if !c.HasToken() {
		return nil, ErrMissingToken
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			c.observe(q.Profile, "error", 0)
			return nil, fmt.Errorf("directions: rate limit: %w", err)
		}
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(q), nil)
	if err != nil {
		return nil, fmt.Errorf("directions: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(q.Profile, "error", time.Since(start))
		return nil, fmt.Errorf("directions: %s: %w", q.Profile, redact(err, c.token))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.observe(q.Profile, "http_error", time.Since(start))
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.observe(q.Profile, "error", time.Since(start))
		return nil, fmt.Errorf("directions: decode %s: %w", q.Profile, err)
	}
	if err := out.Validate(); err != nil {
		outcome := "provider_error"
		if errors.Is(err, ErrNoRoute) {
			outcome = "empty"
		}
		c.observe(q.Profile, outcome, time.Since(start))
		return nil, err
	}
	c.observe(q.Profile, "ok", time.Since(start))
	c.log.Debug("directions ok", zap.String("profile", q.Profile), zap.Int("routes", len(out.Routes)), zap.Duration("took", time.Since(start)))
	return out.Routes, nil
}

func (c *Client) observe(profile, outcome string, d time.Duration) {
	metrics.DirectionsRequests.WithLabelValues(profile, outcome).Inc()
	if d > 0 {
		metrics.DirectionsDuration.WithLabelValues(profile).Observe(d.Seconds())
	}
}

// redact strips the token from url.Error messages so it never reaches logs.
func redact(err error, token string) error {
	var ue *url.Error
	if token == "" || !errors.As(err, &ue) {
		return err
	}
	return &url.Error{Op: ue.Op, URL: strings.ReplaceAll(ue.URL, token, "REDACTED"), Err: ue.Err}
}

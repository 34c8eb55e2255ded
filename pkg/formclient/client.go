// Package formclient submits website form payloads to the notification
// dispatcher and turns the outcome into user-facing status text.
package formclient

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3/client"

	"github.com/securewave/securewave_backend/config"
	"github.com/securewave/securewave_backend/pkg/lead"
)

const defaultTimeout = 15 * time.Second

var ErrNoBaseURL = errors.New("formclient: backend base URL is required")

// Submitter sends one payload for a variant. *Client implements it.
type Submitter interface {
	Submit(ctx context.Context, v lead.Variant, p lead.Payload) Result
}

type Client struct {
	http    *client.Client
	baseURL string
	timeout time.Duration
	logger  *slog.Logger
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New returns a client posting to endpoints under baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, ErrNoBaseURL
	}
	c := &Client{
		http:    client.New(),
		baseURL: baseURL,
		timeout: defaultTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NewFromCentral builds a client from the site section of the configuration.
func NewFromCentral(cfg config.SiteConfig, logger *slog.Logger) (*Client, error) {
	return New(cfg.BackendURL,
		WithTimeout(time.Duration(cfg.RequestTimeoutSeconds)*time.Second),
		WithLogger(logger),
	)
}

type responseBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Submit posts p as JSON to the variant's endpoint. It never returns an
// error; every outcome is described by the Result.
func (c *Client) Submit(ctx context.Context, v lead.Variant, p lead.Payload) Result {
	url := c.baseURL + v.Endpoint

	resp, err := c.http.Post(url, client.Config{
		Ctx:     ctx,
		Timeout: c.timeout,
		Header:  map[string]string{"Accept": "application/json"},
		Body:    p,
	})
	if err != nil {
		c.logger.WarnContext(ctx, "form submission failed", "variant", v.Key, "url", url, "error", err)
		return Result{Kind: KindTransportError, Err: err}
	}
	defer resp.Close()

	res := Result{Code: resp.StatusCode(), StatusText: resp.Status()}
	if res.StatusText == "" {
		res.StatusText = http.StatusText(res.Code)
	}

	var body responseBody
	parsed := resp.JSON(&body) == nil
	res.JSONBody = parsed

	switch {
	case res.Code >= 200 && res.Code < 300:
		res.Kind = KindOk
		if parsed {
			res.Message = body.Message
		}
	case v.AcceptsRedirect && res.Code >= 300 && res.Code < 400:
		res.Kind = KindOk
		res.Location = resp.Header("Location")
	default:
		res.Kind = KindServerError
		if parsed {
			res.Message = body.Error
			if res.Message == "" {
				res.Message = body.Message
			}
		}
	}

	c.logger.DebugContext(ctx, "form submitted",
		"variant", v.Key,
		"status", res.Code,
		"kind", res.Kind.String(),
	)
	return res
}

// Package apiclient gives the editor its remote services: entry CRUD and
// AI suggestions spoken over the REST API.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/eslsoft/jyutcollab/internal/entity"
)

// Client is the shared HTTP plumbing for the editor-facing services.
type Client struct {
	http *resty.Client
}

type Option func(*Client)

// WithToken authenticates every request with the given bearer token.
func WithToken(token string) Option {
	return func(c *Client) {
		c.http.SetAuthToken(token)
	}
}

// WithTimeout overrides the default per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(d)
	}
}

func New(baseURL string, opts ...Option) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return false
			}
			// 只重试幂等读取;写请求交给上层决定。
			if r.Request.Method != http.MethodGet {
				return false
			}
			return r.StatusCode() >= http.StatusInternalServerError
		})
	c := &Client{http: httpClient}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken swaps the bearer token after login.
func (c *Client) SetToken(token string) {
	c.http.SetAuthToken(token)
}

type apiError struct {
	Message string `json:"error"`
}

// decodeError converts a failed response into the matching domain error so
// callers can keep using errors.Is on entity sentinels.
func decodeError(resp *resty.Response) error {
	var payload apiError
	_ = json.Unmarshal(resp.Body(), &payload)
	msg := payload.Message
	if msg == "" {
		msg = resp.Status()
	}

	switch resp.StatusCode() {
	case http.StatusUnauthorized:
		return entity.ErrInvalidToken
	case http.StatusForbidden:
		return entity.ErrPermissionDenied
	case http.StatusNotFound:
		return entity.ErrEntryNotFound
	case http.StatusConflict:
		return entity.ErrDuplicateEntry
	default:
		return fmt.Errorf("api: %s (status %d)", msg, resp.StatusCode())
	}
}

func (c *Client) do(ctx context.Context, build func(*resty.Request) (*resty.Response, error)) (*resty.Response, error) {
	resp, err := build(c.http.R().SetContext(ctx))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("api request: %w", err)
	}
	if resp.IsError() {
		return resp, decodeError(resp)
	}
	return resp, nil
}

package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-dashboard/internal/config"
	"github.com/spec-kit/ticket-dashboard/pkg/util/errorutil"
)

// Requester issues raw calls against the tabular backend. Repositories
// depend on this interface so tests can swap the wire out.
type Requester interface {
	Request(ctx context.Context, endpoint, method string, body any) (json.RawMessage, error)
}

// Client is the authenticated REST adapter for the tabular backend. It does
// not retry: the write-verb fallback is a repository concern because each
// verb is a semantically different request, not a retry of the same one.
type Client struct {
	http   *resty.Client
	cfg    config.BackendConfig
	logger *zap.Logger
}

// NewClient validates backend configuration and builds the adapter. Missing
// base URL or API key fails here, before any network call.
func NewClient(cfg config.BackendConfig, logger *zap.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout()).
		SetHeader("Accept", "application/json").
		SetHeader(cfg.APIKeyHeader, cfg.APIKey)

	return &Client{http: httpClient, cfg: cfg, logger: logger}, nil
}

// Request performs one call and returns the raw JSON body. Non-success
// statuses become APIError; transport failures become NetworkError.
func (c *Client) Request(ctx context.Context, endpoint, method string, body any) (json.RawMessage, error) {
	req := c.http.R().SetContext(ctx)

	if body != nil && isWriteVerb(method) {
		req.SetHeader("Content-Type", "application/json")
		req.SetBody(body)
	}

	resp, err := req.Execute(method, endpoint)
	if err != nil {
		c.logger.Debug("backend unreachable",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.Error(err))
		hint := fmt.Sprintf("unable to connect to %s; check that the backend is up and allows cross-origin requests from this host", c.cfg.BaseURL)
		return nil, errorutil.NewNetworkError(hint, err)
	}

	c.logger.Debug("backend call",
		zap.String("method", method),
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode()))

	if resp.IsError() {
		return nil, errorutil.NewAPIError(resp.StatusCode(), errorMessage(resp))
	}

	return resp.Body(), nil
}

// errorMessage pulls the backend's {message} out of an error body, falling
// back to the HTTP status text.
func errorMessage(resp *resty.Response) string {
	var payload struct {
		Message string `json:"message"`
		Error   struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body(), &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error.Message != "" {
			return payload.Error.Message
		}
	}
	return http.StatusText(resp.StatusCode())
}

func isWriteVerb(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	terrors "github.com/PolarWolf314/tether/internal/errors"
	logger "github.com/PolarWolf314/tether/internal/logging"
	"github.com/hashicorp/go-retryablehttp"
)

// Error is a non-success answer from the backend.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Message)
}

func (e *Error) Unwrap() error {
	return terrors.ErrBackendRejected
}

// Options configures a Client.
type Options struct {
	BaseURL     string
	AccessToken string
	Timeout     time.Duration
	// RetryMax is the number of retries after the first attempt. Zero disables retries.
	RetryMax int
	Logger   logger.Logger
}

// Client talks to the workspace backend over HTTP with bearer authentication.
type Client struct {
	baseURL     string
	accessToken string
	http        *retryablehttp.Client
	log         logger.Logger
}

// NewClient builds a Client; failed requests are retried up to opts.RetryMax times.
func NewClient(opts Options) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = opts.RetryMax
	rc.RetryWaitMin = 250 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.Logger = nil
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	if opts.Timeout > 0 {
		rc.HTTPClient.Timeout = opts.Timeout
	}

	log := opts.Logger
	rc.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
		if attempt > 0 {
			log.Debugf("Retrying %s %s (attempt %d)", req.Method, req.URL.Path, attempt+1)
		}
	}

	return &Client{
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		accessToken: opts.AccessToken,
		http:        rc,
		log:         log,
	}
}

// GetWorkspace returns the workspace with its environments.
func (c *Client) GetWorkspace(ctx context.Context, workspaceID string) (*Workspace, error) {
	var resp workspaceResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/workspace/"+url.PathEscape(workspaceID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Workspace, nil
}

// GetIntegrationOptions returns the catalog of supported providers.
func (c *Client) GetIntegrationOptions(ctx context.Context) ([]IntegrationOption, error) {
	var resp integrationOptionsResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/integration-auth/integration-options", nil, &resp); err != nil {
		return nil, err
	}
	return resp.IntegrationOptions, nil
}

// GetWorkspaceAuthorizations returns the completed provider authorizations of a workspace.
func (c *Client) GetWorkspaceAuthorizations(ctx context.Context, workspaceID string) ([]IntegrationAuth, error) {
	var resp authorizationsResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/workspace/"+url.PathEscape(workspaceID)+"/authorizations", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Authorizations, nil
}

// GetWorkspaceIntegrations returns the configured sync targets of a workspace.
func (c *Client) GetWorkspaceIntegrations(ctx context.Context, workspaceID string) ([]Integration, error) {
	var resp integrationsResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/workspace/"+url.PathEscape(workspaceID)+"/integrations", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Integrations, nil
}

// GetBot returns the workspace bot, or nil when the workspace has none.
func (c *Client) GetBot(ctx context.Context, workspaceID string) (*Bot, error) {
	var resp botResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/bot/"+url.PathEscape(workspaceID), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Bot, nil
}

// GetLatestKey returns the workspace key sealed for the calling user.
func (c *Client) GetLatestKey(ctx context.Context, workspaceID string) (*WorkspaceKey, error) {
	var resp latestKeyResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/key/"+url.PathEscape(workspaceID)+"/latest", nil, &resp); err != nil {
		return nil, err
	}
	if resp.LatestKey == nil {
		return nil, fmt.Errorf("%w: workspace has no key for this user", terrors.ErrBackendRejected)
	}
	return resp.LatestKey, nil
}

// SetBotActiveStatus updates the bot's activation state, handing it botKey when
// activating, and returns the updated bot.
func (c *Client) SetBotActiveStatus(ctx context.Context, botID string, isActive bool, botKey *BotKey) (*Bot, error) {
	req := setBotActiveRequest{IsActive: isActive, BotKey: botKey}
	var resp botResponse
	if err := c.do(ctx, http.MethodPatch, "/api/v1/bot/"+url.PathEscape(botID)+"/active", req, &resp); err != nil {
		return nil, err
	}
	if resp.Bot == nil {
		return nil, fmt.Errorf("%w: response carried no bot", terrors.ErrBackendRejected)
	}
	return resp.Bot, nil
}

// DeleteIntegrationAuth removes a provider authorization.
func (c *Client) DeleteIntegrationAuth(ctx context.Context, integrationAuthID string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/integration-auth/"+url.PathEscape(integrationAuthID), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
	}

	var reqBody any
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	c.log.Debugf("%s %s", method, path)
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", terrors.ErrBackendUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding %s %s response: %v", terrors.ErrBackendRejected, method, path, err)
	}
	return nil
}

func parseError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{StatusCode: resp.StatusCode}
	}

	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil {
		if errResp.Message != "" {
			return &Error{StatusCode: resp.StatusCode, Message: errResp.Message}
		}
		if errResp.Error != "" {
			return &Error{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
	}
	return &Error{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
}

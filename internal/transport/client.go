package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/walkcore/walkcore-client/internal/models"
	"github.com/walkcore/walkcore-client/pkg/metrics"
)

// Client performs typed HTTP calls against the walkcore backend. One method
// per endpoint; every response is decoded into its envelope DTO and returned
// as-is, unwrapping is left to the repository layer.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     *TokenStore
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// NewClient creates a new walkcore backend client
func NewClient(baseURL string, timeout time.Duration, tokens *TokenStore, logger *slog.Logger, m *metrics.Metrics) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		logger:  logger,
		metrics: m,
	}
}

// Register calls POST auth/register
func (c *Client) Register(ctx context.Context, request models.RegisterRequest) (*models.AuthResponse, error) {
	var response models.AuthResponse
	if err := c.call(ctx, http.MethodPost, "/auth/register", request, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// Login calls POST auth/login
func (c *Client) Login(ctx context.Context, request models.LoginRequest) (*models.AuthResponse, error) {
	var response models.AuthResponse
	if err := c.call(ctx, http.MethodPost, "/auth/login", request, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// GetHomeOverview calls GET users/me/overview
func (c *Client) GetHomeOverview(ctx context.Context) (*models.OverviewResponse, error) {
	var response models.OverviewResponse
	if err := c.call(ctx, http.MethodGet, "/users/me/overview", nil, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// GetActiveSession calls GET users/me/sessions/active. The envelope's data
// field is nil when the user has no ongoing session; that is not an error.
func (c *Client) GetActiveSession(ctx context.Context) (*models.ActiveSessionResponse, error) {
	var response models.ActiveSessionResponse
	if err := c.call(ctx, http.MethodGet, "/users/me/sessions/active", nil, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// GetAllSessions calls GET sessions
func (c *Client) GetAllSessions(ctx context.Context) (*models.SessionListResponse, error) {
	var response models.SessionListResponse
	if err := c.call(ctx, http.MethodGet, "/sessions", nil, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// GetSessionDetail calls GET sessions/{id}
func (c *Client) GetSessionDetail(ctx context.Context, sessionID string) (*models.SessionResponse, error) {
	var response models.SessionResponse
	if err := c.call(ctx, http.MethodGet, "/sessions/"+sessionID, nil, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// GetParticipants calls GET sessions/{id}/participants
func (c *Client) GetParticipants(ctx context.Context, sessionID string) (*models.ParticipantListResponse, error) {
	var response models.ParticipantListResponse
	if err := c.call(ctx, http.MethodGet, "/sessions/"+sessionID+"/participants", nil, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// GetLeaderboard calls GET sessions/{id}/leaderboard. Entry order and rank
// values are the backend's; callers must not re-sort.
func (c *Client) GetLeaderboard(ctx context.Context, sessionID string) (*models.LeaderboardResponse, error) {
	var response models.LeaderboardResponse
	if err := c.call(ctx, http.MethodGet, "/sessions/"+sessionID+"/leaderboard", nil, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// CreateSession calls POST sessions
func (c *Client) CreateSession(ctx context.Context, request models.CreateSessionRequest) (*models.SessionResponse, error) {
	var response models.SessionResponse
	if err := c.call(ctx, http.MethodPost, "/sessions", request, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// GetFriends calls GET friends. This endpoint returns a bare
// {friends:[...]} body instead of the usual {data:...} envelope.
func (c *Client) GetFriends(ctx context.Context) (*models.FriendListResponse, error) {
	var response models.FriendListResponse
	if err := c.call(ctx, http.MethodGet, "/friends", nil, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// call performs one HTTP round trip and decodes the response body into out.
// Failures are classified as *NetworkError (transport or malformed body) or
// *APIError (well-formed non-2xx response).
func (c *Client) call(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "failed to marshal request body")
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}

	req.Header.Set("Content-Type", "application/json")
	if token := c.tokens.Get(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.metrics.BackendInFlight(1)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	c.metrics.BackendInFlight(-1)

	if err != nil {
		c.metrics.RecordBackendRequest(path, "network_error", duration)
		c.logger.Error("Backend request failed", "method", method, "url", url, "error", err)
		return &NetworkError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	c.metrics.RecordBackendRequest(path, fmt.Sprintf("%d", resp.StatusCode), duration)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}

		// Best effort: the backend sends a {status,message} envelope on
		// errors, but never rely on it being present.
		var envelope models.ErrorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&envelope); decodeErr == nil {
			apiErr.Status = envelope.Status
			apiErr.Message = envelope.Message
		}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}

		c.logger.Error("Backend returned error",
			"method", method,
			"url", url,
			"status_code", resp.StatusCode,
			"message", apiErr.Message)
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error("Failed to decode backend response", "method", method, "url", url, "error", err)
		return &NetworkError{Op: method + " " + path, Err: errors.Wrap(err, "failed to decode response")}
	}

	c.logger.Debug("Backend request completed",
		"method", method,
		"url", url,
		"status_code", resp.StatusCode,
		"duration", duration)

	return nil
}

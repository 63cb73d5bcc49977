// Package client provides a Go client for the game backend API. It
// undoes the status rewrite the backend performs for the game engine:
// the real outcome of every call is read from the REAL_STATUS header,
// not the wire status.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/iudanet/gamebackend/pkg/api"
)

// RealStatusHeader is the response header carrying the real status
const RealStatusHeader = "REAL_STATUS"

// APIError describes a non-2xx outcome, including serializer-style
// field errors when the server provided them.
type APIError struct {
	FieldErrors api.FieldErrors
	Message     string
	Status      int
}

func (e *APIError) Error() string {
	if len(e.FieldErrors) > 0 {
		return fmt.Sprintf("server error (%d): %v", e.Status, e.FieldErrors)
	}
	return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
}

// Client is an HTTP client for the game backend API
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// New creates a new API client
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken sets the auth token sent on subsequent requests
func (c *Client) SetToken(key string) {
	c.token = key
}

// Register creates a new game account
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*api.UserRecord, error) {
	var resp api.UserRecord
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/users/register", req, &resp); err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp, nil
}

// DeleteUser deletes an account after credential validation
func (c *Client) DeleteUser(ctx context.Context, req api.DeleteUserRequest) error {
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/users/delete", req, nil); err != nil {
		return fmt.Errorf("delete user request failed: %w", err)
	}
	return nil
}

// GetToken validates credentials and returns the account's token. The
// returned key is also installed on the client for later calls.
func (c *Client) GetToken(ctx context.Context, req api.TokenRequest) (string, error) {
	var resp api.TokenResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/token", req, &resp); err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	c.token = resp.Token
	return resp.Token, nil
}

// ListScores returns all submitted scores
func (c *Client) ListScores(ctx context.Context) ([]api.ScoreRecord, error) {
	var resp []api.ScoreRecord
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/scores", nil, &resp); err != nil {
		return nil, fmt.Errorf("list scores request failed: %w", err)
	}
	return resp, nil
}

// SubmitScore submits a score for the authenticated account
func (c *Client) SubmitScore(ctx context.Context, score int64) (*api.ScoreRecord, error) {
	req := map[string]int64{"score": score}
	var resp api.ScoreRecord
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/scores", req, &resp); err != nil {
		return nil, fmt.Errorf("submit score request failed: %w", err)
	}
	return &resp, nil
}

// ListSavegames returns the authenticated account's savegames
func (c *Client) ListSavegames(ctx context.Context) ([]api.SavegameRecord, error) {
	var resp []api.SavegameRecord
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/savegames", nil, &resp); err != nil {
		return nil, fmt.Errorf("list savegames request failed: %w", err)
	}
	return resp, nil
}

// SaveSavegame creates or updates a savegame. Leave record.ID empty
// to create; pass a known id to update that savegame.
func (c *Client) SaveSavegame(ctx context.Context, record api.SavegameRecord) (*api.SavegameRecord, error) {
	req := map[string]string{
		"id":   record.ID,
		"type": record.Type,
		"name": record.Name,
		"data": record.Data,
	}
	var resp api.SavegameRecord
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/savegames", req, &resp); err != nil {
		return nil, fmt.Errorf("save savegame request failed: %w", err)
	}
	return &resp, nil
}

// FilterSavegames returns the account's savegames with an exact type
// match.
func (c *Client) FilterSavegames(ctx context.Context, savegameType string) ([]api.SavegameRecord, error) {
	req := map[string]string{"SavegameType": savegameType}
	var resp []api.SavegameRecord
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/savegames/filter", req, &resp); err != nil {
		return nil, fmt.Errorf("filter savegames request failed: %w", err)
	}
	return resp, nil
}

// doRequest performs an HTTP request against the API
func (c *Client) doRequest(ctx context.Context, method, path string, body, result interface{}) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	status := realStatus(resp)

	if status < 200 || status >= 300 {
		apiErr := &APIError{Status: status}

		var fieldErrors api.FieldErrors
		if err := json.Unmarshal(respBody, &fieldErrors); err == nil && len(fieldErrors) > 0 {
			apiErr.FieldErrors = fieldErrors
			return apiErr
		}

		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
			apiErr.Message = errResp.Message
			return apiErr
		}

		apiErr.Message = strings.TrimSpace(string(respBody))
		return apiErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// realStatus extracts the real status code from the REAL_STATUS
// header, falling back to the wire status when the header is missing.
func realStatus(resp *http.Response) int {
	header := resp.Header.Get(RealStatusHeader)
	if header == "" {
		return resp.StatusCode
	}

	codeStr, _, _ := strings.Cut(header, " ")
	code, err := strconv.Atoi(codeStr)
	if err != nil {
		return resp.StatusCode
	}

	return code
}

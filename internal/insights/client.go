package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client calls the insights endpoints of the data API with a bearer token
// from the TokenManager and normalizes every outcome into either the
// upstream JSON (pretty-printed, unmodified) or a typed error.
type Client struct {
	baseURL string
	client  *http.Client
	tokens  *TokenManager
}

// NewClient creates a gateway for the API at baseURL.
func NewClient(baseURL string, tokens *TokenManager) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
		tokens:  tokens,
	}
}

// Call performs GET {baseURL}/insights/{endpoint}?{query}. A 401 or 403
// invalidates the cached token so the next call re-authenticates; the
// current call still fails — there is no in-call retry.
func (c *Client) Call(ctx context.Context, endpoint string, q Query) (string, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return "", err
	}

	u := fmt.Sprintf("%s/insights/%s", c.baseURL, endpoint)
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", &NetworkError{Op: endpoint + " request", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &NetworkError{Op: endpoint + " request", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &NetworkError{Op: endpoint + " response", Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		c.tokens.Invalidate()
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &ApiError{Status: resp.StatusCode, Body: string(body)}
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", &ParseError{Reason: endpoint + " response is not JSON", Err: err}
	}

	if upErr := domainFailure(payload); upErr != nil {
		return "", upErr
	}

	pretty, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", &ParseError{Reason: "re-encoding " + endpoint + " response", Err: err}
	}
	return string(pretty), nil
}

// domainFailure detects the upstream's in-band failure shape: a body whose
// boolean status flag is false, with error_code/error_msg alongside.
func domainFailure(payload any) *UpstreamError {
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil
	}
	status, ok := obj["status"].(bool)
	if !ok || status {
		return nil
	}

	e := &UpstreamError{Message: "request rejected"}
	if code, ok := obj["error_code"].(float64); ok {
		e.Code = int64(code)
	}
	if msg, ok := obj["error_msg"].(string); ok && msg != "" {
		e.Message = msg
	}
	return e
}

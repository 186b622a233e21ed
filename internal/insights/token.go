package insights

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"patlens/internal/logging"
)

// Tokens are reused only while now < expiresAt - tokenExpiryBuffer, so a
// token is never presented within a minute of its upstream expiry.
const tokenExpiryBuffer = 60 * time.Second

type cachedToken struct {
	value     string
	expiresAt time.Time
}

// TokenManager obtains bearer tokens via the OAuth2 client-credentials
// grant and caches them until shortly before expiry. The mutex is held
// across a refresh; concurrent callers never trigger duplicate fetches.
type TokenManager struct {
	baseURL      string
	clientID     string
	clientSecret string
	client       *http.Client
	diag         *TokenLog
	now          func() time.Time

	mu     sync.Mutex
	cached *cachedToken
}

// NewTokenManager creates a token manager for the API at baseURL.
func NewTokenManager(baseURL, clientID, clientSecret string, diag *TokenLog) *TokenManager {
	return &TokenManager{
		baseURL:      strings.TrimRight(baseURL, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
		client:       &http.Client{Timeout: 10 * time.Second},
		diag:         diag,
		now:          time.Now,
	}
}

// Token returns a bearer token for the data API, reusing the cached one
// while it has more than tokenExpiryBuffer of life left.
func (tm *TokenManager) Token(ctx context.Context) (string, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if tm.cached != nil && tm.now().Before(tm.cached.expiresAt.Add(-tokenExpiryBuffer)) {
		return tm.cached.value, nil
	}
	return tm.refresh(ctx)
}

// Invalidate drops the cached token so the next call re-authenticates.
// The gateway calls this when the data endpoint answers 401 or 403.
func (tm *TokenManager) Invalidate() {
	tm.mu.Lock()
	tm.cached = nil
	tm.mu.Unlock()
}

// refresh performs the client-credentials grant. Caller holds tm.mu.
func (tm *TokenManager) refresh(ctx context.Context) (string, error) {
	if tm.clientID == "" || tm.clientSecret == "" {
		return "", &ConfigError{Reason: "client id and client secret must be set"}
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tm.baseURL+"/oauth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", &NetworkError{Op: "token request", Err: err}
	}
	req.SetBasicAuth(tm.clientID, tm.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := tm.client.Do(req)
	if err != nil {
		return "", &NetworkError{Op: "token request", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &NetworkError{Op: "token response", Err: err}
	}
	tm.diag.Record(body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		tm.cached = nil
		return "", &AuthError{Status: resp.StatusCode, Body: string(body)}
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", &ParseError{Reason: "token response is not JSON", Err: err}
	}

	token, ok := extractToken(payload)
	if !ok {
		return "", &ParseError{Reason: "token response has no recognizable token field"}
	}

	if secs, ok := extractExpiry(payload); ok && secs > 0 {
		tm.cached = &cachedToken{
			value:     token,
			expiresAt: tm.now().Add(time.Duration(secs * float64(time.Second))),
		}
	} else {
		// No declared expiry: nothing is cached, every use re-fetches.
		tm.cached = nil
	}

	logging.Debug("obtained access token (cached=%v)", tm.cached != nil)
	return token, nil
}

// tokenExtractors are tried in order; the first non-empty string wins.
// The set covers the shapes the token endpoint has actually returned.
var tokenExtractors = []func(map[string]any) (string, bool){
	func(m map[string]any) (string, bool) { return stringField(m, "access_token") },
	func(m map[string]any) (string, bool) { return stringField(m, "token") },
	func(m map[string]any) (string, bool) {
		data, ok := m["data"].(map[string]any)
		if !ok {
			return "", false
		}
		return stringField(data, "token")
	},
}

func extractToken(payload map[string]any) (string, bool) {
	for _, extract := range tokenExtractors {
		if token, ok := extract(payload); ok {
			return token, true
		}
	}
	return "", false
}

// extractExpiry reads the expiry-seconds field under either spelling the
// upstream uses.
func extractExpiry(payload map[string]any) (float64, bool) {
	for _, key := range []string{"expires_in", "expiresIn"} {
		if v, ok := payload[key].(float64); ok {
			return v, true
		}
	}
	return 0, false
}

func stringField(m map[string]any, key string) (string, bool) {
	s, ok := m[key].(string)
	return s, ok && s != ""
}

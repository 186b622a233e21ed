package insights

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tokenEndpoint serves /oauth/token with a fixed body and counts requests.
func tokenEndpoint(t *testing.T, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestTokenManager_GrantRequestAndCaching(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/oauth/token", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		id, secret, ok := r.BasicAuth()
		assert.True(t, ok, "credentials should arrive as HTTP basic auth")
		assert.Equal(t, "id-1", id)
		assert.Equal(t, "secret-1", secret)
		assert.Equal(t, "client_credentials", r.PostFormValue("grant_type"))

		w.Write([]byte(`{"access_token":"tok-1","expires_in":1800}`))
	}))
	defer srv.Close()

	tm := NewTokenManager(srv.URL, "id-1", "secret-1", nil)

	first, err := tm.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", first)

	second, err := tm.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", second)

	assert.Equal(t, int32(1), calls.Load(), "second call should reuse the cached token")
}

func TestTokenManager_ExpiryBuffer(t *testing.T) {
	srv, calls := tokenEndpoint(t, `{"access_token":"tok-1","expires_in":120}`)

	tm := NewTokenManager(srv.URL, "id-1", "secret-1", nil)
	base := time.Now()
	current := base
	tm.now = func() time.Time { return current }

	_, err := tm.Token(context.Background())
	require.NoError(t, err)
	require.Equal(t, int32(1), calls.Load())

	// 59s in: still more than the 60s buffer from expiry, reuse.
	current = base.Add(59 * time.Second)
	_, err = tm.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())

	// 61s in: inside the buffer window, refresh.
	current = base.Add(61 * time.Second)
	_, err = tm.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestTokenManager_TokenFieldVariants(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "access_token",
			body: `{"access_token":"tok-a","expires_in":600}`,
			want: "tok-a",
		},
		{
			name: "token",
			body: `{"token":"tok-b","expires_in":600}`,
			want: "tok-b",
		},
		{
			name: "nested data.token",
			body: `{"data":{"token":"tok-c"},"expires_in":600}`,
			want: "tok-c",
		},
		{
			name: "empty access_token falls through",
			body: `{"access_token":"","token":"tok-d","expires_in":600}`,
			want: "tok-d",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := tokenEndpoint(t, tt.body)

			tm := NewTokenManager(srv.URL, "id-1", "secret-1", nil)
			got, err := tm.Token(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokenManager_UnrecognizableTokenResponse(t *testing.T) {
	srv, _ := tokenEndpoint(t, `{"scope":"all","expires_in":600}`)

	tm := NewTokenManager(srv.URL, "id-1", "secret-1", nil)
	_, err := tm.Token(context.Background())

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, http.StatusBadGateway, StatusOf(err))
}

func TestTokenManager_NonJSONTokenResponse(t *testing.T) {
	srv, _ := tokenEndpoint(t, `<html>maintenance</html>`)

	tm := NewTokenManager(srv.URL, "id-1", "secret-1", nil)
	_, err := tm.Token(context.Background())

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func TestTokenManager_UnusableExpiryDisablesCaching(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing", `{"access_token":"tok-1"}`},
		{"zero", `{"access_token":"tok-1","expires_in":0}`},
		{"negative", `{"access_token":"tok-1","expires_in":-30}`},
		{"wrong type", `{"access_token":"tok-1","expires_in":"600"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, calls := tokenEndpoint(t, tt.body)

			tm := NewTokenManager(srv.URL, "id-1", "secret-1", nil)
			for i := 0; i < 2; i++ {
				got, err := tm.Token(context.Background())
				require.NoError(t, err)
				assert.Equal(t, "tok-1", got)
			}
			assert.Equal(t, int32(2), calls.Load(), "without a declared expiry every use must re-fetch")
		})
	}
}

func TestTokenManager_ExpiresInAlternateSpelling(t *testing.T) {
	srv, calls := tokenEndpoint(t, `{"token":"tok-1","expiresIn":900}`)

	tm := NewTokenManager(srv.URL, "id-1", "secret-1", nil)
	for i := 0; i < 2; i++ {
		_, err := tm.Token(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), calls.Load(), "expiresIn should cache like expires_in")
}

func TestTokenManager_TokenEndpointFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid_client"}`))
	}))
	defer srv.Close()

	tm := NewTokenManager(srv.URL, "id-1", "secret-1", nil)
	_, err := tm.Token(context.Background())

	var aerr *AuthError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, http.StatusUnauthorized, aerr.Status)
	assert.Contains(t, aerr.Body, "invalid_client")
	assert.Equal(t, http.StatusUnauthorized, StatusOf(err))
	assert.Nil(t, tm.cached)
}

func TestTokenManager_FailureDropsCachedToken(t *testing.T) {
	var fail atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":"upstream down"}`))
			return
		}
		w.Write([]byte(`{"access_token":"tok-1","expires_in":600}`))
	}))
	defer srv.Close()

	tm := NewTokenManager(srv.URL, "id-1", "secret-1", nil)
	base := time.Now()
	current := base
	tm.now = func() time.Time { return current }

	_, err := tm.Token(context.Background())
	require.NoError(t, err)
	require.NotNil(t, tm.cached)

	fail.Store(true)
	current = base.Add(10 * time.Minute)
	_, err = tm.Token(context.Background())
	require.Error(t, err)
	assert.Nil(t, tm.cached)
}

func TestTokenManager_MissingCredentials(t *testing.T) {
	tm := NewTokenManager("https://connect.example.com", "", "", nil)
	_, err := tm.Token(context.Background())

	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, http.StatusInternalServerError, StatusOf(err))
}

func TestTokenManager_InvalidateForcesRefetch(t *testing.T) {
	srv, calls := tokenEndpoint(t, `{"access_token":"tok-1","expires_in":3600}`)

	tm := NewTokenManager(srv.URL, "id-1", "secret-1", nil)

	_, err := tm.Token(context.Background())
	require.NoError(t, err)
	require.Equal(t, int32(1), calls.Load())

	tm.Invalidate()

	_, err = tm.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestTokenManager_RecordsRawResponses(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// First response carries no expiry, so the second use re-fetches
		// and hits the failure path. Both bodies must land in the log.
		if calls.Add(1) == 1 {
			w.Write([]byte(`{"access_token":"tok-1"}`))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid_client"}`))
	}))
	defer srv.Close()

	fs := afero.NewMemMapFs()
	tm := NewTokenManager(srv.URL, "id-1", "secret-1", NewTokenLog(fs, "/diag/tokens.log"))

	_, err := tm.Token(context.Background())
	require.NoError(t, err)
	_, err = tm.Token(context.Background())
	require.Error(t, err)

	data, err := afero.ReadFile(fs, "/diag/tokens.log")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `{"access_token":"tok-1"}`)
	assert.Contains(t, lines[1], `{"error":"invalid_client"}`)

	for _, line := range lines {
		ts, _, found := strings.Cut(line, " ")
		require.True(t, found)
		_, err := time.Parse(time.RFC3339, ts)
		assert.NoError(t, err, "line should start with an RFC 3339 timestamp")
	}
}

func TestTokenManager_TokenLogFailureIsNotFatal(t *testing.T) {
	srv, _ := tokenEndpoint(t, `{"access_token":"tok-1","expires_in":600}`)

	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	tm := NewTokenManager(srv.URL, "id-1", "secret-1", NewTokenLog(fs, "/diag/tokens.log"))

	got, err := tm.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", got)
}

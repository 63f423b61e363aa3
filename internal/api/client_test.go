package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citefix/citefix-cli/internal/domain"
	"github.com/citefix/citefix-cli/pkg/config"
)

func testClient(t *testing.T, token string, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.Config{
		API:  config.APIConfig{BaseURL: srv.URL, RequestTimeout: 5 * time.Second},
		List: config.ListConfig{PageSize: 9, CacheTTL: time.Minute},
	}
	return New(cfg, func() string { return token }, zerolog.Nop())
}

func TestLoginDecodesTokenAndUser(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "jean@citefix.bj", body["email"])

		json.NewEncoder(w).Encode(map[string]any{
			"token": "tok-abc",
			"user": map[string]any{
				"_id": "u-1", "nom": "Dupont", "prenom": "Jean",
				"email": "jean@citefix.bj", "role": "admin",
			},
		})
	})

	c := testClient(t, "", handler)
	result, err := c.Login(context.Background(), "jean@citefix.bj", "Password1")
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", result.Token)
	assert.Equal(t, "u-1", result.User.ID)
	assert.Equal(t, domain.RoleAdmin, result.User.Role)
	assert.Equal(t, domain.UserStatusActive, result.User.Status, "missing status coerced to default")
}

func TestLoginRejectsMalformedResponse(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"token": ""})
	})
	c := testClient(t, "", handler)
	_, err := c.Login(context.Background(), "a@b.c", "pw")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestBackendMessageSurfaces(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"message": "Cet email est déjà utilisé"})
	})
	c := testClient(t, "", handler)

	_, err := c.Signup(context.Background(), SignupRequest{Email: "a@b.c", Password: "Password1"})
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "Cet email est déjà utilisé", apiErr.Message)
	assert.Equal(t, "Cet email est déjà utilisé", UserMessage(err, "fallback"))
}

func TestUserMessageFallsBack(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	c := testClient(t, "", handler)
	_, err := c.Me(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Erreur serveur", UserMessage(err, "Erreur serveur"))
}

func TestUnauthorizedMatchesSentinel(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	c := testClient(t, "tok-stale", handler)
	_, err := c.Me(context.Background())
	assert.True(t, errors.Is(err, ErrUnauthorized))
}

func TestBearerTokenAttached(t *testing.T) {
	var got string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(domain.User{ID: "u-1", Email: "a@b.c"})
	})
	c := testClient(t, "tok-xyz", handler)
	_, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-xyz", got)
}

func TestAnonymousRequestHasNoBearer(t *testing.T) {
	var sawHeader bool
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawHeader = r.Header.Get("Authorization") != ""
		json.NewEncoder(w).Encode(listEnvelope[domain.Signalement]{Data: []domain.Signalement{}})
	})
	c := testClient(t, "", handler)
	_, err := c.ListSignalements(context.Background())
	require.NoError(t, err)
	assert.False(t, sawHeader)
}

func TestLogoutUsesExplicitToken(t *testing.T) {
	var got string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	})
	// The token source is already empty, as it is after a local logout.
	c := testClient(t, "", handler)
	require.NoError(t, c.Logout(context.Background(), "tok-snapshot"))
	assert.Equal(t, "Bearer tok-snapshot", got)
}

package server

import (
	"net/http"
	"testing"

	"github.com/gumallc/loanspa-ssp-v2/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_CreatesUserAndSession(t *testing.T) {
	srv, _ := newTestServer(t, &stubBroadcaster{})
	client := startTestServer(t, srv)

	resp := client.do(http.MethodPost, "/api/register", map[string]string{
		"username": "jane.doe",
		"password": "supersecret",
		"fullName": "Jane Doe",
		"email":    "jane@example.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	user := decodeJSON[domain.User](t, resp)
	assert.Equal(t, "jane.doe", user.Username)
	assert.Equal(t, "Jane Doe", user.FullName)
	assert.NotZero(t, user.ID)

	// The register response sets a session cookie, so /api/user works
	// without a separate login.
	resp = client.do(http.MethodGet, "/api/user", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	current := decodeJSON[domain.User](t, resp)
	assert.Equal(t, user.ID, current.ID)
}

func TestRegister_RejectsDuplicateUsername(t *testing.T) {
	srv, _ := newTestServer(t, &stubBroadcaster{})
	client := startTestServer(t, srv)

	resp := client.do(http.MethodPost, "/api/register", map[string]string{
		"username": "adam.smith",
		"password": "supersecret",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRegister_RejectsShortPassword(t *testing.T) {
	srv, _ := newTestServer(t, &stubBroadcaster{})
	client := startTestServer(t, srv)

	resp := client.do(http.MethodPost, "/api/register", map[string]string{
		"username": "jane.doe",
		"password": "short",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLogin_SucceedsWithSeededUser(t *testing.T) {
	srv, _ := newTestServer(t, &stubBroadcaster{})
	client := startTestServer(t, srv)

	userID := client.login()
	assert.NotZero(t, userID)

	resp := client.do(http.MethodGet, "/api/user", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	user := decodeJSON[domain.User](t, resp)
	assert.Equal(t, "adam.smith", user.Username)
	assert.Empty(t, user.PasswordHash)
}

func TestLogin_RejectsWrongPassword(t *testing.T) {
	srv, _ := newTestServer(t, &stubBroadcaster{})
	client := startTestServer(t, srv)

	resp := client.do(http.MethodPost, "/api/login", map[string]string{
		"username": "adam.smith",
		"password": "wrongpassword",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_RejectsUnknownUser(t *testing.T) {
	srv, _ := newTestServer(t, &stubBroadcaster{})
	client := startTestServer(t, srv)

	resp := client.do(http.MethodPost, "/api/login", map[string]string{
		"username": "nobody",
		"password": "password123",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_ReplacesUndecodableSessionCookie(t *testing.T) {
	srv, _ := newTestServer(t, &stubBroadcaster{})
	client := startTestServer(t, srv)

	// A cookie signed with a rotated secret, or tampered with, no longer
	// decodes. Login must still succeed and issue a fresh session.
	client.setSessionCookie("garbage-not-decodable")

	resp := client.do(http.MethodPost, "/api/login", map[string]string{
		"username": "adam.smith",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	user := decodeJSON[domain.User](t, resp)

	resp = client.do(http.MethodGet, "/api/user", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	current := decodeJSON[domain.User](t, resp)
	assert.Equal(t, user.ID, current.ID)
}

func TestLogout_ExpiresUndecodableSessionCookie(t *testing.T) {
	srv, _ := newTestServer(t, &stubBroadcaster{})
	client := startTestServer(t, srv)
	client.setSessionCookie("garbage-not-decodable")

	resp := client.do(http.MethodPost, "/api/logout", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestLogout_ClearsSession(t *testing.T) {
	srv, _ := newTestServer(t, &stubBroadcaster{})
	client := startTestServer(t, srv)
	client.login()

	resp := client.do(http.MethodPost, "/api/logout", nil)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = client.do(http.MethodGet, "/api/user", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRoutes_RequireAuth(t *testing.T) {
	srv, _ := newTestServer(t, &stubBroadcaster{})
	client := startTestServer(t, srv)

	paths := []string{
		"/api/user",
		"/api/loans",
		"/api/transactions",
		"/api/rewards",
		"/api/credit-score",
		"/api/notifications",
	}
	for _, path := range paths {
		resp := client.do(http.MethodGet, path, nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "path %s", path)
	}
}

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/gumallc/loanspa-ssp-v2/internal/config"
	"github.com/gumallc/loanspa-ssp-v2/internal/domain"
	"github.com/gumallc/loanspa-ssp-v2/internal/store"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

// stubBroadcaster records push calls without a real WebSocket layer.
type stubBroadcaster struct {
	mu            sync.Mutex
	registered    []int64
	notifications []*domain.Notification
	countPushes   []int64
}

func (s *stubBroadcaster) Register(userID int64, _ *websocket.Conn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registered = append(s.registered, userID)
	return nil
}

func (s *stubBroadcaster) Unregister(int64, *websocket.Conn) {}

func (s *stubBroadcaster) PushNewNotification(_ int64, n *domain.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append(s.notifications, n)
}

func (s *stubBroadcaster) PushUnreadCount(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.countPushes = append(s.countPushes, userID)
}

func (s *stubBroadcaster) pushedNotifications() []*domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*domain.Notification(nil), s.notifications...)
}

func (s *stubBroadcaster) countPushUsers() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.countPushes...)
}

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:             "test",
		Port:               "0",
		SessionSecret:      "test-session-secret-0123456789",
		MaxClientsPerUser:  10,
		WSMaxConnections:   100,
		WSMaxPerIP:         100,
		WSConnectionsRate:  1000,
		WSConnectionsBurst: 1000,
	}
}

func newTestServer(t *testing.T, broadcaster pushBroadcaster) (*Server, *store.MemStore) {
	t.Helper()

	st := store.New(clockwork.NewRealClock())
	require.NoError(t, st.Seed(context.Background()))

	return NewServer(testConfig(), st, broadcaster), st
}

// testClient wraps an HTTP client with a cookie jar pointed at a running
// test server, so session cookies survive across requests.
type testClient struct {
	t      *testing.T
	base   string
	client *http.Client
}

func startTestServer(t *testing.T, srv *Server) *testClient {
	t.Helper()

	ts := httptest.NewServer(srv.echo)
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testClient{
		t:      t,
		base:   ts.URL,
		client: &http.Client{Jar: jar},
	}
}

func (c *testClient) do(method, path string, body any) *http.Response {
	c.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, c.base+path, reader)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	require.NoError(c.t, err)
	return resp
}

// setSessionCookie plants a raw session cookie value in the jar, bypassing
// the server. Used to simulate cookies that no longer decode.
func (c *testClient) setSessionCookie(value string) {
	c.t.Helper()

	u, err := url.Parse(c.base)
	require.NoError(c.t, err)
	c.client.Jar.SetCookies(u, []*http.Cookie{{Name: sessionName, Value: value}})
}

func decodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// login authenticates as the seeded demo user and returns their id.
func (c *testClient) login() int64 {
	c.t.Helper()

	resp := c.do(http.MethodPost, "/api/login", map[string]string{
		"username": "adam.smith",
		"password": "password123",
	})
	require.Equal(c.t, http.StatusOK, resp.StatusCode)

	user := decodeJSON[domain.User](c.t, resp)
	return user.ID
}

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardpulse/realtime-gateway/internal/auth"
	"github.com/wardpulse/realtime-gateway/internal/gateway"
	"github.com/wardpulse/realtime-gateway/internal/middleware"
	"github.com/wardpulse/realtime-gateway/internal/models"
	"github.com/wardpulse/realtime-gateway/internal/outbox"
)

const testSecret = "handler-test-secret"

type staticDirectory struct {
	users map[string]auth.User
}

func (d *staticDirectory) Lookup(_ context.Context, userID string) (auth.User, error) {
	u, ok := d.users[userID]
	if !ok {
		return auth.User{}, auth.ErrUserNotFound
	}
	return u, nil
}

func signToken(t *testing.T, userID string, lifetime time.Duration) string {
	t.Helper()
	claims := auth.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(lifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Second)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func newTestServer(t *testing.T) (*httptest.Server, *gateway.Gateway) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authenticator := auth.New(testSecret, &staticDirectory{users: map[string]auth.User{
		"u1": {ID: "u1", Role: models.RoleDoctor, Department: "ICU", IsActive: true},
	}})
	gw := gateway.New(outbox.Nop{}, nil)

	router := gin.New()
	router.GET("/ws", ServeWS(gw, authenticator))
	router.GET("/api/status", Status(gw))
	presence := router.Group("/api/presence", middleware.RequireAuth(authenticator))
	presence.GET("", Presence(gw))
	presence.GET("/roles/:role", PresenceByRole(gw))

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, gw
}

func wsURL(srv *httptest.Server, token string) string {
	u := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	if token != "" {
		u += "?token=" + token
	}
	return u
}

func TestHandshakeAndDelivery(t *testing.T) {
	srv, gw := newTestServer(t)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, signToken(t, "u1", time.Hour)), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return gw.Count() == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, gw.CountByRole(models.RoleDoctor))
	assert.Equal(t, 1, gw.CountByDepartment("ICU"))

	delivered := gw.SystemNotification(models.Notification{Message: "hello"})
	assert.Equal(t, 1, delivered)

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var env models.Envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.Equal(t, models.EventSystemNotification, env.Event)
}

func TestHandshakeRefusedWithoutToken(t *testing.T) {
	srv, gw := newTestServer(t)

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, ""), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 0, gw.Count())
}

func TestHandshakeRefusedWithExpiredToken(t *testing.T) {
	srv, gw := newTestServer(t)

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, signToken(t, "u1", -time.Hour)), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// the refused connection never appears in any room
	assert.Equal(t, 0, gw.Count())
	assert.Equal(t, 0, gw.CountByRole(models.RoleDoctor))
}

func TestHandshakeRefusedForUnknownUser(t *testing.T) {
	srv, gw := newTestServer(t)

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, signToken(t, "ghost", time.Hour)), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 0, gw.Count())
}

func TestStatusEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(0), body["onlineUsers"])
}

func TestPresenceEndpointRequiresAuth(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/presence")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, _ := http.NewRequest("GET", srv.URL+"/api/presence", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u1", time.Hour))
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var report models.PresenceReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, 0, report.Online)
}

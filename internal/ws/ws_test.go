package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rangecard/backend/internal/cartridges"
	"github.com/rangecard/backend/internal/config"
	"github.com/rangecard/backend/internal/solutions"
)

func newService() *solutions.Service {
	cfg := &config.Config{Gravity: 9.76398, TrajectorySteps: 200, MaxBatchSize: 4}
	return solutions.NewService(cfg, cartridges.NewMemoryStore(cartridges.Builtin()))
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestTrajectoryStream(t *testing.T) {
	svc := newService()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeTrajectory(svc, w, r)
	}))
	defer srv.Close()

	conn := dial(t, srv)
	require.NoError(t, conn.WriteJSON(solutions.Request{MuzzleVelocity: 900, Range: 500, Steps: 10}))

	for i := 0; i <= 10; i++ {
		var msg StreamMessage
		require.NoError(t, conn.ReadJSON(&msg))
		assert.Equal(t, TypePoint, msg.Type)
		assert.Equal(t, i, msg.Index)
		require.NotNil(t, msg.Point)
	}

	var done StreamMessage
	require.NoError(t, conn.ReadJSON(&done))
	assert.Equal(t, TypeDone, done.Type)
	require.NotNil(t, done.Result)
	assert.True(t, done.Result.Solution.Ok())
	assert.Empty(t, done.Result.Trajectory)
}

func TestTrajectoryStreamNoSolutionAndErrors(t *testing.T) {
	svc := newService()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeTrajectory(svc, w, r)
	}))
	defer srv.Close()

	conn := dial(t, srv)

	require.NoError(t, conn.WriteJSON(solutions.Request{CartridgeID: "9mm-ae-115", Range: 1e6}))
	var msg StreamMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, TypeNoSolution, msg.Type)

	require.NoError(t, conn.WriteJSON(solutions.Request{MuzzleVelocity: 900, Range: -1}))
	msg = StreamMessage{}
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, TypeError, msg.Type)
	assert.Contains(t, msg.Message, "range must be positive")
}

func TestHubBroadcast(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(hub.ServeFeed))
	defer srv.Close()

	conn := dial(t, srv)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Broadcast([]byte(`{"type":"solution","caliber":".308 Winchester"}`))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got map[string]string
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, ".308 Winchester", got["caliber"])
}

func TestHubStopReleasesClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	hub := NewHub()
	go hub.Run(ctx)

	served := make(chan struct{}, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeFeed(w, r)
		served <- struct{}{}
	}))
	defer srv.Close()

	before := dial(t, srv)
	<-served
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-hub.done:
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop")
	}
	assert.Equal(t, 0, hub.ClientCount())

	// the connected client is closed by the hub
	before.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := before.ReadMessage()
	assert.Error(t, err)

	// a late client must not block on registration
	after := dial(t, srv)
	select {
	case <-served:
	case <-time.After(2 * time.Second):
		t.Fatal("ServeFeed blocked after the hub stopped")
	}
	after.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = after.ReadMessage()
	assert.Error(t, err)
	assert.Equal(t, 0, hub.ClientCount())
}

package sync

import (
	"bufio"
	"encoding/json"
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTCPClientsReceiveCatalogEvents(t *testing.T) {
	hub := NewHub()
	srv := NewServer("127.0.0.1:0", hub)
	require.NoError(t, srv.Listen())

	done := make(chan error, 1)
	go func() { done <- srv.Run() }()

	conn, err := net.Dial("tcp", srv.ListenAddr().String())
	require.NoError(t, err)
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	r := bufio.NewReader(conn)
	welcome, err := r.ReadString('\n')
	require.NoError(t, err)
	assert.Contains(t, welcome, `"type":"welcome"`)

	require.Eventually(t, func() bool { return hub.Stats().TCPClients == 1 }, time.Second, 5*time.Millisecond)

	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	hub.PublishCatalog(CatalogEvent{Type: EventCatalogReloaded, SnapshotID: "snap-1", Items: 12, At: at})

	line, err := r.ReadString('\n')
	require.NoError(t, err)

	var got CatalogEvent
	require.NoError(t, json.Unmarshal([]byte(line), &got))
	assert.Equal(t, CatalogEvent{Type: EventCatalogReloaded, SnapshotID: "snap-1", Items: 12, At: at}, got)

	last, ok := hub.Last()
	require.True(t, ok)
	assert.Equal(t, "snap-1", last.SnapshotID)

	require.NoError(t, srv.Close())
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.Equal(t, 0, hub.Count())
}

func TestWSReplaysLastEvent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub()
	hub.PublishCatalog(CatalogEvent{Type: EventCatalogFailed, Error: "boom", At: time.Now().UTC()})

	r := gin.New()
	r.GET("/ws", WSHandler(hub))
	ts := httptest.NewServer(r)
	defer ts.Close()

	ws, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer ws.Close()
	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))

	_, welcome, err := ws.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(welcome), "websocket")

	var replay CatalogEvent
	require.NoError(t, ws.ReadJSON(&replay))
	assert.Equal(t, EventCatalogFailed, replay.Type)
	assert.Equal(t, "boom", replay.Error)

	require.Eventually(t, func() bool { return hub.Stats().WSClients == 1 }, time.Second, 5*time.Millisecond)
	hub.PublishCatalog(CatalogEvent{Type: EventCatalogReloaded, Items: 3})

	var next CatalogEvent
	require.NoError(t, ws.ReadJSON(&next))
	assert.Equal(t, EventCatalogReloaded, next.Type)
	assert.Equal(t, 3, next.Items)
}

func TestWSRegisteredBeforeWelcome(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub()

	r := gin.New()
	r.GET("/ws", WSHandler(hub))
	ts := httptest.NewServer(r)
	defer ts.Close()

	ws, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer ws.Close()
	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))

	_, welcome, err := ws.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(welcome), "welcome")
	assert.Equal(t, 1, hub.Stats().WSClients)

	// published right after the welcome, with nothing to replay
	hub.PublishCatalog(CatalogEvent{Type: EventCatalogReloaded, SnapshotID: "snap-2", Items: 5})

	var got CatalogEvent
	require.NoError(t, ws.ReadJSON(&got))
	assert.Equal(t, "snap-2", got.SnapshotID)
}

package ws

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptdeck/promptdeck/internal/domain/prompt"
	"github.com/promptdeck/promptdeck/internal/shared/types"
)

type stateMessage struct {
	Type     string          `json:"type"`
	ClientID string          `json:"client_id"`
	State    types.StateView `json:"state"`
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func setup(t *testing.T) (*prompt.Manager, *Handler, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := prompt.NewManager(nil)
	h := NewHandler(store, nil, nil)
	h.Start()

	router := gin.New()
	router.GET("/ws", h.HandleConnection)
	srv := httptest.NewServer(router)

	t.Cleanup(func() {
		srv.Close()
		h.Stop()
	})
	return store, h, srv
}

func readState(t *testing.T, conn *websocket.Conn) stateMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg stateMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestInitialStateOnConnect(t *testing.T) {
	store, _, srv := setup(t)
	store.SetPrompt("hello world")

	conn := dial(t, srv)
	defer conn.Close()

	msg := readState(t, conn)
	assert.Equal(t, "state", msg.Type)
	assert.NotEmpty(t, msg.ClientID)
	assert.Equal(t, "hello world", msg.State.OriginalPrompt)
}

func TestBroadcastOnMutation(t *testing.T) {
	store, _, srv := setup(t)

	conn := dial(t, srv)
	defer conn.Close()
	readState(t, conn) // initial state

	store.SetPrompt("updated")

	msg := readState(t, conn)
	assert.Equal(t, "state", msg.Type)
	assert.Equal(t, "updated", msg.State.OriginalPrompt)
}

func TestPingPong(t *testing.T) {
	_, _, srv := setup(t)

	conn := dial(t, srv)
	defer conn.Close()
	readState(t, conn)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "ping"}))

	var msg map[string]interface{}
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "pong", msg["type"])
}

func TestSyncRequest(t *testing.T) {
	store, _, srv := setup(t)
	store.SetPrompt("resync me")

	conn := dial(t, srv)
	defer conn.Close()
	readState(t, conn)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "sync"}))
	msg := readState(t, conn)
	assert.Equal(t, "resync me", msg.State.OriginalPrompt)
}

func TestUnknownMessageType(t *testing.T) {
	_, _, srv := setup(t)

	conn := dial(t, srv)
	defer conn.Close()
	readState(t, conn)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "teleport"}))

	var msg map[string]interface{}
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "error", msg["type"])
}

func TestClientCountTracksDisconnects(t *testing.T) {
	_, h, srv := setup(t)

	conn := dial(t, srv)
	readState(t, conn)
	assert.Equal(t, 1, h.ClientCount())

	conn.Close()
	deadline := time.Now().Add(2 * time.Second)
	for h.ClientCount() != 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	assert.Equal(t, 0, h.ClientCount())
}

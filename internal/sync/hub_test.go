package sync

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evodex/pkg/logger"
)

func TestHubBroadcastsToWebsocketClients(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub()
	r := gin.New()
	r.GET("/ws", WSHandler(hub, logger.Nop()))
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, welcome, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(welcome), "welcome")

	require.Eventually(t, func() bool { return hub.Stats().WSClients == 1 }, time.Second, 10*time.Millisecond)

	hub.BroadcastJSON(RecordEvent{Type: RecordSavedEvent, NameSlug: "ashketchum", Version: 1, CaughtCount: 3})

	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	var ev RecordEvent
	require.NoError(t, json.Unmarshal(msg, &ev))
	assert.Equal(t, RecordSavedEvent, ev.Type)
	assert.Equal(t, "ashketchum", ev.NameSlug)
	assert.Equal(t, 3, ev.CaughtCount)

	hub.CloseAll()
	assert.Equal(t, 0, hub.Stats().WSClients)
}

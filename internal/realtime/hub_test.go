package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/munasbate/backend/internal/models"
)

// dialPair spins up a websocket echo endpoint and returns the server-side
// connection (what the hub holds) and the client side (what the test reads).
func dialPair(t *testing.T) (server, client *websocket.Conn) {
	t.Helper()

	upgrader := websocket.Upgrader{}
	accepted := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		accepted <- conn
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	server = <-accepted
	return server, client
}

func TestHub_AddAndIsOnline(t *testing.T) {
	hub := NewHub()
	server, _ := dialPair(t)

	assert.False(t, hub.IsOnline("1234567"))
	hub.Add("1234567", server)
	assert.True(t, hub.IsOnline("1234567"))
	assert.Equal(t, []string{"1234567"}, hub.OnlineIDs())
}

func TestHub_ReconnectReplacesConnection(t *testing.T) {
	hub := NewHub()
	first, firstClient := dialPair(t)
	second, _ := dialPair(t)

	hub.Add("1234567", first)
	hub.Add("1234567", second)

	// The superseded connection is closed; its client sees EOF.
	firstClient.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := firstClient.ReadMessage()
	assert.Error(t, err)

	// Removing with the stale handle must not evict the new connection.
	hub.Remove("1234567", first)
	assert.True(t, hub.IsOnline("1234567"))

	hub.Remove("1234567", second)
	assert.False(t, hub.IsOnline("1234567"))
}

func TestHub_PushMessageReachesBothParticipants(t *testing.T) {
	hub := NewHub()
	senderConn, senderClient := dialPair(t)
	receiverConn, receiverClient := dialPair(t)

	hub.Add("1234567", senderConn)
	hub.Add("7654321", receiverConn)

	message := &models.Message{SenderUserID: "1234567", ReceiverUserID: "7654321", Content: "Hello"}
	hub.PushMessage(message)

	for _, client := range []*websocket.Conn{senderClient, receiverClient} {
		client.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, payload, err := client.ReadMessage()
		require.NoError(t, err)

		var event struct {
			Event   string         `json:"event"`
			Message models.Message `json:"message"`
		}
		require.NoError(t, json.Unmarshal(payload, &event))
		assert.Equal(t, "message", event.Event)
		assert.Equal(t, "Hello", event.Message.Content)
	}
}

func TestHub_StalledClientDoesNotBlockOtherDeliveries(t *testing.T) {
	hub := NewHub()
	stalledConn, _ := dialPair(t)
	senderConn, senderClient := dialPair(t)
	receiverConn, receiverClient := dialPair(t)

	hub.Add("5555555", stalledConn)
	hub.Add("1234567", senderConn)
	hub.Add("7654321", receiverConn)

	// Hold the stalled client's write lock, as a write to a wedged peer
	// would. Deliveries between the other two users must still go through.
	hub.mu.RLock()
	stalled := hub.conns["5555555"]
	hub.mu.RUnlock()
	stalled.writeMu.Lock()
	defer stalled.writeMu.Unlock()

	done := make(chan struct{})
	go func() {
		hub.PushMessage(&models.Message{SenderUserID: "1234567", ReceiverUserID: "7654321", Content: "Hello"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("delivery blocked behind an unrelated stalled connection")
	}

	for _, client := range []*websocket.Conn{senderClient, receiverClient} {
		client.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, _, err := client.ReadMessage()
		require.NoError(t, err)
	}
}

func TestHub_PushToOfflineUserIsNoOp(t *testing.T) {
	hub := NewHub()
	message := &models.Message{SenderUserID: "1234567", ReceiverUserID: "7654321", Content: "Hello"}
	hub.PushMessage(message)
}

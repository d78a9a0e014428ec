package sse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	hub.Start()
	t.Cleanup(hub.Stop)
	return hub
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.ClientCount() == n }, time.Second, 5*time.Millisecond)
}

func receive(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case evt := <-c.EventChannel:
		return evt
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestHub_BroadcastRespectsFilters(t *testing.T) {
	hub := startHub(t)

	all := hub.Register(nil)
	huntsOnly := hub.Register([]string{EventTypeHuntCompleted})
	waitForClients(t, hub, 2)

	hub.Broadcast(EventTypePlayerLevelUp, PlayerLevelUpPayload{NewLevel: 2})
	hub.Broadcast(EventTypeHuntCompleted, HuntCompletedPayload{AreaID: "goblin-cave"})

	assert.Equal(t, EventTypePlayerLevelUp, receive(t, all).Type)
	assert.Equal(t, EventTypeHuntCompleted, receive(t, all).Type)

	got := receive(t, huntsOnly)
	assert.Equal(t, EventTypeHuntCompleted, got.Type)
	assert.NotEmpty(t, got.ID)
	assert.Empty(t, huntsOnly.EventChannel)
}

func TestHub_UnregisterClosesChannel(t *testing.T) {
	hub := startHub(t)
	c := hub.Register(nil)
	waitForClients(t, hub, 1)

	hub.Unregister(c.ID)
	waitForClients(t, hub, 0)

	_, open := <-c.EventChannel
	assert.False(t, open)
}

func TestHub_StopIsIdempotent(t *testing.T) {
	hub := NewHub()
	hub.Start()
	c := hub.Register(nil)
	waitForClients(t, hub, 1)

	hub.Stop()
	hub.Stop()

	_, open := <-c.EventChannel
	assert.False(t, open)
	hub.Unregister(c.ID)
}

func TestFormatSSEMessage(t *testing.T) {
	msg, err := FormatSSEMessage(Event{ID: "abc", Type: EventTypeAreaUnlocked, Timestamp: 10, Payload: AreaUnlockedPayload{AreaID: "spider-den"}})
	require.NoError(t, err)

	text := string(msg)
	assert.True(t, strings.HasPrefix(text, "id: abc\nevent: area.unlocked\ndata: {"))
	assert.Contains(t, text, `"area_id":"spider-den"`)
	assert.True(t, strings.HasSuffix(text, "\n\n"))
}

func TestHandler_StreamsEvents(t *testing.T) {
	hub := startHub(t)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/events?types=hunt.completed", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		Handler(hub).ServeHTTP(rec, req)
		close(done)
	}()

	waitForClients(t, hub, 1)
	hub.Broadcast(EventTypePlayerLevelUp, PlayerLevelUpPayload{NewLevel: 2})
	hub.Broadcast(EventTypeHuntCompleted, HuntCompletedPayload{AreaID: "goblin-cave"})
	waitForClients(t, hub, 1)
	time.Sleep(50 * time.Millisecond)

	cancel()
	<-done

	body := rec.Body.String()
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Contains(t, body, "event: connected")
	assert.Contains(t, body, "event: hunt.completed")
	assert.NotContains(t, body, "event: player.level_up")
}

package sse

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ZetaFarm_Go/internal/clock"
	"github.com/osse101/ZetaFarm_Go/internal/domain"
	"github.com/osse101/ZetaFarm_Go/internal/event"
)

const (
	alice = "0xaaaa"
	bob   = "0xbbbb"
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
	case evt, ok := <-c.EventChannel:
		require.True(t, ok, "channel closed")
		return evt
	case <-time.After(time.Second):
		t.Fatal("no event received")
		return Event{}
	}
}

func TestHub_RoutesByAddressAndType(t *testing.T) {
	hub := startHub(t)

	all := hub.Register(alice, nil)
	harvests := hub.Register(alice, []string{string(event.CropHarvested)})
	other := hub.Register(bob, nil)
	waitForClients(t, hub, 3)

	hub.Broadcast(Event{Type: string(event.CropPlanted), Address: alice})
	hub.Broadcast(Event{Type: string(event.CropHarvested), Address: alice})

	first := receive(t, all)
	assert.Equal(t, string(event.CropPlanted), first.Type)
	assert.NotEmpty(t, first.ID, "broadcast assigns an id")
	assert.Equal(t, string(event.CropHarvested), receive(t, all).Type)

	assert.Equal(t, string(event.CropHarvested), receive(t, harvests).Type)

	select {
	case evt := <-other.EventChannel:
		t.Fatalf("bob received alice's event %+v", evt)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_UnregisterClosesChannel(t *testing.T) {
	hub := startHub(t)

	c := hub.Register(alice, nil)
	waitForClients(t, hub, 1)

	hub.Unregister(c.ID)
	waitForClients(t, hub, 0)

	_, ok := <-c.EventChannel
	assert.False(t, ok)
}

func TestHub_StopIsIdempotent(t *testing.T) {
	hub := NewHub()
	hub.Start()
	c := hub.Register(alice, nil)
	waitForClients(t, hub, 1)

	hub.Stop()
	hub.Stop()

	_, ok := <-c.EventChannel
	assert.False(t, ok)
	assert.Equal(t, 0, hub.ClientCount())
}

func TestFormatSSEMessage(t *testing.T) {
	msg, err := FormatSSEMessage(Event{ID: "1", Type: "crop.planted", Address: alice, Timestamp: 42})
	require.NoError(t, err)

	text := string(msg)
	assert.True(t, strings.HasPrefix(text, "id: 1\nevent: crop.planted\ndata: {"))
	assert.True(t, strings.HasSuffix(text, "}\n\n"))
	assert.Contains(t, text, `"address":"0xaaaa"`)
}

func TestSubscriber_ForwardsFarmEvents(t *testing.T) {
	hub := startHub(t)
	bus := event.NewMemoryBus()
	NewSubscriber(hub, clock.NewMock(1000)).Subscribe(bus)

	c := hub.Register(alice, nil)
	waitForClients(t, hub, 1)

	payload := domain.CropPayloadV1{Address: alice, PlotID: 2, CropID: "radish"}
	require.NoError(t, bus.Publish(context.Background(), event.NewCropEvent(event.CropPlanted, event.SourcePlayer, payload)))

	evt := receive(t, c)
	assert.Equal(t, string(event.CropPlanted), evt.Type)
	assert.Equal(t, alice, evt.Address)
	assert.Equal(t, int64(1000), evt.Timestamp)
	assert.Equal(t, payload, evt.Payload)
}

func TestHandler_RequiresAddress(t *testing.T) {
	hub := startHub(t)

	rec := httptest.NewRecorder()
	Handler(hub)(rec, httptest.NewRequest(http.MethodGet, "/farm/events", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Streams(t *testing.T) {
	hub := startHub(t)
	srv := httptest.NewServer(Handler(hub))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"?address="+alice+"&types=crop.planted,%20crop.harvested", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	readEventType := func() string {
		for {
			line, err := reader.ReadString('\n')
			require.NoError(t, err)
			if strings.HasPrefix(line, "event: ") {
				return strings.TrimSpace(strings.TrimPrefix(line, "event: "))
			}
		}
	}

	assert.Equal(t, EventTypeConnected, readEventType())

	waitForClients(t, hub, 1)
	hub.Broadcast(Event{Type: string(event.FruitSold), Address: alice})
	hub.Broadcast(Event{Type: string(event.CropHarvested), Address: alice})

	assert.Equal(t, string(event.CropHarvested), readEventType(), "filtered types are skipped")

	cancel()
	waitForClients(t, hub, 0)
}

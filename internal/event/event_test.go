package event

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T) *SSEServer {
	t.Helper()
	server := NewSSEServer()
	go server.Run()
	return server
}

func receive(t *testing.T, client chan Event) Event {
	t.Helper()
	select {
	case ev := <-client:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestSSEServerDeliversOnlyToTopic(t *testing.T) {
	server := startServer(t)

	a := make(chan Event, 1)
	b := make(chan Event, 1)
	server.Register("store:a", a)
	server.Register("store:b", b)
	defer server.Unregister("store:a", a)
	defer server.Unregister("store:b", b)

	require.NoError(t, server.Publish(context.Background(), Event{Topic: "store:a", Type: EventTypeFocus}))

	ev := receive(t, a)
	assert.Equal(t, EventTypeFocus, ev.Type)

	select {
	case ev := <-b:
		t.Fatalf("unexpected event on other topic: %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSSEServerUnregisterClosesClient(t *testing.T) {
	server := startServer(t)

	client := make(chan Event, 1)
	server.Register("store:a", client)
	server.Unregister("store:a", client)
	server.Unregister("store:a", client)

	_, ok := <-client
	assert.False(t, ok)

	require.NoError(t, server.Publish(context.Background(), Event{Topic: "store:a", Type: EventTypeStorage}))
}

func TestSSEServerPublishHonoursContext(t *testing.T) {
	server := NewSSEServer() // not running

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := server.Publish(ctx, Event{Topic: "store:a"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRedisRelay(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	local := startServer(t)
	relay := NewRedisRelay(client, local)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ready := make(chan struct{})
	done := make(chan error, 1)
	go func() { done <- relay.Run(ctx, ready) }()

	select {
	case <-ready:
	case <-time.After(2 * time.Second):
		t.Fatal("relay never subscribed")
	}

	sub := make(chan Event, 1)
	local.Register("store:xyz", sub)
	defer local.Unregister("store:xyz", sub)

	err := relay.Publish(ctx, Event{
		Topic: "store:xyz",
		Type:  EventTypeMessage,
		Data:  map[string]string{"storeid": "CVS001"},
	})
	require.NoError(t, err)

	ev := receive(t, sub)
	assert.Equal(t, EventTypeMessage, ev.Type)
	assert.Equal(t, "CVS001", ev.Data["storeid"])

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("relay did not stop")
	}
}

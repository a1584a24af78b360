package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
	"github.com/katatrina/plg-shop/internal/event"
	"github.com/katatrina/plg-shop/internal/selection"
	"github.com/katatrina/plg-shop/internal/storage"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProcessor(t *testing.T) (*RedisTaskProcessor, *selection.Channel) {
	t.Helper()
	hub := event.NewSSEServer()
	go hub.Run()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	channel := selection.NewChannel(storage.NewRedisStore(client), hub, hub)
	return &RedisTaskProcessor{channel: channel}, channel
}

func discardTask(t *testing.T, scope, storeID string) *asynq.Task {
	t.Helper()
	data, err := json.Marshal(PayloadDiscardSelection{Scope: scope, StoreID: storeID})
	require.NoError(t, err)
	return asynq.NewTask(TaskDiscardSelection, data)
}

func TestProcessTaskDiscardSelection(t *testing.T) {
	processor, channel := newTestProcessor(t)
	ctx := context.Background()

	require.NoError(t, channel.Write(ctx, "scope-1", selection.SelectedStore{ID: "F001"}))
	require.NoError(t, processor.ProcessTaskDiscardSelection(ctx, discardTask(t, "scope-1", "F001")))

	store, err := channel.Read(ctx, "scope-1")
	require.NoError(t, err)
	assert.Nil(t, store)
}

func TestProcessTaskDiscardSelectionKeepsNewerStore(t *testing.T) {
	processor, channel := newTestProcessor(t)
	ctx := context.Background()

	require.NoError(t, channel.Write(ctx, "scope-1", selection.SelectedStore{ID: "U002"}))
	require.NoError(t, processor.ProcessTaskDiscardSelection(ctx, discardTask(t, "scope-1", "F001")))

	store, err := channel.Read(ctx, "scope-1")
	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, "U002", store.ID)

	// Không có gì để xóa cũng không phải lỗi.
	require.NoError(t, processor.ProcessTaskDiscardSelection(ctx, discardTask(t, "scope-2", "F001")))
}

func TestProcessTaskDiscardSelectionBadPayload(t *testing.T) {
	processor, _ := newTestProcessor(t)

	err := processor.ProcessTaskDiscardSelection(context.Background(), asynq.NewTask(TaskDiscardSelection, []byte("{")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}

func TestDiscardTaskID(t *testing.T) {
	assert.Equal(t, "selection:discard:scope-1", discardTaskID("scope-1"))
}

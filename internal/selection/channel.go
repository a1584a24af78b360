package selection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/katatrina/plg-shop/internal/event"
	"github.com/katatrina/plg-shop/internal/storage"
	"github.com/katatrina/plg-shop/internal/util"
	"github.com/rs/zerolog/log"
)

const subscriberBuffer = 8

// Channel owns the currently selected pickup store of a checkout scope.
// Values live in durable storage; cross-window notifications travel as events on the scope topic.
type Channel struct {
	store     storage.KV
	publisher event.Publisher
	hub       event.EventSender
}

func NewChannel(store storage.KV, publisher event.Publisher, hub event.EventSender) *Channel {
	return &Channel{
		store:     store,
		publisher: publisher,
		hub:       hub,
	}
}

func Topic(scope string) string {
	return util.ScopeKey("store", scope)
}

func storageKey(scope string) string {
	return util.ScopeKey(StorageKey, scope)
}

// Write overwrites the stored value, then notifies other windows of the scope.
func (c *Channel) Write(ctx context.Context, scope string, store SelectedStore) error {
	if err := c.persist(ctx, scope, store); err != nil {
		return err
	}

	if err := c.publisher.Publish(ctx, event.Event{Topic: Topic(scope), Type: event.EventTypeStorage}); err != nil {
		// Giá trị đã được lưu; cửa sổ chính vẫn có thể đọc lại khi được focus.
		log.Warn().Err(err).Str("scope", scope).Msg("failed to publish storage event")
	}

	return nil
}

func (c *Channel) persist(ctx context.Context, scope string, store SelectedStore) error {
	if !store.Valid() {
		return ErrMissingStoreID
	}

	data, err := json.Marshal(store)
	if err != nil {
		return fmt.Errorf("failed to marshal selected store: %w", err)
	}

	if err = c.store.Set(ctx, storageKey(scope), data, 0); err != nil {
		return fmt.Errorf("failed to persist selected store: %w", err)
	}

	return nil
}

// Read returns nil when nothing valid is stored. A corrupted entry is removed.
func (c *Channel) Read(ctx context.Context, scope string) (*SelectedStore, error) {
	data, err := c.store.Get(ctx, storageKey(scope))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read selected store: %w", err)
	}

	var store SelectedStore
	if err = json.Unmarshal(data, &store); err != nil || !store.Valid() {
		log.Warn().Str("scope", scope).Msg("discarding malformed selected store")
		if delErr := c.store.Del(ctx, storageKey(scope)); delErr != nil {
			log.Error().Err(delErr).Str("scope", scope).Msg("failed to remove malformed selected store")
		}
		return nil, nil
	}

	if store.Name == "" {
		store.Name = store.ID
	}
	return &store, nil
}

func (c *Channel) Clear(ctx context.Context, scope string) error {
	if err := c.store.Del(ctx, storageKey(scope)); err != nil {
		return fmt.Errorf("failed to clear selected store: %w", err)
	}
	return nil
}

// PostMessage is the best-effort cross-window message from the picker popup to its opener.
func (c *Channel) PostMessage(ctx context.Context, scope string, payload map[string]string) error {
	return c.publisher.Publish(ctx, event.Event{Topic: Topic(scope), Type: event.EventTypeMessage, Data: payload})
}

// Focus tells subscribers that the opener regained focus and should reconcile with storage.
func (c *Channel) Focus(ctx context.Context, scope string) error {
	return c.publisher.Publish(ctx, event.Event{Topic: Topic(scope), Type: event.EventTypeFocus})
}

// Subscribe emits the selected store every time a storage change, focus or valid message arrives for scope.
// It never writes to storage. The returned cancel function must be called to release the subscription.
func (c *Channel) Subscribe(ctx context.Context, scope string) (<-chan SelectedStore, func()) {
	topic := Topic(scope)
	events := make(chan event.Event, subscriberBuffer)
	c.hub.Register(topic, events)

	out := make(chan SelectedStore, subscriberBuffer)
	subCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer close(out)

		for {
			select {
			case <-subCtx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					return
				}

				store, ok := c.resolve(subCtx, scope, ev)
				if !ok {
					continue
				}

				select {
				case out <- store:
				case <-subCtx.Done():
					return
				}
			}
		}
	}()

	return out, func() {
		cancel()
		c.hub.Unregister(topic, events)
		<-done
	}
}

func (c *Channel) resolve(ctx context.Context, scope string, ev event.Event) (SelectedStore, bool) {
	switch ev.Type {
	case event.EventTypeStorage, event.EventTypeFocus:
		store, err := c.Read(ctx, scope)
		if err != nil {
			log.Error().Err(err).Str("scope", scope).Msg("failed to sync selected store")
			return SelectedStore{}, false
		}
		if store == nil {
			return SelectedStore{}, false
		}
		return *store, true

	case event.EventTypeMessage:
		// Người gửi đã ghi vào kho trước khi gửi tin nhắn; ở đây chỉ thông báo.
		return FromPayload(ev.Data)
	}

	return SelectedStore{}, false
}

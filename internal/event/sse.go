package event

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const clientSendTimeout = time.Second

type SSEServer struct {
	clients map[string]map[chan Event]bool
	events  chan Event
	mu      sync.Mutex
}

func NewSSEServer() *SSEServer {
	return &SSEServer{
		clients: make(map[string]map[chan Event]bool),
		events:  make(chan Event),
	}
}

// Register đăng ký client vào topic.
func (s *SSEServer) Register(topic string, client chan Event) {
	s.mu.Lock()
	if _, ok := s.clients[topic]; !ok {
		s.clients[topic] = make(map[chan Event]bool)
	}
	s.clients[topic][client] = true
	total := len(s.clients[topic])
	s.mu.Unlock()
	log.Debug().Msgf("New client registered to topic %s. Total clients: %d", topic, total)
}

// Unregister hủy đăng ký client khỏi topic.
func (s *SSEServer) Unregister(topic string, client chan Event) {
	s.mu.Lock()
	remaining := 0
	if clients, ok := s.clients[topic]; ok {
		if clients[client] {
			delete(clients, client)
			close(client)
		}
		remaining = len(clients)
		if remaining == 0 {
			delete(s.clients, topic)
		}
	}
	s.mu.Unlock()
	log.Debug().Msgf("Client unregistered from topic %s. Remaining clients: %d", topic, remaining)
}

// Broadcast gửi sự kiện tới tất cả client của topic
func (s *SSEServer) Broadcast(event Event) {
	s.events <- event
}

// Publish is Broadcast bounded by ctx.
func (s *SSEServer) Publish(ctx context.Context, event Event) error {
	select {
	case s.events <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run xử lý luồng sự kiện
func (s *SSEServer) Run() {
	for event := range s.events {
		s.deliver(event)
	}
}

// deliver holds the lock while sending so Unregister never closes a channel mid-send.
func (s *SSEServer) deliver(event Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for client := range s.clients[event.Topic] {
		select {
		case client <- event:
		case <-time.After(clientSendTimeout):
			log.Warn().Str("topic", event.Topic).Str("type", event.Type).Msg("dropped event for slow client")
		}
	}
}

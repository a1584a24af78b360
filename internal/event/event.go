package event

import (
	"context"
)

// Event đại diện cho một sự kiện trong hệ thống
type Event struct {
	Topic string            `json:"topic"` // Ví dụ: "store:<scope>"
	Type  string            `json:"type"`  // Loại sự kiện: storage, focus, message
	Data  map[string]string `json:"data,omitempty"`
}

const (
	EventTypeStorage     = "storage"      // Giá trị trong kho đã thay đổi
	EventTypeFocus       = "focus"        // Cửa sổ chính được focus lại
	EventTypeMessage     = "message"      // Tin nhắn từ cửa sổ popup
	EventTypePickerError = "picker_error" // Popup chọn cửa hàng gặp lỗi
)

// EventSender là interface cho đại diện cho server gửi sự kiện đến client
type EventSender interface {
	Register(topic string, client chan Event)
	Unregister(topic string, client chan Event)
	Broadcast(event Event)
	Run()
}

// Publisher delivers an event to every subscriber of its topic, possibly on other instances.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

package picker

import (
	"github.com/katatrina/plg-shop/internal/backend"
)

const (
	// WindowName must stay stable so every open targets the same popup.
	WindowName     = "plgStorePicker"
	WindowFeatures = "width=980,height=700,scrollbars=yes"

	LoadingMessage = "門市載入中..."
)

// Window is the popup hosting the provider's store map.
type Window interface {
	Name() string
	WriteLoading(message string) error
	// SubmitForm navigates the window to the provider by posting form into it.
	SubmitForm(form *backend.FormPost) error
	Close(reason string) error
	Closed() bool
}

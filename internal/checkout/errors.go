package checkout

import (
	"errors"

	"github.com/katatrina/plg-shop/internal/backend"
	"github.com/katatrina/plg-shop/internal/payment"
)

const (
	genericErrorMessage       = "發生未知錯誤"
	invalidAmountErrorMessage = "訂單金額有誤，請確認購物車內容"
)

// InputError is a problem the shopper can fix and resubmit.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return e.Field + ": " + e.Message
}

func inputError(field, message string) *InputError {
	return &InputError{Field: field, Message: message}
}

// DisplayMessage converts err into text safe to show inline on the checkout page.
func DisplayMessage(err error) string {
	if err == nil {
		return ""
	}

	var inputErr *InputError
	if errors.As(err, &inputErr) {
		return inputErr.Message
	}

	var backendErr *backend.Error
	if errors.As(err, &backendErr) {
		return backendErr.Message
	}

	if errors.Is(err, payment.ErrInvalidAmount) {
		return invalidAmountErrorMessage
	}

	if errors.Is(err, ErrUnknownShippingMethod) {
		return "不支援的配送方式"
	}

	return genericErrorMessage
}

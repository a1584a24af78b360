package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/katatrina/plg-shop/internal/checkout"
	"github.com/katatrina/plg-shop/internal/logistics"
)

func ValidateString(value string, minLength int, maxLength int) error {
	n := utf8.RuneCountInString(strings.TrimSpace(value))
	if n < minLength || n > maxLength {
		return fmt.Errorf("must contain from %d to %d characters", minLength, maxLength)
	}

	return nil
}

// ValidateAddress checks a home-delivery address before it is stored in the draft.
func ValidateAddress(address checkout.Address) error {
	if err := ValidateString(address.City, 1, 20); err != nil {
		return fmt.Errorf("city %w", err)
	}
	if err := ValidateString(address.District, 1, 20); err != nil {
		return fmt.Errorf("district %w", err)
	}
	if err := ValidateString(address.Detail, 1, 200); err != nil {
		return fmt.Errorf("detail %w", err)
	}

	return nil
}

var shippingMethod validator.Func = func(fl validator.FieldLevel) bool {
	if method, ok := fl.Field().Interface().(checkout.ShippingMethod); ok {
		return method.Valid()
	}
	return checkout.ShippingMethod(fl.Field().String()).Valid()
}

var pickupMethod validator.Func = func(fl validator.FieldLevel) bool {
	return checkout.ShippingMethod(fl.Field().String()).Pickup()
}

var carrier validator.Func = func(fl validator.FieldLevel) bool {
	switch logistics.Carrier(fl.Field().String()) {
	case logistics.CarrierFami, logistics.CarrierSeven:
		return true
	}
	return false
}

// Register adds the shop specific binding tags: shipping_method, pickup_method and carrier.
func Register(v *validator.Validate) error {
	if err := v.RegisterValidation("shipping_method", shippingMethod); err != nil {
		return err
	}
	if err := v.RegisterValidation("pickup_method", pickupMethod); err != nil {
		return err
	}
	return v.RegisterValidation("carrier", carrier)
}

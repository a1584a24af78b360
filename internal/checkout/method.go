package checkout

import (
	"errors"

	"github.com/katatrina/plg-shop/internal/logistics"
)

var ErrUnknownShippingMethod = errors.New("unknown shipping method")

type ShippingMethod string

const (
	ShippingFamilyMart  ShippingMethod = "familymart"
	ShippingSevenEleven ShippingMethod = "seveneleven"
	ShippingHome        ShippingMethod = "home"
)

type ShippingOption struct {
	Method      ShippingMethod
	Label       string
	Description string
	Fee         int64
	// SubType is the provider code of the pickup network; empty for home delivery.
	SubType string
}

var shippingOptions = []ShippingOption{
	{
		Method:      ShippingFamilyMart,
		Label:       "全家店到店",
		Description: "選擇門市，約 3-5 天到貨",
		Fee:         80,
		SubType:     logistics.SubTypeFamilyMart,
	},
	{
		Method:      ShippingSevenEleven,
		Label:       "7-11 店到店",
		Description: "選擇門市，約 3-5 天到貨",
		Fee:         80,
		SubType:     logistics.SubTypeUnimart,
	},
	{
		Method:      ShippingHome,
		Label:       "宅配到府",
		Description: "填寫收件地址，約 2-3 天到貨",
		Fee:         100,
	},
}

// ShippingOptions returns the offered methods in display order.
func ShippingOptions() []ShippingOption {
	return append([]ShippingOption(nil), shippingOptions...)
}

func (m ShippingMethod) Option() (ShippingOption, error) {
	for _, opt := range shippingOptions {
		if opt.Method == m {
			return opt, nil
		}
	}
	return ShippingOption{}, ErrUnknownShippingMethod
}

func (m ShippingMethod) Valid() bool {
	_, err := m.Option()
	return err == nil
}

// Pickup reports whether the method delivers to a convenience store.
func (m ShippingMethod) Pickup() bool {
	opt, err := m.Option()
	return err == nil && opt.SubType != ""
}

// SubType returns the provider code; ok is false when the method has no store picker.
func (m ShippingMethod) SubType() (string, bool) {
	opt, err := m.Option()
	if err != nil || opt.SubType == "" {
		return "", false
	}
	return opt.SubType, true
}

// Fee is a pure function of the method; unknown methods cost nothing.
func (m ShippingMethod) Fee() int64 {
	opt, _ := m.Option()
	return opt.Fee
}

type PaymentMethod string

const PaymentECPay PaymentMethod = "ecpay"

type PaymentOption struct {
	Method PaymentMethod
	Label  string
}

var paymentOptions = []PaymentOption{{Method: PaymentECPay, Label: "綠界支付"}}

func PaymentOptions() []PaymentOption {
	return append([]PaymentOption(nil), paymentOptions...)
}

func (p PaymentMethod) Valid() bool {
	for _, opt := range paymentOptions {
		if opt.Method == p {
			return true
		}
	}
	return false
}

// DefaultShippingMethod is preselected on a fresh draft.
const DefaultShippingMethod = ShippingFamilyMart

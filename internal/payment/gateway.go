package payment

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/katatrina/plg-shop/internal/backend"
	"github.com/katatrina/plg-shop/internal/selection"
	"github.com/katatrina/plg-shop/internal/util"
	"github.com/rs/zerolog/log"
)

const orderDescription = "PLG order"

var ErrInvalidAmount = errors.New("order total must be positive")

type OrderItem struct {
	ProductID        int64  `json:"productId"`
	Quantity         int64  `json:"quantity"`
	Name             string `json:"name,omitempty"`
	PriceCents       int64  `json:"priceCents"`
	ShopifyVariantID *int64 `json:"shopifyVariantId,omitempty"`
}

type Address struct {
	City     string `json:"city"`
	District string `json:"district"`
	Detail   string `json:"detail"`
}

type Shipping struct {
	Method  string                   `json:"method"`
	Address *Address                 `json:"address,omitempty"`
	Store   *selection.SelectedStore `json:"store,omitempty"`
}

type Totals struct {
	Subtotal    int64 `json:"subtotal"`
	ShippingFee int64 `json:"shippingFee"`
	Total       int64 `json:"total"`
}

// Order is the payload the backend stores alongside the gateway trade.
type Order struct {
	Items    []OrderItem `json:"items"`
	Shipping Shipping    `json:"shipping"`
	Totals   Totals      `json:"totals"`
}

type CheckoutResult struct {
	TradeNo string
	Form    *backend.FormPost
}

// Gateway hands an order over to the external payment provider.
type Gateway interface {
	Checkout(ctx context.Context, creds backend.Credentials, order Order) (*CheckoutResult, error)
}

type ECPayGateway struct {
	client *backend.Client
	now    func() time.Time
}

func NewECPayGateway(client *backend.Client) *ECPayGateway {
	return &ECPayGateway{
		client: client,
		now:    time.Now,
	}
}

// Checkout tạo mã giao dịch mới và lấy form thanh toán từ backend.
func (g *ECPayGateway) Checkout(ctx context.Context, creds backend.Credentials, order Order) (*CheckoutResult, error) {
	if order.Totals.Total <= 0 {
		return nil, ErrInvalidAmount
	}

	tradeNo := util.GenerateTradeNo(g.now())

	form, err := g.client.CreateGatewayCheckout(ctx, creds, backend.GatewayCheckoutRequest{
		TradeNo:     tradeNo,
		TotalAmount: strconv.FormatInt(order.Totals.Total, 10),
		Description: orderDescription,
		Order:       order,
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("trade_no", tradeNo).Int64("total", order.Totals.Total).Msg("gateway checkout created ✅")
	return &CheckoutResult{TradeNo: tradeNo, Form: form}, nil
}

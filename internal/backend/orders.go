package backend

import (
	"context"
	"net/http"
	"strconv"
)

const ordersFallbackMessage = "無法取得訂單資訊，請稍後再試"

type OrderItem struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Quantity int64   `json:"quantity"`
	Price    string  `json:"price"`
	SKU      *string `json:"sku,omitempty"`
}

type OrderSummary struct {
	ID                int64       `json:"id"`
	Name              string      `json:"name"`
	Number            int64       `json:"number"`
	CreatedAt         string      `json:"createdAt"`
	FinancialStatus   string      `json:"financialStatus"`
	FulfillmentStatus *string     `json:"fulfillmentStatus"`
	Currency          string      `json:"currency"`
	TotalPrice        string      `json:"totalPrice"`
	SubtotalPrice     string      `json:"subtotalPrice"`
	LineItems         []OrderItem `json:"lineItems"`
	ShippingMethod    *string     `json:"shippingMethod,omitempty"`
	MerchantTradeNo   string      `json:"merchantTradeNo,omitempty"`
	Tags              *string     `json:"tags,omitempty"`
}

// FetchOrders returns the most recent orders of the shopper.
func (c *Client) FetchOrders(ctx context.Context, creds Credentials, limit int) ([]OrderSummary, error) {
	if limit <= 0 {
		limit = 10
	}

	var result struct {
		Orders []OrderSummary `json:"orders"`
	}
	req := c.request(ctx, creds).
		SetQueryParam("limit", strconv.Itoa(limit)).
		SetResult(&result)
	if err := do(req, http.MethodGet, "/api/orders/orders", ordersFallbackMessage); err != nil {
		return nil, err
	}

	return result.Orders, nil
}

type MapTokenRequest struct {
	LogisticsSubType string `json:"logisticsSubType"`
	ExtraData        string `json:"extraData"`
}

// RequestMapToken asks the backend for a signed form that opens the provider's store map.
func (c *Client) RequestMapToken(ctx context.Context, creds Credentials, arg MapTokenRequest) (*FormPost, error) {
	return c.postForm(ctx, creds, "/api/logistics/map-token", arg, "無法開啟門市選擇，請稍後重試")
}

type PrintWaybillRequest struct {
	LogisticsID     string `json:"logisticsId,omitempty"`
	MerchantTradeNo string `json:"merchantTradeNo,omitempty"`
	Preview         bool   `json:"preview,omitempty"`
}

// PrintWaybill requests the print form of a convenience-store waybill. carrier is "fami" or "seven".
func (c *Client) PrintWaybill(ctx context.Context, creds Credentials, carrier string, arg PrintWaybillRequest) (*FormPost, error) {
	return c.postForm(ctx, creds, "/api/logistics/"+carrier+"/print-waybill", arg, ordersFallbackMessage)
}

type GatewayCheckoutRequest struct {
	TradeNo     string `json:"tradeNo"`
	TotalAmount string `json:"totalAmount"`
	Description string `json:"description"`
	Order       any    `json:"order"`
}

// CreateGatewayCheckout returns the gateway form that hands the shopper over to the payment provider.
func (c *Client) CreateGatewayCheckout(ctx context.Context, creds Credentials, arg GatewayCheckoutRequest) (*FormPost, error) {
	return c.postForm(ctx, creds, "/api/ecpay/checkout", arg, "建立訂單失敗")
}

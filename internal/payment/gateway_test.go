package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/katatrina/plg-shop/internal/backend"
	"github.com/katatrina/plg-shop/internal/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestECPayGatewayCheckout(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ecpay/checkout", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(backend.FormPost{
			Action: "https://payment.example/Cashier/AioCheckOut/V5",
			Fields: map[string]string{"MerchantTradeNo": received["tradeNo"].(string)},
		})
	}))
	defer server.Close()

	client := backend.NewClient(server.URL, time.Second)
	defer client.Close()

	gateway := NewECPayGateway(client)
	gateway.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	order := Order{
		Items: []OrderItem{{ProductID: 1, Quantity: 2, PriceCents: 500}},
		Shipping: Shipping{
			Method: "familymart",
			Store:  &selection.SelectedStore{ID: "F1", Name: "Fami"},
		},
		Totals: Totals{Subtotal: 1000, ShippingFee: 80, Total: 1080},
	}

	result, err := gateway.Checkout(context.Background(), backend.Credentials{}, order)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result.TradeNo, "EC260102030405"))
	assert.Equal(t, result.TradeNo, result.Form.Fields["MerchantTradeNo"])
	assert.Equal(t, "1080", received["totalAmount"])
	assert.Equal(t, orderDescription, received["description"])

	shipping := received["order"].(map[string]any)["shipping"].(map[string]any)
	assert.Equal(t, "F1", shipping["store"].(map[string]any)["id"])
}

func TestECPayGatewayRejectsZeroTotal(t *testing.T) {
	gateway := NewECPayGateway(backend.NewClient("http://127.0.0.1:1", time.Second))

	_, err := gateway.Checkout(context.Background(), backend.Credentials{}, Order{})
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

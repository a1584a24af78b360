package logistics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/katatrina/plg-shop/internal/backend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCarrierForSubType(t *testing.T) {
	carrier, err := CarrierForSubType(SubTypeFamilyMart)
	require.NoError(t, err)
	assert.Equal(t, CarrierFami, carrier)

	carrier, err = CarrierForSubType(SubTypeUnimart)
	require.NoError(t, err)
	assert.Equal(t, CarrierSeven, carrier)

	_, err = CarrierForSubType("HOME")
	assert.Error(t, err)
}

func TestPrintWaybillValidation(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(backend.FormPost{Action: "https://logistics.example/print"})
	}))
	defer server.Close()

	client := backend.NewClient(server.URL, time.Second)
	defer client.Close()
	provider := NewBackendProvider(client)
	ctx := context.Background()

	_, err := provider.PrintWaybill(ctx, backend.Credentials{}, "dhl", backend.PrintWaybillRequest{MerchantTradeNo: "EC1"})
	assert.Error(t, err)

	_, err = provider.PrintWaybill(ctx, backend.Credentials{}, CarrierFami, backend.PrintWaybillRequest{})
	assert.Error(t, err)
	assert.Equal(t, 0, calls)

	form, err := provider.PrintWaybill(ctx, backend.Credentials{}, CarrierFami, backend.PrintWaybillRequest{MerchantTradeNo: "EC1"})
	require.NoError(t, err)
	assert.Equal(t, "https://logistics.example/print", form.Action)
	assert.Equal(t, 1, calls)
}

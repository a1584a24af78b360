package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/katatrina/plg-shop/internal/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postForm(t *testing.T, ts *testServer, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return ts.request(t, req, true)
}

func getCheckoutPage(t *testing.T, ts *testServer) string {
	t.Helper()
	recorder := ts.request(t, httptest.NewRequest(http.MethodGet, checkoutPath, nil), true)
	require.Equal(t, http.StatusOK, recorder.Code)
	return recorder.Body.String()
}

func TestCheckoutPageRequiresLogin(t *testing.T) {
	ts := newTestServer(t)

	recorder := ts.request(t, httptest.NewRequest(http.MethodGet, checkoutPath, nil), false)
	require.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, "/login?next=%2Fpayment", recorder.Header().Get("Location"))
}

func TestCheckoutPageShowsTotals(t *testing.T) {
	ts := newTestServer(t)

	body := getCheckoutPage(t, ts)
	assert.Contains(t, body, "NTD 600")
	assert.Contains(t, body, "NTD 80")
	assert.Contains(t, body, "NTD 680")
	assert.Contains(t, body, `id="pick-store"`)
	assert.Contains(t, body, "plgStorePicker")
}

func TestCheckoutAssignsScopeCookie(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/payment/store", nil)
	recorder := httptest.NewRecorder()
	ts.server.router.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusOK, recorder.Code)

	var scopeCookie *http.Cookie
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == checkoutScopeCookieName {
			scopeCookie = cookie
		}
	}
	require.NotNil(t, scopeCookie)
	assert.True(t, scopeCookie.HttpOnly)
	assert.JSONEq(t, `{"store":null}`, recorder.Body.String())
}

func TestSelectShippingMethodValidation(t *testing.T) {
	ts := newTestServer(t)

	recorder := postForm(t, ts, "/payment/shipping", url.Values{"method": {"drone"}})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestSwitchToHomeDropsStoreAndRequiresAddress(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	require.NoError(t, ts.channel.Write(ctx, testScope, selection.SelectedStore{ID: "F001", Name: "全家信義店"}))
	assert.Contains(t, getCheckoutPage(t, ts), "全家信義店")

	recorder := postForm(t, ts, "/payment/shipping", url.Values{"method": {"home"}})
	require.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, checkoutPath, recorder.Header().Get("Location"))

	recorder = postForm(t, ts, "/payment/checkout", url.Values{})
	require.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Empty(t, ts.backend.checkout)

	body := getCheckoutPage(t, ts)
	assert.Contains(t, body, "請填寫完整的收件地址")
	assert.Contains(t, body, "NTD 700")

	recorder = postForm(t, ts, "/payment/shipping", url.Values{"method": {"familymart"}})
	require.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.NotContains(t, getCheckoutPage(t, ts), "全家信義店")
}

func TestSetShippingAddressValidation(t *testing.T) {
	ts := newTestServer(t)

	recorder := postForm(t, ts, "/payment/address", url.Values{"city": {"台北市"}, "district": {""}, "detail": {"市府路 1 號"}})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestSubmitHomeDelivery(t *testing.T) {
	ts := newTestServer(t)

	require.Equal(t, http.StatusSeeOther, postForm(t, ts, "/payment/shipping", url.Values{"method": {"home"}}).Code)
	require.Equal(t, http.StatusSeeOther, postForm(t, ts, "/payment/address", url.Values{
		"city":     {"台北市"},
		"district": {"信義區"},
		"detail":   {"市府路 1 號"},
	}).Code)

	recorder := postForm(t, ts, "/payment/checkout", url.Values{})
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "https://payment.ecpay.example/Cashier/AioCheckOut/V5")
	assert.Contains(t, recorder.Body.String(), "EC2401011200000ABCDE")

	require.Len(t, ts.backend.checkout, 1)
	order := ts.backend.checkout[0]
	assert.Equal(t, "home", order.Shipping.Method)
	require.NotNil(t, order.Shipping.Address)
	assert.Equal(t, "信義區", order.Shipping.Address.District)
	assert.EqualValues(t, 700, order.Totals.Total)
}

func TestSubmitPickupWithStore(t *testing.T) {
	ts := newTestServer(t)

	require.NoError(t, ts.channel.Write(context.Background(), testScope, selection.SelectedStore{ID: "F001", Name: "全家信義店"}))

	recorder := postForm(t, ts, "/payment/checkout", url.Values{"payment": {"ecpay"}})
	require.Equal(t, http.StatusOK, recorder.Code)

	require.Len(t, ts.backend.checkout, 1)
	require.NotNil(t, ts.backend.checkout[0].Shipping.Store)
	assert.Equal(t, "F001", ts.backend.checkout[0].Shipping.Store.ID)
	assert.EqualValues(t, 680, ts.backend.checkout[0].Totals.Total)
}

func TestSubmitRejectsUnknownPayment(t *testing.T) {
	ts := newTestServer(t)

	require.NoError(t, ts.channel.Write(context.Background(), testScope, selection.SelectedStore{ID: "F001"}))

	recorder := postForm(t, ts, "/payment/checkout", url.Values{"payment": {"cash"}})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Empty(t, ts.backend.checkout)
}

func TestCheckoutPageShowsCartCount(t *testing.T) {
	ts := newTestServer(t)

	assert.Contains(t, getCheckoutPage(t, ts), "購物車（2）")
}

package checkout

import (
	"fmt"
	"testing"

	"github.com/katatrina/plg-shop/internal/backend"
	"github.com/katatrina/plg-shop/internal/logistics"
	"github.com/katatrina/plg-shop/internal/payment"
	"github.com/katatrina/plg-shop/internal/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleItems() []backend.CartItem {
	return []backend.CartItem{
		{ProductID: 1, Quantity: 2, Name: "Ball", PriceCents: 300},
		{ProductID: 2, Quantity: 1, Name: "Racket", PriceCents: 600},
	}
}

func TestShippingFeeTable(t *testing.T) {
	assert.EqualValues(t, 80, ShippingFamilyMart.Fee())
	assert.EqualValues(t, 80, ShippingSevenEleven.Fee())
	assert.EqualValues(t, 100, ShippingHome.Fee())
	assert.EqualValues(t, 0, ShippingMethod("drone").Fee())

	subType, ok := ShippingFamilyMart.SubType()
	require.True(t, ok)
	assert.Equal(t, logistics.SubTypeFamilyMart, subType)

	subType, ok = ShippingSevenEleven.SubType()
	require.True(t, ok)
	assert.Equal(t, logistics.SubTypeUnimart, subType)

	_, ok = ShippingHome.SubType()
	assert.False(t, ok)
}

func TestDraftTotals(t *testing.T) {
	draft := NewDraft(sampleItems())

	totals := draft.Totals()
	assert.EqualValues(t, 1200, totals.Subtotal)
	assert.EqualValues(t, 80, totals.ShippingFee)
	assert.EqualValues(t, 1280, totals.Total)

	require.NoError(t, draft.SwitchMethod(ShippingHome))
	assert.EqualValues(t, 1300, draft.Totals().Total)
}

func TestDraftSwitchMethodClearsStore(t *testing.T) {
	draft := NewDraft(sampleItems())
	require.True(t, draft.ApplyStore(selection.SelectedStore{ID: "F001", Name: "FamilyMart Xinyi"}))
	draft.Error = "old error"

	require.NoError(t, draft.SwitchMethod(ShippingSevenEleven))
	assert.Nil(t, draft.Store)
	assert.Empty(t, draft.Error)

	err := draft.SwitchMethod("drone")
	require.ErrorIs(t, err, ErrUnknownShippingMethod)
	assert.Equal(t, ShippingSevenEleven, draft.Method)
}

func TestDraftApplyStore(t *testing.T) {
	draft := NewDraft(sampleItems())
	draft.Error = "請先選擇取貨門市"

	assert.False(t, draft.ApplyStore(selection.SelectedStore{Name: "no id"}))
	assert.False(t, draft.ApplyStore(selection.SelectedStore{ID: "U001", LogisticsSubType: logistics.SubTypeUnimart}))
	assert.Equal(t, "請先選擇取貨門市", draft.Error)

	require.True(t, draft.ApplyStore(selection.SelectedStore{ID: "F001", LogisticsSubType: logistics.SubTypeFamilyMart}))
	assert.Empty(t, draft.Error)
	assert.Equal(t, "F001", draft.Store.ID)

	require.NoError(t, draft.SwitchMethod(ShippingHome))
	assert.False(t, draft.ApplyStore(selection.SelectedStore{ID: "F001"}))
	assert.Nil(t, draft.Store)
}

func TestDraftRestoreStoreKeepsError(t *testing.T) {
	draft := NewDraft(sampleItems())
	draft.Error = "付款服務暫時無法使用"

	assert.False(t, draft.RestoreStore(selection.SelectedStore{ID: "U001", LogisticsSubType: logistics.SubTypeUnimart}))
	require.True(t, draft.RestoreStore(selection.SelectedStore{ID: "F001", LogisticsSubType: logistics.SubTypeFamilyMart}))
	assert.Equal(t, "F001", draft.Store.ID)
	assert.Equal(t, "付款服務暫時無法使用", draft.Error)
}

func TestDraftValidate(t *testing.T) {
	testCases := []struct {
		name    string
		setup   func(d *Draft)
		field   string
		message string
	}{
		{
			name:    "EmptyCart",
			setup:   func(d *Draft) { d.Items = nil },
			field:   "items",
			message: "購物車目前是空的",
		},
		{
			name:    "ZeroQuantity",
			setup:   func(d *Draft) { d.Items[0].Quantity = 0 },
			field:   "items",
			message: "商品數量必須大於 0",
		},
		{
			name:    "PickupWithoutStore",
			setup:   func(d *Draft) {},
			field:   "store",
			message: "請先選擇取貨門市",
		},
		{
			name: "HomeWithoutAddress",
			setup: func(d *Draft) {
				_ = d.SwitchMethod(ShippingHome)
			},
			field:   "address",
			message: "請填寫完整的收件地址",
		},
		{
			name: "HomeWithPartialAddress",
			setup: func(d *Draft) {
				_ = d.SwitchMethod(ShippingHome)
				d.Address = &Address{City: "台北市", District: " "}
			},
			field:   "address",
			message: "請填寫完整的收件地址",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			draft := NewDraft(sampleItems())
			tc.setup(draft)

			err := draft.Validate()
			var inputErr *InputError
			require.ErrorAs(t, err, &inputErr)
			assert.Equal(t, tc.field, inputErr.Field)
			assert.Equal(t, tc.message, DisplayMessage(err))
		})
	}
}

func TestDraftValidateAccepts(t *testing.T) {
	pickup := NewDraft(sampleItems())
	require.True(t, pickup.ApplyStore(selection.SelectedStore{ID: "F001"}))
	require.NoError(t, pickup.Validate())

	home := NewDraft(sampleItems())
	require.NoError(t, home.SwitchMethod(ShippingHome))
	home.Address = &Address{City: "台北市", District: "信義區", Detail: "市府路 1 號"}
	require.NoError(t, home.Validate())
}

func TestDraftOrder(t *testing.T) {
	draft := NewDraft(sampleItems())
	require.True(t, draft.ApplyStore(selection.SelectedStore{ID: "F001", Name: "FamilyMart Xinyi"}))

	order := draft.Order()
	require.Len(t, order.Items, 2)
	assert.Equal(t, "familymart", order.Shipping.Method)
	require.NotNil(t, order.Shipping.Store)
	assert.Equal(t, logistics.SubTypeFamilyMart, order.Shipping.Store.LogisticsSubType)
	assert.Nil(t, order.Shipping.Address)
	assert.EqualValues(t, 1280, order.Totals.Total)
}

func TestDisplayMessage(t *testing.T) {
	assert.Empty(t, DisplayMessage(nil))
	assert.Equal(t, "付款服務暫時無法使用", DisplayMessage(&backend.Error{StatusCode: 502, Message: "付款服務暫時無法使用"}))
	assert.Equal(t, "不支援的配送方式", DisplayMessage(ErrUnknownShippingMethod))
	assert.Equal(t, invalidAmountErrorMessage, DisplayMessage(fmt.Errorf("checkout: %w", payment.ErrInvalidAmount)))
	assert.Equal(t, genericErrorMessage, DisplayMessage(assert.AnError))
}

package checkout

import (
	"strings"

	"github.com/katatrina/plg-shop/internal/backend"
	"github.com/katatrina/plg-shop/internal/payment"
	"github.com/katatrina/plg-shop/internal/selection"
)

type Address struct {
	City     string `json:"city" form:"city"`
	District string `json:"district" form:"district"`
	Detail   string `json:"detail" form:"detail"`
}

func (a *Address) Complete() bool {
	return a != nil &&
		strings.TrimSpace(a.City) != "" &&
		strings.TrimSpace(a.District) != "" &&
		strings.TrimSpace(a.Detail) != ""
}

type Totals struct {
	Subtotal    int64 `json:"subtotal"`
	ShippingFee int64 `json:"shippingFee"`
	Total       int64 `json:"total"`
}

// Draft is the in-progress order of one checkout visit.
type Draft struct {
	Method  ShippingMethod
	Payment PaymentMethod
	Address *Address
	Store   *selection.SelectedStore
	Items   []backend.CartItem
	Error   string
}

func NewDraft(items []backend.CartItem) *Draft {
	return &Draft{
		Method:  DefaultShippingMethod,
		Payment: PaymentECPay,
		Items:   items,
	}
}

// SwitchMethod always drops the selected store: a store picked for one carrier is not valid for another.
func (d *Draft) SwitchMethod(method ShippingMethod) error {
	if !method.Valid() {
		return ErrUnknownShippingMethod
	}

	d.Method = method
	d.Store = nil
	d.Error = ""
	return nil
}

// ApplyStore reports whether store was accepted for the current method.
func (d *Draft) ApplyStore(store selection.SelectedStore) bool {
	if !store.Valid() || !d.accepts(store) {
		return false
	}

	d.Store = &store
	d.Error = ""
	return true
}

// RestoreStore puts back a store that was already chosen earlier. Unlike ApplyStore it keeps the inline error.
func (d *Draft) RestoreStore(store selection.SelectedStore) bool {
	if !store.Valid() || !d.accepts(store) {
		return false
	}

	d.Store = &store
	return true
}

func (d *Draft) accepts(store selection.SelectedStore) bool {
	subType, ok := d.Method.SubType()
	if !ok {
		return false
	}
	return store.LogisticsSubType == "" || store.LogisticsSubType == subType
}

func (d *Draft) Totals() Totals {
	var subtotal int64
	for _, item := range d.Items {
		subtotal += item.PriceCents * item.Quantity
	}

	fee := d.Method.Fee()
	return Totals{
		Subtotal:    subtotal,
		ShippingFee: fee,
		Total:       subtotal + fee,
	}
}

func (d *Draft) Validate() error {
	if len(d.Items) == 0 {
		return inputError("items", "購物車目前是空的")
	}
	for _, item := range d.Items {
		if item.Quantity <= 0 {
			return inputError("items", "商品數量必須大於 0")
		}
	}

	if !d.Method.Valid() {
		return inputError("shipping", "請選擇配送方式")
	}
	if !d.Payment.Valid() {
		return inputError("payment", "請選擇付款方式")
	}

	if d.Method.Pickup() {
		if d.Store == nil || !d.Store.Valid() {
			return inputError("store", "請先選擇取貨門市")
		}
		return nil
	}

	if !d.Address.Complete() {
		return inputError("address", "請填寫完整的收件地址")
	}
	return nil
}

// Order builds the payload stored with the gateway trade.
func (d *Draft) Order() payment.Order {
	items := make([]payment.OrderItem, 0, len(d.Items))
	for _, item := range d.Items {
		items = append(items, payment.OrderItem{
			ProductID:        item.ProductID,
			Quantity:         item.Quantity,
			Name:             item.Name,
			PriceCents:       item.PriceCents,
			ShopifyVariantID: item.ShopifyVariantID,
		})
	}

	shipping := payment.Shipping{Method: string(d.Method)}
	if d.Method.Pickup() && d.Store != nil {
		store := *d.Store
		if store.LogisticsSubType == "" {
			store.LogisticsSubType, _ = d.Method.SubType()
		}
		shipping.Store = &store
	} else if d.Address != nil {
		shipping.Address = &payment.Address{
			City:     strings.TrimSpace(d.Address.City),
			District: strings.TrimSpace(d.Address.District),
			Detail:   strings.TrimSpace(d.Address.Detail),
		}
	}

	totals := d.Totals()
	return payment.Order{
		Items:    items,
		Shipping: shipping,
		Totals: payment.Totals{
			Subtotal:    totals.Subtotal,
			ShippingFee: totals.ShippingFee,
			Total:       totals.Total,
		},
	}
}

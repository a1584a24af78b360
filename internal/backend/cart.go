package backend

import (
	"context"
	"net/http"
)

type CartItem struct {
	ProductID        int64   `json:"productId"`
	Quantity         int64   `json:"quantity"`
	Name             string  `json:"name,omitempty"`
	PriceCents       int64   `json:"priceCents,omitempty"`
	ImageURL         *string `json:"imageUrl,omitempty"`
	Tag              *string `json:"tag,omitempty"`
	ShopifyVariantID *int64  `json:"shopifyVariantId,omitempty"`
}

type getCartResponse struct {
	Cart []CartItem `json:"cart"`
}

// FetchCart lấy danh sách sản phẩm trong giỏ hàng của người dùng hiện tại.
func (c *Client) FetchCart(ctx context.Context, creds Credentials) ([]CartItem, error) {
	var result getCartResponse
	req := c.request(ctx, creds).SetResult(&result)
	if err := do(req, http.MethodGet, "/api/cart/items", "請求失敗，請稍後再試"); err != nil {
		return nil, err
	}

	return result.Cart, nil
}

// CountCartItems lấy số lượng sản phẩm trong giỏ hàng.
func (c *Client) CountCartItems(ctx context.Context, creds Credentials) (int64, error) {
	var result struct {
		Count int64 `json:"count"`
	}
	req := c.request(ctx, creds).SetResult(&result)
	if err := do(req, http.MethodGet, "/api/cart/items/count", "請求失敗，請稍後再試"); err != nil {
		return 0, err
	}

	return result.Count, nil
}

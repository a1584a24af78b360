package logistics

import (
	"context"
	"fmt"

	"github.com/katatrina/plg-shop/internal/backend"
)

// Mã loại dịch vụ giao hàng tại cửa hàng tiện lợi (C2C) của nhà cung cấp logistics.
const (
	SubTypeFamilyMart = "FAMIC2C"
	SubTypeUnimart    = "UNIMARTC2C"
)

// Carrier is the path segment the backend uses for carrier specific operations.
type Carrier string

const (
	CarrierFami  Carrier = "fami"
	CarrierSeven Carrier = "seven"
)

func CarrierForSubType(subType string) (Carrier, error) {
	switch subType {
	case SubTypeFamilyMart:
		return CarrierFami, nil
	case SubTypeUnimart:
		return CarrierSeven, nil
	}
	return "", fmt.Errorf("no carrier for logistics sub type %q", subType)
}

// Provider issues the signed forms used to talk to the logistics provider.
type Provider interface {
	RequestMapToken(ctx context.Context, creds backend.Credentials, subType string, extraData string) (*backend.FormPost, error)
	PrintWaybill(ctx context.Context, creds backend.Credentials, carrier Carrier, arg backend.PrintWaybillRequest) (*backend.FormPost, error)
}

type BackendProvider struct {
	client *backend.Client
}

func NewBackendProvider(client *backend.Client) Provider {
	return &BackendProvider{client: client}
}

func (p *BackendProvider) RequestMapToken(ctx context.Context, creds backend.Credentials, subType string, extraData string) (*backend.FormPost, error) {
	return p.client.RequestMapToken(ctx, creds, backend.MapTokenRequest{
		LogisticsSubType: subType,
		ExtraData:        extraData,
	})
}

func (p *BackendProvider) PrintWaybill(ctx context.Context, creds backend.Credentials, carrier Carrier, arg backend.PrintWaybillRequest) (*backend.FormPost, error) {
	switch carrier {
	case CarrierFami, CarrierSeven:
	default:
		return nil, fmt.Errorf("unsupported carrier %q", carrier)
	}
	if arg.LogisticsID == "" && arg.MerchantTradeNo == "" {
		return nil, fmt.Errorf("logisticsId or merchantTradeNo is required")
	}

	return p.client.PrintWaybill(ctx, creds, string(carrier), arg)
}

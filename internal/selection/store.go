package selection

import (
	"errors"
	"net/url"
	"strings"
)

// StorageKey is the fixed channel name under which the selected pickup store is kept.
const StorageKey = "plg-selected-store"

var ErrMissingStoreID = errors.New("selected store has no id")

// SelectedStore is the pickup location chosen through the convenience-store map.
type SelectedStore struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Address          string `json:"address"`
	Phone            string `json:"phone"`
	LogisticsSubType string `json:"logisticsSubType"`
}

func (s SelectedStore) Valid() bool {
	return strings.TrimSpace(s.ID) != ""
}

// Fields giữ lại tên trường mà các nhà cung cấp logistics đã từng dùng, theo thứ tự ưu tiên.
var (
	IDAliases      = []string{"storeid", "storeId", "CVSStoreID", "ReceiverStoreID", "StoreID"}
	NameAliases    = []string{"storename", "storeName", "CVSStoreName", "ReceiverStoreName"}
	AddressAliases = []string{"storeaddress", "storeAddress", "CVSAddress", "ReceiverAddress"}
	PhoneAliases   = []string{"phone", "CVSTelephone", "ReceiverPhone", "ReceiverCellPhone"}
	SubTypeAliases = []string{"LogisticsSubType", "LogisticsSubtype"}
)

// AllAliases lists every recognised provider field name.
func AllAliases() []string {
	var all []string
	for _, group := range [][]string{IDAliases, NameAliases, AddressAliases, PhoneAliases, SubTypeAliases} {
		all = append(all, group...)
	}
	return all
}

// Resolve returns the first alias whose value is non-empty after trimming.
func Resolve(lookup func(key string) string, aliases ...string) string {
	for _, key := range aliases {
		if value := strings.TrimSpace(lookup(key)); value != "" {
			return value
		}
	}
	return ""
}

func build(lookup func(key string) string, canonical bool) (SelectedStore, bool) {
	withCanonical := func(key string, aliases []string) []string {
		if !canonical {
			return aliases
		}
		return append([]string{key}, aliases...)
	}

	store := SelectedStore{
		ID:               Resolve(lookup, withCanonical("id", IDAliases)...),
		Name:             Resolve(lookup, withCanonical("name", NameAliases)...),
		Address:          Resolve(lookup, withCanonical("address", AddressAliases)...),
		Phone:            Resolve(lookup, PhoneAliases...),
		LogisticsSubType: Resolve(lookup, withCanonical("logisticsSubType", SubTypeAliases)...),
	}
	if !store.Valid() {
		return SelectedStore{}, false
	}
	if store.Name == "" {
		store.Name = store.ID
	}

	return store, true
}

// FromValues builds a store from callback query parameters.
func FromValues(values url.Values) (SelectedStore, bool) {
	return build(values.Get, false)
}

// FromPayload decodes a cross-window message. Canonical keys win over provider aliases.
func FromPayload(payload map[string]string) (SelectedStore, bool) {
	if payload == nil {
		return SelectedStore{}, false
	}
	return build(func(key string) string { return payload[key] }, true)
}

// Payload is the message form of the store, readable by FromPayload.
func (s SelectedStore) Payload() map[string]string {
	return map[string]string{
		"id":               s.ID,
		"name":             s.Name,
		"address":          s.Address,
		"phone":            s.Phone,
		"logisticsSubType": s.LogisticsSubType,
	}
}

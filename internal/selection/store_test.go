package selection

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromValuesEveryIDAlias(t *testing.T) {
	for _, alias := range IDAliases {
		t.Run(alias, func(t *testing.T) {
			store, ok := FromValues(url.Values{alias: {"S-42"}})
			require.True(t, ok)
			assert.Equal(t, "S-42", store.ID)
			assert.Equal(t, "S-42", store.Name)
		})
	}
}

func TestFromValuesWithoutID(t *testing.T) {
	cases := map[string]url.Values{
		"empty":       {},
		"blank id":    {"storeid": {"   "}},
		"only name":   {"storename": {"Downtown"}, "CVSAddress": {"1 Main St"}},
		"unknown key": {"store_id": {"CVS001"}},
	}

	for name, values := range cases {
		t.Run(name, func(t *testing.T) {
			_, ok := FromValues(values)
			assert.False(t, ok)
		})
	}
}

func TestFromValuesQueryString(t *testing.T) {
	values, err := url.ParseQuery("storeid=CVS001&storename=Downtown&storeaddress=1+Main+St")
	require.NoError(t, err)

	store, ok := FromValues(values)
	require.True(t, ok)
	assert.Equal(t, SelectedStore{ID: "CVS001", Name: "Downtown", Address: "1 Main St"}, store)
}

func TestFromValuesProviderAliases(t *testing.T) {
	values, err := url.ParseQuery("CVSStoreID=7E12&CVSStoreName=Seven&CVSAddress=Taipei&CVSTelephone=02-1234&LogisticsSubtype=UNIMARTC2C")
	require.NoError(t, err)

	store, ok := FromValues(values)
	require.True(t, ok)
	assert.Equal(t, SelectedStore{
		ID:               "7E12",
		Name:             "Seven",
		Address:          "Taipei",
		Phone:            "02-1234",
		LogisticsSubType: "UNIMARTC2C",
	}, store)
}

func TestFromValuesFirstNonEmptyAliasWins(t *testing.T) {
	values := url.Values{
		"storeid":    {""},
		"CVSStoreID": {"second"},
		"StoreID":    {"last"},
	}

	store, ok := FromValues(values)
	require.True(t, ok)
	assert.Equal(t, "second", store.ID)
}

func TestFromPayload(t *testing.T) {
	store, ok := FromPayload(map[string]string{"id": "F001", "storename": "Fami", "CVSAddress": "Road 1"})
	require.True(t, ok)
	assert.Equal(t, SelectedStore{ID: "F001", Name: "Fami", Address: "Road 1"}, store)

	_, ok = FromPayload(nil)
	assert.False(t, ok)

	_, ok = FromPayload(map[string]string{"name": "no id"})
	assert.False(t, ok)
}

func TestPayloadRoundTrip(t *testing.T) {
	store := SelectedStore{ID: "1", Name: "One", Address: "Addr", Phone: "09", LogisticsSubType: "FAMIC2C"}

	decoded, ok := FromPayload(store.Payload())
	require.True(t, ok)
	assert.Equal(t, store, decoded)
}

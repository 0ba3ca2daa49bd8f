package dto

import (
	"encoding/json"
	"testing"

	"github.com/amirhossein-jamali/ticket-marketplace/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleListing() *entity.Listing {
	return &entity.Listing{
		ID:            10,
		SellerID:      1,
		EventName:     "Jazz Night",
		TicketType:    entity.TypeStandard,
		Quantity:      1,
		OriginalPrice: decimal.NewFromInt(100),
		ResalePrice:   decimal.RequireFromString("110.5"),
		Barcode:       "TKT-1000",
		Status:        entity.StatusAvailable,
	}
}

func TestToListingResponseBarcodeVisibility(t *testing.T) {
	t.Run("owner sees the barcode", func(t *testing.T) {
		resp := ToListingResponse(sampleListing(), 1)
		assert.Equal(t, "TKT-1000", resp.Barcode)
	})

	t.Run("other viewers do not", func(t *testing.T) {
		resp := ToListingResponse(sampleListing(), 2)
		assert.Empty(t, resp.Barcode)
	})

	t.Run("anonymous viewers do not", func(t *testing.T) {
		resp := ToListingResponse(sampleListing(), 0)
		assert.Empty(t, resp.Barcode)

		body, err := json.Marshal(resp)
		require.NoError(t, err)
		assert.NotContains(t, string(body), "barcode")
	})
}

func TestToListingResponsePrices(t *testing.T) {
	resp := ToListingResponse(sampleListing(), 1)

	assert.Equal(t, "100.00", resp.OriginalPrice)
	assert.Equal(t, "110.50", resp.ResalePrice)
}

func TestToListingResponses(t *testing.T) {
	listings := []*entity.Listing{sampleListing(), sampleListing()}
	listings[1].ID = 11
	listings[1].SellerID = 2

	out := ToListingResponses(listings, 1)

	require.Len(t, out, 2)
	assert.Equal(t, "TKT-1000", out[0].Barcode)
	assert.Empty(t, out[1].Barcode)
}

func TestDecimalRequestBinding(t *testing.T) {
	t.Run("accepts JSON numbers", func(t *testing.T) {
		var req CreateListingRequest
		require.NoError(t, json.Unmarshal([]byte(`{"originalPrice": 100, "resalePrice": 110.5}`), &req))
		assert.True(t, req.OriginalPrice.Equal(decimal.NewFromInt(100)))
		assert.True(t, req.ResalePrice.Equal(decimal.RequireFromString("110.5")))
	})

	t.Run("accepts JSON strings", func(t *testing.T) {
		var req CreateListingRequest
		require.NoError(t, json.Unmarshal([]byte(`{"originalPrice": "100", "resalePrice": "110.50"}`), &req))
		assert.True(t, req.OriginalPrice.Equal(decimal.NewFromInt(100)))
		assert.True(t, req.ResalePrice.Equal(decimal.RequireFromString("110.5")))
	})
}

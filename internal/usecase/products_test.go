package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dukkan/internal/domain/entity"
	"dukkan/internal/testutil"
)

func sampleProduct() entity.Product {
	return entity.Product{
		ID:          "p1",
		Name:        "بطاقة بلايستيشن",
		NameEN:      "PSN Card",
		Slug:        "psn-card",
		CategoryID:  "c1",
		PriceJOD:    10,
		PriceUSD:    14,
		ProductType: entity.ProductTypeDigitalCode,
		HasVariants: true,
		Variants: []entity.Variant{
			{ID: "v1", Name: "3 months", PriceJOD: 10, Stock: 5, IsActive: true},
		},
		StockCount: 5,
		IsActive:   true,
	}
}

func TestToggleActiveSendsMinimalPayloadAndPatchesRow(t *testing.T) {
	api := testutil.NewAPI(t)
	api.GET("/admin/products", testutil.JSON([]entity.Product{sampleProduct()}))
	api.PUT("/admin/products/p1", testutil.JSON(map[string]bool{"ok": true}))

	uc := NewProductUseCase(api.Client(), nil)
	require.NoError(t, uc.Collection().Load(context.Background()))

	require.NoError(t, uc.SetActive(context.Background(), "p1", false))

	// Exactly one key in the body: is_active.
	var sent map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(api.LastBody(http.MethodPut, "/admin/products/p1"), &sent))
	require.Len(t, sent, 1)
	assert.Equal(t, "false", string(sent["is_active"]))

	// Row patched in place, no second list fetch.
	p, _ := uc.Collection().Get("p1")
	assert.False(t, p.IsActive)
	assert.Equal(t, 1, api.Count(http.MethodGet, "/admin/products"))
}

func TestAddCodesUsesServerStockCount(t *testing.T) {
	api := testutil.NewAPI(t)
	api.GET("/admin/products", testutil.JSON([]entity.Product{sampleProduct()}))
	api.POST("/admin/products/p1/codes/add", testutil.JSON(map[string]int{"added": 2, "stock_count": 7}))

	uc := NewProductUseCase(api.Client(), nil)
	require.NoError(t, uc.Collection().Load(context.Background()))

	require.NoError(t, uc.AddCodes(context.Background(), "p1", []string{"AAA-111", "BBB-222"}))

	p, _ := uc.Collection().Get("p1")
	assert.Equal(t, 7, p.StockCount)
}

func TestEditDraftDoesNotAliasHeldEntity(t *testing.T) {
	api := testutil.NewAPI(t)
	api.GET("/admin/products", testutil.JSON([]entity.Product{sampleProduct()}))

	uc := NewProductUseCase(api.Client(), nil)
	require.NoError(t, uc.Collection().Load(context.Background()))

	held, _ := uc.Collection().Get("p1")
	draft := EditProductDraft(held)

	// Mutate the draft, including a nested variant row.
	draft.Name = "changed"
	draft.Variants[0].Name = "changed variant"
	draft.RemoveVariant(0)

	fresh, _ := uc.Collection().Get("p1")
	assert.Equal(t, "بطاقة بلايستيشن", fresh.Name)
	require.Len(t, fresh.Variants, 1)
	assert.Equal(t, "3 months", fresh.Variants[0].Name)
}

func TestProductPayloadNormalizesSlugAndPrices(t *testing.T) {
	draft := NewProductDraft()
	draft.Name = "لعبة"
	draft.Slug = "  Super Game!! "
	draft.CategoryID = "c1"
	draft.PriceJOD = "12.5"
	draft.OriginalPriceJOD = ""

	payload, err := draft.Payload()
	require.NoError(t, err)

	assert.Equal(t, "super-game!!-", payload.Slug)
	assert.Equal(t, 12.5, payload.PriceJOD)
	assert.Nil(t, payload.OriginalPriceJOD)

	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	var sent map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &sent))
	assert.Equal(t, "null", string(sent["original_price_jod"]))
}

func TestProductPayloadAssignsVariantIDs(t *testing.T) {
	draft := NewProductDraft()
	draft.Name = "x"
	draft.Slug = "x"
	draft.CategoryID = "c1"
	draft.PriceJOD = "5"
	draft.HasVariants = true
	draft.Variants = []VariantDraft{
		{ID: "v1", Name: "kept", PriceJOD: "5", Stock: "1", IsActive: true},
		{Name: "new row", PriceJOD: "9", Stock: "2", IsActive: true},
	}

	payload, err := draft.Payload()
	require.NoError(t, err)
	require.Len(t, payload.Variants, 2)

	assert.Equal(t, "v1", payload.Variants[0].ID)
	// New rows get a client-assigned id before submission.
	assert.NotEmpty(t, payload.Variants[1].ID)
	assert.NotEqual(t, "v1", payload.Variants[1].ID)
}

func TestProductPayloadRejectsBadVariantRow(t *testing.T) {
	draft := NewProductDraft()
	draft.Name = "x"
	draft.Slug = "x"
	draft.CategoryID = "c1"
	draft.PriceJOD = "5"
	draft.HasVariants = true
	draft.Variants = []VariantDraft{{Name: "row", PriceJOD: "abc"}}

	_, err := draft.Payload()
	assert.EqualError(t, err, "VALIDATION_ERROR: variant 1: price_jod must be a number")
}

func TestSetProductTypeSeedsRequiresFlags(t *testing.T) {
	draft := NewProductDraft()

	draft.SetProductType(entity.ProductTypeExistingAccount)
	assert.True(t, draft.RequiresEmail)
	assert.True(t, draft.RequiresPassword)
	assert.False(t, draft.RequiresPhone)

	// Flags stay independently togglable after seeding.
	draft.RequiresPassword = false
	assert.True(t, draft.RequiresEmail)

	draft.SetProductType(entity.ProductTypeNewAccount)
	assert.True(t, draft.RequiresPhone)
	assert.False(t, draft.RequiresPassword)
}

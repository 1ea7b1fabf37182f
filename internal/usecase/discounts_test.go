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
	"dukkan/pkg/feedback"
)

func TestDiscountCreatePayloadShape(t *testing.T) {
	api := testutil.NewAPI(t)
	api.GET("/admin/discounts", testutil.JSON([]entity.Discount{}))
	api.POST("/admin/discounts", testutil.JSON(map[string]string{"id": "d1"}))

	uc := NewDiscountUseCase(api.Client(), nil)
	require.NoError(t, uc.Collection().Load(context.Background()))

	err := uc.Create(context.Background(), &DiscountDraft{
		Code:          "summer2025",
		DiscountType:  "percentage",
		DiscountValue: "20",
		MaxUses:       "",
		IsActive:      true,
	})
	require.NoError(t, err)

	body := api.LastBody(http.MethodPost, "/admin/discounts")
	require.NotNil(t, body)

	var sent map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &sent))

	// The code goes out upper-cased, the value as a number, and the empty
	// max_uses as null rather than "" or 0.
	assert.Equal(t, `"SUMMER2025"`, string(sent["code"]))
	assert.Equal(t, `20`, string(sent["discount_value"]))
	assert.Equal(t, `null`, string(sent["max_uses"]))
}

func TestDiscountCreateRefetchShowsEntityOnce(t *testing.T) {
	api := testutil.NewAPI(t)
	items := []entity.Discount{}
	api.GET("/admin/discounts", testutil.JSONFunc(func() interface{} { return items }))
	api.POST("/admin/discounts", testutil.JSONFunc(func() interface{} {
		items = append(items, entity.Discount{ID: "d1", Code: "EID10"})
		return map[string]string{"id": "d1"}
	}))

	uc := NewDiscountUseCase(api.Client(), nil)
	require.NoError(t, uc.Collection().Load(context.Background()))

	err := uc.Create(context.Background(), &DiscountDraft{
		Code:          "eid10",
		DiscountType:  "fixed",
		DiscountValue: "5",
	})
	require.NoError(t, err)

	seen := 0
	for _, d := range uc.Collection().Items() {
		if d.ID == "d1" {
			seen++
		}
	}
	assert.Equal(t, 1, seen)
}

func TestDiscountCreateValidationBlocksRequest(t *testing.T) {
	api := testutil.NewAPI(t)
	api.GET("/admin/discounts", testutil.JSON([]entity.Discount{}))

	uc := NewDiscountUseCase(api.Client(), nil)
	require.NoError(t, uc.Collection().Load(context.Background()))

	err := uc.Create(context.Background(), &DiscountDraft{
		Code:          "",
		DiscountType:  "percentage",
		DiscountValue: "20",
	})
	assert.EqualError(t, err, "VALIDATION_ERROR: code is required")
	assert.Equal(t, 0, api.Count(http.MethodPost, "/admin/discounts"))
}

func TestDiscountFailedCreateLeavesCollectionUnchanged(t *testing.T) {
	api := testutil.NewAPI(t)
	api.GET("/admin/discounts", testutil.JSON([]entity.Discount{{ID: "d0", Code: "OLD"}}))
	api.POST("/admin/discounts", testutil.Detail(http.StatusBadRequest, "Code already exists"))

	notify := feedback.NewMemory(10)
	uc := NewDiscountUseCase(api.Client(), notify)
	require.NoError(t, uc.Collection().Load(context.Background()))

	err := uc.Create(context.Background(), &DiscountDraft{
		Code:          "OLD",
		DiscountType:  "fixed",
		DiscountValue: "5",
	})
	require.Error(t, err)

	// No phantom entity, and the server's message reached the operator.
	items := uc.Collection().Items()
	require.Len(t, items, 1)
	assert.Equal(t, "d0", items[0].ID)
	last, _ := notify.Last()
	assert.Equal(t, "Code already exists", last.Message)
}

func TestDiscountToggleTrustsServerUsedCount(t *testing.T) {
	api := testutil.NewAPI(t)
	api.GET("/admin/discounts", testutil.JSON([]entity.Discount{{ID: "d1", Code: "X", UsedCount: 3, IsActive: true}}))
	api.PATCH("/admin/discounts/d1", testutil.JSON(entity.Discount{ID: "d1", Code: "X", UsedCount: 7, IsActive: false}))

	uc := NewDiscountUseCase(api.Client(), nil)
	require.NoError(t, uc.Collection().Load(context.Background()))

	require.NoError(t, uc.SetActive(context.Background(), "d1", false))

	d, ok := uc.Collection().Get("d1")
	require.True(t, ok)
	assert.False(t, d.IsActive)
	// used_count is server-owned; the patched row carries the reported 7.
	assert.Equal(t, 7, d.UsedCount)
	// Toggle reconciles in place, no refetch.
	assert.Equal(t, 1, api.Count(http.MethodGet, "/admin/discounts"))
}

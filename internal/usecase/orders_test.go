package usecase

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dukkan/internal/domain/entity"
	"dukkan/internal/testutil"
	"dukkan/pkg/errors"
)

func TestUpdateStatusPatchesRowWithServerHistory(t *testing.T) {
	api := testutil.NewAPI(t)
	api.GET("/admin/orders", testutil.JSON([]entity.Order{
		{ID: "o1", OrderNumber: "ORD-1001", Status: entity.OrderStatusPaid, TotalJOD: 12.5},
		{ID: "o2", OrderNumber: "ORD-1002", Status: entity.OrderStatusPending, TotalJOD: 3},
	}))
	api.PUT("/admin/orders/o1/status", testutil.JSON(entity.Order{
		ID: "o1", OrderNumber: "ORD-1001", Status: entity.OrderStatusDelivered, TotalJOD: 12.5,
		StatusHistory: []entity.StatusChange{
			{To: entity.OrderStatusPaid, ByName: "system"},
			{To: entity.OrderStatusDelivered, ByName: "Huda"},
		},
	}))

	uc := NewOrderUseCase(api.Client(), nil)
	require.NoError(t, uc.Collection().Load(context.Background()))

	require.NoError(t, uc.UpdateStatus(context.Background(), "o1", entity.OrderStatusDelivered))

	// The row is reconciled in place; no second list fetch goes out.
	assert.Equal(t, 1, api.Count(http.MethodGet, "/admin/orders"))

	o1, _ := uc.Collection().Get("o1")
	assert.Equal(t, entity.OrderStatusDelivered, o1.Status)
	require.Len(t, o1.StatusHistory, 2)
	assert.Equal(t, "Huda", o1.StatusHistory[1].ByName)

	// The sibling row is untouched.
	o2, _ := uc.Collection().Get("o2")
	assert.Equal(t, entity.OrderStatusPending, o2.Status)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	api := testutil.NewAPI(t)
	uc := NewOrderUseCase(api.Client(), nil)

	err := uc.UpdateStatus(context.Background(), "o1", "shipped")
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
	assert.Empty(t, api.Requests())
}

func TestDeliverValidatesInputBeforeSending(t *testing.T) {
	api := testutil.NewAPI(t)
	uc := NewOrderUseCase(api.Client(), nil)

	err := uc.Deliver(context.Background(), "o1", DeliveryInput{Email: "not-an-email", Password: "s3cret"})
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))

	err = uc.Deliver(context.Background(), "o1", DeliveryInput{Email: "buyer@example.com"})
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))

	assert.Empty(t, api.Requests())
}

func TestDeliverPatchesRow(t *testing.T) {
	api := testutil.NewAPI(t)
	api.GET("/admin/orders", testutil.JSON([]entity.Order{
		{ID: "o1", Status: entity.OrderStatusPaid, ProductType: entity.ProductTypeExistingAccount},
	}))
	api.POST("/admin/orders/o1/deliver", testutil.JSON(entity.Order{
		ID: "o1", Status: entity.OrderStatusDelivered, ProductType: entity.ProductTypeExistingAccount,
	}))

	uc := NewOrderUseCase(api.Client(), nil)
	require.NoError(t, uc.Collection().Load(context.Background()))

	require.NoError(t, uc.Deliver(context.Background(), "o1", DeliveryInput{
		Email:    "buyer@example.com",
		Password: "s3cret",
		Notes:    "تم التسليم يدويا",
	}))

	o1, _ := uc.Collection().Get("o1")
	assert.Equal(t, entity.OrderStatusDelivered, o1.Status)

	body := api.LastBody(http.MethodPost, "/admin/orders/o1/deliver")
	assert.Contains(t, string(body), `"buyer@example.com"`)
}

func TestUseAdvancedSwitchesListEndpoint(t *testing.T) {
	api := testutil.NewAPI(t)
	api.GET("/admin/orders", testutil.JSON([]entity.Order{}))
	api.GET("/admin/orders/advanced", testutil.JSON([]entity.Order{{ID: "o9"}}))

	uc := NewOrderUseCase(api.Client(), nil)
	require.NoError(t, uc.Collection().Load(context.Background()))
	assert.Equal(t, 1, api.Count(http.MethodGet, "/admin/orders"))

	uc.UseAdvanced(true)
	uc.Collection().SetFilterValue("date_from", "2026-08-01")
	require.NoError(t, uc.Collection().Load(context.Background()))

	assert.Equal(t, 1, api.Count(http.MethodGet, "/admin/orders/advanced"))
	reqs := api.Requests()
	last := reqs[len(reqs)-1]
	assert.Equal(t, "2026-08-01", last.Query.Get("date_from"))
}

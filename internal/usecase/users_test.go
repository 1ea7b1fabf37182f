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
	"dukkan/pkg/feedback"
)

func loadedUsers(t *testing.T, api *testutil.API, notify feedback.Notifier, users ...entity.User) *UserUseCase {
	t.Helper()
	api.GET("/admin/users", testutil.JSON(users))
	uc := NewUserUseCase(api.Client(), NewAuthzEditor(api.Client()), notify)
	require.NoError(t, uc.Collection().Load(context.Background()))
	return uc
}

func TestCreditDisplaysServerBalanceNotLocalSum(t *testing.T) {
	api := testutil.NewAPI(t)
	// The held balance is 10 and we credit 5, but a concurrent purchase
	// means the server reports 12.750 back. That number wins.
	api.POST("/wallet/admin/credit", testutil.JSON(map[string]interface{}{"new_balance": 12.750}))

	uc := loadedUsers(t, api, nil, entity.User{ID: "u1", Name: "ليلى", WalletBalanceJOD: 10})

	require.NoError(t, uc.Credit(context.Background(), "u1", 5, "goodwill"))

	u, _ := uc.Collection().Get("u1")
	assert.Equal(t, 12.750, u.WalletBalanceJOD)
	assert.NotEqual(t, 15.0, u.WalletBalanceJOD)

	body := api.LastBody(http.MethodPost, "/wallet/admin/credit")
	assert.Contains(t, string(body), `"user_id":"u1"`)
	assert.Contains(t, string(body), `"note":"goodwill"`)
}

func TestCreditFallsBackToLegacyAlias(t *testing.T) {
	api := testutil.NewAPI(t)
	api.POST("/wallet/admin/credit", testutil.Detail(404, "Not Found"))
	api.POST("/admin/wallet/credit", testutil.JSON(map[string]interface{}{"new_balance": 7.5}))

	uc := loadedUsers(t, api, nil, entity.User{ID: "u1", WalletBalanceJOD: 2.5})

	require.NoError(t, uc.Credit(context.Background(), "u1", 5, ""))

	assert.Equal(t, 1, api.Count(http.MethodPost, "/wallet/admin/credit"))
	assert.Equal(t, 1, api.Count(http.MethodPost, "/admin/wallet/credit"))

	u, _ := uc.Collection().Get("u1")
	assert.Equal(t, 7.5, u.WalletBalanceJOD)
}

func TestDeductRejectsNonPositiveAmount(t *testing.T) {
	api := testutil.NewAPI(t)
	uc := loadedUsers(t, api, nil, entity.User{ID: "u1", WalletBalanceJOD: 10})

	err := uc.Deduct(context.Background(), "u1", 0, "")
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
	err = uc.Deduct(context.Background(), "u1", -3, "")
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))

	assert.Equal(t, 0, api.Count(http.MethodPost, "/wallet/admin/deduct"))
}

func TestFailedDeductLeavesBalanceAndReportsServerMessage(t *testing.T) {
	api := testutil.NewAPI(t)
	api.POST("/wallet/admin/deduct", testutil.Detail(400, "Insufficient balance"))

	notify := feedback.NewMemory(4)
	uc := loadedUsers(t, api, notify, entity.User{ID: "u1", WalletBalanceJOD: 1})

	err := uc.Deduct(context.Background(), "u1", 50, "chargeback")
	require.Error(t, err)

	u, _ := uc.Collection().Get("u1")
	assert.Equal(t, 1.0, u.WalletBalanceJOD)

	last, ok := notify.Last()
	require.True(t, ok)
	assert.Equal(t, "Insufficient balance", last.Message)
}

func TestChangeRoleGoesThroughSharedEditor(t *testing.T) {
	api := testutil.NewAPI(t)
	api.PUT("/admin/users/u1/role", testutil.JSON(entity.User{
		ID: "u1", Role: entity.RoleModerator,
		Permissions: []string{"orders.read", "disputes.write"},
	}))

	uc := loadedUsers(t, api, nil, entity.User{ID: "u1", Role: entity.RoleBuyer})

	require.NoError(t, uc.ChangeRole(context.Background(), "u1", entity.RoleModerator))

	u, _ := uc.Collection().Get("u1")
	assert.Equal(t, entity.RoleModerator, u.Role)
	assert.Equal(t, []string{"orders.read", "disputes.write"}, u.Permissions)

	body := api.LastBody(http.MethodPut, "/admin/users/u1/role")
	assert.JSONEq(t, `{"role":"moderator"}`, string(body))
}

func TestChangeRoleRejectsUnknownRole(t *testing.T) {
	api := testutil.NewAPI(t)
	uc := loadedUsers(t, api, nil, entity.User{ID: "u1", Role: entity.RoleBuyer})

	err := uc.ChangeRole(context.Background(), "u1", "superadmin")
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
	assert.Equal(t, 0, api.Count(http.MethodPut, "/admin/users/u1/role"))
}

func TestSetActiveSendsMinimalPatch(t *testing.T) {
	api := testutil.NewAPI(t)
	api.PATCH("/admin/users/u1", testutil.JSON(map[string]interface{}{"ok": true}))

	uc := loadedUsers(t, api, nil, entity.User{ID: "u1", IsActive: true})

	require.NoError(t, uc.SetActive(context.Background(), "u1", false))

	body := api.LastBody(http.MethodPatch, "/admin/users/u1")
	assert.JSONEq(t, `{"is_active":false}`, string(body))

	u, _ := uc.Collection().Get("u1")
	assert.False(t, u.IsActive)
}

func TestSetPermissionsKeepsServerGrantList(t *testing.T) {
	api := testutil.NewAPI(t)
	// The server may normalize the grant list; the held row shows its copy.
	api.PUT("/admin/users/u1/permissions", testutil.JSON(map[string]interface{}{
		"permissions": []string{"orders.read"},
	}))

	uc := loadedUsers(t, api, nil, entity.User{ID: "u1"})

	require.NoError(t, uc.SetPermissions(context.Background(), "u1", []string{"orders.read", "orders.read"}))

	u, _ := uc.Collection().Get("u1")
	assert.Equal(t, []string{"orders.read"}, u.Permissions)
}

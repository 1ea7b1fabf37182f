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

func settingsAPI(t *testing.T) *testutil.API {
	t.Helper()
	api := testutil.NewAPI(t)
	api.GET("/admin/settings", testutil.JSON(entity.SiteSettings{
		StoreName:    "دكان",
		SupportEmail: "support@dukkan.example",
		Currency:     "JOD",
		SocialLinks:  map[string]string{"instagram": "dukkan.jo"},
	}))
	api.GET("/admin/telegram/settings", testutil.JSON(entity.TelegramSettings{
		Enabled: true, BotToken: "123:abc", ChatID: "-100",
	}))
	return api
}

func TestSettingsLoadFetchesBothDocuments(t *testing.T) {
	api := settingsAPI(t)
	uc := NewSettingsUseCase(api.Client(), nil)

	require.NoError(t, uc.Load(context.Background()))

	assert.Equal(t, "دكان", uc.Site().StoreName)
	assert.True(t, uc.Telegram().Enabled)
	assert.Equal(t, 1, api.Count(http.MethodGet, "/admin/settings"))
	assert.Equal(t, 1, api.Count(http.MethodGet, "/admin/telegram/settings"))
}

func TestEditSiteDraftDoesNotAliasHeldDocument(t *testing.T) {
	api := settingsAPI(t)
	uc := NewSettingsUseCase(api.Client(), nil)
	require.NoError(t, uc.Load(context.Background()))

	draft := EditSiteDraft(*uc.Site())
	draft.StoreName = "متجر آخر"
	draft.SocialLinks["instagram"] = "changed"

	held := uc.Site()
	assert.Equal(t, "دكان", held.StoreName)
	assert.Equal(t, "dukkan.jo", held.SocialLinks["instagram"])
}

func TestSaveSiteCommitsServerCopy(t *testing.T) {
	api := settingsAPI(t)
	api.PUT("/admin/settings", testutil.JSON(entity.SiteSettings{
		StoreName:    "دكان",
		SupportEmail: "support@dukkan.example",
		Currency:     "USD",
	}))

	uc := NewSettingsUseCase(api.Client(), feedback.NewMemory(4))
	require.NoError(t, uc.Load(context.Background()))

	draft := EditSiteDraft(*uc.Site())
	draft.Currency = "USD"
	require.NoError(t, uc.SaveSite(context.Background(), draft))

	assert.Equal(t, "USD", uc.Site().Currency)
}

func TestFailedSaveLeavesHeldDocument(t *testing.T) {
	api := settingsAPI(t)
	api.PUT("/admin/settings", testutil.Detail(400, "Currency not supported"))

	notify := feedback.NewMemory(4)
	uc := NewSettingsUseCase(api.Client(), notify)
	require.NoError(t, uc.Load(context.Background()))

	draft := EditSiteDraft(*uc.Site())
	draft.Currency = "USD"
	require.Error(t, uc.SaveSite(context.Background(), draft))

	assert.Equal(t, "JOD", uc.Site().Currency)
	last, ok := notify.Last()
	require.True(t, ok)
	assert.Equal(t, "Currency not supported", last.Message)
}

func TestSaveSiteValidatesDraft(t *testing.T) {
	api := settingsAPI(t)
	uc := NewSettingsUseCase(api.Client(), nil)
	require.NoError(t, uc.Load(context.Background()))

	draft := EditSiteDraft(*uc.Site())
	draft.Currency = "EUR"
	err := uc.SaveSite(context.Background(), draft)
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
	assert.Equal(t, 0, api.Count(http.MethodPut, "/admin/settings"))
}

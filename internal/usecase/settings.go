package usecase

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"dukkan/internal/adapter/rest"
	"dukkan/internal/domain/entity"
	"dukkan/pkg/errors"
	"dukkan/pkg/feedback"
	"dukkan/pkg/utils"
)

// SettingsUseCase manages the two singleton settings documents: site
// settings and telegram notification settings. There is no collection here,
// only the current server copies and a saving flag that gates duplicate
// submits.
type SettingsUseCase struct {
	client *rest.Client
	notify feedback.Notifier

	mu       sync.Mutex
	site     *entity.SiteSettings
	telegram *entity.TelegramSettings
	saving   bool
}

func NewSettingsUseCase(client *rest.Client, notify feedback.Notifier) *SettingsUseCase {
	if notify == nil {
		notify = feedback.Discard{}
	}
	return &SettingsUseCase{client: client, notify: notify}
}

// Load fetches both settings documents in parallel. Either sub-fetch failing
// is reported under its own name.
func (uc *SettingsUseCase) Load(ctx context.Context) error {
	var site entity.SiteSettings
	var telegram entity.TelegramSettings

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := uc.client.Get(gctx, "/admin/settings", nil, &site); err != nil {
			return fmt.Errorf("settings: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := uc.client.Get(gctx, "/admin/telegram/settings", nil, &telegram); err != nil {
			return fmt.Errorf("telegram: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		uc.notify.Error(fmt.Sprintf("Failed to load %s", err.Error()))
		return errors.New("LOAD_FAILED", err.Error(), 0, err)
	}

	uc.mu.Lock()
	uc.site = &site
	uc.telegram = &telegram
	uc.mu.Unlock()
	return nil
}

func (uc *SettingsUseCase) Site() *entity.SiteSettings {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.site == nil {
		return nil
	}
	copied := *uc.site
	copied.SocialLinks = cloneStringMap(uc.site.SocialLinks)
	return &copied
}

func (uc *SettingsUseCase) Telegram() *entity.TelegramSettings {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.telegram == nil {
		return nil
	}
	copied := *uc.telegram
	return &copied
}

// SiteDraft is the settings form. SocialLinks is copied on seed so edits
// never reach the held document before a successful save.
type SiteDraft struct {
	StoreName       string `validate:"required"`
	StoreNameEN     string
	SupportEmail    string `validate:"required,email"`
	SupportPhone    string
	Currency        string `validate:"required,oneof=JOD USD"`
	MaintenanceMode bool
	SocialLinks     map[string]string
}

func EditSiteDraft(s entity.SiteSettings) *SiteDraft {
	return &SiteDraft{
		StoreName:       s.StoreName,
		StoreNameEN:     s.StoreNameEN,
		SupportEmail:    s.SupportEmail,
		SupportPhone:    s.SupportPhone,
		Currency:        s.Currency,
		MaintenanceMode: s.MaintenanceMode,
		SocialLinks:     cloneStringMap(s.SocialLinks),
	}
}

func (uc *SettingsUseCase) SaveSite(ctx context.Context, draft *SiteDraft) error {
	if err := utils.CheckDraft(draft); err != nil {
		return err
	}
	return uc.save(ctx, "Settings saved", func(ctx context.Context) error {
		payload := entity.SiteSettings{
			StoreName:       draft.StoreName,
			StoreNameEN:     draft.StoreNameEN,
			SupportEmail:    draft.SupportEmail,
			SupportPhone:    draft.SupportPhone,
			Currency:        draft.Currency,
			MaintenanceMode: draft.MaintenanceMode,
			SocialLinks:     cloneStringMap(draft.SocialLinks),
		}
		var saved entity.SiteSettings
		if err := uc.client.Put(ctx, "/admin/settings", payload, &saved); err != nil {
			return err
		}
		uc.mu.Lock()
		uc.site = &saved
		uc.mu.Unlock()
		return nil
	})
}

type TelegramDraft struct {
	Enabled        bool
	BotToken       string `validate:"required"`
	ChatID         string `validate:"required"`
	NotifyOrders   bool
	NotifyDisputes bool
}

func (uc *SettingsUseCase) SaveTelegram(ctx context.Context, draft *TelegramDraft) error {
	if err := utils.CheckDraft(draft); err != nil {
		return err
	}
	return uc.save(ctx, "Telegram settings saved", func(ctx context.Context) error {
		payload := entity.TelegramSettings{
			Enabled:        draft.Enabled,
			BotToken:       draft.BotToken,
			ChatID:         draft.ChatID,
			NotifyOrders:   draft.NotifyOrders,
			NotifyDisputes: draft.NotifyDisputes,
		}
		var saved entity.TelegramSettings
		if err := uc.client.Put(ctx, "/admin/telegram/settings", payload, &saved); err != nil {
			return err
		}
		uc.mu.Lock()
		uc.telegram = &saved
		uc.mu.Unlock()
		return nil
	})
}

// TestTelegram asks the backend to push a test message through the
// configured bot.
func (uc *SettingsUseCase) TestTelegram(ctx context.Context) error {
	return uc.save(ctx, "Test message sent", func(ctx context.Context) error {
		return uc.client.Post(ctx, "/admin/telegram/test", nil, nil)
	})
}

func (uc *SettingsUseCase) save(ctx context.Context, successMsg string, op func(ctx context.Context) error) error {
	uc.mu.Lock()
	if uc.saving {
		uc.mu.Unlock()
		return errors.Busy("Saving settings")
	}
	uc.saving = true
	uc.mu.Unlock()

	defer func() {
		uc.mu.Lock()
		uc.saving = false
		uc.mu.Unlock()
	}()

	if err := op(ctx); err != nil {
		uc.notify.Error(errors.Message(err))
		return err
	}
	uc.notify.Success(successMsg)
	return nil
}

func cloneStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

package usecase

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"dukkan/internal/adapter/rest"
	"dukkan/internal/domain/entity"
	"dukkan/internal/manager"
	"dukkan/pkg/errors"
	"dukkan/pkg/feedback"
)

// Reset scopes, least destructive first. "today" is the default the UI
// offers; the operator must deliberately widen the scope.
const (
	ResetPeriodToday = "today"
	ResetPeriodWeek  = "week"
	ResetPeriodMonth = "month"
	ResetPeriodAll   = "all"

	DefaultResetPeriod = ResetPeriodToday
)

type AnalyticsUseCase struct {
	client *rest.Client
	notify feedback.Notifier

	mu       sync.Mutex
	overview *entity.AnalyticsOverview
	busy     bool
}

func NewAnalyticsUseCase(client *rest.Client, notify feedback.Notifier) *AnalyticsUseCase {
	if notify == nil {
		notify = feedback.Discard{}
	}
	return &AnalyticsUseCase{client: client, notify: notify}
}

// Load fetches the overview document. On failure the previously held
// overview stays in place.
func (uc *AnalyticsUseCase) Load(ctx context.Context) error {
	var overview entity.AnalyticsOverview
	if err := uc.client.Get(ctx, "/admin/analytics/overview", nil, &overview); err != nil {
		uc.notify.Error(errors.Message(err))
		return err
	}
	uc.mu.Lock()
	uc.overview = &overview
	uc.mu.Unlock()
	return nil
}

func (uc *AnalyticsUseCase) Overview() *entity.AnalyticsOverview {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.overview == nil {
		return nil
	}
	copied := *uc.overview
	copied.TopProducts = append([]entity.TopProduct(nil), uc.overview.TopProducts...)
	return &copied
}

func validResetPeriod(period string) bool {
	switch period {
	case ResetPeriodToday, ResetPeriodWeek, ResetPeriodMonth, ResetPeriodAll:
		return true
	}
	return false
}

// Reset wipes analytics for the chosen scope, then refetches the overview.
// Exactly one DELETE goes out, and only after the operator confirms.
func (uc *AnalyticsUseCase) Reset(ctx context.Context, period string, confirm manager.Confirmer) error {
	if !validResetPeriod(period) {
		return errors.Validation("period must be one of: today week month all")
	}
	if !confirm.Confirm(fmt.Sprintf("Reset analytics for scope %q? This cannot be undone.", period)) {
		return errors.Conflict("Reset was not confirmed")
	}

	uc.mu.Lock()
	if uc.busy {
		uc.mu.Unlock()
		return errors.Busy("Analytics reset")
	}
	uc.busy = true
	uc.mu.Unlock()

	defer func() {
		uc.mu.Lock()
		uc.busy = false
		uc.mu.Unlock()
	}()

	query := url.Values{}
	query.Set("period", period)
	if err := uc.client.Delete(ctx, "/admin/analytics/reset", query); err != nil {
		uc.notify.Error(errors.Message(err))
		return err
	}

	if err := uc.Load(ctx); err != nil {
		return err
	}
	uc.notify.Success("Analytics reset")
	return nil
}

// AuditUseCase lists the immutable audit trail. There is no mutation path;
// entries only page.
type AuditUseCase struct {
	client *rest.Client
	col    *manager.Collection[entity.AuditLog]
}

func NewAuditUseCase(client *rest.Client, notify feedback.Notifier) *AuditUseCase {
	uc := &AuditUseCase{client: client}
	uc.col = manager.New(uc.fetchLogs, func(l entity.AuditLog) string { return l.ID }, notify)
	return uc
}

func (uc *AuditUseCase) Collection() *manager.Collection[entity.AuditLog] {
	return uc.col
}

func (uc *AuditUseCase) fetchLogs(ctx context.Context, q manager.Query) (manager.Page[entity.AuditLog], error) {
	res, err := rest.GetList[entity.AuditLog](ctx, uc.client, "/admin/audit-logs", q.Values())
	if err != nil {
		return manager.Page[entity.AuditLog]{}, err
	}
	return manager.Page[entity.AuditLog]{Items: res.Items, Total: res.Total, TotalReported: res.TotalReported}, nil
}

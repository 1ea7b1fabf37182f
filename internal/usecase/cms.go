package usecase

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"dukkan/internal/adapter/rest"
	"dukkan/internal/domain/entity"
	"dukkan/internal/manager"
	"dukkan/pkg/errors"
	"dukkan/pkg/feedback"
	"dukkan/pkg/utils"
)

// CMSUseCase manages the static content screen: CMS pages and FAQ entries,
// two collections rendered together and initially loaded in parallel.
type CMSUseCase struct {
	client *rest.Client
	pages  *manager.Collection[entity.Page]
	faqs   *manager.Collection[entity.FAQ]
	notify feedback.Notifier
}

func NewCMSUseCase(client *rest.Client, notify feedback.Notifier) *CMSUseCase {
	if notify == nil {
		notify = feedback.Discard{}
	}
	uc := &CMSUseCase{client: client, notify: notify}
	uc.pages = manager.New(uc.fetchPages, func(p entity.Page) string { return p.ID }, notify)
	uc.faqs = manager.New(uc.fetchFAQs, func(f entity.FAQ) string { return f.ID }, notify)
	return uc
}

func (uc *CMSUseCase) Pages() *manager.Collection[entity.Page] {
	return uc.pages
}

func (uc *CMSUseCase) FAQs() *manager.Collection[entity.FAQ] {
	return uc.faqs
}

func (uc *CMSUseCase) fetchPages(ctx context.Context, q manager.Query) (manager.Page[entity.Page], error) {
	res, err := rest.GetList[entity.Page](ctx, uc.client, "/admin/pages", q.Values())
	if err != nil {
		return manager.Page[entity.Page]{}, err
	}
	return manager.Page[entity.Page]{Items: res.Items, Total: res.Total, TotalReported: res.TotalReported}, nil
}

func (uc *CMSUseCase) fetchFAQs(ctx context.Context, q manager.Query) (manager.Page[entity.FAQ], error) {
	res, err := rest.GetList[entity.FAQ](ctx, uc.client, "/admin/faq", q.Values())
	if err != nil {
		return manager.Page[entity.FAQ]{}, err
	}
	return manager.Page[entity.FAQ]{Items: res.Items, Total: res.Total, TotalReported: res.TotalReported}, nil
}

// Load fetches pages and FAQs in parallel and waits for both. A failing
// sub-fetch is surfaced under its own name; the other collection still
// loads, so the screen never silently renders stale halves.
func (uc *CMSUseCase) Load(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error {
		if err := uc.pages.Load(ctx); err != nil {
			return fmt.Errorf("pages: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := uc.faqs.Load(ctx); err != nil {
			return fmt.Errorf("faq: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return errors.New("LOAD_FAILED", err.Error(), 0, err)
	}
	return nil
}

type PageDraft struct {
	Slug        string `validate:"required"`
	Title       string `validate:"required"`
	Body        string `validate:"required"`
	Order       string
	IsPublished bool
}

type pagePayload struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	Order       int    `json:"order"`
	IsPublished bool   `json:"is_published"`
}

func (d *PageDraft) payload() (*pagePayload, error) {
	if err := utils.CheckDraft(d); err != nil {
		return nil, err
	}
	order, err := utils.ParseCount("order", orZero(d.Order))
	if err != nil {
		return nil, err
	}
	return &pagePayload{
		Slug:        utils.Slugify(d.Slug),
		Title:       d.Title,
		Body:        d.Body,
		Order:       order,
		IsPublished: d.IsPublished,
	}, nil
}

func (uc *CMSUseCase) CreatePage(ctx context.Context, draft *PageDraft) error {
	payload, err := draft.payload()
	if err != nil {
		return err
	}
	return uc.pages.Mutate(ctx, manager.Refetch, "Page created", func(ctx context.Context) (manager.Patch[entity.Page], error) {
		return manager.Patch[entity.Page]{}, uc.client.Post(ctx, "/admin/pages", payload, nil)
	})
}

func (uc *CMSUseCase) UpdatePage(ctx context.Context, id string, draft *PageDraft) error {
	payload, err := draft.payload()
	if err != nil {
		return err
	}
	return uc.pages.Mutate(ctx, manager.Refetch, "Page updated", func(ctx context.Context) (manager.Patch[entity.Page], error) {
		return manager.Patch[entity.Page]{}, uc.client.Put(ctx, "/admin/pages/"+id, payload, nil)
	})
}

func (uc *CMSUseCase) DeletePage(ctx context.Context, id string, confirm manager.Confirmer) error {
	if !confirm.Confirm("Delete this page?") {
		return errors.Conflict("Deletion was not confirmed")
	}
	return uc.pages.Mutate(ctx, manager.Refetch, "Page deleted", func(ctx context.Context) (manager.Patch[entity.Page], error) {
		return manager.Patch[entity.Page]{}, uc.client.Delete(ctx, "/admin/pages/"+id, nil)
	})
}

type FAQDraft struct {
	Question    string `validate:"required"`
	Answer      string `validate:"required"`
	Order       string
	IsPublished bool
}

type faqPayload struct {
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	Order       int    `json:"order"`
	IsPublished bool   `json:"is_published"`
}

func (d *FAQDraft) payload() (*faqPayload, error) {
	if err := utils.CheckDraft(d); err != nil {
		return nil, err
	}
	order, err := utils.ParseCount("order", orZero(d.Order))
	if err != nil {
		return nil, err
	}
	return &faqPayload{
		Question:    d.Question,
		Answer:      d.Answer,
		Order:       order,
		IsPublished: d.IsPublished,
	}, nil
}

func (uc *CMSUseCase) CreateFAQ(ctx context.Context, draft *FAQDraft) error {
	payload, err := draft.payload()
	if err != nil {
		return err
	}
	return uc.faqs.Mutate(ctx, manager.Refetch, "FAQ created", func(ctx context.Context) (manager.Patch[entity.FAQ], error) {
		return manager.Patch[entity.FAQ]{}, uc.client.Post(ctx, "/admin/faq", payload, nil)
	})
}

func (uc *CMSUseCase) UpdateFAQ(ctx context.Context, id string, draft *FAQDraft) error {
	payload, err := draft.payload()
	if err != nil {
		return err
	}
	return uc.faqs.Mutate(ctx, manager.Refetch, "FAQ updated", func(ctx context.Context) (manager.Patch[entity.FAQ], error) {
		return manager.Patch[entity.FAQ]{}, uc.client.Put(ctx, "/admin/faq/"+id, payload, nil)
	})
}

func (uc *CMSUseCase) DeleteFAQ(ctx context.Context, id string, confirm manager.Confirmer) error {
	if !confirm.Confirm("Delete this FAQ entry?") {
		return errors.Conflict("Deletion was not confirmed")
	}
	return uc.faqs.Mutate(ctx, manager.Refetch, "FAQ deleted", func(ctx context.Context) (manager.Patch[entity.FAQ], error) {
		return manager.Patch[entity.FAQ]{}, uc.client.Delete(ctx, "/admin/faq/"+id, nil)
	})
}

package usecase

import (
	"context"

	"dukkan/internal/adapter/rest"
	"dukkan/internal/domain/entity"
	"dukkan/internal/manager"
	"dukkan/pkg/errors"
	"dukkan/pkg/feedback"
	"dukkan/pkg/utils"
)

type BannerUseCase struct {
	client *rest.Client
	col    *manager.Collection[entity.Banner]
}

func NewBannerUseCase(client *rest.Client, notify feedback.Notifier) *BannerUseCase {
	uc := &BannerUseCase{client: client}
	uc.col = manager.New(uc.fetchBanners, func(b entity.Banner) string { return b.ID }, notify)
	return uc
}

func (uc *BannerUseCase) Collection() *manager.Collection[entity.Banner] {
	return uc.col
}

func (uc *BannerUseCase) fetchBanners(ctx context.Context, q manager.Query) (manager.Page[entity.Banner], error) {
	res, err := rest.GetList[entity.Banner](ctx, uc.client, "/admin/banners", q.Values())
	if err != nil {
		return manager.Page[entity.Banner]{}, err
	}
	return manager.Page[entity.Banner]{Items: res.Items, Total: res.Total, TotalReported: res.TotalReported}, nil
}

type BannerDraft struct {
	Title    string `validate:"required"`
	ImageURL string `validate:"required"`
	LinkURL  string
	Priority string
	IsActive bool
}

type bannerPayload struct {
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
	LinkURL  string `json:"link_url,omitempty"`
	Priority int    `json:"priority"`
	IsActive bool   `json:"is_active"`
}

func (d *BannerDraft) payload() (*bannerPayload, error) {
	if err := utils.CheckDraft(d); err != nil {
		return nil, err
	}
	priority, err := utils.ParseCount("priority", orZero(d.Priority))
	if err != nil {
		return nil, err
	}
	return &bannerPayload{
		Title:    d.Title,
		ImageURL: d.ImageURL,
		LinkURL:  d.LinkURL,
		Priority: priority,
		IsActive: d.IsActive,
	}, nil
}

func (uc *BannerUseCase) Create(ctx context.Context, draft *BannerDraft) error {
	payload, err := draft.payload()
	if err != nil {
		return err
	}
	return uc.col.Mutate(ctx, manager.Refetch, "Banner created", func(ctx context.Context) (manager.Patch[entity.Banner], error) {
		return manager.Patch[entity.Banner]{}, uc.client.Post(ctx, "/admin/banners", payload, nil)
	})
}

func (uc *BannerUseCase) Update(ctx context.Context, id string, draft *BannerDraft) error {
	payload, err := draft.payload()
	if err != nil {
		return err
	}
	return uc.col.Mutate(ctx, manager.Refetch, "Banner updated", func(ctx context.Context) (manager.Patch[entity.Banner], error) {
		return manager.Patch[entity.Banner]{}, uc.client.Put(ctx, "/admin/banners/"+id, payload, nil)
	})
}

func (uc *BannerUseCase) SetActive(ctx context.Context, id string, active bool) error {
	return uc.col.Mutate(ctx, manager.PatchInPlace, "Banner updated", func(ctx context.Context) (manager.Patch[entity.Banner], error) {
		body := struct {
			IsActive bool `json:"is_active"`
		}{IsActive: active}
		if err := uc.client.Put(ctx, "/admin/banners/"+id, body, nil); err != nil {
			return manager.Patch[entity.Banner]{}, err
		}
		return manager.Patch[entity.Banner]{ID: id, Apply: func(b *entity.Banner) { b.IsActive = active }}, nil
	})
}

func (uc *BannerUseCase) Delete(ctx context.Context, id string, confirm manager.Confirmer) error {
	if !confirm.Confirm("Delete this banner?") {
		return errors.Conflict("Deletion was not confirmed")
	}
	return uc.col.Mutate(ctx, manager.Refetch, "Banner deleted", func(ctx context.Context) (manager.Patch[entity.Banner], error) {
		return manager.Patch[entity.Banner]{}, uc.client.Delete(ctx, "/admin/banners/"+id, nil)
	})
}

// HomepageSectionUseCase manages the ordered sections of the storefront
// landing page. Same loop as banners; ordering travels in the draft.
type HomepageSectionUseCase struct {
	client *rest.Client
	col    *manager.Collection[entity.HomepageSection]
}

func NewHomepageSectionUseCase(client *rest.Client, notify feedback.Notifier) *HomepageSectionUseCase {
	uc := &HomepageSectionUseCase{client: client}
	uc.col = manager.New(uc.fetchSections, func(s entity.HomepageSection) string { return s.ID }, notify)
	return uc
}

func (uc *HomepageSectionUseCase) Collection() *manager.Collection[entity.HomepageSection] {
	return uc.col
}

func (uc *HomepageSectionUseCase) fetchSections(ctx context.Context, q manager.Query) (manager.Page[entity.HomepageSection], error) {
	res, err := rest.GetList[entity.HomepageSection](ctx, uc.client, "/admin/homepage/sections", q.Values())
	if err != nil {
		return manager.Page[entity.HomepageSection]{}, err
	}
	return manager.Page[entity.HomepageSection]{Items: res.Items, Total: res.Total, TotalReported: res.TotalReported}, nil
}

type SectionDraft struct {
	Title      string `validate:"required"`
	TitleEN    string
	Kind       string `validate:"required,oneof=featured category manual"`
	ProductIDs []string
	Order      string
	IsActive   bool
}

type sectionPayload struct {
	Title      string   `json:"title"`
	TitleEN    string   `json:"title_en,omitempty"`
	Kind       string   `json:"kind"`
	ProductIDs []string `json:"product_ids,omitempty"`
	Order      int      `json:"order"`
	IsActive   bool     `json:"is_active"`
}

func (d *SectionDraft) payload() (*sectionPayload, error) {
	if err := utils.CheckDraft(d); err != nil {
		return nil, err
	}
	order, err := utils.ParseCount("order", orZero(d.Order))
	if err != nil {
		return nil, err
	}
	return &sectionPayload{
		Title:      d.Title,
		TitleEN:    d.TitleEN,
		Kind:       d.Kind,
		ProductIDs: append([]string(nil), d.ProductIDs...),
		Order:      order,
		IsActive:   d.IsActive,
	}, nil
}

func (uc *HomepageSectionUseCase) Create(ctx context.Context, draft *SectionDraft) error {
	payload, err := draft.payload()
	if err != nil {
		return err
	}
	return uc.col.Mutate(ctx, manager.Refetch, "Section created", func(ctx context.Context) (manager.Patch[entity.HomepageSection], error) {
		return manager.Patch[entity.HomepageSection]{}, uc.client.Post(ctx, "/admin/homepage/sections", payload, nil)
	})
}

func (uc *HomepageSectionUseCase) Update(ctx context.Context, id string, draft *SectionDraft) error {
	payload, err := draft.payload()
	if err != nil {
		return err
	}
	return uc.col.Mutate(ctx, manager.Refetch, "Section updated", func(ctx context.Context) (manager.Patch[entity.HomepageSection], error) {
		return manager.Patch[entity.HomepageSection]{}, uc.client.Put(ctx, "/admin/homepage/sections/"+id, payload, nil)
	})
}

func (uc *HomepageSectionUseCase) Delete(ctx context.Context, id string, confirm manager.Confirmer) error {
	if !confirm.Confirm("Delete this homepage section?") {
		return errors.Conflict("Deletion was not confirmed")
	}
	return uc.col.Mutate(ctx, manager.Refetch, "Section deleted", func(ctx context.Context) (manager.Patch[entity.HomepageSection], error) {
		return manager.Patch[entity.HomepageSection]{}, uc.client.Delete(ctx, "/admin/homepage/sections/"+id, nil)
	})
}

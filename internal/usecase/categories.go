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

type CategoryUseCase struct {
	client *rest.Client
	col    *manager.Collection[entity.Category]
}

func NewCategoryUseCase(client *rest.Client, notify feedback.Notifier) *CategoryUseCase {
	uc := &CategoryUseCase{client: client}
	uc.col = manager.New(uc.fetchCategories, func(c entity.Category) string { return c.ID }, notify)
	return uc
}

func (uc *CategoryUseCase) Collection() *manager.Collection[entity.Category] {
	return uc.col
}

func (uc *CategoryUseCase) fetchCategories(ctx context.Context, q manager.Query) (manager.Page[entity.Category], error) {
	res, err := rest.GetList[entity.Category](ctx, uc.client, "/admin/categories", q.Values())
	if err != nil {
		return manager.Page[entity.Category]{}, err
	}
	return manager.Page[entity.Category]{Items: res.Items, Total: res.Total, TotalReported: res.TotalReported}, nil
}

type CategoryDraft struct {
	Name     string `validate:"required"`
	NameEN   string
	Slug     string `validate:"required"`
	Icon     string
	Order    string
	IsActive bool
}

func EditCategoryDraft(c entity.Category) *CategoryDraft {
	return &CategoryDraft{
		Name:     c.Name,
		NameEN:   c.NameEN,
		Slug:     c.Slug,
		Icon:     c.Icon,
		Order:    utils.FormatCount(c.Order),
		IsActive: c.IsActive,
	}
}

type categoryPayload struct {
	Name     string `json:"name"`
	NameEN   string `json:"name_en,omitempty"`
	Slug     string `json:"slug"`
	Icon     string `json:"icon,omitempty"`
	Order    int    `json:"order"`
	IsActive bool   `json:"is_active"`
}

func (d *CategoryDraft) payload() (*categoryPayload, error) {
	if err := utils.CheckDraft(d); err != nil {
		return nil, err
	}
	order, err := utils.ParseCount("order", orZero(d.Order))
	if err != nil {
		return nil, err
	}
	return &categoryPayload{
		Name:     d.Name,
		NameEN:   d.NameEN,
		Slug:     utils.Slugify(d.Slug),
		Icon:     d.Icon,
		Order:    order,
		IsActive: d.IsActive,
	}, nil
}

func (uc *CategoryUseCase) Create(ctx context.Context, draft *CategoryDraft) error {
	payload, err := draft.payload()
	if err != nil {
		return err
	}
	return uc.col.Mutate(ctx, manager.Refetch, "Category created", func(ctx context.Context) (manager.Patch[entity.Category], error) {
		return manager.Patch[entity.Category]{}, uc.client.Post(ctx, "/admin/categories", payload, nil)
	})
}

func (uc *CategoryUseCase) Update(ctx context.Context, id string, draft *CategoryDraft) error {
	payload, err := draft.payload()
	if err != nil {
		return err
	}
	return uc.col.Mutate(ctx, manager.Refetch, "Category updated", func(ctx context.Context) (manager.Patch[entity.Category], error) {
		return manager.Patch[entity.Category]{}, uc.client.Put(ctx, "/admin/categories/"+id, payload, nil)
	})
}

// Delete is irreversible and gates on explicit confirmation before the
// request fires.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string, confirm manager.Confirmer) error {
	if !confirm.Confirm("Delete this category? Products under it will be uncategorized.") {
		return errors.Conflict("Deletion was not confirmed")
	}
	return uc.col.Mutate(ctx, manager.Refetch, "Category deleted", func(ctx context.Context) (manager.Patch[entity.Category], error) {
		return manager.Patch[entity.Category]{}, uc.client.Delete(ctx, "/admin/categories/"+id, nil)
	})
}

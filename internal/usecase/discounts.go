package usecase

import (
	"context"

	"dukkan/internal/adapter/rest"
	"dukkan/internal/domain/entity"
	"dukkan/internal/manager"
	"dukkan/pkg/feedback"
	"dukkan/pkg/utils"
)

type DiscountUseCase struct {
	client *rest.Client
	col    *manager.Collection[entity.Discount]
}

func NewDiscountUseCase(client *rest.Client, notify feedback.Notifier) *DiscountUseCase {
	uc := &DiscountUseCase{client: client}
	uc.col = manager.New(uc.fetchDiscounts, func(d entity.Discount) string { return d.ID }, notify)
	return uc
}

func (uc *DiscountUseCase) Collection() *manager.Collection[entity.Discount] {
	return uc.col
}

func (uc *DiscountUseCase) fetchDiscounts(ctx context.Context, q manager.Query) (manager.Page[entity.Discount], error) {
	res, err := rest.GetList[entity.Discount](ctx, uc.client, "/admin/discounts", q.Values())
	if err != nil {
		return manager.Page[entity.Discount]{}, err
	}
	return manager.Page[entity.Discount]{Items: res.Items, Total: res.Total, TotalReported: res.TotalReported}, nil
}

// DiscountDraft holds the creation/edit form. Numeric fields are kept as
// strings until submission; an empty MaxUses means unlimited and is
// transmitted as null, never as an empty string.
type DiscountDraft struct {
	Code          string `validate:"required"`
	DiscountType  string `validate:"required,oneof=percentage fixed"`
	DiscountValue string `validate:"required"`
	MinPurchase   string
	MaxUses       string
	IsActive      bool
}

type discountPayload struct {
	Code          string   `json:"code"`
	DiscountType  string   `json:"discount_type"`
	DiscountValue float64  `json:"discount_value"`
	MinPurchase   *float64 `json:"min_purchase"`
	MaxUses       *int     `json:"max_uses"`
	IsActive      bool     `json:"is_active"`
}

func (d *DiscountDraft) payload() (*discountPayload, error) {
	if err := utils.CheckDraft(d); err != nil {
		return nil, err
	}
	value, err := utils.ParseAmount("discount_value", d.DiscountValue)
	if err != nil {
		return nil, err
	}
	minPurchase, err := utils.ParseOptionalAmount("min_purchase", d.MinPurchase)
	if err != nil {
		return nil, err
	}
	maxUses, err := utils.ParseOptionalCount("max_uses", d.MaxUses)
	if err != nil {
		return nil, err
	}
	return &discountPayload{
		Code:          utils.NormalizeCode(d.Code),
		DiscountType:  d.DiscountType,
		DiscountValue: value,
		MinPurchase:   minPurchase,
		MaxUses:       maxUses,
		IsActive:      d.IsActive,
	}, nil
}

func (uc *DiscountUseCase) Create(ctx context.Context, draft *DiscountDraft) error {
	payload, err := draft.payload()
	if err != nil {
		return err
	}
	return uc.col.Mutate(ctx, manager.Refetch, "Discount code created", func(ctx context.Context) (manager.Patch[entity.Discount], error) {
		return manager.Patch[entity.Discount]{}, uc.client.Post(ctx, "/admin/discounts", payload, nil)
	})
}

func (uc *DiscountUseCase) Update(ctx context.Context, id string, draft *DiscountDraft) error {
	payload, err := draft.payload()
	if err != nil {
		return err
	}
	return uc.col.Mutate(ctx, manager.Refetch, "Discount code updated", func(ctx context.Context) (manager.Patch[entity.Discount], error) {
		return manager.Patch[entity.Discount]{}, uc.client.Patch(ctx, "/admin/discounts/"+id, payload, nil)
	})
}

// SetActive toggles the code and patches the row with the server's copy, so
// used_count always reflects the server-side counter.
func (uc *DiscountUseCase) SetActive(ctx context.Context, id string, active bool) error {
	return uc.col.Mutate(ctx, manager.PatchInPlace, "Discount code updated", func(ctx context.Context) (manager.Patch[entity.Discount], error) {
		body := struct {
			IsActive bool `json:"is_active"`
		}{IsActive: active}

		var updated entity.Discount
		if err := uc.client.Patch(ctx, "/admin/discounts/"+id, body, &updated); err != nil {
			return manager.Patch[entity.Discount]{}, err
		}
		return manager.Patch[entity.Discount]{ID: id, Apply: func(d *entity.Discount) {
			d.IsActive = updated.IsActive
			d.UsedCount = updated.UsedCount
		}}, nil
	})
}

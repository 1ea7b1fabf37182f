package usecase

import (
	"context"
	"fmt"

	"dukkan/internal/adapter/rest"
	"dukkan/internal/domain/entity"
	"dukkan/internal/manager"
	"dukkan/pkg/errors"
	"dukkan/pkg/feedback"
)

type ProductUseCase struct {
	client *rest.Client
	col    *manager.Collection[entity.Product]
}

func NewProductUseCase(client *rest.Client, notify feedback.Notifier) *ProductUseCase {
	uc := &ProductUseCase{client: client}
	uc.col = manager.New(uc.fetchProducts, func(p entity.Product) string { return p.ID }, notify)
	return uc
}

func (uc *ProductUseCase) Collection() *manager.Collection[entity.Product] {
	return uc.col
}

func (uc *ProductUseCase) fetchProducts(ctx context.Context, q manager.Query) (manager.Page[entity.Product], error) {
	res, err := rest.GetList[entity.Product](ctx, uc.client, "/admin/products", q.Values())
	if err != nil {
		return manager.Page[entity.Product]{}, err
	}
	return manager.Page[entity.Product]{Items: res.Items, Total: res.Total, TotalReported: res.TotalReported}, nil
}

// Create submits a product draft and refetches the collection, so the new
// entity appears exactly once with its server-assigned id.
func (uc *ProductUseCase) Create(ctx context.Context, draft *ProductDraft) error {
	payload, err := draft.Payload()
	if err != nil {
		return err
	}
	return uc.col.Mutate(ctx, manager.Refetch, "Product created", func(ctx context.Context) (manager.Patch[entity.Product], error) {
		return manager.Patch[entity.Product]{}, uc.client.Post(ctx, "/admin/products", payload, nil)
	})
}

func (uc *ProductUseCase) Update(ctx context.Context, id string, draft *ProductDraft) error {
	payload, err := draft.Payload()
	if err != nil {
		return err
	}
	return uc.col.Mutate(ctx, manager.Refetch, "Product updated", func(ctx context.Context) (manager.Patch[entity.Product], error) {
		return manager.Patch[entity.Product]{}, uc.client.Put(ctx, "/admin/products/"+id, payload, nil)
	})
}

// SetActive toggles one flag with a minimal payload and patches the row in
// place; the rest of the collection is left alone.
func (uc *ProductUseCase) SetActive(ctx context.Context, id string, active bool) error {
	return uc.toggle(ctx, id, struct {
		IsActive bool `json:"is_active"`
	}{IsActive: active}, func(p *entity.Product) { p.IsActive = active })
}

func (uc *ProductUseCase) SetFeatured(ctx context.Context, id string, featured bool) error {
	return uc.toggle(ctx, id, struct {
		IsFeatured bool `json:"is_featured"`
	}{IsFeatured: featured}, func(p *entity.Product) { p.IsFeatured = featured })
}

func (uc *ProductUseCase) toggle(ctx context.Context, id string, body interface{}, apply func(*entity.Product)) error {
	return uc.col.Mutate(ctx, manager.PatchInPlace, "Product updated", func(ctx context.Context) (manager.Patch[entity.Product], error) {
		if err := uc.client.Put(ctx, "/admin/products/"+id, body, nil); err != nil {
			return manager.Patch[entity.Product]{}, err
		}
		return manager.Patch[entity.Product]{ID: id, Apply: apply}, nil
	})
}

// AddCodes appends delivery codes to a digital_code product's pool. The
// stock counter comes back from the server; the client never computes it.
func (uc *ProductUseCase) AddCodes(ctx context.Context, id string, codes []string) error {
	if len(codes) == 0 {
		return errors.Validation("codes must not be empty")
	}

	return uc.col.Mutate(ctx, manager.PatchInPlace, fmt.Sprintf("%d codes added", len(codes)), func(ctx context.Context) (manager.Patch[entity.Product], error) {
		body := struct {
			Codes []string `json:"codes"`
		}{Codes: codes}

		var result struct {
			Added      int `json:"added"`
			StockCount int `json:"stock_count"`
		}
		if err := uc.client.Post(ctx, fmt.Sprintf("/admin/products/%s/codes/add", id), body, &result); err != nil {
			return manager.Patch[entity.Product]{}, err
		}
		return manager.Patch[entity.Product]{ID: id, Apply: func(p *entity.Product) {
			p.StockCount = result.StockCount
		}}, nil
	})
}

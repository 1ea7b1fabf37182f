package usecase

import (
	"context"
	"fmt"

	"dukkan/internal/adapter/rest"
	"dukkan/internal/domain/entity"
	"dukkan/internal/manager"
	"dukkan/pkg/errors"
	"dukkan/pkg/feedback"
	"dukkan/pkg/utils"
)

type OrderUseCase struct {
	client   *rest.Client
	col      *manager.Collection[entity.Order]
	advanced bool
}

func NewOrderUseCase(client *rest.Client, notify feedback.Notifier) *OrderUseCase {
	uc := &OrderUseCase{client: client}
	uc.col = manager.New(uc.fetchOrders, func(o entity.Order) string { return o.ID }, notify)
	return uc
}

func (uc *OrderUseCase) Collection() *manager.Collection[entity.Order] {
	return uc.col
}

// UseAdvanced switches the list loader to the advanced endpoint, which
// accepts the extended filter set (date range, product type).
func (uc *OrderUseCase) UseAdvanced(enabled bool) {
	uc.advanced = enabled
}

func (uc *OrderUseCase) fetchOrders(ctx context.Context, q manager.Query) (manager.Page[entity.Order], error) {
	path := "/admin/orders"
	if uc.advanced {
		path = "/admin/orders/advanced"
	}
	res, err := rest.GetList[entity.Order](ctx, uc.client, path, q.Values())
	if err != nil {
		return manager.Page[entity.Order]{}, err
	}
	return manager.Page[entity.Order]{Items: res.Items, Total: res.Total, TotalReported: res.TotalReported}, nil
}

func validOrderStatus(status string) bool {
	switch status {
	case entity.OrderStatusPending, entity.OrderStatusPaid, entity.OrderStatusProcessing,
		entity.OrderStatusDelivered, entity.OrderStatusCancelled, entity.OrderStatusRefunded:
		return true
	}
	return false
}

// UpdateStatus transitions an order and reconciles the row in place with the
// server's copy, which carries the appended status_history entry.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, id, status string) error {
	if !validOrderStatus(status) {
		return errors.Validation("status must be one of: pending paid processing delivered cancelled refunded")
	}

	return uc.col.Mutate(ctx, manager.PatchInPlace, "Order status updated", func(ctx context.Context) (manager.Patch[entity.Order], error) {
		body := struct {
			Status string `json:"status"`
		}{Status: status}

		var updated entity.Order
		if err := uc.client.Put(ctx, fmt.Sprintf("/admin/orders/%s/status", id), body, &updated); err != nil {
			return manager.Patch[entity.Order]{}, err
		}
		return manager.Patch[entity.Order]{ID: id, Apply: func(o *entity.Order) { *o = updated }}, nil
	})
}

// DeliveryInput is the manual-delivery sub-form for account-type products.
// The customer notification that follows is the backend's job.
type DeliveryInput struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	SubscriptionEnd string `json:"subscription_end,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

func (uc *OrderUseCase) Deliver(ctx context.Context, id string, input DeliveryInput) error {
	if err := utils.CheckDraft(input); err != nil {
		return err
	}

	return uc.col.Mutate(ctx, manager.PatchInPlace, "Order delivered", func(ctx context.Context) (manager.Patch[entity.Order], error) {
		var updated entity.Order
		if err := uc.client.Post(ctx, fmt.Sprintf("/admin/orders/%s/deliver", id), input, &updated); err != nil {
			return manager.Patch[entity.Order]{}, err
		}
		return manager.Patch[entity.Order]{ID: id, Apply: func(o *entity.Order) { *o = updated }}, nil
	})
}

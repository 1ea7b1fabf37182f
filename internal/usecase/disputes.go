package usecase

import (
	"context"
	"fmt"
	"strings"

	"dukkan/internal/adapter/rest"
	"dukkan/internal/domain/entity"
	"dukkan/internal/manager"
	"dukkan/pkg/errors"
	"dukkan/pkg/feedback"
)

type DisputeUseCase struct {
	client *rest.Client
	col    *manager.Collection[entity.Dispute]
}

func NewDisputeUseCase(client *rest.Client, notify feedback.Notifier) *DisputeUseCase {
	uc := &DisputeUseCase{client: client}
	uc.col = manager.New(uc.fetchDisputes, func(d entity.Dispute) string { return d.ID }, notify)
	return uc
}

func (uc *DisputeUseCase) Collection() *manager.Collection[entity.Dispute] {
	return uc.col
}

func (uc *DisputeUseCase) fetchDisputes(ctx context.Context, q manager.Query) (manager.Page[entity.Dispute], error) {
	res, err := rest.GetList[entity.Dispute](ctx, uc.client, "/admin/disputes", q.Values())
	if err != nil {
		return manager.Page[entity.Dispute]{}, err
	}
	return manager.Page[entity.Dispute]{Items: res.Items, Total: res.Total, TotalReported: res.TotalReported}, nil
}

// Reply appends a message to the dispute thread. Resolution is terminal:
// once a held dispute reads resolved, the reply is rejected locally without
// touching the network.
func (uc *DisputeUseCase) Reply(ctx context.Context, id, message string) error {
	if strings.TrimSpace(message) == "" {
		return errors.Validation("message is required")
	}
	if d, ok := uc.col.Get(id); ok && d.Resolved() {
		return errors.Conflict("This dispute is resolved and cannot receive replies")
	}

	return uc.col.Mutate(ctx, manager.PatchInPlace, "Reply sent", func(ctx context.Context) (manager.Patch[entity.Dispute], error) {
		body := struct {
			Message string `json:"message"`
		}{Message: message}

		var updated entity.Dispute
		if err := uc.client.Post(ctx, fmt.Sprintf("/admin/disputes/%s/reply", id), body, &updated); err != nil {
			return manager.Patch[entity.Dispute]{}, err
		}
		return manager.Patch[entity.Dispute]{ID: id, Apply: func(d *entity.Dispute) { *d = updated }}, nil
	})
}

func validDecision(decision string) bool {
	switch decision {
	case entity.DecisionRefund, entity.DecisionRedeliver, entity.DecisionReject:
		return true
	}
	return false
}

// Resolve applies the terminal decision. There is no unresolve, so the call
// is confirmation-gated like any other irreversible action.
func (uc *DisputeUseCase) Resolve(ctx context.Context, id, decision, notes string, confirm manager.Confirmer) error {
	if !validDecision(decision) {
		return errors.Validation("decision must be one of: refund redeliver reject")
	}
	if strings.TrimSpace(notes) == "" {
		return errors.Validation("admin_notes is required")
	}
	if d, ok := uc.col.Get(id); ok && d.Resolved() {
		return errors.Conflict("This dispute is already resolved")
	}
	if !confirm.Confirm(fmt.Sprintf("Resolve this dispute as %q? This cannot be undone.", decision)) {
		return errors.Conflict("Resolution was not confirmed")
	}

	return uc.col.Mutate(ctx, manager.PatchInPlace, "Dispute resolved", func(ctx context.Context) (manager.Patch[entity.Dispute], error) {
		body := struct {
			Decision   string `json:"decision"`
			AdminNotes string `json:"admin_notes"`
		}{Decision: decision, AdminNotes: notes}

		var updated entity.Dispute
		if err := uc.client.Post(ctx, fmt.Sprintf("/admin/disputes/%s/resolve", id), body, &updated); err != nil {
			return manager.Patch[entity.Dispute]{}, err
		}
		return manager.Patch[entity.Dispute]{ID: id, Apply: func(d *entity.Dispute) { *d = updated }}, nil
	})
}

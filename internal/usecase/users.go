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

type UserUseCase struct {
	client *rest.Client
	col    *manager.Collection[entity.User]
	authz  *AuthzEditor
}

func NewUserUseCase(client *rest.Client, authz *AuthzEditor, notify feedback.Notifier) *UserUseCase {
	uc := &UserUseCase{client: client, authz: authz}
	uc.col = manager.New(uc.fetchUsers, func(u entity.User) string { return u.ID }, notify)
	return uc
}

func (uc *UserUseCase) Collection() *manager.Collection[entity.User] {
	return uc.col
}

func (uc *UserUseCase) Authz() *AuthzEditor {
	return uc.authz
}

func (uc *UserUseCase) fetchUsers(ctx context.Context, q manager.Query) (manager.Page[entity.User], error) {
	res, err := rest.GetList[entity.User](ctx, uc.client, "/admin/users", q.Values())
	if err != nil {
		return manager.Page[entity.User]{}, err
	}
	return manager.Page[entity.User]{Items: res.Items, Total: res.Total, TotalReported: res.TotalReported}, nil
}

// SetActive enables or disables an account with a minimal PATCH and an
// in-place row update.
func (uc *UserUseCase) SetActive(ctx context.Context, id string, active bool) error {
	return uc.col.Mutate(ctx, manager.PatchInPlace, "User updated", func(ctx context.Context) (manager.Patch[entity.User], error) {
		body := struct {
			IsActive bool `json:"is_active"`
		}{IsActive: active}
		if err := uc.client.Patch(ctx, "/admin/users/"+id, body, nil); err != nil {
			return manager.Patch[entity.User]{}, err
		}
		return manager.Patch[entity.User]{ID: id, Apply: func(u *entity.User) { u.IsActive = active }}, nil
	})
}

// ChangeRole delegates to the shared authorization editor and reconciles the
// row with the server's copy of the user.
func (uc *UserUseCase) ChangeRole(ctx context.Context, id, role string) error {
	return uc.col.Mutate(ctx, manager.PatchInPlace, "Role updated", func(ctx context.Context) (manager.Patch[entity.User], error) {
		updated, err := uc.authz.SetRole(ctx, id, role)
		if err != nil {
			return manager.Patch[entity.User]{}, err
		}
		return manager.Patch[entity.User]{ID: id, Apply: func(u *entity.User) {
			u.Role = updated.Role
			u.Permissions = updated.Permissions
		}}, nil
	})
}

// SetPermissions replaces the custom grant list through the shared editor.
func (uc *UserUseCase) SetPermissions(ctx context.Context, id string, permissions []string) error {
	return uc.col.Mutate(ctx, manager.PatchInPlace, "Permissions updated", func(ctx context.Context) (manager.Patch[entity.User], error) {
		granted, err := uc.authz.SetPermissions(ctx, id, permissions)
		if err != nil {
			return manager.Patch[entity.User]{}, err
		}
		return manager.Patch[entity.User]{ID: id, Apply: func(u *entity.User) {
			u.Permissions = granted
		}}, nil
	})
}

type walletResult struct {
	NewBalance float64 `json:"new_balance"`
}

// Credit adds funds to a user's wallet. The displayed balance is whatever
// the server reports back as new_balance, never a client-side sum.
func (uc *UserUseCase) Credit(ctx context.Context, userID string, amount float64, note string) error {
	return uc.walletOp(ctx, "/wallet/admin/credit", "/admin/wallet/credit", "Wallet credited", userID, amount, note)
}

// Deduct removes funds from a user's wallet.
func (uc *UserUseCase) Deduct(ctx context.Context, userID string, amount float64, note string) error {
	return uc.walletOp(ctx, "/wallet/admin/deduct", "", "Wallet deducted", userID, amount, note)
}

func (uc *UserUseCase) walletOp(ctx context.Context, path, legacyPath, successMsg, userID string, amount float64, note string) error {
	if amount <= 0 {
		return errors.Validation("amount must be greater than zero")
	}

	return uc.col.Mutate(ctx, manager.PatchInPlace, successMsg, func(ctx context.Context) (manager.Patch[entity.User], error) {
		body := struct {
			UserID string  `json:"user_id"`
			Amount float64 `json:"amount"`
			Note   string  `json:"note,omitempty"`
		}{UserID: userID, Amount: amount, Note: note}

		var result walletResult
		err := uc.client.Post(ctx, path, body, &result)
		// Older deployments only expose the /admin/wallet alias.
		if legacyPath != "" && errors.Is(err, "NOT_FOUND") {
			err = uc.client.Post(ctx, legacyPath, body, &result)
		}
		if err != nil {
			return manager.Patch[entity.User]{}, err
		}

		return manager.Patch[entity.User]{ID: userID, Apply: func(u *entity.User) {
			u.WalletBalanceJOD = result.NewBalance
		}}, nil
	})
}

// AuthzEditor is the single capability for editing roles and permissions.
// Both the Users screen and the Roles screen consume it, so the same server
// invariant is never reimplemented twice.
type AuthzEditor struct {
	client *rest.Client
}

func NewAuthzEditor(client *rest.Client) *AuthzEditor {
	return &AuthzEditor{client: client}
}

func validRole(role string) bool {
	switch role {
	case entity.RoleBuyer, entity.RoleSupport, entity.RoleModerator, entity.RoleAdmin:
		return true
	}
	return false
}

func (a *AuthzEditor) SetRole(ctx context.Context, userID, role string) (*entity.User, error) {
	if !validRole(role) {
		return nil, errors.Validation("role must be one of: buyer support moderator admin")
	}
	body := struct {
		Role string `json:"role"`
	}{Role: role}

	var updated entity.User
	if err := a.client.Put(ctx, fmt.Sprintf("/admin/users/%s/role", userID), body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (a *AuthzEditor) Permissions(ctx context.Context, userID string) ([]string, error) {
	var result struct {
		Permissions []string `json:"permissions"`
	}
	if err := a.client.Get(ctx, fmt.Sprintf("/admin/users/%s/permissions", userID), nil, &result); err != nil {
		return nil, err
	}
	return result.Permissions, nil
}

func (a *AuthzEditor) SetPermissions(ctx context.Context, userID string, permissions []string) ([]string, error) {
	body := struct {
		Permissions []string `json:"permissions"`
	}{Permissions: permissions}

	var result struct {
		Permissions []string `json:"permissions"`
	}
	if err := a.client.Put(ctx, fmt.Sprintf("/admin/users/%s/permissions", userID), body, &result); err != nil {
		return nil, err
	}
	if result.Permissions == nil {
		return permissions, nil
	}
	return result.Permissions, nil
}

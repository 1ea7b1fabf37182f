package usecase

import (
	"context"
	"fmt"
	"net/url"

	"golang.org/x/sync/errgroup"

	"dukkan/internal/adapter/rest"
	"dukkan/internal/domain/entity"
	"dukkan/pkg/errors"
	"dukkan/pkg/feedback"
)

// RolesScreen is the jointly-loaded state of the roles view: assignable
// roles, the permission catalog, and the user list, fetched in parallel.
type RolesScreen struct {
	Roles       []entity.RoleDefinition
	Permissions []string
	Users       []entity.User
}

// RolesUseCase is the second entry point into authorization editing. It
// reuses the same AuthzEditor as the Users screen rather than carrying its
// own role/permission logic.
type RolesUseCase struct {
	client *rest.Client
	authz  *AuthzEditor
	notify feedback.Notifier
}

func NewRolesUseCase(client *rest.Client, authz *AuthzEditor, notify feedback.Notifier) *RolesUseCase {
	if notify == nil {
		notify = feedback.Discard{}
	}
	return &RolesUseCase{client: client, authz: authz, notify: notify}
}

func (uc *RolesUseCase) Authz() *AuthzEditor {
	return uc.authz
}

// Load fetches roles, permissions, and users in parallel and joins them
// before the screen renders. A failing sub-fetch is reported by name, not
// swallowed into one opaque message.
func (uc *RolesUseCase) Load(ctx context.Context) (*RolesScreen, error) {
	screen := &RolesScreen{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var roles []entity.RoleDefinition
		if err := uc.client.Get(gctx, "/admin/roles", nil, &roles); err != nil {
			return fmt.Errorf("roles: %w", err)
		}
		screen.Roles = roles
		return nil
	})
	g.Go(func() error {
		var result struct {
			Permissions []string `json:"permissions"`
		}
		if err := uc.client.Get(gctx, "/admin/permissions", nil, &result); err != nil {
			return fmt.Errorf("permissions: %w", err)
		}
		screen.Permissions = result.Permissions
		return nil
	})
	g.Go(func() error {
		res, err := rest.GetList[entity.User](gctx, uc.client, "/admin/users", url.Values{"limit": {"100"}})
		if err != nil {
			return fmt.Errorf("users: %w", err)
		}
		screen.Users = res.Items
		return nil
	})

	if err := g.Wait(); err != nil {
		uc.notify.Error(fmt.Sprintf("Failed to load %s", err.Error()))
		return nil, errors.New("LOAD_FAILED", err.Error(), 0, err)
	}
	return screen, nil
}

package service

import (
	"context"
	"fmt"

	"github.com/academic-events/eventhub/internal/domain/common/errorz"
	"github.com/academic-events/eventhub/internal/domain/dto"
	"github.com/academic-events/eventhub/internal/domain/entity"
)

// SetRole changes the role of a user. Open sessions keep the old role until
// the next login.
func (m *Manager) SetRole(ctx context.Context, userID string, role entity.Role) (*entity.User, error) {
	if !role.Valid() {
		if _, err := m.requireAdmin(ctx); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: unknown role %q", errorz.ErrInvalidInput, role)
	}
	return m.updateUser(ctx, userID, func(u *entity.User) {
		u.Role = role
	})
}

// Deactivate blocks future logins of a user. An open session is not revoked.
func (m *Manager) Deactivate(ctx context.Context, userID string) (*entity.User, error) {
	return m.updateUser(ctx, userID, func(u *entity.User) {
		u.IsActive = false
	})
}

func (m *Manager) Activate(ctx context.Context, userID string) (*entity.User, error) {
	return m.updateUser(ctx, userID, func(u *entity.User) {
		u.IsActive = true
	})
}

// Users lists every user without passwords.
func (m *Manager) Users(ctx context.Context) ([]entity.User, error) {
	if _, err := m.requireAdmin(ctx); err != nil {
		return nil, err
	}
	users, err := m.storage.Users(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i] = users[i].Public()
	}
	return users, nil
}

func (m *Manager) updateUser(ctx context.Context, userID string, mutate func(u *entity.User)) (*entity.User, error) {
	session, err := m.requireAdmin(ctx)
	if err != nil {
		return nil, err
	}

	users, err := m.storage.Users(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID != userID {
			continue
		}
		mutate(&users[i])
		now := m.now()
		users[i].UpdatedAt = &now
		if err = m.storage.Save(ctx, dto.Changes{Users: users}); err != nil {
			return nil, err
		}
		m.logger.Infof("User updated (user_id=%s, role=%s, active=%t, by=%s)",
			userID, users[i].Role, users[i].IsActive, session.ID)
		public := users[i].Public()
		return &public, nil
	}
	return nil, errorz.ErrNotFound
}

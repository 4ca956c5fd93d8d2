package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/academic-events/eventhub/internal/domain/common/errorz"
	"github.com/academic-events/eventhub/internal/domain/dto"
	"github.com/academic-events/eventhub/internal/domain/entity"
	"github.com/academic-events/eventhub/internal/domain/utils/validator"
)

// Bootstrap seeds missing keys and inserts the configured admin account when no
// user has its email yet. It is safe to call on every start.
func (m *Manager) Bootstrap(ctx context.Context) error {
	if err := m.storage.Seed(ctx); err != nil {
		return fmt.Errorf("failed to seed storage: %w", err)
	}

	users, err := m.storage.Users(ctx)
	if err != nil {
		return err
	}
	adminEmail := validator.NormalizeEmail(m.cfg.Admin.Email)
	if adminEmail == "" {
		return nil
	}
	for _, u := range users {
		if validator.NormalizeEmail(u.Email) == adminEmail {
			m.logger.Debugf("Admin account already exists (user_id=%s)", u.ID)
			return nil
		}
	}

	id := m.cfg.Admin.ID
	if id == "" {
		id = m.newID()
	}
	users = append(users, entity.User{
		ID:        id,
		Name:      m.cfg.Admin.Name,
		Email:     adminEmail,
		Password:  m.cfg.Admin.Password,
		Role:      entity.Admin,
		CreatedAt: m.now(),
		IsActive:  true,
	})
	if err = m.storage.Save(ctx, dto.Changes{Users: users}); err != nil {
		return err
	}
	m.logger.Infof("Admin account created (user_id=%s, email=%s)", id, adminEmail)
	return nil
}

// RegisterUser creates an active account. The role defaults to participant.
func (m *Manager) RegisterUser(ctx context.Context, in dto.UserRegistration) (*entity.User, error) {
	in.Email = validator.NormalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if err := validator.Struct(in); err != nil {
		return nil, err
	}

	users, err := m.storage.Users(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if validator.NormalizeEmail(u.Email) == in.Email {
			return nil, errorz.ErrDuplicateEmail
		}
	}

	role := in.Role
	if role == "" {
		role = entity.Participant
	}
	user := entity.User{
		ID:          m.newID(),
		Name:        in.Name,
		Email:       in.Email,
		Phone:       in.Phone,
		Password:    in.Password,
		Role:        role,
		Institution: in.Institution,
		CreatedAt:   m.now(),
		IsActive:    true,
	}
	users = append(users, user)
	if err = m.storage.Save(ctx, dto.Changes{Users: users}); err != nil {
		return nil, err
	}

	m.logger.Infof("User registered (user_id=%s, role=%s)", user.ID, user.Role)
	public := user.Public()
	return &public, nil
}

// Login stores the session projection of the active user matching email.
// Passwords are compared exactly.
func (m *Manager) Login(ctx context.Context, email, password string) (*entity.Session, error) {
	email = validator.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, errorz.ErrInvalidCredentials
	}

	users, err := m.storage.Users(ctx)
	if err != nil {
		return nil, err
	}

	var user *entity.User
	for i := range users {
		if users[i].IsActive && validator.NormalizeEmail(users[i].Email) == email {
			user = &users[i]
			break
		}
	}
	if user == nil || user.Password != password {
		m.logger.Debugf("Login rejected (email=%s)", email)
		return nil, errorz.ErrInvalidCredentials
	}

	session := user.Session()
	if err = m.storage.Save(ctx, dto.Changes{SessionSet: true, Session: session}); err != nil {
		return nil, err
	}
	m.logger.Infof("User logged in (user_id=%s)", user.ID)
	return session, nil
}

func (m *Manager) Logout(ctx context.Context) error {
	return m.storage.Save(ctx, dto.Changes{SessionSet: true})
}

// CurrentUser returns the stored session, nil when nobody is logged in.
func (m *Manager) CurrentUser(ctx context.Context) (*entity.Session, error) {
	return m.storage.Session(ctx)
}

package service

import (
	"context"
	"time"

	"github.com/academic-events/eventhub/internal/domain/common/errorz"
	"github.com/academic-events/eventhub/internal/domain/dto"
	"github.com/academic-events/eventhub/internal/domain/entity"
	"github.com/academic-events/eventhub/internal/domain/utils/location"
	"github.com/academic-events/eventhub/pkg/logger/types"
	"github.com/google/uuid"
)

// DefaultImage is the placeholder used for events created without an image.
const DefaultImage = "assets/images/eventoscientificos.png"

// Storage is the persisted profile the manager reads and writes.
// Save must apply all changes or none of them.
type Storage interface {
	Seed(ctx context.Context) error
	Users(ctx context.Context) ([]entity.User, error)
	Events(ctx context.Context) ([]entity.Event, error)
	Registrations(ctx context.Context) ([]entity.Registration, error)
	Certificates(ctx context.Context) ([]entity.Certificate, error)
	Notifications(ctx context.Context) ([]entity.Notification, error)
	Session(ctx context.Context) (*entity.Session, error)
	Save(ctx context.Context, changes dto.Changes) error
}

type mailer interface {
	SendNotification(to, title, message string)
}

type qrGenerator interface {
	Generate(content string) ([]byte, error)
}

// AdminAccount is the account inserted by Bootstrap when its email is unknown.
type AdminAccount struct {
	ID       string
	Name     string
	Email    string
	Password string
}

type Config struct {
	Admin        AdminAccount
	DefaultImage string
	// VerifyURL is a format with one %s verb for the certificate code.
	// When empty the QR code carries the bare code.
	VerifyURL string
	// Location is used to resolve event start times. Nil means location.Location().
	Location *time.Location
}

func DefaultConfig() Config {
	return Config{
		Admin: AdminAccount{
			ID:       "admin-001",
			Name:     "Administrador",
			Email:    "admin@admin.com",
			Password: "admin123",
		},
		DefaultImage: DefaultImage,
	}
}

// Manager owns every collection of a profile and enforces the rules between them.
// It assumes a single writer per profile.
type Manager struct {
	storage Storage
	mailer  mailer
	qr      qrGenerator
	cfg     Config
	logger  *types.Logger

	now   func() time.Time
	newID func() string
}

type Option func(*Manager)

// WithMailer sends a mail copy of every new notification.
func WithMailer(m mailer) Option {
	return func(manager *Manager) {
		manager.mailer = m
	}
}

func WithQRGenerator(g qrGenerator) Option {
	return func(manager *Manager) {
		manager.qr = g
	}
}

func WithClock(now func() time.Time) Option {
	return func(manager *Manager) {
		manager.now = now
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(manager *Manager) {
		manager.newID = newID
	}
}

func NewManager(logger *types.Logger, storage Storage, cfg Config, opts ...Option) *Manager {
	if cfg.DefaultImage == "" {
		cfg.DefaultImage = DefaultImage
	}
	m := &Manager{
		storage: storage,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
		newID: func() string {
			return uuid.Must(uuid.NewV7()).String()
		},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) location() *time.Location {
	if m.cfg.Location != nil {
		return m.cfg.Location
	}
	return location.Location()
}

func (m *Manager) requireSession(ctx context.Context) (*entity.Session, error) {
	session, err := m.storage.Session(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, errorz.ErrUnauthenticated
	}
	return session, nil
}

func (m *Manager) requireAdmin(ctx context.Context) (*entity.Session, error) {
	session, err := m.requireSession(ctx)
	if err != nil {
		return nil, err
	}
	if !session.IsAdmin() {
		return nil, errorz.ErrForbidden
	}
	return session, nil
}

func (m *Manager) notification(in dto.NotificationInput) entity.Notification {
	n := entity.Notification{
		ID:        m.newID(),
		UserID:    in.UserID,
		Type:      in.Type,
		Title:     in.Title,
		Message:   in.Message,
		CreatedAt: m.now(),
	}
	if in.EventID != "" {
		eventID := in.EventID
		n.EventID = &eventID
	}
	return n
}

// deliver mails a copy of already stored notifications. Failures are logged only.
func (m *Manager) deliver(ctx context.Context, notifications ...entity.Notification) {
	if m.mailer == nil || len(notifications) == 0 {
		return
	}
	users, err := m.storage.Users(ctx)
	if err != nil {
		m.logger.Errorf("failed to load users for notification mail: %v", err)
		return
	}
	emails := make(map[string]string, len(users))
	for _, u := range users {
		emails[u.ID] = u.Email
	}
	for _, n := range notifications {
		email, ok := emails[n.UserID]
		if !ok || email == "" {
			m.logger.Debugf("no email for notification recipient (user_id=%s)", n.UserID)
			continue
		}
		m.mailer.SendNotification(email, n.Title, n.Message)
	}
}

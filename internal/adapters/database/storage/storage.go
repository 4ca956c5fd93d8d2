package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/academic-events/eventhub/internal/domain/dto"
	"github.com/academic-events/eventhub/internal/domain/entity"
)

// Keys of the persisted profile layout.
const (
	UsersKey         = "users"
	EventsKey        = "events"
	RegistrationsKey = "registrations"
	CertificatesKey  = "certificates"
	NotificationsKey = "notifications"
	SessionKey       = "currentUser"
)

var collectionKeys = []string{UsersKey, EventsKey, RegistrationsKey, CertificatesKey, NotificationsKey}

// KV is a profile-scoped key-value backend.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	SetMany(ctx context.Context, entries map[string]string) error
}

// Storage keeps every collection as one JSON document under its key.
type Storage struct {
	kv KV
}

func New(kv KV) *Storage {
	return &Storage{kv: kv}
}

// Seed writes an empty collection for every missing key and a null session
// when none is stored.
func (s *Storage) Seed(ctx context.Context) error {
	entries := make(map[string]string)
	for _, key := range collectionKeys {
		_, ok, err := s.kv.Get(ctx, key)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", key, err)
		}
		if !ok {
			entries[key] = "[]"
		}
	}
	if _, ok, err := s.kv.Get(ctx, SessionKey); err != nil {
		return fmt.Errorf("failed to read %s: %w", SessionKey, err)
	} else if !ok {
		entries[SessionKey] = "null"
	}

	if len(entries) == 0 {
		return nil
	}
	return s.kv.SetMany(ctx, entries)
}

func (s *Storage) Users(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	return users, s.load(ctx, UsersKey, &users)
}

func (s *Storage) Events(ctx context.Context) ([]entity.Event, error) {
	var events []entity.Event
	return events, s.load(ctx, EventsKey, &events)
}

func (s *Storage) Registrations(ctx context.Context) ([]entity.Registration, error) {
	var registrations []entity.Registration
	return registrations, s.load(ctx, RegistrationsKey, &registrations)
}

func (s *Storage) Certificates(ctx context.Context) ([]entity.Certificate, error) {
	var certificates []entity.Certificate
	return certificates, s.load(ctx, CertificatesKey, &certificates)
}

func (s *Storage) Notifications(ctx context.Context) ([]entity.Notification, error) {
	var notifications []entity.Notification
	return notifications, s.load(ctx, NotificationsKey, &notifications)
}

// Session returns the stored session or nil when nobody is logged in.
func (s *Storage) Session(ctx context.Context) (*entity.Session, error) {
	var session *entity.Session
	return session, s.load(ctx, SessionKey, &session)
}

// Save encodes every changed collection first and then writes them in one step,
// so an encoding failure leaves the store untouched.
func (s *Storage) Save(ctx context.Context, changes dto.Changes) error {
	if changes.Empty() {
		return nil
	}

	entries := make(map[string]string)
	add := func(key string, v interface{}) error {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", key, err)
		}
		entries[key] = string(data)
		return nil
	}

	if changes.Users != nil {
		if err := add(UsersKey, changes.Users); err != nil {
			return err
		}
	}
	if changes.Events != nil {
		if err := add(EventsKey, changes.Events); err != nil {
			return err
		}
	}
	if changes.Registrations != nil {
		if err := add(RegistrationsKey, changes.Registrations); err != nil {
			return err
		}
	}
	if changes.Certificates != nil {
		if err := add(CertificatesKey, changes.Certificates); err != nil {
			return err
		}
	}
	if changes.Notifications != nil {
		if err := add(NotificationsKey, changes.Notifications); err != nil {
			return err
		}
	}
	if changes.SessionSet {
		if err := add(SessionKey, changes.Session); err != nil {
			return err
		}
	}

	if err := s.kv.SetMany(ctx, entries); err != nil {
		return fmt.Errorf("failed to write changes: %w", err)
	}
	return nil
}

// load decodes key into v. A missing key leaves v at its zero value.
func (s *Storage) load(ctx context.Context, key string, v interface{}) error {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok || raw == "" {
		return nil
	}
	if err = json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

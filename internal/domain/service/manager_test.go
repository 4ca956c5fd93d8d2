package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/academic-events/eventhub/internal/adapters/database/memory"
	"github.com/academic-events/eventhub/internal/adapters/database/storage"
	"github.com/academic-events/eventhub/internal/domain/dto"
	"github.com/academic-events/eventhub/internal/domain/entity"
	"github.com/academic-events/eventhub/pkg/logger/types"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

type sentMail struct {
	to, title, message string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (f *fakeMailer) SendNotification(to, title, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{to: to, title: title, message: message})
}

type fakeQR struct {
	content string
}

func (f *fakeQR) Generate(content string) ([]byte, error) {
	f.content = content
	return []byte("png:" + content), nil
}

var errWriteFailed = errors.New("write failed")

// faultyKV fails every SetMany while failWrites is set.
type faultyKV struct {
	*memory.Storage
	failWrites bool
}

func (kv *faultyKV) SetMany(ctx context.Context, entries map[string]string) error {
	if kv.failWrites {
		return errWriteFailed
	}
	return kv.Storage.SetMany(ctx, entries)
}

type fixture struct {
	ctx     context.Context
	manager *Manager
	kv      *faultyKV
	storage *storage.Storage
	mailer  *fakeMailer
	qr      *fakeQR
	now     time.Time
	ids     int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		ctx:     context.Background(),
		kv:      &faultyKV{Storage: memory.NewStorage()},
		mailer:  &fakeMailer{},
		qr:      &fakeQR{},
		now:     testStart,
	}
	f.storage = storage.New(f.kv)

	cfg := DefaultConfig()
	cfg.Location = time.UTC
	cfg.VerifyURL = "https://events.example.org/verify?code=%s"
	f.manager = NewManager(types.Nop(), f.storage, cfg,
		WithMailer(f.mailer),
		WithQRGenerator(f.qr),
		WithClock(func() time.Time { return f.now }),
		WithIDGenerator(func() string {
			f.ids++
			return fmt.Sprintf("id-%d", f.ids)
		}),
	)
	require.NoError(t, f.manager.Bootstrap(f.ctx))
	return f
}

func (f *fixture) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func (f *fixture) register(t *testing.T, name, email string, role entity.Role) *entity.User {
	t.Helper()
	user, err := f.manager.RegisterUser(f.ctx, dto.UserRegistration{
		Name:     name,
		Email:    email,
		Phone:    "+55 11 99999-0000",
		Password: "secret",
		Role:     role,
	})
	require.NoError(t, err)
	return user
}

func (f *fixture) login(t *testing.T, email string) *entity.Session {
	t.Helper()
	session, err := f.manager.Login(f.ctx, email, "secret")
	require.NoError(t, err)
	return session
}

func (f *fixture) loginAdmin(t *testing.T) *entity.Session {
	t.Helper()
	session, err := f.manager.Login(f.ctx, "admin@admin.com", "admin123")
	require.NoError(t, err)
	return session
}

func (f *fixture) createEvent(t *testing.T, title string, maxParticipants *int) *entity.Event {
	t.Helper()
	event, err := f.manager.CreateEvent(f.ctx, dto.EventInput{
		Title:           title,
		Description:     "Hands-on session",
		Type:            entity.Workshop,
		Date:            "2024-05-01",
		Time:            "15:00",
		Location:        "Room 101",
		Tags:            []string{"golang", "backend"},
		Speakers:        []string{"Dr. Silva"},
		MaxParticipants: maxParticipants,
	})
	require.NoError(t, err)
	return event
}

// snapshot returns the raw stored value of every key.
func (f *fixture) snapshot(t *testing.T) map[string]string {
	t.Helper()
	out := make(map[string]string)
	for _, key := range []string{
		storage.UsersKey, storage.EventsKey, storage.RegistrationsKey,
		storage.CertificatesKey, storage.NotificationsKey, storage.SessionKey,
	} {
		raw, _, err := f.kv.Get(f.ctx, key)
		require.NoError(t, err)
		out[key] = raw
	}
	return out
}

func intPtr(v int) *int {
	return &v
}

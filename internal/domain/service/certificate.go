package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/academic-events/eventhub/internal/domain/common/errorz"
	"github.com/academic-events/eventhub/internal/domain/dto"
	"github.com/academic-events/eventhub/internal/domain/entity"
	"github.com/academic-events/eventhub/internal/domain/utils/validator"
)

const (
	codeAlphabet     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeSuffixLength = 9
)

// IssueCertificate returns the certificate of a user that attended an active
// event, creating it on first call.
func (m *Manager) IssueCertificate(ctx context.Context, eventID, userID string) (*entity.Certificate, error) {
	events, err := m.storage.Events(ctx)
	if err != nil {
		return nil, err
	}
	idx := activeEventIndex(events, eventID)
	if idx == -1 {
		return nil, errorz.ErrNotFound
	}

	registrations, err := m.storage.Registrations(ctx)
	if err != nil {
		return nil, err
	}
	var registration *entity.Registration
	for i := range registrations {
		r := &registrations[i]
		if r.EventID == eventID && r.UserID == userID && r.Status == entity.StatusAttended {
			registration = r
			break
		}
	}
	if registration == nil {
		return nil, fmt.Errorf("%w: attendance is not confirmed", errorz.ErrPreconditionFailed)
	}

	certificates, err := m.storage.Certificates(ctx)
	if err != nil {
		return nil, err
	}

	var changes dto.Changes
	certificate, created, err := m.issue(ctx, certificates, &events[idx], registration, &changes)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return certificate, nil
	}
	if err = m.storage.Save(ctx, changes); err != nil {
		return nil, err
	}
	m.deliver(ctx, *created)
	return certificate, nil
}

// issue returns the certificate of the registration's pair. When none exists it
// builds one, adds it and its notification to changes and returns the notification.
func (m *Manager) issue(
	ctx context.Context,
	certificates []entity.Certificate,
	event *entity.Event,
	registration *entity.Registration,
	changes *dto.Changes,
) (*entity.Certificate, *entity.Notification, error) {
	for i := range certificates {
		if certificates[i].EventID == event.ID && certificates[i].UserID == registration.UserID {
			existing := certificates[i]
			return &existing, nil, nil
		}
	}

	notifications, err := m.storage.Notifications(ctx)
	if err != nil {
		return nil, nil, err
	}

	now := m.now()
	code, err := certificateCode(now)
	if err != nil {
		return nil, nil, err
	}
	certificate := entity.Certificate{
		ID:         m.newID(),
		EventID:    event.ID,
		EventTitle: event.Title,
		UserID:     registration.UserID,
		UserName:   registration.UserName,
		UserEmail:  registration.UserEmail,
		Code:       code,
		IssuedAt:   now,
		Status:     entity.CertificateAvailable,
	}
	notice := m.notification(dto.NotificationInput{
		UserID:  registration.UserID,
		Type:    entity.NotificationCertificateIssued,
		Title:   "Certificate available",
		Message: fmt.Sprintf("Your certificate for the event \"%s\" is available. Code: %s", event.Title, code),
		EventID: event.ID,
	})

	changes.Certificates = append(certificates, certificate)
	changes.Notifications = append(notifications, notice)
	m.logger.Infof("Certificate issued (event_id=%s, user_id=%s, code=%s)", event.ID, registration.UserID, code)
	return &certificate, &notice, nil
}

// Certificates lists certificates. Filters compose with AND.
func (m *Manager) Certificates(ctx context.Context, filter dto.CertificateFilter) ([]entity.Certificate, error) {
	certificates, err := m.storage.Certificates(ctx)
	if err != nil {
		return nil, err
	}

	email := validator.NormalizeEmail(filter.UserEmail)
	result := make([]entity.Certificate, 0, len(certificates))
	for _, c := range certificates {
		if email != "" && validator.NormalizeEmail(c.UserEmail) != email {
			continue
		}
		if filter.UserID != "" && c.UserID != filter.UserID {
			continue
		}
		if filter.EventID != "" && c.EventID != filter.EventID {
			continue
		}
		result = append(result, c)
	}
	return result, nil
}

// CertificateByCode looks a certificate up by its verification code.
func (m *Manager) CertificateByCode(ctx context.Context, code string) (*entity.Certificate, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, errorz.ErrNotFound
	}
	certificates, err := m.storage.Certificates(ctx)
	if err != nil {
		return nil, err
	}
	for i := range certificates {
		if certificates[i].Code == code {
			return &certificates[i], nil
		}
	}
	return nil, errorz.ErrNotFound
}

// CertificateQR renders a PNG QR code pointing at the verification of a certificate.
func (m *Manager) CertificateQR(ctx context.Context, code string) ([]byte, error) {
	if m.qr == nil {
		return nil, fmt.Errorf("%w: qr generator is not configured", errorz.ErrPreconditionFailed)
	}
	certificate, err := m.CertificateByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	png, err := m.qr.Generate(m.verificationContent(certificate.Code))
	if err != nil {
		return nil, fmt.Errorf("failed to generate qr code: %w", err)
	}
	return png, nil
}

func (m *Manager) verificationContent(code string) string {
	if m.cfg.VerifyURL == "" {
		return code
	}
	return fmt.Sprintf(m.cfg.VerifyURL, url.QueryEscape(code))
}

// certificateCode returns CERT-<unix millis>-<9 uppercase alphanumerics>.
func certificateCode(now time.Time) (string, error) {
	suffix := make([]byte, codeSuffixLength)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("failed to generate certificate code: %w", err)
	}
	for i, b := range suffix {
		suffix[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return fmt.Sprintf("CERT-%d-%s", now.UnixMilli(), suffix), nil
}

package smtp

import (
	"fmt"
	"time"

	"github.com/academic-events/eventhub/pkg/logger/types"
	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

// Client sends notification copies by mail.
type Client struct {
	dialer *gomail.Dialer
	from   string
	domain string
	logger *types.Logger
}

func NewClient(dialer *gomail.Dialer, from, domain string, logger *types.Logger) *Client {
	return &Client{
		dialer: dialer,
		from:   from,
		domain: domain,
		logger: logger,
	}
}

// SendNotification mails a notification. Delivery errors are logged and not returned.
func (c *Client) SendNotification(to, title, message string) {
	msg := c.newMessage(to, title, message, time.Now())
	if err := c.dialer.DialAndSend(msg); err != nil {
		c.logger.Errorf("failed to send notification email to %s: %v", to, err)
		return
	}
	c.logger.Infof("Notification email sent to %s", to)
}

func (c *Client) newMessage(to, title, message string, now time.Time) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("Message-ID", generateMessageID(c.domain))
	msg.SetHeader("Date", now.Format(time.RFC1123Z))
	msg.SetHeader("From", c.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", title)
	msg.SetBody("text/plain", message)
	return msg
}

func generateMessageID(domain string) string {
	uniqueID := uuid.New().String()
	return fmt.Sprintf("<%s@%s>", uniqueID, domain)
}

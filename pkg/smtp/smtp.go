package smtp

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

// Client is a thin mail client used for registration status notifications.
type Client struct {
	dialer *gomail.Dialer
	from   string
	domain string
}

func NewClient(dialer *gomail.Dialer, from, domain string) *Client {
	return &Client{
		dialer: dialer,
		from:   from,
		domain: domain,
	}
}

// SendStatusUpdate notifies a participant that the status of their
// registration changed.
func (c *Client) SendStatusUpdate(to, eventName, statusName string) error {
	msg := gomail.NewMessage()

	msg.SetHeader("Message-ID", generateMessageID(c.domain))
	msg.SetHeader("Date", time.Now().Format(time.RFC1123Z))
	msg.SetHeader("From", c.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Registration update: %s", eventName))
	msg.SetBody("text/plain", fmt.Sprintf("Your registration for %q is now %q.", eventName, statusName))

	if err := c.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send status update: %w", err)
	}
	return nil
}

func generateMessageID(domain string) string {
	return fmt.Sprintf("<%s@%s>", uuid.New().String(), domain)
}

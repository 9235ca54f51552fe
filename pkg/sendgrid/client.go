package sendgrid

import (
	"context"
	"errors"
	"fmt"
	netmail "net/mail"
	"strings"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/cometcontrol/comet-backend/pkg/config"
)

var errAPIKeyRequired = errors.New("sendgrid api key is required")

// Message is one outbound notification document.
type Message struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	HTML    string
}

// Client wraps the SendGrid v3 mail send API.
type Client struct {
	api         *sendgrid.Client
	sendTimeout time.Duration
}

// NewClient builds the SendGrid client from the configured credential.
func NewClient(cfg config.SendgridConfig) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errAPIKeyRequired
	}
	return &Client{
		api:         sendgrid.NewSendClient(apiKey),
		sendTimeout: cfg.SendTimeout,
	}, nil
}

// Send submits the message, bounding the provider call with the configured
// timeout. A non-2xx provider response is reported as an error.
func (c *Client) Send(ctx context.Context, msg Message) error {
	if c == nil || c.api == nil {
		return errors.New("sendgrid client is not initialized")
	}

	if c.sendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.sendTimeout)
		defer cancel()
	}

	from, err := parseAddress(msg.From)
	if err != nil {
		return fmt.Errorf("parse from address: %w", err)
	}
	to, err := parseAddress(msg.To)
	if err != nil {
		return fmt.Errorf("parse to address: %w", err)
	}

	v3 := mail.NewV3Mail()
	v3.SetFrom(from)
	v3.Subject = msg.Subject
	if msg.ReplyTo != "" {
		replyTo, err := parseAddress(msg.ReplyTo)
		if err != nil {
			return fmt.Errorf("parse reply-to address: %w", err)
		}
		v3.SetReplyTo(replyTo)
	}

	personalization := mail.NewPersonalization()
	personalization.AddTos(to)
	v3.AddPersonalizations(personalization)
	v3.AddContent(mail.NewContent("text/html", msg.HTML))

	resp, err := c.api.SendWithContext(ctx, v3)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, strings.TrimSpace(resp.Body))
	}
	return nil
}

func parseAddress(raw string) (*mail.Email, error) {
	addr, err := netmail.ParseAddress(raw)
	if err != nil {
		return nil, err
	}
	return mail.NewEmail(addr.Name, addr.Address), nil
}

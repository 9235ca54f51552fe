package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/cometcontrol/comet-backend/pkg/config"
	pkgerrors "github.com/cometcontrol/comet-backend/pkg/errors"
	"github.com/cometcontrol/comet-backend/pkg/logger"
	"github.com/cometcontrol/comet-backend/pkg/metrics"
	"github.com/cometcontrol/comet-backend/pkg/sendgrid"
	"github.com/cometcontrol/comet-backend/pkg/types"
)

// Service renders and dispatches submission notifications.
type Service interface {
	DispatchContact(ctx context.Context, msg types.ContactMessage) error
	DispatchQuote(ctx context.Context, req types.QuoteRequest) error
}

// Provider delivers one rendered notification document.
type Provider interface {
	Send(ctx context.Context, msg sendgrid.Message) error
}

type service struct {
	provider Provider
	cfg      config.SendgridConfig
	logg     *logger.Logger
	metrics  *metrics.SubmissionMetrics
	now      func() time.Time
}

// NewService constructs the dispatcher. provider may be nil only when the
// config carries no credential; without a credential the service never calls
// the provider and instead logs each payload (dev mode).
func NewService(provider Provider, cfg config.SendgridConfig, logg *logger.Logger, m *metrics.SubmissionMetrics) (Service, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if cfg.Configured() && provider == nil {
		return nil, fmt.Errorf("delivery provider required when a credential is configured")
	}
	return &service{
		provider: provider,
		cfg:      cfg,
		logg:     logg,
		metrics:  m,
		now:      time.Now,
	}, nil
}

// DispatchContact sends a contact-form notification.
func (s *service) DispatchContact(ctx context.Context, msg types.ContactMessage) error {
	if !s.cfg.Configured() {
		devCtx := s.logg.WithFields(ctx, map[string]any{
			"name":    msg.Name,
			"email":   msg.Email,
			"subject": msg.Subject,
			"message": msg.Message,
		})
		s.logg.Info(devCtx, "mailer.contact.dev_mode")
		return nil
	}

	html, err := renderContactEmail(msg, s.now())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDispatch, err, "failed to render contact notification")
	}

	return s.send(ctx, sendgrid.Message{
		From:    s.cfg.FromEmail,
		To:      s.recipient(msg.Email),
		ReplyTo: msg.Email,
		Subject: fmt.Sprintf("[Contact Form] %s", msg.Subject),
		HTML:    html,
	})
}

// DispatchQuote sends a quote-request notification with its line-item table.
func (s *service) DispatchQuote(ctx context.Context, req types.QuoteRequest) error {
	if !s.cfg.Configured() {
		devCtx := s.logg.WithFields(ctx, map[string]any{
			"company": req.Contact.CompanyName,
			"email":   req.Contact.Email,
			"items":   len(req.Items),
		})
		s.logg.Info(devCtx, "mailer.quote.dev_mode")
		return nil
	}

	html, err := renderQuoteEmail(req, s.now())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDispatch, err, "failed to render quote notification")
	}

	return s.send(ctx, sendgrid.Message{
		From:    s.cfg.FromEmail,
		To:      s.recipient(req.Contact.Email),
		ReplyTo: req.Contact.Email,
		Subject: fmt.Sprintf("[Quote Request] %s - %d Product(s)", req.Contact.CompanyName, len(req.Items)),
		HTML:    html,
	})
}

func (s *service) send(ctx context.Context, msg sendgrid.Message) error {
	if err := s.provider.Send(ctx, msg); err != nil {
		s.logg.Error(ctx, "mailer.send.failed", err)
		return pkgerrors.Wrap(pkgerrors.CodeDispatch, err, "notification delivery failed")
	}
	s.metrics.IncProviderSend()
	return nil
}

// recipient resolves the to-address: the configured override when present,
// otherwise the submitter's own email.
func (s *service) recipient(submitter string) string {
	if s.cfg.ContactEmail != "" {
		return s.cfg.ContactEmail
	}
	return submitter
}

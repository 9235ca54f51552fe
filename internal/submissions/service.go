package submissions

import (
	"context"
	"fmt"
	"time"

	"github.com/cometcontrol/comet-backend/internal/mailer"
	"github.com/cometcontrol/comet-backend/internal/ratelimit"
	pkgerrors "github.com/cometcontrol/comet-backend/pkg/errors"
	"github.com/cometcontrol/comet-backend/pkg/logger"
	"github.com/cometcontrol/comet-backend/pkg/metrics"
	"github.com/cometcontrol/comet-backend/pkg/types"
	"github.com/cometcontrol/comet-backend/pkg/validate"
)

const (
	ActionContact = "contact"
	ActionQuote   = "quote"
)

// Service sequences a submission through rate limiting, validation, and
// dispatch. Payload parsing happens at the transport boundary before the
// service is invoked, so a malformed body never charges the limiter.
type Service interface {
	SubmitContact(ctx context.Context, identity string, msg types.ContactMessage) error
	SubmitQuote(ctx context.Context, identity string, req types.QuoteRequest) error
}

type service struct {
	limiter       *ratelimit.Limiter
	contactPolicy ratelimit.Policy
	quotePolicy   ratelimit.Policy
	dispatcher    mailer.Service
	logg          *logger.Logger
	metrics       *metrics.SubmissionMetrics
	now           func() time.Time
}

// NewService constructs the submission orchestrator.
func NewService(limiter *ratelimit.Limiter, contactPolicy, quotePolicy ratelimit.Policy, dispatcher mailer.Service, logg *logger.Logger, m *metrics.SubmissionMetrics) (Service, error) {
	if limiter == nil {
		return nil, fmt.Errorf("rate limiter required")
	}
	if dispatcher == nil {
		return nil, fmt.Errorf("dispatcher required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		limiter:       limiter,
		contactPolicy: contactPolicy,
		quotePolicy:   quotePolicy,
		dispatcher:    dispatcher,
		logg:          logg,
		metrics:       m,
		now:           time.Now,
	}, nil
}

// SubmitContact runs a contact-form submission to completion.
func (s *service) SubmitContact(ctx context.Context, identity string, msg types.ContactMessage) error {
	return s.run(ctx, s.contactPolicy, identity, msg, func(ctx context.Context) error {
		return s.dispatcher.DispatchContact(ctx, msg)
	})
}

// SubmitQuote runs a quote-request submission to completion.
func (s *service) SubmitQuote(ctx context.Context, identity string, req types.QuoteRequest) error {
	return s.run(ctx, s.quotePolicy, identity, req, func(ctx context.Context) error {
		return s.dispatcher.DispatchQuote(ctx, req)
	})
}

func (s *service) run(ctx context.Context, policy ratelimit.Policy, identity string, payload any, dispatch func(context.Context) error) error {
	start := s.now()
	action := policy.Action
	ctx = s.logg.WithAction(ctx, action)
	ctx = s.logg.WithField(ctx, "identity", identity)

	s.metrics.IncReceived(action)
	s.logg.Info(s.logg.WithField(ctx, "step", "received"), "submission.received")

	result := s.limiter.Allow(policy, identity)
	if !result.Allowed {
		s.metrics.IncRejected(action, "rate_limited")
		s.logg.Warn(s.logg.WithField(ctx, "step", "rate_checked"), "submission.rate_limited")
		return pkgerrors.New(pkgerrors.CodeRateLimit, "too many requests, please retry later").
			WithDetails(map[string]any{"retry_after_seconds": result.RetryAfter(s.now())})
	}
	s.logg.Info(s.logg.WithField(ctx, "step", "rate_checked"), "submission.rate_checked")

	if err := validate.Struct(payload); err != nil {
		s.metrics.IncRejected(action, "validation")
		s.logg.Warn(s.logg.WithField(ctx, "step", "validated"), "submission.validation_failed")
		return err
	}
	s.logg.Info(s.logg.WithField(ctx, "step", "validated"), "submission.validated")

	if err := dispatch(ctx); err != nil {
		s.metrics.IncRejected(action, "dispatch")
		s.logg.Error(s.logg.WithField(ctx, "step", "dispatched"), "submission.dispatch_failed", err)
		if appErr := pkgerrors.As(err); appErr != nil {
			return appErr
		}
		return pkgerrors.Wrap(pkgerrors.CodeDispatch, err, "notification delivery failed")
	}
	s.logg.Info(s.logg.WithField(ctx, "step", "dispatched"), "submission.dispatched")

	s.metrics.IncCompleted(action)
	s.metrics.ObserveDuration(action, s.now().Sub(start))
	s.logg.Info(s.logg.WithField(ctx, "step", "completed"), "submission.completed")
	return nil
}

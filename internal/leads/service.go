// Package leads validates website form submissions and forwards them to the
// CRM webhook.
package leads

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/chfrealty/horsefarm/internal/config"
	"github.com/chfrealty/horsefarm/internal/model"
	"github.com/chfrealty/horsefarm/pkg/crm"
)

// Form names sent to the CRM.
const (
	FormContact   = "Contact Page Form"
	FormValuation = "Property Valuation Request"
	FormInquiry   = "Property Inquiry Form"
)

const defaultFormSource = "Carolina Horse Farm Realty Website"

// Receipt identifies an accepted submission.
type Receipt struct {
	SubmissionID string    `json:"submission_id"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// envelope carries the metadata common to every payload.
type envelope struct {
	FormName     string `json:"formName"`
	FormSource   string `json:"formSource"`
	SubmissionID string `json:"submissionId"`
	SubmittedAt  string `json:"submittedAt"`
	PageURL      string `json:"pageUrl"`
	FullName     string `json:"fullName"`
}

type contactPayload struct {
	envelope
	ContactForm
}

type valuationPayload struct {
	envelope
	ValuationForm
}

type inquiryListing struct {
	Title   string  `json:"propertyTitle"`
	MLS     string  `json:"propertyMLS"`
	Price   int64   `json:"propertyPrice"`
	Address string  `json:"propertyAddress"`
	Type    string  `json:"propertyType"`
	Acreage float64 `json:"propertyAcreage"`
	ID      string  `json:"propertyId"`
}

type inquiryPayload struct {
	envelope
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
	inquiryListing
}

// Service submits leads. It is safe for concurrent use.
type Service struct {
	client     crm.Client
	formSource string
	now        func() time.Time
	newID      func() string
}

// Option configures a Service.
type Option func(*Service)

// WithClient overrides the webhook client. It is ignored when no webhook URL
// is configured.
func WithClient(c crm.Client) Option {
	return func(s *Service) {
		s.client = c
	}
}

// WithClock sets the submission clock.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithIDs sets the submission id generator.
func WithIDs(gen func() string) Option {
	return func(s *Service) {
		s.newID = gen
	}
}

// New creates a lead service.
func New(cfg config.CRMConfig, opts ...Option) *Service {
	s := &Service{
		formSource: strings.TrimSpace(cfg.FormSource),
		now:        time.Now,
		newID:      uuid.NewString,
	}
	if s.formSource == "" {
		s.formSource = defaultFormSource
	}
	for _, opt := range opts {
		opt(s)
	}

	switch url := strings.TrimSpace(cfg.WebhookURL); {
	case url == "":
		s.client = nil
	case s.client == nil:
		s.client = crm.NewClient(url, crm.WithTimeout(time.Duration(cfg.TimeoutSecs)*time.Second))
	}
	return s
}

// Configured reports whether submissions can be delivered.
func (s *Service) Configured() bool {
	return s.client != nil
}

func (s *Service) envelope(form, fullName, pageURL string) (envelope, Receipt) {
	r := Receipt{SubmissionID: s.newID(), SubmittedAt: s.now().UTC()}
	return envelope{
		FormName:     form,
		FormSource:   s.formSource,
		SubmissionID: r.SubmissionID,
		SubmittedAt:  r.SubmittedAt.Format(time.RFC3339),
		PageURL:      pageURL,
		FullName:     fullName,
	}, r
}

func (s *Service) deliver(ctx context.Context, form string, r Receipt, payload any) error {
	log := zap.L().With(
		zap.String("component", "leads"),
		zap.String("form", form),
		zap.String("submission_id", r.SubmissionID),
	)

	if !s.Configured() {
		log.Error("leads: crm webhook not configured, submission rejected")
		return ErrUnconfigured
	}

	if err := s.client.Submit(ctx, payload); err != nil {
		log.Error("leads: webhook submission failed", zap.Error(err))
		return eris.Wrapf(err, "leads: submit %s", form)
	}

	log.Info("leads: submission delivered")
	return nil
}

// SubmitContact validates and forwards a contact form.
func (s *Service) SubmitContact(ctx context.Context, f ContactForm, pageURL string) (Receipt, error) {
	f.Normalize()
	if err := f.Validate(); err != nil {
		return Receipt{}, err
	}

	env, r := s.envelope(FormContact, f.FullName(), pageURL)
	if err := s.deliver(ctx, FormContact, r, contactPayload{envelope: env, ContactForm: f}); err != nil {
		return Receipt{}, err
	}
	return r, nil
}

// SubmitValuation validates and forwards a valuation request.
func (s *Service) SubmitValuation(ctx context.Context, f ValuationForm, pageURL string) (Receipt, error) {
	f.Normalize()
	if err := f.Validate(); err != nil {
		return Receipt{}, err
	}

	env, r := s.envelope(FormValuation, f.FullName(), pageURL)
	if err := s.deliver(ctx, FormValuation, r, valuationPayload{envelope: env, ValuationForm: f}); err != nil {
		return Receipt{}, err
	}
	return r, nil
}

// SubmitInquiry validates and forwards a question about listing p.
func (s *Service) SubmitInquiry(ctx context.Context, f InquiryForm, p model.Property, pageURL string) (Receipt, error) {
	f.Normalize()
	if err := f.Validate(); err != nil {
		return Receipt{}, err
	}

	env, r := s.envelope(FormInquiry, f.Name, pageURL)
	payload := inquiryPayload{
		envelope:       env,
		Email:          f.Email,
		Phone:          f.Phone,
		Message:        f.Message,
		inquiryListing: inquiryProperty(p),
	}
	if err := s.deliver(ctx, FormInquiry, r, payload); err != nil {
		return Receipt{}, err
	}
	return r, nil
}

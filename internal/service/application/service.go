package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fbcbank/card-intake/internal/domain"
	"github.com/fbcbank/card-intake/internal/notify"
	"github.com/fbcbank/card-intake/internal/pkg/logger"
	"github.com/fbcbank/card-intake/internal/schema"
	"github.com/fbcbank/card-intake/internal/storage"
)

// AttachmentName is the filename the document is mailed under.
const AttachmentName = "application.pdf"

// Config wires the collaborators of a Service.
type Config struct {
	Renderer Renderer
	Store    DocumentStore
	Composer Composer
	// Sender may be nil, in which case every confirmation is reported as
	// undeliverable.
	Sender notify.Sender

	IsolateRenderFailures bool
	AttachDocument        bool
	Now                   func() time.Time
}

// Service runs submissions. All public methods are safe for concurrent use
// if the collaborators are.
type Service struct {
	repo Repository
	cfg  Config
}

// NewService creates a submission service backed by the given repository.
func NewService(repo Repository, cfg Config) *Service {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Service{repo: repo, cfg: cfg}
}

// Result is the outcome of a submission that reached the data store.
type Result struct {
	ID          string `json:"id"`
	Warning     string `json:"warning,omitempty"`
	DocumentKey string `json:"-"`
	Notified    bool   `json:"-"`
}

// Submit runs the pipeline for one payload. A non-nil error is a
// *StageError wrapping ErrPersist or ErrRender; everything else degrades
// into Result.Warning.
func (s *Service) Submit(ctx context.Context, v schema.Values) (*Result, error) {
	rec := schema.ToRecord(v, s.cfg.Now())
	s.audit(v, &rec)

	id, err := s.repo.Create(ctx, &rec)
	if err != nil {
		logger.Error("application persist failed", "error", err)
		return nil, &StageError{Stage: ErrPersist, Err: err}
	}
	rec.ID = id
	res := &Result{ID: id}
	logger.Info("application stored", "application_id", id, "card_type", string(rec.CardType))

	// The record is stored; a caller going away from here on only delays the response.
	ctx = context.WithoutCancel(ctx)

	var warnings []string

	doc, err := s.renderAndStore(ctx, id, v)
	switch {
	case err != nil && !s.cfg.IsolateRenderFailures:
		logger.Error("application document failed", "application_id", id, "error", err)
		return nil, &StageError{Stage: ErrRender, Err: err}
	case err != nil:
		logger.Error("application document failed, continuing", "application_id", id, "error", err)
		warnings = append(warnings, WarningDocument)
	default:
		res.DocumentKey = storage.DocumentKey(id)
	}

	if w := s.notify(ctx, &rec, doc); w != "" {
		warnings = append(warnings, w)
	} else {
		res.Notified = true
	}

	res.Warning = strings.Join(warnings, " ")
	return res, nil
}

func (s *Service) renderAndStore(ctx context.Context, id string, v schema.Values) ([]byte, error) {
	doc, err := s.cfg.Renderer.Render(v)
	if err != nil {
		return nil, err
	}
	if err := s.cfg.Store.Put(ctx, storage.DocumentKey(id), doc, storage.ContentTypePDF); err != nil {
		return nil, fmt.Errorf("store document: %w", err)
	}
	return doc, nil
}

// notify sends the confirmation and returns the warning to report, if any.
func (s *Service) notify(ctx context.Context, rec *domain.Application, doc []byte) string {
	to := strings.TrimSpace(rec.Email)
	if to == "" {
		logger.Info("confirmation skipped, no email", "application_id", rec.ID)
		return WarningNoEmail
	}
	if s.cfg.Sender == nil || s.cfg.Composer == nil {
		logger.Warn("confirmation skipped, mail not configured", "application_id", rec.ID)
		return WarningDelivery
	}

	msg, err := s.cfg.Composer.Compose(notify.Confirmation{
		To:            to,
		FirstName:     rec.FirstName,
		Surname:       rec.Surname,
		ApplicationID: rec.ID,
	})
	if err != nil {
		logger.Error("confirmation compose failed", "application_id", rec.ID, "error", err)
		return WarningDelivery
	}
	if s.cfg.AttachDocument && doc != nil {
		msg.Attachments = append(msg.Attachments, notify.Attachment{
			Filename:    AttachmentName,
			ContentType: storage.ContentTypePDF,
			Data:        doc,
		})
	}

	receipt, err := s.cfg.Sender.Send(ctx, msg)
	if err != nil {
		logger.Error("confirmation send failed", "application_id", rec.ID, "email", to, "error", err)
		return WarningDelivery
	}
	logger.Info("confirmation sent", "application_id", rec.ID, "email", to,
		"provider", receipt.Provider, "message_id", receipt.MessageID)
	return ""
}

// audit logs form-rule and consent gaps. Intake is lenient, so nothing
// here rejects the submission.
func (s *Service) audit(v schema.Values, rec *domain.Application) {
	if errs := schema.Validate(v); len(errs) > 0 {
		fields := make([]string, len(errs))
		for i, fe := range errs {
			fields[i] = fe.Field
		}
		logger.Warn("application accepted with rule failures", "fields", strings.Join(fields, ","))
	}
	if !rec.HasAgreedToTerms || !rec.HasAcknowledgedReceipt {
		logger.Warn("application accepted without full consent",
			"agreed_terms", rec.HasAgreedToTerms, "acknowledged_receipt", rec.HasAcknowledgedReceipt)
	}
}

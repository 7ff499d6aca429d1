// Package payment starts mobile-money donations and records them.
package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"communityaid/internal/domain"
	"communityaid/internal/providers/mpesa"
)

// Outcomes reported to the Observer.
const (
	OutcomeInvalid   = "invalid"
	OutcomeNotFound  = "not_found"
	OutcomeUpstream  = "upstream_error"
	OutcomeSubmitted = "submitted"
	OutcomeFailed    = "record_failed"
)

// Gateway is the outbound STK push call.
type Gateway interface {
	STKPush(ctx context.Context, req mpesa.PushRequest) (*mpesa.PushResponse, error)
}

// Observer receives one outcome per Initiate call.
type Observer interface {
	ObservePayment(outcome string)
}

// Request is a donor's ask to pay for a project from their handset.
type Request struct {
	Amount    int64
	Phone     string
	ProjectID int64
}

// Result carries the gateway reply and the donation written for it.
type Result struct {
	Status   int
	Body     json.RawMessage
	Donation *domain.Donation
}

// Initiator drives a payment from request to recorded donation.
type Initiator struct {
	projects  domain.ProjectLookup
	donations domain.DonationRecorder
	gateway   Gateway
	observer  Observer
	logger    zerolog.Logger
	now       func() time.Time
	newID     func() string
}

func NewInitiator(projects domain.ProjectLookup, donations domain.DonationRecorder, gateway Gateway, observer Observer, logger zerolog.Logger) *Initiator {
	return &Initiator{
		projects:  projects,
		donations: donations,
		gateway:   gateway,
		observer:  observer,
		logger:    logger,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Initiate validates the request, resolves the project, sends one STK push
// and records a pending donation for any gateway answer. Nothing is written
// when the gateway cannot be reached or answers with a server error.
func (in *Initiator) Initiate(ctx context.Context, actor domain.Actor, req Request) (*Result, error) {
	if !actor.Authenticated() {
		return nil, domain.ErrUnauthorized
	}
	phone, err := in.validate(req)
	if err != nil {
		in.observe(OutcomeInvalid)
		return nil, err
	}

	project, err := in.projects.FindProject(ctx, req.ProjectID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			in.observe(OutcomeNotFound)
			return nil, fmt.Errorf("project %d: %w", req.ProjectID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("lookup project: %w", err)
	}

	reference := fmt.Sprintf("donation-%d-%d-%s", actor.ID, project.ID, in.newID())
	resp, err := in.gateway.STKPush(ctx, mpesa.PushRequest{
		Amount:    req.Amount,
		Phone:     phone,
		Reference: reference,
		Currency:  domain.Currency,
	})
	if err != nil {
		in.observe(OutcomeUpstream)
		in.logger.Warn().Err(err).Str("reference", reference).Msg("payment: gateway call failed")
		return nil, err
	}

	donation := &domain.Donation{
		DonorID:   actor.ID,
		ProjectID: project.ID,
		Amount:    req.Amount,
		Date:      in.now(),
		Status:    domain.DonationPending,
		Reference: reference,
	}
	if err := in.donations.RecordDonation(ctx, donation); err != nil {
		in.observe(OutcomeFailed)
		in.logger.Error().Err(err).Str("reference", reference).Int("gateway_status", resp.Status).Msg("payment: gateway answered but donation was not recorded")
		return nil, fmt.Errorf("record donation: %w", err)
	}
	in.observe(OutcomeSubmitted)
	in.logger.Info().
		Int64("donation_id", donation.ID).
		Int64("project_id", project.ID).
		Int("gateway_status", resp.Status).
		Str("reference", reference).
		Msg("payment: stk push submitted")

	return &Result{Status: resp.Status, Body: resp.Body, Donation: donation}, nil
}

func (in *Initiator) validate(req Request) (string, error) {
	if req.Amount == 0 {
		return "", domain.Invalid("amount", "amount is required")
	}
	if req.Amount < 0 {
		return "", domain.Invalid("amount", "amount must be positive")
	}
	if req.Phone == "" {
		return "", domain.Invalid("phone", "phone is required")
	}
	if req.ProjectID == 0 {
		return "", domain.Invalid("projectId", "projectId is required")
	}
	phone, ok := NormalizePhone(req.Phone)
	if !ok {
		return "", domain.Invalid("phone", "not a valid Kenyan mobile number")
	}
	return phone, nil
}

func (in *Initiator) observe(outcome string) {
	if in.observer != nil {
		in.observer.ObservePayment(outcome)
	}
}

package resource

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"communityaid/internal/domain"
	"communityaid/internal/policy"
)

// Approval states accepted by Approver.Transition.
const (
	StateApproved = "approved"
	StateRejected = "rejected"
)

// StateStore moves a set of rows to a terminal state in one transaction and
// reports how many ids matched.
type StateStore interface {
	SetState(ctx context.Context, ids []int64, state string) (int64, error)
}

// Approver runs the administrator bulk actions for one kind.
type Approver struct {
	kind   policy.Kind
	store  StateStore
	states []string
	logger zerolog.Logger
}

// NewApprover accepts the states the kind supports.
func NewApprover(kind policy.Kind, store StateStore, logger zerolog.Logger, states ...string) *Approver {
	return &Approver{
		kind:   kind,
		store:  store,
		states: states,
		logger: logger.With().Str("resource", string(kind)).Logger(),
	}
}

// Transition sets every listed row to state. Rows already in state are left
// as they are and unknown ids are skipped, so repeating a call is harmless.
func (a *Approver) Transition(ctx context.Context, actor domain.Actor, ids []int64, state string) (int64, error) {
	if err := policy.Check(actor, a.kind, policy.OpApprove, nil); err != nil {
		return 0, err
	}
	if !slices.Contains(a.states, state) {
		return 0, domain.Invalid("state", fmt.Sprintf("unsupported state %q", state))
	}
	if len(ids) == 0 {
		return 0, domain.Invalid("ids", "at least one id is required")
	}
	ids = slices.Clone(ids)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	n, err := a.store.SetState(ctx, ids, state)
	if err != nil {
		return 0, fmt.Errorf("set %s state: %w", a.kind, err)
	}
	a.logger.Info().Int64("actor", actor.ID).Str("state", state).Int64("matched", n).Msg("bulk transition")
	return n, nil
}

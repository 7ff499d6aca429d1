// Package policy decides whether an actor may perform an operation on an
// entity. Every rule lives in one table keyed by (kind, operation) so handlers
// never branch on the staff flag themselves.
package policy

import (
	"fmt"

	"communityaid/internal/domain"
)

// Kind names an entity collection.
type Kind string

const (
	KindUser        Kind = "user"
	KindProject     Kind = "project"
	KindDonation    Kind = "donation"
	KindBeneficiary Kind = "beneficiary"
	KindVolunteer   Kind = "volunteer"
)

// Op names an operation on a collection.
type Op string

const (
	OpList     Op = "list"
	OpRetrieve Op = "retrieve"
	OpCreate   Op = "create"
	OpUpdate   Op = "update"
	OpDelete   Op = "delete"
	OpApprove  Op = "approve"
	OpPromote  Op = "promote"
)

// Reasons attached to denials.
const (
	ReasonUnauthenticated = "authentication required"
	ReasonNotOwner        = "only the owner or an administrator may do this"
	ReasonStaffOnly       = "administrator only"
	ReasonNoRule          = "operation not permitted"
)

// Decision is the outcome of a policy check.
type Decision struct {
	Allowed bool
	Reason  string
}

var allow = Decision{Allowed: true}

func deny(reason string) Decision { return Decision{Reason: reason} }

// Err converts a denial into the error the caller surfaces. It returns nil for
// an allowed decision.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	if d.Reason == ReasonUnauthenticated {
		return domain.ErrUnauthorized
	}
	return fmt.Errorf("%w: %s", domain.ErrForbidden, d.Reason)
}

type rule func(actor domain.Actor, target domain.Record) Decision

func authenticated(actor domain.Actor, _ domain.Record) Decision {
	if !actor.Authenticated() {
		return deny(ReasonUnauthenticated)
	}
	return allow
}

func staffOnly(actor domain.Actor, _ domain.Record) Decision {
	if !actor.Authenticated() {
		return deny(ReasonUnauthenticated)
	}
	if !actor.IsStaff {
		return deny(ReasonStaffOnly)
	}
	return allow
}

func ownerOrStaff(actor domain.Actor, target domain.Record) Decision {
	if !actor.Authenticated() {
		return deny(ReasonUnauthenticated)
	}
	if actor.IsStaff {
		return allow
	}
	if target != nil && actor.Is(target.OwnerID()) {
		return allow
	}
	return deny(ReasonNotOwner)
}

var rules = map[Kind]map[Op]rule{
	KindUser: {
		OpList:     authenticated,
		OpRetrieve: authenticated,
		OpCreate:   staffOnly,
		OpUpdate:   ownerOrStaff,
		OpDelete:   ownerOrStaff,
		OpPromote:  staffOnly,
	},
	KindProject: {
		OpList:     authenticated,
		OpRetrieve: authenticated,
		OpCreate:   authenticated,
		OpUpdate:   ownerOrStaff,
		OpDelete:   ownerOrStaff,
	},
	KindDonation: {
		OpList:     authenticated,
		OpRetrieve: ownerOrStaff,
		OpCreate:   ownerOrStaff,
		OpUpdate:   ownerOrStaff,
		OpDelete:   ownerOrStaff,
	},
	KindBeneficiary: {
		OpList:     authenticated,
		OpRetrieve: authenticated,
		OpCreate:   authenticated,
		OpUpdate:   staffOnly,
		OpDelete:   staffOnly,
		OpApprove:  staffOnly,
	},
	KindVolunteer: {
		OpList:     authenticated,
		OpRetrieve: authenticated,
		OpCreate:   ownerOrStaff,
		OpUpdate:   ownerOrStaff,
		OpDelete:   ownerOrStaff,
		OpApprove:  staffOnly,
	},
}

// Decide evaluates the rule for (kind, op). target is the instance being acted
// on; it is nil for collection-level operations such as list and approve.
// Pairs without a rule are denied.
func Decide(actor domain.Actor, kind Kind, op Op, target domain.Record) Decision {
	ops, ok := rules[kind]
	if !ok {
		return deny(ReasonNoRule)
	}
	r, ok := ops[op]
	if !ok {
		return deny(ReasonNoRule)
	}
	return r(actor, target)
}

// Check is Decide followed by Decision.Err.
func Check(actor domain.Actor, kind Kind, op Op, target domain.Record) error {
	return Decide(actor, kind, op, target).Err()
}

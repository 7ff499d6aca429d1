package policy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"communityaid/internal/domain"
)

var (
	admin    = domain.Actor{ID: 1, IsStaff: true}
	alice    = domain.Actor{ID: 2}
	bob      = domain.Actor{ID: 3}
	nobody   = domain.Anonymous
	project  = domain.Project{ID: 10, CreatedBy: alice.ID}
	donation = domain.Donation{ID: 20, DonorID: alice.ID, ProjectID: 10, Amount: 500}
	benef    = domain.Beneficiary{ID: 30, ProjectID: 10}
	vol      = domain.Volunteer{ID: 40, UserID: alice.ID, ProjectID: 10}
)

func TestDecideTable(t *testing.T) {
	tests := []struct {
		name   string
		actor  domain.Actor
		kind   Kind
		op     Op
		target domain.Record
		want   bool
	}{
		{"anyone authenticated lists projects", bob, KindProject, OpList, nil, true},
		{"anonymous cannot list projects", nobody, KindProject, OpList, nil, false},
		{"creator updates project", alice, KindProject, OpUpdate, project, true},
		{"stranger cannot update project", bob, KindProject, OpUpdate, project, false},
		{"admin deletes project", admin, KindProject, OpDelete, project, true},
		{"donor reads own donation", alice, KindDonation, OpRetrieve, donation, true},
		{"stranger cannot read donation", bob, KindDonation, OpRetrieve, donation, false},
		{"admin reads any donation", admin, KindDonation, OpRetrieve, donation, true},
		{"user creates beneficiary", bob, KindBeneficiary, OpCreate, benef, true},
		{"user cannot delete beneficiary", bob, KindBeneficiary, OpDelete, benef, false},
		{"user cannot update beneficiary", alice, KindBeneficiary, OpUpdate, benef, false},
		{"admin approves beneficiaries", admin, KindBeneficiary, OpApprove, nil, true},
		{"volunteer edits own application", alice, KindVolunteer, OpUpdate, vol, true},
		{"stranger cannot edit application", bob, KindVolunteer, OpDelete, vol, false},
		{"user cannot approve volunteers", alice, KindVolunteer, OpApprove, nil, false},
		{"user edits self", alice, KindUser, OpUpdate, domain.User{ID: alice.ID}, true},
		{"user cannot edit others", bob, KindUser, OpUpdate, domain.User{ID: alice.ID}, false},
		{"unknown op denied", admin, KindProject, OpApprove, nil, false},
		{"unknown kind denied", admin, Kind("asset"), OpList, nil, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Decide(tc.actor, tc.kind, tc.op, tc.target)
			assert.Equal(t, tc.want, got.Allowed, "reason: %s", got.Reason)
		})
	}
}

func TestDecisionErrDistinguishesForbiddenFromUnauthenticated(t *testing.T) {
	err := Check(bob, KindBeneficiary, OpDelete, benef)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	assert.False(t, errors.Is(err, domain.ErrNotFound))

	err = Check(nobody, KindBeneficiary, OpDelete, benef)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	assert.NoError(t, Check(admin, KindBeneficiary, OpDelete, benef))
}

func TestStaffIsNeverDeniedOwnedWrites(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		owner := rapid.Int64Range(1, 1000).Draw(t, "owner")
		staffID := rapid.Int64Range(1, 1000).Draw(t, "staff")
		kind := rapid.SampledFrom([]Kind{KindProject, KindDonation, KindVolunteer}).Draw(t, "kind")
		op := rapid.SampledFrom([]Op{OpUpdate, OpDelete}).Draw(t, "op")

		var target domain.Record
		switch kind {
		case KindProject:
			target = domain.Project{CreatedBy: owner}
		case KindDonation:
			target = domain.Donation{DonorID: owner}
		default:
			target = domain.Volunteer{UserID: owner}
		}
		if !Decide(domain.Actor{ID: staffID, IsStaff: true}, kind, op, target).Allowed {
			t.Fatalf("staff %d denied %s on %s", staffID, op, kind)
		}
	})
}

func TestNonStaffWritesRequireOwnership(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		owner := rapid.Int64Range(1, 50).Draw(t, "owner")
		actorID := rapid.Int64Range(1, 50).Draw(t, "actor")
		op := rapid.SampledFrom([]Op{OpUpdate, OpDelete}).Draw(t, "op")

		got := Decide(domain.Actor{ID: actorID}, KindProject, op, domain.Project{CreatedBy: owner})
		if got.Allowed != (owner == actorID) {
			t.Fatalf("actor %d owner %d: allowed=%v", actorID, owner, got.Allowed)
		}
	})
}

package resource

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"communityaid/internal/domain"
	"communityaid/internal/policy"
)

// Field limits mirror the column sizes in the schema.
const (
	maxTitle       = 200
	maxStatus      = 50
	maxName        = 200
	maxContactInfo = 200
	maxRole        = 100
	maxUsername    = 150
)

var now = time.Now

func required(field, value string, limit int) error {
	if strings.TrimSpace(value) == "" {
		return domain.Invalid(field, "this field is required")
	}
	if utf8.RuneCountInString(value) > limit {
		return domain.Invalid(field, fmt.Sprintf("must be at most %d characters", limit))
	}
	return nil
}

func projectExists(ctx context.Context, projects domain.ProjectLookup, id int64) error {
	if id <= 0 {
		return domain.Invalid("project", "this field is required")
	}
	if projects == nil {
		return nil
	}
	if _, err := projects.FindProject(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Invalid("project", fmt.Sprintf("project %d does not exist", id))
		}
		return err
	}
	return nil
}

// NewProjects serves projects. The creator is always the acting user.
func NewProjects(store Store[domain.Project], logger zerolog.Logger) *Service[domain.Project] {
	return NewService(policy.KindProject, store, Hooks[domain.Project]{
		PreCreate: func(actor domain.Actor, p *domain.Project) {
			p.CreatedBy = actor.ID
		},
		Validate: func(_ context.Context, p *domain.Project) error {
			if err := required("title", p.Title, maxTitle); err != nil {
				return err
			}
			if strings.TrimSpace(p.Description) == "" {
				return domain.Invalid("description", "this field is required")
			}
			if p.StartDate.IsZero() {
				return domain.Invalid("start_date", "this field is required")
			}
			if p.EndDate != nil && p.EndDate.Before(p.StartDate) {
				return domain.Invalid("end_date", "must not be before start_date")
			}
			return required("status", p.Status, maxStatus)
		},
	}, logger)
}

// NewDonations serves donations. Non-administrators always donate as
// themselves; the record starts pending with the creation timestamp.
func NewDonations(store Store[domain.Donation], projects domain.ProjectLookup, logger zerolog.Logger) *Service[domain.Donation] {
	return NewService(policy.KindDonation, store, Hooks[domain.Donation]{
		PreCreate: func(actor domain.Actor, d *domain.Donation) {
			if d.DonorID == 0 || !actor.IsStaff {
				d.DonorID = actor.ID
			}
			d.Status = domain.DonationPending
			d.Date = now().UTC()
		},
		Validate: func(ctx context.Context, d *domain.Donation) error {
			if d.Amount <= 0 {
				return domain.Invalid("amount", "must be a positive amount")
			}
			return projectExists(ctx, projects, d.ProjectID)
		},
	}, logger)
}

// NewBeneficiaries serves beneficiaries. New rows always await approval.
func NewBeneficiaries(store Store[domain.Beneficiary], projects domain.ProjectLookup, logger zerolog.Logger) *Service[domain.Beneficiary] {
	return NewService(policy.KindBeneficiary, store, Hooks[domain.Beneficiary]{
		PreCreate: func(_ domain.Actor, b *domain.Beneficiary) {
			b.Approved = false
		},
		Validate: func(ctx context.Context, b *domain.Beneficiary) error {
			if err := required("name", b.Name, maxName); err != nil {
				return err
			}
			if err := required("contact_info", b.ContactInfo, maxContactInfo); err != nil {
				return err
			}
			return projectExists(ctx, projects, b.ProjectID)
		},
	}, logger)
}

// NewVolunteers serves volunteer applications. New rows are always pending and
// default to the acting user.
func NewVolunteers(store Store[domain.Volunteer], projects domain.ProjectLookup, logger zerolog.Logger) *Service[domain.Volunteer] {
	return NewService(policy.KindVolunteer, store, Hooks[domain.Volunteer]{
		PreCreate: func(actor domain.Actor, v *domain.Volunteer) {
			if v.UserID == 0 {
				v.UserID = actor.ID
			}
			v.Status = domain.VolunteerPending
			v.DateJoined = now().UTC()
		},
		Validate: func(ctx context.Context, v *domain.Volunteer) error {
			if err := required("role", v.Role, maxRole); err != nil {
				return err
			}
			return projectExists(ctx, projects, v.ProjectID)
		},
	}, logger)
}

// NewUsers serves the user collection. Registration goes through Register.
func NewUsers(store Store[domain.User], logger zerolog.Logger) *Service[domain.User] {
	return NewService(policy.KindUser, store, Hooks[domain.User]{
		PreCreate: func(_ domain.Actor, u *domain.User) {
			u.DateJoined = now().UTC()
		},
		Validate: validateUser,
	}, logger)
}

func validateUser(_ context.Context, u *domain.User) error {
	if err := required("username", u.Username, maxUsername); err != nil {
		return err
	}
	if strings.ContainsAny(u.Username, " \t\n/") {
		return domain.Invalid("username", "must not contain spaces or slashes")
	}
	if u.Email != "" {
		if _, err := mail.ParseAddress(u.Email); err != nil {
			return domain.Invalid("email", "enter a valid email address")
		}
	}
	if u.PasswordHash == "" {
		return domain.Invalid("password", "this field is required")
	}
	return nil
}

// Registration is the public sign-up input.
type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a non-staff user for an unauthenticated caller.
func Register(ctx context.Context, users domain.UserRepository, in Registration) (*domain.User, error) {
	u := &domain.User{
		Username:   strings.TrimSpace(in.Username),
		Email:      strings.TrimSpace(strings.ToLower(in.Email)),
		DateJoined: now().UTC(),
	}
	if strings.TrimSpace(in.Password) == "" {
		return nil, domain.Invalid("password", "this field is required")
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = hash
	if err := validateUser(ctx, u); err != nil {
		return nil, err
	}
	if err := users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}
	return u, nil
}

// Authenticate checks a username/password pair.
func Authenticate(ctx context.Context, users domain.UserRepository, username, password string) (*domain.User, error) {
	u, err := users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if !CheckPassword(u.PasswordHash, password) {
		return nil, domain.ErrUnauthorized
	}
	return u, nil
}

package resource

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"communityaid/internal/domain"
)

// Patch mutates an entity from client input. Absent fields leave the value
// untouched.
type Patch[T any] interface {
	Apply(item *T) error
}

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date carried as YYYY-MM-DD.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return domain.Invalid("date", "expected a YYYY-MM-DD string")
	}
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return domain.Invalid("date", "expected a YYYY-MM-DD string")
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(DateLayout))
}

// ProjectPatch carries writable project fields.
type ProjectPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	StartDate   *Date   `json:"start_date"`
	EndDate     *Date   `json:"end_date"`
	Status      *string `json:"status"`
}

func (p ProjectPatch) Apply(item *domain.Project) error {
	if p.Title != nil {
		item.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.StartDate != nil {
		item.StartDate = p.StartDate.Time
	}
	if p.EndDate != nil {
		end := p.EndDate.Time
		item.EndDate = &end
	}
	if p.Status != nil {
		item.Status = strings.TrimSpace(*p.Status)
	}
	return nil
}

// DonationPatch carries donation input. Amount and donor are accepted only
// when the donation is created.
type DonationPatch struct {
	Donor   *int64 `json:"donor"`
	Project *int64 `json:"project"`
	Amount  *int64 `json:"amount"`
}

func (p DonationPatch) Apply(item *domain.Donation) error {
	created := item.ID != 0
	if p.Amount != nil {
		if created {
			return domain.Invalid("amount", "cannot be changed after the donation is made")
		}
		item.Amount = *p.Amount
	}
	if p.Donor != nil {
		if created && *p.Donor != item.DonorID {
			return domain.Invalid("donor", "cannot be changed after the donation is made")
		}
		item.DonorID = *p.Donor
	}
	if p.Project != nil {
		item.ProjectID = *p.Project
	}
	return nil
}

// BeneficiaryPatch carries beneficiary input. Approved is honoured on update
// only; creation always resets it.
type BeneficiaryPatch struct {
	Project     *int64  `json:"project"`
	Name        *string `json:"name"`
	ContactInfo *string `json:"contact_info"`
	Approved    *bool   `json:"approved"`
}

func (p BeneficiaryPatch) Apply(item *domain.Beneficiary) error {
	if p.Project != nil {
		item.ProjectID = *p.Project
	}
	if p.Name != nil {
		item.Name = strings.TrimSpace(*p.Name)
	}
	if p.ContactInfo != nil {
		item.ContactInfo = strings.TrimSpace(*p.ContactInfo)
	}
	if p.Approved != nil {
		item.Approved = *p.Approved
	}
	return nil
}

// VolunteerPatch carries volunteer input. Status is absent on purpose: it only
// moves through the approval actions.
type VolunteerPatch struct {
	User    *int64  `json:"user"`
	Project *int64  `json:"project"`
	Role    *string `json:"role"`
}

func (p VolunteerPatch) Apply(item *domain.Volunteer) error {
	if p.User != nil {
		if item.ID != 0 && *p.User != item.UserID {
			return domain.Invalid("user", "cannot be reassigned")
		}
		item.UserID = *p.User
	}
	if p.Project != nil {
		item.ProjectID = *p.Project
	}
	if p.Role != nil {
		item.Role = strings.TrimSpace(*p.Role)
	}
	return nil
}

// UserPatch carries profile input. IsStaff must be cleared by the caller
// unless the actor may promote users.
type UserPatch struct {
	Username    *string `json:"username"`
	Email       *string `json:"email"`
	Password    *string `json:"password"`
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	DateOfBirth *Date   `json:"date_of_birth"`
	IsStaff     *bool   `json:"is_staff"`
}

func (p UserPatch) Apply(item *domain.User) error {
	if p.Username != nil {
		item.Username = strings.TrimSpace(*p.Username)
	}
	if p.Email != nil {
		item.Email = strings.TrimSpace(strings.ToLower(*p.Email))
	}
	if p.Password != nil {
		hash, err := HashPassword(*p.Password)
		if err != nil {
			return err
		}
		item.PasswordHash = hash
	}
	if p.FirstName != nil {
		item.FirstName = strings.TrimSpace(*p.FirstName)
	}
	if p.LastName != nil {
		item.LastName = strings.TrimSpace(*p.LastName)
	}
	if p.DateOfBirth != nil {
		dob := p.DateOfBirth.Time
		item.DateOfBirth = &dob
	}
	if p.IsStaff != nil {
		item.IsStaff = *p.IsStaff
	}
	return nil
}

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

// HashPassword validates and bcrypt-hashes a password.
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", domain.Invalid("password", "must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", domain.Invalid("password", "cannot be hashed")
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

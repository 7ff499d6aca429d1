package handlers

import (
	"time"

	"communityaid/internal/domain"
	"communityaid/internal/resource"
	"communityaid/internal/visibility"
)

type projectDTO struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	StartDate   resource.Date  `json:"start_date"`
	EndDate     *resource.Date `json:"end_date"`
	Status      string         `json:"status"`
	CreatedBy   int64          `json:"created_by"`
}

func projectView(_ domain.Actor, p domain.Project) any {
	dto := projectDTO{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		StartDate:   resource.Date{Time: p.StartDate},
		Status:      p.Status,
		CreatedBy:   p.CreatedBy,
	}
	if p.EndDate != nil {
		dto.EndDate = &resource.Date{Time: *p.EndDate}
	}
	return dto
}

func donationView(actor domain.Actor, d domain.Donation) any {
	return visibility.DonationView(actor, d)
}

type beneficiaryDTO struct {
	ID          int64  `json:"id"`
	Project     int64  `json:"project"`
	Name        string `json:"name"`
	ContactInfo string `json:"contact_info"`
	Approved    bool   `json:"approved"`
}

func beneficiaryView(_ domain.Actor, b domain.Beneficiary) any {
	return beneficiaryDTO{ID: b.ID, Project: b.ProjectID, Name: b.Name, ContactInfo: b.ContactInfo, Approved: b.Approved}
}

type volunteerDTO struct {
	ID         int64     `json:"id"`
	User       int64     `json:"user"`
	Project    int64     `json:"project"`
	Role       string    `json:"role"`
	Status     string    `json:"status"`
	DateJoined time.Time `json:"date_joined"`
}

func volunteerView(_ domain.Actor, v domain.Volunteer) any {
	return volunteerDTO{ID: v.ID, User: v.UserID, Project: v.ProjectID, Role: v.Role, Status: string(v.Status), DateJoined: v.DateJoined}
}

type userDTO struct {
	ID           int64          `json:"id"`
	Username     string         `json:"username"`
	Email        string         `json:"email"`
	FirstName    string         `json:"first_name"`
	LastName     string         `json:"last_name"`
	IsStaff      bool           `json:"is_staff"`
	DateOfBirth  *resource.Date `json:"date_of_birth"`
	ProfilePhoto *string        `json:"profile_photo"`
	DateJoined   time.Time      `json:"date_joined"`
}

// userView never exposes the password hash. Photo keys become public URLs.
func (a *App) userView(_ domain.Actor, u domain.User) any {
	dto := userDTO{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		IsStaff:    u.IsStaff,
		DateJoined: u.DateJoined,
	}
	if u.DateOfBirth != nil {
		dto.DateOfBirth = &resource.Date{Time: *u.DateOfBirth}
	}
	if u.ProfilePhoto != "" && a.Media != nil {
		url := a.Media.URL(u.ProfilePhoto)
		dto.ProfilePhoto = &url
	}
	return dto
}

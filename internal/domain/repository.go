package domain

import "context"

// UserRepository exposes the user lookups authentication needs.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Create(ctx context.Context, user *User) error
	SetStaff(ctx context.Context, username string, staff bool) error
	SetProfilePhoto(ctx context.Context, id int64, key string) error
}

// ProjectLookup resolves a project without visibility scoping.
type ProjectLookup interface {
	FindProject(ctx context.Context, id int64) (*Project, error)
}

// DonationRecorder persists donations produced outside the generic handlers.
type DonationRecorder interface {
	RecordDonation(ctx context.Context, donation *Donation) error
}

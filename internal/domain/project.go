package domain

import "time"

// Project is a fundraising or volunteering effort owned by its creator.
type Project struct {
	ID          int64
	Title       string
	Description string
	StartDate   time.Time
	EndDate     *time.Time
	Status      string
	CreatedBy   int64
}

func (p Project) Key() int64     { return p.ID }
func (p Project) OwnerID() int64 { return p.CreatedBy }
func (p Project) Public() bool   { return true }

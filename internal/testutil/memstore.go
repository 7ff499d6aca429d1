// Package testutil provides in-memory stores that honour the same scope and
// filter rules as the PostgreSQL repositories.
package testutil

import (
	"context"
	"strings"
	"sync"

	"communityaid/internal/domain"
)

// MemStore keeps rows of one kind in insertion order.
type MemStore[T domain.Record] struct {
	mu       sync.Mutex
	rows     []T
	nextID   int64
	setID    func(*T, int64)
	match    func(T, domain.Filter) bool
	setState func(*T, string)

	// Writes counts successful Create, Update, Delete and SetState calls.
	Writes int
}

func newMemStore[T domain.Record](setID func(*T, int64), match func(T, domain.Filter) bool, setState func(*T, string)) *MemStore[T] {
	return &MemStore[T]{setID: setID, match: match, setState: setState}
}

func (m *MemStore[T]) List(_ context.Context, scope domain.Scope, filter domain.Filter) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []T{}
	for _, row := range m.rows {
		if !scope.Admits(row) {
			continue
		}
		if m.match != nil && !m.match(row, filter) {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func (m *MemStore[T]) Get(_ context.Context, id int64, scope domain.Scope) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.Key() == id && scope.Admits(row) {
			cp := row
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MemStore[T]) Create(_ context.Context, item *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.setID(item, m.nextID)
	m.rows = append(m.rows, *item)
	m.Writes++
	return nil
}

func (m *MemStore[T]) Update(_ context.Context, item *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, row := range m.rows {
		if row.Key() == (*item).Key() {
			m.rows[i] = *item
			m.Writes++
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *MemStore[T]) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, row := range m.rows {
		if row.Key() == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			m.Writes++
			return nil
		}
	}
	return domain.ErrNotFound
}

// SetState applies the kind's state transition to every matching id.
func (m *MemStore[T]) SetState(_ context.Context, ids []int64, state string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	want := make(map[int64]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var n int64
	for i := range m.rows {
		if want[m.rows[i].Key()] {
			m.setState(&m.rows[i], state)
			n++
		}
	}
	m.Writes++
	return n, nil
}

// Seed inserts rows as-is and returns them. Rows without an id get the next
// free one; explicit ids are kept.
func (m *MemStore[T]) Seed(items ...T) []T {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]T, 0, len(items))
	for i := range items {
		if id := items[i].Key(); id != 0 {
			if id > m.nextID {
				m.nextID = id
			}
		} else {
			m.nextID++
			m.setID(&items[i], m.nextID)
		}
		m.rows = append(m.rows, items[i])
		out = append(out, items[i])
	}
	m.Writes = 0
	return out
}

// All returns every row regardless of scope.
func (m *MemStore[T]) All() []T {
	rows, _ := m.List(context.Background(), domain.Unrestricted, domain.Filter{})
	return rows
}

// Projects is an in-memory project store.
type Projects struct{ *MemStore[domain.Project] }

func NewProjects() *Projects {
	return &Projects{newMemStore(
		func(p *domain.Project, id int64) { p.ID = id },
		func(p domain.Project, f domain.Filter) bool {
			if f.Status != "" && p.Status != f.Status {
				return false
			}
			if f.Query != "" {
				q := strings.ToLower(f.Query)
				return strings.Contains(strings.ToLower(p.Title), q) || strings.Contains(strings.ToLower(p.Description), q)
			}
			return true
		},
		nil,
	)}
}

func (p *Projects) FindProject(ctx context.Context, id int64) (*domain.Project, error) {
	return p.Get(ctx, id, domain.Unrestricted)
}

// Donations is an in-memory donation store.
type Donations struct{ *MemStore[domain.Donation] }

func NewDonations() *Donations {
	return &Donations{newMemStore(
		func(d *domain.Donation, id int64) { d.ID = id },
		func(d domain.Donation, f domain.Filter) bool {
			return f.ProjectID == 0 || d.ProjectID == f.ProjectID
		},
		nil,
	)}
}

func (d *Donations) RecordDonation(ctx context.Context, donation *domain.Donation) error {
	return d.Create(ctx, donation)
}

// NewBeneficiaries returns an in-memory beneficiary store.
func NewBeneficiaries() *MemStore[domain.Beneficiary] {
	return newMemStore(
		func(b *domain.Beneficiary, id int64) { b.ID = id },
		func(b domain.Beneficiary, f domain.Filter) bool {
			return f.ProjectID == 0 || b.ProjectID == f.ProjectID
		},
		func(b *domain.Beneficiary, state string) { b.Approved = state == "approved" },
	)
}

// NewVolunteers returns an in-memory volunteer store.
func NewVolunteers() *MemStore[domain.Volunteer] {
	return newMemStore(
		func(v *domain.Volunteer, id int64) { v.ID = id },
		func(v domain.Volunteer, f domain.Filter) bool {
			if f.ProjectID != 0 && v.ProjectID != f.ProjectID {
				return false
			}
			return f.Status == "" || string(v.Status) == f.Status
		},
		func(v *domain.Volunteer, state string) { v.Status = domain.VolunteerStatus(state) },
	)
}

// Users is an in-memory user store.
type Users struct{ *MemStore[domain.User] }

func NewUsers() *Users {
	return &Users{newMemStore(
		func(u *domain.User, id int64) { u.ID = id },
		func(u domain.User, f domain.Filter) bool {
			return f.Query == "" || strings.Contains(u.Username, f.Query) || strings.Contains(u.Email, f.Query)
		},
		nil,
	)}
}

func (u *Users) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return u.Get(ctx, id, domain.Unrestricted)
}

func (u *Users) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, row := range u.All() {
		if row.Username == username {
			cp := row
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Create rejects duplicate usernames like the unique index does.
func (u *Users) Create(ctx context.Context, user *domain.User) error {
	if _, err := u.GetByUsername(ctx, user.Username); err == nil {
		return domain.Invalid("username", "a user with that username already exists")
	}
	return u.MemStore.Create(ctx, user)
}

func (u *Users) SetStaff(ctx context.Context, username string, staff bool) error {
	user, err := u.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	user.IsStaff = staff
	return u.Update(ctx, user)
}

func (u *Users) SetProfilePhoto(ctx context.Context, id int64, key string) error {
	user, err := u.GetByID(ctx, id)
	if err != nil {
		return err
	}
	user.ProfilePhoto = key
	return u.Update(ctx, user)
}

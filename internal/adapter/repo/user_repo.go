package repo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"communityaid/internal/domain"
	"communityaid/internal/infra"
	"communityaid/internal/sqlinline"
)

// UserRepositoryPG implements domain.UserRepository backed by PostgreSQL.
type UserRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewUserRepository creates a new UserRepositoryPG.
func NewUserRepository(sql infra.SQLExecutor) *UserRepositoryPG {
	return &UserRepositoryPG{sql: sql}
}

func (r *UserRepositoryPG) List(ctx context.Context, scope domain.Scope, filter domain.Filter) ([]domain.User, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListUsers, scope.Restricted, scope.OwnerID, filter.Query)
	if err != nil {
		return nil, translate(err, "user")
	}
	defer rows.Close()

	items := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *u)
	}
	return items, rows.Err()
}

func (r *UserRepositoryPG) Get(ctx context.Context, id int64, scope domain.Scope) (*domain.User, error) {
	return scanUser(r.sql.QueryRow(ctx, sqlinline.QSelectUserByID, id, scope.Restricted, scope.OwnerID))
}

// GetByID fetches a user regardless of scope.
func (r *UserRepositoryPG) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.Get(ctx, id, domain.Unrestricted)
}

// GetByUsername fetches a user by login name.
func (r *UserRepositoryPG) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return scanUser(r.sql.QueryRow(ctx, sqlinline.QSelectUserByUsername, username))
}

func (r *UserRepositoryPG) Create(ctx context.Context, u *domain.User) error {
	row := r.sql.QueryRow(ctx, sqlinline.QInsertUser,
		u.Username,
		u.Email,
		u.PasswordHash,
		u.FirstName,
		u.LastName,
		u.IsStaff,
		u.DateOfBirth,
		u.ProfilePhoto,
		u.DateJoined,
	)
	return translate(row.Scan(&u.ID), "user")
}

func (r *UserRepositoryPG) Update(ctx context.Context, u *domain.User) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QUpdateUser, u.ID, u.Username, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.IsStaff, u.DateOfBirth)
	if err != nil {
		return translate(err, "user")
	}
	return mustAffect(tag)
}

func (r *UserRepositoryPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QDeleteUser, id)
	if err != nil {
		return translate(err, "user")
	}
	return mustAffect(tag)
}

// SetStaff grants or revokes administrator rights by username.
func (r *UserRepositoryPG) SetStaff(ctx context.Context, username string, staff bool) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QSetUserStaff, username, staff)
	if err != nil {
		return translate(err, "user")
	}
	return mustAffect(tag)
}

// SetProfilePhoto records the storage key of the user's photo.
func (r *UserRepositoryPG) SetProfilePhoto(ctx context.Context, id int64, key string) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QSetUserPhoto, id, key)
	if err != nil {
		return translate(err, "user")
	}
	return mustAffect(tag)
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var dob *time.Time
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.IsStaff, &dob, &u.ProfilePhoto, &u.DateJoined); err != nil {
		return nil, translate(err, "user")
	}
	u.DateOfBirth = dob
	return &u, nil
}

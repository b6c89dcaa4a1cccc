package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ecowash/ecowash-backend/internal/model"
)

// AdminRepo is the MySQL AdminStore backed by the 'admins' table.
type AdminRepo struct{ DB *sql.DB }

func NewAdminRepo(db *sql.DB) *AdminRepo { return &AdminRepo{DB: db} }

func (r *AdminRepo) Create(ctx context.Context, a *model.Admin) error {
	a.Email = normalizeEmail(a.Email)
	Stamp(&a.ID, &a.CreatedAt)
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO admins (id,email,password_hash,created_at) VALUES (?,?,?,?)",
		a.ID, a.Email, a.PasswordHash, a.CreatedAt)
	if isDuplicateEntry(err) {
		return ErrEmailExists
	}
	return err
}

func (r *AdminRepo) GetByEmail(ctx context.Context, email string) (model.Admin, error) {
	return r.getOne(ctx, "email", normalizeEmail(email))
}

func (r *AdminRepo) GetByID(ctx context.Context, id string) (model.Admin, error) {
	return r.getOne(ctx, "id", id)
}

// DeleteAll removes every admin; the seed command uses it before
// recreating the operator account.
func (r *AdminRepo) DeleteAll(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM admins")
	return err
}

func (r *AdminRepo) getOne(ctx context.Context, column, value string) (model.Admin, error) {
	var a model.Admin
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,created_at FROM admins WHERE "+column+"=? LIMIT 1", value).
		Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return a, ErrNotFound
	}
	return a, err
}

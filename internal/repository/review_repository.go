package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ecowash/ecowash-backend/internal/model"
)

const reviewColumns = "id,user_id,rating,comment,created_at"

// ReviewRepo is the MySQL ReviewStore.  The 'reviews' table carries a
// UNIQUE index on user_id, which is what actually guarantees one review per
// user when two creates race past the service's pre-check.
type ReviewRepo struct{ DB *sql.DB }

func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{DB: db} }

func (r *ReviewRepo) Create(ctx context.Context, rv *model.Review) error {
	Stamp(&rv.ID, &rv.CreatedAt)
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO reviews ("+reviewColumns+") VALUES (?,?,?,?,?)",
		rv.ID, rv.UserID, rv.Rating, rv.Comment, rv.CreatedAt)
	if isDuplicateEntry(err) {
		return ErrDuplicate
	}
	return err
}

func (r *ReviewRepo) GetByUser(ctx context.Context, userID string) (model.Review, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+reviewColumns+" FROM reviews WHERE user_id = ? LIMIT 1", userID)
	rv, err := scanReview(row)
	if errors.Is(err, sql.ErrNoRows) {
		return rv, ErrNotFound
	}
	return rv, err
}

func (r *ReviewRepo) Update(ctx context.Context, rv *model.Review) error {
	result, err := r.DB.ExecContext(ctx,
		"UPDATE reviews SET rating = ?, comment = ? WHERE id = ?", rv.Rating, rv.Comment, rv.ID)
	if err != nil {
		return err
	}
	return expectAffected(result)
}

func (r *ReviewRepo) DeleteByUser(ctx context.Context, userID string) error {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM reviews WHERE user_id = ?", userID)
	if err != nil {
		return err
	}
	return expectAffected(result)
}

// List returns every review, newest first.
func (r *ReviewRepo) List(ctx context.Context) ([]model.Review, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+reviewColumns+" FROM reviews ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Review, 0)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func scanReview(s rowScanner) (model.Review, error) {
	var rv model.Review
	err := s.Scan(&rv.ID, &rv.UserID, &rv.Rating, &rv.Comment, &rv.CreatedAt)
	return rv, err
}

package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ecowash/ecowash-backend/internal/model"
)

const reservationColumns = "id,user_id,vehicle_type,service,date,time,address,notes,status,reject_reason,created_at"

// ReservationRepo is the MySQL ReservationStore backed by the
// 'reservations' table.  All timestamps are stored in UTC.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// Create inserts a new reservation.  Status defaults to pending when the
// caller leaves it empty.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	Stamp(&res.ID, &res.CreatedAt)
	if res.Status == "" {
		res.Status = model.StatusPending
	}
	const q = `INSERT INTO reservations (` + reservationColumns + `) VALUES (?,?,?,?,?,?,?,?,?,?,?)`
	_, err := r.db.ExecContext(ctx, q,
		res.ID, res.UserID, res.VehicleType, res.Service, res.Date, res.Time, res.Address,
		nullString(res.Notes), res.Status, nullString(res.RejectReason), res.CreatedAt)
	return err
}

func (r *ReservationRepo) GetByID(ctx context.Context, id string) (model.Reservation, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+reservationColumns+" FROM reservations WHERE id = ?", id)
	res, err := scanReservation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return res, ErrNotFound
	}
	return res, err
}

// ListByUser returns the user's reservations, newest first.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID string) ([]model.Reservation, error) {
	return r.query(ctx,
		"SELECT "+reservationColumns+" FROM reservations WHERE user_id = ? ORDER BY created_at DESC, id DESC",
		userID)
}

// List returns every reservation in status, or all of them when status is
// empty, newest first.
func (r *ReservationRepo) List(ctx context.Context, status model.Status) ([]model.Reservation, error) {
	if status == "" {
		return r.query(ctx,
			"SELECT "+reservationColumns+" FROM reservations ORDER BY created_at DESC, id DESC")
	}
	return r.query(ctx,
		"SELECT "+reservationColumns+" FROM reservations WHERE status = ? ORDER BY created_at DESC, id DESC",
		status)
}

// UpdateStatus overwrites status and reject reason.  An empty reason is
// stored as NULL.  The DSN sets clientFoundRows so that an update writing
// identical values still reports the matched row.
func (r *ReservationRepo) UpdateStatus(ctx context.Context, id string, status model.Status, rejectReason string) error {
	const q = `UPDATE reservations SET status = ?, reject_reason = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, q, status, nullString(rejectReason), id)
	if err != nil {
		return err
	}
	return expectAffected(result)
}

func (r *ReservationRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM reservations WHERE id = ?", id)
	if err != nil {
		return err
	}
	return expectAffected(result)
}

func (r *ReservationRepo) CountByStatus(ctx context.Context, status model.Status) (int64, error) {
	var n int64
	var err error
	if status == "" {
		err = r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM reservations").Scan(&n)
	} else {
		err = r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM reservations WHERE status = ?", status).Scan(&n)
	}
	return n, err
}

func (r *ReservationRepo) query(ctx context.Context, q string, args ...any) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func scanReservation(s rowScanner) (model.Reservation, error) {
	var (
		res          model.Reservation
		notes        sql.NullString
		rejectReason sql.NullString
	)
	err := s.Scan(&res.ID, &res.UserID, &res.VehicleType, &res.Service, &res.Date, &res.Time,
		&res.Address, &notes, &res.Status, &rejectReason, &res.CreatedAt)
	if err != nil {
		return res, err
	}
	res.Notes = notes.String
	res.RejectReason = rejectReason.String
	return res, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// expectAffected maps an update or delete that touched no row to
// ErrNotFound.
func expectAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

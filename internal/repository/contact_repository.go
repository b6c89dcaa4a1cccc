package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ecowash/ecowash-backend/internal/model"
)

const contactColumns = "id,name,email,subject,message,is_read,created_at"

// ContactRepo is the MySQL ContactStore backed by 'contact_messages'.
type ContactRepo struct{ DB *sql.DB }

func NewContactRepo(db *sql.DB) *ContactRepo { return &ContactRepo{DB: db} }

func (r *ContactRepo) Create(ctx context.Context, m *model.ContactMessage) error {
	Stamp(&m.ID, &m.CreatedAt)
	m.Email = normalizeEmail(m.Email)
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO contact_messages ("+contactColumns+") VALUES (?,?,?,?,?,?,?)",
		m.ID, m.Name, m.Email, m.Subject, m.Message, m.Read, m.CreatedAt)
	return err
}

// List returns all messages, newest first.
func (r *ContactRepo) List(ctx context.Context) ([]model.ContactMessage, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+contactColumns+" FROM contact_messages ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.ContactMessage, 0)
	for rows.Next() {
		m, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// MarkRead flags the message as read and returns it.
func (r *ContactRepo) MarkRead(ctx context.Context, id string) (model.ContactMessage, error) {
	result, err := r.DB.ExecContext(ctx, "UPDATE contact_messages SET is_read = TRUE WHERE id = ?", id)
	if err != nil {
		return model.ContactMessage{}, err
	}
	if err := expectAffected(result); err != nil {
		return model.ContactMessage{}, err
	}
	row := r.DB.QueryRowContext(ctx, "SELECT "+contactColumns+" FROM contact_messages WHERE id = ?", id)
	m, err := scanContact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return m, ErrNotFound
	}
	return m, err
}

func (r *ContactRepo) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM contact_messages WHERE id = ?", id)
	if err != nil {
		return err
	}
	return expectAffected(result)
}

func (r *ContactRepo) CountUnread(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM contact_messages WHERE is_read = FALSE").Scan(&n)
	return n, err
}

func scanContact(s rowScanner) (model.ContactMessage, error) {
	var m model.ContactMessage
	err := s.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.Read, &m.CreatedAt)
	return m, err
}

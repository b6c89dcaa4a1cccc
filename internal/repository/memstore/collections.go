package memstore

import (
	"context"
	"time"

	"github.com/ecowash/ecowash-backend/internal/model"
	"github.com/ecowash/ecowash-backend/internal/repository"
)

type reservationStore struct{ db *DB }

func reservationKey(r model.Reservation) (time.Time, string) { return r.CreatedAt, r.ID }

func (s reservationStore) Create(_ context.Context, r *model.Reservation) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	repository.Stamp(&r.ID, &r.CreatedAt)
	if r.Status == "" {
		r.Status = model.StatusPending
	}
	stored := *r
	stored.User = nil
	s.db.reservations[r.ID] = stored
	return nil
}

func (s reservationStore) GetByID(_ context.Context, id string) (model.Reservation, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	r, ok := s.db.reservations[id]
	if !ok {
		return model.Reservation{}, repository.ErrNotFound
	}
	return r, nil
}

func (s reservationStore) ListByUser(_ context.Context, userID string) ([]model.Reservation, error) {
	return s.filter(func(r model.Reservation) bool { return r.UserID == userID }), nil
}

func (s reservationStore) List(_ context.Context, status model.Status) ([]model.Reservation, error) {
	return s.filter(func(r model.Reservation) bool { return status == "" || r.Status == status }), nil
}

func (s reservationStore) UpdateStatus(_ context.Context, id string, status model.Status, rejectReason string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	r, ok := s.db.reservations[id]
	if !ok {
		return repository.ErrNotFound
	}
	r.Status = status
	r.RejectReason = rejectReason
	s.db.reservations[id] = r
	return nil
}

func (s reservationStore) Delete(_ context.Context, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.reservations[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.db.reservations, id)
	return nil
}

func (s reservationStore) CountByStatus(ctx context.Context, status model.Status) (int64, error) {
	list, _ := s.List(ctx, status)
	return int64(len(list)), nil
}

func (s reservationStore) filter(keep func(model.Reservation) bool) []model.Reservation {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	out := make([]model.Reservation, 0)
	for _, r := range s.db.reservations {
		if keep(r) {
			out = append(out, r)
		}
	}
	newestFirst(out, reservationKey)
	return out
}

type contactStore struct{ db *DB }

func (s contactStore) Create(_ context.Context, m *model.ContactMessage) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	repository.Stamp(&m.ID, &m.CreatedAt)
	m.Email = normalizeEmail(m.Email)
	s.db.contacts[m.ID] = *m
	return nil
}

func (s contactStore) List(context.Context) ([]model.ContactMessage, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	out := make([]model.ContactMessage, 0, len(s.db.contacts))
	for _, m := range s.db.contacts {
		out = append(out, m)
	}
	newestFirst(out, func(m model.ContactMessage) (time.Time, string) { return m.CreatedAt, m.ID })
	return out, nil
}

func (s contactStore) MarkRead(_ context.Context, id string) (model.ContactMessage, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	m, ok := s.db.contacts[id]
	if !ok {
		return model.ContactMessage{}, repository.ErrNotFound
	}
	m.Read = true
	s.db.contacts[id] = m
	return m, nil
}

func (s contactStore) Delete(_ context.Context, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.contacts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.db.contacts, id)
	return nil
}

func (s contactStore) CountUnread(context.Context) (int64, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	var n int64
	for _, m := range s.db.contacts {
		if !m.Read {
			n++
		}
	}
	return n, nil
}

type reviewStore struct{ db *DB }

func (s reviewStore) Create(_ context.Context, rv *model.Review) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, existing := range s.db.reviews {
		if existing.UserID == rv.UserID {
			return repository.ErrDuplicate
		}
	}
	repository.Stamp(&rv.ID, &rv.CreatedAt)
	stored := *rv
	stored.User = nil
	s.db.reviews[rv.ID] = stored
	return nil
}

func (s reviewStore) GetByUser(_ context.Context, userID string) (model.Review, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	for _, rv := range s.db.reviews {
		if rv.UserID == userID {
			return rv, nil
		}
	}
	return model.Review{}, repository.ErrNotFound
}

func (s reviewStore) Update(_ context.Context, rv *model.Review) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	stored, ok := s.db.reviews[rv.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Rating = rv.Rating
	stored.Comment = rv.Comment
	s.db.reviews[rv.ID] = stored
	return nil
}

func (s reviewStore) DeleteByUser(_ context.Context, userID string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for id, rv := range s.db.reviews {
		if rv.UserID == userID {
			delete(s.db.reviews, id)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s reviewStore) List(context.Context) ([]model.Review, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	out := make([]model.Review, 0, len(s.db.reviews))
	for _, rv := range s.db.reviews {
		out = append(out, rv)
	}
	newestFirst(out, func(rv model.Review) (time.Time, string) { return rv.CreatedAt, rv.ID })
	return out, nil
}

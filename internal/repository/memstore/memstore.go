// Package memstore keeps every collection in process memory.  It backs
// DB_DRIVER=memory for local runs and the handler tests.  Unique keys are
// checked under the same lock as the write, so concurrent duplicates lose
// the same way they would against a real index.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ecowash/ecowash-backend/internal/model"
	"github.com/ecowash/ecowash-backend/internal/repository"
)

// DB holds the collections.  The zero value is not usable; call New.
type DB struct {
	mu           sync.RWMutex
	users        map[string]model.User
	admins       map[string]model.Admin
	reservations map[string]model.Reservation
	contacts     map[string]model.ContactMessage
	reviews      map[string]model.Review
}

func New() *DB {
	return &DB{
		users:        map[string]model.User{},
		admins:       map[string]model.Admin{},
		reservations: map[string]model.Reservation{},
		contacts:     map[string]model.ContactMessage{},
		reviews:      map[string]model.Review{},
	}
}

// Stores exposes the collections through the repository interfaces.
func (db *DB) Stores() repository.Stores {
	return repository.Stores{
		Users:        userStore{db},
		Admins:       adminStore{db},
		Reservations: reservationStore{db},
		Contacts:     contactStore{db},
		Reviews:      reviewStore{db},
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// newestFirst sorts by creation time descending, id descending on ties.
func newestFirst[T any](items []T, key func(T) (time.Time, string)) {
	sort.Slice(items, func(i, j int) bool {
		ti, idi := key(items[i])
		tj, idj := key(items[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return idi > idj
	})
}

type userStore struct{ db *DB }

func (s userStore) Create(_ context.Context, u *model.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u.Email = normalizeEmail(u.Email)
	for _, existing := range s.db.users {
		if existing.Email == u.Email {
			return repository.ErrEmailExists
		}
	}
	repository.Stamp(&u.ID, &u.CreatedAt)
	s.db.users[u.ID] = *u
	return nil
}

func (s userStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	email = normalizeEmail(email)
	for _, u := range s.db.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (s userStore) GetByID(_ context.Context, id string) (model.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	u, ok := s.db.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (s userStore) GetByIDs(_ context.Context, ids []string) (map[string]model.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	out := make(map[string]model.User, len(ids))
	for _, id := range ids {
		if u, ok := s.db.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (s userStore) Count(context.Context) (int64, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	return int64(len(s.db.users)), nil
}

type adminStore struct{ db *DB }

func (s adminStore) Create(_ context.Context, a *model.Admin) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	a.Email = normalizeEmail(a.Email)
	for _, existing := range s.db.admins {
		if existing.Email == a.Email {
			return repository.ErrEmailExists
		}
	}
	repository.Stamp(&a.ID, &a.CreatedAt)
	s.db.admins[a.ID] = *a
	return nil
}

func (s adminStore) GetByEmail(_ context.Context, email string) (model.Admin, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	email = normalizeEmail(email)
	for _, a := range s.db.admins {
		if a.Email == email {
			return a, nil
		}
	}
	return model.Admin{}, repository.ErrNotFound
}

func (s adminStore) GetByID(_ context.Context, id string) (model.Admin, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	a, ok := s.db.admins[id]
	if !ok {
		return model.Admin{}, repository.ErrNotFound
	}
	return a, nil
}

func (s adminStore) DeleteAll(context.Context) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.admins = map[string]model.Admin{}
	return nil
}

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ecowash/ecowash-backend/internal/model"
)

// UserStore persists registered users.
type UserStore interface {
	// Create assigns ID and CreatedAt when empty.  ErrEmailExists on a
	// duplicate email.
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id string) (model.User, error)
	// GetByIDs returns the users found, keyed by id.  Unknown ids are
	// skipped.
	GetByIDs(ctx context.Context, ids []string) (map[string]model.User, error)
	Count(ctx context.Context) (int64, error)
}

// AdminStore persists operator accounts.
type AdminStore interface {
	Create(ctx context.Context, a *model.Admin) error
	GetByEmail(ctx context.Context, email string) (model.Admin, error)
	GetByID(ctx context.Context, id string) (model.Admin, error)
	DeleteAll(ctx context.Context) error
}

// ReservationStore persists booking requests.  Listings are ordered newest
// first.
type ReservationStore interface {
	Create(ctx context.Context, r *model.Reservation) error
	GetByID(ctx context.Context, id string) (model.Reservation, error)
	ListByUser(ctx context.Context, userID string) ([]model.Reservation, error)
	// List filters on status; the empty status lists everything.
	List(ctx context.Context, status model.Status) ([]model.Reservation, error)
	// UpdateStatus overwrites status and reject reason.  An empty reason
	// clears the stored one.  ErrNotFound when the reservation does not
	// exist.
	UpdateStatus(ctx context.Context, id string, status model.Status, rejectReason string) error
	Delete(ctx context.Context, id string) error
	// CountByStatus counts reservations in status; the empty status counts
	// everything.
	CountByStatus(ctx context.Context, status model.Status) (int64, error)
}

// ContactStore persists contact form messages.
type ContactStore interface {
	Create(ctx context.Context, m *model.ContactMessage) error
	List(ctx context.Context) ([]model.ContactMessage, error)
	MarkRead(ctx context.Context, id string) (model.ContactMessage, error)
	Delete(ctx context.Context, id string) error
	CountUnread(ctx context.Context) (int64, error)
}

// ReviewStore persists reviews.  The store enforces one review per user and
// reports violations as ErrDuplicate.
type ReviewStore interface {
	Create(ctx context.Context, r *model.Review) error
	GetByUser(ctx context.Context, userID string) (model.Review, error)
	Update(ctx context.Context, r *model.Review) error
	DeleteByUser(ctx context.Context, userID string) error
	List(ctx context.Context) ([]model.Review, error)
}

// Stores bundles one backend's implementations.
type Stores struct {
	Users        UserStore
	Admins       AdminStore
	Reservations ReservationStore
	Contacts     ContactStore
	Reviews      ReviewStore
}

// NewID returns a fresh record identifier.  Ids are UUIDv7, so they sort
// in creation order even within one millisecond, which keeps the
// "created_at DESC, id DESC" ordering stable for back-to-back inserts.
func NewID() string { return uuid.Must(uuid.NewV7()).String() }

// Stamp fills in an empty id and a zero creation time.  Times are truncated
// to milliseconds so that every backend round-trips them identically.
func Stamp(id *string, createdAt *time.Time) {
	if createdAt.IsZero() {
		*createdAt = time.Now().UTC()
	}
	*createdAt = createdAt.Truncate(time.Millisecond)
	if *id == "" {
		*id = NewID()
	}
}

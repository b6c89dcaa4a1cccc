package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ecowash/ecowash-backend/internal/model"
	"github.com/ecowash/ecowash-backend/internal/notify"
	"github.com/ecowash/ecowash-backend/internal/repository"
)

// NewReservation is what a customer may set when booking.  Status and owner
// are always decided by the server.
type NewReservation struct {
	VehicleType model.VehicleType
	Service     model.ServiceType
	Date        time.Time
	Time        string
	Address     string
	Notes       string
}

// transitions lists the workflow edges.  Identity changes are always
// accepted.
var transitions = map[model.Status][]model.Status{
	model.StatusPending:  {model.StatusApproved, model.StatusRejected},
	model.StatusApproved: {model.StatusCompleted},
}

// CanTransition reports whether from -> to is a workflow edge or a no-op.
func CanTransition(from, to model.Status) bool {
	if from == to {
		return true
	}
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ReservationService runs the booking workflow.  With strict set, status
// changes outside CanTransition are refused; otherwise any status may
// overwrite any other.
type ReservationService struct {
	reservations repository.ReservationStore
	users        repository.UserStore
	contacts     repository.ContactStore
	notifier     notify.Notifier
	strict       bool
}

func NewReservationService(stores repository.Stores, n notify.Notifier, strict bool) *ReservationService {
	return &ReservationService{
		reservations: stores.Reservations,
		users:        stores.Users,
		contacts:     stores.Contacts,
		notifier:     n,
		strict:       strict,
	}
}

// Create books a pending reservation for owner.
func (s *ReservationService) Create(ctx context.Context, owner model.User, in NewReservation) (model.Reservation, error) {
	r := model.Reservation{
		UserID:      owner.ID,
		VehicleType: in.VehicleType,
		Service:     in.Service,
		Date:        in.Date.UTC(),
		Time:        strings.TrimSpace(in.Time),
		Address:     strings.TrimSpace(in.Address),
		Notes:       strings.TrimSpace(in.Notes),
		Status:      model.StatusPending,
	}
	if err := s.reservations.Create(ctx, &r); err != nil {
		return model.Reservation{}, fmt.Errorf("create reservation: %w", err)
	}
	r.User = owner.Summary()
	return r, nil
}

// ListMine returns the user's reservations, newest first.
func (s *ReservationService) ListMine(ctx context.Context, userID string) ([]model.Reservation, error) {
	return s.reservations.ListByUser(ctx, userID)
}

// GetForUser returns one reservation if userID owns it.
func (s *ReservationService) GetForUser(ctx context.Context, userID, id string) (model.Reservation, error) {
	r, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return model.Reservation{}, err
	}
	if r.UserID != userID {
		return model.Reservation{}, ErrForbidden
	}
	if err := s.withOwners(ctx, []*model.Reservation{&r}); err != nil {
		return model.Reservation{}, err
	}
	return r, nil
}

// ParseStatusFilter maps a query value to a store filter.  "" and "all"
// select everything.
func ParseStatusFilter(v string) (model.Status, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" || v == "all" {
		return "", nil
	}
	st := model.Status(v)
	if !st.Valid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

// List returns reservations in status (all when empty) with owners
// embedded, newest first.
func (s *ReservationService) List(ctx context.Context, status model.Status) ([]model.Reservation, error) {
	list, err := s.reservations.List(ctx, status)
	if err != nil {
		return nil, err
	}
	ptrs := make([]*model.Reservation, len(list))
	for i := range list {
		ptrs[i] = &list[i]
	}
	if err := s.withOwners(ctx, ptrs); err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateStatus moves a reservation to status and emails the owner when it
// enters approved or rejected.  Validation happens before anything is read
// or written.  Notification failures never affect the result.
func (s *ReservationService) UpdateStatus(ctx context.Context, id string, status model.Status, rejectReason string) (model.Reservation, error) {
	if !status.Valid() {
		return model.Reservation{}, ErrInvalidStatus
	}
	reason := strings.TrimSpace(rejectReason)
	if status == model.StatusRejected && reason == "" {
		return model.Reservation{}, ErrReasonRequired
	}
	if status != model.StatusRejected {
		reason = ""
	}

	r, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return model.Reservation{}, err
	}
	previous := r.Status
	if s.strict && !CanTransition(previous, status) {
		return model.Reservation{}, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, previous, status)
	}

	if err := s.reservations.UpdateStatus(ctx, id, status, reason); err != nil {
		return model.Reservation{}, err
	}
	r.Status = status
	r.RejectReason = reason

	owner, err := s.users.GetByID(ctx, r.UserID)
	switch {
	case err == nil:
		r.User = owner.Summary()
	case errors.Is(err, repository.ErrNotFound):
		log.WithField("reservation_id", id).Warn("reservation owner no longer exists, skipping notification")
		return r, nil
	default:
		return model.Reservation{}, err
	}

	switch {
	case status == model.StatusApproved && previous != model.StatusApproved:
		s.notifier.Notify(ctx, notify.Event{Kind: notify.KindApproved, Reservation: r, User: *r.User})
	case status == model.StatusRejected && previous != model.StatusRejected:
		s.notifier.Notify(ctx, notify.Event{Kind: notify.KindRejected, Reservation: r, User: *r.User, Reason: reason})
	}
	return r, nil
}

// Delete removes a reservation.  repository.ErrNotFound when absent.
func (s *ReservationService) Delete(ctx context.Context, id string) error {
	return s.reservations.Delete(ctx, id)
}

// Stats gathers the admin dashboard counters.
func (s *ReservationService) Stats(ctx context.Context) (model.ReservationStats, error) {
	var st model.ReservationStats
	counters := []struct {
		dst   *int64
		count func(context.Context) (int64, error)
	}{
		{&st.TotalReservations, s.countStatus("")},
		{&st.PendingReservations, s.countStatus(model.StatusPending)},
		{&st.ApprovedReservations, s.countStatus(model.StatusApproved)},
		{&st.CompletedReservations, s.countStatus(model.StatusCompleted)},
		{&st.TotalUsers, s.users.Count},
		{&st.UnreadMessages, s.contacts.CountUnread},
	}
	for _, c := range counters {
		n, err := c.count(ctx)
		if err != nil {
			return model.ReservationStats{}, fmt.Errorf("stats: %w", err)
		}
		*c.dst = n
	}
	return st, nil
}

func (s *ReservationService) countStatus(st model.Status) func(context.Context) (int64, error) {
	return func(ctx context.Context) (int64, error) { return s.reservations.CountByStatus(ctx, st) }
}

// withOwners embeds the owner summary in each reservation.  Owners that no
// longer exist are left nil.
func (s *ReservationService) withOwners(ctx context.Context, list []*model.Reservation) error {
	if len(list) == 0 {
		return nil
	}
	seen := map[string]bool{}
	ids := make([]string, 0, len(list))
	for _, r := range list {
		if !seen[r.UserID] {
			seen[r.UserID] = true
			ids = append(ids, r.UserID)
		}
	}
	users, err := s.users.GetByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("load owners: %w", err)
	}
	for _, r := range list {
		if u, ok := users[r.UserID]; ok {
			r.User = u.Summary()
		}
	}
	return nil
}

package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/ecowash/ecowash-backend/internal/model"
	"github.com/ecowash/ecowash-backend/internal/notify"
	"github.com/ecowash/ecowash-backend/internal/repository"
	"github.com/ecowash/ecowash-backend/internal/repository/memstore"
)

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) Notify(ctx context.Context, ev notify.Event) { m.Called(ctx, ev) }

func kindIs(k notify.Kind) interface{} {
	return mock.MatchedBy(func(ev notify.Event) bool { return ev.Kind == k })
}

type ReservationServiceSuite struct {
	suite.Suite
	ctx      context.Context
	stores   repository.Stores
	notifier *mockNotifier
	svc      *ReservationService
	owner    model.User
}

func (s *ReservationServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.stores = memstore.New().Stores()
	s.notifier = &mockNotifier{}
	s.svc = NewReservationService(s.stores, s.notifier, false)
	s.owner = model.User{FirstName: "Ana", LastName: "Roy", Email: "ana@example.com", Phone: "514"}
	s.Require().NoError(s.stores.Users.Create(s.ctx, &s.owner))
}

func (s *ReservationServiceSuite) book() model.Reservation {
	r, err := s.svc.Create(s.ctx, s.owner, NewReservation{
		VehicleType: model.VehicleSUV,
		Service:     model.ServiceComplet,
		Date:        time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Time:        "10:00",
		Address:     "12 rue X",
	})
	s.Require().NoError(err)
	return r
}

func (s *ReservationServiceSuite) TestCreate_IsPendingWithOwner() {
	r := s.book()
	s.Equal(model.StatusPending, r.Status)
	s.Equal(s.owner.ID, r.UserID)
	s.Require().NotNil(r.User)
	s.Equal("ana@example.com", r.User.Email)
}

func (s *ReservationServiceSuite) TestApprove_NotifiesOnce() {
	r := s.book()
	s.notifier.On("Notify", mock.Anything, kindIs(notify.KindApproved)).Once()

	got, err := s.svc.UpdateStatus(s.ctx, r.ID, model.StatusApproved, "")
	s.Require().NoError(err)
	s.Equal(model.StatusApproved, got.Status)
	s.Equal("Ana", got.User.FirstName)

	// Already approved: no second email.
	_, err = s.svc.UpdateStatus(s.ctx, r.ID, model.StatusApproved, "")
	s.Require().NoError(err)

	s.notifier.AssertNumberOfCalls(s.T(), "Notify", 1)
	s.notifier.AssertExpectations(s.T())
}

func (s *ReservationServiceSuite) TestApproveFromRejected_NotifiesInPermissiveMode() {
	r := s.book()
	s.notifier.On("Notify", mock.Anything, mock.Anything)

	_, err := s.svc.UpdateStatus(s.ctx, r.ID, model.StatusRejected, "Complet")
	s.Require().NoError(err)
	approved, err := s.svc.UpdateStatus(s.ctx, r.ID, model.StatusApproved, "")
	s.Require().NoError(err)
	s.Empty(approved.RejectReason, "reason only belongs to rejected reservations")

	stored, err := s.stores.Reservations.GetByID(s.ctx, r.ID)
	s.Require().NoError(err)
	s.Empty(stored.RejectReason)

	s.notifier.AssertNumberOfCalls(s.T(), "Notify", 2)
	s.notifier.AssertCalled(s.T(), "Notify", mock.Anything, kindIs(notify.KindApproved))
}

func (s *ReservationServiceSuite) TestReject_CarriesReason() {
	r := s.book()
	s.notifier.On("Notify", mock.Anything, mock.MatchedBy(func(ev notify.Event) bool {
		return ev.Kind == notify.KindRejected && ev.Reason == "Complet ce jour-là" && ev.User.Email == "ana@example.com"
	})).Once()

	got, err := s.svc.UpdateStatus(s.ctx, r.ID, model.StatusRejected, "  Complet ce jour-là ")
	s.Require().NoError(err)
	s.Equal("Complet ce jour-là", got.RejectReason)

	stored, err := s.stores.Reservations.GetByID(s.ctx, r.ID)
	s.Require().NoError(err)
	s.Equal(model.StatusRejected, stored.Status)
	s.Equal("Complet ce jour-là", stored.RejectReason)
	s.notifier.AssertExpectations(s.T())
}

func (s *ReservationServiceSuite) TestRejectWithoutReason_LeavesStorageUntouched() {
	r := s.book()

	for _, reason := range []string{"", "   "} {
		_, err := s.svc.UpdateStatus(s.ctx, r.ID, model.StatusRejected, reason)
		s.ErrorIs(err, ErrReasonRequired)
	}

	stored, err := s.stores.Reservations.GetByID(s.ctx, r.ID)
	s.Require().NoError(err)
	s.Equal(model.StatusPending, stored.Status)
	s.notifier.AssertNotCalled(s.T(), "Notify", mock.Anything, mock.Anything)
}

func (s *ReservationServiceSuite) TestUpdateStatus_Errors() {
	_, err := s.svc.UpdateStatus(s.ctx, "missing", model.StatusApproved, "")
	s.ErrorIs(err, repository.ErrNotFound)

	_, err = s.svc.UpdateStatus(s.ctx, "missing", model.Status("cancelled"), "")
	s.ErrorIs(err, ErrInvalidStatus)
}

func (s *ReservationServiceSuite) TestCompleteDoesNotNotify() {
	r := s.book()
	s.notifier.On("Notify", mock.Anything, kindIs(notify.KindApproved)).Once()

	_, err := s.svc.UpdateStatus(s.ctx, r.ID, model.StatusApproved, "")
	s.Require().NoError(err)
	_, err = s.svc.UpdateStatus(s.ctx, r.ID, model.StatusCompleted, "")
	s.Require().NoError(err)

	s.notifier.AssertNumberOfCalls(s.T(), "Notify", 1)
}

func (s *ReservationServiceSuite) TestStrictMode() {
	s.svc = NewReservationService(s.stores, s.notifier, true)
	r := s.book()

	_, err := s.svc.UpdateStatus(s.ctx, r.ID, model.StatusCompleted, "")
	s.ErrorIs(err, ErrIllegalTransition)

	// Identity is always accepted.
	_, err = s.svc.UpdateStatus(s.ctx, r.ID, model.StatusPending, "")
	s.NoError(err)

	stored, err := s.stores.Reservations.GetByID(s.ctx, r.ID)
	s.Require().NoError(err)
	s.Equal(model.StatusPending, stored.Status)
}

func (s *ReservationServiceSuite) TestGetForUser_Ownership() {
	r := s.book()
	other := model.User{FirstName: "Bo", Email: "bo@example.com"}
	s.Require().NoError(s.stores.Users.Create(s.ctx, &other))

	_, err := s.svc.GetForUser(s.ctx, other.ID, r.ID)
	s.ErrorIs(err, ErrForbidden)

	got, err := s.svc.GetForUser(s.ctx, s.owner.ID, r.ID)
	s.Require().NoError(err)
	s.Equal(r.ID, got.ID)
	s.Equal("Ana", got.User.FirstName)

	_, err = s.svc.GetForUser(s.ctx, s.owner.ID, "missing")
	s.ErrorIs(err, repository.ErrNotFound)
}

func (s *ReservationServiceSuite) TestListMine_BackToBackNewestFirst() {
	var ids []string
	for i := 0; i < 30; i++ {
		ids = append(ids, s.book().ID)
	}

	mine, err := s.svc.ListMine(s.ctx, s.owner.ID)
	s.Require().NoError(err)
	s.Require().Len(mine, len(ids))
	for i, r := range mine {
		s.Equal(ids[len(ids)-1-i], r.ID, "position %d", i)
	}
}

func (s *ReservationServiceSuite) TestListAndStats() {
	s.notifier.On("Notify", mock.Anything, mock.Anything)
	first := s.book()
	s.book()
	_, err := s.svc.UpdateStatus(s.ctx, first.ID, model.StatusApproved, "")
	s.Require().NoError(err)
	s.Require().NoError(s.stores.Contacts.Create(s.ctx, &model.ContactMessage{Name: "V", Email: "v@x.io", Subject: "s", Message: "m"}))

	all, err := s.svc.List(s.ctx, "")
	s.Require().NoError(err)
	s.Len(all, 2)
	s.NotEqual(first.ID, all[0].ID, "newest first")
	s.NotNil(all[0].User)

	approved, err := s.svc.List(s.ctx, model.StatusApproved)
	s.Require().NoError(err)
	s.Len(approved, 1)

	st, err := s.svc.Stats(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.ReservationStats{
		TotalReservations:    2,
		PendingReservations:  1,
		ApprovedReservations: 1,
		TotalUsers:           1,
		UnreadMessages:       1,
	}, st)
}

func TestReservationServiceSuite(t *testing.T) {
	suite.Run(t, new(ReservationServiceSuite))
}

func TestParseStatusFilter(t *testing.T) {
	for in, want := range map[string]model.Status{"": "", "all": "", " Pending ": model.StatusPending, "completed": model.StatusCompleted} {
		got, err := ParseStatusFilter(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseStatusFilter("archived")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(model.StatusPending, model.StatusApproved))
	assert.True(t, CanTransition(model.StatusPending, model.StatusRejected))
	assert.True(t, CanTransition(model.StatusApproved, model.StatusCompleted))
	assert.True(t, CanTransition(model.StatusRejected, model.StatusRejected))
	assert.False(t, CanTransition(model.StatusRejected, model.StatusApproved))
	assert.False(t, CanTransition(model.StatusCompleted, model.StatusPending))
	assert.False(t, CanTransition(model.StatusPending, model.StatusCompleted))
}

func TestReviewService(t *testing.T) {
	ctx := context.Background()
	stores := memstore.New().Stores()
	svc := NewReviewService(stores)
	u := model.User{FirstName: "Ana", LastName: "Roy", Email: "ana@example.com"}
	require.NoError(t, stores.Users.Create(ctx, &u))

	mine, err := svc.GetMine(ctx, u)
	require.NoError(t, err)
	assert.Nil(t, mine)

	_, err = svc.Create(ctx, u, 6, "trop")
	assert.ErrorIs(t, err, ErrInvalidReview)

	r, err := svc.Create(ctx, u, 5, " Impeccable ")
	require.NoError(t, err)
	assert.Equal(t, "Impeccable", r.Comment)

	_, err = svc.Create(ctx, u, 4, "encore")
	assert.ErrorIs(t, err, ErrReviewExists)

	rating := 3
	r, err = svc.Update(ctx, u, ReviewPatch{Rating: &rating})
	require.NoError(t, err)
	assert.Equal(t, 3, r.Rating)
	assert.Equal(t, "Impeccable", r.Comment)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Ana", list[0].User.FirstName)
	assert.Empty(t, list[0].User.Email, "public list exposes names only")

	require.NoError(t, svc.Delete(ctx, u))
	assert.ErrorIs(t, svc.Delete(ctx, u), repository.ErrNotFound)
	_, err = svc.Update(ctx, u, ReviewPatch{Rating: &rating})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestReviewService_ConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	stores := memstore.New().Stores()
	svc := NewReviewService(stores)
	u := model.User{FirstName: "Ana", Email: "ana@example.com"}
	require.NoError(t, stores.Users.Create(ctx, &u))

	var ok, dup int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(ctx, u, 5, "Super")
			switch {
			case err == nil:
				atomic.AddInt32(&ok, 1)
			case assert.ErrorIs(t, err, ErrReviewExists):
				atomic.AddInt32(&dup, 1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, ok)
	assert.EqualValues(t, 19, dup)
	list, err := stores.Reviews.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAuthService(t *testing.T) {
	ctx := context.Background()
	stores := memstore.New().Stores()
	svc := NewAuthService(stores, "secret", 30, 4)

	u, tok, err := svc.Register(ctx, Registration{FirstName: "Ana", LastName: "Roy", Email: " Ana@Example.com ", Phone: "514", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.NotEmpty(t, tok.Token)

	_, _, err = svc.Register(ctx, Registration{Email: "ana@example.com", Password: "x"})
	assert.ErrorIs(t, err, ErrEmailTaken)
	n, err := stores.Users.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, _, err = svc.Login(ctx, "ana@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, "ANA@example.com", "hunter22")
	assert.NoError(t, err)

	// Users cannot sign in as admins.
	_, _, err = svc.AdminLogin(ctx, "ana@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.SeedAdmin(ctx, "old@example.com", "pw")
	require.NoError(t, err)
	a, err := svc.SeedAdmin(ctx, "ops@example.com", "s3cret")
	require.NoError(t, err)
	_, _, err = svc.AdminLogin(ctx, "old@example.com", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials, "seeding replaces previous admins")
	got, _, err := svc.AdminLogin(ctx, "ops@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
}

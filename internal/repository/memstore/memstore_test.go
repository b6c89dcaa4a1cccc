package memstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecowash/ecowash-backend/internal/model"
	"github.com/ecowash/ecowash-backend/internal/repository"
)

func TestReviewStore_ConcurrentCreateKeepsOne(t *testing.T) {
	stores := New().Stores()
	ctx := context.Background()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		created  int
		rejected int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := stores.Reviews.Create(ctx, &model.Review{UserID: "u1", Rating: 4, Comment: "Bien"})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				created++
			} else if assert.ErrorIs(t, err, repository.ErrDuplicate) {
				rejected++
			}
		}()
	}
	wg.Wait()

	all, err := stores.Reviews.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Equal(t, 1, created)
	assert.Equal(t, 19, rejected)
}

func TestUserStore_EmailUnique(t *testing.T) {
	stores := New().Stores()
	ctx := context.Background()

	require.NoError(t, stores.Users.Create(ctx, &model.User{Email: "awa@example.com"}))
	err := stores.Users.Create(ctx, &model.User{Email: " AWA@example.com"})
	assert.ErrorIs(t, err, repository.ErrEmailExists)

	n, err := stores.Users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestReservationStore_BackToBackInsertsKeepOrder(t *testing.T) {
	stores := New().Stores()
	ctx := context.Background()

	var ids []string
	for i := 0; i < 30; i++ {
		r := &model.Reservation{UserID: "u1", Status: model.StatusPending}
		require.NoError(t, stores.Reservations.Create(ctx, r))
		ids = append(ids, r.ID)
	}

	mine, err := stores.Reservations.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, len(ids))
	for i, r := range mine {
		assert.Equal(t, ids[len(ids)-1-i], r.ID, "position %d", i)
	}
}

func TestReservationStore_ListNewestFirstAndFilter(t *testing.T) {
	stores := New().Stores()
	ctx := context.Background()
	base := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)

	for i, status := range []model.Status{model.StatusPending, model.StatusApproved, model.StatusPending} {
		r := &model.Reservation{UserID: "u1", Status: status, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, stores.Reservations.Create(ctx, r))
	}
	require.NoError(t, stores.Reservations.Create(ctx, &model.Reservation{UserID: "u2", CreatedAt: base}))

	mine, err := stores.Reservations.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 3)
	assert.True(t, mine[0].CreatedAt.After(mine[1].CreatedAt))
	assert.True(t, mine[1].CreatedAt.After(mine[2].CreatedAt))

	pending, err := stores.Reservations.CountByStatus(ctx, model.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, int64(3), pending)

	all, err := stores.Reservations.CountByStatus(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, int64(4), all)
}

func TestReservationStore_UpdateStatusClearsReasonWhenEmpty(t *testing.T) {
	stores := New().Stores()
	ctx := context.Background()

	r := &model.Reservation{UserID: "u1"}
	require.NoError(t, stores.Reservations.Create(ctx, r))
	require.NoError(t, stores.Reservations.UpdateStatus(ctx, r.ID, model.StatusRejected, "Météo"))
	got, err := stores.Reservations.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Météo", got.RejectReason)

	require.NoError(t, stores.Reservations.UpdateStatus(ctx, r.ID, model.StatusApproved, ""))
	got, err = stores.Reservations.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, got.Status)
	assert.Empty(t, got.RejectReason)

	assert.ErrorIs(t, stores.Reservations.UpdateStatus(ctx, "missing", model.StatusApproved, ""), repository.ErrNotFound)
}

//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"hotel-booking/internal/domain/booking"
	"hotel-booking/internal/domain/money"
	"hotel-booking/internal/infra"
	"hotel-booking/internal/infra/query"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBookingWriteQueries struct {
	mock.Mock
}

func (m *MockBookingWriteQueries) CreateBooking(ctx context.Context, db query.DBTX, arg query.CreateBookingParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingWriteQueries) CreateBookingRoom(ctx context.Context, db query.DBTX, bookingID, roomID int64) error {
	args := m.Called(ctx, db, bookingID, roomID)
	return args.Error(0)
}

func (m *MockBookingWriteQueries) UpdateBookingStatus(ctx context.Context, db query.DBTX, arg query.UpdateBookingStatusParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func newTestBooking(t *testing.T, id int64, status booking.Status, roomIDs ...int64) *booking.Booking {
	t.Helper()
	in := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	stay, err := booking.NewStay(in, in.AddDate(0, 0, 2))
	require.NoError(t, err)
	now := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	return booking.ReconstructBooking(id, uuid.New(), stay, roomIDs, money.FromCents(200000), status, now, now)
}

func TestBookingRepository_Create(t *testing.T) {
	t.Run("inserts booking and one link per room", func(t *testing.T) {
		q := new(MockBookingWriteQueries)
		b := newTestBooking(t, 0, booking.StatusConfirmed, 5, 9)

		q.On("CreateBooking", mock.Anything, mock.Anything, mock.MatchedBy(func(p query.CreateBookingParams) bool {
			return p.TotalPriceCents == 200000 && p.Status == "confirmed" && p.UserID == b.UserID()
		})).Return(int64(42), nil).Once()
		q.On("CreateBookingRoom", mock.Anything, mock.Anything, int64(42), int64(5)).Return(nil).Once()
		q.On("CreateBookingRoom", mock.Anything, mock.Anything, int64(42), int64(9)).Return(nil).Once()

		repo := NewBookingRepository(q, nil)
		id, err := repo.Create(context.Background(), b)

		require.NoError(t, err)
		assert.Equal(t, int64(42), id)
		q.AssertExpectations(t)
	})

	t.Run("link failure is reported", func(t *testing.T) {
		q := new(MockBookingWriteQueries)
		b := newTestBooking(t, 0, booking.StatusConfirmed, 5, 9)

		q.On("CreateBooking", mock.Anything, mock.Anything, mock.Anything).Return(int64(42), nil).Once()
		q.On("CreateBookingRoom", mock.Anything, mock.Anything, int64(42), int64(5)).
			Return(&pgconn.PgError{Code: "23503"}).Once()

		repo := NewBookingRepository(q, nil)
		_, err := repo.Create(context.Background(), b)

		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindForeignKeyViolated))
		q.AssertNotCalled(t, "CreateBookingRoom", mock.Anything, mock.Anything, int64(42), int64(9))
	})

	t.Run("insert failure", func(t *testing.T) {
		q := new(MockBookingWriteQueries)
		q.On("CreateBooking", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), assert.AnError).Once()

		repo := NewBookingRepository(q, nil)
		_, err := repo.Create(context.Background(), newTestBooking(t, 0, booking.StatusConfirmed, 1))

		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
		q.AssertNotCalled(t, "CreateBookingRoom", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestBookingRepository_UpdateStatus(t *testing.T) {
	testCases := []struct {
		name     string
		affected int64
		err      error
		wantKind infra.RepositoryErrorKind
	}{
		{name: "success", affected: 1},
		{name: "missing row", affected: 0, wantKind: infra.KindNotFound},
		{name: "database error", err: assert.AnError, wantKind: infra.KindDBFailure},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q := new(MockBookingWriteQueries)
			b := newTestBooking(t, 7, booking.StatusPaid, 1)
			q.On("UpdateBookingStatus", mock.Anything, mock.Anything, mock.MatchedBy(func(p query.UpdateBookingStatusParams) bool {
				return p.ID == 7 && p.Status == "paid"
			})).Return(tc.affected, tc.err).Once()

			err := NewBookingRepository(q, nil).UpdateStatus(context.Background(), b)
			if tc.wantKind == "" {
				assert.NoError(t, err)
			} else {
				assert.True(t, infra.IsKind(err, tc.wantKind))
			}
			q.AssertExpectations(t)
		})
	}
}

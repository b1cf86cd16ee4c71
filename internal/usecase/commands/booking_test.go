//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel-booking/internal/domain/auth"
	"hotel-booking/internal/domain/booking"
	"hotel-booking/internal/domain/money"
	"hotel-booking/internal/domain/room"
	"hotel-booking/internal/domain/user"
	"hotel-booking/internal/infra"
	"hotel-booking/internal/pkg/clock"
	"hotel-booking/internal/pkg/errs"
	"hotel-booking/internal/pkg/metrics"
	"hotel-booking/internal/usecase/commands"
	"hotel-booking/internal/usecase/queries"
	"hotel-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var testNow = time.Date(2024, 12, 1, 10, 0, 0, 0, time.UTC)

type BookingCommandsTestSuite struct {
	suite.Suite
	uow       *memUoW
	publisher *recordingPublisher
	customer  auth.Principal
	admin     auth.Principal
	cmds      commands.BookingCommands
}

func (s *BookingCommandsTestSuite) SetupTest() {
	s.uow = newMemUoW()
	s.publisher = &recordingPublisher{}
	s.customer = auth.NewPrincipal(uuid.New(), user.RoleCustomer)
	s.admin = auth.NewPrincipal(uuid.New(), user.RoleAdmin)
	s.cmds = s.newCommands(commands.BookingOptions{PreventOverlap: true})
}

func (s *BookingCommandsTestSuite) newCommands(opts commands.BookingOptions) commands.BookingCommands {
	return commands.NewBookingCommands(
		s.uow,
		&booking.Services{PriceCalculator: booking.NewNightlyPriceCalculator()},
		queries.NewBookingQueries(memReadStore{s.uow}),
		s.publisher,
		metrics.New(),
		clock.NewFixedClock(testNow),
		opts,
	)
}

func TestBookingCommandsSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

func (s *BookingCommandsTestSuite) TestCreate() {
	ctx := context.Background()

	s.Run("single room for two nights", func() {
		s.uow.addRoom(1, 100000, true)

		view, err := s.cmds.Create(ctx, s.customer, commands.CreateBookingInput{
			CheckIn: "2025-01-01", CheckOut: "2025-01-03", RoomIDs: []int64{1},
		})

		s.Require().NoError(err)
		s.Equal("2000.00", view.TotalPrice.String())
		s.Equal(int64(2), view.Nights)
		s.Equal("confirmed", view.Status)
		s.Equal([]int64{1}, view.RoomIDs())
		s.Equal(s.customer.UserID, view.UserID)
		s.Equal(1, s.uow.bookingCount())
		s.Equal(1, s.uow.linkCount())
	})

	s.Run("multi-room total sums every room and links each", func() {
		s.uow.addRoom(5, 9999, true)
		s.uow.addRoom(9, 15050, true)

		view, err := s.cmds.Create(ctx, s.customer, commands.CreateBookingInput{
			CheckIn: "2025-02-01", CheckOut: "2025-02-04", RoomIDs: []int64{9, 5},
		})

		s.Require().NoError(err)
		s.Equal(money.FromCents((9999+15050)*3), view.TotalPrice)
		s.Equal([]int64{5, 9}, view.RoomIDs())
	})

	s.Run("event published after commit", func() {
		s.Require().NotEmpty(s.publisher.events)
		last := s.publisher.events[len(s.publisher.events)-1]
		s.Equal(shared.EventBookingCreated, last.Type)
		s.Equal([]int64{5, 9}, last.RoomIDs)
		s.Equal("751.47", last.Amount)
	})
}

func (s *BookingCommandsTestSuite) TestCreate_UnavailableRoomRollsBack() {
	s.uow.addRoom(5, 10000, true)
	s.uow.addRoom(9, 10000, false)

	_, err := s.cmds.Create(context.Background(), s.customer, commands.CreateBookingInput{
		CheckIn: "2025-01-01", CheckOut: "2025-01-03", RoomIDs: []int64{5, 9},
	})

	s.Require().Error(err)
	s.True(errs.Is(err, commands.ErrRoomConflict))
	var roomErr *booking.RoomError
	s.Require().True(errors.As(err, &roomErr))
	s.Equal(int64(9), roomErr.RoomID)
	s.ErrorIs(err, booking.ErrRoomUnavailable)
	s.Contains(err.Error(), "room 9")
	s.Equal(0, s.uow.bookingCount())
	s.Equal(0, s.uow.linkCount())
	s.Empty(s.publisher.events)
}

func (s *BookingCommandsTestSuite) TestCreate_MissingRoom() {
	s.uow.addRoom(5, 10000, true)

	_, err := s.cmds.Create(context.Background(), s.customer, commands.CreateBookingInput{
		CheckIn: "2025-01-01", CheckOut: "2025-01-03", RoomIDs: []int64{5, 404},
	})

	s.True(errs.Is(err, commands.ErrRoomConflict))
	var roomErr *booking.RoomError
	s.Require().True(errors.As(err, &roomErr))
	s.Equal(int64(404), roomErr.RoomID)
	s.ErrorIs(err, booking.ErrRoomNotFound)
	s.Equal(0, s.uow.bookingCount())
}

func (s *BookingCommandsTestSuite) TestCreate_ValidationNeverTouchesStorage() {
	cases := []struct {
		name  string
		input commands.CreateBookingInput
		want  error
	}{
		{"bad check-in", commands.CreateBookingInput{CheckIn: "01/01/2025", CheckOut: "2025-01-03", RoomIDs: []int64{1}}, booking.ErrInvalidDate},
		{"missing check-out", commands.CreateBookingInput{CheckIn: "2025-01-01", RoomIDs: []int64{1}}, booking.ErrInvalidDate},
		{"check-out equals check-in", commands.CreateBookingInput{CheckIn: "2025-01-01", CheckOut: "2025-01-01", RoomIDs: []int64{1}}, booking.ErrCheckOutNotAfterCheckIn},
		{"empty rooms", commands.CreateBookingInput{CheckIn: "2025-01-01", CheckOut: "2025-01-02"}, booking.ErrNoRooms},
		{"duplicate rooms", commands.CreateBookingInput{CheckIn: "2025-01-01", CheckOut: "2025-01-02", RoomIDs: []int64{1, 1}}, booking.ErrDuplicateRoom},
		{"stay longer than a year", commands.CreateBookingInput{CheckIn: "2025-01-01", CheckOut: "2026-01-02", RoomIDs: []int64{1}}, booking.ErrStayTooLong},
		{"stay until year 9999", commands.CreateBookingInput{CheckIn: "2025-01-01", CheckOut: "9999-12-31", RoomIDs: []int64{1}}, booking.ErrStayTooLong},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := s.cmds.Create(context.Background(), s.customer, tc.input)

			s.True(errs.Is(err, commands.ErrValidation))
			s.ErrorIs(err, tc.want)
			s.Equal(0, s.uow.calls)
		})
	}
}

func (s *BookingCommandsTestSuite) TestCreate_TotalBoundedByColumnPrecision() {
	ctx := context.Background()
	s.uow.addRoom(1, room.MaxPricePerNight.Cents(), true)
	s.uow.addRoom(2, room.MaxPricePerNight.Cents(), true)

	s.Run("total at the maximum is stored", func() {
		view, err := s.cmds.Create(ctx, s.customer, commands.CreateBookingInput{
			CheckIn: "2025-01-01", CheckOut: "2025-04-11", RoomIDs: []int64{1},
		})
		s.Require().NoError(err)
		s.Equal("9999999999.00", view.TotalPrice.String())
	})

	s.Run("total above the maximum is a validation error", func() {
		_, err := s.cmds.Create(ctx, s.customer, commands.CreateBookingInput{
			CheckIn: "2026-01-01", CheckOut: "2026-04-11", RoomIDs: []int64{1, 2},
		})
		s.True(errs.Is(err, commands.ErrValidation))
		s.False(errs.Is(err, commands.ErrRoomConflict))
		s.ErrorIs(err, booking.ErrTotalTooLarge)
		s.Equal(1, s.uow.bookingCount())
	})

	s.Run("year-long stay is accepted", func() {
		s.uow.addRoom(3, 100, true)
		view, err := s.cmds.Create(ctx, s.customer, commands.CreateBookingInput{
			CheckIn: "2027-01-01", CheckOut: "2028-01-01", RoomIDs: []int64{3},
		})
		s.Require().NoError(err)
		s.Equal(int64(booking.MaxNights), view.Nights)
	})
}

func (s *BookingCommandsTestSuite) TestCreate_NumericOverflowInStorageIsValidation() {
	s.uow.addRoom(1, 10000, true)
	s.uow.fail["Bookings.Create"] = infra.WrapRepoErr("failed to create booking", &pgconn.PgError{Code: "22003"})

	_, err := s.cmds.Create(context.Background(), s.customer, commands.CreateBookingInput{
		CheckIn: "2025-01-01", CheckOut: "2025-01-02", RoomIDs: []int64{1},
	})

	s.True(errs.Is(err, commands.ErrValidation))
	s.Equal(0, s.uow.bookingCount())
}

func (s *BookingCommandsTestSuite) TestCreate_StorageFailureRollsBack() {
	s.uow.addRoom(1, 10000, true)
	s.uow.fail["Bookings.Create"] = errors.New("connection reset")

	_, err := s.cmds.Create(context.Background(), s.customer, commands.CreateBookingInput{
		CheckIn: "2025-01-01", CheckOut: "2025-01-02", RoomIDs: []int64{1},
	})

	s.True(errs.Is(err, commands.ErrDatabaseOperationFailed))
	s.Equal(0, s.uow.bookingCount())
}

func (s *BookingCommandsTestSuite) TestCreate_Overlap() {
	ctx := context.Background()
	s.uow.addRoom(1, 10000, true)
	s.uow.addRoom(2, 10000, true)
	_, err := s.cmds.Create(ctx, s.customer, commands.CreateBookingInput{
		CheckIn: "2025-03-10", CheckOut: "2025-03-12", RoomIDs: []int64{1},
	})
	s.Require().NoError(err)

	s.Run("overlapping stay on a held room is rejected", func() {
		_, err := s.cmds.Create(ctx, s.customer, commands.CreateBookingInput{
			CheckIn: "2025-03-11", CheckOut: "2025-03-13", RoomIDs: []int64{2, 1},
		})

		s.True(errs.Is(err, commands.ErrRoomConflict))
		s.ErrorIs(err, booking.ErrRoomAlreadyBooked)
		var roomErr *booking.RoomError
		s.Require().True(errors.As(err, &roomErr))
		s.Equal(int64(1), roomErr.RoomID)
		s.Equal(1, s.uow.bookingCount())
	})

	s.Run("back-to-back stay is allowed", func() {
		_, err := s.cmds.Create(ctx, s.customer, commands.CreateBookingInput{
			CheckIn: "2025-03-12", CheckOut: "2025-03-14", RoomIDs: []int64{1},
		})
		s.NoError(err)
	})

	s.Run("guard can be switched off", func() {
		loose := s.newCommands(commands.BookingOptions{PreventOverlap: false})
		_, err := loose.Create(ctx, s.customer, commands.CreateBookingInput{
			CheckIn: "2025-03-10", CheckOut: "2025-03-12", RoomIDs: []int64{1},
		})
		s.NoError(err)
	})
}

func (s *BookingCommandsTestSuite) TestCreate_CancelledBookingReleasesRooms() {
	ctx := context.Background()
	s.uow.addRoom(1, 10000, true)
	first, err := s.cmds.Create(ctx, s.customer, commands.CreateBookingInput{
		CheckIn: "2025-04-01", CheckOut: "2025-04-03", RoomIDs: []int64{1},
	})
	s.Require().NoError(err)
	_, err = s.cmds.Cancel(ctx, s.customer, first.ID)
	s.Require().NoError(err)

	_, err = s.cmds.Create(ctx, s.customer, commands.CreateBookingInput{
		CheckIn: "2025-04-01", CheckOut: "2025-04-03", RoomIDs: []int64{1},
	})
	s.NoError(err)
}

func (s *BookingCommandsTestSuite) TestCreate_PublishFailureDoesNotFailRequest() {
	s.uow.addRoom(1, 10000, true)
	s.publisher.err = errors.New("broker down")

	view, err := s.cmds.Create(context.Background(), s.customer, commands.CreateBookingInput{
		CheckIn: "2025-01-01", CheckOut: "2025-01-02", RoomIDs: []int64{1},
	})

	s.NoError(err)
	s.NotNil(view)
	s.Equal(1, s.uow.bookingCount())
}

func (s *BookingCommandsTestSuite) TestCancel() {
	ctx := context.Background()
	s.uow.addRoom(1, 10000, true)
	created, err := s.cmds.Create(ctx, s.customer, commands.CreateBookingInput{
		CheckIn: "2025-05-01", CheckOut: "2025-05-02", RoomIDs: []int64{1},
	})
	s.Require().NoError(err)

	s.Run("stranger is denied", func() {
		stranger := auth.NewPrincipal(uuid.New(), user.RoleCustomer)
		_, err := s.cmds.Cancel(ctx, stranger, created.ID)
		s.True(errs.Is(err, commands.ErrAccessDenied))
	})

	s.Run("admin may cancel", func() {
		view, err := s.cmds.Cancel(ctx, s.admin, created.ID)
		s.Require().NoError(err)
		s.Equal("cancelled", view.Status)
	})

	s.Run("cancelled booking cannot be cancelled again", func() {
		_, err := s.cmds.Cancel(ctx, s.customer, created.ID)
		s.True(errs.Is(err, commands.ErrBookingNotCancellable))
	})

	s.Run("unknown booking", func() {
		_, err := s.cmds.Cancel(ctx, s.customer, 999)
		s.True(errs.Is(err, commands.ErrBookingNotFound))
	})
}

func TestCreate_RequiresPrincipal(t *testing.T) {
	cmds := commands.NewBookingCommands(newMemUoW(), &booking.Services{PriceCalculator: booking.NewNightlyPriceCalculator()},
		nil, nil, nil, clock.NewFixedClock(testNow), commands.BookingOptions{})

	_, err := cmds.Create(context.Background(), auth.Principal{}, commands.CreateBookingInput{})

	require.Error(t, err)
	assert.True(t, errs.Is(err, commands.ErrAccessDenied))
}

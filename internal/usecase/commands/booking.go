package commands

import (
	"context"
	"errors"

	"hotel-booking/internal/domain/auth"
	"hotel-booking/internal/domain/booking"
	"hotel-booking/internal/domain/room"
	"hotel-booking/internal/infra"
	"hotel-booking/internal/pkg/clock"
	"hotel-booking/internal/pkg/errs"
	"hotel-booking/internal/pkg/metrics"
	"hotel-booking/internal/usecase/queries"
	"hotel-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateBookingInput struct {
	CheckIn  string
	CheckOut string
	RoomIDs  []int64
}

type BookingCommands interface {
	Create(ctx context.Context, actor auth.Principal, input CreateBookingInput) (*queries.BookingView, error)
	Cancel(ctx context.Context, actor auth.Principal, bookingID int64) (*queries.BookingView, error)
}

type BookingOptions struct {
	PreventOverlap bool
}

type bookingCommandsImpl struct {
	uow            shared.UnitOfWork
	services       *booking.Services
	bookingQueries queries.BookingQueries
	publisher      shared.EventPublisher
	metrics        *metrics.Metrics
	clock          clock.Clock
	opts           BookingOptions
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	services *booking.Services,
	bookingQueries queries.BookingQueries,
	publisher shared.EventPublisher,
	m *metrics.Metrics,
	clk clock.Clock,
	opts BookingOptions,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:            uow,
		services:       services,
		bookingQueries: bookingQueries,
		publisher:      publisher,
		metrics:        m,
		clock:          clk,
		opts:           opts,
	}
}

func (c *bookingCommandsImpl) Create(ctx context.Context, actor auth.Principal, input CreateBookingInput) (*queries.BookingView, error) {
	if actor.UserID == uuid.Nil {
		return nil, ErrAccessDenied
	}

	stay, selection, err := parseBookingRequest(input)
	if err != nil {
		c.metrics.BookingRejected("validation")
		return nil, errs.Mark(err, ErrValidation)
	}

	now := c.clock.Now()
	var (
		bookingID int64
		created   *booking.Booking
	)
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rooms, err := tx.Reads().LockRooms(ctx, selection.IDs())
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if missing, ok := firstMissingRoom(selection.IDs(), rooms); ok {
			return errs.Mark(booking.NewRoomError(missing, booking.ErrRoomNotFound), ErrRoomConflict)
		}

		b, err := booking.NewBooking(c.services, actor.UserID, stay, rooms, now)
		if err != nil {
			if errors.Is(err, booking.ErrTotalTooLarge) || errors.Is(err, booking.ErrStayTooLong) {
				return errs.Mark(err, ErrValidation)
			}
			return errs.Mark(err, ErrRoomConflict)
		}

		if c.opts.PreventOverlap {
			conflict, err := tx.Reads().OverlappingBooking(ctx, selection.IDs(), stay)
			if err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			if conflict != nil {
				return errs.Mark(booking.NewRoomError(conflict.RoomID, booking.ErrRoomAlreadyBooked), ErrRoomConflict)
			}
		}

		id, err := tx.Bookings().Create(ctx, b)
		if err != nil {
			if infra.IsKind(err, infra.KindForeignKeyViolated) {
				return errs.Mark(err, ErrAccessDenied)
			}
			if infra.IsKind(err, infra.KindOutOfRange) {
				return errs.Mark(err, ErrValidation)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		bookingID, created = id, b
		return nil
	})
	if err != nil {
		c.metrics.BookingRejected(rejectionReason(err))
		return nil, c.markUnclassified(err)
	}

	c.metrics.BookingCreated()
	publishAfterCommit(ctx, c.publisher, shared.Event{
		Type:       shared.EventBookingCreated,
		BookingID:  bookingID,
		UserID:     created.UserID(),
		Status:     created.Status().String(),
		RoomIDs:    created.RoomIDs(),
		Amount:     created.TotalPrice().String(),
		OccurredAt: now,
	})

	// Read-after-write: the view carries the joined room details
	view, err := c.bookingQueries.GetByIDSystem(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (c *bookingCommandsImpl) Cancel(ctx context.Context, actor auth.Principal, bookingID int64) (*queries.BookingView, error) {
	now := c.clock.Now()
	var cancelled *booking.Booking

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := lockBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if !actor.CanActOn(b.UserID()) {
			return ErrAccessDenied
		}
		if err := b.Cancel(now); err != nil {
			return errs.Mark(err, ErrBookingNotCancellable)
		}
		if err := tx.Bookings().UpdateStatus(ctx, b); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		cancelled = b
		return nil
	})
	if err != nil {
		return nil, c.markUnclassified(err)
	}

	c.metrics.BookingCanceled()
	publishAfterCommit(ctx, c.publisher, shared.Event{
		Type:       shared.EventBookingCancelled,
		BookingID:  cancelled.ID(),
		UserID:     cancelled.UserID(),
		Status:     cancelled.Status().String(),
		RoomIDs:    cancelled.RoomIDs(),
		OccurredAt: now,
	})

	view, err := c.bookingQueries.GetByIDSystem(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (c *bookingCommandsImpl) markUnclassified(err error) error {
	for _, known := range []error{
		ErrValidation, ErrRoomConflict, ErrBookingNotFound, ErrAccessDenied,
		ErrBookingNotCancellable, ErrDatabaseOperationFailed,
	} {
		if errs.Is(err, known) {
			return err
		}
	}
	return errs.Mark(err, ErrDatabaseOperationFailed)
}

func parseBookingRequest(input CreateBookingInput) (booking.Stay, booking.RoomSelection, error) {
	checkIn, err := booking.ParseDate(input.CheckIn)
	if err != nil {
		return booking.Stay{}, booking.RoomSelection{}, err
	}
	checkOut, err := booking.ParseDate(input.CheckOut)
	if err != nil {
		return booking.Stay{}, booking.RoomSelection{}, err
	}
	stay, err := booking.NewStay(checkIn, checkOut)
	if err != nil {
		return booking.Stay{}, booking.RoomSelection{}, err
	}
	if err := stay.CheckLength(); err != nil {
		return booking.Stay{}, booking.RoomSelection{}, err
	}
	selection, err := booking.NewRoomSelection(input.RoomIDs)
	if err != nil {
		return booking.Stay{}, booking.RoomSelection{}, err
	}
	return stay, selection, nil
}

// firstMissingRoom reports the lowest requested id absent from rooms.
func firstMissingRoom(requested []int64, rooms []*room.Room) (int64, bool) {
	found := make(map[int64]struct{}, len(rooms))
	for _, r := range rooms {
		found[r.ID()] = struct{}{}
	}
	for _, id := range requested {
		if _, ok := found[id]; !ok {
			return id, true
		}
	}
	return 0, false
}

func lockBooking(ctx context.Context, tx shared.Tx, bookingID int64) (*booking.Booking, error) {
	b, err := tx.Reads().BookingForUpdate(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return b, nil
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, booking.ErrRoomNotFound):
		return "room_not_found"
	case errors.Is(err, booking.ErrRoomUnavailable):
		return "room_unavailable"
	case errors.Is(err, booking.ErrRoomAlreadyBooked):
		return "overlap"
	case errs.Is(err, ErrAccessDenied):
		return "forbidden"
	case errs.Is(err, ErrValidation):
		return "validation"
	default:
		return "storage"
	}
}

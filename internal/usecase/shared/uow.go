package shared

import (
	"context"
	"time"

	"hotel-booking/internal/domain/booking"
	"hotel-booking/internal/domain/payment"
	"hotel-booking/internal/domain/room"
	"hotel-booking/internal/domain/user"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within runs fn in one read-committed transaction. Any error from fn
	// rolls back every write; serialization failures and deadlocks are retried.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Bookings() BookingRepository
	Payments() PaymentRepository
	Rooms() RoomRepository
	Users() UserRepository
	Reads() CommandReads
}

// CommandReads are the reads a command needs inside its transaction. The
// locking variants hold row locks until the transaction ends.
type CommandReads interface {
	// LockRooms returns the rooms that exist among ids, ascending by id.
	LockRooms(ctx context.Context, ids []int64) ([]*room.Room, error)
	// OverlappingBooking returns nil when no live booking holds any of the
	// rooms during stay.
	OverlappingBooking(ctx context.Context, roomIDs []int64, stay booking.Stay) (*BookingConflict, error)
	BookingForUpdate(ctx context.Context, id int64) (*booking.Booking, error)
	LedgerTotals(ctx context.Context, bookingID int64) (payment.Totals, error)
}

type BookingRepository interface {
	// Create inserts the booking row and one link row per room.
	Create(ctx context.Context, b *booking.Booking) (int64, error)
	UpdateStatus(ctx context.Context, b *booking.Booking) error
}

type PaymentRepository interface {
	Append(ctx context.Context, p *payment.Payment) (*payment.Payment, error)
}

type RoomRepository interface {
	Create(ctx context.Context, r *room.Room) (*room.Room, error)
	SetAvailability(ctx context.Context, id int64, available bool, now time.Time) (*room.Room, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	UpdateLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error
}

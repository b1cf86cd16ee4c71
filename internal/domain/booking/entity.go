package booking

import (
	"slices"
	"time"

	"hotel-booking/internal/domain/money"
	"hotel-booking/internal/domain/room"

	"github.com/google/uuid"
)

// MaxTotal is the largest value bookings.total_price (NUMERIC(12,2)) can hold.
var MaxTotal = money.FromCents(999_999_999_999)

type Services struct {
	PriceCalculator PriceCalculator
}

// RoomSelection is a validated, de-duplicated set of requested room ids in
// ascending order. Rows are locked in this order to avoid lock cycles.
type RoomSelection struct {
	ids []int64
}

func NewRoomSelection(ids []int64) (RoomSelection, error) {
	if len(ids) == 0 {
		return RoomSelection{}, ErrNoRooms
	}
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	for i, id := range sorted {
		if id <= 0 {
			return RoomSelection{}, ErrInvalidRoomID
		}
		if i > 0 && sorted[i-1] == id {
			return RoomSelection{}, ErrDuplicateRoom
		}
	}
	return RoomSelection{ids: sorted}, nil
}

func (s RoomSelection) IDs() []int64 {
	return slices.Clone(s.ids)
}

func (s RoomSelection) Len() int {
	return len(s.ids)
}

type Booking struct {
	id         int64
	userID     uuid.UUID
	stay       Stay
	roomIDs    []int64
	totalPrice money.Money
	status     Status
	createdAt  time.Time
	updatedAt  time.Time
}

// NewBooking prices a confirmed booking over the given rooms. Every room must
// be present and available; the first offending room is reported. The stay
// length and the total are bounded by MaxNights and MaxTotal.
func NewBooking(
	services *Services,
	userID uuid.UUID,
	stay Stay,
	rooms []*room.Room,
	now time.Time,
) (*Booking, error) {
	if len(rooms) == 0 {
		return nil, ErrNoRooms
	}
	if err := stay.CheckLength(); err != nil {
		return nil, err
	}

	rates := make([]RoomRate, 0, len(rooms))
	roomIDs := make([]int64, 0, len(rooms))
	for _, r := range rooms {
		if !r.IsAvailable() {
			return nil, NewRoomError(r.ID(), ErrRoomUnavailable)
		}
		rates = append(rates, RoomRate{RoomID: r.ID(), PricePerNight: r.PricePerNight()})
		roomIDs = append(roomIDs, r.ID())
	}

	total := services.PriceCalculator.Total(stay, rates)
	if total.GreaterThan(MaxTotal) {
		return nil, ErrTotalTooLarge
	}

	return &Booking{
		userID:     userID,
		stay:       stay,
		roomIDs:    roomIDs,
		totalPrice: total,
		status:     StatusConfirmed,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func ReconstructBooking(
	id int64,
	userID uuid.UUID,
	stay Stay,
	roomIDs []int64,
	totalPrice money.Money,
	status Status,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:         id,
		userID:     userID,
		stay:       stay,
		roomIDs:    roomIDs,
		totalPrice: totalPrice,
		status:     status,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (b *Booking) Cancel(now time.Time) error {
	if !b.status.CanCancel() {
		return ErrInvalidTransition
	}
	b.status = StatusCancelled
	b.updatedAt = now
	return nil
}

// ApplyStatus sets a status derived from the payment ledger. Terminal bookings
// keep their status.
func (b *Booking) ApplyStatus(status Status, now time.Time) error {
	if b.status.IsTerminal() {
		return ErrInvalidTransition
	}
	if !status.IsValid() {
		return ErrInvalidStatus
	}
	b.status = status
	b.updatedAt = now
	return nil
}

func (b *Booking) ID() int64               { return b.id }
func (b *Booking) UserID() uuid.UUID       { return b.userID }
func (b *Booking) Stay() Stay              { return b.stay }
func (b *Booking) RoomIDs() []int64        { return slices.Clone(b.roomIDs) }
func (b *Booking) TotalPrice() money.Money { return b.totalPrice }
func (b *Booking) Status() Status          { return b.status }
func (b *Booking) CreatedAt() time.Time    { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time    { return b.updatedAt }

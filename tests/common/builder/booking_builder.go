//go:build unit || e2e

package builder

import (
	"time"

	"hotel-booking/internal/domain/money"
	reqdto "hotel-booking/internal/handler/dto/request"
	"hotel-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID         int64
	UserID     uuid.UUID
	CheckIn    string
	CheckOut   string
	RoomIDs    []int64
	TotalCents int64
	Status     string
}

// NewBookingBuilder describes two nights in room 1 at 1000.00 per night.
func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		ID:         1,
		UserID:     uuid.New(),
		CheckIn:    "2025-01-10",
		CheckOut:   "2025-01-12",
		RoomIDs:    []int64{1},
		TotalCents: 200000,
		Status:     "confirmed",
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		CheckInDate:  b.CheckIn,
		CheckOutDate: b.CheckOut,
		RoomIDs:      b.RoomIDs,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	checkIn, _ := time.Parse(time.DateOnly, b.CheckIn)
	checkOut, _ := time.Parse(time.DateOnly, b.CheckOut)
	nights := int64(checkOut.Sub(checkIn).Hours() / 24)

	rooms := make([]queries.BookingRoomView, len(b.RoomIDs))
	for i, id := range b.RoomIDs {
		rooms[i] = queries.BookingRoomView{
			RoomID:        id,
			Name:          "Room",
			RoomType:      "standard",
			PricePerNight: money.FromCents(b.TotalCents / nights / int64(len(b.RoomIDs))),
		}
	}

	created := time.Date(2024, 12, 1, 10, 0, 0, 0, time.UTC)
	return &queries.BookingView{
		ID:         b.ID,
		UserID:     b.UserID,
		UserEmail:  "guest@example.com",
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Nights:     nights,
		TotalPrice: money.FromCents(b.TotalCents),
		Status:     b.Status,
		Rooms:      rooms,
		CreatedAt:  created,
		UpdatedAt:  created,
	}
}

package queries

import (
	"time"

	"hotel-booking/internal/domain/money"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type RoomView struct {
	ID            int64       `json:"id"`
	Name          string      `json:"name"`
	RoomType      string      `json:"room_type"`
	PricePerNight money.Money `json:"price_per_night"`
	Capacity      int32       `json:"capacity"`
	IsAvailable   bool        `json:"is_available"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

type BookingRoomView struct {
	RoomID        int64       `json:"room_id"`
	Name          string      `json:"name"`
	RoomType      string      `json:"room_type"`
	PricePerNight money.Money `json:"price_per_night"`
}

type BookingView struct {
	ID         int64             `json:"id"`
	UserID     uuid.UUID         `json:"user_id"`
	UserEmail  string            `json:"user_email"`
	CheckIn    time.Time         `json:"check_in"`
	CheckOut   time.Time         `json:"check_out"`
	Nights     int64             `json:"nights"`
	TotalPrice money.Money       `json:"total_price"`
	Status     string            `json:"status"`
	Rooms      []BookingRoomView `json:"rooms"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

func (v *BookingView) RoomIDs() []int64 {
	ids := make([]int64, len(v.Rooms))
	for i, r := range v.Rooms {
		ids[i] = r.RoomID
	}
	return ids
}

type BookingFilter struct {
	Status *string
	Page
}

type BookingPage struct {
	Items  []*BookingView
	Total  int64
	Limit  int
	Offset int
}

type PaymentView struct {
	ID        int64       `json:"id"`
	BookingID int64       `json:"booking_id"`
	Amount    money.Money `json:"amount"`
	Status    string      `json:"status"`
	Method    string      `json:"method"`
	CreatedAt time.Time   `json:"created_at"`
}

// PaymentSummaryView is computed from the ledger on every read.
type PaymentSummaryView struct {
	BookingID     int64       `json:"booking_id"`
	UserID        uuid.UUID   `json:"user_id"`
	Status        string      `json:"status"`
	TotalPrice    money.Money `json:"total_price"`
	TotalPaid     money.Money `json:"total_paid"`
	TotalRefunded money.Money `json:"total_refunded"`
	NetPaid       money.Money `json:"net_paid"`
}

type AuthorizedUserView struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

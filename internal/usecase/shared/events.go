package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventBookingCreated   EventType = "booking.created"
	EventBookingCancelled EventType = "booking.cancelled"
	EventPaymentRecorded  EventType = "payment.recorded"
	EventPaymentRefunded  EventType = "payment.refunded"
)

// Event is published after the transaction that produced it has committed.
type Event struct {
	Type       EventType `json:"type"`
	BookingID  int64     `json:"booking_id"`
	UserID     uuid.UUID `json:"user_id"`
	Status     string    `json:"status,omitempty"`
	RoomIDs    []int64   `json:"room_ids,omitempty"`
	PaymentID  int64     `json:"payment_id,omitempty"`
	Amount     string    `json:"amount,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

package commands

import (
	"context"
	"fmt"
	"log/slog"

	"hotel-booking/internal/pkg/errs"
	"hotel-booking/internal/usecase/queries"
	"hotel-booking/internal/usecase/shared"
)

var (
	ErrValidation              = errs.New("validation failed")
	ErrRoomConflict            = errs.New("room conflict")
	ErrRoomNotFound            = queries.ErrRoomNotFound
	ErrBookingNotFound         = queries.ErrBookingNotFound
	ErrBookingReference        = errs.New("referenced booking does not exist")
	ErrAccessDenied            = queries.ErrAccessDenied
	ErrBookingNotCancellable   = errs.New("booking cannot be cancelled")
	ErrBookingNotPayable       = errs.New("booking no longer accepts payments")
	ErrRefundRejected          = errs.New("refund rejected")
	ErrIdempotencyInProgress   = errs.New("idempotency in progress")
	ErrIdempotencyKeyReused    = errs.New("idempotency key reused with a different request")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// BookingRefError names the missing booking a payment or refund referred to.
type BookingRefError struct {
	BookingID int64
}

func (e *BookingRefError) Error() string {
	return fmt.Sprintf("booking %d: %s", e.BookingID, ErrBookingNotFound)
}

func (e *BookingRefError) Unwrap() error {
	return ErrBookingNotFound
}

// publishAfterCommit never fails the request; the state change is already
// durable when it runs.
func publishAfterCommit(ctx context.Context, publisher shared.EventPublisher, event shared.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		slog.Warn("failed to publish event",
			"type", string(event.Type),
			"booking_id", event.BookingID,
			"error", err.Error())
	}
}

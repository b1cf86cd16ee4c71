package repository

import (
	"context"

	"hotel-booking/internal/domain/booking"
	"hotel-booking/internal/infra"
	"hotel-booking/internal/infra/query"
	"hotel-booking/internal/infra/repository/converter"
	"hotel-booking/internal/pkg/pgconv"
)

type BookingWriteQueries interface {
	CreateBooking(ctx context.Context, db query.DBTX, arg query.CreateBookingParams) (int64, error)
	CreateBookingRoom(ctx context.Context, db query.DBTX, bookingID, roomID int64) error
	UpdateBookingStatus(ctx context.Context, db query.DBTX, arg query.UpdateBookingStatusParams) (int64, error)
}

type BookingRepository struct {
	queries BookingWriteQueries
	db      query.DBTX
}

func NewBookingRepository(queries BookingWriteQueries, db query.DBTX) *BookingRepository {
	return &BookingRepository{
		queries: queries,
		db:      db,
	}
}

// Create must run inside a transaction: a failed link insert leaves the
// booking row behind until the caller rolls back.
func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) (int64, error) {
	id, err := r.queries.CreateBooking(ctx, r.db, converter.BookingToCreateParams(b))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to create booking", err)
	}

	for _, roomID := range b.RoomIDs() {
		if err := r.queries.CreateBookingRoom(ctx, r.db, id, roomID); err != nil {
			return 0, infra.WrapRepoErr("failed to link room to booking", err)
		}
	}

	return id, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, b *booking.Booking) error {
	affected, err := r.queries.UpdateBookingStatus(ctx, r.db, query.UpdateBookingStatusParams{
		ID:        b.ID(),
		Status:    b.Status().String(),
		UpdatedAt: pgconv.TimeToPgtype(b.UpdatedAt()),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

package converter

import (
	"fmt"

	"hotel-booking/internal/domain/booking"
	"hotel-booking/internal/domain/money"
	"hotel-booking/internal/infra/query"
	"hotel-booking/internal/pkg/pgconv"
)

func BookingToCreateParams(b *booking.Booking) query.CreateBookingParams {
	return query.CreateBookingParams{
		UserID:          b.UserID(),
		CheckInDate:     pgconv.DateToPgtype(b.Stay().CheckIn()),
		CheckOutDate:    pgconv.DateToPgtype(b.Stay().CheckOut()),
		TotalPriceCents: b.TotalPrice().Cents(),
		Status:          b.Status().String(),
		CreatedAt:       pgconv.TimeToPgtype(b.CreatedAt()),
	}
}

func BookingFromRow(row query.Booking, roomIDs []int64) (*booking.Booking, error) {
	stay, err := booking.NewStay(pgconv.DateFromPgtype(row.CheckInDate), pgconv.DateFromPgtype(row.CheckOutDate))
	if err != nil {
		return nil, fmt.Errorf("booking %d: %w", row.ID, err)
	}
	status, err := booking.ParseStatus(row.Status)
	if err != nil {
		return nil, fmt.Errorf("booking %d: %w", row.ID, err)
	}
	return booking.ReconstructBooking(
		row.ID,
		row.UserID,
		stay,
		roomIDs,
		money.FromCents(row.TotalPriceCents),
		status,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}

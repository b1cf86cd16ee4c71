package query

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// Monetary columns are NUMERIC(n,2) in the schema and travel as integral
// cents on this side of the boundary.

type Room struct {
	ID                 int64
	Name               string
	RoomType           string
	PricePerNightCents int64
	Capacity           int32
	IsAvailable        bool
	CreatedAt          pgtype.Timestamptz
	UpdatedAt          pgtype.Timestamptz
}

type Booking struct {
	ID              int64
	UserID          uuid.UUID
	CheckInDate     pgtype.Date
	CheckOutDate    pgtype.Date
	TotalPriceCents int64
	Status          string
	CreatedAt       pgtype.Timestamptz
	UpdatedAt       pgtype.Timestamptz
}

type Payment struct {
	ID          int64
	BookingID   int64
	AmountCents int64
	Status      string
	Method      string
	CreatedAt   pgtype.Timestamptz
}

type User struct {
	ID           uuid.UUID
	Email        string
	FullName     string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    pgtype.Timestamptz
	UpdatedAt    pgtype.Timestamptz
}

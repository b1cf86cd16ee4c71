package query

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const bookingColumns = `id, user_id, check_in_date, check_out_date, (total_price * 100)::bigint, status, created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }) (Booking, error) {
	var i Booking
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.CheckInDate,
		&i.CheckOutDate,
		&i.TotalPriceCents,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createBooking = `-- name: CreateBooking :one
INSERT INTO bookings (user_id, check_in_date, check_out_date, total_price, status, created_at, updated_at)
VALUES ($1, $2, $3, $4::bigint::numeric / 100, $5, $6, $6)
RETURNING id`

type CreateBookingParams struct {
	UserID          uuid.UUID
	CheckInDate     pgtype.Date
	CheckOutDate    pgtype.Date
	TotalPriceCents int64
	Status          string
	CreatedAt       pgtype.Timestamptz
}

func (q *Queries) CreateBooking(ctx context.Context, db DBTX, arg CreateBookingParams) (int64, error) {
	row := db.QueryRow(ctx, createBooking,
		arg.UserID,
		arg.CheckInDate,
		arg.CheckOutDate,
		arg.TotalPriceCents,
		arg.Status,
		arg.CreatedAt,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const createBookingRoom = `-- name: CreateBookingRoom :exec
INSERT INTO booking_rooms (booking_id, room_id)
VALUES ($1, $2)`

func (q *Queries) CreateBookingRoom(ctx context.Context, db DBTX, bookingID, roomID int64) error {
	_, err := db.Exec(ctx, createBookingRoom, bookingID, roomID)
	return err
}

const getBookingForUpdate = `-- name: GetBookingForUpdate :one
SELECT ` + bookingColumns + `
FROM bookings
WHERE id = $1
FOR UPDATE`

func (q *Queries) GetBookingForUpdate(ctx context.Context, db DBTX, id int64) (Booking, error) {
	return scanBooking(db.QueryRow(ctx, getBookingForUpdate, id))
}

const listBookingRoomIDs = `-- name: ListBookingRoomIDs :many
SELECT room_id
FROM booking_rooms
WHERE booking_id = $1
ORDER BY room_id`

func (q *Queries) ListBookingRoomIDs(ctx context.Context, db DBTX, bookingID int64) ([]int64, error) {
	rows, err := db.Query(ctx, listBookingRoomIDs, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []int64{}
	for rows.Next() {
		var roomID int64
		if err := rows.Scan(&roomID); err != nil {
			return nil, err
		}
		items = append(items, roomID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateBookingStatus = `-- name: UpdateBookingStatus :execrows
UPDATE bookings
SET status = $2, updated_at = $3
WHERE id = $1`

type UpdateBookingStatusParams struct {
	ID        int64
	Status    string
	UpdatedAt pgtype.Timestamptz
}

func (q *Queries) UpdateBookingStatus(ctx context.Context, db DBTX, arg UpdateBookingStatusParams) (int64, error) {
	result, err := db.Exec(ctx, updateBookingStatus, arg.ID, arg.Status, arg.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

// Stays are half-open, so a booking ending on the requested check-in day
// does not conflict.
const findOverlappingBooking = `-- name: FindOverlappingBooking :one
SELECT br.room_id, b.id
FROM booking_rooms br
JOIN bookings b ON b.id = br.booking_id
WHERE br.room_id = ANY($1::bigint[])
  AND b.status <> 'cancelled'
  AND b.check_in_date < $3
  AND b.check_out_date > $2
ORDER BY br.room_id, b.id
LIMIT 1`

type FindOverlappingBookingParams struct {
	RoomIDs      []int64
	CheckInDate  pgtype.Date
	CheckOutDate pgtype.Date
}

type FindOverlappingBookingRow struct {
	RoomID    int64
	BookingID int64
}

func (q *Queries) FindOverlappingBooking(ctx context.Context, db DBTX, arg FindOverlappingBookingParams) (FindOverlappingBookingRow, error) {
	row := db.QueryRow(ctx, findOverlappingBooking, arg.RoomIDs, arg.CheckInDate, arg.CheckOutDate)
	var i FindOverlappingBookingRow
	err := row.Scan(&i.RoomID, &i.BookingID)
	return i, err
}

const bookingViewColumns = `b.id, b.user_id, u.email, b.check_in_date, b.check_out_date,
	(b.total_price * 100)::bigint, b.status, b.created_at, b.updated_at`

type BookingViewRow struct {
	ID              int64
	UserID          uuid.UUID
	UserEmail       string
	CheckInDate     pgtype.Date
	CheckOutDate    pgtype.Date
	TotalPriceCents int64
	Status          string
	CreatedAt       pgtype.Timestamptz
	UpdatedAt       pgtype.Timestamptz
}

func scanBookingView(row interface{ Scan(...any) error }) (BookingViewRow, error) {
	var i BookingViewRow
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.UserEmail,
		&i.CheckInDate,
		&i.CheckOutDate,
		&i.TotalPriceCents,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func collectBookingViews(ctx context.Context, db DBTX, sql string, args ...any) ([]BookingViewRow, error) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []BookingViewRow{}
	for rows.Next() {
		i, err := scanBookingView(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getBookingView = `-- name: GetBookingView :one
SELECT ` + bookingViewColumns + `
FROM bookings b
JOIN users u ON u.id = b.user_id
WHERE b.id = $1`

func (q *Queries) GetBookingView(ctx context.Context, db DBTX, id int64) (BookingViewRow, error) {
	return scanBookingView(db.QueryRow(ctx, getBookingView, id))
}

const listBookingViewsByUser = `-- name: ListBookingViewsByUser :many
SELECT ` + bookingViewColumns + `
FROM bookings b
JOIN users u ON u.id = b.user_id
WHERE b.user_id = $1
ORDER BY b.created_at DESC, b.id DESC
LIMIT $2 OFFSET $3`

type ListBookingViewsByUserParams struct {
	UserID uuid.UUID
	Limit  int32
	Offset int32
}

func (q *Queries) ListBookingViewsByUser(ctx context.Context, db DBTX, arg ListBookingViewsByUserParams) ([]BookingViewRow, error) {
	return collectBookingViews(ctx, db, listBookingViewsByUser, arg.UserID, arg.Limit, arg.Offset)
}

const listBookingViews = `-- name: ListBookingViews :many
SELECT ` + bookingViewColumns + `
FROM bookings b
JOIN users u ON u.id = b.user_id
WHERE ($1::text IS NULL OR b.status = $1::text)
ORDER BY b.created_at DESC, b.id DESC
LIMIT $2 OFFSET $3`

type ListBookingViewsParams struct {
	Status pgtype.Text
	Limit  int32
	Offset int32
}

func (q *Queries) ListBookingViews(ctx context.Context, db DBTX, arg ListBookingViewsParams) ([]BookingViewRow, error) {
	return collectBookingViews(ctx, db, listBookingViews, arg.Status, arg.Limit, arg.Offset)
}

const countBookings = `-- name: CountBookings :one
SELECT count(*)
FROM bookings
WHERE ($1::text IS NULL OR status = $1::text)`

func (q *Queries) CountBookings(ctx context.Context, db DBTX, status pgtype.Text) (int64, error) {
	var count int64
	err := db.QueryRow(ctx, countBookings, status).Scan(&count)
	return count, err
}

const listBookingRooms = `-- name: ListBookingRooms :many
SELECT br.booking_id, r.id, r.name, r.room_type, (r.price_per_night * 100)::bigint
FROM booking_rooms br
JOIN rooms r ON r.id = br.room_id
WHERE br.booking_id = ANY($1::bigint[])
ORDER BY br.booking_id, r.id`

type ListBookingRoomsRow struct {
	BookingID          int64
	RoomID             int64
	Name               string
	RoomType           string
	PricePerNightCents int64
}

func (q *Queries) ListBookingRooms(ctx context.Context, db DBTX, bookingIDs []int64) ([]ListBookingRoomsRow, error) {
	rows, err := db.Query(ctx, listBookingRooms, bookingIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ListBookingRoomsRow{}
	for rows.Next() {
		var i ListBookingRoomsRow
		if err := rows.Scan(
			&i.BookingID,
			&i.RoomID,
			&i.Name,
			&i.RoomType,
			&i.PricePerNightCents,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

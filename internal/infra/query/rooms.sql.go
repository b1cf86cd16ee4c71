package query

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const roomColumns = `id, name, room_type, (price_per_night * 100)::bigint, capacity, is_available, created_at, updated_at`

func scanRoom(row interface{ Scan(...any) error }) (Room, error) {
	var i Room
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.RoomType,
		&i.PricePerNightCents,
		&i.Capacity,
		&i.IsAvailable,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createRoom = `-- name: CreateRoom :one
INSERT INTO rooms (name, room_type, price_per_night, capacity, is_available, created_at, updated_at)
VALUES ($1, $2, $3::bigint::numeric / 100, $4, $5, $6, $6)
RETURNING ` + roomColumns

type CreateRoomParams struct {
	Name               string
	RoomType           string
	PricePerNightCents int64
	Capacity           int32
	IsAvailable        bool
	CreatedAt          pgtype.Timestamptz
}

func (q *Queries) CreateRoom(ctx context.Context, db DBTX, arg CreateRoomParams) (Room, error) {
	row := db.QueryRow(ctx, createRoom,
		arg.Name,
		arg.RoomType,
		arg.PricePerNightCents,
		arg.Capacity,
		arg.IsAvailable,
		arg.CreatedAt,
	)
	return scanRoom(row)
}

const getRoom = `-- name: GetRoom :one
SELECT ` + roomColumns + `
FROM rooms
WHERE id = $1`

func (q *Queries) GetRoom(ctx context.Context, db DBTX, id int64) (Room, error) {
	return scanRoom(db.QueryRow(ctx, getRoom, id))
}

const listRooms = `-- name: ListRooms :many
SELECT ` + roomColumns + `
FROM rooms
WHERE (NOT $1::boolean OR is_available)
ORDER BY id
LIMIT $2 OFFSET $3`

type ListRoomsParams struct {
	OnlyAvailable bool
	Limit         int32
	Offset        int32
}

func (q *Queries) ListRooms(ctx context.Context, db DBTX, arg ListRoomsParams) ([]Room, error) {
	rows, err := db.Query(ctx, listRooms, arg.OnlyAvailable, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Room{}
	for rows.Next() {
		i, err := scanRoom(rows)
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

// Rows come back in ascending id order and stay locked until the
// surrounding transaction ends.
const lockRoomsForBooking = `-- name: LockRoomsForBooking :many
SELECT ` + roomColumns + `
FROM rooms
WHERE id = ANY($1::bigint[])
ORDER BY id
FOR UPDATE`

func (q *Queries) LockRoomsForBooking(ctx context.Context, db DBTX, ids []int64) ([]Room, error) {
	rows, err := db.Query(ctx, lockRoomsForBooking, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Room{}
	for rows.Next() {
		i, err := scanRoom(rows)
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

const setRoomAvailability = `-- name: SetRoomAvailability :one
UPDATE rooms
SET is_available = $2, updated_at = $3
WHERE id = $1
RETURNING ` + roomColumns

type SetRoomAvailabilityParams struct {
	ID          int64
	IsAvailable bool
	UpdatedAt   pgtype.Timestamptz
}

func (q *Queries) SetRoomAvailability(ctx context.Context, db DBTX, arg SetRoomAvailabilityParams) (Room, error) {
	return scanRoom(db.QueryRow(ctx, setRoomAvailability, arg.ID, arg.IsAvailable, arg.UpdatedAt))
}

package repository

import (
	"context"
	"time"

	"hotel-booking/internal/domain/room"
	"hotel-booking/internal/infra"
	"hotel-booking/internal/infra/query"
	"hotel-booking/internal/infra/repository/converter"
	"hotel-booking/internal/pkg/pgconv"
)

type RoomWriteQueries interface {
	CreateRoom(ctx context.Context, db query.DBTX, arg query.CreateRoomParams) (query.Room, error)
	SetRoomAvailability(ctx context.Context, db query.DBTX, arg query.SetRoomAvailabilityParams) (query.Room, error)
}

type RoomRepository struct {
	queries RoomWriteQueries
	db      query.DBTX
}

func NewRoomRepository(queries RoomWriteQueries, db query.DBTX) *RoomRepository {
	return &RoomRepository{
		queries: queries,
		db:      db,
	}
}

func (r *RoomRepository) Create(ctx context.Context, rm *room.Room) (*room.Room, error) {
	row, err := r.queries.CreateRoom(ctx, r.db, converter.RoomToCreateParams(rm))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to create room", err)
	}
	return converter.RoomFromRow(row), nil
}

func (r *RoomRepository) SetAvailability(ctx context.Context, id int64, available bool, now time.Time) (*room.Room, error) {
	row, err := r.queries.SetRoomAvailability(ctx, r.db, query.SetRoomAvailabilityParams{
		ID:          id,
		IsAvailable: available,
		UpdatedAt:   pgconv.TimeToPgtype(now),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to set room availability", err)
	}
	return converter.RoomFromRow(row), nil
}

package converter

import (
	"hotel-booking/internal/domain/money"
	"hotel-booking/internal/domain/room"
	"hotel-booking/internal/infra/query"
	"hotel-booking/internal/pkg/pgconv"
)

func RoomToCreateParams(r *room.Room) query.CreateRoomParams {
	return query.CreateRoomParams{
		Name:               r.Name(),
		RoomType:           r.RoomType(),
		PricePerNightCents: r.PricePerNight().Cents(),
		Capacity:           int32(r.Capacity()), // #nosec G115 -- capacity is validated by the domain
		IsAvailable:        r.IsAvailable(),
		CreatedAt:          pgconv.TimeToPgtype(r.CreatedAt()),
	}
}

func RoomFromRow(row query.Room) *room.Room {
	return room.ReconstructRoom(
		row.ID,
		row.Name,
		row.RoomType,
		money.FromCents(row.PricePerNightCents),
		int(row.Capacity),
		row.IsAvailable,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	)
}

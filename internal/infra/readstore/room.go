package readstore

import (
	"context"

	"hotel-booking/internal/domain/money"
	"hotel-booking/internal/infra"
	"hotel-booking/internal/infra/query"
	"hotel-booking/internal/usecase/queries"
)

type RoomViewQueries interface {
	GetRoom(ctx context.Context, db query.DBTX, id int64) (query.Room, error)
	ListRooms(ctx context.Context, db query.DBTX, arg query.ListRoomsParams) ([]query.Room, error)
}

type RoomReadStore struct {
	queries RoomViewQueries
	db      query.DBTX
}

func NewRoomReadStore(queries RoomViewQueries, db query.DBTX) *RoomReadStore {
	return &RoomReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *RoomReadStore) FindByID(ctx context.Context, id int64) (*queries.RoomView, error) {
	row, err := r.queries.GetRoom(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find room by ID", err)
	}
	return toRoomView(row)
}

func (r *RoomReadStore) List(ctx context.Context, filter queries.RoomFilter) ([]*queries.RoomView, error) {
	rows, err := r.queries.ListRooms(ctx, r.db, query.ListRoomsParams{
		OnlyAvailable: filter.OnlyAvailable,
		Limit:         int32(filter.Limit),  // #nosec G115 -- bounded by queries.MaxListLimit
		Offset:        int32(filter.Offset), // #nosec G115 -- bounded by queries.MaxListLimit
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rooms", err)
	}

	result := make([]*queries.RoomView, 0, len(rows))
	for _, row := range rows {
		view, err := toRoomView(row)
		if err != nil {
			return nil, err
		}
		result = append(result, view)
	}
	return result, nil
}

func toRoomView(row query.Room) (*queries.RoomView, error) {
	var view queries.RoomView
	if err := copyView(&view, &row); err != nil {
		return nil, err
	}
	view.PricePerNight = money.FromCents(row.PricePerNightCents)
	return &view, nil
}

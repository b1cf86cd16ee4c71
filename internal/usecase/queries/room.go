package queries

import (
	"context"

	"hotel-booking/internal/infra"
)

type RoomFilter struct {
	OnlyAvailable bool
	Page
}

type RoomReadStore interface {
	FindByID(ctx context.Context, id int64) (*RoomView, error)
	List(ctx context.Context, filter RoomFilter) ([]*RoomView, error)
}

type RoomQueries interface {
	GetByID(ctx context.Context, id int64) (*RoomView, error)
	List(ctx context.Context, filter RoomFilter) ([]*RoomView, error)
}

type roomQueriesImpl struct {
	readStore RoomReadStore
}

func NewRoomQueries(readStore RoomReadStore) RoomQueries {
	return &roomQueriesImpl{readStore: readStore}
}

func (q *roomQueriesImpl) GetByID(ctx context.Context, id int64) (*RoomView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *roomQueriesImpl) List(ctx context.Context, filter RoomFilter) ([]*RoomView, error) {
	filter.Page = filter.Page.Normalize()
	return q.readStore.List(ctx, filter)
}

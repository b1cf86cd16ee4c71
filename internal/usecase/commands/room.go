package commands

import (
	"context"

	"hotel-booking/internal/domain/auth"
	"hotel-booking/internal/domain/money"
	"hotel-booking/internal/domain/room"
	"hotel-booking/internal/infra"
	"hotel-booking/internal/pkg/clock"
	"hotel-booking/internal/pkg/errs"
	"hotel-booking/internal/usecase/queries"
	"hotel-booking/internal/usecase/shared"
)

type CreateRoomInput struct {
	Name          string
	RoomType      string
	PricePerNight string
	Capacity      int
}

// RoomCommands is the admin side of the room catalog.
type RoomCommands interface {
	Create(ctx context.Context, actor auth.Principal, input CreateRoomInput) (*queries.RoomView, error)
	SetAvailability(ctx context.Context, actor auth.Principal, roomID int64, available bool) (*queries.RoomView, error)
}

type roomCommandsImpl struct {
	uow         shared.UnitOfWork
	roomQueries queries.RoomQueries
	clock       clock.Clock
}

func NewRoomCommands(uow shared.UnitOfWork, roomQueries queries.RoomQueries, clk clock.Clock) RoomCommands {
	return &roomCommandsImpl{uow: uow, roomQueries: roomQueries, clock: clk}
}

func (c *roomCommandsImpl) Create(ctx context.Context, actor auth.Principal, input CreateRoomInput) (*queries.RoomView, error) {
	if !actor.IsAdmin() {
		return nil, ErrAccessDenied
	}

	price, err := money.Parse(input.PricePerNight)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}
	r, err := room.NewRoom(input.Name, input.RoomType, price, input.Capacity, c.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	var roomID int64
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		created, err := tx.Rooms().Create(ctx, r)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		roomID = created.ID()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.roomQueries.GetByID(ctx, roomID)
}

func (c *roomCommandsImpl) SetAvailability(ctx context.Context, actor auth.Principal, roomID int64, available bool) (*queries.RoomView, error) {
	if !actor.IsAdmin() {
		return nil, ErrAccessDenied
	}

	now := c.clock.Now()
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Rooms().SetAvailability(ctx, roomID, available, now); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrRoomNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.roomQueries.GetByID(ctx, roomID)
}

//go:build unit

package commands_test

import (
	"context"
	"testing"

	"hotel-booking/internal/domain/auth"
	"hotel-booking/internal/domain/room"
	"hotel-booking/internal/domain/user"
	"hotel-booking/internal/infra"
	"hotel-booking/internal/pkg/clock"
	"hotel-booking/internal/pkg/errs"
	"hotel-booking/internal/usecase/commands"
	"hotel-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRoomStore struct{ u *memUoW }

func (s memRoomStore) FindByID(_ context.Context, id int64) (*queries.RoomView, error) {
	r, ok := s.u.st.rooms[id]
	if !ok {
		return nil, infra.WrapRepoErr("room not found", pgx.ErrNoRows)
	}
	return &queries.RoomView{
		ID: r.ID(), Name: r.Name(), RoomType: r.RoomType(), PricePerNight: r.PricePerNight(),
		Capacity: int32(r.Capacity()), IsAvailable: r.IsAvailable(), CreatedAt: r.CreatedAt(), UpdatedAt: r.UpdatedAt(),
	}, nil
}

func (s memRoomStore) List(context.Context, queries.RoomFilter) ([]*queries.RoomView, error) {
	return nil, nil
}

func TestRoomCommands(t *testing.T) {
	uow := newMemUoW()
	cmds := commands.NewRoomCommands(uow, queries.NewRoomQueries(memRoomStore{uow}), clock.NewFixedClock(testNow))
	admin := auth.NewPrincipal(uuid.New(), user.RoleAdmin)
	customer := auth.NewPrincipal(uuid.New(), user.RoleCustomer)
	ctx := context.Background()

	t.Run("admin creates an available room", func(t *testing.T) {
		view, err := cmds.Create(ctx, admin, commands.CreateRoomInput{
			Name: " Sea View ", RoomType: "suite", PricePerNight: "150.50", Capacity: 2,
		})
		require.NoError(t, err)
		assert.Equal(t, "Sea View", view.Name)
		assert.Equal(t, "150.50", view.PricePerNight.String())
		assert.True(t, view.IsAvailable)
		assert.Equal(t, testNow, view.CreatedAt)
	})

	t.Run("customer cannot manage rooms", func(t *testing.T) {
		_, err := cmds.Create(ctx, customer, commands.CreateRoomInput{Name: "x", PricePerNight: "1", Capacity: 1})
		assert.True(t, errs.Is(err, commands.ErrAccessDenied))

		_, err = cmds.SetAvailability(ctx, customer, 1, false)
		assert.True(t, errs.Is(err, commands.ErrAccessDenied))
	})

	t.Run("invalid room", func(t *testing.T) {
		_, err := cmds.Create(ctx, admin, commands.CreateRoomInput{Name: "x", PricePerNight: "1", Capacity: 0})
		assert.True(t, errs.Is(err, commands.ErrValidation))
	})

	t.Run("price above column maximum", func(t *testing.T) {
		_, err := cmds.Create(ctx, admin, commands.CreateRoomInput{Name: "x", PricePerNight: "100000000.00", Capacity: 1})
		assert.True(t, errs.Is(err, commands.ErrValidation))
		assert.ErrorIs(t, err, room.ErrPriceTooLarge)
	})

	t.Run("toggle availability", func(t *testing.T) {
		view, err := cmds.SetAvailability(ctx, admin, 1, false)
		require.NoError(t, err)
		assert.False(t, view.IsAvailable)
	})

	t.Run("unknown room", func(t *testing.T) {
		_, err := cmds.SetAvailability(ctx, admin, 77, true)
		assert.True(t, errs.Is(err, commands.ErrRoomNotFound))
	})
}

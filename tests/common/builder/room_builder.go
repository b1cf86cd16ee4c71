//go:build unit || e2e

package builder

import (
	"encoding/json"
	"time"

	"hotel-booking/internal/domain/money"
	reqdto "hotel-booking/internal/handler/dto/request"
	"hotel-booking/internal/usecase/queries"
)

type RoomBuilder struct {
	ID            int64
	Name          string
	RoomType      string
	PricePerNight string
	Capacity      int
	IsAvailable   bool
}

func NewRoomBuilder() *RoomBuilder {
	return &RoomBuilder{
		ID:            1,
		Name:          "Garden Double",
		RoomType:      "double",
		PricePerNight: "1000.00",
		Capacity:      2,
		IsAvailable:   true,
	}
}

func (r *RoomBuilder) With(mutate func(*RoomBuilder)) *RoomBuilder {
	mutate(r)
	return r
}

func (r *RoomBuilder) BuildCreateRequestDTO() reqdto.CreateRoomRequest {
	return reqdto.CreateRoomRequest{
		Name:          r.Name,
		RoomType:      r.RoomType,
		PricePerNight: jsonNumber(r.PricePerNight),
		Capacity:      r.Capacity,
	}
}

func (r *RoomBuilder) BuildView() *queries.RoomView {
	price, _ := money.Parse(r.PricePerNight)
	created := time.Date(2024, 11, 1, 9, 0, 0, 0, time.UTC)
	return &queries.RoomView{
		ID:            r.ID,
		Name:          r.Name,
		RoomType:      r.RoomType,
		PricePerNight: price,
		Capacity:      int32(r.Capacity), // #nosec G115 -- test fixture values are small
		IsAvailable:   r.IsAvailable,
		CreatedAt:     created,
		UpdatedAt:     created,
	}
}

func jsonNumber(s string) json.Number {
	return json.Number(s)
}

package request

import (
	"encoding/json"

	"hotel-booking/internal/usecase/commands"
	"hotel-booking/internal/usecase/queries"
)

type CreateRoomRequest struct {
	Name          string      `json:"name" binding:"required,max=100"`
	RoomType      string      `json:"room_type" binding:"required,max=50"`
	PricePerNight json.Number `json:"price_per_night" binding:"required"`
	Capacity      int         `json:"capacity" binding:"required,min=1"`
}

func (r *CreateRoomRequest) ToInput() commands.CreateRoomInput {
	return commands.CreateRoomInput{
		Name:          r.Name,
		RoomType:      r.RoomType,
		PricePerNight: r.PricePerNight.String(),
		Capacity:      r.Capacity,
	}
}

type SetAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}

type RoomListQuery struct {
	PageQuery
	Available bool `form:"available"`
}

func (q RoomListQuery) ToFilter() queries.RoomFilter {
	return queries.RoomFilter{OnlyAvailable: q.Available, Page: q.ToPage()}
}

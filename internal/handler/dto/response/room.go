package response

import (
	"time"

	"hotel-booking/internal/domain/money"
	"hotel-booking/internal/usecase/queries"
)

type RoomResponse struct {
	ID            int64       `json:"id"`
	Name          string      `json:"name"`
	RoomType      string      `json:"room_type"`
	PricePerNight money.Money `json:"price_per_night"`
	Capacity      int32       `json:"capacity"`
	IsAvailable   bool        `json:"is_available"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

func FromRoomView(v *queries.RoomView) *RoomResponse {
	return &RoomResponse{
		ID:            v.ID,
		Name:          v.Name,
		RoomType:      v.RoomType,
		PricePerNight: v.PricePerNight,
		Capacity:      v.Capacity,
		IsAvailable:   v.IsAvailable,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

func FromRoomViews(views []*queries.RoomView) []*RoomResponse {
	out := make([]*RoomResponse, len(views))
	for i, v := range views {
		out[i] = FromRoomView(v)
	}
	return out
}

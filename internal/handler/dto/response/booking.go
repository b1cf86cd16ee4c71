package response

import (
	"time"

	"hotel-booking/internal/domain/money"
	"hotel-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type BookingRoomResponse struct {
	RoomID        int64       `json:"room_id"`
	Name          string      `json:"name"`
	RoomType      string      `json:"room_type"`
	PricePerNight money.Money `json:"price_per_night"`
}

type BookingResponse struct {
	ID           int64                 `json:"id"`
	UserID       uuid.UUID             `json:"user_id"`
	CheckInDate  string                `json:"check_in_date"`
	CheckOutDate string                `json:"check_out_date"`
	Nights       int64                 `json:"nights"`
	TotalPrice   money.Money           `json:"total_price"`
	Status       string                `json:"status"`
	RoomIDs      []int64               `json:"room_ids"`
	Rooms        []BookingRoomResponse `json:"rooms"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

type BookingListResponse struct {
	Items  []*BookingResponse `json:"items"`
	Total  int64              `json:"total"`
	Limit  int                `json:"limit"`
	Offset int                `json:"offset"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	rooms := make([]BookingRoomResponse, len(v.Rooms))
	for i, r := range v.Rooms {
		rooms[i] = BookingRoomResponse{
			RoomID:        r.RoomID,
			Name:          r.Name,
			RoomType:      r.RoomType,
			PricePerNight: r.PricePerNight,
		}
	}

	return &BookingResponse{
		ID:           v.ID,
		UserID:       v.UserID,
		CheckInDate:  v.CheckIn.Format(dateLayout),
		CheckOutDate: v.CheckOut.Format(dateLayout),
		Nights:       v.Nights,
		TotalPrice:   v.TotalPrice,
		Status:       v.Status,
		RoomIDs:      v.RoomIDs(),
		Rooms:        rooms,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func FromBookingViews(views []*queries.BookingView) []*BookingResponse {
	out := make([]*BookingResponse, len(views))
	for i, v := range views {
		out[i] = FromBookingView(v)
	}
	return out
}

func FromBookingPage(p *queries.BookingPage) *BookingListResponse {
	return &BookingListResponse{
		Items:  FromBookingViews(p.Items),
		Total:  p.Total,
		Limit:  p.Limit,
		Offset: p.Offset,
	}
}

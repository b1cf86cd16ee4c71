package request

import (
	"hotel-booking/internal/usecase/commands"
	"hotel-booking/internal/usecase/queries"
)

// CreateBookingRequest carries calendar dates as YYYY-MM-DD; the use case
// parses them so that malformed dates share one error path.
type CreateBookingRequest struct {
	CheckInDate  string  `json:"check_in_date" binding:"required"`
	CheckOutDate string  `json:"check_out_date" binding:"required"`
	RoomIDs      []int64 `json:"room_ids" binding:"required"`
}

func (r *CreateBookingRequest) ToInput() commands.CreateBookingInput {
	return commands.CreateBookingInput{
		CheckIn:  r.CheckInDate,
		CheckOut: r.CheckOutDate,
		RoomIDs:  r.RoomIDs,
	}
}

type PageQuery struct {
	Limit  int `form:"limit" binding:"omitempty,min=1,max=200"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

func (q PageQuery) ToPage() queries.Page {
	return queries.Page{Limit: q.Limit, Offset: q.Offset}
}

type AdminBookingQuery struct {
	PageQuery
	Status string `form:"status"`
}

func (q AdminBookingQuery) ToFilter() queries.BookingFilter {
	filter := queries.BookingFilter{Page: q.ToPage()}
	if q.Status != "" {
		status := q.Status
		filter.Status = &status
	}
	return filter
}

package readstore

import (
	"context"

	"hotel-booking/internal/domain/booking"
	"hotel-booking/internal/domain/money"
	"hotel-booking/internal/infra"
	"hotel-booking/internal/infra/query"
	"hotel-booking/internal/pkg/pgconv"
	"hotel-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingViewQueries interface {
	GetBookingView(ctx context.Context, db query.DBTX, id int64) (query.BookingViewRow, error)
	ListBookingViewsByUser(ctx context.Context, db query.DBTX, arg query.ListBookingViewsByUserParams) ([]query.BookingViewRow, error)
	ListBookingViews(ctx context.Context, db query.DBTX, arg query.ListBookingViewsParams) ([]query.BookingViewRow, error)
	CountBookings(ctx context.Context, db query.DBTX, status pgtype.Text) (int64, error)
	ListBookingRooms(ctx context.Context, db query.DBTX, bookingIDs []int64) ([]query.ListBookingRoomsRow, error)
}

type BookingReadStore struct {
	queries BookingViewQueries
	db      query.DBTX
}

func NewBookingReadStore(queries BookingViewQueries, db query.DBTX) *BookingReadStore {
	return &BookingReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id int64) (*queries.BookingView, error) {
	row, err := r.queries.GetBookingView(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	views, err := r.attachRooms(ctx, []query.BookingViewRow{row})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (r *BookingReadStore) ListByUser(ctx context.Context, userID uuid.UUID, page queries.Page) ([]*queries.BookingView, error) {
	rows, err := r.queries.ListBookingViewsByUser(ctx, r.db, query.ListBookingViewsByUserParams{
		UserID: userID,
		Limit:  int32(page.Limit),  // #nosec G115 -- bounded by queries.MaxListLimit
		Offset: int32(page.Offset), // #nosec G115 -- offsets beyond int32 are not served
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by user", err)
	}
	return r.attachRooms(ctx, rows)
}

func (r *BookingReadStore) List(ctx context.Context, filter queries.BookingFilter) ([]*queries.BookingView, int64, error) {
	status := pgconv.StringPtrToPgtype(filter.Status)

	rows, err := r.queries.ListBookingViews(ctx, r.db, query.ListBookingViewsParams{
		Status: status,
		Limit:  int32(filter.Limit),  // #nosec G115 -- bounded by queries.MaxListLimit
		Offset: int32(filter.Offset), // #nosec G115 -- offsets beyond int32 are not served
	})
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list bookings", err)
	}

	total, err := r.queries.CountBookings(ctx, r.db, status)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count bookings", err)
	}

	views, err := r.attachRooms(ctx, rows)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// attachRooms loads the rooms of every row with a single query.
func (r *BookingReadStore) attachRooms(ctx context.Context, rows []query.BookingViewRow) ([]*queries.BookingView, error) {
	result := make([]*queries.BookingView, 0, len(rows))
	if len(rows) == 0 {
		return result, nil
	}

	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	roomRows, err := r.queries.ListBookingRooms(ctx, r.db, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load booking rooms", err)
	}

	rooms := make(map[int64][]queries.BookingRoomView, len(rows))
	for _, rr := range roomRows {
		var rv queries.BookingRoomView
		if err := copyView(&rv, &rr); err != nil {
			return nil, err
		}
		rv.PricePerNight = money.FromCents(rr.PricePerNightCents)
		rooms[rr.BookingID] = append(rooms[rr.BookingID], rv)
	}

	for _, row := range rows {
		view, err := toBookingView(row)
		if err != nil {
			return nil, err
		}
		view.Rooms = rooms[row.ID]
		if view.Rooms == nil {
			view.Rooms = []queries.BookingRoomView{}
		}
		result = append(result, view)
	}
	return result, nil
}

func toBookingView(row query.BookingViewRow) (*queries.BookingView, error) {
	view := &queries.BookingView{
		ID:         row.ID,
		UserID:     row.UserID,
		UserEmail:  row.UserEmail,
		CheckIn:    pgconv.DateFromPgtype(row.CheckInDate),
		CheckOut:   pgconv.DateFromPgtype(row.CheckOutDate),
		TotalPrice: money.FromCents(row.TotalPriceCents),
		Status:     row.Status,
		CreatedAt:  pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:  pgconv.TimeFromPgtype(row.UpdatedAt),
	}

	stay, err := booking.NewStay(view.CheckIn, view.CheckOut)
	if err != nil {
		return nil, infra.WrapRepoErr("stored booking has an invalid stay", err)
	}
	view.Nights = stay.Nights()
	return view, nil
}

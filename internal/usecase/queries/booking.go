package queries

import (
	"context"

	"hotel-booking/internal/domain/auth"
	"hotel-booking/internal/domain/booking"
	"hotel-booking/internal/infra"

	"github.com/google/uuid"
)

type BookingReadStore interface {
	FindByID(ctx context.Context, id int64) (*BookingView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page Page) ([]*BookingView, error)
	List(ctx context.Context, filter BookingFilter) ([]*BookingView, int64, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, actor auth.Principal, id int64) (*BookingView, error)
	// GetByIDSystem skips the ownership check; it serves read-after-write.
	GetByIDSystem(ctx context.Context, id int64) (*BookingView, error)
	ListMine(ctx context.Context, actor auth.Principal, page Page) ([]*BookingView, error)
	ListAll(ctx context.Context, actor auth.Principal, filter BookingFilter) (*BookingPage, error)
}

type bookingQueriesImpl struct {
	readStore BookingReadStore
}

func NewBookingQueries(readStore BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{readStore: readStore}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actor auth.Principal, id int64) (*BookingView, error) {
	view, err := q.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanActOn(view.UserID) {
		return nil, ErrAccessDenied
	}
	return view, nil
}

func (q *bookingQueriesImpl) GetByIDSystem(ctx context.Context, id int64) (*BookingView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListMine(ctx context.Context, actor auth.Principal, page Page) ([]*BookingView, error) {
	if actor.UserID == uuid.Nil {
		return nil, ErrAccessDenied
	}
	return q.readStore.ListByUser(ctx, actor.UserID, page.Normalize())
}

func (q *bookingQueriesImpl) ListAll(ctx context.Context, actor auth.Principal, filter BookingFilter) (*BookingPage, error) {
	if !actor.IsAdmin() {
		return nil, ErrAccessDenied
	}
	if filter.Status != nil {
		if _, err := booking.ParseStatus(*filter.Status); err != nil {
			return nil, ErrInvalidFilter
		}
	}
	filter.Page = filter.Page.Normalize()

	items, total, err := q.readStore.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &BookingPage{
		Items:  items,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}

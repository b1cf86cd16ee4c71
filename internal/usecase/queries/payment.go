package queries

import (
	"context"

	"hotel-booking/internal/domain/auth"
	"hotel-booking/internal/infra"
)

type PaymentReadStore interface {
	Summary(ctx context.Context, bookingID int64) (*PaymentSummaryView, error)
	ListByBooking(ctx context.Context, bookingID int64) ([]*PaymentView, error)
	FindByID(ctx context.Context, id int64) (*PaymentView, error)
}

type PaymentQueries interface {
	Summary(ctx context.Context, actor auth.Principal, bookingID int64) (*PaymentSummaryView, error)
	ListByBooking(ctx context.Context, actor auth.Principal, bookingID int64) ([]*PaymentView, error)
	GetByIDSystem(ctx context.Context, id int64) (*PaymentView, error)
}

type paymentQueriesImpl struct {
	readStore PaymentReadStore
}

func NewPaymentQueries(readStore PaymentReadStore) PaymentQueries {
	return &paymentQueriesImpl{readStore: readStore}
}

func (q *paymentQueriesImpl) Summary(ctx context.Context, actor auth.Principal, bookingID int64) (*PaymentSummaryView, error) {
	summary, err := q.readStore.Summary(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if !actor.CanActOn(summary.UserID) {
		return nil, ErrAccessDenied
	}
	return summary, nil
}

func (q *paymentQueriesImpl) ListByBooking(ctx context.Context, actor auth.Principal, bookingID int64) ([]*PaymentView, error) {
	if _, err := q.Summary(ctx, actor, bookingID); err != nil {
		return nil, err
	}
	return q.readStore.ListByBooking(ctx, bookingID)
}

func (q *paymentQueriesImpl) GetByIDSystem(ctx context.Context, id int64) (*PaymentView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return view, nil
}

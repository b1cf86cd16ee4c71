package readstore

import (
	"context"

	"hotel-booking/internal/domain/money"
	"hotel-booking/internal/domain/payment"
	"hotel-booking/internal/infra"
	"hotel-booking/internal/infra/query"
	"hotel-booking/internal/usecase/queries"
)

type PaymentViewQueries interface {
	GetPayment(ctx context.Context, db query.DBTX, id int64) (query.Payment, error)
	ListPaymentsByBooking(ctx context.Context, db query.DBTX, bookingID int64) ([]query.Payment, error)
	GetPaymentSummary(ctx context.Context, db query.DBTX, bookingID int64) (query.GetPaymentSummaryRow, error)
}

type PaymentReadStore struct {
	queries PaymentViewQueries
	db      query.DBTX
}

func NewPaymentReadStore(queries PaymentViewQueries, db query.DBTX) *PaymentReadStore {
	return &PaymentReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *PaymentReadStore) Summary(ctx context.Context, bookingID int64) (*queries.PaymentSummaryView, error) {
	row, err := r.queries.GetPaymentSummary(ctx, r.db, bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load payment summary", err)
	}

	totals := payment.Totals{
		Paid:     money.FromCents(row.PaidCents),
		Refunded: money.FromCents(row.RefundedCents),
	}
	return &queries.PaymentSummaryView{
		BookingID:     row.BookingID,
		UserID:        row.UserID,
		Status:        row.Status,
		TotalPrice:    money.FromCents(row.TotalPriceCents),
		TotalPaid:     totals.Paid,
		TotalRefunded: totals.Refunded,
		NetPaid:       totals.NetPaid(),
	}, nil
}

func (r *PaymentReadStore) ListByBooking(ctx context.Context, bookingID int64) ([]*queries.PaymentView, error) {
	rows, err := r.queries.ListPaymentsByBooking(ctx, r.db, bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list payments", err)
	}

	result := make([]*queries.PaymentView, 0, len(rows))
	for _, row := range rows {
		view, err := toPaymentView(row)
		if err != nil {
			return nil, err
		}
		result = append(result, view)
	}
	return result, nil
}

func (r *PaymentReadStore) FindByID(ctx context.Context, id int64) (*queries.PaymentView, error) {
	row, err := r.queries.GetPayment(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find payment by ID", err)
	}
	return toPaymentView(row)
}

func toPaymentView(row query.Payment) (*queries.PaymentView, error) {
	var view queries.PaymentView
	if err := copyView(&view, &row); err != nil {
		return nil, err
	}
	view.Amount = money.FromCents(row.AmountCents)
	return &view, nil
}

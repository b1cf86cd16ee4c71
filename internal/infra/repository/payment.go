package repository

import (
	"context"

	"hotel-booking/internal/domain/payment"
	"hotel-booking/internal/infra"
	"hotel-booking/internal/infra/query"
	"hotel-booking/internal/infra/repository/converter"
)

type PaymentWriteQueries interface {
	CreatePayment(ctx context.Context, db query.DBTX, arg query.CreatePaymentParams) (query.Payment, error)
}

// PaymentRepository only appends. Ledger rows are never updated or deleted.
type PaymentRepository struct {
	queries PaymentWriteQueries
	db      query.DBTX
}

func NewPaymentRepository(queries PaymentWriteQueries, db query.DBTX) *PaymentRepository {
	return &PaymentRepository{
		queries: queries,
		db:      db,
	}
}

func (r *PaymentRepository) Append(ctx context.Context, p *payment.Payment) (*payment.Payment, error) {
	row, err := r.queries.CreatePayment(ctx, r.db, converter.PaymentToCreateParams(p))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to append payment", err)
	}
	return converter.PaymentFromRow(row), nil
}

package converter

import (
	"hotel-booking/internal/domain/money"
	"hotel-booking/internal/domain/payment"
	"hotel-booking/internal/infra/query"
	"hotel-booking/internal/pkg/pgconv"
)

func PaymentToCreateParams(p *payment.Payment) query.CreatePaymentParams {
	return query.CreatePaymentParams{
		BookingID:   p.BookingID(),
		AmountCents: p.Amount().Cents(),
		Status:      string(p.Status()),
		Method:      p.Method(),
		CreatedAt:   pgconv.TimeToPgtype(p.CreatedAt()),
	}
}

func PaymentFromRow(row query.Payment) *payment.Payment {
	return payment.ReconstructPayment(
		row.ID,
		row.BookingID,
		money.FromCents(row.AmountCents),
		payment.Status(row.Status),
		row.Method,
		pgconv.TimeFromPgtype(row.CreatedAt),
	)
}

func TotalsFromRow(row query.SumPaymentsByBookingRow) payment.Totals {
	return payment.Totals{
		Paid:     money.FromCents(row.PaidCents),
		Refunded: money.FromCents(row.RefundedCents),
	}
}

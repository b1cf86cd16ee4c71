//go:build unit || e2e

package builder

import (
	"time"

	"hotel-booking/internal/domain/money"
	reqdto "hotel-booking/internal/handler/dto/request"
	"hotel-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type PaymentBuilder struct {
	ID          int64
	BookingID   int64
	Amount      string
	Status      string
	Method      string
	PriceCents  int64
	PaidCents   int64
	RefundCents int64
}

func NewPaymentBuilder() *PaymentBuilder {
	return &PaymentBuilder{
		ID:         1,
		BookingID:  1,
		Amount:     "500.00",
		Status:     "completed",
		Method:     "card",
		PriceCents: 200000,
		PaidCents:  50000,
	}
}

func (p *PaymentBuilder) With(mutate func(*PaymentBuilder)) *PaymentBuilder {
	mutate(p)
	return p
}

func (p *PaymentBuilder) BuildRecordRequestDTO() reqdto.RecordPaymentRequest {
	return reqdto.RecordPaymentRequest{Amount: jsonNumber(p.Amount), Method: p.Method}
}

func (p *PaymentBuilder) BuildRefundRequestDTO() reqdto.RefundRequest {
	return reqdto.RefundRequest{Amount: jsonNumber(p.Amount)}
}

func (p *PaymentBuilder) BuildView() *queries.PaymentView {
	amount, _ := money.Parse(p.Amount)
	return &queries.PaymentView{
		ID:        p.ID,
		BookingID: p.BookingID,
		Amount:    amount,
		Status:    p.Status,
		Method:    p.Method,
		CreatedAt: time.Date(2024, 12, 1, 11, 0, 0, 0, time.UTC),
	}
}

func (p *PaymentBuilder) BuildSummaryView(bookingStatus string) *queries.PaymentSummaryView {
	paid := money.FromCents(p.PaidCents)
	refunded := money.FromCents(p.RefundCents)
	return &queries.PaymentSummaryView{
		BookingID:     p.BookingID,
		UserID:        uuid.New(),
		Status:        bookingStatus,
		TotalPrice:    money.FromCents(p.PriceCents),
		TotalPaid:     paid,
		TotalRefunded: refunded,
		NetPaid:       paid.Sub(refunded).FloorZero(),
	}
}

package response

import (
	"time"

	"hotel-booking/internal/domain/money"
	"hotel-booking/internal/usecase/queries"
)

type PaymentResponse struct {
	ID        int64       `json:"id"`
	BookingID int64       `json:"booking_id"`
	Amount    money.Money `json:"amount"`
	Status    string      `json:"status"`
	Method    string      `json:"method"`
	CreatedAt time.Time   `json:"created_at"`
}

type PaymentSummaryResponse struct {
	BookingID     int64       `json:"booking_id"`
	BookingStatus string      `json:"booking_status"`
	TotalPrice    money.Money `json:"total_price"`
	TotalPaid     money.Money `json:"total_paid"`
	TotalRefunded money.Money `json:"total_refunded"`
	NetPaid       money.Money `json:"net_paid"`
}

// RecordPaymentResponse returns the new ledger row together with the booking
// status it produced.
type RecordPaymentResponse struct {
	Payment       *PaymentResponse        `json:"payment"`
	BookingStatus string                  `json:"booking_status"`
	Summary       *PaymentSummaryResponse `json:"summary"`
}

func FromPaymentView(v *queries.PaymentView) *PaymentResponse {
	return &PaymentResponse{
		ID:        v.ID,
		BookingID: v.BookingID,
		Amount:    v.Amount,
		Status:    v.Status,
		Method:    v.Method,
		CreatedAt: v.CreatedAt,
	}
}

func FromPaymentViews(views []*queries.PaymentView) []*PaymentResponse {
	out := make([]*PaymentResponse, len(views))
	for i, v := range views {
		out[i] = FromPaymentView(v)
	}
	return out
}

func FromPaymentSummaryView(v *queries.PaymentSummaryView) *PaymentSummaryResponse {
	return &PaymentSummaryResponse{
		BookingID:     v.BookingID,
		BookingStatus: v.Status,
		TotalPrice:    v.TotalPrice,
		TotalPaid:     v.TotalPaid,
		TotalRefunded: v.TotalRefunded,
		NetPaid:       v.NetPaid,
	}
}

func FromRecordPayment(p *queries.PaymentView, s *queries.PaymentSummaryView) *RecordPaymentResponse {
	return &RecordPaymentResponse{
		Payment:       FromPaymentView(p),
		BookingStatus: s.Status,
		Summary:       FromPaymentSummaryView(s),
	}
}

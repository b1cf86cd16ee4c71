package payment

import (
	"hotel-booking/internal/domain/booking"
	"hotel-booking/internal/domain/money"
)

// Totals are ledger sums for one booking.
type Totals struct {
	Paid     money.Money
	Refunded money.Money
}

// NetPaid is paid minus refunded, floored at zero.
func (t Totals) NetPaid() money.Money {
	return t.Paid.Sub(t.Refunded).FloorZero()
}

// TotalsFrom resums a ledger. The result does not depend on row order.
func TotalsFrom(ledger []*Payment) Totals {
	var t Totals
	for _, p := range ledger {
		switch p.Status() {
		case StatusCompleted:
			t.Paid = t.Paid.Add(p.Amount())
		case StatusRefunded:
			t.Refunded = t.Refunded.Add(p.Amount())
		}
	}
	return t
}

type Summary struct {
	BookingID  int64
	TotalPrice money.Money
	Totals
}

func NewSummary(bookingID int64, totalPrice money.Money, totals Totals) Summary {
	return Summary{BookingID: bookingID, TotalPrice: totalPrice, Totals: totals}
}

// ReconcileStatus derives a booking status from completed payments alone:
// paid once they cover the total price, partial otherwise.
func ReconcileStatus(totalPrice money.Money, totals Totals) booking.Status {
	if totals.Paid.GreaterOrEqual(totalPrice) {
		return booking.StatusPaid
	}
	return booking.StatusPartial
}

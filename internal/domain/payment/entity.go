package payment

import (
	"errors"
	"strings"
	"time"

	"hotel-booking/internal/domain/money"
)

var (
	ErrNonPositiveAmount    = errors.New("amount must be greater than zero")
	ErrInvalidMethod        = errors.New("payment method is too long (max 50 characters)")
	ErrInvalidStatus        = errors.New("invalid payment status")
	ErrRefundExceedsNetPaid = errors.New("refund amount exceeds net paid")
	ErrAmountTooLarge       = errors.New("amount exceeds the maximum of 9999999999.99")
)

// MaxAmount is the largest value payments.amount (NUMERIC(12,2)) can hold.
var MaxAmount = money.FromCents(999_999_999_999)

// ValidateAmount accepts amounts in (0, MaxAmount].
func ValidateAmount(amount money.Money) error {
	if !amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	if amount.GreaterThan(MaxAmount) {
		return ErrAmountTooLarge
	}
	return nil
}

type Status string

const (
	StatusCompleted Status = "completed"
	StatusRefunded  Status = "refunded"
)

func (s Status) IsValid() bool {
	return s == StatusCompleted || s == StatusRefunded
}

func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

const (
	DefaultMethod   = "card"
	RefundMethod    = "refund"
	MaxMethodLength = 50
)

// NormalizeMethod trims the method and falls back to DefaultMethod when empty.
func NormalizeMethod(method string) (string, error) {
	method = strings.TrimSpace(method)
	if method == "" {
		return DefaultMethod, nil
	}
	if len(method) > MaxMethodLength {
		return "", ErrInvalidMethod
	}
	return method, nil
}

// Payment is one row of a booking's append-only ledger. Rows are never
// mutated after insertion; a refund is a new row with StatusRefunded.
type Payment struct {
	id        int64
	bookingID int64
	amount    money.Money
	status    Status
	method    string
	createdAt time.Time
}

func NewPayment(bookingID int64, amount money.Money, method string, now time.Time) (*Payment, error) {
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}
	method, err := NormalizeMethod(method)
	if err != nil {
		return nil, err
	}
	return &Payment{
		bookingID: bookingID,
		amount:    amount,
		status:    StatusCompleted,
		method:    method,
		createdAt: now,
	}, nil
}

// NewRefund checks the amount against the ledger totals read in the same
// transaction that will append the refund row.
func NewRefund(bookingID int64, amount money.Money, totals Totals, now time.Time) (*Payment, error) {
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}
	if amount.GreaterThan(totals.NetPaid()) {
		return nil, ErrRefundExceedsNetPaid
	}
	return &Payment{
		bookingID: bookingID,
		amount:    amount,
		status:    StatusRefunded,
		method:    RefundMethod,
		createdAt: now,
	}, nil
}

func ReconstructPayment(
	id, bookingID int64,
	amount money.Money,
	status Status,
	method string,
	createdAt time.Time,
) *Payment {
	return &Payment{
		id:        id,
		bookingID: bookingID,
		amount:    amount,
		status:    status,
		method:    method,
		createdAt: createdAt,
	}
}

func (p *Payment) ID() int64            { return p.id }
func (p *Payment) BookingID() int64     { return p.bookingID }
func (p *Payment) Amount() money.Money  { return p.amount }
func (p *Payment) Status() Status       { return p.status }
func (p *Payment) Method() string       { return p.method }
func (p *Payment) CreatedAt() time.Time { return p.createdAt }
func (p *Payment) IsRefund() bool       { return p.status == StatusRefunded }

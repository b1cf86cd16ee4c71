package query

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const paymentColumns = `id, booking_id, (amount * 100)::bigint, status, method, created_at`

func scanPayment(row interface{ Scan(...any) error }) (Payment, error) {
	var i Payment
	err := row.Scan(
		&i.ID,
		&i.BookingID,
		&i.AmountCents,
		&i.Status,
		&i.Method,
		&i.CreatedAt,
	)
	return i, err
}

const createPayment = `-- name: CreatePayment :one
INSERT INTO payments (booking_id, amount, status, method, created_at)
VALUES ($1, $2::bigint::numeric / 100, $3, $4, $5)
RETURNING ` + paymentColumns

type CreatePaymentParams struct {
	BookingID   int64
	AmountCents int64
	Status      string
	Method      string
	CreatedAt   pgtype.Timestamptz
}

func (q *Queries) CreatePayment(ctx context.Context, db DBTX, arg CreatePaymentParams) (Payment, error) {
	row := db.QueryRow(ctx, createPayment,
		arg.BookingID,
		arg.AmountCents,
		arg.Status,
		arg.Method,
		arg.CreatedAt,
	)
	return scanPayment(row)
}

const getPayment = `-- name: GetPayment :one
SELECT ` + paymentColumns + `
FROM payments
WHERE id = $1`

func (q *Queries) GetPayment(ctx context.Context, db DBTX, id int64) (Payment, error) {
	return scanPayment(db.QueryRow(ctx, getPayment, id))
}

const listPaymentsByBooking = `-- name: ListPaymentsByBooking :many
SELECT ` + paymentColumns + `
FROM payments
WHERE booking_id = $1
ORDER BY created_at, id`

func (q *Queries) ListPaymentsByBooking(ctx context.Context, db DBTX, bookingID int64) ([]Payment, error) {
	rows, err := db.Query(ctx, listPaymentsByBooking, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Payment{}
	for rows.Next() {
		i, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const sumPaymentsByBooking = `-- name: SumPaymentsByBooking :one
SELECT
	(COALESCE(SUM(amount) FILTER (WHERE status = 'completed'), 0) * 100)::bigint,
	(COALESCE(SUM(amount) FILTER (WHERE status = 'refunded'), 0) * 100)::bigint
FROM payments
WHERE booking_id = $1`

type SumPaymentsByBookingRow struct {
	PaidCents     int64
	RefundedCents int64
}

func (q *Queries) SumPaymentsByBooking(ctx context.Context, db DBTX, bookingID int64) (SumPaymentsByBookingRow, error) {
	var i SumPaymentsByBookingRow
	err := db.QueryRow(ctx, sumPaymentsByBooking, bookingID).Scan(&i.PaidCents, &i.RefundedCents)
	return i, err
}

// One statement, so the booking total and both ledger sums come from the
// same snapshot.
const getPaymentSummary = `-- name: GetPaymentSummary :one
SELECT
	b.id,
	b.user_id,
	(b.total_price * 100)::bigint,
	b.status,
	(COALESCE(SUM(p.amount) FILTER (WHERE p.status = 'completed'), 0) * 100)::bigint,
	(COALESCE(SUM(p.amount) FILTER (WHERE p.status = 'refunded'), 0) * 100)::bigint
FROM bookings b
LEFT JOIN payments p ON p.booking_id = b.id
WHERE b.id = $1
GROUP BY b.id`

type GetPaymentSummaryRow struct {
	BookingID       int64
	UserID          uuid.UUID
	TotalPriceCents int64
	Status          string
	PaidCents       int64
	RefundedCents   int64
}

func (q *Queries) GetPaymentSummary(ctx context.Context, db DBTX, bookingID int64) (GetPaymentSummaryRow, error) {
	var i GetPaymentSummaryRow
	err := db.QueryRow(ctx, getPaymentSummary, bookingID).Scan(
		&i.BookingID,
		&i.UserID,
		&i.TotalPriceCents,
		&i.Status,
		&i.PaidCents,
		&i.RefundedCents,
	)
	return i, err
}

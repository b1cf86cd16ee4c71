package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"hotel-booking/internal/domain/auth"
	"hotel-booking/internal/domain/booking"
	"hotel-booking/internal/domain/money"
	"hotel-booking/internal/domain/payment"
	"hotel-booking/internal/infra"
	"hotel-booking/internal/pkg/clock"
	"hotel-booking/internal/pkg/errs"
	"hotel-booking/internal/pkg/metrics"
	"hotel-booking/internal/usecase/queries"
	"hotel-booking/internal/usecase/shared"
)

type RecordPaymentInput struct {
	Amount string
	Method string
}

type RefundInput struct {
	Amount string
}

type RecordPaymentResult struct {
	Payment    *queries.PaymentView
	Summary    *queries.PaymentSummaryView
	IsReplayed bool
}

type PaymentCommands interface {
	// Record appends a completed payment and reconciles the booking status
	// from the whole ledger. A non-empty idempotencyKey makes retries replay
	// the first result.
	Record(ctx context.Context, actor auth.Principal, bookingID int64, input RecordPaymentInput, idempotencyKey string) (*RecordPaymentResult, error)
	// Refund appends a refunded row. The booking status is left as it is.
	Refund(ctx context.Context, actor auth.Principal, bookingID int64, input RefundInput) (*queries.PaymentView, error)
}

type paymentCommandsImpl struct {
	uow            shared.UnitOfWork
	paymentQueries queries.PaymentQueries
	idempotency    shared.IdempotencyStore
	publisher      shared.EventPublisher
	metrics        *metrics.Metrics
	clock          clock.Clock
}

func NewPaymentCommands(
	uow shared.UnitOfWork,
	paymentQueries queries.PaymentQueries,
	idempotency shared.IdempotencyStore,
	publisher shared.EventPublisher,
	m *metrics.Metrics,
	clk clock.Clock,
) PaymentCommands {
	return &paymentCommandsImpl{
		uow:            uow,
		paymentQueries: paymentQueries,
		idempotency:    idempotency,
		publisher:      publisher,
		metrics:        m,
		clock:          clk,
	}
}

func (c *paymentCommandsImpl) Record(
	ctx context.Context,
	actor auth.Principal,
	bookingID int64,
	input RecordPaymentInput,
	idempotencyKey string,
) (*RecordPaymentResult, error) {
	amount, err := money.Parse(input.Amount)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}
	now := c.clock.Now()
	p, err := payment.NewPayment(bookingID, amount, input.Method, now)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	if idempotencyKey != "" {
		key := actor.UserID.String() + ":" + idempotencyKey
		fingerprint := requestFingerprint(bookingID, p)

		replayed, err := c.claimIdempotencyKey(ctx, actor, bookingID, key, fingerprint)
		if err != nil || replayed != nil {
			return replayed, err
		}

		result, err := c.recordPayment(ctx, actor, p, now)
		if err != nil {
			if releaseErr := c.idempotency.Release(ctx, key); releaseErr != nil {
				slog.Warn("failed to release idempotency key", "error", releaseErr.Error())
			}
			return nil, err
		}
		if completeErr := c.completeIdempotencyKey(ctx, key, fingerprint, result.Payment.ID); completeErr != nil {
			slog.Warn("failed to complete idempotency key", "payment_id", result.Payment.ID, "error", completeErr.Error())
		}
		return result, nil
	}

	return c.recordPayment(ctx, actor, p, now)
}

func (c *paymentCommandsImpl) claimIdempotencyKey(
	ctx context.Context,
	actor auth.Principal,
	bookingID int64,
	key, fingerprint string,
) (*RecordPaymentResult, error) {
	existing, err := c.idempotency.Claim(ctx, key, fingerprint)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if existing == nil {
		return nil, nil
	}

	if existing.Fingerprint != fingerprint {
		return nil, ErrIdempotencyKeyReused
	}
	switch existing.State {
	case shared.IdempotencyCompleted:
		view, err := c.paymentQueries.GetByIDSystem(ctx, existing.PaymentID)
		if err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		summary, err := c.paymentQueries.Summary(ctx, actor, bookingID)
		if err != nil {
			return nil, err
		}
		return &RecordPaymentResult{Payment: view, Summary: summary, IsReplayed: true}, nil
	case shared.IdempotencyProcessing:
		return nil, ErrIdempotencyInProgress
	default:
		return nil, errs.Newf("invalid idempotency state %q", existing.State)
	}
}

// completeIdempotencyKey tries Complete twice. The payment is already
// committed when it runs.
func (c *paymentCommandsImpl) completeIdempotencyKey(ctx context.Context, key, fingerprint string, paymentID int64) error {
	err := c.idempotency.Complete(ctx, key, fingerprint, paymentID)
	if err == nil {
		return nil
	}
	slog.Warn("retrying idempotency key completion", "payment_id", paymentID, "error", err.Error())
	return c.idempotency.Complete(ctx, key, fingerprint, paymentID)
}

func (c *paymentCommandsImpl) recordPayment(
	ctx context.Context,
	actor auth.Principal,
	p *payment.Payment,
	now time.Time,
) (*RecordPaymentResult, error) {
	var (
		saved  *payment.Payment
		status booking.Status
		owner  = actor.UserID
	)
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := lockReferencedBooking(ctx, tx, p.BookingID())
		if err != nil {
			return err
		}
		if !actor.CanActOn(b.UserID()) {
			return ErrAccessDenied
		}
		if b.Status().IsTerminal() {
			return ErrBookingNotPayable
		}

		saved, err = tx.Payments().Append(ctx, p)
		if err != nil {
			return markAppendErr(err)
		}

		// Resum the full ledger under the booking lock
		totals, err := tx.Reads().LedgerTotals(ctx, b.ID())
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		status = payment.ReconcileStatus(b.TotalPrice(), totals)
		if status != b.Status() {
			if err := b.ApplyStatus(status, now); err != nil {
				return errs.Mark(err, ErrBookingNotPayable)
			}
			if err := tx.Bookings().UpdateStatus(ctx, b); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}
		owner = b.UserID()
		return nil
	})
	if err != nil {
		return nil, markPaymentErr(err)
	}

	c.metrics.PaymentAppended(string(saved.Status()), saved.Amount().Cents())
	publishAfterCommit(ctx, c.publisher, shared.Event{
		Type:       shared.EventPaymentRecorded,
		BookingID:  saved.BookingID(),
		UserID:     owner,
		Status:     status.String(),
		PaymentID:  saved.ID(),
		Amount:     saved.Amount().String(),
		OccurredAt: now,
	})

	view, err := c.paymentQueries.GetByIDSystem(ctx, saved.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	summary, err := c.paymentQueries.Summary(ctx, actor, saved.BookingID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return &RecordPaymentResult{Payment: view, Summary: summary}, nil
}

func (c *paymentCommandsImpl) Refund(ctx context.Context, actor auth.Principal, bookingID int64, input RefundInput) (*queries.PaymentView, error) {
	if !actor.IsAdmin() {
		return nil, ErrAccessDenied
	}

	amount, err := money.Parse(input.Amount)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}
	if err := payment.ValidateAmount(amount); err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	now := c.clock.Now()
	var (
		saved *payment.Payment
		owner = actor.UserID
	)
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := lockReferencedBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}

		totals, err := tx.Reads().LedgerTotals(ctx, b.ID())
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		refund, err := payment.NewRefund(b.ID(), amount, totals, now)
		if err != nil {
			return errs.Mark(err, ErrRefundRejected)
		}

		saved, err = tx.Payments().Append(ctx, refund)
		if err != nil {
			return markAppendErr(err)
		}
		owner = b.UserID()
		return nil
	})
	if err != nil {
		return nil, markPaymentErr(err)
	}

	c.metrics.PaymentAppended(string(saved.Status()), saved.Amount().Cents())
	publishAfterCommit(ctx, c.publisher, shared.Event{
		Type:       shared.EventPaymentRefunded,
		BookingID:  saved.BookingID(),
		UserID:     owner,
		PaymentID:  saved.ID(),
		Amount:     saved.Amount().String(),
		OccurredAt: now,
	})

	view, err := c.paymentQueries.GetByIDSystem(ctx, saved.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

// lockReferencedBooking reports a missing booking as a conflict on the
// reference rather than a missing resource.
func lockReferencedBooking(ctx context.Context, tx shared.Tx, bookingID int64) (*booking.Booking, error) {
	b, err := lockBooking(ctx, tx, bookingID)
	if errs.Is(err, ErrBookingNotFound) {
		return nil, errs.Mark(&BookingRefError{BookingID: bookingID}, ErrBookingReference)
	}
	return b, err
}

func markAppendErr(err error) error {
	if infra.IsKind(err, infra.KindOutOfRange) {
		return errs.Mark(err, ErrValidation)
	}
	return errs.Mark(err, ErrDatabaseOperationFailed)
}

func markPaymentErr(err error) error {
	for _, known := range []error{
		ErrBookingReference, ErrBookingNotFound, ErrAccessDenied, ErrBookingNotPayable,
		ErrRefundRejected, ErrValidation, ErrDatabaseOperationFailed,
	} {
		if errs.Is(err, known) {
			return err
		}
	}
	return errs.Mark(err, ErrDatabaseOperationFailed)
}

func requestFingerprint(bookingID int64, p *payment.Payment) string {
	data, _ := json.Marshal(struct {
		BookingID   int64  `json:"booking_id"`
		AmountCents int64  `json:"amount_cents"`
		Method      string `json:"method"`
	}{bookingID, p.Amount().Cents(), p.Method()})
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

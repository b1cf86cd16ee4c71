package shared

import "context"

type IdempotencyState string

const (
	IdempotencyProcessing IdempotencyState = "processing"
	IdempotencyCompleted  IdempotencyState = "completed"
)

type IdempotencyRecord struct {
	State       IdempotencyState `json:"state"`
	Fingerprint string           `json:"fingerprint"`
	PaymentID   int64            `json:"payment_id,omitempty"`
}

// IdempotencyStore remembers client-supplied keys for retried payment
// requests.
type IdempotencyStore interface {
	// Claim reserves key for a request with the given fingerprint. It returns
	// nil when this call made the reservation, or the record stored earlier.
	Claim(ctx context.Context, key, fingerprint string) (*IdempotencyRecord, error)
	Complete(ctx context.Context, key, fingerprint string, paymentID int64) error
	// Release drops a reservation whose request failed so it can be retried.
	Release(ctx context.Context, key string) error
}

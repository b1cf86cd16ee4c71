//go:build e2e

package payment_test

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http"
	"testing"

	"hotel-booking/internal/domain/money"
	"hotel-booking/internal/domain/user"
	"hotel-booking/internal/handler/dto/request"
	resdto "hotel-booking/internal/handler/dto/response"
	"hotel-booking/tests/common/authtest"
	"hotel-booking/tests/common/dbtest"
	"hotel-booking/tests/common/httptest"
	"hotel-booking/tests/e2e"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type paymentSuite struct {
	e2e.SharedSuite
}

func TestPaymentSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(paymentSuite))
}

// bookTwoNights books a 1000.00 room for two nights, a 2000.00 total.
func (s *paymentSuite) bookTwoNights(token string) int64 {
	t := s.T()

	roomID := dbtest.CreateTestRoom(t, s.DB, "101", "1000.00", 2)
	body := request.CreateBookingRequest{CheckInDate: "2025-01-01", CheckOutDate: "2025-01-03", RoomIDs: []int64{roomID}}
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/bookings", body, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var res resdto.BookingResponse
	httptest.DecodeJSON(t, w, &res)
	require.Equal(t, "2000.00", res.TotalPrice.String())
	return res.ID
}

func paymentsURL(bookingID int64) string {
	return fmt.Sprintf("/api/bookings/%d/payments", bookingID)
}

func refundsURL(bookingID int64) string {
	return fmt.Sprintf("/api/bookings/%d/refunds", bookingID)
}

func (s *paymentSuite) pay(token string, bookingID int64, amount string) *resdto.RecordPaymentResponse {
	t := s.T()

	body := request.RecordPaymentRequest{Amount: json.Number(amount), Method: "card"}
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, paymentsURL(bookingID), body, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var res resdto.RecordPaymentResponse
	httptest.DecodeJSON(t, w, &res)
	return &res
}

func (s *paymentSuite) TestPartialThenPaid() {
	s.Run("status follows the ledger", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "guest@example.com", string(user.RoleCustomer))
		bookingID := s.bookTwoNights(token)

		first := s.pay(token, bookingID, "1000.00")
		require.Equal(t, "partial", first.BookingStatus)
		require.Equal(t, "1000.00", first.Summary.NetPaid.String())
		require.Equal(t, "partial", dbtest.BookingStatus(t, s.DB, bookingID))

		second := s.pay(token, bookingID, "1000.00")
		require.Equal(t, "paid", second.BookingStatus)
		require.Equal(t, "2000.00", second.Summary.TotalPaid.String())
		require.Equal(t, "paid", dbtest.BookingStatus(t, s.DB, bookingID))

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, paymentsURL(bookingID), nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var ledger []*resdto.PaymentResponse
		httptest.DecodeJSON(t, w, &ledger)
		require.Len(t, ledger, 2)
		require.Equal(t, 2, dbtest.CountRows(t, s.DB, "payments"))
	})

	s.Run("overpayment still reads as paid", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "guest@example.com", string(user.RoleCustomer))
		bookingID := s.bookTwoNights(token)

		res := s.pay(token, bookingID, "2500.00")
		require.Equal(t, "paid", res.BookingStatus)
	})
}

func (s *paymentSuite) TestRefunds() {
	s.Run("refund above net paid is rejected", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "guest@example.com", string(user.RoleCustomer))
		bookingID := s.bookTwoNights(token)
		s.pay(token, bookingID, "2000.00")

		adminToken := authtest.LoginAdmin(t, s.Router)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, refundsURL(bookingID),
			request.RefundRequest{Amount: json.Number("2500.00")}, adminToken)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
		require.Equal(t, 1, dbtest.CountRows(t, s.DB, "payments"))

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, refundsURL(bookingID),
			request.RefundRequest{Amount: json.Number("2000.00")}, adminToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var refund resdto.PaymentResponse
		httptest.DecodeJSON(t, w, &refund)
		require.Equal(t, "refunded", refund.Status)
		require.Equal(t, "2000.00", refund.Amount.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, paymentsURL(bookingID)+"/summary", nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var summary resdto.PaymentSummaryResponse
		httptest.DecodeJSON(t, w, &summary)
		require.Equal(t, "0.00", summary.NetPaid.String())
		require.Equal(t, "2000.00", summary.TotalRefunded.String())
		require.Equal(t, 2, dbtest.CountRows(t, s.DB, "payments"))
	})

	s.Run("customers cannot refund", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "guest@example.com", string(user.RoleCustomer))
		bookingID := s.bookTwoNights(token)
		s.pay(token, bookingID, "500.00")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, refundsURL(bookingID),
			request.RefundRequest{Amount: json.Number("100.00")}, token)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})
}

func (s *paymentSuite) summary(token string, bookingID int64) resdto.PaymentSummaryResponse {
	t := s.T()

	w := httptest.PerformRequest(t, s.Router, http.MethodGet, paymentsURL(bookingID)+"/summary", nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res resdto.PaymentSummaryResponse
	httptest.DecodeJSON(t, w, &res)
	return res
}

func (s *paymentSuite) TestSummaryMatchesRandomLedger() {
	for _, seed := range []uint64{1, 7, 42} {
		s.Run(fmt.Sprintf("seed %d", seed), func() {
			t := s.T()
			rng := rand.New(rand.NewPCG(seed, seed*31))

			token := authtest.CreateAndLogin(t, s.DB, s.Router, "guest@example.com", string(user.RoleCustomer))
			adminToken := authtest.LoginAdmin(t, s.Router)
			bookingID := s.bookTwoNights(token)
			otherID := s.bookTwoNights(authtest.CreateAndLogin(t, s.DB, s.Router, "other@example.com", string(user.RoleCustomer)))

			var paid, refunded int64
			rows := 5 + rng.IntN(25)
			for range rows {
				cents := 1 + rng.Int64N(150_000)
				if rng.IntN(3) == 0 {
					dbtest.InsertPayment(t, s.DB, bookingID, cents, "refunded")
					refunded += cents
				} else {
					dbtest.InsertPayment(t, s.DB, bookingID, cents, "completed")
					paid += cents
				}
				// Rows on another booking must not leak into the sums
				dbtest.InsertPayment(t, s.DB, otherID, 1+rng.Int64N(1_000), "completed")
			}

			// One row through the API so the workflow and raw inserts agree
			viaAPI := s.pay(token, bookingID, "12.34")
			paid += 1234
			require.Equal(t, money.FromCents(paid), viaAPI.Summary.TotalPaid)

			if net := paid - refunded; net > 0 {
				refundCents := 1 + rng.Int64N(net)
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, refundsURL(bookingID),
					request.RefundRequest{Amount: json.Number(money.FromCents(refundCents).String())}, adminToken)
				require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
				refunded += refundCents
			}

			got := s.summary(token, bookingID)
			require.Equal(t, bookingID, got.BookingID)
			require.Equal(t, money.FromCents(paid).String(), got.TotalPaid.String())
			require.Equal(t, money.FromCents(refunded).String(), got.TotalRefunded.String())
			require.Equal(t, money.FromCents(paid-refunded).FloorZero().String(), got.NetPaid.String())
			require.Equal(t, rows*2+2, dbtest.CountRows(t, s.DB, "payments"))
		})
	}
}

func (s *paymentSuite) TestUnknownBookingIsConflict() {
	s.Run("payment and refund name the missing booking", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "guest@example.com", string(user.RoleCustomer))
		adminToken := authtest.LoginAdmin(t, s.Router)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, paymentsURL(999999),
			request.RecordPaymentRequest{Amount: json.Number("10.00")}, token)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
		require.Contains(t, w.Body.String(), `"booking_id":999999`)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, refundsURL(999999),
			request.RefundRequest{Amount: json.Number("10.00")}, adminToken)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
		require.Equal(t, 0, dbtest.CountRows(t, s.DB, "payments"))
	})
}

func (s *paymentSuite) TestRecordPaymentValidation() {
	tests := []struct {
		name   string
		amount string
	}{
		{name: "zero", amount: "0"},
		{name: "negative", amount: "-10.00"},
		{name: "too many decimals", amount: "10.005"},
		{name: "above column maximum", amount: "100000000000.00"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			token := authtest.CreateAndLogin(t, s.DB, s.Router, "guest@example.com", string(user.RoleCustomer))
			bookingID := s.bookTwoNights(token)

			body := request.RecordPaymentRequest{Amount: json.Number(tt.amount)}
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, paymentsURL(bookingID), body, token)
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			require.Equal(t, 0, dbtest.CountRows(t, s.DB, "payments"))
		})
	}
}

func (s *paymentSuite) TestCancelledBookingRejectsPayment() {
	s.Run("no payment after cancel", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "guest@example.com", string(user.RoleCustomer))
		bookingID := s.bookTwoNights(token)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf("/api/bookings/%d/cancel", bookingID), nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		body := request.RecordPaymentRequest{Amount: json.Number("100.00")}
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, paymentsURL(bookingID), body, token)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
		require.Equal(t, "cancelled", dbtest.BookingStatus(t, s.DB, bookingID))
	})
}

func (s *paymentSuite) TestOtherCustomersLedger() {
	s.Run("hidden from other customers", func() {
		t := s.T()

		owner := authtest.CreateAndLogin(t, s.DB, s.Router, "guest@example.com", string(user.RoleCustomer))
		other := authtest.CreateAndLogin(t, s.DB, s.Router, "other@example.com", string(user.RoleCustomer))
		bookingID := s.bookTwoNights(owner)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, paymentsURL(bookingID), nil, other)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

		body := request.RecordPaymentRequest{Amount: json.Number("100.00")}
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, paymentsURL(bookingID), body, other)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})
}

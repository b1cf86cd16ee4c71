package api

import (
	"net/http"
	"strings"

	reqdto "hotel-booking/internal/handler/dto/request"
	resdto "hotel-booking/internal/handler/dto/response"
	"hotel-booking/internal/handler/httperr"
	"hotel-booking/internal/usecase/commands"
	"hotel-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

const (
	idempotencyKeyHeader   = "Idempotency-Key"
	idempotentReplayHeader = "Idempotent-Replayed"
	maxIdempotencyKeyLen   = 255
)

var errIdempotencyKeyTooLong = httperr.Sentinel("idempotency key too long")

type PaymentHandler struct {
	cmds commands.PaymentCommands
	q    queries.PaymentQueries
}

func NewPaymentHandler(cmds commands.PaymentCommands, q queries.PaymentQueries) *PaymentHandler {
	return &PaymentHandler{cmds: cmds, q: q}
}

// @Summary Record payment
// @Description Appends a completed payment and recomputes the booking status from the full ledger.
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Param Idempotency-Key header string false "Replays the first result for retried requests"
// @Param request body reqdto.RecordPaymentRequest true "Payment"
// @Success 201 {object} resdto.RecordPaymentResponse
// @Success 200 {object} resdto.RecordPaymentResponse "Replayed"
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/bookings/{id}/payments [post]
func (h *PaymentHandler) Record(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	key := strings.TrimSpace(c.GetHeader(idempotencyKeyHeader))
	if len(key) > maxIdempotencyKeyLen {
		httperr.AbortWithError(c, http.StatusBadRequest, errIdempotencyKeyTooLong, "Idempotency key is too long", nil)
		return
	}
	var req reqdto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.cmds.Record(c.Request.Context(), principal, bookingID, req.ToInput(), key)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		c.Header(idempotentReplayHeader, "true")
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromRecordPayment(result.Payment, result.Summary))
}

// @Summary Refund
// @Description Appends a refunded ledger row. Admin only; the booking status is unchanged.
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Param request body reqdto.RefundRequest true "Refund"
// @Success 201 {object} resdto.PaymentResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/bookings/{id}/refunds [post]
func (h *PaymentHandler) Refund(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req reqdto.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	refund, err := h.cmds.Refund(c.Request.Context(), principal, bookingID, req.ToInput())
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromPaymentView(refund))
}

// @Summary Payment ledger
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200 {array} resdto.PaymentResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/{id}/payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	payments, err := h.q.ListByBooking(c.Request.Context(), principal, bookingID)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPaymentViews(payments))
}

// @Summary Payment summary
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} resdto.PaymentSummaryResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/{id}/payments/summary [get]
func (h *PaymentHandler) Summary(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	summary, err := h.q.Summary(c.Request.Context(), principal, bookingID)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPaymentSummaryView(summary))
}

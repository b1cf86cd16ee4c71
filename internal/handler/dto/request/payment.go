package request

import (
	"encoding/json"

	"hotel-booking/internal/usecase/commands"
)

// Amounts accept a JSON number or a numeric string ("150.00"); precision
// beyond cents is rejected by the use case.
type RecordPaymentRequest struct {
	Amount json.Number `json:"amount" binding:"required"`
	Method string      `json:"method" binding:"omitempty,max=50"`
}

func (r *RecordPaymentRequest) ToInput() commands.RecordPaymentInput {
	return commands.RecordPaymentInput{
		Amount: r.Amount.String(),
		Method: r.Method,
	}
}

type RefundRequest struct {
	Amount json.Number `json:"amount" binding:"required"`
}

func (r *RefundRequest) ToInput() commands.RefundInput {
	return commands.RefundInput{Amount: r.Amount.String()}
}

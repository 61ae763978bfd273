// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Payment is one recorded installment against an assignment. Append-only; the
// sum of payments for an assignment never exceeds the assignment's total cost.
type Payment struct {
	ID           uuid.UUID `json:"id"`            // The unique identifier of the payment.
	AssignmentID uuid.UUID `json:"assignment_id"` // The assignment being paid down.
	Amount       int64     `json:"amount"`        // Paid amount, in minor currency units; always positive.
	Method       string    `json:"method"`        // Free-form payment method (cash, transfer, ...).
	RecordedAt   time.Time `json:"recorded_at"`   // Timestamp of recording.
}

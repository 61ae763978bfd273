package usecase

import (
	"context"

	"plunder/internal/domain/entity"

	"github.com/google/uuid"
)

// Balance is the aggregated financial position of one pirate within a campaign.
type Balance struct {
	Owed        int64 `json:"owed"`        // Sum of total costs across the pirate's assignments.
	Paid        int64 `json:"paid"`        // Sum of recorded payments.
	Outstanding int64 `json:"outstanding"` // Owed minus Paid.
}

// LedgerUsecase records payments, aggregates balances and keeps the external
// debt collaborator in sync. The core's assignment and payment records are the
// single source of truth; reconciliation only ever pushes outward.
type LedgerUsecase interface {
	// RecordPayment appends a payment against an assignment. Rejects
	// non-positive amounts and any amount that would push the paid sum past the
	// assignment's total cost. Updates the assignment's payment status and
	// upserts the remaining outstanding debt, keyed by assignment ID so caller
	// retries are idempotent.
	RecordPayment(ctx context.Context, assignmentID uuid.UUID, amount int64, method string) (*entity.Payment, error)

	// Balance aggregates owed, paid and outstanding for a pirate within a
	// campaign. Pure read; no side effects.
	Balance(ctx context.Context, campaignID uuid.UUID, participantAlias string) (*Balance, error)

	// Reconcile compares the internally computed outstanding balance with the
	// debt collaborator's view and re-pushes the per-assignment outstanding on
	// mismatch. Returns whether a re-push happened. The core's own records are
	// never adjusted.
	Reconcile(ctx context.Context, campaignID uuid.UUID, participantAlias string) (bool, error)
}

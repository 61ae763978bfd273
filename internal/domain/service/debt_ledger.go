package service

import "context"

// DebtLedger is the external debt collaborator. The core's assignment and
// payment records are the single source of truth for financial state; the debt
// ledger only ever receives pushes and is never read back into core records.
type DebtLedger interface {
	// UpsertDebt sets the outstanding amount owed by a participant alias for the
	// given idempotency key (one key per assignment). Replaying the same push is
	// harmless, which makes caller-side retries safe.
	UpsertDebt(ctx context.Context, participantAlias string, outstanding int64, idempotencyKey string) error

	// OutstandingFor returns the collaborator's current view of the total amount
	// owed by a participant alias. Used only to detect drift during
	// reconciliation; the core never adjusts its own records from this value.
	OutstandingFor(ctx context.Context, participantAlias string) (int64, error)
}

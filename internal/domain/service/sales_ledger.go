package service

import "context"

// SalesLedger is the external sales/inventory collaborator. It records the
// underlying inventory movement behind an assignment and hands back an opaque
// sale reference. The collaborator performs FIFO stock decrement on its own
// inventory representation.
//
// The engine calls RecordConsumption inside the assignment transaction; a
// failure aborts the whole assignment, so no assignment is ever persisted
// without its matching sale reference. The engine performs no retries of its
// own; transient failures surface to the caller.
type SalesLedger interface {
	// RecordConsumption records a sale of quantity units of itemRef to the given
	// participant alias and returns the opaque sale reference.
	RecordConsumption(ctx context.Context, itemRef string, participantAlias string, quantity, unitPrice int64) (saleRef string, err error)

	// RegisterIntake registers quantity units of inventory for itemRef. Called
	// once when an item joins a campaign so later consumption has lots to drain.
	RegisterIntake(ctx context.Context, itemRef string, quantity int64) error
}

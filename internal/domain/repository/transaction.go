package repository

import (
	"context"

	"plunder/internal/domain/service"
)

// TransactionManager defines the interface for managing database transactions.
// This allows the use case layer to handle transactions without depending on a specific DB driver like GORM.
type TransactionManager interface {
	// Execute runs a function within a database transaction.
	// If the function returns an error, the transaction is rolled back. Otherwise, it's committed.
	// All repository operations within the function will use the same database transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides a way to get repository instances that are bound to a specific transaction.
// This ensures all repository operations within a transaction use the same database connection.
type RepositoryFactory interface {
	// NewCampaignRepository returns a CampaignRepository instance bound to the current transaction.
	NewCampaignRepository() CampaignRepository

	// NewPirateRepository returns a PirateRepository instance bound to the current transaction.
	NewPirateRepository() PirateRepository

	// NewItemRepository returns an ItemRepository instance bound to the current transaction.
	NewItemRepository() ItemRepository

	// NewAssignmentRepository returns an AssignmentRepository instance bound to the current transaction.
	NewAssignmentRepository() AssignmentRepository

	// NewPaymentRepository returns a PaymentRepository instance bound to the current transaction.
	NewPaymentRepository() PaymentRepository

	// NewSalesLedger returns a SalesLedger instance bound to the current transaction,
	// so the external sale record commits or rolls back with the assignment.
	NewSalesLedger() service.SalesLedger

	// NewDebtLedger returns a DebtLedger instance bound to the current transaction.
	NewDebtLedger() service.DebtLedger
}

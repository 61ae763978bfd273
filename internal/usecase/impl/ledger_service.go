package impl

import (
	"context"
	"log/slog"
	"time"

	"plunder/internal/domain/entity"
	domainerrors "plunder/internal/domain/errors"
	"plunder/internal/domain/repository"
	"plunder/internal/domain/service"
	"plunder/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// ledgerService implements the LedgerUsecase interface. Assignments and
// payments held by the core are the single source of truth for financial
// state; the external debt collaborator only ever receives pushes.
type ledgerService struct {
	txManager      repository.TransactionManager
	assignmentRepo repository.AssignmentRepository
	paymentRepo    repository.PaymentRepository
	pirateRepo     repository.PirateRepository
	debtLedger     service.DebtLedger
	logger         *slog.Logger
}

// LedgerServiceParams holds dependencies for LedgerService, injected by Fx.
type LedgerServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	AssignmentRepo repository.AssignmentRepository
	PaymentRepo    repository.PaymentRepository
	PirateRepo     repository.PirateRepository
	DebtLedger     service.DebtLedger
	Logger         *slog.Logger
}

// NewLedgerService is the constructor for ledgerService. It receives all dependencies as interfaces.
func NewLedgerService(params LedgerServiceParams) usecase.LedgerUsecase {
	return &ledgerService{
		txManager:      params.TxManager,
		assignmentRepo: params.AssignmentRepo,
		paymentRepo:    params.PaymentRepo,
		pirateRepo:     params.PirateRepo,
		debtLedger:     params.DebtLedger,
		logger:         params.Logger,
	}
}

// RecordPayment appends a payment against an assignment. Overpayment is refused
// with no state change; the remaining outstanding is pushed to the debt
// collaborator keyed by the assignment ID, so replays are idempotent.
func (srv *ledgerService) RecordPayment(ctx context.Context, assignmentID uuid.UUID, amount int64, method string) (*entity.Payment, error) {
	if amount <= 0 {
		return nil, domainerrors.ErrAmountInvalid
	}

	var payment *entity.Payment
	err := srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		assignmentRepo := f.NewAssignmentRepository()
		assignment, err := assignmentRepo.FindByID(ctx, assignmentID)
		if err != nil {
			if errors.Is(err, repository.ErrAssignmentNotFound) {
				return domainerrors.ErrAssignmentNotFound
			}

			return errors.Wrap(err, "failed to find assignment")
		}

		paymentRepo := f.NewPaymentRepository()
		paid, err := paymentRepo.SumByAssignment(ctx, assignmentID)
		if err != nil {
			return errors.Wrap(err, "failed to sum payments")
		}

		if paid+amount > assignment.TotalCost {
			return domainerrors.ErrOverpayment.WithDetails(assignmentID.String())
		}

		payment = &entity.Payment{
			ID:           uuid.New(),
			AssignmentID: assignmentID,
			Amount:       amount,
			Method:       method,
			RecordedAt:   time.Now(),
		}
		if err := paymentRepo.Create(ctx, payment); err != nil {
			return errors.Wrap(err, "failed to create payment")
		}

		newStatus := entity.PaymentStatusFor(paid+amount, assignment.TotalCost)
		if newStatus != assignment.PaymentStatus {
			if err := assignmentRepo.UpdatePaymentStatus(ctx, assignmentID, newStatus); err != nil {
				return errors.Wrap(err, "failed to update payment status")
			}
		}

		pirate, err := f.NewPirateRepository().FindByID(ctx, assignment.PirateID)
		if err != nil {
			return errors.Wrap(err, "failed to find pirate for debt push")
		}

		outstanding := assignment.TotalCost - (paid + amount)
		if err := f.NewDebtLedger().UpsertDebt(ctx, pirate.Alias, outstanding, assignmentID.String()); err != nil {
			return errors.Wrap(err, "debt ledger rejected push")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.logger.InfoContext(ctx, "payment recorded",
		slog.String("assignmentID", assignmentID.String()),
		slog.Int64("amount", amount),
		slog.String("method", method),
	)

	return payment, nil
}

// Balance aggregates owed, paid and outstanding for a pirate within a campaign.
// Pure read; no side effects.
func (srv *ledgerService) Balance(ctx context.Context, campaignID uuid.UUID, participantAlias string) (*usecase.Balance, error) {
	pirate, err := srv.pirateRepo.FindByAlias(ctx, campaignID, participantAlias)
	if err != nil {
		if errors.Is(err, repository.ErrPirateNotFound) {
			return nil, domainerrors.ErrPirateNotFound
		}

		return nil, errors.Wrap(err, "failed to find pirate")
	}

	assignments, err := srv.assignmentRepo.ListByPirate(ctx, pirate.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list assignments")
	}

	balance := &usecase.Balance{}
	for _, assignment := range assignments {
		paid, err := srv.paymentRepo.SumByAssignment(ctx, assignment.ID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to sum payments")
		}
		balance.Owed += assignment.TotalCost
		balance.Paid += paid
	}
	balance.Outstanding = balance.Owed - balance.Paid

	return balance, nil
}

// Reconcile compares the internally computed outstanding balance with the debt
// collaborator's view. On mismatch the core is authoritative: it re-pushes the
// per-assignment outstanding and never adjusts its own records.
func (srv *ledgerService) Reconcile(ctx context.Context, campaignID uuid.UUID, participantAlias string) (bool, error) {
	balance, err := srv.Balance(ctx, campaignID, participantAlias)
	if err != nil {
		return false, err
	}

	external, err := srv.debtLedger.OutstandingFor(ctx, participantAlias)
	if err != nil {
		return false, errors.Wrap(err, "failed to read external debt view")
	}

	if external == balance.Outstanding {
		return false, nil
	}

	srv.logger.WarnContext(ctx, "debt ledger drift detected, re-pushing",
		slog.String("participantAlias", participantAlias),
		slog.Int64("internalOutstanding", balance.Outstanding),
		slog.Int64("externalOutstanding", external),
	)

	pirate, err := srv.pirateRepo.FindByAlias(ctx, campaignID, participantAlias)
	if err != nil {
		return false, errors.Wrap(err, "failed to find pirate")
	}

	assignments, err := srv.assignmentRepo.ListByPirate(ctx, pirate.ID)
	if err != nil {
		return false, errors.Wrap(err, "failed to list assignments")
	}

	for _, assignment := range assignments {
		paid, err := srv.paymentRepo.SumByAssignment(ctx, assignment.ID)
		if err != nil {
			return false, errors.Wrap(err, "failed to sum payments")
		}
		if err := srv.debtLedger.UpsertDebt(ctx, participantAlias, assignment.TotalCost-paid, assignment.ID.String()); err != nil {
			return false, errors.Wrap(err, "debt ledger rejected re-push")
		}
	}

	return true, nil
}

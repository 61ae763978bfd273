package impl

import (
	"context"
	"log/slog"
	"time"

	"plunder/internal/domain/entity"
	domainerrors "plunder/internal/domain/errors"
	"plunder/internal/domain/repository"
	"plunder/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// defaultCasRetries bounds how often an assignment is retried after losing a
// compare-and-set race on the item's consumed quantity.
const defaultCasRetries = 3

// assignmentService implements the AssignmentUsecase interface. An assignment
// is one atomic unit of work: stock compare-and-set, external sale recording,
// the assignment row, the initial debt push and the campaign bookkeeping either
// all commit or all roll back.
type assignmentService struct {
	txManager      repository.TransactionManager
	assignmentRepo repository.AssignmentRepository
	casRetries     int
	logger         *slog.Logger
}

// AssignmentServiceParams holds dependencies for AssignmentService, injected by Fx.
type AssignmentServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	AssignmentRepo repository.AssignmentRepository
	Logger         *slog.Logger
}

// NewAssignmentService is the constructor for assignmentService. It receives all dependencies as interfaces.
func NewAssignmentService(params AssignmentServiceParams) usecase.AssignmentUsecase {
	return &assignmentService{
		txManager:      params.TxManager,
		assignmentRepo: params.AssignmentRepo,
		casRetries:     defaultCasRetries,
		logger:         params.Logger,
	}
}

// Assign records one consumption event. Racing assignments against the same
// item are serialized by the consumed-quantity compare-and-set: the loser
// retries with a fresh read, and the stock bound therefore holds under any
// interleaving.
func (srv *assignmentService) Assign(ctx context.Context, input *usecase.AssignInput) (*entity.Assignment, error) {
	if input.Quantity <= 0 {
		return nil, domainerrors.ErrQuantityInvalid
	}
	if input.UnitPrice < 0 {
		return nil, domainerrors.ErrAmountInvalid.WrapMessage("unit price is negative")
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var assignment *entity.Assignment
	var err error
	for attempt := 0; ; attempt++ {
		assignment, err = srv.assignOnce(ctx, input)
		if err == nil {
			return assignment, nil
		}
		if !errors.Is(err, repository.ErrItemStale) || attempt >= srv.casRetries {
			return nil, err
		}

		srv.logger.DebugContext(ctx, "assignment lost consumption race, retrying",
			slog.String("itemAlias", input.ItemAlias),
			slog.Int("attempt", attempt+1),
		)
	}
}

// assignOnce runs a single transactional attempt.
func (srv *assignmentService) assignOnce(ctx context.Context, input *usecase.AssignInput) (*entity.Assignment, error) {
	var assignment *entity.Assignment
	err := srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		campaignRepo := f.NewCampaignRepository()
		campaign, err := findCampaign(ctx, campaignRepo, input.CampaignID)
		if err != nil {
			return err
		}

		// The first assignment activates a Planning campaign; terminal states
		// accept nothing. A concurrent cancellation that commits first makes the
		// guarded update fail and aborts this transaction.
		switch campaign.Status {
		case entity.CampaignStatusPlanning:
			if err := campaignRepo.UpdateStatus(ctx, campaign.ID, entity.CampaignStatusPlanning, entity.CampaignStatusActive); err != nil {
				if errors.Is(err, repository.ErrCampaignStale) {
					return domainerrors.ErrStateTransition.WrapMessage("campaign changed state concurrently")
				}

				return errors.Wrap(err, "failed to activate campaign")
			}
			campaign.Status = entity.CampaignStatusActive
		case entity.CampaignStatusActive:
			// Proceed.
		default:
			return domainerrors.ErrCampaignClosed
		}

		pirate, err := f.NewPirateRepository().FindByAlias(ctx, input.CampaignID, input.ParticipantAlias)
		if err != nil {
			if errors.Is(err, repository.ErrPirateNotFound) {
				return domainerrors.ErrPirateNotFound
			}

			return errors.Wrap(err, "failed to find pirate")
		}

		itemRepo := f.NewItemRepository()
		item, err := itemRepo.FindByAlias(ctx, input.CampaignID, input.ItemAlias)
		if err != nil {
			if errors.Is(err, repository.ErrItemNotFound) {
				return domainerrors.ErrItemNotFound
			}

			return errors.Wrap(err, "failed to find item")
		}

		if item.ConsumedQty+input.Quantity > item.TargetQty {
			return domainerrors.ErrStockExceeded.WithDetails(item.Alias)
		}

		newConsumed := item.ConsumedQty + input.Quantity
		newStatus := entity.ItemStatusFor(newConsumed, item.TargetQty)
		if err := itemRepo.CasConsumed(ctx, item.ID, item.ConsumedQty, newConsumed, newStatus); err != nil {
			// ErrItemStale propagates untouched so the outer loop can retry.
			return err
		}

		// The sale is recorded inside the transaction: no assignment row ever
		// exists without its sale reference.
		saleRef, err := f.NewSalesLedger().RecordConsumption(ctx, item.ID.String(), pirate.Alias, input.Quantity, input.UnitPrice)
		if err != nil {
			return errors.Wrap(err, "sales ledger rejected consumption")
		}

		totalCost := input.Quantity * input.UnitPrice
		assignment = &entity.Assignment{
			ID:            uuid.New(),
			CampaignID:    input.CampaignID,
			ItemID:        item.ID,
			PirateID:      pirate.ID,
			Quantity:      input.Quantity,
			UnitPrice:     input.UnitPrice,
			TotalCost:     totalCost,
			PaymentStatus: entity.PaymentStatusPending,
			SaleRef:       saleRef,
			CreatedAt:     time.Now(),
		}

		if err := f.NewAssignmentRepository().Create(ctx, assignment); err != nil {
			return errors.Wrap(err, "failed to create assignment")
		}

		if err := f.NewDebtLedger().UpsertDebt(ctx, pirate.Alias, totalCost, assignment.ID.String()); err != nil {
			return errors.Wrap(err, "debt ledger rejected initial push")
		}

		if totalCost > 0 {
			if err := campaignRepo.AddToActualTotal(ctx, campaign.ID, totalCost); err != nil {
				return errors.Wrap(err, "failed to update campaign total")
			}
		}

		return srv.checkAutoCompletion(ctx, f, campaign, newStatus)
	})
	if err != nil {
		return nil, err
	}

	srv.logger.InfoContext(ctx, "assignment recorded",
		slog.String("assignmentID", assignment.ID.String()),
		slog.String("saleRef", assignment.SaleRef),
		slog.Int64("quantity", assignment.Quantity),
	)

	return assignment, nil
}

// checkAutoCompletion moves the campaign to Completed exactly when the last
// open item reaches its target. Evaluated after every assignment mutation.
func (srv *assignmentService) checkAutoCompletion(ctx context.Context, f repository.RepositoryFactory, campaign *entity.Campaign, itemStatus entity.ItemStatus) error {
	if itemStatus != entity.ItemStatusCompleted {
		return nil
	}

	incomplete, err := f.NewItemRepository().CountIncomplete(ctx, campaign.ID)
	if err != nil {
		return errors.Wrap(err, "failed to count incomplete items")
	}
	if incomplete > 0 {
		return nil
	}

	if err := f.NewCampaignRepository().UpdateStatus(ctx, campaign.ID, entity.CampaignStatusActive, entity.CampaignStatusCompleted); err != nil {
		if errors.Is(err, repository.ErrCampaignStale) {
			return domainerrors.ErrStateTransition.WrapMessage("campaign changed state concurrently")
		}

		return errors.Wrap(err, "failed to complete campaign")
	}

	srv.logger.InfoContext(ctx, "campaign auto-completed", slog.String("campaignID", campaign.ID.String()))

	return nil
}

// GetAssignment retrieves a single assignment by ID.
func (srv *assignmentService) GetAssignment(ctx context.Context, id uuid.UUID) (*entity.Assignment, error) {
	assignment, err := srv.assignmentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAssignmentNotFound) {
			return nil, domainerrors.ErrAssignmentNotFound
		}

		return nil, errors.Wrap(err, "failed to find assignment")
	}

	return assignment, nil
}

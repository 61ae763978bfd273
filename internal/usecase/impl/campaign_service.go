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

// campaignService implements the CampaignUsecase interface: campaign lifecycle,
// alias registration guards and the decrypt-on-demand reveal path.
type campaignService struct {
	txManager    repository.TransactionManager
	campaignRepo repository.CampaignRepository
	pirateRepo   repository.PirateRepository
	itemRepo     repository.ItemRepository
	keyManager   usecase.KeyManager
	anonymizer   usecase.Anonymizer
	logger       *slog.Logger
}

// CampaignServiceParams holds dependencies for CampaignService, injected by Fx.
type CampaignServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	CampaignRepo repository.CampaignRepository
	PirateRepo   repository.PirateRepository
	ItemRepo     repository.ItemRepository
	KeyManager   usecase.KeyManager
	Anonymizer   usecase.Anonymizer
	Logger       *slog.Logger
}

// NewCampaignService is the constructor for campaignService. It receives all dependencies as interfaces.
func NewCampaignService(params CampaignServiceParams) usecase.CampaignUsecase {
	return &campaignService{
		txManager:    params.TxManager,
		campaignRepo: params.CampaignRepo,
		pirateRepo:   params.PirateRepo,
		itemRepo:     params.ItemRepo,
		keyManager:   params.KeyManager,
		anonymizer:   params.Anonymizer,
		logger:       params.Logger,
	}
}

// CreateCampaign opens a campaign in Planning. The owner's key is derived here
// so that the first campaign of an account also provisions its key material.
func (srv *campaignService) CreateCampaign(ctx context.Context, input *usecase.CreateCampaignInput) (*entity.Campaign, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if _, err := srv.keyManager.GetOrCreateKey(ctx, input.OwnerID); err != nil {
		return nil, err
	}

	now := time.Now()
	campaign := &entity.Campaign{
		ID:          uuid.New(),
		OwnerID:     input.OwnerID,
		Name:        input.Name,
		Deadline:    input.Deadline,
		Status:      entity.CampaignStatusPlanning,
		TargetTotal: input.TargetTotal,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := srv.campaignRepo.Create(ctx, campaign); err != nil {
		return nil, errors.Wrap(err, "failed to create campaign")
	}

	srv.logger.InfoContext(ctx, "campaign created",
		slog.String("campaignID", campaign.ID.String()),
		slog.String("ownerID", campaign.OwnerID),
	)

	return campaign, nil
}

// GetCampaign retrieves a single campaign by ID.
func (srv *campaignService) GetCampaign(ctx context.Context, id uuid.UUID) (*entity.Campaign, error) {
	campaign, err := srv.campaignRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			return nil, domainerrors.ErrCampaignNotFound
		}

		return nil, errors.Wrap(err, "failed to find campaign")
	}

	return campaign, nil
}

// ListCampaigns retrieves all campaigns of one owning account.
func (srv *campaignService) ListCampaigns(ctx context.Context, ownerID string) ([]*entity.Campaign, error) {
	campaigns, err := srv.campaignRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list campaigns")
	}

	return campaigns, nil
}

// AddItem registers an item alias. Items may be added while Planning, or while
// Active as long as no pirate has joined yet; the first pirate locks the list.
func (srv *campaignService) AddItem(ctx context.Context, campaignID uuid.UUID, input *usecase.AddItemInput) (*entity.Item, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var item *entity.Item
	err := srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		campaign, err := findCampaign(ctx, f.NewCampaignRepository(), campaignID)
		if err != nil {
			return err
		}

		if err := srv.guardItemAddition(ctx, f, campaign); err != nil {
			return err
		}

		key, err := srv.keyManager.GetOrCreateKey(ctx, campaign.OwnerID)
		if err != nil {
			return err
		}

		itemRepo := f.NewItemRepository()
		alias, err := srv.issueAlias(ctx, input.CustomAlias, input.RealName, service.NamespaceItem, func(ctx context.Context, candidate string) (bool, error) {
			return itemRepo.AliasExists(ctx, campaignID, candidate)
		})
		if err != nil {
			return err
		}

		sealed, err := srv.anonymizer.Seal(input.RealName, key)
		if err != nil {
			return err
		}

		now := time.Now()
		item = &entity.Item{
			ID:         uuid.New(),
			CampaignID: campaignID,
			Alias:      alias,
			SealedName: sealed,
			Kind:       input.Kind,
			TargetQty:  input.TargetQty,
			Status:     entity.ItemStatusPending,
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		if err := itemRepo.Create(ctx, item); err != nil {
			if errors.Is(err, repository.ErrAliasExists) {
				return domainerrors.ErrAliasTaken.WithDetails(alias)
			}

			return errors.Wrap(err, "failed to create item")
		}

		// Registering the item also registers its stock with the sales
		// collaborator, in the same transaction.
		if err := f.NewSalesLedger().RegisterIntake(ctx, item.ID.String(), item.TargetQty); err != nil {
			return errors.Wrap(err, "sales ledger rejected intake")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

// guardItemAddition enforces the item lock: Planning is always fine, Active
// requires a still-empty crew, terminal states refuse everything.
func (srv *campaignService) guardItemAddition(ctx context.Context, f repository.RepositoryFactory, campaign *entity.Campaign) error {
	switch campaign.Status {
	case entity.CampaignStatusPlanning:
		return nil
	case entity.CampaignStatusActive:
		count, err := f.NewPirateRepository().CountByCampaign(ctx, campaign.ID)
		if err != nil {
			return errors.Wrap(err, "failed to count pirates")
		}
		if count > 0 {
			return domainerrors.ErrItemsLocked
		}

		return nil
	default:
		return domainerrors.ErrCampaignClosed
	}
}

// AddPirate registers a participant alias and activates a Planning campaign.
func (srv *campaignService) AddPirate(ctx context.Context, campaignID uuid.UUID, input *usecase.AddPirateInput) (*entity.Pirate, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var pirate *entity.Pirate
	err := srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		campaignRepo := f.NewCampaignRepository()
		campaign, err := findCampaign(ctx, campaignRepo, campaignID)
		if err != nil {
			return err
		}
		if campaign.Status.IsTerminal() {
			return domainerrors.ErrCampaignClosed
		}

		key, err := srv.keyManager.GetOrCreateKey(ctx, campaign.OwnerID)
		if err != nil {
			return err
		}

		pirateRepo := f.NewPirateRepository()
		alias, err := srv.issueAlias(ctx, input.CustomAlias, input.RealIdentity, service.NamespacePirate, func(ctx context.Context, candidate string) (bool, error) {
			return pirateRepo.AliasExists(ctx, campaignID, candidate)
		})
		if err != nil {
			return err
		}

		sealed, err := srv.anonymizer.Seal(input.RealIdentity, key)
		if err != nil {
			return err
		}

		pirate = &entity.Pirate{
			ID:         uuid.New(),
			CampaignID: campaignID,
			Alias:      alias,
			SealedName: sealed,
			CreatedAt:  time.Now(),
		}

		if err := pirateRepo.Create(ctx, pirate); err != nil {
			if errors.Is(err, repository.ErrAliasExists) {
				return domainerrors.ErrAliasTaken.WithDetails(alias)
			}

			return errors.Wrap(err, "failed to create pirate")
		}

		// First pirate (or first assignment, elsewhere) activates the campaign.
		if campaign.Status == entity.CampaignStatusPlanning {
			if err := campaignRepo.UpdateStatus(ctx, campaignID, entity.CampaignStatusPlanning, entity.CampaignStatusActive); err != nil {
				if errors.Is(err, repository.ErrCampaignStale) {
					return domainerrors.ErrStateTransition.WrapMessage("campaign changed state concurrently")
				}

				return errors.Wrap(err, "failed to activate campaign")
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return pirate, nil
}

// issueAlias picks between a validated custom alias and a generated one.
func (srv *campaignService) issueAlias(ctx context.Context, custom, realText string, namespace service.AliasNamespace, taken usecase.TakenFunc) (string, error) {
	if custom != "" {
		return srv.anonymizer.CustomAlias(ctx, custom, taken)
	}

	return srv.anonymizer.UniqueAlias(ctx, realText, namespace, taken)
}

// RemovePirate deletes a pirate by explicit owner action. Its assignments and
// their payments cascade, consumed quantities are released and item statuses
// recomputed. The campaign status never regresses; a Completed campaign stays
// Completed.
func (srv *campaignService) RemovePirate(ctx context.Context, campaignID uuid.UUID, alias string) error {
	return srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		pirateRepo := f.NewPirateRepository()
		pirate, err := pirateRepo.FindByAlias(ctx, campaignID, alias)
		if err != nil {
			if errors.Is(err, repository.ErrPirateNotFound) {
				return domainerrors.ErrPirateNotFound
			}

			return errors.Wrap(err, "failed to find pirate")
		}

		assignmentRepo := f.NewAssignmentRepository()
		paymentRepo := f.NewPaymentRepository()

		assignments, err := assignmentRepo.ListByPirate(ctx, pirate.ID)
		if err != nil {
			return errors.Wrap(err, "failed to list assignments")
		}

		released := make(map[uuid.UUID]int64, len(assignments))
		var removedValue int64
		debtLedger := f.NewDebtLedger()
		for _, assignment := range assignments {
			if err := paymentRepo.DeleteByAssignment(ctx, assignment.ID); err != nil {
				return errors.Wrap(err, "failed to delete payments")
			}
			if err := assignmentRepo.Delete(ctx, assignment.ID); err != nil {
				return errors.Wrap(err, "failed to delete assignment")
			}
			// Zero out the collaborator's view of the removed debt.
			if err := debtLedger.UpsertDebt(ctx, alias, 0, assignment.ID.String()); err != nil {
				return errors.Wrap(err, "debt ledger rejected removal push")
			}
			released[assignment.ItemID] += assignment.Quantity
			removedValue += assignment.TotalCost
		}

		itemRepo := f.NewItemRepository()
		for itemID, qty := range released {
			item, err := itemRepo.FindByID(ctx, itemID)
			if err != nil {
				return errors.Wrap(err, "failed to find item for release")
			}

			consumed := item.ConsumedQty - qty
			if consumed < 0 {
				consumed = 0
			}
			if err := itemRepo.SetConsumed(ctx, itemID, consumed, entity.ItemStatusFor(consumed, item.TargetQty)); err != nil {
				return errors.Wrap(err, "failed to release consumed quantity")
			}
		}

		if removedValue > 0 {
			if err := f.NewCampaignRepository().AddToActualTotal(ctx, campaignID, -removedValue); err != nil {
				return errors.Wrap(err, "failed to adjust campaign total")
			}
		}

		if err := pirateRepo.Delete(ctx, pirate.ID); err != nil {
			return errors.Wrap(err, "failed to delete pirate")
		}

		srv.logger.InfoContext(ctx, "pirate removed",
			slog.String("campaignID", campaignID.String()),
			slog.String("alias", alias),
			slog.Int("cascadedAssignments", len(assignments)),
		)

		return nil
	})
}

// CancelCampaign moves a non-terminal campaign to Cancelled. Historical records
// are preserved; the guard at the storage layer means a cancellation that
// commits first wins over an in-flight assignment.
func (srv *campaignService) CancelCampaign(ctx context.Context, campaignID uuid.UUID) (*entity.Campaign, error) {
	var cancelled *entity.Campaign
	err := srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		campaignRepo := f.NewCampaignRepository()
		campaign, err := findCampaign(ctx, campaignRepo, campaignID)
		if err != nil {
			return err
		}
		if !campaign.Status.CanTransitionTo(entity.CampaignStatusCancelled) {
			return domainerrors.ErrStateTransition.WithDetails(campaign.Status.String())
		}

		if err := campaignRepo.UpdateStatus(ctx, campaignID, campaign.Status, entity.CampaignStatusCancelled); err != nil {
			if errors.Is(err, repository.ErrCampaignStale) {
				return domainerrors.ErrStateTransition.WrapMessage("campaign changed state concurrently")
			}

			return errors.Wrap(err, "failed to cancel campaign")
		}

		campaign.Status = entity.CampaignStatusCancelled
		cancelled = campaign

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.logger.InfoContext(ctx, "campaign cancelled", slog.String("campaignID", campaignID.String()))

	return cancelled, nil
}

// ListItems retrieves all item aliases of a campaign.
func (srv *campaignService) ListItems(ctx context.Context, campaignID uuid.UUID) ([]*entity.Item, error) {
	items, err := srv.itemRepo.ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list items")
	}

	return items, nil
}

// ListPirates retrieves all participant aliases of a campaign.
func (srv *campaignService) ListPirates(ctx context.Context, campaignID uuid.UUID) ([]*entity.Pirate, error) {
	pirates, err := srv.pirateRepo.ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list pirates")
	}

	return pirates, nil
}

// RevealPirate decrypts the real identity behind a participant alias. Only the
// owning account's key opens the seal; anything else is an integrity violation.
func (srv *campaignService) RevealPirate(ctx context.Context, campaignID uuid.UUID, alias string) (string, error) {
	pirate, err := srv.pirateRepo.FindByAlias(ctx, campaignID, alias)
	if err != nil {
		if errors.Is(err, repository.ErrPirateNotFound) {
			return "", domainerrors.ErrPirateNotFound
		}

		return "", errors.Wrap(err, "failed to find pirate")
	}

	return srv.reveal(ctx, campaignID, pirate.SealedName)
}

// RevealItem decrypts the real name behind an item alias.
func (srv *campaignService) RevealItem(ctx context.Context, campaignID uuid.UUID, alias string) (string, error) {
	item, err := srv.itemRepo.FindByAlias(ctx, campaignID, alias)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return "", domainerrors.ErrItemNotFound
		}

		return "", errors.Wrap(err, "failed to find item")
	}

	return srv.reveal(ctx, campaignID, item.SealedName)
}

func (srv *campaignService) reveal(ctx context.Context, campaignID uuid.UUID, sealed entity.SealedName) (string, error) {
	campaign, err := srv.GetCampaign(ctx, campaignID)
	if err != nil {
		return "", err
	}

	key, err := srv.keyManager.GetOrCreateKey(ctx, campaign.OwnerID)
	if err != nil {
		return "", err
	}

	return srv.anonymizer.Reveal(sealed, key)
}

// findCampaign looks up a campaign and maps the repository sentinel to the
// domain variant.
func findCampaign(ctx context.Context, repo repository.CampaignRepository, id uuid.UUID) (*entity.Campaign, error) {
	campaign, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			return nil, domainerrors.ErrCampaignNotFound
		}

		return nil, errors.Wrap(err, "failed to find campaign")
	}

	return campaign, nil
}

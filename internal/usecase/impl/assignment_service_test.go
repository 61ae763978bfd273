package impl

import (
	"context"
	"testing"

	"plunder/internal/domain/entity"
	domainerrors "plunder/internal/domain/errors"
	"plunder/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignmentService_Assign_FullConsumptionCompletesCampaign(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	campaign := newCampaign(t, env, "owner-1")
	item := addItem(t, env, campaign.ID, "Widget", 10, "")
	pirate := addPirate(t, env, campaign.ID, "Alex", "")

	assignment, err := env.assignments.Assign(ctx, &usecase.AssignInput{
		CampaignID:       campaign.ID,
		ParticipantAlias: pirate.Alias,
		ItemAlias:        item.Alias,
		Quantity:         10,
		UnitPrice:        5,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(50), assignment.TotalCost)
	assert.Equal(t, entity.PaymentStatusPending, assignment.PaymentStatus)
	assert.NotEmpty(t, assignment.SaleRef)

	storedItem := env.store.items[item.ID]
	assert.Equal(t, int64(10), storedItem.ConsumedQty)
	assert.Equal(t, entity.ItemStatusCompleted, storedItem.Status)

	storedCampaign := env.store.campaigns[campaign.ID]
	assert.Equal(t, entity.CampaignStatusCompleted, storedCampaign.Status)
	assert.Equal(t, int64(50), storedCampaign.ActualTotal)

	// The external sale and initial debt push landed in the same unit of work.
	require.Len(t, env.store.sales, 1)
	assert.Equal(t, saleRecord{
		ItemRef:   item.ID.String(),
		Alias:     pirate.Alias,
		Quantity:  10,
		UnitPrice: 5,
	}, env.store.sales[0])
	assert.Equal(t, debtRecord{Alias: pirate.Alias, Outstanding: 50}, env.store.debts[assignment.ID.String()])
}

func TestAssignmentService_Assign_StockExceededLeavesNoTrace(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	campaign := newCampaign(t, env, "owner-1")
	item := addItem(t, env, campaign.ID, "Widget", 10, "")
	pirate := addPirate(t, env, campaign.ID, "Alex", "")

	_, err := env.assignments.Assign(ctx, &usecase.AssignInput{
		CampaignID:       campaign.ID,
		ParticipantAlias: pirate.Alias,
		ItemAlias:        item.Alias,
		Quantity:         10,
		UnitPrice:        5,
	})
	require.NoError(t, err)

	_, err = env.assignments.Assign(ctx, &usecase.AssignInput{
		CampaignID:       campaign.ID,
		ParticipantAlias: pirate.Alias,
		ItemAlias:        item.Alias,
		Quantity:         1,
		UnitPrice:        5,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrStockExceeded))

	assert.Len(t, env.store.assignments, 1)
	assert.Len(t, env.store.sales, 1)
	assert.Equal(t, int64(10), env.store.items[item.ID].ConsumedQty)
	assert.Equal(t, int64(50), env.store.campaigns[campaign.ID].ActualTotal)
}

func TestAssignmentService_Assign_PartialLeavesCampaignActive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	campaign := newCampaign(t, env, "owner-1")
	item := addItem(t, env, campaign.ID, "Widget", 10, "")
	pirate := addPirate(t, env, campaign.ID, "Alex", "")

	_, err := env.assignments.Assign(ctx, &usecase.AssignInput{
		CampaignID:       campaign.ID,
		ParticipantAlias: pirate.Alias,
		ItemAlias:        item.Alias,
		Quantity:         4,
		UnitPrice:        5,
	})
	require.NoError(t, err)

	storedItem := env.store.items[item.ID]
	assert.Equal(t, entity.ItemStatusPartial, storedItem.Status)
	assert.Equal(t, int64(6), storedItem.TargetQty-storedItem.ConsumedQty)
	assert.Equal(t, entity.CampaignStatusActive, env.store.campaigns[campaign.ID].Status)
}

func TestAssignmentService_Assign_FirstAssignmentActivatesPlanning(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	campaign := newCampaign(t, env, "owner-1")
	item := addItem(t, env, campaign.ID, "Widget", 10, "")

	// AddPirate would itself activate the campaign, so the pirate goes straight
	// into the store to keep this one Planning until the assignment lands.
	pirate := &entity.Pirate{
		ID:         uuid.New(),
		CampaignID: campaign.ID,
		Alias:      "Quiet Crow",
	}
	env.store.pirates[pirate.ID] = *pirate
	require.Equal(t, entity.CampaignStatusPlanning, env.store.campaigns[campaign.ID].Status)

	_, err := env.assignments.Assign(ctx, &usecase.AssignInput{
		CampaignID:       campaign.ID,
		ParticipantAlias: pirate.Alias,
		ItemAlias:        item.Alias,
		Quantity:         1,
		UnitPrice:        5,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.CampaignStatusActive, env.store.campaigns[campaign.ID].Status)
}

func TestAssignmentService_Assign_TerminalCampaignRefused(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	campaign := newCampaign(t, env, "owner-1")
	item := addItem(t, env, campaign.ID, "Widget", 10, "")
	pirate := addPirate(t, env, campaign.ID, "Alex", "")

	_, err := env.campaigns.CancelCampaign(ctx, campaign.ID)
	require.NoError(t, err)

	_, err = env.assignments.Assign(ctx, &usecase.AssignInput{
		CampaignID:       campaign.ID,
		ParticipantAlias: pirate.Alias,
		ItemAlias:        item.Alias,
		Quantity:         1,
		UnitPrice:        5,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrCampaignClosed))
}

func TestAssignmentService_Assign_InvalidQuantityAndPrice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	campaign := newCampaign(t, env, "owner-1")
	item := addItem(t, env, campaign.ID, "Widget", 10, "")
	pirate := addPirate(t, env, campaign.ID, "Alex", "")

	_, err := env.assignments.Assign(ctx, &usecase.AssignInput{
		CampaignID:       campaign.ID,
		ParticipantAlias: pirate.Alias,
		ItemAlias:        item.Alias,
		Quantity:         0,
		UnitPrice:        5,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrQuantityInvalid))

	_, err = env.assignments.Assign(ctx, &usecase.AssignInput{
		CampaignID:       campaign.ID,
		ParticipantAlias: pirate.Alias,
		ItemAlias:        item.Alias,
		Quantity:         1,
		UnitPrice:        -5,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAmountInvalid))
}

func TestAssignmentService_Assign_ZeroPriceFreebie(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	campaign := newCampaign(t, env, "owner-1")
	item := addItem(t, env, campaign.ID, "Widget", 10, "")
	pirate := addPirate(t, env, campaign.ID, "Alex", "")

	assignment, err := env.assignments.Assign(ctx, &usecase.AssignInput{
		CampaignID:       campaign.ID,
		ParticipantAlias: pirate.Alias,
		ItemAlias:        item.Alias,
		Quantity:         2,
		UnitPrice:        0,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), assignment.TotalCost)
}

func TestAssignmentService_Assign_RetriesAfterLostRace(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	campaign := newCampaign(t, env, "owner-1")
	item := addItem(t, env, campaign.ID, "Widget", 10, "")
	pirate := addPirate(t, env, campaign.ID, "Alex", "")

	stale := 2
	env.store.staleRemaining = &stale

	assignment, err := env.assignments.Assign(ctx, &usecase.AssignInput{
		CampaignID:       campaign.ID,
		ParticipantAlias: pirate.Alias,
		ItemAlias:        item.Alias,
		Quantity:         3,
		UnitPrice:        5,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(15), assignment.TotalCost)
	assert.Equal(t, 0, stale)
	assert.Equal(t, int64(3), env.store.items[item.ID].ConsumedQty)
}

func TestAssignmentService_Assign_GivesUpAfterRetryBudget(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	campaign := newCampaign(t, env, "owner-1")
	item := addItem(t, env, campaign.ID, "Widget", 10, "")
	pirate := addPirate(t, env, campaign.ID, "Alex", "")

	stale := 10
	env.store.staleRemaining = &stale

	_, err := env.assignments.Assign(ctx, &usecase.AssignInput{
		CampaignID:       campaign.ID,
		ParticipantAlias: pirate.Alias,
		ItemAlias:        item.Alias,
		Quantity:         3,
		UnitPrice:        5,
	})
	require.Error(t, err)
	assert.Empty(t, env.store.assignments)
	assert.Equal(t, int64(0), env.store.items[item.ID].ConsumedQty)
}

func TestAssignmentService_Assign_SalesLedgerFailureRollsBackEverything(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	campaign := newCampaign(t, env, "owner-1")
	item := addItem(t, env, campaign.ID, "Widget", 10, "")
	pirate := addPirate(t, env, campaign.ID, "Alex", "")

	env.store.salesErr = errors.New("sales ledger offline")

	_, err := env.assignments.Assign(ctx, &usecase.AssignInput{
		CampaignID:       campaign.ID,
		ParticipantAlias: pirate.Alias,
		ItemAlias:        item.Alias,
		Quantity:         3,
		UnitPrice:        5,
	})
	require.Error(t, err)

	assert.Empty(t, env.store.assignments)
	assert.Empty(t, env.store.debts)
	assert.Equal(t, int64(0), env.store.items[item.ID].ConsumedQty)
	assert.Equal(t, int64(0), env.store.campaigns[campaign.ID].ActualTotal)
}

func TestAssignmentService_Assign_UnknownAliases(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	campaign := newCampaign(t, env, "owner-1")
	item := addItem(t, env, campaign.ID, "Widget", 10, "")
	pirate := addPirate(t, env, campaign.ID, "Alex", "")

	_, err := env.assignments.Assign(ctx, &usecase.AssignInput{
		CampaignID:       campaign.ID,
		ParticipantAlias: "Nobody Here",
		ItemAlias:        item.Alias,
		Quantity:         1,
		UnitPrice:        5,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrPirateNotFound))

	_, err = env.assignments.Assign(ctx, &usecase.AssignInput{
		CampaignID:       campaign.ID,
		ParticipantAlias: pirate.Alias,
		ItemAlias:        "Nothing Here",
		Quantity:         1,
		UnitPrice:        5,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrItemNotFound))
}

func TestAssignmentService_Assign_TwoItemsBothNeededForCompletion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	campaign := newCampaign(t, env, "owner-1")
	first := addItem(t, env, campaign.ID, "Widget", 2, "")
	second := addItem(t, env, campaign.ID, "Gadget", 2, "")
	pirate := addPirate(t, env, campaign.ID, "Alex", "")

	_, err := env.assignments.Assign(ctx, &usecase.AssignInput{
		CampaignID:       campaign.ID,
		ParticipantAlias: pirate.Alias,
		ItemAlias:        first.Alias,
		Quantity:         2,
		UnitPrice:        5,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.CampaignStatusActive, env.store.campaigns[campaign.ID].Status)

	_, err = env.assignments.Assign(ctx, &usecase.AssignInput{
		CampaignID:       campaign.ID,
		ParticipantAlias: pirate.Alias,
		ItemAlias:        second.Alias,
		Quantity:         2,
		UnitPrice:        5,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.CampaignStatusCompleted, env.store.campaigns[campaign.ID].Status)
}

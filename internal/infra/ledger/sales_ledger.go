// Package ledger contains the GORM-backed implementations of the external
// bookkeeping collaborators: the sales ledger and the debt ledger.
package ledger

import (
	"context"
	"time"

	domainerrors "plunder/internal/domain/errors"
	"plunder/internal/domain/service"
	"plunder/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// gormSalesLedger implements service.SalesLedger on top of inventory lots and
// sale records. Stock is drained FIFO across lots so the oldest intake is
// consumed first.
type gormSalesLedger struct {
	db *gorm.DB
}

// NewSalesLedger is the constructor for gormSalesLedger.
func NewSalesLedger(db *gorm.DB) service.SalesLedger {
	return &gormSalesLedger{
		db: db,
	}
}

// RecordConsumption books a sale against the inventory lots of an item and
// returns the sale record reference. The write happens on the caller's
// connection, so when invoked inside TransactionManager.Execute it commits or
// rolls back together with the assignment.
func (l *gormSalesLedger) RecordConsumption(ctx context.Context, itemRef string, participantAlias string, quantity, unitPrice int64) (string, error) {
	if quantity <= 0 {
		return "", domainerrors.ErrQuantityInvalid
	}

	if err := l.drainLots(ctx, itemRef, quantity); err != nil {
		return "", err
	}

	saleM := &model.SaleRecordModel{
		ID:               uuid.New(),
		ItemRef:          itemRef,
		ParticipantAlias: participantAlias,
		Quantity:         quantity,
		UnitPrice:        unitPrice,
	}
	if err := l.db.WithContext(ctx).Create(saleM).Error; err != nil {
		return "", errors.Wrap(err, "failed to create sale record")
	}

	return saleM.ID.String(), nil
}

// RegisterIntake records inventory intake for an item as a new lot.
func (l *gormSalesLedger) RegisterIntake(ctx context.Context, itemRef string, quantity int64) error {
	if quantity <= 0 {
		return domainerrors.ErrQuantityInvalid
	}

	lotM := &model.InventoryLotModel{
		ID:         uuid.New(),
		ItemRef:    itemRef,
		Remaining:  quantity,
		ReceivedAt: time.Now(),
	}
	if err := l.db.WithContext(ctx).Create(lotM).Error; err != nil {
		return errors.Wrap(err, "failed to create inventory lot")
	}

	return nil
}

func (l *gormSalesLedger) drainLots(ctx context.Context, itemRef string, quantity int64) error {
	var lots []model.InventoryLotModel

	if err := l.db.WithContext(ctx).
		Where("item_ref = ? AND remaining > 0", itemRef).
		Order("received_at ASC").
		Find(&lots).Error; err != nil {
		return errors.Wrap(err, "failed to list inventory lots")
	}

	need := quantity
	for i := range lots {
		if need == 0 {
			break
		}

		take := lots[i].Remaining
		if take > need {
			take = need
		}

		result := l.db.WithContext(ctx).
			Model(&model.InventoryLotModel{}).
			Where("id = ? AND remaining = ?", lots[i].ID, lots[i].Remaining).
			Update("remaining", lots[i].Remaining-take)
		if result.Error != nil {
			return errors.Wrap(result.Error, "failed to decrement inventory lot")
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrStockExceeded.WrapMessage("inventory lot changed concurrently")
		}

		need -= take
	}

	if need > 0 {
		return domainerrors.ErrStockExceeded.WrapMessage("insufficient inventory lots")
	}

	return nil
}

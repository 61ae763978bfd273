package ledger

import (
	"context"

	"plunder/internal/domain/service"
	"plunder/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormDebtLedger implements service.DebtLedger. Every push is an upsert keyed
// by the idempotency key, so replays overwrite the same row instead of
// accumulating.
type gormDebtLedger struct {
	db *gorm.DB
}

// NewDebtLedger is the constructor for gormDebtLedger.
func NewDebtLedger(db *gorm.DB) service.DebtLedger {
	return &gormDebtLedger{
		db: db,
	}
}

// UpsertDebt sets the outstanding amount for the given idempotency key.
func (l *gormDebtLedger) UpsertDebt(ctx context.Context, participantAlias string, outstanding int64, idempotencyKey string) error {
	debtM := &model.DebtRecordModel{
		IdempotencyKey:   idempotencyKey,
		ParticipantAlias: participantAlias,
		Outstanding:      outstanding,
	}

	if err := l.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "idempotency_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"participant_alias", "outstanding", "updated_at"}),
		}).
		Create(debtM).Error; err != nil {
		return errors.Wrap(err, "failed to upsert debt record")
	}

	return nil
}

// OutstandingFor sums the collaborator's outstanding records for an alias.
func (l *gormDebtLedger) OutstandingFor(ctx context.Context, participantAlias string) (int64, error) {
	var total int64

	if err := l.db.WithContext(ctx).
		Model(&model.DebtRecordModel{}).
		Where("participant_alias = ?", participantAlias).
		Select("COALESCE(SUM(outstanding), 0)").
		Scan(&total).Error; err != nil {
		return 0, errors.Wrap(err, "failed to sum debt records")
	}

	return total, nil
}

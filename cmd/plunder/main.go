package main

import (
	"context"
	"log/slog"

	"plunder/config"
	"plunder/internal/infra/crypto"
	"plunder/internal/infra/ledger"
	logs "plunder/internal/infra/log"
	"plunder/internal/infra/naming"
	"plunder/internal/infra/persistence/model"
	"plunder/internal/infra/persistence/postgres"
	"plunder/internal/usecase/impl"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

type startParams struct {
	fx.In

	DB     *gorm.DB
	Logger *slog.Logger
	Config *config.Config
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		fx.Invoke(
			start,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewCampaignRepository,
			postgres.NewPirateRepository,
			postgres.NewItemRepository,
			postgres.NewAssignmentRepository,
			postgres.NewPaymentRepository,
			postgres.NewSaltRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			newArgon2Params,
			crypto.NewArgon2Deriver,
			crypto.NewAEADCipher,
			naming.NewWordNamer,
			ledger.NewSalesLedger,
			ledger.NewDebtLedger,
		),
	)
}

// newArgon2Params maps the key-derivation configuration onto argon2id work factors.
func newArgon2Params(cfg *config.Config) crypto.Argon2Params {
	if cfg.KeyDerivation == nil {
		return crypto.Argon2Params{}
	}

	return crypto.Argon2Params{
		Time:      cfg.KeyDerivation.Time,
		MemoryKiB: cfg.KeyDerivation.MemoryKiB,
		Threads:   cfg.KeyDerivation.Threads,
		SaltLen:   cfg.KeyDerivation.SaltLen,
	}
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewKeyService,
			impl.NewAnonymizerService,
			impl.NewCampaignService,
			impl.NewAssignmentService,
			impl.NewLedgerService,
		),
	)
}

func start(params startParams) error {
	if err := params.DB.AutoMigrate(
		&model.CampaignModel{},
		&model.PirateModel{},
		&model.ItemModel{},
		&model.AssignmentModel{},
		&model.PaymentModel{},
		&model.OwnerSaltModel{},
		&model.InventoryLotModel{},
		&model.SaleRecordModel{},
		&model.DebtRecordModel{},
	); err != nil {
		return err
	}

	params.Logger.Info("plunder engine ready",
		slog.String("service", params.Config.Env.ServiceName),
		slog.String("env", params.Config.Env.Env),
	)

	return nil
}

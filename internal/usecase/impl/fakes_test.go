package impl

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"testing"

	"plunder/internal/domain/entity"
	"plunder/internal/domain/repository"
	"plunder/internal/domain/service"
	"plunder/internal/infra/crypto"
	"plunder/internal/infra/naming"
	"plunder/internal/usecase"

	"github.com/google/uuid"
)

// memStore is an in-memory stand-in for the persistence layer. Repositories
// operate on it directly; the fake transaction manager snapshots it before each
// unit of work and restores the snapshot when the unit fails, which mirrors the
// commit/rollback semantics the services rely on.
type memStore struct {
	campaigns   map[uuid.UUID]entity.Campaign
	pirates     map[uuid.UUID]entity.Pirate
	items       map[uuid.UUID]entity.Item
	assignments map[uuid.UUID]entity.Assignment
	payments    map[uuid.UUID]entity.Payment
	salts       map[string][]byte

	sales     []saleRecord
	intakes   map[string]int64
	debts     map[string]debtRecord
	saleSeq   int
	salesErr  error
	debtErr   error
	intakeErr error

	// staleRemaining injects consumption races: while positive, CasConsumed
	// reports staleness and decrements. Shared across snapshots so retries
	// observe the countdown.
	staleRemaining *int
}

type saleRecord struct {
	ItemRef   string
	Alias     string
	Quantity  int64
	UnitPrice int64
}

type debtRecord struct {
	Alias       string
	Outstanding int64
}

func newMemStore() *memStore {
	return &memStore{
		campaigns:   make(map[uuid.UUID]entity.Campaign),
		pirates:     make(map[uuid.UUID]entity.Pirate),
		items:       make(map[uuid.UUID]entity.Item),
		assignments: make(map[uuid.UUID]entity.Assignment),
		payments:    make(map[uuid.UUID]entity.Payment),
		salts:       make(map[string][]byte),
		intakes:     make(map[string]int64),
		debts:       make(map[string]debtRecord),
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for k, v := range s.campaigns {
		c.campaigns[k] = v
	}
	for k, v := range s.pirates {
		c.pirates[k] = v
	}
	for k, v := range s.items {
		c.items[k] = v
	}
	for k, v := range s.assignments {
		c.assignments[k] = v
	}
	for k, v := range s.payments {
		c.payments[k] = v
	}
	for k, v := range s.salts {
		c.salts[k] = v
	}
	for k, v := range s.intakes {
		c.intakes[k] = v
	}
	for k, v := range s.debts {
		c.debts[k] = v
	}
	c.sales = append(c.sales, s.sales...)
	c.saleSeq = s.saleSeq
	c.salesErr = s.salesErr
	c.debtErr = s.debtErr
	c.intakeErr = s.intakeErr
	c.staleRemaining = s.staleRemaining

	return c
}

// --- Transaction manager ---

type fakeTxManager struct {
	store *memStore
}

func (tm *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	snapshot := tm.store.clone()
	if err := fn(&fakeFactory{store: tm.store}); err != nil {
		*tm.store = *snapshot

		return err
	}

	return nil
}

type fakeFactory struct {
	store *memStore
}

func (f *fakeFactory) NewCampaignRepository() repository.CampaignRepository {
	return &fakeCampaignRepo{store: f.store}
}

func (f *fakeFactory) NewPirateRepository() repository.PirateRepository {
	return &fakePirateRepo{store: f.store}
}

func (f *fakeFactory) NewItemRepository() repository.ItemRepository {
	return &fakeItemRepo{store: f.store}
}

func (f *fakeFactory) NewAssignmentRepository() repository.AssignmentRepository {
	return &fakeAssignmentRepo{store: f.store}
}

func (f *fakeFactory) NewPaymentRepository() repository.PaymentRepository {
	return &fakePaymentRepo{store: f.store}
}

func (f *fakeFactory) NewSalesLedger() service.SalesLedger {
	return &fakeSalesLedger{store: f.store}
}

func (f *fakeFactory) NewDebtLedger() service.DebtLedger {
	return &fakeDebtLedger{store: f.store}
}

// --- Repositories ---

type fakeCampaignRepo struct {
	store *memStore
}

func (r *fakeCampaignRepo) Create(_ context.Context, campaign *entity.Campaign) error {
	r.store.campaigns[campaign.ID] = *campaign

	return nil
}

func (r *fakeCampaignRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Campaign, error) {
	campaign, ok := r.store.campaigns[id]
	if !ok {
		return nil, repository.ErrCampaignNotFound
	}

	return &campaign, nil
}

func (r *fakeCampaignRepo) ListByOwner(_ context.Context, ownerID string) ([]*entity.Campaign, error) {
	var out []*entity.Campaign
	for _, campaign := range r.store.campaigns {
		if campaign.OwnerID == ownerID {
			c := campaign
			out = append(out, &c)
		}
	}

	return out, nil
}

func (r *fakeCampaignRepo) UpdateStatus(_ context.Context, id uuid.UUID, current, next entity.CampaignStatus) error {
	campaign, ok := r.store.campaigns[id]
	if !ok {
		return repository.ErrCampaignNotFound
	}
	if campaign.Status != current {
		return repository.ErrCampaignStale
	}
	campaign.Status = next
	r.store.campaigns[id] = campaign

	return nil
}

func (r *fakeCampaignRepo) AddToActualTotal(_ context.Context, id uuid.UUID, delta int64) error {
	campaign, ok := r.store.campaigns[id]
	if !ok {
		return repository.ErrCampaignNotFound
	}
	campaign.ActualTotal += delta
	r.store.campaigns[id] = campaign

	return nil
}

type fakePirateRepo struct {
	store *memStore
}

func (r *fakePirateRepo) Create(_ context.Context, pirate *entity.Pirate) error {
	for _, existing := range r.store.pirates {
		if existing.CampaignID == pirate.CampaignID && existing.Alias == pirate.Alias {
			return repository.ErrAliasExists
		}
	}
	r.store.pirates[pirate.ID] = *pirate

	return nil
}

func (r *fakePirateRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Pirate, error) {
	pirate, ok := r.store.pirates[id]
	if !ok {
		return nil, repository.ErrPirateNotFound
	}

	return &pirate, nil
}

func (r *fakePirateRepo) FindByAlias(_ context.Context, campaignID uuid.UUID, alias string) (*entity.Pirate, error) {
	for _, pirate := range r.store.pirates {
		if pirate.CampaignID == campaignID && pirate.Alias == alias {
			p := pirate

			return &p, nil
		}
	}

	return nil, repository.ErrPirateNotFound
}

func (r *fakePirateRepo) ListByCampaign(_ context.Context, campaignID uuid.UUID) ([]*entity.Pirate, error) {
	var out []*entity.Pirate
	for _, pirate := range r.store.pirates {
		if pirate.CampaignID == campaignID {
			p := pirate
			out = append(out, &p)
		}
	}

	return out, nil
}

func (r *fakePirateRepo) CountByCampaign(_ context.Context, campaignID uuid.UUID) (int64, error) {
	var count int64
	for _, pirate := range r.store.pirates {
		if pirate.CampaignID == campaignID {
			count++
		}
	}

	return count, nil
}

func (r *fakePirateRepo) AliasExists(_ context.Context, campaignID uuid.UUID, alias string) (bool, error) {
	for _, pirate := range r.store.pirates {
		if pirate.CampaignID == campaignID && pirate.Alias == alias {
			return true, nil
		}
	}

	return false, nil
}

func (r *fakePirateRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.store.pirates, id)

	return nil
}

type fakeItemRepo struct {
	store *memStore
}

func (r *fakeItemRepo) Create(_ context.Context, item *entity.Item) error {
	for _, existing := range r.store.items {
		if existing.CampaignID == item.CampaignID && existing.Alias == item.Alias {
			return repository.ErrAliasExists
		}
	}
	r.store.items[item.ID] = *item

	return nil
}

func (r *fakeItemRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Item, error) {
	item, ok := r.store.items[id]
	if !ok {
		return nil, repository.ErrItemNotFound
	}

	return &item, nil
}

func (r *fakeItemRepo) FindByAlias(_ context.Context, campaignID uuid.UUID, alias string) (*entity.Item, error) {
	for _, item := range r.store.items {
		if item.CampaignID == campaignID && item.Alias == alias {
			i := item

			return &i, nil
		}
	}

	return nil, repository.ErrItemNotFound
}

func (r *fakeItemRepo) ListByCampaign(_ context.Context, campaignID uuid.UUID) ([]*entity.Item, error) {
	var out []*entity.Item
	for _, item := range r.store.items {
		if item.CampaignID == campaignID {
			i := item
			out = append(out, &i)
		}
	}

	return out, nil
}

func (r *fakeItemRepo) AliasExists(_ context.Context, campaignID uuid.UUID, alias string) (bool, error) {
	for _, item := range r.store.items {
		if item.CampaignID == campaignID && item.Alias == alias {
			return true, nil
		}
	}

	return false, nil
}

func (r *fakeItemRepo) CountIncomplete(_ context.Context, campaignID uuid.UUID) (int64, error) {
	var count int64
	for _, item := range r.store.items {
		if item.CampaignID == campaignID && item.Status != entity.ItemStatusCompleted {
			count++
		}
	}

	return count, nil
}

func (r *fakeItemRepo) CasConsumed(_ context.Context, id uuid.UUID, expectedConsumed, newConsumed int64, status entity.ItemStatus) error {
	item, ok := r.store.items[id]
	if !ok {
		return repository.ErrItemNotFound
	}
	if r.store.staleRemaining != nil && *r.store.staleRemaining > 0 {
		*r.store.staleRemaining--

		return repository.ErrItemStale
	}
	if item.ConsumedQty != expectedConsumed {
		return repository.ErrItemStale
	}
	item.ConsumedQty = newConsumed
	item.Status = status
	r.store.items[id] = item

	return nil
}

func (r *fakeItemRepo) SetConsumed(_ context.Context, id uuid.UUID, consumed int64, status entity.ItemStatus) error {
	item, ok := r.store.items[id]
	if !ok {
		return repository.ErrItemNotFound
	}
	item.ConsumedQty = consumed
	item.Status = status
	r.store.items[id] = item

	return nil
}

type fakeAssignmentRepo struct {
	store *memStore
}

func (r *fakeAssignmentRepo) Create(_ context.Context, assignment *entity.Assignment) error {
	r.store.assignments[assignment.ID] = *assignment

	return nil
}

func (r *fakeAssignmentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Assignment, error) {
	assignment, ok := r.store.assignments[id]
	if !ok {
		return nil, repository.ErrAssignmentNotFound
	}

	return &assignment, nil
}

func (r *fakeAssignmentRepo) ListByPirate(_ context.Context, pirateID uuid.UUID) ([]*entity.Assignment, error) {
	var out []*entity.Assignment
	for _, assignment := range r.store.assignments {
		if assignment.PirateID == pirateID {
			a := assignment
			out = append(out, &a)
		}
	}

	return out, nil
}

func (r *fakeAssignmentRepo) ListByItem(_ context.Context, itemID uuid.UUID) ([]*entity.Assignment, error) {
	var out []*entity.Assignment
	for _, assignment := range r.store.assignments {
		if assignment.ItemID == itemID {
			a := assignment
			out = append(out, &a)
		}
	}

	return out, nil
}

func (r *fakeAssignmentRepo) UpdatePaymentStatus(_ context.Context, id uuid.UUID, status entity.PaymentStatus) error {
	assignment, ok := r.store.assignments[id]
	if !ok {
		return repository.ErrAssignmentNotFound
	}
	assignment.PaymentStatus = status
	r.store.assignments[id] = assignment

	return nil
}

func (r *fakeAssignmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.store.assignments, id)

	return nil
}

type fakePaymentRepo struct {
	store *memStore
}

func (r *fakePaymentRepo) Create(_ context.Context, payment *entity.Payment) error {
	r.store.payments[payment.ID] = *payment

	return nil
}

func (r *fakePaymentRepo) ListByAssignment(_ context.Context, assignmentID uuid.UUID) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, payment := range r.store.payments {
		if payment.AssignmentID == assignmentID {
			p := payment
			out = append(out, &p)
		}
	}

	return out, nil
}

func (r *fakePaymentRepo) SumByAssignment(_ context.Context, assignmentID uuid.UUID) (int64, error) {
	var sum int64
	for _, payment := range r.store.payments {
		if payment.AssignmentID == assignmentID {
			sum += payment.Amount
		}
	}

	return sum, nil
}

func (r *fakePaymentRepo) DeleteByAssignment(_ context.Context, assignmentID uuid.UUID) error {
	for id, payment := range r.store.payments {
		if payment.AssignmentID == assignmentID {
			delete(r.store.payments, id)
		}
	}

	return nil
}

// --- Collaborators ---

type fakeSaltRepo struct {
	store   *memStore
	getErr  error
	putErr  error
	getHits int
}

func (r *fakeSaltRepo) GetSalt(_ context.Context, ownerID string) ([]byte, error) {
	r.getHits++
	if r.getErr != nil {
		return nil, r.getErr
	}
	salt, ok := r.store.salts[ownerID]
	if !ok {
		return nil, repository.ErrSaltNotFound
	}

	return salt, nil
}

func (r *fakeSaltRepo) PutSaltIfAbsent(_ context.Context, ownerID string, salt []byte) ([]byte, error) {
	if r.putErr != nil {
		return nil, r.putErr
	}
	if existing, ok := r.store.salts[ownerID]; ok {
		return existing, nil
	}
	r.store.salts[ownerID] = salt

	return salt, nil
}

type fakeSalesLedger struct {
	store *memStore
}

func (l *fakeSalesLedger) RecordConsumption(_ context.Context, itemRef, participantAlias string, quantity, unitPrice int64) (string, error) {
	if l.store.salesErr != nil {
		return "", l.store.salesErr
	}
	l.store.sales = append(l.store.sales, saleRecord{
		ItemRef:   itemRef,
		Alias:     participantAlias,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	})
	l.store.saleSeq++

	return "sale-" + strconv.Itoa(l.store.saleSeq), nil
}

func (l *fakeSalesLedger) RegisterIntake(_ context.Context, itemRef string, quantity int64) error {
	if l.store.intakeErr != nil {
		return l.store.intakeErr
	}
	l.store.intakes[itemRef] += quantity

	return nil
}

type fakeDebtLedger struct {
	store *memStore
}

func (l *fakeDebtLedger) UpsertDebt(_ context.Context, participantAlias string, outstanding int64, idempotencyKey string) error {
	if l.store.debtErr != nil {
		return l.store.debtErr
	}
	l.store.debts[idempotencyKey] = debtRecord{Alias: participantAlias, Outstanding: outstanding}

	return nil
}

func (l *fakeDebtLedger) OutstandingFor(_ context.Context, participantAlias string) (int64, error) {
	var total int64
	for _, debt := range l.store.debts {
		if debt.Alias == participantAlias {
			total += debt.Outstanding
		}
	}

	return total, nil
}

// --- Environment ---

// testEnv wires the real services over the in-memory store, with the real
// namer, cipher and a fast argon2id deriver.
type testEnv struct {
	store       *memStore
	saltRepo    *fakeSaltRepo
	keys        usecase.KeyManager
	anonymizer  usecase.Anonymizer
	campaigns   usecase.CampaignUsecase
	assignments usecase.AssignmentUsecase
	ledger      usecase.LedgerUsecase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := newMemStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	txManager := &fakeTxManager{store: store}
	saltRepo := &fakeSaltRepo{store: store}

	deriver := crypto.NewArgon2Deriver(crypto.Argon2Params{
		Time:      1,
		MemoryKiB: 8,
		Threads:   1,
		SaltLen:   16,
	})

	keys := NewKeyService(KeyServiceParams{
		SaltRepo: saltRepo,
		Deriver:  deriver,
		Logger:   logger,
	})

	anonymizer := NewAnonymizerService(AnonymizerServiceParams{
		Namer:  naming.NewWordNamer(),
		Cipher: crypto.NewAEADCipher(),
		Logger: logger,
	})

	campaigns := NewCampaignService(CampaignServiceParams{
		TxManager:    txManager,
		CampaignRepo: &fakeCampaignRepo{store: store},
		PirateRepo:   &fakePirateRepo{store: store},
		ItemRepo:     &fakeItemRepo{store: store},
		KeyManager:   keys,
		Anonymizer:   anonymizer,
		Logger:       logger,
	})

	assignments := NewAssignmentService(AssignmentServiceParams{
		TxManager:      txManager,
		AssignmentRepo: &fakeAssignmentRepo{store: store},
		Logger:         logger,
	})

	ledger := NewLedgerService(LedgerServiceParams{
		TxManager:      txManager,
		AssignmentRepo: &fakeAssignmentRepo{store: store},
		PaymentRepo:    &fakePaymentRepo{store: store},
		PirateRepo:     &fakePirateRepo{store: store},
		DebtLedger:     &fakeDebtLedger{store: store},
		Logger:         logger,
	})

	return &testEnv{
		store:       store,
		saltRepo:    saltRepo,
		keys:        keys,
		anonymizer:  anonymizer,
		campaigns:   campaigns,
		assignments: assignments,
		ledger:      ledger,
	}
}

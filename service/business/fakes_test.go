package business

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/eksporyuk/service-wallet/config"
	"github.com/eksporyuk/service-wallet/service/models"
	"github.com/pitabwire/frame"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// fixture wires the business layer against the in-memory fakes, with a bare
// frame service for logging.
type fixture struct {
	ctx      context.Context
	service  *frame.Service
	cfg      *config.WalletConfig
	store    *memoryStore
	repos    Repositories
	workMgr  *memoryWorkManager
	registry *fakeRegistry
	notifier *recordingNotifier
}

func newFixture() *fixture {
	cfg := &config.WalletConfig{
		AdminFeePercent:         15,
		FounderSharePercent:     60,
		CoFounderSharePercent:   40,
		DefaultAffiliateRate:    30,
		DefaultEventCreatorRate: 70,
		CurrencyPrecision:       2,
	}
	ctx, service := frame.NewServiceWithContext(context.Background(), "service_wallet_tests", frame.WithConfig(cfg))

	store := newMemoryStore()
	return &fixture{
		ctx:     ctx,
		service: service,
		cfg:     cfg,
		store:   store,
		repos: Repositories{
			Account:     &memoryAccountRepository{store: store},
			LedgerEntry: &memoryLedgerEntryRepository{store: store},
			Revenue:     &memoryPendingRevenueRepository{store: store},
			Transaction: &memoryTransactionRepository{store: store},
		},
		workMgr:  &memoryWorkManager{store: store},
		registry: &fakeRegistry{admin: "owner-admin", founder: "owner-founder", coFounder: "owner-cofounder"},
		notifier: &recordingNotifier{},
	}
}

func (f *fixture) ledger() *Ledger {
	return NewLedger(f.repos.Account, f.repos.LedgerEntry)
}

func (f *fixture) distribution() (DistributionBusiness, error) {
	return NewDistributionBusiness(f.ctx, f.service, f.cfg, f.registry, f.notifier, f.workMgr, f.repos)
}

func (f *fixture) approval() (ApprovalBusiness, error) {
	return NewApprovalBusiness(f.ctx, f.service, f.notifier, f.workMgr, f.repos)
}

func (f *fixture) accountByOwner(ownerID string) *models.Account {
	account, err := f.repos.Account.GetByOwnerID(f.ctx, ownerID)
	if err != nil {
		return nil
	}
	return account
}

// memoryStore is an in-memory stand-in for the database used by the
// repository fakes below. The fake work manager snapshots it before every
// unit of work so a failed unit rolls back like a real transaction.
type memoryStore struct {
	mu sync.Mutex

	accounts     map[string]*models.Account
	ownerIndex   map[string]string
	entries      []*models.LedgerEntry
	revenues     map[string]*models.PendingRevenue
	transactions map[string]*models.Transaction

	nextID int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		accounts:     make(map[string]*models.Account),
		ownerIndex:   make(map[string]string),
		revenues:     make(map[string]*models.PendingRevenue),
		transactions: make(map[string]*models.Transaction),
	}
}

func (s *memoryStore) generateID(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s-%04d", prefix, s.nextID)
}

func (s *memoryStore) snapshot() *memoryStore {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := newMemoryStore()
	clone.nextID = s.nextID
	for id, account := range s.accounts {
		copied := *account
		clone.accounts[id] = &copied
	}
	for owner, id := range s.ownerIndex {
		clone.ownerIndex[owner] = id
	}
	for _, entry := range s.entries {
		copied := *entry
		clone.entries = append(clone.entries, &copied)
	}
	for id, revenue := range s.revenues {
		copied := *revenue
		clone.revenues[id] = &copied
	}
	for id, transaction := range s.transactions {
		copied := *transaction
		clone.transactions[id] = &copied
	}
	return clone
}

func (s *memoryStore) restore(from *memoryStore) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts = from.accounts
	s.ownerIndex = from.ownerIndex
	s.entries = from.entries
	s.revenues = from.revenues
	s.transactions = from.transactions
	s.nextID = from.nextID
}

type memoryWorkManager struct {
	store *memoryStore
}

func (wm *memoryWorkManager) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	saved := wm.store.snapshot()
	if err := fn(ctx); err != nil {
		wm.store.restore(saved)
		return err
	}
	return nil
}

type memoryAccountRepository struct {
	store *memoryStore
}

func (repo *memoryAccountRepository) GetByID(_ context.Context, id string) (*models.Account, error) {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()
	account, ok := repo.store.accounts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *account
	return &copied, nil
}

func (repo *memoryAccountRepository) GetByOwnerID(_ context.Context, ownerID string) (*models.Account, error) {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()
	id, ok := repo.store.ownerIndex[ownerID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *repo.store.accounts[id]
	return &copied, nil
}

func (repo *memoryAccountRepository) GetForUpdateByID(ctx context.Context, id string) (*models.Account, error) {
	return repo.GetByID(ctx, id)
}

func (repo *memoryAccountRepository) GetOrCreateForUpdateByOwnerID(_ context.Context, ownerID string) (*models.Account, error) {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	if id, ok := repo.store.ownerIndex[ownerID]; ok {
		copied := *repo.store.accounts[id]
		return &copied, nil
	}

	account := &models.Account{OwnerID: ownerID}
	account.ID = repo.store.generateID("account")
	repo.store.accounts[account.ID] = account
	repo.store.ownerIndex[ownerID] = account.ID
	copied := *account
	return &copied, nil
}

func (repo *memoryAccountRepository) Save(_ context.Context, account *models.Account) error {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()
	copied := *account
	repo.store.accounts[account.ID] = &copied
	repo.store.ownerIndex[account.OwnerID] = account.ID
	return nil
}

type memoryLedgerEntryRepository struct {
	store *memoryStore
}

func (repo *memoryLedgerEntryRepository) GetByID(_ context.Context, id string) (*models.LedgerEntry, error) {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()
	for _, entry := range repo.store.entries {
		if entry.ID == id {
			copied := *entry
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (repo *memoryLedgerEntryRepository) GetByAccountID(_ context.Context, accountID string, limit int) ([]*models.LedgerEntry, error) {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()
	var entries []*models.LedgerEntry
	for _, entry := range repo.store.entries {
		if entry.AccountID == accountID {
			copied := *entry
			entries = append(entries, &copied)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].ID > entries[j].ID })
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (repo *memoryLedgerEntryRepository) GetBySourceID(_ context.Context, sourceID string) ([]*models.LedgerEntry, error) {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()
	var entries []*models.LedgerEntry
	for _, entry := range repo.store.entries {
		if entry.SourceID == sourceID {
			copied := *entry
			entries = append(entries, &copied)
		}
	}
	return entries, nil
}

func (repo *memoryLedgerEntryRepository) SumByAccountID(_ context.Context, accountID string) (decimal.Decimal, error) {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()
	total := decimal.Zero
	for _, entry := range repo.store.entries {
		if entry.AccountID == accountID {
			total = total.Add(entry.Amount)
		}
	}
	return total, nil
}

func (repo *memoryLedgerEntryRepository) Save(_ context.Context, entry *models.LedgerEntry) error {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()
	if entry.ID == "" {
		entry.ID = repo.store.generateID("entry")
	}
	copied := *entry
	repo.store.entries = append(repo.store.entries, &copied)
	return nil
}

type memoryPendingRevenueRepository struct {
	store *memoryStore
}

func (repo *memoryPendingRevenueRepository) GetByID(_ context.Context, id string) (*models.PendingRevenue, error) {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()
	revenue, ok := repo.store.revenues[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *revenue
	return &copied, nil
}

func (repo *memoryPendingRevenueRepository) GetForUpdateByID(ctx context.Context, id string) (*models.PendingRevenue, error) {
	return repo.GetByID(ctx, id)
}

func (repo *memoryPendingRevenueRepository) GetByTransactionID(_ context.Context, transactionID string) ([]*models.PendingRevenue, error) {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()
	var revenues []*models.PendingRevenue
	for _, revenue := range repo.store.revenues {
		if revenue.TransactionID == transactionID {
			copied := *revenue
			revenues = append(revenues, &copied)
		}
	}
	return revenues, nil
}

func (repo *memoryPendingRevenueRepository) GetByStatus(_ context.Context, status string, limit int) ([]*models.PendingRevenue, error) {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()
	var revenues []*models.PendingRevenue
	for _, revenue := range repo.store.revenues {
		if revenue.Status == status {
			copied := *revenue
			revenues = append(revenues, &copied)
		}
	}
	if limit > 0 && len(revenues) > limit {
		revenues = revenues[:limit]
	}
	return revenues, nil
}

func (repo *memoryPendingRevenueRepository) GetByAccountID(_ context.Context, accountID string, limit int) ([]*models.PendingRevenue, error) {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()
	var revenues []*models.PendingRevenue
	for _, revenue := range repo.store.revenues {
		if revenue.AccountID == accountID {
			copied := *revenue
			revenues = append(revenues, &copied)
		}
	}
	if limit > 0 && len(revenues) > limit {
		revenues = revenues[:limit]
	}
	return revenues, nil
}

func (repo *memoryPendingRevenueRepository) SumPendingByAccountID(_ context.Context, accountID string) (decimal.Decimal, error) {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()
	total := decimal.Zero
	for _, revenue := range repo.store.revenues {
		if revenue.AccountID == accountID && revenue.Status == models.RevenueStatusPending {
			total = total.Add(revenue.Amount)
		}
	}
	return total, nil
}

func (repo *memoryPendingRevenueRepository) Save(_ context.Context, revenue *models.PendingRevenue) error {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()
	if revenue.ID == "" {
		revenue.ID = repo.store.generateID("revenue")
	}
	copied := *revenue
	repo.store.revenues[revenue.ID] = &copied
	return nil
}

type memoryTransactionRepository struct {
	store *memoryStore
}

func (repo *memoryTransactionRepository) GetByID(_ context.Context, id string) (*models.Transaction, error) {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()
	transaction, ok := repo.store.transactions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *transaction
	return &copied, nil
}

func (repo *memoryTransactionRepository) GetForUpdateByID(ctx context.Context, id string) (*models.Transaction, error) {
	return repo.GetByID(ctx, id)
}

func (repo *memoryTransactionRepository) Save(_ context.Context, transaction *models.Transaction) error {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()
	copied := *transaction
	repo.store.transactions[transaction.ID] = &copied
	return nil
}

type fakeRegistry struct {
	admin     string
	founder   string
	coFounder string
}

func (r *fakeRegistry) AdminOwnerID(_ context.Context) (string, error) {
	if r.admin == "" {
		return "", ErrorBeneficiaryResolution
	}
	return r.admin, nil
}

func (r *fakeRegistry) FounderOwnerID(_ context.Context) (string, error) {
	if r.founder == "" {
		return "", ErrorBeneficiaryResolution
	}
	return r.founder, nil
}

func (r *fakeRegistry) CoFounderOwnerID(_ context.Context) (string, error) {
	if r.coFounder == "" {
		return "", ErrorBeneficiaryResolution
	}
	return r.coFounder, nil
}

type recordingNotifier struct {
	mu            sync.Mutex
	notifications []models.BeneficiaryNotification
	err           error
}

func (n *recordingNotifier) NotifyBeneficiary(_ context.Context, notification models.BeneficiaryNotification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.notifications = append(n.notifications, notification)
	return nil
}

func (n *recordingNotifier) sent() []models.BeneficiaryNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]models.BeneficiaryNotification(nil), n.notifications...)
}

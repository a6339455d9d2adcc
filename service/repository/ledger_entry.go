package repository

import (
	"context"

	"github.com/eksporyuk/service-wallet/service/models"
	"github.com/pitabwire/frame"
	"github.com/shopspring/decimal"
)

type LedgerEntryRepository interface {
	GetByID(ctx context.Context, id string) (*models.LedgerEntry, error)
	GetByAccountID(ctx context.Context, accountID string, limit int) ([]*models.LedgerEntry, error)
	GetBySourceID(ctx context.Context, sourceID string) ([]*models.LedgerEntry, error)
	SumByAccountID(ctx context.Context, accountID string) (decimal.Decimal, error)
	Save(ctx context.Context, entry *models.LedgerEntry) error
}

type ledgerEntryRepository struct {
	abstractRepository
}

func NewLedgerEntryRepository(_ context.Context, service *frame.Service) LedgerEntryRepository {
	return &ledgerEntryRepository{abstractRepository{service: service}}
}

func (repo *ledgerEntryRepository) GetByID(ctx context.Context, id string) (*models.LedgerEntry, error) {
	entry := models.LedgerEntry{}
	err := repo.readDB(ctx).First(&entry, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (repo *ledgerEntryRepository) GetByAccountID(ctx context.Context, accountID string, limit int) ([]*models.LedgerEntry, error) {
	var entries []*models.LedgerEntry
	query := repo.readDB(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *ledgerEntryRepository) GetBySourceID(ctx context.Context, sourceID string) ([]*models.LedgerEntry, error) {
	var entries []*models.LedgerEntry
	err := repo.readDB(ctx).Find(&entries, "source_id = ?", sourceID).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *ledgerEntryRepository) SumByAccountID(ctx context.Context, accountID string) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := repo.readDB(ctx).Model(&models.LedgerEntry{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("account_id = ?", accountID).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (repo *ledgerEntryRepository) Save(ctx context.Context, entry *models.LedgerEntry) error {
	return repo.writeDB(ctx).Create(entry).Error
}

package repository

import (
	"context"

	"github.com/eksporyuk/service-wallet/service/models"
	"github.com/pitabwire/frame"
	"github.com/shopspring/decimal"
	"gorm.io/gorm/clause"
)

type PendingRevenueRepository interface {
	GetByID(ctx context.Context, id string) (*models.PendingRevenue, error)
	GetForUpdateByID(ctx context.Context, id string) (*models.PendingRevenue, error)
	GetByTransactionID(ctx context.Context, transactionID string) ([]*models.PendingRevenue, error)
	GetByStatus(ctx context.Context, status string, limit int) ([]*models.PendingRevenue, error)
	GetByAccountID(ctx context.Context, accountID string, limit int) ([]*models.PendingRevenue, error)
	SumPendingByAccountID(ctx context.Context, accountID string) (decimal.Decimal, error)
	Save(ctx context.Context, revenue *models.PendingRevenue) error
}

type pendingRevenueRepository struct {
	abstractRepository
}

func NewPendingRevenueRepository(_ context.Context, service *frame.Service) PendingRevenueRepository {
	return &pendingRevenueRepository{abstractRepository{service: service}}
}

func (repo *pendingRevenueRepository) GetByID(ctx context.Context, id string) (*models.PendingRevenue, error) {
	revenue := models.PendingRevenue{}
	err := repo.readDB(ctx).First(&revenue, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &revenue, nil
}

func (repo *pendingRevenueRepository) GetForUpdateByID(ctx context.Context, id string) (*models.PendingRevenue, error) {
	revenue := models.PendingRevenue{}
	err := repo.writeDB(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&revenue, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &revenue, nil
}

func (repo *pendingRevenueRepository) GetByTransactionID(ctx context.Context, transactionID string) ([]*models.PendingRevenue, error) {
	var revenues []*models.PendingRevenue
	err := repo.readDB(ctx).Find(&revenues, "transaction_id = ?", transactionID).Error
	if err != nil {
		return nil, err
	}
	return revenues, nil
}

func (repo *pendingRevenueRepository) GetByStatus(ctx context.Context, status string, limit int) ([]*models.PendingRevenue, error) {
	var revenues []*models.PendingRevenue
	query := repo.readDB(ctx).
		Where("status = ?", status).
		Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&revenues).Error
	if err != nil {
		return nil, err
	}
	return revenues, nil
}

func (repo *pendingRevenueRepository) GetByAccountID(ctx context.Context, accountID string, limit int) ([]*models.PendingRevenue, error) {
	var revenues []*models.PendingRevenue
	query := repo.readDB(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&revenues).Error
	if err != nil {
		return nil, err
	}
	return revenues, nil
}

func (repo *pendingRevenueRepository) SumPendingByAccountID(ctx context.Context, accountID string) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := repo.readDB(ctx).Model(&models.PendingRevenue{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("account_id = ? AND status = ?", accountID, models.RevenueStatusPending).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (repo *pendingRevenueRepository) Save(ctx context.Context, revenue *models.PendingRevenue) error {
	return repo.writeDB(ctx).Save(revenue).Error
}

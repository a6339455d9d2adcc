package repository

import (
	"context"

	"github.com/eksporyuk/service-wallet/service/models"
	"github.com/pitabwire/frame"
	"gorm.io/gorm/clause"
)

type TransactionRepository interface {
	GetByID(ctx context.Context, id string) (*models.Transaction, error)
	GetForUpdateByID(ctx context.Context, id string) (*models.Transaction, error)
	Save(ctx context.Context, transaction *models.Transaction) error
}

type transactionRepository struct {
	abstractRepository
}

func NewTransactionRepository(_ context.Context, service *frame.Service) TransactionRepository {
	return &transactionRepository{abstractRepository{service: service}}
}

func (repo *transactionRepository) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	transaction := models.Transaction{}
	err := repo.readDB(ctx).First(&transaction, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (repo *transactionRepository) GetForUpdateByID(ctx context.Context, id string) (*models.Transaction, error) {
	transaction := models.Transaction{}
	err := repo.writeDB(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&transaction, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (repo *transactionRepository) Save(ctx context.Context, transaction *models.Transaction) error {
	return repo.writeDB(ctx).Save(transaction).Error
}

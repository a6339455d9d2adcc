package repository

import (
	"context"
	"errors"

	"github.com/eksporyuk/service-wallet/service/models"
	"github.com/pitabwire/frame"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AccountRepository interface {
	GetByID(ctx context.Context, id string) (*models.Account, error)
	GetByOwnerID(ctx context.Context, ownerID string) (*models.Account, error)
	GetForUpdateByID(ctx context.Context, id string) (*models.Account, error)
	GetOrCreateForUpdateByOwnerID(ctx context.Context, ownerID string) (*models.Account, error)
	Save(ctx context.Context, account *models.Account) error
}

type accountRepository struct {
	abstractRepository
}

func NewAccountRepository(_ context.Context, service *frame.Service) AccountRepository {
	return &accountRepository{abstractRepository{service: service}}
}

func (repo *accountRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	account := models.Account{}
	err := repo.readDB(ctx).First(&account, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (repo *accountRepository) GetByOwnerID(ctx context.Context, ownerID string) (*models.Account, error) {
	account := models.Account{}
	err := repo.readDB(ctx).First(&account, "owner_id = ?", ownerID).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (repo *accountRepository) GetForUpdateByID(ctx context.Context, id string) (*models.Account, error) {
	account := models.Account{}
	err := repo.writeDB(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&account, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// GetOrCreateForUpdateByOwnerID locks the owner's account row, creating the
// row first when the owner has never been credited before.
func (repo *accountRepository) GetOrCreateForUpdateByOwnerID(ctx context.Context, ownerID string) (*models.Account, error) {
	db := repo.writeDB(ctx)

	account := models.Account{}
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&account, "owner_id = ?", ownerID).Error
	if err == nil {
		return &account, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	account = models.Account{OwnerID: ownerID}
	account.GenID(ctx)
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner_id"}},
		DoNothing: true,
	}).Create(&account).Error
	if err != nil {
		return nil, err
	}

	err = db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&account, "owner_id = ?", ownerID).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (repo *accountRepository) Save(ctx context.Context, account *models.Account) error {
	return repo.writeDB(ctx).Save(account).Error
}

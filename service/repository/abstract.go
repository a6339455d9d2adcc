package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/pitabwire/frame"
)

type txContextKey struct{}

// WorkManager runs a function inside one database transaction. Every
// repository call made with the context it supplies joins that transaction,
// so a distribution or approval commits or rolls back as a single unit.
type WorkManager interface {
	InTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type gormWorkManager struct {
	service *frame.Service
}

func NewWorkManager(_ context.Context, service *frame.Service) WorkManager {
	return &gormWorkManager{service: service}
}

func (wm *gormWorkManager) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return wm.service.DB(ctx, false).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txContextKey{}, tx))
	})
}

type abstractRepository struct {
	service *frame.Service
}

func (ar *abstractRepository) readDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok {
		return tx
	}
	return ar.service.DB(ctx, true)
}

func (ar *abstractRepository) writeDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok {
		return tx
	}
	return ar.service.DB(ctx, false)
}

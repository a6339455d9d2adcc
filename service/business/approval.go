package business

import (
	"context"
	"errors"
	"time"

	"github.com/eksporyuk/service-wallet/service/models"
	"github.com/eksporyuk/service-wallet/service/repository"
	"github.com/pitabwire/frame"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ApprovalBusiness interface {
	Approve(ctx context.Context, revenueID string, approverID string, adjustedAmount *decimal.Decimal, note string) (*models.PendingRevenue, error)
	Reject(ctx context.Context, revenueID string, approverID string, note string) (*models.PendingRevenue, error)
	GetByID(ctx context.Context, revenueID string) (*models.PendingRevenue, error)
	ListByStatus(ctx context.Context, status string, limit int) ([]*models.PendingRevenue, error)
}

type approvalBusiness struct {
	service  *frame.Service
	notifier BeneficiaryNotifier
	workMgr  repository.WorkManager
	ledger   *Ledger
	repos    Repositories
}

func NewApprovalBusiness(_ context.Context, service *frame.Service, notifier BeneficiaryNotifier, workMgr repository.WorkManager, repos Repositories) (ApprovalBusiness, error) {
	if service == nil || notifier == nil || workMgr == nil {
		return nil, ErrorInitializationFail
	}
	if repos.Account == nil || repos.LedgerEntry == nil || repos.Revenue == nil {
		return nil, ErrorInitializationFail
	}
	return &approvalBusiness{
		service:  service,
		notifier: notifier,
		workMgr:  workMgr,
		ledger:   NewLedger(repos.Account, repos.LedgerEntry),
		repos:    repos,
	}, nil
}

// Approve finalises one pending revenue share. The pending pool always drops
// by the original amount; the available pool gains the adjusted amount when
// one was supplied, otherwise the original.
func (ab *approvalBusiness) Approve(ctx context.Context, revenueID string, approverID string, adjustedAmount *decimal.Decimal, note string) (*models.PendingRevenue, error) {
	logger := ab.service.Log(ctx).
		WithField("revenueId", revenueID).
		WithField("approverId", approverID)

	if adjustedAmount != nil && adjustedAmount.IsNegative() {
		return nil, ErrorInvalidAmount
	}

	var revenue *models.PendingRevenue
	var account *models.Account

	err := ab.workMgr.InTransaction(ctx, func(ctx context.Context) error {
		var txErr error
		revenue, txErr = ab.loadPendingForUpdate(ctx, revenueID)
		if txErr != nil {
			return txErr
		}

		now := time.Now().UTC()
		revenue.Status = models.RevenueStatusApproved
		if adjustedAmount != nil {
			revenue.Status = models.RevenueStatusAdjusted
			revenue.AdjustedAmount = decimal.NullDecimal{Valid: true, Decimal: *adjustedAmount}
		}
		revenue.ApprovedBy = approverID
		revenue.ApprovedAt = &now
		revenue.Note = note

		description := "Approved " + revenue.ShareType
		if adjustedAmount != nil {
			description += " (adjusted)"
		}

		account, txErr = ab.ledger.MoveFromPendingToAvailable(ctx, revenue.AccountID,
			revenue.Amount, revenue.FinalAmount(), revenue.TransactionID, description)
		if txErr != nil {
			return txErr
		}

		return ab.repos.Revenue.Save(ctx, revenue)
	})
	if err != nil {
		logger.WithError(err).Error("could not approve pending revenue")
		return nil, err
	}

	eventKind := models.NotifyRevenueApproved
	notificationContext := map[string]string{
		"transactionId": revenue.TransactionID,
		"shareType":     revenue.ShareType,
	}
	if adjustedAmount != nil {
		eventKind = models.NotifyRevenueAdjusted
		notificationContext["originalAmount"] = revenue.Amount.String()
		notificationContext["adjustmentDelta"] = revenue.FinalAmount().Sub(revenue.Amount).String()
		if note != "" {
			notificationContext["note"] = note
		}
	}
	ab.notify(ctx, models.BeneficiaryNotification{
		OwnerID:   account.OwnerID,
		EventKind: eventKind,
		Amount:    revenue.FinalAmount(),
		Context:   notificationContext,
	})

	logger.WithField("status", revenue.Status).Info("approved pending revenue")
	return revenue, nil
}

// Reject discards one pending revenue share. The pending pool drops by the
// original amount and nothing is credited.
func (ab *approvalBusiness) Reject(ctx context.Context, revenueID string, approverID string, note string) (*models.PendingRevenue, error) {
	logger := ab.service.Log(ctx).
		WithField("revenueId", revenueID).
		WithField("approverId", approverID)

	var revenue *models.PendingRevenue
	var account *models.Account

	err := ab.workMgr.InTransaction(ctx, func(ctx context.Context) error {
		var txErr error
		revenue, txErr = ab.loadPendingForUpdate(ctx, revenueID)
		if txErr != nil {
			return txErr
		}

		now := time.Now().UTC()
		revenue.Status = models.RevenueStatusRejected
		revenue.ApprovedBy = approverID
		revenue.ApprovedAt = &now
		revenue.Note = note

		account, txErr = ab.ledger.RemoveFromPending(ctx, revenue.AccountID, revenue.Amount)
		if txErr != nil {
			return txErr
		}

		return ab.repos.Revenue.Save(ctx, revenue)
	})
	if err != nil {
		logger.WithError(err).Error("could not reject pending revenue")
		return nil, err
	}

	ab.notify(ctx, models.BeneficiaryNotification{
		OwnerID:   account.OwnerID,
		EventKind: models.NotifyRevenueRejected,
		Amount:    revenue.Amount,
		Context: map[string]string{
			"transactionId": revenue.TransactionID,
			"shareType":     revenue.ShareType,
			"note":          note,
		},
	})

	logger.Info("rejected pending revenue")
	return revenue, nil
}

func (ab *approvalBusiness) GetByID(ctx context.Context, revenueID string) (*models.PendingRevenue, error) {
	revenue, err := ab.repos.Revenue.GetByID(ctx, revenueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrorRevenueDoesNotExist
		}
		return nil, err
	}
	return revenue, nil
}

func (ab *approvalBusiness) ListByStatus(ctx context.Context, status string, limit int) ([]*models.PendingRevenue, error) {
	return ab.repos.Revenue.GetByStatus(ctx, status, limit)
}

func (ab *approvalBusiness) loadPendingForUpdate(ctx context.Context, revenueID string) (*models.PendingRevenue, error) {
	revenue, err := ab.repos.Revenue.GetForUpdateByID(ctx, revenueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrorRevenueDoesNotExist
		}
		return nil, err
	}
	if revenue.IsProcessed() {
		return nil, ErrorRevenueAlreadyProcessed
	}
	return revenue, nil
}

func (ab *approvalBusiness) notify(ctx context.Context, notification models.BeneficiaryNotification) {
	if err := ab.notifier.NotifyBeneficiary(ctx, notification); err != nil {
		ab.service.Log(ctx).WithError(err).
			WithField("ownerId", notification.OwnerID).
			Warn("could not notify beneficiary")
	}
}

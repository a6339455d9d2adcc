package business

import (
	"context"
	"errors"
	"time"

	"github.com/eksporyuk/service-wallet/config"
	"github.com/eksporyuk/service-wallet/service/models"
	"github.com/eksporyuk/service-wallet/service/repository"
	"github.com/pitabwire/frame"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Repositories bundles the persistence interfaces the business layer works
// through. Tests swap in in-memory implementations.
type Repositories struct {
	Account     repository.AccountRepository
	LedgerEntry repository.LedgerEntryRepository
	Revenue     repository.PendingRevenueRepository
	Transaction repository.TransactionRepository
}

type DistributionResult struct {
	TransactionID     string
	Breakdown         *Breakdown
	PendingRevenueIDs []string
}

type DistributionBusiness interface {
	Distribute(ctx context.Context, settlement *models.TransactionSettled) (*DistributionResult, error)
}

type distributionBusiness struct {
	service  *frame.Service
	cfg      *config.WalletConfig
	shares   ShareConfig
	registry BeneficiaryRegistry
	notifier BeneficiaryNotifier
	workMgr  repository.WorkManager
	ledger   *Ledger
	repos    Repositories
}

func NewDistributionBusiness(_ context.Context, service *frame.Service, cfg *config.WalletConfig, registry BeneficiaryRegistry, notifier BeneficiaryNotifier, workMgr repository.WorkManager, repos Repositories) (DistributionBusiness, error) {
	if service == nil || cfg == nil || registry == nil || notifier == nil || workMgr == nil {
		return nil, ErrorInitializationFail
	}
	if repos.Account == nil || repos.LedgerEntry == nil || repos.Revenue == nil || repos.Transaction == nil {
		return nil, ErrorInitializationFail
	}
	return &distributionBusiness{
		service:  service,
		cfg:      cfg,
		shares:   ShareConfigFromWalletConfig(cfg),
		registry: registry,
		notifier: notifier,
		workMgr:  workMgr,
		ledger:   NewLedger(repos.Account, repos.LedgerEntry),
		repos:    repos,
	}, nil
}

type pendingShare struct {
	ownerID    string
	amount     decimal.Decimal
	shareType  string
	percentage decimal.Decimal
}

// Distribute splits one settled transaction across its beneficiaries inside a
// single atomic unit of work. A repeat delivery of the same transaction id
// returns ErrorTransactionAlreadyDistributed with nothing written.
func (db *distributionBusiness) Distribute(ctx context.Context, settlement *models.TransactionSettled) (*DistributionResult, error) {
	logger := db.service.Log(ctx).
		WithField("transactionId", settlement.TransactionID).
		WithField("category", settlement.Category)

	if settlement.TransactionID == "" {
		return nil, ErrorInvalidSettlement
	}
	if settlement.Amount.IsNegative() {
		return nil, ErrorInvalidAmount
	}

	adminOwner, err := db.registry.AdminOwnerID(ctx)
	if err != nil {
		logger.WithError(err).Error("could not resolve admin beneficiary")
		return nil, err
	}
	founderOwner, err := db.registry.FounderOwnerID(ctx)
	if err != nil {
		logger.WithError(err).Error("could not resolve founder beneficiary")
		return nil, err
	}
	coFounderOwner, err := db.registry.CoFounderOwnerID(ctx)
	if err != nil {
		logger.WithError(err).Error("could not resolve co-founder beneficiary")
		return nil, err
	}

	rule := db.ruleFor(settlement)
	rate, rateType := db.affiliateTerms(settlement)

	breakdown, err := CalculateSplit(settlement.Amount, rate, rateType, rule, db.shares)
	if err != nil {
		logger.WithError(err).Error("could not calculate revenue split")
		return nil, err
	}

	mentorOwner := settlement.MentorOwnerID
	if settlement.Category == models.CategoryEvent {
		mentorOwner = settlement.EventCreatorOwnerID
	}

	result := &DistributionResult{
		TransactionID: settlement.TransactionID,
		Breakdown:     breakdown,
	}

	pendingShares := []pendingShare{
		{adminOwner, breakdown.Company, models.ShareTypeAdminFee, db.shares.AdminFeePercent},
		{founderOwner, breakdown.Founder, models.ShareTypeFounderShare, db.shares.FounderPercent},
		{coFounderOwner, breakdown.CoFounder, models.ShareTypeCoFounderShare, db.shares.CoFounderPercent},
	}

	err = db.workMgr.InTransaction(ctx, func(ctx context.Context) error {
		transaction, txErr := db.loadOrCreateTransaction(ctx, settlement)
		if txErr != nil {
			return txErr
		}
		if transaction.IsDistributed() {
			return ErrorTransactionAlreadyDistributed
		}

		if settlement.AffiliateOwnerID != "" && breakdown.Affiliate.IsPositive() {
			_, txErr = db.ledger.Credit(ctx, settlement.AffiliateOwnerID, breakdown.Affiliate,
				PoolAvailable, models.EntryKindCommission, settlement.TransactionID,
				"Affiliate commission - "+settlement.Category)
			if txErr != nil {
				return txErr
			}
		}

		if mentorOwner != "" && breakdown.Mentor.IsPositive() {
			_, txErr = db.ledger.Credit(ctx, mentorOwner, breakdown.Mentor,
				PoolAvailable, models.EntryKindCommission, settlement.TransactionID,
				"Creator commission - "+settlement.Category)
			if txErr != nil {
				return txErr
			}
		}

		for _, share := range pendingShares {
			if !share.amount.IsPositive() {
				continue
			}
			account, txErr := db.ledger.Credit(ctx, share.ownerID, share.amount,
				PoolPending, models.EntryKindCommission, settlement.TransactionID,
				share.shareType+" - "+settlement.Category)
			if txErr != nil {
				return txErr
			}

			revenue := &models.PendingRevenue{
				AccountID:     account.GetID(),
				TransactionID: settlement.TransactionID,
				ShareType:     share.shareType,
				Amount:        share.amount,
				Percentage:    share.percentage,
				Status:        models.RevenueStatusPending,
			}
			revenue.GenID(ctx)
			if txErr = db.repos.Revenue.Save(ctx, revenue); txErr != nil {
				return txErr
			}
			result.PendingRevenueIDs = append(result.PendingRevenueIDs, revenue.GetID())
		}

		now := time.Now().UTC()
		transaction.DistributedAt = &now
		transaction.Breakdown = breakdownProperties(breakdown, rule)
		return db.repos.Transaction.Save(ctx, transaction)
	})
	if err != nil {
		if errors.Is(err, ErrorTransactionAlreadyDistributed) {
			logger.Info("transaction already distributed, skipping")
		} else {
			logger.WithError(err).Error("could not distribute transaction")
		}
		return nil, err
	}

	db.notifyRecipients(ctx, settlement, mentorOwner, pendingShares, breakdown)

	logger.WithField("total", breakdown.Total).Info("distributed transaction revenue")
	return result, nil
}

func (db *distributionBusiness) loadOrCreateTransaction(ctx context.Context, settlement *models.TransactionSettled) (*models.Transaction, error) {
	transaction, err := db.repos.Transaction.GetForUpdateByID(ctx, settlement.TransactionID)
	if err == nil {
		return transaction, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	transaction = &models.Transaction{
		Amount:   settlement.Amount,
		Currency: settlement.Currency,
		Category: settlement.Category,
	}
	transaction.ID = settlement.TransactionID
	if err = db.repos.Transaction.Save(ctx, transaction); err != nil {
		return nil, err
	}
	return transaction, nil
}

func (db *distributionBusiness) ruleFor(settlement *models.TransactionSettled) DistributionRule {
	switch settlement.Category {
	case models.CategoryCourse:
		if settlement.MentorOwnerID != "" && settlement.MentorRatePercent.IsPositive() {
			return CourseMentorRule{
				MentorPercent:       settlement.MentorRatePercent,
				MentorIsFounderTier: settlement.MentorIsFounderTier,
			}
		}
	case models.CategoryEvent:
		if settlement.EventCreatorOwnerID != "" {
			rate := settlement.CreatorRatePercent
			if rate.IsZero() {
				rate = decimal.NewFromFloat(db.cfg.DefaultEventCreatorRate)
			}
			return EventCreatorRule{CreatorPercent: rate}
		}
	}
	return StandardRule{}
}

func (db *distributionBusiness) affiliateTerms(settlement *models.TransactionSettled) (decimal.Decimal, string) {
	if settlement.AffiliateOwnerID == "" {
		return decimal.Zero, models.RateTypePercentage
	}
	rateType := settlement.AffiliateType
	if rateType == "" {
		rateType = models.RateTypePercentage
	}
	rate := settlement.AffiliateRate
	if rate.IsZero() && rateType == models.RateTypePercentage {
		rate = decimal.NewFromFloat(db.cfg.DefaultAffiliateRate)
	}
	return rate, rateType
}

// notifyRecipients runs strictly after the financial unit of work has
// committed. Failures are logged and swallowed.
func (db *distributionBusiness) notifyRecipients(ctx context.Context, settlement *models.TransactionSettled, mentorOwner string, pendingShares []pendingShare, breakdown *Breakdown) {
	logger := db.service.Log(ctx).WithField("transactionId", settlement.TransactionID)

	notifications := make([]models.BeneficiaryNotification, 0, 5)
	if settlement.AffiliateOwnerID != "" && breakdown.Affiliate.IsPositive() {
		notifications = append(notifications, models.BeneficiaryNotification{
			OwnerID:   settlement.AffiliateOwnerID,
			EventKind: models.NotifyCommissionEarned,
			Amount:    breakdown.Affiliate,
			Context: map[string]string{
				"transactionId": settlement.TransactionID,
				"category":      settlement.Category,
				"role":          "affiliate",
			},
		})
	}
	if mentorOwner != "" && breakdown.Mentor.IsPositive() {
		notifications = append(notifications, models.BeneficiaryNotification{
			OwnerID:   mentorOwner,
			EventKind: models.NotifyCommissionEarned,
			Amount:    breakdown.Mentor,
			Context: map[string]string{
				"transactionId": settlement.TransactionID,
				"category":      settlement.Category,
				"role":          "creator",
			},
		})
	}
	for _, share := range pendingShares {
		if !share.amount.IsPositive() {
			continue
		}
		notifications = append(notifications, models.BeneficiaryNotification{
			OwnerID:   share.ownerID,
			EventKind: models.NotifyRevenuePending,
			Amount:    share.amount,
			Context: map[string]string{
				"transactionId": settlement.TransactionID,
				"category":      settlement.Category,
				"shareType":     share.shareType,
			},
		})
	}

	for _, notification := range notifications {
		if err := db.notifier.NotifyBeneficiary(ctx, notification); err != nil {
			logger.WithError(err).
				WithField("ownerId", notification.OwnerID).
				Warn("could not notify beneficiary")
		}
	}
}

func breakdownProperties(breakdown *Breakdown, rule DistributionRule) datatypes.JSONMap {
	return datatypes.JSONMap{
		"rule":      rule.Name(),
		"affiliate": breakdown.Affiliate.String(),
		"mentor":    breakdown.Mentor.String(),
		"company":   breakdown.Company.String(),
		"founder":   breakdown.Founder.String(),
		"coFounder": breakdown.CoFounder.String(),
		"total":     breakdown.Total.String(),
	}
}

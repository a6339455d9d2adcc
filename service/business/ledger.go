package business

import (
	"context"
	"errors"

	"github.com/eksporyuk/service-wallet/service/models"
	"github.com/eksporyuk/service-wallet/service/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BalancePool string

const (
	PoolAvailable BalancePool = "available"
	PoolPending   BalancePool = "pending"
)

// Ledger is the sole writer of account balance state. Mutating methods are
// expected to run inside a WorkManager transaction so the balance counters
// and the entry log move together; pending credits carry no ledger entry,
// the entry is written when the pending revenue is approved.
type Ledger struct {
	accountRepo repository.AccountRepository
	entryRepo   repository.LedgerEntryRepository
}

func NewLedger(accountRepo repository.AccountRepository, entryRepo repository.LedgerEntryRepository) *Ledger {
	return &Ledger{accountRepo: accountRepo, entryRepo: entryRepo}
}

// Credit adds amount to the owner's chosen pool, creating the account on
// first use. Available-pool credits count towards lifetime earnings and
// append one ledger entry.
func (l *Ledger) Credit(ctx context.Context, ownerID string, amount decimal.Decimal, pool BalancePool, kind string, sourceRef string, description string) (*models.Account, error) {
	if amount.IsNegative() {
		return nil, ErrorInvalidAmount
	}

	account, err := l.accountRepo.GetOrCreateForUpdateByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	switch pool {
	case PoolAvailable:
		account.Available = account.Available.Add(amount)
		account.LifetimeEarned = account.LifetimeEarned.Add(amount)
	case PoolPending:
		account.Pending = account.Pending.Add(amount)
	default:
		return nil, ErrorInvalidAmount
	}

	if err = l.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}

	if pool == PoolAvailable {
		if err = l.appendEntry(ctx, account.GetID(), amount, kind, sourceRef, description); err != nil {
			return nil, err
		}
	}
	return account, nil
}

// MoveFromPendingToAvailable releases pendingAmount from the pending pool and
// credits availableAmount to the available pool. The two amounts differ when
// an approval was adjusted.
func (l *Ledger) MoveFromPendingToAvailable(ctx context.Context, accountID string, pendingAmount decimal.Decimal, availableAmount decimal.Decimal, sourceRef string, description string) (*models.Account, error) {
	if pendingAmount.IsNegative() || availableAmount.IsNegative() {
		return nil, ErrorInvalidAmount
	}

	account, err := l.accountRepo.GetForUpdateByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.Pending.LessThan(pendingAmount) {
		return nil, ErrorInsufficientPending
	}

	account.Pending = account.Pending.Sub(pendingAmount)
	account.Available = account.Available.Add(availableAmount)
	account.LifetimeEarned = account.LifetimeEarned.Add(availableAmount)

	if err = l.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}
	if err = l.appendEntry(ctx, account.GetID(), availableAmount, models.EntryKindCredit, sourceRef, description); err != nil {
		return nil, err
	}
	return account, nil
}

// RemoveFromPending discards amount from the pending pool with no available
// credit, used when a pending revenue is rejected.
func (l *Ledger) RemoveFromPending(ctx context.Context, accountID string, amount decimal.Decimal) (*models.Account, error) {
	if amount.IsNegative() {
		return nil, ErrorInvalidAmount
	}

	account, err := l.accountRepo.GetForUpdateByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.Pending.LessThan(amount) {
		return nil, ErrorInsufficientPending
	}

	account.Pending = account.Pending.Sub(amount)
	if err = l.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Payout debits the available pool and counts the amount as paid out. The
// actual transfer to external rails is handled elsewhere.
func (l *Ledger) Payout(ctx context.Context, accountID string, amount decimal.Decimal, sourceRef string, description string) (*models.Account, error) {
	if amount.IsNegative() {
		return nil, ErrorInvalidAmount
	}

	account, err := l.accountRepo.GetForUpdateByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.Available.LessThan(amount) {
		return nil, ErrorInsufficientBalance
	}

	account.Available = account.Available.Sub(amount)
	account.LifetimePaidOut = account.LifetimePaidOut.Add(amount)

	if err = l.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}
	if err = l.appendEntry(ctx, account.GetID(), amount.Neg(), models.EntryKindPayout, sourceRef, description); err != nil {
		return nil, err
	}
	return account, nil
}

// Adjust applies a signed correction to the available pool. History is never
// rewritten, corrections always arrive as new compensating entries.
func (l *Ledger) Adjust(ctx context.Context, accountID string, amount decimal.Decimal, sourceRef string, description string) (*models.Account, error) {
	account, err := l.accountRepo.GetForUpdateByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	balance := account.Available.Add(amount)
	if balance.IsNegative() {
		return nil, ErrorInsufficientBalance
	}
	account.Available = balance

	if err = l.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}
	if err = l.appendEntry(ctx, account.GetID(), amount, models.EntryKindAdjustment, sourceRef, description); err != nil {
		return nil, err
	}
	return account, nil
}

func (l *Ledger) CurrentAvailable(ctx context.Context, ownerID string) (decimal.Decimal, error) {
	account, err := l.accountRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return account.Available, nil
}

func (l *Ledger) CurrentPending(ctx context.Context, ownerID string) (decimal.Decimal, error) {
	account, err := l.accountRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return account.Pending, nil
}

func (l *Ledger) LifetimeEarned(ctx context.Context, ownerID string) (decimal.Decimal, error) {
	account, err := l.accountRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return account.LifetimeEarned, nil
}

func (l *Ledger) RecentEntries(ctx context.Context, ownerID string, limit int) ([]*models.LedgerEntry, error) {
	account, err := l.accountRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return l.entryRepo.GetByAccountID(ctx, account.GetID(), limit)
}

func (l *Ledger) appendEntry(ctx context.Context, accountID string, amount decimal.Decimal, kind string, sourceRef string, description string) error {
	entry := &models.LedgerEntry{
		AccountID:   accountID,
		Amount:      amount,
		Kind:        kind,
		SourceID:    sourceRef,
		Description: description,
	}
	entry.GenID(ctx)
	return l.entryRepo.Save(ctx, entry)
}

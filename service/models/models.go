package models

import (
	"time"

	"github.com/pitabwire/frame"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	EntryKindCommission = "COMMISSION"
	EntryKindCredit     = "CREDIT"
	EntryKindPayout     = "PAYOUT"
	EntryKindAdjustment = "ADJUSTMENT"

	ShareTypeAdminFee       = "ADMIN_FEE"
	ShareTypeFounderShare   = "FOUNDER_SHARE"
	ShareTypeCoFounderShare = "COFOUNDER_SHARE"
	ShareTypeMentorShare    = "MENTOR_SHARE"

	RevenueStatusPending  = "PENDING"
	RevenueStatusApproved = "APPROVED"
	RevenueStatusAdjusted = "ADJUSTED"
	RevenueStatusRejected = "REJECTED"

	RateTypePercentage = "PERCENTAGE"
	RateTypeFlat       = "FLAT"

	CategoryMembership = "MEMBERSHIP"
	CategoryCourse     = "COURSE"
	CategoryProduct    = "PRODUCT"
	CategoryEvent      = "EVENT"
	CategorySupplier   = "SUPPLIER"
)

// Account Table holds one beneficiary's wallet balances
type Account struct {
	frame.BaseModel

	OwnerID string `gorm:"type:varchar(250);uniqueIndex"`

	Available       decimal.Decimal `gorm:"type:numeric" json:"available"`
	Pending         decimal.Decimal `gorm:"type:numeric" json:"pending"`
	LifetimeEarned  decimal.Decimal `gorm:"type:numeric" json:"lifetimeEarned"`
	LifetimePaidOut decimal.Decimal `gorm:"type:numeric" json:"lifetimePaidOut"`
}

// LedgerEntry Table is the append-only log of available-balance movements.
// Rows are only ever inserted, never updated or deleted; replaying the
// signed amounts for an account reproduces its available balance.
type LedgerEntry struct {
	frame.BaseModel

	AccountID   string            `gorm:"type:varchar(50);index"`
	Amount      decimal.Decimal   `gorm:"type:numeric" json:"amount"`
	Kind        string            `gorm:"type:varchar(20)"`
	SourceID    string            `gorm:"type:varchar(50);index"`
	Description string            `gorm:"type:text"`
	Extra       datatypes.JSONMap `gorm:"index:,type:gin,option:jsonb_path_ops" json:"extra"`
}

// PendingRevenue Table holds one not-yet-approved share of a distributed
// transaction. Terminated exactly once by the approval workflow.
type PendingRevenue struct {
	frame.BaseModel

	AccountID     string `gorm:"type:varchar(50);index;uniqueIndex:idx_pending_revenue_once"`
	TransactionID string `gorm:"type:varchar(50);uniqueIndex:idx_pending_revenue_once"`
	ShareType     string `gorm:"type:varchar(20);uniqueIndex:idx_pending_revenue_once"`

	Amount     decimal.Decimal `gorm:"type:numeric" json:"amount"`
	Percentage decimal.Decimal `gorm:"type:numeric" json:"percentage"`
	Status     string          `gorm:"type:varchar(20);index"`

	ApprovedBy     string              `gorm:"type:varchar(250)"`
	ApprovedAt     *time.Time          `json:"approvedAt"`
	AdjustedAmount decimal.NullDecimal `gorm:"type:numeric" json:"adjustedAmount"`
	Note           string              `gorm:"type:text"`
}

func (model *PendingRevenue) IsProcessed() bool {
	return model.Status != RevenueStatusPending
}

// FinalAmount is the amount credited to available on approval, the adjusted
// amount when one was supplied and the original otherwise.
func (model *PendingRevenue) FinalAmount() decimal.Decimal {
	if model.AdjustedAmount.Valid {
		return model.AdjustedAmount.Decimal
	}
	return model.Amount
}

// Transaction Table is the local audit record of an externally settled sale.
// The amount is immutable once recorded; DistributedAt doubles as the
// idempotency marker for distribution.
type Transaction struct {
	frame.BaseModel

	Amount   decimal.Decimal `gorm:"type:numeric" json:"amount"`
	Currency string          `gorm:"type:varchar(10)"`
	Category string          `gorm:"type:varchar(20)"`

	DistributedAt *time.Time
	Breakdown     datatypes.JSONMap `gorm:"index:,type:gin,option:jsonb_path_ops" json:"breakdown"`
}

func (model *Transaction) IsDistributed() bool {
	return model.DistributedAt != nil && !model.DistributedAt.IsZero()
}

// TransactionSettled is the inbound queue payload produced by the payment
// webhook layer once a sale is confirmed paid.
type TransactionSettled struct {
	TransactionID string          `json:"transactionId"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Category      string          `json:"category"`

	AffiliateOwnerID string          `json:"affiliateOwnerId,omitempty"`
	AffiliateRate    decimal.Decimal `json:"affiliateRate"`
	AffiliateType    string          `json:"affiliateType"`

	MentorOwnerID       string          `json:"mentorOwnerId,omitempty"`
	MentorRatePercent   decimal.Decimal `json:"mentorRatePercent"`
	MentorIsFounderTier bool            `json:"mentorIsFounderTier"`

	EventCreatorOwnerID string          `json:"eventCreatorOwnerId,omitempty"`
	CreatorRatePercent  decimal.Decimal `json:"creatorRatePercent"`
}

// ApprovePendingRevenue is the inbound admin decision to release one pending
// revenue share, optionally with an adjusted amount.
type ApprovePendingRevenue struct {
	RevenueID      string           `json:"revenueId"`
	ApproverID     string           `json:"approverId"`
	AdjustedAmount *decimal.Decimal `json:"adjustedAmount,omitempty"`
	Note           string           `json:"note,omitempty"`
}

// RejectPendingRevenue is the inbound admin decision to discard one pending
// revenue share.
type RejectPendingRevenue struct {
	RevenueID  string `json:"revenueId"`
	ApproverID string `json:"approverId"`
	Note       string `json:"note,omitempty"`
}

// BeneficiaryNotification is the outbound payload handed to the external
// multi-channel notification service. Formatting stays on that side.
type BeneficiaryNotification struct {
	OwnerID   string            `json:"ownerId"`
	EventKind string            `json:"eventKind"`
	Amount    decimal.Decimal   `json:"amount"`
	Context   map[string]string `json:"context,omitempty"`
}

const (
	NotifyCommissionEarned = "commission.earned"
	NotifyRevenuePending   = "revenue.pending"
	NotifyRevenueApproved  = "revenue.approved"
	NotifyRevenueAdjusted  = "revenue.adjusted"
	NotifyRevenueRejected  = "revenue.rejected"
)

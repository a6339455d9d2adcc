package business

import (
	"github.com/eksporyuk/service-wallet/config"
	"github.com/eksporyuk/service-wallet/service/models"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// ShareConfig carries the fixed distribution percentages. The founder and
// co-founder percentages apply to what remains after the admin fee and must
// add up to 100.
type ShareConfig struct {
	AdminFeePercent  decimal.Decimal
	FounderPercent   decimal.Decimal
	CoFounderPercent decimal.Decimal
	Precision        int32
}

func ShareConfigFromWalletConfig(cfg *config.WalletConfig) ShareConfig {
	return ShareConfig{
		AdminFeePercent:  decimal.NewFromFloat(cfg.AdminFeePercent),
		FounderPercent:   decimal.NewFromFloat(cfg.FounderSharePercent),
		CoFounderPercent: decimal.NewFromFloat(cfg.CoFounderSharePercent),
		Precision:        cfg.CurrencyPrecision,
	}
}

func (sc ShareConfig) validate() error {
	for _, p := range []decimal.Decimal{sc.AdminFeePercent, sc.FounderPercent, sc.CoFounderPercent} {
		if p.IsNegative() || p.GreaterThan(oneHundred) {
			return ErrorInvalidShareConfig
		}
	}
	if !sc.FounderPercent.Add(sc.CoFounderPercent).Equal(oneHundred) {
		return ErrorInvalidShareConfig
	}
	return nil
}

// Breakdown holds the per-beneficiary amounts of one split. It is ephemeral,
// only the resulting ledger rows are persisted.
type Breakdown struct {
	Affiliate decimal.Decimal
	Mentor    decimal.Decimal
	Company   decimal.Decimal
	Founder   decimal.Decimal
	CoFounder decimal.Decimal
	Total     decimal.Decimal
}

func (b *Breakdown) Sum() decimal.Decimal {
	return b.Affiliate.Add(b.Mentor).Add(b.Company).Add(b.Founder).Add(b.CoFounder)
}

type ruleShares struct {
	mentor    decimal.Decimal
	company   decimal.Decimal
	founder   decimal.Decimal
	coFounder decimal.Decimal
}

// DistributionRule selects how the remainder after the affiliate share is
// divided. One small type per transaction category keeps new categories from
// touching the existing branches.
type DistributionRule interface {
	Name() string
	validate() error
	split(remaining decimal.Decimal, shares ShareConfig) ruleShares
}

// StandardRule applies the admin fee and splits the rest between the founder
// and the co-founder.
type StandardRule struct{}

func (r StandardRule) Name() string { return "STANDARD" }

func (r StandardRule) validate() error { return nil }

func (r StandardRule) split(remaining decimal.Decimal, shares ShareConfig) ruleShares {
	return standardShares(remaining, shares)
}

// CourseMentorRule pays the course mentor a percentage of the remainder and
// routes everything left to the company pool. A founder-tier mentor forfeits
// the dedicated share and the standard split applies instead.
type CourseMentorRule struct {
	MentorPercent       decimal.Decimal
	MentorIsFounderTier bool
}

func (r CourseMentorRule) Name() string { return "COURSE_WITH_MENTOR" }

func (r CourseMentorRule) validate() error { return validatePercent(r.MentorPercent) }

func (r CourseMentorRule) split(remaining decimal.Decimal, shares ShareConfig) ruleShares {
	if r.MentorIsFounderTier {
		return standardShares(remaining, shares)
	}
	mentor := roundShare(remaining, r.MentorPercent, shares.Precision)
	return ruleShares{
		mentor:  mentor,
		company: remaining.Sub(mentor),
	}
}

// EventCreatorRule pays the event creator a percentage of the remainder and
// routes everything left to the company pool.
type EventCreatorRule struct {
	CreatorPercent decimal.Decimal
}

func (r EventCreatorRule) Name() string { return "EVENT_WITH_CREATOR" }

func (r EventCreatorRule) validate() error { return validatePercent(r.CreatorPercent) }

func (r EventCreatorRule) split(remaining decimal.Decimal, shares ShareConfig) ruleShares {
	creator := roundShare(remaining, r.CreatorPercent, shares.Precision)
	return ruleShares{
		mentor:  creator,
		company: remaining.Sub(creator),
	}
}

func standardShares(remaining decimal.Decimal, shares ShareConfig) ruleShares {
	company := roundShare(remaining, shares.AdminFeePercent, shares.Precision)
	afterCompany := remaining.Sub(company)
	founder := roundShare(afterCompany, shares.FounderPercent, shares.Precision)
	// The exact remainder goes to the co-founder so the shares always sum
	// back to the source amount.
	coFounder := afterCompany.Sub(founder)
	return ruleShares{
		company:   company,
		founder:   founder,
		coFounder: coFounder,
	}
}

func roundShare(amount decimal.Decimal, percent decimal.Decimal, precision int32) decimal.Decimal {
	return amount.Mul(percent).Div(oneHundred).Round(precision)
}

func validatePercent(percent decimal.Decimal) error {
	if percent.IsNegative() || percent.GreaterThan(oneHundred) {
		return ErrorInvalidRate
	}
	return nil
}

// CalculateSplit computes the full revenue breakdown for one settled amount.
// Pure and deterministic, the sum of the returned shares equals total exactly.
func CalculateSplit(total decimal.Decimal, affiliateRate decimal.Decimal, affiliateType string, rule DistributionRule, shares ShareConfig) (*Breakdown, error) {
	if total.IsNegative() {
		return nil, ErrorInvalidAmount
	}
	if affiliateRate.IsNegative() {
		return nil, ErrorInvalidRate
	}
	if err := shares.validate(); err != nil {
		return nil, err
	}

	var affiliate decimal.Decimal
	switch affiliateType {
	case models.RateTypeFlat:
		affiliate = decimal.Min(affiliateRate, total)
	case models.RateTypePercentage, "":
		if affiliateRate.GreaterThan(oneHundred) {
			return nil, ErrorInvalidRate
		}
		affiliate = roundShare(total, affiliateRate, shares.Precision)
	default:
		return nil, ErrorInvalidRate
	}

	if rule == nil {
		rule = StandardRule{}
	}
	if err := rule.validate(); err != nil {
		return nil, err
	}

	remaining := total.Sub(affiliate)
	parts := rule.split(remaining, shares)

	return &Breakdown{
		Affiliate: affiliate,
		Mentor:    parts.mentor,
		Company:   parts.company,
		Founder:   parts.founder,
		CoFounder: parts.coFounder,
		Total:     total,
	}, nil
}

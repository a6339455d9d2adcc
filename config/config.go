package config

import "github.com/pitabwire/frame"

type WalletConfig struct {
	frame.ConfigurationDefault

	// Revenue share percentages. Founder and co-founder percentages apply to
	// what remains after the admin fee and must add up to 100.
	AdminFeePercent       float64 `envDefault:"15" env:"ADMIN_FEE_PERCENT"`
	FounderSharePercent   float64 `envDefault:"60" env:"FOUNDER_SHARE_PERCENT"`
	CoFounderSharePercent float64 `envDefault:"40" env:"COFOUNDER_SHARE_PERCENT"`

	DefaultAffiliateRate    float64 `envDefault:"30" env:"DEFAULT_AFFILIATE_RATE"`
	DefaultEventCreatorRate float64 `envDefault:"70" env:"DEFAULT_EVENT_CREATOR_RATE"`
	CurrencyPrecision       int32   `envDefault:"2" env:"CURRENCY_PRECISION"`

	AdminOwnerID     string `envDefault:"" env:"ADMIN_OWNER_ID"`
	FounderOwnerID   string `envDefault:"" env:"FOUNDER_OWNER_ID"`
	CoFounderOwnerID string `envDefault:"" env:"COFOUNDER_OWNER_ID"`

	QueueURL            string `envDefault:"mem://" env:"QUEUE_URL"`
	SettlementTopic     string `envDefault:"transaction.settled" env:"SETTLEMENT_TOPIC"`
	RevenueApproveTopic string `envDefault:"revenue.approve" env:"REVENUE_APPROVE_TOPIC"`
	RevenueRejectTopic  string `envDefault:"revenue.reject" env:"REVENUE_REJECT_TOPIC"`
	NotificationTopic   string `envDefault:"notification.dispatch" env:"NOTIFICATION_TOPIC"`

	SecurelyRunService bool `envDefault:"false" env:"SECURELY_RUN_SERVICE"`
}

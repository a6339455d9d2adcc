package config

import (
	"os"
	"testing"

	"github.com/pitabwire/frame"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	config := &WalletConfig{}
	err := frame.ConfigFillEnv(config)
	assert.NoError(t, err, "Expected no error but got one")

	assert.Equal(t, float64(15), config.AdminFeePercent)
	assert.Equal(t, float64(60), config.FounderSharePercent)
	assert.Equal(t, float64(40), config.CoFounderSharePercent)
	assert.Equal(t, float64(30), config.DefaultAffiliateRate)
	assert.Equal(t, float64(70), config.DefaultEventCreatorRate)
	assert.Equal(t, int32(2), config.CurrencyPrecision)

	assert.Equal(t, "mem://", config.QueueURL)
	assert.Equal(t, "transaction.settled", config.SettlementTopic)
	assert.Equal(t, "revenue.approve", config.RevenueApproveTopic)
	assert.Equal(t, "revenue.reject", config.RevenueRejectTopic)
	assert.Equal(t, "notification.dispatch", config.NotificationTopic)
	assert.Equal(t, false, config.SecurelyRunService)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	envValues := map[string]string{
		"ADMIN_FEE_PERCENT":  "10",
		"ADMIN_OWNER_ID":     "owner-admin",
		"FOUNDER_OWNER_ID":   "owner-founder",
		"COFOUNDER_OWNER_ID": "owner-cofounder",
		"QUEUE_URL":          "nats://localhost:4222/",
		"SETTLEMENT_TOPIC":   "sales.settled",
	}
	for key, value := range envValues {
		os.Setenv(key, value)
		defer os.Unsetenv(key)
	}

	config := &WalletConfig{}
	err := frame.ConfigFillEnv(config)
	assert.NoError(t, err, "Expected no error but got one")

	assert.Equal(t, float64(10), config.AdminFeePercent)
	assert.Equal(t, "owner-admin", config.AdminOwnerID)
	assert.Equal(t, "owner-founder", config.FounderOwnerID)
	assert.Equal(t, "owner-cofounder", config.CoFounderOwnerID)
	assert.Equal(t, "nats://localhost:4222/", config.QueueURL)
	assert.Equal(t, "sales.settled", config.SettlementTopic)
}

package business

import (
	"context"
	"testing"

	"github.com/eksporyuk/service-wallet/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigBeneficiaryRegistry(t *testing.T) {
	ctx := context.Background()
	registry := NewConfigBeneficiaryRegistry(&config.WalletConfig{
		AdminOwnerID:     "owner-admin",
		FounderOwnerID:   "owner-founder",
		CoFounderOwnerID: "owner-cofounder",
	})

	admin, err := registry.AdminOwnerID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "owner-admin", admin)

	founder, err := registry.FounderOwnerID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "owner-founder", founder)

	coFounder, err := registry.CoFounderOwnerID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "owner-cofounder", coFounder)
}

func TestConfigBeneficiaryRegistryMissingValues(t *testing.T) {
	ctx := context.Background()
	registry := NewConfigBeneficiaryRegistry(&config.WalletConfig{AdminOwnerID: "owner-admin"})

	_, err := registry.FounderOwnerID(ctx)
	assert.ErrorIs(t, err, ErrorBeneficiaryResolution)

	_, err = registry.CoFounderOwnerID(ctx)
	assert.ErrorIs(t, err, ErrorBeneficiaryResolution)
}

package business

import (
	"context"

	"github.com/eksporyuk/service-wallet/config"
)

// BeneficiaryRegistry resolves the singleton revenue-share roles. Injected so
// distributions can be tested against fake registries and so role lookup is
// never ambient state.
type BeneficiaryRegistry interface {
	AdminOwnerID(ctx context.Context) (string, error)
	FounderOwnerID(ctx context.Context) (string, error)
	CoFounderOwnerID(ctx context.Context) (string, error)
}

type configBeneficiaryRegistry struct {
	cfg *config.WalletConfig
}

// NewConfigBeneficiaryRegistry resolves the singleton roles from service
// configuration. A missing role surfaces as a resolution error so the whole
// distribution aborts instead of silently dropping a share.
func NewConfigBeneficiaryRegistry(cfg *config.WalletConfig) BeneficiaryRegistry {
	return &configBeneficiaryRegistry{cfg: cfg}
}

func (r *configBeneficiaryRegistry) AdminOwnerID(_ context.Context) (string, error) {
	if r.cfg.AdminOwnerID == "" {
		return "", ErrorBeneficiaryResolution
	}
	return r.cfg.AdminOwnerID, nil
}

func (r *configBeneficiaryRegistry) FounderOwnerID(_ context.Context) (string, error) {
	if r.cfg.FounderOwnerID == "" {
		return "", ErrorBeneficiaryResolution
	}
	return r.cfg.FounderOwnerID, nil
}

func (r *configBeneficiaryRegistry) CoFounderOwnerID(_ context.Context) (string, error) {
	if r.cfg.CoFounderOwnerID == "" {
		return "", ErrorBeneficiaryResolution
	}
	return r.cfg.CoFounderOwnerID, nil
}

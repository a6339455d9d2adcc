package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/eksporyuk/service-wallet/service/business"
	"github.com/eksporyuk/service-wallet/service/models"
	"github.com/pitabwire/frame"
)

// SettlementQueueHandler consumes transaction.settled events produced by the
// payment webhook layer. Delivery is at least once, so a repeat of an already
// distributed transaction is acked as success rather than retried forever.
type SettlementQueueHandler struct {
	Service  *frame.Service
	Business business.DistributionBusiness
}

func NewSettlementQueueHandler(service *frame.Service, distributionBusiness business.DistributionBusiness) *SettlementQueueHandler {
	return &SettlementQueueHandler{
		Service:  service,
		Business: distributionBusiness,
	}
}

func (h *SettlementQueueHandler) Name() string {
	return "transaction.settled"
}

func (h *SettlementQueueHandler) PayloadType() any {
	return &models.TransactionSettled{}
}

func (h *SettlementQueueHandler) Validate(_ context.Context, payload any) error {
	settlement, ok := payload.(*models.TransactionSettled)
	if !ok {
		return errors.New(" payload is not of type models.TransactionSettled")
	}
	if settlement.TransactionID == "" {
		return errors.New(" settlement transaction Id should be set ")
	}
	if settlement.Amount.IsNegative() {
		return errors.New(" settlement amount should not be negative ")
	}
	return nil
}

// Handle implements the frame.SubscribeWorker interface.
func (h *SettlementQueueHandler) Handle(ctx context.Context, _ map[string]string, message []byte) error {
	payload := h.PayloadType()
	if err := json.Unmarshal(message, payload); err != nil {
		return fmt.Errorf("failed to unmarshal settlement payload: %w", err)
	}

	if err := h.Validate(ctx, payload); err != nil {
		return fmt.Errorf("settlement payload validation failed: %w", err)
	}

	return h.Execute(ctx, payload)
}

func (h *SettlementQueueHandler) Execute(ctx context.Context, payload any) error {
	settlement := payload.(*models.TransactionSettled)

	logger := h.Service.Log(ctx).
		WithField("type", h.Name()).
		WithField("transactionId", settlement.TransactionID)
	logger.Debug("handling settlement event")

	_, err := h.Business.Distribute(ctx, settlement)
	if err != nil {
		if errors.Is(err, business.ErrorTransactionAlreadyDistributed) {
			logger.Info("duplicate settlement delivery, already distributed")
			return nil
		}
		logger.WithError(err).Warn("could not distribute settled transaction")
		return err
	}

	return nil
}

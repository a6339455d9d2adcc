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

// RevenueApproveHandler consumes approve decisions from the admin facing API.
// A decision on an already processed entry is a conflict, not a retryable
// failure, so it is acked after logging.
type RevenueApproveHandler struct {
	Service  *frame.Service
	Business business.ApprovalBusiness
}

func NewRevenueApproveHandler(service *frame.Service, approvalBusiness business.ApprovalBusiness) *RevenueApproveHandler {
	return &RevenueApproveHandler{Service: service, Business: approvalBusiness}
}

func (h *RevenueApproveHandler) Name() string {
	return "revenue.approve"
}

func (h *RevenueApproveHandler) PayloadType() any {
	return &models.ApprovePendingRevenue{}
}

func (h *RevenueApproveHandler) Validate(_ context.Context, payload any) error {
	decision, ok := payload.(*models.ApprovePendingRevenue)
	if !ok {
		return errors.New(" payload is not of type models.ApprovePendingRevenue")
	}
	if decision.RevenueID == "" {
		return errors.New(" revenue Id should be set ")
	}
	if decision.ApproverID == "" {
		return errors.New(" approver Id should be set ")
	}
	return nil
}

// Handle implements the frame.SubscribeWorker interface.
func (h *RevenueApproveHandler) Handle(ctx context.Context, _ map[string]string, message []byte) error {
	payload := h.PayloadType()
	if err := json.Unmarshal(message, payload); err != nil {
		return fmt.Errorf("failed to unmarshal approve payload: %w", err)
	}
	if err := h.Validate(ctx, payload); err != nil {
		return fmt.Errorf("approve payload validation failed: %w", err)
	}
	return h.Execute(ctx, payload)
}

func (h *RevenueApproveHandler) Execute(ctx context.Context, payload any) error {
	decision := payload.(*models.ApprovePendingRevenue)

	logger := h.Service.Log(ctx).
		WithField("type", h.Name()).
		WithField("revenueId", decision.RevenueID)

	_, err := h.Business.Approve(ctx, decision.RevenueID, decision.ApproverID, decision.AdjustedAmount, decision.Note)
	if err != nil {
		if errors.Is(err, business.ErrorRevenueAlreadyProcessed) {
			logger.Info("pending revenue already processed, skipping")
			return nil
		}
		logger.WithError(err).Warn("could not approve pending revenue")
		return err
	}
	return nil
}

// RevenueRejectHandler consumes reject decisions from the admin facing API.
type RevenueRejectHandler struct {
	Service  *frame.Service
	Business business.ApprovalBusiness
}

func NewRevenueRejectHandler(service *frame.Service, approvalBusiness business.ApprovalBusiness) *RevenueRejectHandler {
	return &RevenueRejectHandler{Service: service, Business: approvalBusiness}
}

func (h *RevenueRejectHandler) Name() string {
	return "revenue.reject"
}

func (h *RevenueRejectHandler) PayloadType() any {
	return &models.RejectPendingRevenue{}
}

func (h *RevenueRejectHandler) Validate(_ context.Context, payload any) error {
	decision, ok := payload.(*models.RejectPendingRevenue)
	if !ok {
		return errors.New(" payload is not of type models.RejectPendingRevenue")
	}
	if decision.RevenueID == "" {
		return errors.New(" revenue Id should be set ")
	}
	if decision.ApproverID == "" {
		return errors.New(" approver Id should be set ")
	}
	return nil
}

// Handle implements the frame.SubscribeWorker interface.
func (h *RevenueRejectHandler) Handle(ctx context.Context, _ map[string]string, message []byte) error {
	payload := h.PayloadType()
	if err := json.Unmarshal(message, payload); err != nil {
		return fmt.Errorf("failed to unmarshal reject payload: %w", err)
	}
	if err := h.Validate(ctx, payload); err != nil {
		return fmt.Errorf("reject payload validation failed: %w", err)
	}
	return h.Execute(ctx, payload)
}

func (h *RevenueRejectHandler) Execute(ctx context.Context, payload any) error {
	decision := payload.(*models.RejectPendingRevenue)

	logger := h.Service.Log(ctx).
		WithField("type", h.Name()).
		WithField("revenueId", decision.RevenueID)

	_, err := h.Business.Reject(ctx, decision.RevenueID, decision.ApproverID, decision.Note)
	if err != nil {
		if errors.Is(err, business.ErrorRevenueAlreadyProcessed) {
			logger.Info("pending revenue already processed, skipping")
			return nil
		}
		logger.WithError(err).Warn("could not reject pending revenue")
		return err
	}
	return nil
}

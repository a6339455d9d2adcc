package events

import (
	"context"
	"errors"

	"github.com/eksporyuk/service-wallet/service/models"
	"github.com/pitabwire/frame"
)

// BeneficiaryNotify forwards beneficiary notifications to the external
// notification service's queue. Dispatch failures are logged and swallowed,
// they never unwind the financial writes that triggered them.
type BeneficiaryNotify struct {
	Service *frame.Service
	Topic   string
}

func (event *BeneficiaryNotify) Name() string {
	return "beneficiary.notify"
}

func (event *BeneficiaryNotify) PayloadType() any {
	return &models.BeneficiaryNotification{}
}

func (event *BeneficiaryNotify) Validate(_ context.Context, payload any) error {
	notification, ok := payload.(*models.BeneficiaryNotification)
	if !ok {
		return errors.New(" payload is not of type models.BeneficiaryNotification")
	}
	if notification.OwnerID == "" {
		return errors.New(" notification owner should be set ")
	}
	if notification.EventKind == "" {
		return errors.New(" notification event kind should be set ")
	}
	return nil
}

func (event *BeneficiaryNotify) Execute(ctx context.Context, payload any) error {
	notification := payload.(*models.BeneficiaryNotification)

	logger := event.Service.Log(ctx).
		WithField("type", event.Name()).
		WithField("ownerId", notification.OwnerID).
		WithField("eventKind", notification.EventKind)

	err := event.Service.Publish(ctx, event.Topic, notification)
	if err != nil {
		logger.WithError(err).Warn("could not dispatch beneficiary notification")
		return nil
	}

	logger.Debug("dispatched beneficiary notification")
	return nil
}

package business

import (
	"context"

	"github.com/eksporyuk/service-wallet/service/events"
	"github.com/eksporyuk/service-wallet/service/models"
	"github.com/pitabwire/frame"
)

// BeneficiaryNotifier hands a notification to the external multi-channel
// notification service. Callers only attempt the call, delivery and
// formatting are that collaborator's concern.
type BeneficiaryNotifier interface {
	NotifyBeneficiary(ctx context.Context, notification models.BeneficiaryNotification) error
}

type eventNotifier struct {
	service *frame.Service
}

// NewEventNotifier emits notifications onto the service event bus where the
// BeneficiaryNotify handler forwards them to the notification queue.
func NewEventNotifier(service *frame.Service) BeneficiaryNotifier {
	return &eventNotifier{service: service}
}

func (n *eventNotifier) NotifyBeneficiary(ctx context.Context, notification models.BeneficiaryNotification) error {
	event := events.BeneficiaryNotify{}
	return n.service.Emit(ctx, event.Name(), notification)
}

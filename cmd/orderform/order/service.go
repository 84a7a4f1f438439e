package order

import (
	"context"
	"fmt"

	"orderform/cmd/orderform/clients"
	"orderform/cmd/orderform/models"
	"orderform/cmd/orderform/storage"

	"go.uber.org/zap"
)

const SuccessMessage = "Order Created & Webhook Sent!"

type Service struct {
	storageService storage.StorageService
	dispatcher     clients.WebhookDispatcher
	webhookURL     string
	webhookSecret  string
	sugar          *zap.SugaredLogger
}

func NewService(
	storageService storage.StorageService,
	dispatcher clients.WebhookDispatcher,
	webhookURL, webhookSecret string,
	logger *zap.SugaredLogger,
) *Service {
	return &Service{
		storageService: storageService,
		dispatcher:     dispatcher,
		webhookURL:     webhookURL,
		webhookSecret:  webhookSecret,
		sugar:          logger,
	}
}

// Submit validates s, stores the order and enqueues the order.created webhook.
// A *ValidationError is returned before anything is stored. Enqueue failures
// are logged only; delivery belongs to the dispatcher.
func (svc *Service) Submit(ctx context.Context, s Submission) (models.OrderCreated, error) {
	v, err := Validate(s)
	if err != nil {
		return models.OrderCreated{}, err
	}

	o, err := svc.storageService.AddOrder(ctx, v.CustomerName, v.Amount)
	if err != nil {
		return models.OrderCreated{}, fmt.Errorf("store order: %w", err)
	}

	payload := models.NewOrderCreatedPayload(o)
	if err := svc.dispatcher.Enqueue(payload, svc.webhookURL, svc.webhookSecret); err != nil {
		svc.sugar.Errorf("(Submit) enqueue webhook for order %d: %v", o.ID, err)
	} else {
		svc.sugar.Debugf("(Submit) webhook %s enqueued for order %d", payload.Event, o.ID)
	}

	return models.OrderCreated{Order: o, Message: SuccessMessage}, nil
}

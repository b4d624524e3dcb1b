package http

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pequenoleitor/ordercore/internal/core/domain"
	"github.com/pequenoleitor/ordercore/internal/core/port"
	"go.uber.org/zap"
)

type WebhookHandler struct {
	Handler
	service port.Service
}

func NewWebhookHandler(service port.Service, logger *zap.Logger) (*WebhookHandler, error) {
	return &WebhookHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type webhookPayment struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	PaymentDate string `json:"paymentDate"`
}

type webhookRequest struct {
	Event   string          `json:"event"`
	Payment *webhookPayment `json:"payment"`
}

// HandleNotification is the provider push endpoint. It must answer fast and
// must not error on unknown correlation ids or event types, or the provider
// keeps redelivering.
func (wh *WebhookHandler) HandleNotification(ctx *gin.Context) {
	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		wh.handleError(ctx, domain.ErrMalformedNotification)
		return
	}

	req := webhookRequest{}
	if err := json.Unmarshal(body, &req); err != nil {
		wh.handleError(ctx, domain.ErrMalformedNotification)
		return
	}

	// Events without a payment object do not concern this core; acknowledge
	// and move on.
	if req.Payment == nil || req.Payment.ID == "" {
		wh.logger.Info("webhook event ignored", zap.String("event", req.Event))
		wh.handleSuccess(ctx, gin.H{"received": true})
		return
	}

	occurredAt := time.Time{}
	if req.Payment.PaymentDate != "" {
		if t, err := time.Parse(time.RFC3339, req.Payment.PaymentDate); err == nil {
			occurredAt = t
		}
	}

	err = wh.service.Reconcile(ctx, domain.Notification{
		CorrelationID: req.Payment.ID,
		Status:        domain.ProviderStatus(req.Payment.Status),
		OccurredAt:    occurredAt,
		Raw:           body,
	})
	if err != nil {
		// A storage failure must look retryable to the provider; malformed
		// input must not.
		wh.handleError(ctx, err)
		return
	}

	wh.handleSuccessWithStatus(ctx, gin.H{"received": true}, http.StatusOK)
}

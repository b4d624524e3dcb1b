package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pequenoleitor/ordercore/internal/adapter/config"
	"github.com/pequenoleitor/ordercore/internal/core/domain"
	"github.com/pequenoleitor/ordercore/internal/core/port"
	"go.uber.org/zap"
)

// PIXClient talks to the asynchronous PIX provider. A charge starts out
// pending on the provider side; settlement arrives later by webhook or poll.
type PIXClient struct {
	client *resty.Client
	logger *zap.Logger
}

func NewPIXClient(cfg *config.Gateway, log *zap.Logger) (*PIXClient, error) {
	client := resty.New().
		SetBaseURL(cfg.PIXBaseURL).
		SetHeader("access_token", cfg.PIXAPIKey).
		SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)

	return &PIXClient{
		client: client,
		logger: log,
	}, nil
}

type pixChargeRequest struct {
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerDoc   string  `json:"customerDocument"`
	BillingType   string  `json:"billingType"`
	Value         float64 `json:"value"`
	DueDate       string  `json:"dueDate"`
	ExternalRef   string  `json:"externalReference"`
}

type pixChargeResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type pixQRCodeResponse struct {
	Payload      string `json:"payload"`
	EncodedImage string `json:"encodedImage"`
}

func (c *PIXClient) CreateCharge(ctx context.Context, order *domain.Order, payer domain.PayerInfo) (*port.ChargeResult, error) {
	value, ok := order.Total.Float64()
	if !ok {
		return nil, fmt.Errorf("%w: order total out of range", domain.ErrGatewayRejected)
	}

	dueAt := time.Now().Add(24 * time.Hour)

	var charge pixChargeResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(pixChargeRequest{
			CustomerName:  payer.Name,
			CustomerEmail: payer.Email,
			CustomerDoc:   payer.Document,
			BillingType:   "PIX",
			Value:         value,
			DueDate:       dueAt.Format("2006-01-02"),
			ExternalRef:   order.DisplayNumber(),
		}).
		SetResult(&charge).
		Post("/payments")
	if err := classify(resp, err); err != nil {
		return nil, err
	}
	if charge.ID == "" {
		return nil, fmt.Errorf("%w: charge response without id", domain.ErrGatewayUnavailable)
	}

	// The charge already exists on the provider side. Failing here would
	// orphan it, so a missing QR code only degrades the presentation; the
	// customer can still refresh the order to fetch it again.
	var qr pixQRCodeResponse
	resp, err = c.client.R().
		SetContext(ctx).
		SetResult(&qr).
		Get("/payments/" + charge.ID + "/pixQrCode")
	if err := classify(resp, err); err != nil {
		c.logger.Warn("pix qr code unavailable",
			zap.String("correlation_id", charge.ID),
			zap.Error(err))
		qr = pixQRCodeResponse{}
	}

	c.logger.Debug("pix charge created",
		zap.String("correlation_id", charge.ID),
		zap.String("order", order.DisplayNumber()))

	return &port.ChargeResult{
		CorrelationID:  charge.ID,
		ProviderStatus: domain.ProviderStatus(charge.Status),
		DueAt:          &dueAt,
		Presentation: domain.Presentation{
			Kind:        domain.PresentationPixQRCode,
			PixPayload:  qr.Payload,
			PixImageURL: qr.EncodedImage,
		},
	}, nil
}

func (c *PIXClient) FetchStatus(ctx context.Context, correlationID string) (domain.ProviderStatus, error) {
	var charge pixChargeResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&charge).
		Get("/payments/" + correlationID)
	if err := classify(resp, err); err != nil {
		return "", err
	}
	return domain.ProviderStatus(charge.Status), nil
}

// classify folds transport errors and provider responses into the two-way
// gateway error split: unavailable is retryable, rejected is not.
func classify(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
	}
	if resp == nil {
		return domain.ErrGatewayUnavailable
	}
	if resp.IsError() {
		if resp.StatusCode() >= 500 {
			return fmt.Errorf("%w: provider returned %d", domain.ErrGatewayUnavailable, resp.StatusCode())
		}
		return fmt.Errorf("%w: provider returned %d: %s", domain.ErrGatewayRejected, resp.StatusCode(), resp.String())
	}
	return nil
}

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

// CardClient talks to the synchronous card acquirer: the charge settles or is
// refused inside the create call. A refusal surfaces immediately and no
// payment record is left behind by the caller.
type CardClient struct {
	client *resty.Client
	logger *zap.Logger
}

func NewCardClient(cfg *config.Gateway, log *zap.Logger) (*CardClient, error) {
	client := resty.New().
		SetBaseURL(cfg.CardBaseURL).
		SetHeader("Authorization", "Bearer "+cfg.CardAPIKey).
		SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)

	return &CardClient{
		client: client,
		logger: log,
	}, nil
}

type cardChargeRequest struct {
	Amount        int64  `json:"amount"`
	CardToken     string `json:"cardToken"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerDoc   string `json:"customerDocument"`
	ExternalRef   string `json:"externalReference"`
}

type cardChargeResponse struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	AuthCode     string `json:"authorizationCode"`
	RefuseReason string `json:"refuseReason"`
}

func (c *CardClient) CreateCharge(ctx context.Context, order *domain.Order, payer domain.PayerInfo) (*port.ChargeResult, error) {
	amount, err := minorUnits(order)
	if err != nil {
		return nil, err
	}

	var charge cardChargeResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(cardChargeRequest{
			Amount:        amount,
			CardToken:     payer.CardToken,
			CustomerName:  payer.Name,
			CustomerEmail: payer.Email,
			CustomerDoc:   payer.Document,
			ExternalRef:   order.DisplayNumber(),
		}).
		SetResult(&charge).
		Post("/charges")
	if err := classify(resp, err); err != nil {
		return nil, err
	}

	if charge.Status == "refused" {
		reason := charge.RefuseReason
		if reason == "" {
			reason = "card declined"
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrGatewayRejected, reason)
	}
	if charge.ID == "" {
		return nil, fmt.Errorf("%w: charge response without id", domain.ErrGatewayUnavailable)
	}

	c.logger.Debug("card charge created",
		zap.String("correlation_id", charge.ID),
		zap.String("order", order.DisplayNumber()),
		zap.String("status", charge.Status))

	return &port.ChargeResult{
		CorrelationID:  charge.ID,
		ProviderStatus: domain.ProviderStatus(charge.Status),
		Presentation: domain.Presentation{
			Kind:      domain.PresentationCardReceipt,
			CardBrand: payer.CardBrand,
			CardLast4: payer.CardLast4,
			AuthCode:  charge.AuthCode,
		},
	}, nil
}

func (c *CardClient) FetchStatus(ctx context.Context, correlationID string) (domain.ProviderStatus, error) {
	var charge cardChargeResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&charge).
		Get("/charges/" + correlationID)
	if err := classify(resp, err); err != nil {
		return "", err
	}
	return domain.ProviderStatus(charge.Status), nil
}

// minorUnits converts the order total to integer cents for the acquirer.
func minorUnits(order *domain.Order) (int64, error) {
	whole, frac, ok := order.Total.Int64(2)
	if !ok {
		return 0, fmt.Errorf("%w: order total out of range", domain.ErrGatewayRejected)
	}
	return whole*100 + frac, nil
}

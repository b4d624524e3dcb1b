package port

import (
	"context"
	"time"

	"github.com/pequenoleitor/ordercore/internal/core/domain"
)

// ChargeResult is what a gateway returns for a freshly created charge. The
// correlation id is opaque and stored verbatim.
type ChargeResult struct {
	CorrelationID  string
	ProviderStatus domain.ProviderStatus
	Presentation   domain.Presentation
	DueAt          *time.Time
}

//go:generate mockgen -source=gateway.go -destination=mock/gateway.go -package=mock
type PaymentGateway interface {
	CreateCharge(ctx context.Context, order *domain.Order, payer domain.PayerInfo) (*ChargeResult, error)
	FetchStatus(ctx context.Context, correlationID string) (domain.ProviderStatus, error)
}

// GatewaySelector resolves the gateway client for a payment method.
type GatewaySelector interface {
	Lookup(method domain.PaymentMethod) (PaymentGateway, error)
}

// PaymentScheduler enqueues an order for background status polling.
type PaymentScheduler interface {
	SchedulePaymentCheck(orderNumber int64)
}

// PaymentChecker is the poll-side entry into reconciliation, driven by the
// background scheduler rather than a user. The returned bool reports whether
// the payment has settled (no further polls needed).
type PaymentChecker interface {
	CheckPayment(ctx context.Context, orderNumber int64) (bool, error)
}

// Notifier receives exactly one call per applied order transition. Customer
// messaging lives behind this port, outside the core.
type Notifier interface {
	OrderStatusChanged(ctx context.Context, order *domain.Order, entry *domain.OrderHistory)
}

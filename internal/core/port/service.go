package port

import (
	"context"

	"github.com/pequenoleitor/ordercore/internal/core/domain"
)

// NewOrderInput is everything order creation accepts from the outside. Totals
// are always recomputed, never taken from input.
type NewOrderInput struct {
	UserID          uint64
	Lines           []domain.CartLine
	CouponCode      string
	AffiliateCode   string
	ShippingAddress string
	CustomerNote    string
}

//go:generate mockgen -source=service.go -destination=mock/service.go -package=mock
type Service interface {
	CreateOrder(ctx context.Context, input NewOrderInput) (*domain.Order, error)
	GetOrder(ctx context.Context, userID uint64, number int64) (*domain.Order, []*domain.OrderHistory, error)
	GetOrdersByUser(ctx context.Context, userID uint64) ([]*domain.Order, error)

	CreateCharge(ctx context.Context, userID uint64, number int64,
		method domain.PaymentMethod, payer domain.PayerInfo) (*domain.Payment, error)
	Reconcile(ctx context.Context, n domain.Notification) error
	RefreshPayment(ctx context.Context, userID uint64, number int64) (bool, error)

	// Admin surface.
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, number int64, to domain.OrderStatus, actor, note string) (*domain.Order, error)
	SetTrackingCode(ctx context.Context, number int64, code, actor string) (*domain.Order, error)
	DeleteOrder(ctx context.Context, number int64) error
}

package port

import (
	"context"

	"github.com/pequenoleitor/ordercore/internal/core/domain"
)

// TransitionFn mutates an order inside a row-locked transaction and returns
// the history entry describing the transition, or nil for a no-op.
type TransitionFn func(order *domain.Order) (*domain.OrderHistory, error)

// ReconcileFn mutates a payment and its owning order inside one row-locked
// transaction. A nil history entry means nothing is written.
type ReconcileFn func(payment *domain.Payment, order *domain.Order) (*domain.OrderHistory, error)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock
type Repository interface {
	// Order
	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	ReadOrder(ctx context.Context, number int64) (*domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID uint64) ([]*domain.Order, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	ListOrdersByStatus(ctx context.Context, statuses []domain.OrderStatus) ([]*domain.Order, error)
	ListOrderHistory(ctx context.Context, number int64) ([]*domain.OrderHistory, error)
	TransitionOrder(ctx context.Context, number int64, fn TransitionFn) (*domain.Order, error)
	DeleteOrder(ctx context.Context, number int64) error

	// Payment
	CreatePayment(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
	ReadPaymentsByOrder(ctx context.Context, number int64) ([]*domain.Payment, error)
	ReconcilePayment(ctx context.Context, correlationID string, fn ReconcileFn) (*domain.Payment, bool, error)

	// Catalog collaborators, read-only here.
	GetCouponByCode(ctx context.Context, code string) (*domain.Coupon, error)
	CountCouponUsage(ctx context.Context, couponID, userID uint64) (int, error)
	GetAffiliateByCode(ctx context.Context, code string) (*domain.Affiliate, error)
}

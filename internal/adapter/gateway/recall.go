package gateway

import (
	"context"

	"github.com/pequenoleitor/ordercore/internal/core/domain"
	"github.com/pequenoleitor/ordercore/internal/core/port"
)

// RecallPendingPayments re-queues every order still awaiting payment, so a
// restart does not strand charges whose webhook was missed while down.
func RecallPendingPayments(ctx context.Context, repo port.Repository, scheduler port.PaymentScheduler) error {
	orders, err := repo.ListOrdersByStatus(ctx, []domain.OrderStatus{domain.OrderStatusAwaitingPayment})
	if err != nil {
		return err
	}
	for _, order := range orders {
		scheduler.SchedulePaymentCheck(order.Number)
	}
	return nil
}

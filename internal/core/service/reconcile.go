package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/pequenoleitor/ordercore/internal/core/domain"
	"go.uber.org/zap"
)

// Reconcile applies one gateway notification to the owning Payment and Order.
// Both the webhook push path and the status poll path end up here; there is
// no second reconciliation implementation.
func (s *Service) Reconcile(ctx context.Context, n domain.Notification) error {
	_, err := s.reconcile(ctx, n)
	return err
}

// RefreshPayment is the customer-facing poll: only the order's owner may
// trigger a gateway status check for it.
func (s *Service) RefreshPayment(ctx context.Context, userID uint64, number int64) (bool, error) {
	order, err := s.repo.ReadOrder(ctx, number)
	if err != nil {
		return false, err
	}
	if order.UserID != userID {
		return false, domain.ErrForbidden
	}
	return s.CheckPayment(ctx, number)
}

// CheckPayment polls the gateway for the order's open payment and feeds the
// result through reconciliation. The background poller calls this directly;
// there is no user in that path. The returned bool reports whether the
// payment has settled.
func (s *Service) CheckPayment(ctx context.Context, number int64) (bool, error) {
	payments, err := s.repo.ReadPaymentsByOrder(ctx, number)
	if err != nil {
		return false, err
	}

	var open *domain.Payment
	for _, p := range payments {
		if p.Status == domain.PaymentPending {
			open = p
		}
	}
	if open == nil {
		if len(payments) == 0 {
			return false, domain.ErrDataNotFound
		}
		// Every payment already settled, nothing left to poll.
		return true, nil
	}

	gw, err := s.gateways.Lookup(open.Method)
	if err != nil {
		return false, err
	}
	status, err := gw.FetchStatus(ctx, open.CorrelationID)
	if err != nil {
		return false, err
	}

	payment, err := s.reconcile(ctx, domain.Notification{
		CorrelationID: open.CorrelationID,
		Status:        status,
		OccurredAt:    time.Now(),
	})
	if err != nil {
		return false, err
	}
	settled := payment != nil && payment.Status != domain.PaymentPending
	return settled, nil
}

// reconcile runs the notification algorithm: map the provider status, look up
// the payment by correlation id, and apply the transition under the payment
// row lock. Unknown correlation ids and unmapped statuses resolve to nil, nil
// so webhook endpoints can acknowledge them without provoking retry storms.
func (s *Service) reconcile(ctx context.Context, n domain.Notification) (*domain.Payment, error) {
	if err := n.Validate(); err != nil {
		return nil, err
	}

	target, ok := domain.MapProviderStatus(n.Status)
	if !ok {
		s.logger.Warn("unmapped provider status ignored",
			zap.String("provider_status", string(n.Status)),
			zap.String("correlation_id", n.CorrelationID))
		return nil, nil
	}

	var (
		notifyOrder *domain.Order
		notifyEntry *domain.OrderHistory
	)
	payment, applied, err := s.repo.ReconcilePayment(ctx, n.CorrelationID,
		func(p *domain.Payment, o *domain.Order) (*domain.OrderHistory, error) {
			// Idempotence and monotonicity guard: repeats and late arrivals
			// fall out here, before any side effect.
			if p.Status == target || !p.Status.CanAdvanceTo(target) {
				return nil, domain.ErrNoUpdatedData
			}

			from := o.Status
			var to domain.OrderStatus
			switch target {
			case domain.PaymentConfirmed:
				to = domain.OrderStatusPaymentApproved
				o.PaymentStatus = domain.OrderPaymentPaid
			case domain.PaymentExpired:
				to = domain.OrderStatusExpired
				o.PaymentStatus = domain.OrderPaymentExpired
			case domain.PaymentRefunded:
				to = domain.OrderStatusRefunded
				o.PaymentStatus = domain.OrderPaymentRefunded
			default:
				return nil, domain.ErrNoUpdatedData
			}

			if err := domain.CanTransition(from, to, o.Digital()); err != nil {
				// The order moved on without the payment, e.g. an admin
				// cancelled it. The notification is stale for the order.
				s.logger.Warn("notification skipped, order ahead of payment",
					zap.String("correlation_id", n.CorrelationID),
					zap.String("order_status", string(from)),
					zap.String("target", string(to)))
				return nil, domain.ErrNoUpdatedData
			}

			p.Status = target
			if len(n.Raw) > 0 {
				p.RawPayload = n.Raw
			}
			if target == domain.PaymentConfirmed {
				confirmedAt := n.OccurredAt
				if confirmedAt.IsZero() {
					confirmedAt = time.Now()
				}
				p.ConfirmedAt = &confirmedAt
			}
			o.Status = to

			entry := &domain.OrderHistory{
				OrderID:    o.ID,
				FromStatus: from,
				ToStatus:   to,
				Actor:      domain.ActorSystem,
				Note:       "Payment " + strings.ToLower(string(target)) + " by gateway",
			}
			notifyOrder = o
			notifyEntry = entry
			return entry, nil
		})
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			s.logger.Warn("notification for unknown correlation id",
				zap.String("correlation_id", n.CorrelationID),
				zap.String("provider_status", string(n.Status)))
			return nil, nil
		}
		return nil, err
	}

	// Exactly once per applied transition, never once per delivery.
	if applied && notifyEntry != nil {
		s.notifier.OrderStatusChanged(ctx, notifyOrder, notifyEntry)
	}

	return payment, nil
}

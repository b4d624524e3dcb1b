package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"github.com/pequenoleitor/ordercore/internal/core/domain"
	"github.com/pequenoleitor/ordercore/internal/core/port"
	"go.uber.org/zap"
)

type Service struct {
	repo        port.Repository
	gateways    port.GatewaySelector
	scheduler   port.PaymentScheduler
	notifier    port.Notifier
	shippingFee decimal.Decimal
	logger      *zap.Logger
}

func NewService(repo port.Repository, gateways port.GatewaySelector,
	scheduler port.PaymentScheduler, notifier port.Notifier,
	shippingFee decimal.Decimal, logger *zap.Logger) (*Service, error) {
	return &Service{
		repo:        repo,
		gateways:    gateways,
		scheduler:   scheduler,
		notifier:    notifier,
		shippingFee: shippingFee,
		logger:      logger,
	}, nil
}

func (s *Service) CreateOrder(ctx context.Context, input port.NewOrderInput) (*domain.Order, error) {
	if len(input.Lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	now := time.Now()

	var coupon *domain.Coupon
	if input.CouponCode != "" {
		c, err := s.repo.GetCouponByCode(ctx, domain.NormalizeCouponCode(input.CouponCode))
		if err != nil {
			if errors.Is(err, domain.ErrDataNotFound) {
				return nil, domain.ErrCouponInvalid
			}
			s.logger.Error("Read coupon", zap.Error(err))
			return nil, domain.ErrInternal
		}
		if err := c.ValidAt(now); err != nil {
			return nil, err
		}
		if c.MaxUses > 0 {
			used, err := s.repo.CountCouponUsage(ctx, c.ID, input.UserID)
			if err != nil {
				s.logger.Error("Count coupon usage", zap.Error(err))
				return nil, domain.ErrInternal
			}
			if used >= c.MaxUses {
				return nil, domain.ErrCouponInvalid
			}
		}
		coupon = c
	}

	// Unknown affiliate codes never block checkout.
	var affiliate *domain.Affiliate
	if input.AffiliateCode != "" {
		a, err := s.repo.GetAffiliateByCode(ctx, input.AffiliateCode)
		switch {
		case err == nil && a.Active:
			affiliate = a
		case err != nil && !errors.Is(err, domain.ErrDataNotFound):
			s.logger.Error("Read affiliate", zap.Error(err))
		default:
			s.logger.Info("affiliate code skipped",
				zap.String("code", input.AffiliateCode), zap.Error(domain.ErrAffiliateInvalid))
		}
	}

	totals, err := domain.PriceCart(input.Lines, coupon, now)
	if err != nil {
		return nil, err
	}

	shipping := decimal.Zero
	if !allDigital(input.Lines) {
		shipping = s.shippingFee
	}
	total, err := totals.Total.Add(shipping)
	if err != nil {
		return nil, fmt.Errorf("order total: %w", err)
	}

	order := &domain.Order{
		ID:              uuid.New(),
		UserID:          input.UserID,
		Status:          domain.OrderStatusAwaitingPayment,
		PaymentStatus:   domain.OrderPaymentPending,
		Subtotal:        totals.Subtotal,
		Discount:        totals.Discount,
		Shipping:        shipping,
		Total:           total,
		ShippingAddress: input.ShippingAddress,
		CustomerNote:    input.CustomerNote,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if coupon != nil {
		order.CouponID = &coupon.ID
		order.CouponCode = coupon.Code
	}
	if affiliate != nil {
		order.AffiliateID = &affiliate.ID
		order.AffiliateCode = affiliate.Code
	}
	for _, line := range input.Lines {
		lineSum, err := line.LineSubtotal()
		if err != nil {
			return nil, err
		}
		order.Items = append(order.Items, domain.OrderItem{
			ID:              uuid.New(),
			OrderID:         order.ID,
			Name:            line.Name,
			UnitPrice:       line.UnitPrice,
			Quantity:        line.Quantity,
			Subtotal:        lineSum,
			Digital:         line.Digital,
			Personalization: line.Personalization,
		})
	}

	newOrder, err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		s.logger.Error("Create order", zap.Error(err))
		return nil, err
	}
	return newOrder, nil
}

func (s *Service) GetOrder(ctx context.Context, userID uint64, number int64) (*domain.Order, []*domain.OrderHistory, error) {
	order, err := s.repo.ReadOrder(ctx, number)
	if err != nil {
		return nil, nil, err
	}
	if order.UserID != userID {
		return nil, nil, domain.ErrForbidden
	}
	history, err := s.repo.ListOrderHistory(ctx, number)
	if err != nil {
		s.logger.Error("Read order history", zap.Error(err))
		return nil, nil, err
	}
	return order, history, nil
}

func (s *Service) GetOrdersByUser(ctx context.Context, userID uint64) ([]*domain.Order, error) {
	list, err := s.repo.ListOrdersByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Get orders for user", zap.Error(err))
		return nil, err
	}
	return list, nil
}

func (s *Service) CreateCharge(ctx context.Context, userID uint64, number int64,
	method domain.PaymentMethod, payer domain.PayerInfo) (*domain.Payment, error) {
	order, err := s.repo.ReadOrder(ctx, number)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domain.ErrForbidden
	}
	if order.Status != domain.OrderStatusAwaitingPayment {
		return nil, domain.ErrOrderLocked
	}

	payments, err := s.repo.ReadPaymentsByOrder(ctx, number)
	if err != nil {
		return nil, err
	}
	for _, p := range payments {
		if p.Status == domain.PaymentPending || p.Status == domain.PaymentConfirmed {
			return nil, domain.ErrChargeAlreadyExists
		}
	}

	gw, err := s.gateways.Lookup(method)
	if err != nil {
		return nil, err
	}

	// A rejected or failed gateway call leaves the order chargeless; no
	// Payment row exists without a correlation id behind it.
	result, err := gw.CreateCharge(ctx, order, payer)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	payment := &domain.Payment{
		ID:            uuid.New(),
		OrderID:       order.ID,
		OrderNumber:   order.Number,
		Method:        method,
		Status:        domain.PaymentPending,
		Amount:        order.Total,
		CorrelationID: result.CorrelationID,
		DueAt:         result.DueAt,
		Presentation:  result.Presentation,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	payment, err = s.repo.CreatePayment(ctx, payment)
	if err != nil {
		s.logger.Error("Persist payment", zap.Error(err),
			zap.String("correlation_id", result.CorrelationID))
		return nil, err
	}

	// Synchronous providers (card) may settle in the create response. Feed
	// that through the same reconciliation path every notification takes.
	if target, ok := domain.MapProviderStatus(result.ProviderStatus); ok && target != domain.PaymentPending {
		reconciled, err := s.reconcile(ctx, domain.Notification{
			CorrelationID: result.CorrelationID,
			Status:        result.ProviderStatus,
			OccurredAt:    now,
		})
		if err != nil {
			return nil, err
		}
		if reconciled != nil {
			payment = reconciled
		}
		return payment, nil
	}

	go s.scheduler.SchedulePaymentCheck(order.Number)

	return payment, nil
}

func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.ListOrders(ctx)
}

func (s *Service) UpdateOrderStatus(ctx context.Context, number int64,
	to domain.OrderStatus, actor, note string) (*domain.Order, error) {
	return s.repo.TransitionOrder(ctx, number, func(order *domain.Order) (*domain.OrderHistory, error) {
		from := order.Status
		if err := domain.CanTransition(from, to, order.Digital()); err != nil {
			return nil, err
		}
		order.Status = to
		return &domain.OrderHistory{
			OrderID:    order.ID,
			FromStatus: from,
			ToStatus:   to,
			Actor:      actor,
			Note:       note,
		}, nil
	})
}

// SetTrackingCode stores the carrier tracking code. An order that is not yet
// shipped moves to SHIPPED in the same transaction.
func (s *Service) SetTrackingCode(ctx context.Context, number int64, code, actor string) (*domain.Order, error) {
	return s.repo.TransitionOrder(ctx, number, func(order *domain.Order) (*domain.OrderHistory, error) {
		order.TrackingCode = code
		if order.Status == domain.OrderStatusShipped {
			return nil, nil
		}
		from := order.Status
		if err := domain.CanTransition(from, domain.OrderStatusShipped, order.Digital()); err != nil {
			return nil, err
		}
		order.Status = domain.OrderStatusShipped
		return &domain.OrderHistory{
			OrderID:    order.ID,
			FromStatus: from,
			ToStatus:   domain.OrderStatusShipped,
			Actor:      actor,
			Note:       "Tracking code added",
		}, nil
	})
}

func (s *Service) DeleteOrder(ctx context.Context, number int64) error {
	err := s.repo.DeleteOrder(ctx, number)
	if err != nil && !errors.Is(err, domain.ErrOrderLocked) && !errors.Is(err, domain.ErrDataNotFound) {
		s.logger.Error("Delete order", zap.Error(err), zap.Int64("number", number))
	}
	return err
}

func allDigital(lines []domain.CartLine) bool {
	for _, line := range lines {
		if !line.Digital {
			return false
		}
	}
	return len(lines) > 0
}

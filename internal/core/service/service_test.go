package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/govalues/decimal"
	"github.com/pequenoleitor/ordercore/internal/core/domain"
	"github.com/pequenoleitor/ordercore/internal/core/port"
	"github.com/pequenoleitor/ordercore/internal/core/port/mock"
	"github.com/pequenoleitor/ordercore/internal/core/service"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type prepareMocks func(repo *mock.MockRepository, gws *mock.MockGatewaySelector,
	gw *mock.MockPaymentGateway, notifier *mock.MockNotifier)

// captureScheduler records scheduled order numbers so tests can wait for the
// background scheduling goroutine instead of racing it.
type captureScheduler struct {
	ch chan int64
}

func newCaptureScheduler() *captureScheduler {
	return &captureScheduler{ch: make(chan int64, 1)}
}

func (c *captureScheduler) SchedulePaymentCheck(orderNumber int64) {
	c.ch <- orderNumber
}

func (c *captureScheduler) wait(t *testing.T) int64 {
	t.Helper()
	select {
	case n := <-c.ch:
		return n
	case <-time.After(time.Second):
		t.Fatal("payment check was not scheduled")
		return 0
	}
}

var shippingFee = decimal.MustParse("19.90")

func newTestService(t *testing.T, mockCtrl *gomock.Controller, prepare prepareMocks) (*service.Service, *captureScheduler) {
	t.Helper()

	repo := mock.NewMockRepository(mockCtrl)
	gws := mock.NewMockGatewaySelector(mockCtrl)
	gw := mock.NewMockPaymentGateway(mockCtrl)
	notifier := mock.NewMockNotifier(mockCtrl)
	scheduler := newCaptureScheduler()
	if prepare != nil {
		prepare(repo, gws, gw, notifier)
	}

	logger, _ := zap.NewProduction()
	s, err := service.NewService(repo, gws, scheduler, notifier, shippingFee, logger)
	assert.NoError(t, err)
	return s, scheduler
}

func TestService_CreateOrder(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	book := domain.CartLine{
		Name:      "As Aventuras de Sofia",
		UnitPrice: decimal.MustParse("89.90"),
		Quantity:  1,
	}
	ebook := domain.CartLine{
		Name:      "As Aventuras de Sofia (digital)",
		UnitPrice: decimal.MustParse("19.90"),
		Quantity:  1,
		Digital:   true,
	}
	coupon := domain.Coupon{
		ID:     7,
		Code:   "BEMVINDO10",
		Kind:   domain.CouponPercentage,
		Value:  decimal.MustParse("10"),
		Active: true,
	}
	affiliate := domain.Affiliate{ID: 3, Code: "blog-da-ana", Active: true}
	singleUse := domain.Coupon{
		ID:      8,
		Code:    "PRIMEIRACOMPRA",
		Kind:    domain.CouponPercentage,
		Value:   decimal.MustParse("15"),
		MaxUses: 1,
		Active:  true,
	}

	type createOrderTest struct {
		name     string
		input    port.NewOrderInput
		mock     prepareMocks
		check    func(t *testing.T, order *domain.Order)
		expError error
	}

	tests := []createOrderTest{
		{
			name:  "physical order with coupon and affiliate",
			input: port.NewOrderInput{UserID: 1, Lines: []domain.CartLine{book}, CouponCode: "bemvindo10", AffiliateCode: "blog-da-ana"},
			mock: func(repo *mock.MockRepository, gws *mock.MockGatewaySelector, gw *mock.MockPaymentGateway, notifier *mock.MockNotifier) {
				repo.EXPECT().GetCouponByCode(gomock.Any(), "BEMVINDO10").Return(&coupon, nil)
				repo.EXPECT().GetAffiliateByCode(gomock.Any(), "blog-da-ana").Return(&affiliate, nil)
				repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, order *domain.Order) (*domain.Order, error) {
						order.Number = 125
						return order, nil
					})
			},
			check: func(t *testing.T, order *domain.Order) {
				assert.Equal(t, domain.OrderStatusAwaitingPayment, order.Status)
				assert.Equal(t, domain.OrderPaymentPending, order.PaymentStatus)
				assertAmount(t, "89.90", order.Subtotal)
				assertAmount(t, "8.99", order.Discount)
				assertAmount(t, "19.90", order.Shipping)
				assertAmount(t, "100.81", order.Total)
				assert.Equal(t, "BEMVINDO10", order.CouponCode)
				assert.Equal(t, "blog-da-ana", order.AffiliateCode)
				assert.Len(t, order.Items, 1)
			},
		},
		{
			name:  "digital order skips shipping",
			input: port.NewOrderInput{UserID: 1, Lines: []domain.CartLine{ebook}},
			mock: func(repo *mock.MockRepository, gws *mock.MockGatewaySelector, gw *mock.MockPaymentGateway, notifier *mock.MockNotifier) {
				repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, order *domain.Order) (*domain.Order, error) {
						return order, nil
					})
			},
			check: func(t *testing.T, order *domain.Order) {
				assertAmount(t, "0", order.Shipping)
				assertAmount(t, "19.90", order.Total)
			},
		},
		{
			name:  "unknown affiliate never blocks checkout",
			input: port.NewOrderInput{UserID: 1, Lines: []domain.CartLine{book}, AffiliateCode: "ninguem"},
			mock: func(repo *mock.MockRepository, gws *mock.MockGatewaySelector, gw *mock.MockPaymentGateway, notifier *mock.MockNotifier) {
				repo.EXPECT().GetAffiliateByCode(gomock.Any(), "ninguem").Return(nil, domain.ErrDataNotFound)
				repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, order *domain.Order) (*domain.Order, error) {
						return order, nil
					})
			},
			check: func(t *testing.T, order *domain.Order) {
				assert.Nil(t, order.AffiliateID)
				assert.Empty(t, order.AffiliateCode)
			},
		},
		{
			name:  "unknown coupon fails checkout",
			input: port.NewOrderInput{UserID: 1, Lines: []domain.CartLine{book}, CouponCode: "NADA"},
			mock: func(repo *mock.MockRepository, gws *mock.MockGatewaySelector, gw *mock.MockPaymentGateway, notifier *mock.MockNotifier) {
				repo.EXPECT().GetCouponByCode(gomock.Any(), "NADA").Return(nil, domain.ErrDataNotFound)
			},
			expError: domain.ErrCouponInvalid,
		},
		{
			name:  "single use coupon still available",
			input: port.NewOrderInput{UserID: 1, Lines: []domain.CartLine{book}, CouponCode: "PRIMEIRACOMPRA"},
			mock: func(repo *mock.MockRepository, gws *mock.MockGatewaySelector, gw *mock.MockPaymentGateway, notifier *mock.MockNotifier) {
				repo.EXPECT().GetCouponByCode(gomock.Any(), "PRIMEIRACOMPRA").Return(&singleUse, nil)
				repo.EXPECT().CountCouponUsage(gomock.Any(), uint64(8), uint64(1)).Return(0, nil)
				repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, order *domain.Order) (*domain.Order, error) {
						return order, nil
					})
			},
			check: func(t *testing.T, order *domain.Order) {
				assert.Equal(t, "PRIMEIRACOMPRA", order.CouponCode)
				assertAmount(t, "13.48", order.Discount)
			},
		},
		{
			name:  "single use coupon already redeemed",
			input: port.NewOrderInput{UserID: 1, Lines: []domain.CartLine{book}, CouponCode: "PRIMEIRACOMPRA"},
			mock: func(repo *mock.MockRepository, gws *mock.MockGatewaySelector, gw *mock.MockPaymentGateway, notifier *mock.MockNotifier) {
				repo.EXPECT().GetCouponByCode(gomock.Any(), "PRIMEIRACOMPRA").Return(&singleUse, nil)
				repo.EXPECT().CountCouponUsage(gomock.Any(), uint64(8), uint64(1)).Return(1, nil)
			},
			expError: domain.ErrCouponInvalid,
		},
		{
			name:     "empty cart",
			input:    port.NewOrderInput{UserID: 1},
			expError: domain.ErrEmptyCart,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, _ := newTestService(t, mockCtrl, test.mock)

			order, err := s.CreateOrder(context.Background(), test.input)

			if test.expError != nil {
				assert.ErrorIs(t, err, test.expError)
				assert.Nil(t, order)
				return
			}
			assert.NoError(t, err)
			if test.check != nil {
				test.check(t, order)
			}
		})
	}
}

func TestService_CreateCharge(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	order := func() *domain.Order {
		return &domain.Order{
			Number:        125,
			UserID:        1,
			Status:        domain.OrderStatusAwaitingPayment,
			PaymentStatus: domain.OrderPaymentPending,
			Total:         decimal.MustParse("100.81"),
		}
	}

	t.Run("pix charge schedules polling", func(t *testing.T) {
		s, scheduler := newTestService(t, mockCtrl,
			func(repo *mock.MockRepository, gws *mock.MockGatewaySelector, gw *mock.MockPaymentGateway, notifier *mock.MockNotifier) {
				repo.EXPECT().ReadOrder(gomock.Any(), int64(125)).Return(order(), nil)
				repo.EXPECT().ReadPaymentsByOrder(gomock.Any(), int64(125)).Return(nil, nil)
				gws.EXPECT().Lookup(domain.PaymentMethodPIX).Return(gw, nil)
				gw.EXPECT().CreateCharge(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&port.ChargeResult{
						CorrelationID:  "pay_123",
						ProviderStatus: "PENDING",
						Presentation: domain.Presentation{
							Kind:       domain.PresentationPixQRCode,
							PixPayload: "00020126pix...",
						},
					}, nil)
				repo.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
						return p, nil
					})
			})

		payment, err := s.CreateCharge(context.Background(), 1, 125, domain.PaymentMethodPIX, domain.PayerInfo{})
		assert.NoError(t, err)
		assert.Equal(t, domain.PaymentPending, payment.Status)
		assert.Equal(t, "pay_123", payment.CorrelationID)
		assert.Equal(t, domain.PresentationPixQRCode, payment.Presentation.Kind)

		assert.Equal(t, int64(125), scheduler.wait(t))
	})

	t.Run("card settles synchronously through reconciliation", func(t *testing.T) {
		notified := false
		s, _ := newTestService(t, mockCtrl,
			func(repo *mock.MockRepository, gws *mock.MockGatewaySelector, gw *mock.MockPaymentGateway, notifier *mock.MockNotifier) {
				o := order()
				repo.EXPECT().ReadOrder(gomock.Any(), int64(125)).Return(o, nil)
				repo.EXPECT().ReadPaymentsByOrder(gomock.Any(), int64(125)).Return(nil, nil)
				gws.EXPECT().Lookup(domain.PaymentMethodCard).Return(gw, nil)
				gw.EXPECT().CreateCharge(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&port.ChargeResult{CorrelationID: "ch_456", ProviderStatus: "paid"}, nil)

				var created *domain.Payment
				repo.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
						created = p
						return p, nil
					})
				repo.EXPECT().ReconcilePayment(gomock.Any(), "ch_456", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, fn port.ReconcileFn) (*domain.Payment, bool, error) {
						entry, err := fn(created, o)
						assert.NoError(t, err)
						assert.NotNil(t, entry)
						return created, true, nil
					})
				notifier.EXPECT().OrderStatusChanged(gomock.Any(), gomock.Any(), gomock.Any()).
					Do(func(_ context.Context, o *domain.Order, entry *domain.OrderHistory) {
						notified = true
						assert.Equal(t, domain.OrderStatusPaymentApproved, o.Status)
						assert.Equal(t, domain.ActorSystem, entry.Actor)
					})
			})

		payment, err := s.CreateCharge(context.Background(), 1, 125, domain.PaymentMethodCard, domain.PayerInfo{CardToken: "tok_1"})
		assert.NoError(t, err)
		assert.Equal(t, domain.PaymentConfirmed, payment.Status)
		assert.NotNil(t, payment.ConfirmedAt)
		assert.True(t, notified)
	})

	t.Run("rejected charge leaves no payment row", func(t *testing.T) {
		s, _ := newTestService(t, mockCtrl,
			func(repo *mock.MockRepository, gws *mock.MockGatewaySelector, gw *mock.MockPaymentGateway, notifier *mock.MockNotifier) {
				repo.EXPECT().ReadOrder(gomock.Any(), int64(125)).Return(order(), nil)
				repo.EXPECT().ReadPaymentsByOrder(gomock.Any(), int64(125)).Return(nil, nil)
				gws.EXPECT().Lookup(domain.PaymentMethodCard).Return(gw, nil)
				gw.EXPECT().CreateCharge(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, domain.ErrGatewayRejected)
				// No CreatePayment expectation: a rejected charge must not persist.
			})

		payment, err := s.CreateCharge(context.Background(), 1, 125, domain.PaymentMethodCard, domain.PayerInfo{})
		assert.ErrorIs(t, err, domain.ErrGatewayRejected)
		assert.Nil(t, payment)
	})

	t.Run("charge on foreign order is forbidden", func(t *testing.T) {
		s, _ := newTestService(t, mockCtrl,
			func(repo *mock.MockRepository, gws *mock.MockGatewaySelector, gw *mock.MockPaymentGateway, notifier *mock.MockNotifier) {
				repo.EXPECT().ReadOrder(gomock.Any(), int64(125)).Return(order(), nil)
			})

		_, err := s.CreateCharge(context.Background(), 2, 125, domain.PaymentMethodPIX, domain.PayerInfo{})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("order past awaiting payment is locked", func(t *testing.T) {
		s, _ := newTestService(t, mockCtrl,
			func(repo *mock.MockRepository, gws *mock.MockGatewaySelector, gw *mock.MockPaymentGateway, notifier *mock.MockNotifier) {
				o := order()
				o.Status = domain.OrderStatusInPreparation
				repo.EXPECT().ReadOrder(gomock.Any(), int64(125)).Return(o, nil)
			})

		_, err := s.CreateCharge(context.Background(), 1, 125, domain.PaymentMethodPIX, domain.PayerInfo{})
		assert.ErrorIs(t, err, domain.ErrOrderLocked)
	})

	t.Run("open charge already exists", func(t *testing.T) {
		s, _ := newTestService(t, mockCtrl,
			func(repo *mock.MockRepository, gws *mock.MockGatewaySelector, gw *mock.MockPaymentGateway, notifier *mock.MockNotifier) {
				repo.EXPECT().ReadOrder(gomock.Any(), int64(125)).Return(order(), nil)
				repo.EXPECT().ReadPaymentsByOrder(gomock.Any(), int64(125)).
					Return([]*domain.Payment{{Status: domain.PaymentPending}}, nil)
			})

		_, err := s.CreateCharge(context.Background(), 1, 125, domain.PaymentMethodPIX, domain.PayerInfo{})
		assert.ErrorIs(t, err, domain.ErrChargeAlreadyExists)
	})

	t.Run("expired charge does not block a retry", func(t *testing.T) {
		s, scheduler := newTestService(t, mockCtrl,
			func(repo *mock.MockRepository, gws *mock.MockGatewaySelector, gw *mock.MockPaymentGateway, notifier *mock.MockNotifier) {
				repo.EXPECT().ReadOrder(gomock.Any(), int64(125)).Return(order(), nil)
				repo.EXPECT().ReadPaymentsByOrder(gomock.Any(), int64(125)).
					Return([]*domain.Payment{{Status: domain.PaymentExpired}}, nil)
				gws.EXPECT().Lookup(domain.PaymentMethodPIX).Return(gw, nil)
				gw.EXPECT().CreateCharge(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&port.ChargeResult{CorrelationID: "pay_789", ProviderStatus: "PENDING"}, nil)
				repo.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
						return p, nil
					})
			})

		payment, err := s.CreateCharge(context.Background(), 1, 125, domain.PaymentMethodPIX, domain.PayerInfo{})
		assert.NoError(t, err)
		assert.Equal(t, "pay_789", payment.CorrelationID)
		scheduler.wait(t)
	})
}

func TestService_UpdateOrderStatus(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	t.Run("admin moves order forward", func(t *testing.T) {
		order := &domain.Order{Number: 125, Status: domain.OrderStatusPaymentApproved}
		s, _ := newTestService(t, mockCtrl,
			func(repo *mock.MockRepository, gws *mock.MockGatewaySelector, gw *mock.MockPaymentGateway, notifier *mock.MockNotifier) {
				repo.EXPECT().TransitionOrder(gomock.Any(), int64(125), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ int64, fn port.TransitionFn) (*domain.Order, error) {
						entry, err := fn(order)
						if err != nil {
							return nil, err
						}
						assert.Equal(t, domain.OrderStatusPaymentApproved, entry.FromStatus)
						assert.Equal(t, domain.OrderStatusInPreparation, entry.ToStatus)
						return order, nil
					})
			})

		updated, err := s.UpdateOrderStatus(context.Background(), 125, domain.OrderStatusInPreparation, "admin:9", "")
		assert.NoError(t, err)
		assert.Equal(t, domain.OrderStatusInPreparation, updated.Status)
	})

	t.Run("backward move is rejected inside the transaction", func(t *testing.T) {
		order := &domain.Order{Number: 125, Status: domain.OrderStatusShipped}
		s, _ := newTestService(t, mockCtrl,
			func(repo *mock.MockRepository, gws *mock.MockGatewaySelector, gw *mock.MockPaymentGateway, notifier *mock.MockNotifier) {
				repo.EXPECT().TransitionOrder(gomock.Any(), int64(125), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ int64, fn port.TransitionFn) (*domain.Order, error) {
						_, err := fn(order)
						return nil, err
					})
			})

		_, err := s.UpdateOrderStatus(context.Background(), 125, domain.OrderStatusInPreparation, "admin:9", "")
		assert.ErrorIs(t, err, domain.ErrIllegalTransition)
	})
}

func TestService_SetTrackingCode(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	t.Run("tracking code ships the order", func(t *testing.T) {
		order := &domain.Order{Number: 125, Status: domain.OrderStatusInPreparation}
		s, _ := newTestService(t, mockCtrl,
			func(repo *mock.MockRepository, gws *mock.MockGatewaySelector, gw *mock.MockPaymentGateway, notifier *mock.MockNotifier) {
				repo.EXPECT().TransitionOrder(gomock.Any(), int64(125), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ int64, fn port.TransitionFn) (*domain.Order, error) {
						entry, err := fn(order)
						assert.NoError(t, err)
						assert.Equal(t, domain.OrderStatusShipped, entry.ToStatus)
						return order, nil
					})
			})

		updated, err := s.SetTrackingCode(context.Background(), 125, "BR123456789XX", "admin:9")
		assert.NoError(t, err)
		assert.Equal(t, domain.OrderStatusShipped, updated.Status)
		assert.Equal(t, "BR123456789XX", updated.TrackingCode)
	})

	t.Run("correcting the code on a shipped order writes no history", func(t *testing.T) {
		order := &domain.Order{Number: 125, Status: domain.OrderStatusShipped, TrackingCode: "BR000"}
		s, _ := newTestService(t, mockCtrl,
			func(repo *mock.MockRepository, gws *mock.MockGatewaySelector, gw *mock.MockPaymentGateway, notifier *mock.MockNotifier) {
				repo.EXPECT().TransitionOrder(gomock.Any(), int64(125), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ int64, fn port.TransitionFn) (*domain.Order, error) {
						entry, err := fn(order)
						assert.NoError(t, err)
						assert.Nil(t, entry)
						return order, nil
					})
			})

		updated, err := s.SetTrackingCode(context.Background(), 125, "BR111", "admin:9")
		assert.NoError(t, err)
		assert.Equal(t, "BR111", updated.TrackingCode)
		assert.Equal(t, domain.OrderStatusShipped, updated.Status)
	})
}

func TestService_DeleteOrder(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	s, _ := newTestService(t, mockCtrl,
		func(repo *mock.MockRepository, gws *mock.MockGatewaySelector, gw *mock.MockPaymentGateway, notifier *mock.MockNotifier) {
			repo.EXPECT().DeleteOrder(gomock.Any(), int64(125)).Return(domain.ErrOrderLocked)
		})

	err := s.DeleteOrder(context.Background(), 125)
	assert.ErrorIs(t, err, domain.ErrOrderLocked)
}

func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Zero(t, got.Cmp(decimal.MustParse(want)), "want %s, got %s", want, got)
}

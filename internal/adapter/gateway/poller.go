package gateway

import (
	"context"
	"sync"
	"time"

	"github.com/pequenoleitor/ordercore/internal/core/port"
	"go.uber.org/zap"
)

const (
	pollInterval    = 15 * time.Second
	maxPollAttempts = 120
)

// Poller re-checks pending payments against the gateway in the background.
// Orders are queued at charge creation and re-queued until the payment
// settles or the attempt budget runs out; the webhook path usually wins the
// race and the poll becomes a no-op inside reconciliation.
type Poller struct {
	logger *zap.Logger
	queue  chan int64

	mu       sync.Mutex
	attempts map[int64]int
}

func NewPoller(log *zap.Logger) *Poller {
	return &Poller{
		logger:   log,
		queue:    make(chan int64, 64),
		attempts: make(map[int64]int),
	}
}

func (p *Poller) SchedulePaymentCheck(orderNumber int64) {
	p.logger.Debug("> put order in queue (schedule)", zap.Int64("order", orderNumber))
	p.queue <- orderNumber
	p.logger.Debug("< put order in queue (schedule)", zap.Int64("order", orderNumber))
}

func (p *Poller) Run(ctx context.Context, checker port.PaymentChecker, workers int) {
	for i := 0; i < workers; i++ {
		go func() {
			for {
				select {
				case orderNumber := <-p.queue:
					p.logger.Debug("Start payment check", zap.Int64("order", orderNumber))

					settled, err := checker.CheckPayment(ctx, orderNumber)
					if err != nil {
						p.logger.Error("Payment check failed", zap.Error(err),
							zap.Int64("order", orderNumber))
					}
					if settled {
						p.drop(orderNumber)
						p.logger.Debug("Payment settled", zap.Int64("order", orderNumber))
						continue
					}
					if p.budgetLeft(orderNumber) {
						go p.requeue(ctx, orderNumber, pollInterval)
					} else {
						p.drop(orderNumber)
						p.logger.Warn("Payment check budget exhausted",
							zap.Int64("order", orderNumber))
					}
				case <-ctx.Done():
					p.logger.Debug("Finished worker")
					return
				}
			}
		}()
	}
}

func (p *Poller) requeue(ctx context.Context, orderNumber int64, waitFor time.Duration) {
	timer := time.NewTimer(waitFor)
	defer timer.Stop()

	select {
	case <-timer.C:
		p.logger.Debug("> put order in queue (retry)", zap.Int64("order", orderNumber))
		p.queue <- orderNumber
		p.logger.Debug("< put order in queue (retry)", zap.Int64("order", orderNumber))
	case <-ctx.Done():
	}
}

func (p *Poller) budgetLeft(orderNumber int64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.attempts[orderNumber]++
	return p.attempts[orderNumber] < maxPollAttempts
}

func (p *Poller) drop(orderNumber int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.attempts, orderNumber)
}

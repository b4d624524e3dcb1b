package notify

import (
	"context"

	"github.com/pequenoleitor/ordercore/internal/core/domain"
	"go.uber.org/zap"
)

// LogNotifier records applied order transitions. Customer-facing messaging
// (e-mail, WhatsApp) is wired behind the same port outside this core.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: log}
}

func (n *LogNotifier) OrderStatusChanged(ctx context.Context, order *domain.Order, entry *domain.OrderHistory) {
	n.logger.Info("order status changed",
		zap.String("order", order.DisplayNumber()),
		zap.String("from", string(entry.FromStatus)),
		zap.String("to", string(entry.ToStatus)),
		zap.String("actor", entry.Actor))
}

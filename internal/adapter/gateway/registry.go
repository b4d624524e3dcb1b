package gateway

import (
	"github.com/pequenoleitor/ordercore/internal/core/domain"
	"github.com/pequenoleitor/ordercore/internal/core/port"
)

// Registry maps payment methods to their gateway clients.
type Registry struct {
	clients map[domain.PaymentMethod]port.PaymentGateway
}

func NewRegistry() *Registry {
	return &Registry{clients: make(map[domain.PaymentMethod]port.PaymentGateway)}
}

func (r *Registry) Register(method domain.PaymentMethod, client port.PaymentGateway) {
	r.clients[method] = client
}

func (r *Registry) Lookup(method domain.PaymentMethod) (port.PaymentGateway, error) {
	client, ok := r.clients[method]
	if !ok {
		return nil, domain.ErrUnknownPaymentMethod
	}
	return client, nil
}

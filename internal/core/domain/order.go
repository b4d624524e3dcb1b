package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
)

type OrderStatus string

const (
	OrderStatusAwaitingPayment OrderStatus = "AWAITING_PAYMENT"
	OrderStatusPaymentApproved OrderStatus = "PAYMENT_APPROVED"
	OrderStatusInPreparation   OrderStatus = "IN_PREPARATION"
	OrderStatusShipped         OrderStatus = "SHIPPED"
	OrderStatusDelivered       OrderStatus = "DELIVERED"
	OrderStatusCancelled       OrderStatus = "CANCELLED"
	OrderStatusRefunded        OrderStatus = "REFUNDED"
	OrderStatusExpired         OrderStatus = "EXPIRED"
)

type OrderPaymentStatus string

const (
	OrderPaymentPending  OrderPaymentStatus = "PENDING"
	OrderPaymentPaid     OrderPaymentStatus = "PAID"
	OrderPaymentExpired  OrderPaymentStatus = "EXPIRED"
	OrderPaymentRefunded OrderPaymentStatus = "REFUNDED"
)

// fulfillmentRank orders the main chain. Side branches (CANCELLED, REFUNDED,
// EXPIRED) are not ranked and are handled explicitly by CanTransition.
var fulfillmentRank = map[OrderStatus]int{
	OrderStatusAwaitingPayment: 0,
	OrderStatusPaymentApproved: 1,
	OrderStatusInPreparation:   2,
	OrderStatusShipped:         3,
	OrderStatusDelivered:       4,
}

func (s OrderStatus) Terminal() bool {
	switch s {
	case OrderStatusDelivered, OrderStatusCancelled, OrderStatusRefunded, OrderStatusExpired:
		return true
	}
	return false
}

// CanTransition reports whether an order may move from one status to another.
// Forward moves along the fulfillment chain are allowed, backward moves are
// not. Digital orders never pass through SHIPPED. EXPIRED is reachable only
// while the order still awaits payment.
func CanTransition(from, to OrderStatus, digital bool) error {
	if from == to {
		return ErrNoUpdatedData
	}
	if from.Terminal() {
		return ErrIllegalTransition
	}
	switch to {
	case OrderStatusCancelled, OrderStatusRefunded:
		return nil
	case OrderStatusExpired:
		if from != OrderStatusAwaitingPayment {
			return ErrIllegalTransition
		}
		return nil
	case OrderStatusShipped:
		if digital {
			return ErrIllegalTransition
		}
	}
	fromRank, ok := fulfillmentRank[from]
	if !ok {
		return ErrIllegalTransition
	}
	toRank, ok := fulfillmentRank[to]
	if !ok {
		return ErrIllegalTransition
	}
	if toRank <= fromRank {
		return ErrIllegalTransition
	}
	return nil
}

type Order struct {
	ID              uuid.UUID
	Number          int64
	UserID          uint64
	Status          OrderStatus
	PaymentStatus   OrderPaymentStatus
	Subtotal        decimal.Decimal
	Discount        decimal.Decimal
	Shipping        decimal.Decimal
	Total           decimal.Decimal
	CouponID        *uint64
	CouponCode      string
	AffiliateID     *uint64
	AffiliateCode   string
	TrackingCode    string
	ShippingAddress string
	CustomerNote    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Items           []OrderItem
}

// DisplayNumber renders the sequential order number in the storefront format.
func (o *Order) DisplayNumber() string {
	return fmt.Sprintf("PED-%06d", o.Number)
}

// Digital reports whether the order contains no physical item.
func (o *Order) Digital() bool {
	for _, item := range o.Items {
		if !item.Digital {
			return false
		}
	}
	return len(o.Items) > 0
}

type OrderItem struct {
	ID              uuid.UUID
	OrderID         uuid.UUID
	Name            string
	UnitPrice       decimal.Decimal
	Quantity        int
	Subtotal        decimal.Decimal
	Digital         bool
	Personalization json.RawMessage
	DeliveryLink    string
	ReleasedAt      *time.Time
}

// OrderHistory is an append-only record of one observed status transition.
// The creation entry carries an empty FromStatus.
type OrderHistory struct {
	ID         uint64
	OrderID    uuid.UUID
	FromStatus OrderStatus
	ToStatus   OrderStatus
	Note       string
	Actor      string
	CreatedAt  time.Time
}

const ActorSystem = "system"

func ActorUser(userID uint64) string {
	return fmt.Sprintf("user:%d", userID)
}

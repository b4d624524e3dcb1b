package domain

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
)

type PaymentMethod string

const (
	PaymentMethodPIX  PaymentMethod = "PIX"
	PaymentMethodCard PaymentMethod = "CREDIT_CARD"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentConfirmed PaymentStatus = "CONFIRMED"
	PaymentExpired   PaymentStatus = "EXPIRED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

// paymentNext is the monotonic lattice of payment statuses. Notifications
// whose target is not ahead of the current status are no-ops, so a late
// CONFIRMED can never reopen a refunded payment and a late OVERDUE can never
// expire a confirmed one.
var paymentNext = map[PaymentStatus][]PaymentStatus{
	PaymentPending:   {PaymentConfirmed, PaymentExpired, PaymentRefunded},
	PaymentConfirmed: {PaymentRefunded},
	PaymentExpired:   {},
	PaymentRefunded:  {},
}

func (s PaymentStatus) CanAdvanceTo(to PaymentStatus) bool {
	for _, next := range paymentNext[s] {
		if next == to {
			return true
		}
	}
	return false
}

// ProviderStatus is the raw status string reported by a payment gateway.
type ProviderStatus string

// providerStatusMap is the single exhaustive mapping from provider statuses to
// internal payment statuses. Statuses absent from the table are ignored by
// reconciliation (logged, not applied).
var providerStatusMap = map[ProviderStatus]PaymentStatus{
	"PENDING":          PaymentPending,
	"AWAITING_PAYMENT": PaymentPending,
	"CONFIRMED":        PaymentConfirmed,
	"RECEIVED":         PaymentConfirmed,
	"RECEIVED_IN_CASH": PaymentConfirmed,
	"PAID":             PaymentConfirmed,
	"APPROVED":         PaymentConfirmed,
	"OVERDUE":          PaymentExpired,
	"EXPIRED":          PaymentExpired,
	"REFUNDED":         PaymentRefunded,
	"CHARGEBACK":       PaymentRefunded,
}

// MapProviderStatus is case-insensitive: acquirers disagree on casing.
func MapProviderStatus(s ProviderStatus) (PaymentStatus, bool) {
	st, ok := providerStatusMap[ProviderStatus(strings.ToUpper(string(s)))]
	return st, ok
}

type PresentationKind string

const (
	PresentationNone        PresentationKind = "NONE"
	PresentationPixQRCode   PresentationKind = "PIX_QRCODE"
	PresentationCardReceipt PresentationKind = "CARD_RECEIPT"
)

// Presentation is the method-specific payload shown to the customer after a
// charge is created. It is a tagged union: Kind decides which fields are set.
type Presentation struct {
	Kind        PresentationKind `json:"kind"`
	PixPayload  string           `json:"pixPayload,omitempty"`
	PixImageURL string           `json:"pixImageUrl,omitempty"`
	CardBrand   string           `json:"cardBrand,omitempty"`
	CardLast4   string           `json:"cardLast4,omitempty"`
	AuthCode    string           `json:"authCode,omitempty"`
}

// Payment is one charge attempt against an order. CorrelationID is the
// provider's opaque id, stored verbatim at creation time; it is the sole join
// key for inbound notifications.
type Payment struct {
	ID            uuid.UUID
	OrderID       uuid.UUID
	OrderNumber   int64
	Method        PaymentMethod
	Status        PaymentStatus
	Amount        decimal.Decimal
	CorrelationID string
	ConfirmedAt   *time.Time
	DueAt         *time.Time
	Presentation  Presentation
	RawPayload    json.RawMessage
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PayerInfo is the customer data forwarded to the gateway with a charge.
type PayerInfo struct {
	Name      string
	Email     string
	Document  string
	CardToken string
	CardBrand string
	CardLast4 string
}

// Notification is one inbound provider event, from webhook push or status
// poll, normalized before reconciliation.
type Notification struct {
	CorrelationID string
	Status        ProviderStatus
	OccurredAt    time.Time
	Raw           json.RawMessage
}

func (n Notification) Validate() error {
	if n.CorrelationID == "" || n.Status == "" {
		return ErrMalformedNotification
	}
	return nil
}

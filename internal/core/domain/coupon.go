package domain

import (
	"strings"
	"time"

	"github.com/govalues/decimal"
)

type CouponKind string

const (
	CouponPercentage CouponKind = "PERCENTAGE"
	CouponFixed      CouponKind = "FIXED"
)

// Coupon is a read-only discount rule. MaxDiscount of zero means no cap and
// MaxUses of zero means unlimited redemptions per user.
type Coupon struct {
	ID          uint64
	Code        string
	Kind        CouponKind
	Value       decimal.Decimal
	MaxDiscount decimal.Decimal
	ExpiresAt   *time.Time
	MaxUses     int
	Active      bool
}

// NormalizeCouponCode is the canonical form codes are stored and looked up in.
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (c *Coupon) ValidAt(now time.Time) error {
	if !c.Active {
		return ErrCouponInvalid
	}
	if c.ExpiresAt != nil && now.After(*c.ExpiresAt) {
		return ErrCouponInvalid
	}
	return nil
}

package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/govalues/decimal"
)

// CartLine is one priced line of an incoming cart.
type CartLine struct {
	Name            string
	UnitPrice       decimal.Decimal
	Quantity        int
	Digital         bool
	Personalization json.RawMessage
}

// LineSubtotal is unit price times quantity, rejecting negative inputs.
func (l CartLine) LineSubtotal() (decimal.Decimal, error) {
	if l.Quantity < 0 || l.UnitPrice.IsNeg() {
		return decimal.Zero, ErrNegativeAmount
	}
	qty, err := decimal.New(int64(l.Quantity), 0)
	if err != nil {
		return decimal.Zero, fmt.Errorf("cart quantity: %w", err)
	}
	sum, err := l.UnitPrice.Mul(qty)
	if err != nil {
		return decimal.Zero, fmt.Errorf("cart line subtotal: %w", err)
	}
	return sum.Round(2), nil
}

type Totals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// PriceCart computes subtotal, coupon discount and total for a cart. Amounts
// are kept at two decimal places, intermediate math done by the decimal
// package on integer coefficients. An empty cart prices to zero; whether that
// is acceptable is the caller's call. Shipping is not part of the cart price.
func PriceCart(lines []CartLine, coupon *Coupon, now time.Time) (Totals, error) {
	subtotal := decimal.Zero

	for _, line := range lines {
		lineSum, err := line.LineSubtotal()
		if err != nil {
			return Totals{}, err
		}
		subtotal, err = subtotal.Add(lineSum)
		if err != nil {
			return Totals{}, fmt.Errorf("cart subtotal: %w", err)
		}
	}

	discount, err := couponDiscount(subtotal, coupon, now)
	if err != nil {
		return Totals{}, err
	}

	total, err := subtotal.Sub(discount)
	if err != nil {
		return Totals{}, fmt.Errorf("cart total: %w", err)
	}

	return Totals{
		Subtotal: subtotal.Round(2),
		Discount: discount.Round(2),
		Total:    total.Round(2),
	}, nil
}

func couponDiscount(subtotal decimal.Decimal, coupon *Coupon, now time.Time) (decimal.Decimal, error) {
	if coupon == nil {
		return decimal.Zero, nil
	}
	if err := coupon.ValidAt(now); err != nil {
		return decimal.Zero, err
	}
	if coupon.Value.IsNeg() {
		return decimal.Zero, ErrCouponInvalid
	}

	var discount decimal.Decimal
	switch coupon.Kind {
	case CouponPercentage:
		d, err := subtotal.Mul(coupon.Value)
		if err != nil {
			return decimal.Zero, fmt.Errorf("percentage discount: %w", err)
		}
		d, err = d.Quo(decimal.Hundred)
		if err != nil {
			return decimal.Zero, fmt.Errorf("percentage discount: %w", err)
		}
		discount = d.Round(2)
	case CouponFixed:
		discount = coupon.Value
	default:
		return decimal.Zero, ErrCouponInvalid
	}

	if coupon.MaxDiscount.IsPos() {
		discount = discount.Min(coupon.MaxDiscount)
	}
	// Discount never exceeds what is actually being bought.
	return discount.Min(subtotal), nil
}

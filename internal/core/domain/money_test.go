package domain_test

import (
	"testing"
	"time"

	"github.com/govalues/decimal"
	"github.com/pequenoleitor/ordercore/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestPriceCart(t *testing.T) {
	now := time.Now()
	expired := now.Add(-time.Hour)

	type priceCartTest struct {
		name        string
		lines       []domain.CartLine
		coupon      *domain.Coupon
		expSubtotal string
		expDiscount string
		expTotal    string
		expError    error
	}

	book := domain.CartLine{
		Name:      "As Aventuras de Sofia",
		UnitPrice: decimal.MustParse("89.90"),
		Quantity:  1,
	}

	tests := []priceCartTest{
		{
			name:        "no coupon",
			lines:       []domain.CartLine{book},
			expSubtotal: "89.90",
			expDiscount: "0",
			expTotal:    "89.90",
		},
		{
			name:  "percentage coupon",
			lines: []domain.CartLine{book},
			coupon: &domain.Coupon{
				Code: "BEMVINDO10", Kind: domain.CouponPercentage,
				Value: decimal.MustParse("10"), Active: true,
			},
			expSubtotal: "89.90",
			expDiscount: "8.99",
			expTotal:    "80.91",
		},
		{
			name: "percentage coupon capped",
			lines: []domain.CartLine{
				{Name: "book", UnitPrice: decimal.MustParse("100.00"), Quantity: 3},
			},
			coupon: &domain.Coupon{
				Code: "MEGA50", Kind: domain.CouponPercentage,
				Value:       decimal.MustParse("50"),
				MaxDiscount: decimal.MustParse("30.00"),
				Active:      true,
			},
			expSubtotal: "300.00",
			expDiscount: "30.00",
			expTotal:    "270.00",
		},
		{
			name: "fixed coupon clamped to subtotal",
			lines: []domain.CartLine{
				{Name: "ebook", UnitPrice: decimal.MustParse("19.90"), Quantity: 1, Digital: true},
			},
			coupon: &domain.Coupon{
				Code: "VALE50", Kind: domain.CouponFixed,
				Value: decimal.MustParse("50.00"), Active: true,
			},
			expSubtotal: "19.90",
			expDiscount: "19.90",
			expTotal:    "0.00",
		},
		{
			name:        "multiple quantities",
			lines:       []domain.CartLine{{Name: "book", UnitPrice: decimal.MustParse("49.90"), Quantity: 2}},
			expSubtotal: "99.80",
			expDiscount: "0",
			expTotal:    "99.80",
		},
		{
			name:        "empty cart prices to zero",
			lines:       nil,
			expSubtotal: "0",
			expDiscount: "0",
			expTotal:    "0",
		},
		{
			name:  "expired coupon",
			lines: []domain.CartLine{book},
			coupon: &domain.Coupon{
				Code: "NATAL24", Kind: domain.CouponPercentage,
				Value: decimal.MustParse("10"), Active: true, ExpiresAt: &expired,
			},
			expError: domain.ErrCouponInvalid,
		},
		{
			name:  "inactive coupon",
			lines: []domain.CartLine{book},
			coupon: &domain.Coupon{
				Code: "DESATIVADO", Kind: domain.CouponFixed,
				Value: decimal.MustParse("5.00"), Active: false,
			},
			expError: domain.ErrCouponInvalid,
		},
		{
			name:  "negative coupon value",
			lines: []domain.CartLine{book},
			coupon: &domain.Coupon{
				Code: "RUIM", Kind: domain.CouponFixed,
				Value: decimal.MustParse("-5.00"), Active: true,
			},
			expError: domain.ErrCouponInvalid,
		},
		{
			name:     "negative unit price",
			lines:    []domain.CartLine{{Name: "bad", UnitPrice: decimal.MustParse("-1.00"), Quantity: 1}},
			expError: domain.ErrNegativeAmount,
		},
		{
			name:     "negative quantity",
			lines:    []domain.CartLine{{Name: "bad", UnitPrice: decimal.MustParse("10.00"), Quantity: -1}},
			expError: domain.ErrNegativeAmount,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			totals, err := domain.PriceCart(test.lines, test.coupon, now)

			if test.expError != nil {
				assert.ErrorIs(t, err, test.expError)
				return
			}
			assert.NoError(t, err)
			assertAmount(t, test.expSubtotal, totals.Subtotal)
			assertAmount(t, test.expDiscount, totals.Discount)
			assertAmount(t, test.expTotal, totals.Total)
		})
	}
}

func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Zero(t, got.Cmp(decimal.MustParse(want)), "want %s, got %s", want, got)
}

func TestCouponNormalize(t *testing.T) {
	assert.Equal(t, "BEMVINDO10", domain.NormalizeCouponCode("  bemvindo10 "))
}

package domain

import (
	"github.com/govalues/decimal"
)

type CommissionKind string

const (
	CommissionPercentage CommissionKind = "PERCENTAGE"
	CommissionFixed      CommissionKind = "FIXED"
)

// Affiliate is a read-only referral attribution record. Commission settlement
// happens outside the order core; only the id and code snapshot end up on the
// order.
type Affiliate struct {
	ID              uint64
	Code            string
	CommissionKind  CommissionKind
	CommissionValue decimal.Decimal
	Active          bool
}

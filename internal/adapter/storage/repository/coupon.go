package repository

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/pequenoleitor/ordercore/internal/core/domain"
)

func (or *Repository) GetCouponByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	statement := or.db.QueryBuilder.
		Select("id", "code", "kind", "value", "max_discount", "expires_at", "max_uses", "active").
		From("coupons").
		Where(sq.Eq{"code": domain.NormalizeCouponCode(code)})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	coupon := domain.Coupon{}
	err = or.db.QueryRow(ctx, sql, args...).Scan(
		&coupon.ID,
		&coupon.Code,
		&coupon.Kind,
		&coupon.Value,
		&coupon.MaxDiscount,
		&coupon.ExpiresAt,
		&coupon.MaxUses,
		&coupon.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}
	return &coupon, nil
}

// CountCouponUsage counts the user's live orders carrying the coupon.
// Cancelled and expired orders give the use back.
func (or *Repository) CountCouponUsage(ctx context.Context, couponID, userID uint64) (int, error) {
	statement := or.db.QueryBuilder.
		Select("count(*)").
		From("orders").
		Where(sq.Eq{"coupon_id": couponID, "user_id": userID}).
		Where(sq.NotEq{"status": []domain.OrderStatus{
			domain.OrderStatusCancelled,
			domain.OrderStatusExpired,
		}})

	sql, args, err := statement.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := or.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

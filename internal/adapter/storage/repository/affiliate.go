package repository

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/pequenoleitor/ordercore/internal/core/domain"
)

func (or *Repository) GetAffiliateByCode(ctx context.Context, code string) (*domain.Affiliate, error) {
	statement := or.db.QueryBuilder.
		Select("id", "code", "commission_kind", "commission_value", "active").
		From("affiliates").
		Where(sq.Eq{"code": code})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	affiliate := domain.Affiliate{}
	err = or.db.QueryRow(ctx, sql, args...).Scan(
		&affiliate.ID,
		&affiliate.Code,
		&affiliate.CommissionKind,
		&affiliate.CommissionValue,
		&affiliate.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}
	return &affiliate, nil
}

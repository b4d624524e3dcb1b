package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pequenoleitor/ordercore/internal/core/domain"
	"github.com/pequenoleitor/ordercore/internal/core/port"
)

var paymentColumns = []string{
	"id", "order_id", "order_number", "method", "status", "amount",
	"correlation_id", "confirmed_at", "due_at", "presentation", "raw_payload",
	"created_at", "updated_at",
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	payment := domain.Payment{}
	var presentation, rawPayload []byte
	err := row.Scan(
		&payment.ID,
		&payment.OrderID,
		&payment.OrderNumber,
		&payment.Method,
		&payment.Status,
		&payment.Amount,
		&payment.CorrelationID,
		&payment.ConfirmedAt,
		&payment.DueAt,
		&presentation,
		&rawPayload,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}
	if len(presentation) > 0 {
		if err := json.Unmarshal(presentation, &payment.Presentation); err != nil {
			return nil, err
		}
	}
	payment.RawPayload = rawPayload
	return &payment, nil
}

func (or *Repository) CreatePayment(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	presentation, err := json.Marshal(payment.Presentation)
	if err != nil {
		return nil, err
	}

	statement := or.db.QueryBuilder.Insert("payments").
		Columns(paymentColumns...).
		Values(payment.ID, payment.OrderID, payment.OrderNumber, payment.Method,
			payment.Status, payment.Amount, payment.CorrelationID,
			payment.ConfirmedAt, payment.DueAt, presentation,
			[]byte(payment.RawPayload), payment.CreatedAt, payment.UpdatedAt)

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	_, err = or.db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, domain.ErrConflictingData
		}
		return nil, err
	}
	return payment, nil
}

func (or *Repository) ReadPaymentsByOrder(ctx context.Context, number int64) ([]*domain.Payment, error) {
	statement := or.db.QueryBuilder.
		Select(paymentColumns...).
		From("payments").
		Where(sq.Eq{"order_number": number}).
		OrderBy("created_at")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := or.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.Payment, 0)
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// ReconcilePayment locks the payment row by correlation id, locks its order,
// and runs fn over both. Concurrent notifications for one correlation id
// serialize on the payment row lock, so only the first one past the
// idempotence check applies a transition. fn returning ErrNoUpdatedData
// commits nothing and reports applied=false.
func (or *Repository) ReconcilePayment(ctx context.Context, correlationID string, fn port.ReconcileFn) (*domain.Payment, bool, error) {
	var (
		payment *domain.Payment
		applied bool
	)
	err := pgx.BeginFunc(ctx, or.db, func(tx pgx.Tx) error {
		statement := or.db.QueryBuilder.
			Select(paymentColumns...).
			From("payments").
			Where(sq.Eq{"correlation_id": correlationID}).
			Suffix("FOR UPDATE")

		sql, args, err := statement.ToSql()
		if err != nil {
			return err
		}
		payment, err = scanPayment(tx.QueryRow(ctx, sql, args...))
		if err != nil {
			return err
		}

		order, err := or.readOrder(ctx, tx, payment.OrderNumber, true)
		if err != nil {
			return err
		}

		entry, err := fn(payment, order)
		if err != nil {
			if errors.Is(err, domain.ErrNoUpdatedData) {
				return nil
			}
			return err
		}

		if err := or.updatePayment(ctx, tx, payment); err != nil {
			return err
		}
		if err := or.updateOrder(ctx, tx, order); err != nil {
			return err
		}
		if entry != nil {
			if err := or.insertHistory(ctx, tx, entry); err != nil {
				return err
			}
		}
		applied = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return payment, applied, nil
}

func (or *Repository) updatePayment(ctx context.Context, q dbtx, payment *domain.Payment) error {
	payment.UpdatedAt = time.Now()
	statement := or.db.QueryBuilder.Update("payments").
		Set("status", payment.Status).
		Set("confirmed_at", payment.ConfirmedAt).
		Set("raw_payload", []byte(payment.RawPayload)).
		Set("updated_at", payment.UpdatedAt).
		Where(sq.Eq{"id": payment.ID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}
	_, err = q.Exec(ctx, sql, args...)
	return err
}

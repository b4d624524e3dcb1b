package repository

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pequenoleitor/ordercore/internal/core/domain"
	"github.com/pequenoleitor/ordercore/internal/core/port"
)

var orderColumns = []string{
	"id", "number", "user_id", "status", "payment_status",
	"subtotal", "discount", "shipping", "total",
	"coupon_id", "coupon_code", "affiliate_id", "affiliate_code",
	"tracking_code", "shipping_address", "customer_note",
	"created_at", "updated_at",
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	order := domain.Order{}
	err := row.Scan(
		&order.ID,
		&order.Number,
		&order.UserID,
		&order.Status,
		&order.PaymentStatus,
		&order.Subtotal,
		&order.Discount,
		&order.Shipping,
		&order.Total,
		&order.CouponID,
		&order.CouponCode,
		&order.AffiliateID,
		&order.AffiliateCode,
		&order.TrackingCode,
		&order.ShippingAddress,
		&order.CustomerNote,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (or *Repository) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	err := pgx.BeginFunc(ctx, or.db, func(tx pgx.Tx) error {
		// Number assignment is serialized by the sequence, so concurrent
		// checkouts never collide.
		err := tx.QueryRow(ctx, `SELECT nextval('order_number_seq')`).Scan(&order.Number)
		if err != nil {
			return err
		}

		statement := or.db.QueryBuilder.Insert("orders").
			Columns(orderColumns...).
			Values(order.ID, order.Number, order.UserID, order.Status, order.PaymentStatus,
				order.Subtotal, order.Discount, order.Shipping, order.Total,
				order.CouponID, order.CouponCode, order.AffiliateID, order.AffiliateCode,
				order.TrackingCode, order.ShippingAddress, order.CustomerNote,
				order.CreatedAt, order.UpdatedAt)

		sql, args, err := statement.ToSql()
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, sql, args...)
		if err != nil {
			return err
		}

		for i := range order.Items {
			item := &order.Items[i]
			itemSt := or.db.QueryBuilder.Insert("order_items").
				Columns("id", "order_id", "name", "unit_price", "quantity",
					"subtotal", "digital", "personalization", "delivery_link", "released_at").
				Values(item.ID, order.ID, item.Name, item.UnitPrice, item.Quantity,
					item.Subtotal, item.Digital, []byte(item.Personalization),
					item.DeliveryLink, item.ReleasedAt)

			sql, args, err := itemSt.ToSql()
			if err != nil {
				return err
			}
			_, err = tx.Exec(ctx, sql, args...)
			if err != nil {
				return err
			}
		}

		return or.insertHistory(ctx, tx, &domain.OrderHistory{
			OrderID:  order.ID,
			ToStatus: order.Status,
			Note:     "Order created",
			Actor:    domain.ActorUser(order.UserID),
		})
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, domain.ErrConflictingData
		}
		return nil, err
	}
	return order, nil
}

func (or *Repository) ReadOrder(ctx context.Context, number int64) (*domain.Order, error) {
	return or.readOrder(ctx, or.db.Pool, number, false)
}

func (or *Repository) readOrder(ctx context.Context, q dbtx, number int64, forUpdate bool) (*domain.Order, error) {
	statement := or.db.QueryBuilder.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"number": number})
	if forUpdate {
		statement = statement.Suffix("FOR UPDATE")
	}

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	order, err := scanOrder(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, err
	}
	order.Items, err = or.listItems(ctx, q, order.ID)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (or *Repository) listItems(ctx context.Context, q dbtx, orderID any) ([]domain.OrderItem, error) {
	statement := or.db.QueryBuilder.
		Select("id", "order_id", "name", "unit_price", "quantity",
			"subtotal", "digital", "personalization", "delivery_link", "released_at").
		From("order_items").
		Where(sq.Eq{"order_id": orderID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.OrderItem, 0)
	for rows.Next() {
		item := domain.OrderItem{}
		var personalization []byte
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.Name,
			&item.UnitPrice,
			&item.Quantity,
			&item.Subtotal,
			&item.Digital,
			&personalization,
			&item.DeliveryLink,
			&item.ReleasedAt,
		)
		if err != nil {
			return nil, err
		}
		item.Personalization = personalization
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (or *Repository) ListOrdersByUser(ctx context.Context, userID uint64) ([]*domain.Order, error) {
	statement := or.db.QueryBuilder.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC")
	return or.listOrders(ctx, statement)
}

func (or *Repository) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	statement := or.db.QueryBuilder.
		Select(orderColumns...).
		From("orders").
		OrderBy("created_at DESC")
	return or.listOrders(ctx, statement)
}

func (or *Repository) ListOrdersByStatus(ctx context.Context, statuses []domain.OrderStatus) ([]*domain.Order, error) {
	statement := or.db.QueryBuilder.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"status": statuses}).
		OrderBy("created_at")
	return or.listOrders(ctx, statement)
}

func (or *Repository) listOrders(ctx context.Context, statement sq.SelectBuilder) ([]*domain.Order, error) {
	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := or.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func (or *Repository) ListOrderHistory(ctx context.Context, number int64) ([]*domain.OrderHistory, error) {
	statement := or.db.QueryBuilder.
		Select("h.id", "h.order_id", "h.from_status", "h.to_status", "h.note", "h.actor", "h.created_at").
		From("order_history h").
		Join("orders o ON o.id = h.order_id").
		Where(sq.Eq{"o.number": number}).
		OrderBy("h.created_at", "h.id")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := or.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.OrderHistory, 0)
	for rows.Next() {
		entry := domain.OrderHistory{}
		err := rows.Scan(
			&entry.ID,
			&entry.OrderID,
			&entry.FromStatus,
			&entry.ToStatus,
			&entry.Note,
			&entry.Actor,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		list = append(list, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// TransitionOrder runs fn against the row-locked order. fn returning
// ErrNoUpdatedData leaves everything untouched; a nil history entry persists
// the order without appending history.
func (or *Repository) TransitionOrder(ctx context.Context, number int64, fn port.TransitionFn) (*domain.Order, error) {
	var order *domain.Order
	err := pgx.BeginFunc(ctx, or.db, func(tx pgx.Tx) error {
		var err error
		order, err = or.readOrder(ctx, tx, number, true)
		if err != nil {
			return err
		}

		entry, err := fn(order)
		if err != nil {
			if errors.Is(err, domain.ErrNoUpdatedData) {
				return nil
			}
			return err
		}

		if err := or.updateOrder(ctx, tx, order); err != nil {
			return err
		}
		if entry == nil {
			return nil
		}
		return or.insertHistory(ctx, tx, entry)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (or *Repository) updateOrder(ctx context.Context, q dbtx, order *domain.Order) error {
	order.UpdatedAt = time.Now()
	statement := or.db.QueryBuilder.Update("orders").
		Set("status", order.Status).
		Set("payment_status", order.PaymentStatus).
		Set("tracking_code", order.TrackingCode).
		Set("updated_at", order.UpdatedAt).
		Where(sq.Eq{"id": order.ID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}
	_, err = q.Exec(ctx, sql, args...)
	return err
}

func (or *Repository) insertHistory(ctx context.Context, q dbtx, entry *domain.OrderHistory) error {
	statement := or.db.QueryBuilder.Insert("order_history").
		Columns("order_id", "from_status", "to_status", "note", "actor", "created_at").
		Values(entry.OrderID, entry.FromStatus, entry.ToStatus, entry.Note, entry.Actor, time.Now())

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}
	_, err = q.Exec(ctx, sql, args...)
	return err
}

// DeleteOrder removes an order and its owned rows. Orders whose payment was
// approved are never deleted.
func (or *Repository) DeleteOrder(ctx context.Context, number int64) error {
	return pgx.BeginFunc(ctx, or.db, func(tx pgx.Tx) error {
		order, err := or.readOrder(ctx, tx, number, true)
		if err != nil {
			return err
		}
		if order.PaymentStatus == domain.OrderPaymentPaid {
			return domain.ErrOrderLocked
		}

		for _, table := range []string{"order_history", "payments", "order_items"} {
			statement := or.db.QueryBuilder.Delete(table).Where(sq.Eq{"order_id": order.ID})
			sql, args, err := statement.ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, sql, args...); err != nil {
				return err
			}
		}

		statement := or.db.QueryBuilder.Delete("orders").Where(sq.Eq{"id": order.ID})
		sql, args, err := statement.ToSql()
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, sql, args...)
		return err
	})
}

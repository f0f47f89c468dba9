package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	domainErrors "github.com/zaidkh/tijara/internal/domain/errors"
	"github.com/zaidkh/tijara/internal/domain/model"
	"github.com/zaidkh/tijara/internal/domain/repository"
)

// Create inserts the order header and its items in one transaction,
// freezing catalog prices into the items. Stock is checked for availability
// but not reserved; reservation belongs to the confirm transition.
func (r *standardOrderRepository) Create(ctx context.Context, customerID int64, items []repository.NewStandardOrderItem, currency, pickupNotes string) (*model.StandardOrder, error) {
	var orderID int64
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO standard_orders (customer_id, status, total, currency, pickup_notes)
             VALUES ($1, $2, 0, $3, $4) RETURNING id`,
			customerID, model.StandardOrderStatusNew, currency, pickupNotes,
		).Scan(&orderID)
		if err != nil {
			return err
		}

		total := decimal.Zero
		for _, item := range items {
			var productID int64
			var price decimal.Decimal
			var stock int
			err := tx.QueryRow(ctx,
				`SELECT id, price, stock FROM products WHERE lower(sku)=lower($1) AND is_active`,
				item.SKU,
			).Scan(&productID, &price, &stock)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return fmt.Errorf("%w: %s", domainErrors.ErrProductNotFound, item.SKU)
				}
				return err
			}
			if stock < item.Qty {
				return fmt.Errorf("%w: %s", domainErrors.ErrInsufficientStock, item.SKU)
			}

			if _, err := tx.Exec(ctx,
				`INSERT INTO standard_order_items (order_id, product_id, qty, unit_price)
                 VALUES ($1, $2, $3, $4)`,
				orderID, productID, item.Qty, price); err != nil {
				return err
			}
			total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Qty))))
		}

		_, err = tx.Exec(ctx, `UPDATE standard_orders SET total=$1 WHERE id=$2`, total, orderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, orderID)
}

func (r *standardOrderRepository) GetByID(ctx context.Context, id int64) (*model.StandardOrder, error) {
	const query = `SELECT o.id, o.customer_id, o.status, o.total, o.currency, o.pickup_notes, o.created_at, o.updated_at,
                          c.name, c.phone, c.whatsapp, c.email, c.address, c.city, c.notes
                   FROM standard_orders o
                   JOIN customers c ON c.id = o.customer_id
                   WHERE o.id=$1`
	var o model.StandardOrder
	var customer model.Customer
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.CustomerID, &o.Status, &o.Total, &o.Currency, &o.PickupNotes, &o.CreatedAt, &o.UpdatedAt,
		&customer.Name, &customer.Phone, &customer.Whatsapp, &customer.Email, &customer.Address, &customer.City, &customer.Notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	customer.ID = o.CustomerID
	o.Customer = &customer

	items, err := r.loadItems(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *standardOrderRepository) loadItems(ctx context.Context, orderID int64) ([]model.StandardOrderItem, error) {
	const query = `SELECT i.id, i.order_id, i.product_id, p.sku, p.name, i.qty, i.unit_price
                   FROM standard_order_items i
                   JOIN products p ON p.id = i.product_id
                   WHERE i.order_id=$1 ORDER BY i.id`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.StandardOrderItem
	for rows.Next() {
		var item model.StandardOrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.SKU, &item.Name, &item.Qty, &item.UnitPrice); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *standardOrderRepository) List(ctx context.Context, filter repository.StandardOrderFilter) ([]model.StandardOrder, error) {
	query := `SELECT o.id, o.customer_id, o.status, o.total, o.currency, o.pickup_notes, o.created_at, o.updated_at,
                     c.name, c.phone, c.whatsapp, c.email, c.address, c.city, c.notes
              FROM standard_orders o
              JOIN customers c ON c.id = o.customer_id`
	args := []any{}
	if filter.Status != "" {
		query += ` WHERE o.status=$1`
		args = append(args, filter.Status)
	}
	query += ` ORDER BY o.created_at DESC`

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.StandardOrder
	for rows.Next() {
		var o model.StandardOrder
		var customer model.Customer
		if err := rows.Scan(
			&o.ID, &o.CustomerID, &o.Status, &o.Total, &o.Currency, &o.PickupNotes, &o.CreatedAt, &o.UpdatedAt,
			&customer.Name, &customer.Phone, &customer.Whatsapp, &customer.Email, &customer.Address, &customer.City, &customer.Notes,
		); err != nil {
			return nil, err
		}
		customer.ID = o.CustomerID
		o.Customer = &customer
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		items, err := r.loadItems(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Items = items
	}
	return result, nil
}

// Transition is the single write path for order status. It locks the order
// row, re-checks the guard, runs the requested ledger effect in the same
// transaction and persists the target status; any failure rolls back the
// whole unit.
func (r *standardOrderRepository) Transition(ctx context.Context, id int64, target model.StandardOrderStatus, allowedPrev []model.StandardOrderStatus, effect model.StockEffect) (*model.StandardOrder, error) {
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var current model.StandardOrderStatus
		err := tx.QueryRow(ctx, `SELECT status FROM standard_orders WHERE id=$1 FOR UPDATE`, id).Scan(&current)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}

		if !statusAllowed(current, allowedPrev) {
			return domainErrors.ErrInvalidTransition
		}

		if effect != model.StockEffectNone {
			items, err := loadStockItemsTx(ctx, tx, id)
			if err != nil {
				return err
			}
			switch effect {
			case model.StockEffectReserve:
				if err := reserveStockTx(ctx, tx, items); err != nil {
					return err
				}
			case model.StockEffectRelease:
				if err := releaseStockTx(ctx, tx, items); err != nil {
					return err
				}
			}
		}

		_, err = tx.Exec(ctx, `UPDATE standard_orders SET status=$1, updated_at=NOW() WHERE id=$2`, target, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// UpdateTotal re-derives the header total from the items.
func (r *standardOrderRepository) UpdateTotal(ctx context.Context, id int64) (*model.StandardOrder, error) {
	const query = `UPDATE standard_orders SET
                       total = COALESCE((SELECT SUM(qty * unit_price) FROM standard_order_items WHERE order_id=$1), 0),
                       updated_at = NOW()
                   WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domainErrors.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func statusAllowed(current model.StandardOrderStatus, allowed []model.StandardOrderStatus) bool {
	for _, s := range allowed {
		if current == s {
			return true
		}
	}
	return false
}

func loadStockItemsTx(ctx context.Context, tx pgx.Tx, orderID int64) ([]model.StockItem, error) {
	rows, err := tx.Query(ctx,
		`SELECT i.product_id, p.sku, i.qty
         FROM standard_order_items i
         JOIN products p ON p.id = i.product_id
         WHERE i.order_id=$1 ORDER BY i.product_id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.StockItem
	for rows.Next() {
		var item model.StockItem
		if err := rows.Scan(&item.ProductID, &item.SKU, &item.Qty); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	domainErrors "github.com/zaidkh/tijara/internal/domain/errors"
	"github.com/zaidkh/tijara/internal/domain/model"
	"github.com/zaidkh/tijara/internal/domain/repository"
)

// How long a picked-up quote stays invisible to other render pollers before
// it is eligible again.
const renderRetryInterval = "5 minutes"

func (r *customOrderRepository) Create(ctx context.Context, customerID int64, draft repository.CustomOrderDraft, currency string) (*model.CustomOrder, error) {
	const query = `INSERT INTO custom_orders
                       (customer_id, status, requirement_summary, site_address, site_city,
                        site_geo_lat, site_geo_lng, preferred_contact_time, currency)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
                   RETURNING id`
	var id int64
	err := r.storage.pool.QueryRow(ctx, query,
		customerID, model.CustomOrderStatusNew, draft.RequirementSummary, draft.SiteAddress, draft.SiteCity,
		draft.SiteGeoLat, draft.SiteGeoLng, draft.PreferredContactTime, currency,
	).Scan(&id)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

const customOrderColumns = `o.id, o.customer_id, o.status, o.requirement_summary, o.site_address, o.site_city,
       o.site_geo_lat, o.site_geo_lng, o.preferred_contact_time,
       o.quote_subtotal, o.quote_discount, o.quote_total, o.currency, o.quote_doc_url,
       o.created_at, o.updated_at,
       c.name, c.phone, c.whatsapp, c.email, c.address, c.city, c.notes`

func scanCustomOrder(row pgx.Row) (*model.CustomOrder, error) {
	var o model.CustomOrder
	var customer model.Customer
	var lat, lng, subtotal, discount, total decimal.NullDecimal
	err := row.Scan(
		&o.ID, &o.CustomerID, &o.Status, &o.RequirementSummary, &o.SiteAddress, &o.SiteCity,
		&lat, &lng, &o.PreferredContactTime,
		&subtotal, &discount, &total, &o.Currency, &o.QuoteDocumentURL,
		&o.CreatedAt, &o.UpdatedAt,
		&customer.Name, &customer.Phone, &customer.Whatsapp, &customer.Email, &customer.Address, &customer.City, &customer.Notes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	o.SiteGeoLat = nullDecimalPtr(lat)
	o.SiteGeoLng = nullDecimalPtr(lng)
	o.QuoteSubtotal = nullDecimalPtr(subtotal)
	o.QuoteDiscount = nullDecimalPtr(discount)
	o.QuoteTotal = nullDecimalPtr(total)
	customer.ID = o.CustomerID
	o.Customer = &customer
	return &o, nil
}

func nullDecimalPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}

func (r *customOrderRepository) GetByID(ctx context.Context, id int64) (*model.CustomOrder, error) {
	query := `SELECT ` + customOrderColumns + `
              FROM custom_orders o
              JOIN customers c ON c.id = o.customer_id
              WHERE o.id=$1`
	order, err := scanCustomOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	lines, err := r.loadLines(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Lines = lines
	return order, nil
}

func (r *customOrderRepository) loadLines(ctx context.Context, orderID int64) ([]model.CustomOrderLine, error) {
	const query = `SELECT id, order_id, line_type, name, sku, qty, unit_price
                   FROM custom_order_lines WHERE order_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []model.CustomOrderLine
	for rows.Next() {
		var line model.CustomOrderLine
		var price decimal.NullDecimal
		if err := rows.Scan(&line.ID, &line.OrderID, &line.Type, &line.Name, &line.SKU, &line.Qty, &price); err != nil {
			return nil, err
		}
		line.UnitPrice = nullDecimalPtr(price)
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *customOrderRepository) List(ctx context.Context, filter repository.CustomOrderFilter) ([]model.CustomOrder, error) {
	query := `SELECT ` + customOrderColumns + `
              FROM custom_orders o
              JOIN customers c ON c.id = o.customer_id
              WHERE TRUE`
	args := []any{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += ` AND o.status=$1`
	}
	if filter.City != "" {
		args = append(args, filter.City)
		if len(args) == 1 {
			query += ` AND lower(c.city)=lower($1)`
		} else {
			query += ` AND lower(c.city)=lower($2)`
		}
	}
	query += ` ORDER BY o.created_at DESC`

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.CustomOrder
	for rows.Next() {
		order, err := scanCustomOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		lines, err := r.loadLines(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Lines = lines
	}
	return result, nil
}

// SetStatus guards the transition under a row lock; only the status column
// changes, money fields stay untouched.
func (r *customOrderRepository) SetStatus(ctx context.Context, id int64, target model.CustomOrderStatus, allowedPrev []model.CustomOrderStatus) (*model.CustomOrder, error) {
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var current model.CustomOrderStatus
		err := tx.QueryRow(ctx, `SELECT status FROM custom_orders WHERE id=$1 FOR UPDATE`, id).Scan(&current)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}

		allowed := false
		for _, s := range allowedPrev {
			if current == s {
				allowed = true
				break
			}
		}
		if !allowed {
			return domainErrors.ErrInvalidTransition
		}

		_, err = tx.Exec(ctx, `UPDATE custom_orders SET status=$1, updated_at=NOW() WHERE id=$2`, target, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// ReplaceQuote swaps the entire line set and the quote figures in one
// commit. Any previously rendered document reference is cleared so the
// artifact can never describe a superseded quote.
func (r *customOrderRepository) ReplaceQuote(ctx context.Context, id int64, lines []model.CustomOrderLine, subtotal, discount, total decimal.Decimal) (*model.CustomOrder, error) {
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var current model.CustomOrderStatus
		err := tx.QueryRow(ctx, `SELECT status FROM custom_orders WHERE id=$1 FOR UPDATE`, id).Scan(&current)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}

		if _, err := tx.Exec(ctx, `DELETE FROM custom_order_lines WHERE order_id=$1`, id); err != nil {
			return err
		}

		for _, line := range lines {
			if _, err := tx.Exec(ctx,
				`INSERT INTO custom_order_lines (order_id, line_type, name, sku, qty, unit_price)
                 VALUES ($1, $2, $3, $4, $5, $6)`,
				id, line.Type, line.Name, line.SKU, line.Qty, line.UnitPrice); err != nil {
				return err
			}
		}

		_, err = tx.Exec(ctx,
			`UPDATE custom_orders SET
                 quote_subtotal=$1, quote_discount=$2, quote_total=$3,
                 quote_doc_url='', quote_doc_requested_at=NULL,
                 status=$4, updated_at=NOW()
             WHERE id=$5`,
			subtotal, discount, total, model.CustomOrderStatusQuoteSent, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *customOrderRepository) SetQuoteDocumentURL(ctx context.Context, id int64, url string) error {
	tag, err := r.storage.pool.Exec(ctx,
		`UPDATE custom_orders SET quote_doc_url=$1, updated_at=NOW() WHERE id=$2`, url, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// SelectQuotesForRendering picks quote_sent orders without a rendered
// document, skipping rows other pollers hold, and stamps them so they are
// not re-picked until the retry interval passes.
func (r *customOrderRepository) SelectQuotesForRendering(ctx context.Context, limit int) ([]model.CustomOrder, error) {
	var ids []int64
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx,
			`SELECT id FROM custom_orders
             WHERE status=$1 AND quote_doc_url=''
               AND (quote_doc_requested_at IS NULL OR quote_doc_requested_at < NOW() - INTERVAL '`+renderRetryInterval+`')
             ORDER BY updated_at
             LIMIT $2
             FOR UPDATE SKIP LOCKED`,
			model.CustomOrderStatusQuoteSent, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var id int64
			if err := rows.Scan(&id); err != nil {
				return err
			}
			ids = append(ids, id)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		for _, id := range ids {
			if _, err := tx.Exec(ctx, `UPDATE custom_orders SET quote_doc_requested_at=NOW() WHERE id=$1`, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	orders := make([]model.CustomOrder, 0, len(ids))
	for _, id := range ids {
		order, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, nil
}

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/zaidkh/tijara/internal/domain/errors"
	"github.com/zaidkh/tijara/internal/domain/model"
	"github.com/zaidkh/tijara/internal/domain/repository"
)

func (r *productRepository) Create(ctx context.Context, product model.Product) (*model.Product, error) {
	const query = `INSERT INTO products (sku, name, price, stock, is_active)
                   VALUES ($1, $2, $3, $4, $5)
                   RETURNING id, created_at, updated_at`
	p := product
	err := r.storage.pool.QueryRow(ctx, query,
		product.SKU, product.Name, product.Price, product.Stock, product.IsActive,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &p, nil
}

// Update touches only catalog-owned fields. Stock is deliberately not part
// of the statement: the ledger owns it.
func (r *productRepository) Update(ctx context.Context, id int64, update repository.ProductUpdate) (*model.Product, error) {
	const query = `UPDATE products SET
                       name = COALESCE($2, name),
                       price = COALESCE($3, price),
                       is_active = COALESCE($4, is_active),
                       updated_at = NOW()
                   WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id, update.Name, update.Price, update.IsActive)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domainErrors.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	const query = `SELECT id, sku, name, price, stock, is_active, created_at, updated_at
                   FROM products WHERE id=$1`
	return r.scanProduct(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *productRepository) GetActiveBySKU(ctx context.Context, sku string) (*model.Product, error) {
	const query = `SELECT id, sku, name, price, stock, is_active, created_at, updated_at
                   FROM products WHERE lower(sku)=lower($1) AND is_active`
	return r.scanProduct(r.storage.pool.QueryRow(ctx, query, sku))
}

func (r *productRepository) scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.SKU, &p.Name, &p.Price, &p.Stock, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) List(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	query := `SELECT id, sku, name, price, stock, is_active, created_at, updated_at
              FROM products WHERE TRUE`
	args := []any{}

	if filter.OnlyActive {
		query += ` AND is_active`
	}
	if filter.SKU != "" {
		args = append(args, filter.SKU)
		query += ` AND lower(sku)=lower($1)`
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		if len(args) == 1 {
			query += ` AND name ILIKE $1`
		} else {
			query += ` AND name ILIKE $2`
		}
	}
	query += ` ORDER BY name`

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.Price, &p.Stock, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

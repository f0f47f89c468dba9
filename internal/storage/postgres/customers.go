package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/zaidkh/tijara/internal/domain/errors"
	"github.com/zaidkh/tijara/internal/domain/model"
)

func (r *customerRepository) UpsertByPhone(ctx context.Context, customer model.Customer) (*model.Customer, error) {
	const query = `INSERT INTO customers (name, phone, whatsapp, email, address, city, notes)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)
                   ON CONFLICT (phone) DO UPDATE SET
                       name = EXCLUDED.name,
                       whatsapp = EXCLUDED.whatsapp,
                       email = EXCLUDED.email,
                       address = EXCLUDED.address,
                       city = EXCLUDED.city,
                       notes = EXCLUDED.notes,
                       updated_at = NOW()
                   RETURNING id, created_at, updated_at`
	c := customer
	err := r.storage.pool.QueryRow(ctx, query,
		customer.Name, customer.Phone, customer.Whatsapp, customer.Email,
		customer.Address, customer.City, customer.Notes,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *customerRepository) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	const query = `SELECT id, name, phone, whatsapp, email, address, city, notes, created_at, updated_at
                   FROM customers WHERE id=$1`
	var c model.Customer
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Phone, &c.Whatsapp, &c.Email, &c.Address, &c.City, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

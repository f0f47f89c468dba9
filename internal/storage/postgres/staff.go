package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/zaidkh/tijara/internal/domain/errors"
	"github.com/zaidkh/tijara/internal/domain/model"
)

func (r *staffRepository) Create(ctx context.Context, login, passwordHash string) (*model.StaffUser, error) {
	const query = `INSERT INTO staff_users (login, password_hash) VALUES ($1, $2) RETURNING id, created_at`
	var u model.StaffUser
	err := r.storage.pool.QueryRow(ctx, query, login, passwordHash).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Login = login
	u.PasswordHash = passwordHash
	return &u, nil
}

func (r *staffRepository) GetByLogin(ctx context.Context, login string) (*model.StaffUser, error) {
	const query = `SELECT id, login, password_hash, created_at FROM staff_users WHERE login=$1`
	return r.scan(r.storage.pool.QueryRow(ctx, query, login))
}

func (r *staffRepository) GetByID(ctx context.Context, id int64) (*model.StaffUser, error) {
	const query = `SELECT id, login, password_hash, created_at FROM staff_users WHERE id=$1`
	return r.scan(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *staffRepository) scan(row pgx.Row) (*model.StaffUser, error) {
	var u model.StaffUser
	err := row.Scan(&u.ID, &u.Login, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

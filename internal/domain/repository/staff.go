package repository

import (
	"context"

	"github.com/zaidkh/tijara/internal/domain/model"
)

// StaffRepository describes persistence operations for staff accounts.
type StaffRepository interface {
	Create(ctx context.Context, login, passwordHash string) (*model.StaffUser, error)
	GetByLogin(ctx context.Context, login string) (*model.StaffUser, error)
	GetByID(ctx context.Context, id int64) (*model.StaffUser, error)
}

package repository

import (
	"context"

	"github.com/zaidkh/tijara/internal/domain/model"
)

// CustomerRepository persists customers keyed naturally by phone.
type CustomerRepository interface {
	// UpsertByPhone creates the customer or refreshes an existing record
	// carrying the same normalized phone.
	UpsertByPhone(ctx context.Context, customer model.Customer) (*model.Customer, error)
	GetByID(ctx context.Context, id int64) (*model.Customer, error)
}

package usecase

import (
	"context"
	"strings"

	"github.com/zaidkh/tijara/internal/domain/model"
	"github.com/zaidkh/tijara/internal/domain/repository"
)

// CustomerInput is the customer block submitted with a new order.
type CustomerInput struct {
	Name     string
	Phone    string
	Whatsapp string
	Email    string
	Address  string
	City     string
	Notes    string
}

// resolveCustomer normalizes the phone numbers and upserts the customer by
// its canonical phone, the natural key orders hang off.
func resolveCustomer(ctx context.Context, customers repository.CustomerRepository, input CustomerInput) (*model.Customer, error) {
	phone, err := NormalizeJordanPhone(input.Phone)
	if err != nil {
		return nil, err
	}

	whatsapp := strings.TrimSpace(input.Whatsapp)
	if whatsapp != "" {
		if whatsapp, err = NormalizeJordanPhone(whatsapp); err != nil {
			return nil, err
		}
	}

	return customers.UpsertByPhone(ctx, model.Customer{
		Name:     strings.TrimSpace(input.Name),
		Phone:    phone,
		Whatsapp: whatsapp,
		Email:    strings.TrimSpace(input.Email),
		Address:  strings.TrimSpace(input.Address),
		City:     strings.TrimSpace(input.City),
		Notes:    input.Notes,
	})
}

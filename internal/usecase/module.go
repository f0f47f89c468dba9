package usecase

import (
	"go.uber.org/fx"

	"github.com/zaidkh/tijara/internal/config"
	"github.com/zaidkh/tijara/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewCatalogUseCase,
	NewQuoteUseCase,
	func(orders repository.StandardOrderRepository, customers repository.CustomerRepository, cfg *config.Config) *StandardOrderUseCase {
		return NewStandardOrderUseCase(orders, customers, cfg.Currency)
	},
	func(orders repository.CustomOrderRepository, customers repository.CustomerRepository, cfg *config.Config) *CustomOrderUseCase {
		return NewCustomOrderUseCase(orders, customers, cfg.Currency)
	},
)

package components

import (
	"shopcore/internal/domain/inventory"
	"shopcore/internal/domain/pricing"
	"shopcore/internal/pkg/clock"
	"shopcore/internal/pkg/config"
	"shopcore/internal/usecase/commands"
	"shopcore/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	inventory.NewLedger,
	fx.Annotate(
		NewPricingCalculator,
		fx.As(new(pricing.Calculator)),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewCartCommands,
		commands.NewCheckoutCommands,
		commands.NewOrderCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewCartQueries,
		queries.NewOrderQueries,
	),
)

func NewPricingCalculator(cfg config.Config) *pricing.DefaultCalculator {
	return pricing.NewDefaultCalculator(pricing.Config{
		TaxRate:               cfg.Pricing.TaxRate,
		FreeShippingThreshold: cfg.Pricing.FreeShippingThreshold,
		ShippingRate:          cfg.Pricing.ShippingRate,
	})
}

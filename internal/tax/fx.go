package tax

import (
	"github.com/wellcrafted/invoicing/internal/tax/repository"
	"github.com/wellcrafted/invoicing/internal/tax/service"
	"go.uber.org/fx"
)

var Module = fx.Module("tax.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewResolver),
	fx.Provide(service.NewCalculator),
	fx.Provide(service.NewService),
)

package invoice

import (
	"github.com/wellcrafted/invoicing/internal/invoice/render"
	"github.com/wellcrafted/invoicing/internal/invoice/repository"
	"github.com/wellcrafted/invoicing/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(render.NewHTMLRenderer),
	fx.Provide(service.NewBuilder),
	fx.Provide(service.NewService),
)

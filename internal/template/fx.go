package template

import (
	"github.com/wellcrafted/invoicing/internal/template/repository"
	"github.com/wellcrafted/invoicing/internal/template/service"
	"go.uber.org/fx"
)

var Module = fx.Module("template.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)

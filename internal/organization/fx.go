package organization

import (
	"github.com/wellcrafted/invoicing/internal/organization/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("organization.repository",
	fx.Provide(repository.NewRepository),
)

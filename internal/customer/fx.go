package customer

import (
	"github.com/wellcrafted/invoicing/internal/customer/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("customer.repository",
	fx.Provide(repository.NewRepository),
)

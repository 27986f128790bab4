package order

import (
	"github.com/wellcrafted/invoicing/internal/order/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("order.repository",
	fx.Provide(repository.NewRepository),
)

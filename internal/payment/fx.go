package payment

import (
	"github.com/medcouncil/registry/internal/payment/repository"
	"github.com/medcouncil/registry/internal/payment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("payment.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

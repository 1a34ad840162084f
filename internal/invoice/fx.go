package invoice

import (
	"github.com/medcouncil/registry/internal/invoice/repository"
	"github.com/medcouncil/registry/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

package renewal

import (
	"github.com/medcouncil/registry/internal/renewal/repository"
	"github.com/medcouncil/registry/internal/renewal/service"
	"go.uber.org/fx"
)

var Module = fx.Module("renewal.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

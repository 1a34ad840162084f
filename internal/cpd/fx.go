package cpd

import (
	"github.com/medcouncil/registry/internal/cpd/repository"
	"github.com/medcouncil/registry/internal/cpd/service"
	"go.uber.org/fx"
)

var Module = fx.Module("cpd.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

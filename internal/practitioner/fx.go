package practitioner

import (
	"github.com/medcouncil/registry/internal/practitioner/repository"
	"github.com/medcouncil/registry/internal/practitioner/service"
	"go.uber.org/fx"
)

var Module = fx.Module("practitioner.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

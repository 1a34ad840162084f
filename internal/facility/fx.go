package facility

import (
	"github.com/medcouncil/registry/internal/facility/repository"
	"github.com/medcouncil/registry/internal/facility/service"
	"go.uber.org/fx"
)

var Module = fx.Module("facility.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

package license

import (
	"github.com/medcouncil/registry/internal/license/repository"
	"github.com/medcouncil/registry/internal/license/service"
	"go.uber.org/fx"
)

var Module = fx.Module("license.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

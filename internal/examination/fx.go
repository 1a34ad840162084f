package examination

import (
	"github.com/medcouncil/registry/internal/examination/repository"
	"github.com/medcouncil/registry/internal/examination/service"
	"go.uber.org/fx"
)

var Module = fx.Module("examination.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

package apikey

import (
	"github.com/medcouncil/registry/internal/apikey/repository"
	"github.com/medcouncil/registry/internal/apikey/service"
	"go.uber.org/fx"
)

var Module = fx.Module("apikey.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

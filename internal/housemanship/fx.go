package housemanship

import (
	"github.com/medcouncil/registry/internal/housemanship/repository"
	"github.com/medcouncil/registry/internal/housemanship/service"
	"go.uber.org/fx"
)

var Module = fx.Module("housemanship.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

package emailqueue

import (
	"github.com/medcouncil/registry/internal/emailqueue/repository"
	"github.com/medcouncil/registry/internal/emailqueue/service"
	"go.uber.org/fx"
)

var Module = fx.Module("emailqueue.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

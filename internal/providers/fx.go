package providers

import (
	"github.com/medcouncil/registry/internal/providers/email"
	"github.com/medcouncil/registry/internal/providers/pdf"
	"go.uber.org/fx"
)

var Module = fx.Module("providers",
	email.Module,
	fx.Provide(pdf.New),
)

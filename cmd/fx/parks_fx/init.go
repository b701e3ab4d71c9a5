package parks_fx

import (
	"go.uber.org/fx"

	"playgroundr/internal/services"
)

var Module = fx.Provide(services.NewParkService)

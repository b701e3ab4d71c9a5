package controllers_fx

import (
	"go.uber.org/fx"

	"playgroundr/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewParksController))

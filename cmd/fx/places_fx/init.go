package places_fx

import (
	"go.uber.org/fx"

	"playgroundr/internal/places"
	"playgroundr/internal/services"
)

var Module = fx.Provide(
	fx.Annotate(places.NewClient, fx.As(new(services.PlacesAPI))),
)

package pipeline_fx

import (
	"time"

	"go.uber.org/fx"
	"tripnote/internal/services"
)

// The extraction pipeline clients are shared between the note and guide
// services, so they live in their own module.
var Module = fx.Provide(
	providePostFetcher,
	provideItineraryGenerator,
	provideGeoResolver)

func providePostFetcher() services.PostFetcher {
	return services.NewXhsClient()
}

func provideItineraryGenerator() services.ItineraryGenerator {
	return services.NewSparkClient()
}

func provideGeoResolver() services.GeoResolver {
	return services.NewAmapClient(services.NewCoordCache(1024, 24*time.Hour))
}

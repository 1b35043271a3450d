package guide_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"tripnote/internal/repositories"
	"tripnote/internal/services"
)

var Module = fx.Provide(provideItineraryRepo, provideGuideService)

func provideItineraryRepo(db *gorm.DB) repositories.ItineraryRepository {
	return repositories.NewItineraryRepository(db)
}

func provideGuideService(
	itineraryRepo repositories.ItineraryRepository,
	generator services.ItineraryGenerator,
	geo services.GeoResolver,
) services.GuideServiceInterface {
	return services.NewGuideService(itineraryRepo, generator, geo)
}

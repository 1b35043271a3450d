package note_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"tripnote/internal/repositories"
	"tripnote/internal/services"
)

var Module = fx.Provide(provideNoteRepo, provideNoteService)

func provideNoteRepo(db *gorm.DB) repositories.NoteRepository {
	return repositories.NewNoteRepository(db)
}

func provideNoteService(
	noteRepo repositories.NoteRepository,
	fetcher services.PostFetcher,
	generator services.ItineraryGenerator,
	geo services.GeoResolver,
) services.NoteServiceInterface {
	return services.NewNoteService(noteRepo, fetcher, generator, geo)
}

package response_models

import (
	"time"

	"tripnote/internal/models/db_models"
)

type GuideResponse struct {
	ID          string             `json:"id"`
	City        string             `json:"city"`
	Schedule    db_models.Schedule `json:"schedule"`
	GeneratedAt time.Time          `json:"generated_at"`
}

func GuideResponseFrom(it *db_models.Itinerary) GuideResponse {
	schedule := it.Schedule
	if schedule == nil {
		schedule = db_models.Schedule{}
	}
	return GuideResponse{
		ID:          it.ID.String(),
		City:        it.City,
		Schedule:    schedule,
		GeneratedAt: it.GeneratedAt,
	}
}

// PlaceWithCoordinates is a place enriched for map display. Latitude and
// longitude stay nil when geocoding gave up on the place.
type PlaceWithCoordinates struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
}

type DayCoordinatesResponse struct {
	City   string                 `json:"city"`
	Day    int                    `json:"day"`
	Places []PlaceWithCoordinates `json:"places"`
}

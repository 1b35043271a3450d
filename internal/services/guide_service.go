package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"tripnote/internal/models/db_models"
	"tripnote/internal/models/request_models"
	"tripnote/internal/models/response_models"
	"tripnote/internal/repositories"
	"tripnote/pkg/utils"
)

const (
	maxItinerariesPerAccount = 9
	imageEnrichConcurrency   = 5

	defaultGuideKeyword = `博物馆\文化\艺术\历史\商场\图书馆等各式各样景点`
)

type GuideServiceInterface interface {
	CreateGuide(ctx context.Context, accountID uuid.UUID, city, keyword string, days int) (*response_models.GuideResponse, error)
	UpdateGuide(ctx context.Context, accountID, id uuid.UUID, req request_models.UpdateGuideRequest) (*response_models.GuideResponse, error)
	ListGuides(ctx context.Context, accountID uuid.UUID) ([]response_models.GuideResponse, error)
	DeleteGuide(ctx context.Context, accountID, id uuid.UUID) error
}

type GuideService struct {
	itineraryRepo repositories.ItineraryRepository
	generator     ItineraryGenerator
	geo           GeoResolver
}

func NewGuideService(
	itineraryRepo repositories.ItineraryRepository,
	generator ItineraryGenerator,
	geo GeoResolver,
) GuideServiceInterface {
	return &GuideService{
		itineraryRepo: itineraryRepo,
		generator:     generator,
		geo:           geo,
	}
}

func (s *GuideService) CreateGuide(ctx context.Context, accountID uuid.UUID, city, keyword string, days int) (*response_models.GuideResponse, error) {
	if strings.TrimSpace(city) == "" {
		return nil, utils.ErrInvalidInput
	}
	if days < 1 {
		days = 1
	}
	if keyword == "" {
		keyword = defaultGuideKeyword
	}

	count, err := s.itineraryRepo.CountByAccountId(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if count >= maxItinerariesPerAccount {
		return nil, utils.ErrGuideQuotaExceeded
	}

	raw, err := s.generator.RecommendItinerary(ctx, city, keyword, days)
	if err != nil {
		return nil, err
	}

	draft, err := ParseItineraryDraft(raw, days)
	if err != nil {
		return nil, err
	}
	draft = RepairDraft(draft, days)

	schedule := s.enrichImages(ctx, city, db_models.Schedule(draft.Data))

	itinerary := &db_models.Itinerary{
		AccountID:   accountID,
		City:        city,
		Schedule:    schedule,
		GeneratedAt: time.Now(),
	}
	if err := s.itineraryRepo.Insert(ctx, itinerary); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := response_models.GuideResponseFrom(itinerary)
	return &resp, nil
}

// enrichImages resolves an image for every place across all days with
// bounded concurrency. Output order matches input order; individual lookup
// failures degrade to the placeholder inside the resolver.
func (s *GuideService) enrichImages(ctx context.Context, city string, schedule db_models.Schedule) db_models.Schedule {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(imageEnrichConcurrency)

	for di := range schedule {
		for pi := range schedule[di].Places {
			g.Go(func() error {
				schedule[di].Places[pi].Image = s.geo.FetchPlaceImage(gctx, city, schedule[di].Places[pi].Name)
				return nil
			})
		}
	}
	g.Wait()

	return schedule
}

func (s *GuideService) UpdateGuide(ctx context.Context, accountID, id uuid.UUID, req request_models.UpdateGuideRequest) (*response_models.GuideResponse, error) {
	itinerary, err := s.itineraryRepo.GetById(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if itinerary == nil {
		return nil, utils.ErrItineraryNotFound
	}
	if itinerary.AccountID != accountID {
		return nil, utils.ErrForbidden
	}

	if req.City != "" {
		itinerary.City = req.City
	}
	itinerary.Schedule = req.Schedule
	if err := s.itineraryRepo.Update(ctx, itinerary); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := response_models.GuideResponseFrom(itinerary)
	return &resp, nil
}

func (s *GuideService) ListGuides(ctx context.Context, accountID uuid.UUID) ([]response_models.GuideResponse, error) {
	itineraries, err := s.itineraryRepo.ListByAccountId(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	responses := make([]response_models.GuideResponse, 0, len(itineraries))
	for i := range itineraries {
		responses = append(responses, response_models.GuideResponseFrom(&itineraries[i]))
	}
	return responses, nil
}

func (s *GuideService) DeleteGuide(ctx context.Context, accountID, id uuid.UUID) error {
	itinerary, err := s.itineraryRepo.GetById(ctx, id)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if itinerary == nil {
		return utils.ErrItineraryNotFound
	}
	if itinerary.AccountID != accountID {
		return utils.ErrForbidden
	}

	if err := s.itineraryRepo.DeleteById(ctx, id); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

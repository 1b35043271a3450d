package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"tripnote/internal/models/db_models"
	"tripnote/internal/models/request_models"
	"tripnote/internal/models/response_models"
	"tripnote/internal/repositories"
	"tripnote/pkg/utils"
)

const (
	maxNotesPerAccount = 6
	// The import entry point carries no day count; the regex fallback needs
	// one to chunk places, so imports assume a short trip.
	defaultImportDays = 3

	coordinateLookupConcurrency = 3
)

type NoteServiceInterface interface {
	ImportNote(ctx context.Context, accountID uuid.UUID, link string, forceOcr bool) (*response_models.NoteResponse, error)
	ParsePost(ctx context.Context, link string, forceOcr bool) (*response_models.ParsedPostResponse, error)
	AnalyzeParsed(ctx context.Context, accountID uuid.UUID, req request_models.AnalyzeNoteRequest) (*response_models.NoteResponse, error)
	ListNotes(ctx context.Context, accountID uuid.UUID) ([]response_models.NoteResponse, error)
	GetNote(ctx context.Context, accountID, id uuid.UUID) (*response_models.NoteResponse, error)
	DeleteNote(ctx context.Context, accountID, id uuid.UUID) error
	ResolveDayCoordinates(ctx context.Context, accountID, noteID uuid.UUID, day int) (*response_models.DayCoordinatesResponse, error)
}

type NoteService struct {
	noteRepo  repositories.NoteRepository
	fetcher   PostFetcher
	generator ItineraryGenerator
	geo       GeoResolver
}

func NewNoteService(
	noteRepo repositories.NoteRepository,
	fetcher PostFetcher,
	generator ItineraryGenerator,
	geo GeoResolver,
) NoteServiceInterface {
	return &NoteService{
		noteRepo:  noteRepo,
		fetcher:   fetcher,
		generator: generator,
		geo:       geo,
	}
}

func (s *NoteService) ImportNote(ctx context.Context, accountID uuid.UUID, link string, forceOcr bool) (*response_models.NoteResponse, error) {
	if strings.TrimSpace(link) == "" {
		return nil, utils.ErrInvalidInput
	}

	// Quota before any upstream call: a rejected request must not burn
	// third-party quota.
	count, err := s.noteRepo.CountByAccountId(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if count >= maxNotesPerAccount {
		return nil, utils.ErrNoteQuotaExceeded
	}

	shareURL, ok := ExtractShareLink(link)
	if !ok {
		return nil, utils.ErrLinkNotFound
	}

	post, err := s.fetcher.FetchPost(ctx, shareURL)
	if err != nil {
		return nil, err
	}

	ocrTexts := s.collectOcrTexts(ctx, post, forceOcr)

	draft, err := s.generateDraft(ctx, post.Body, ocrTexts)
	if err != nil {
		return nil, err
	}

	return s.persistNote(ctx, accountID, post.Title, post.Body, post.Images, ocrTexts, draft)
}

func (s *NoteService) ParsePost(ctx context.Context, link string, forceOcr bool) (*response_models.ParsedPostResponse, error) {
	shareURL, ok := ExtractShareLink(link)
	if !ok {
		return nil, utils.ErrLinkNotFound
	}

	post, err := s.fetcher.FetchPost(ctx, shareURL)
	if err != nil {
		return nil, err
	}

	return &response_models.ParsedPostResponse{
		Title:    post.Title,
		Body:     post.Body,
		Images:   post.Images,
		OcrTexts: s.collectOcrTexts(ctx, post, forceOcr),
	}, nil
}

func (s *NoteService) AnalyzeParsed(ctx context.Context, accountID uuid.UUID, req request_models.AnalyzeNoteRequest) (*response_models.NoteResponse, error) {
	count, err := s.noteRepo.CountByAccountId(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if count >= maxNotesPerAccount {
		return nil, utils.ErrNoteQuotaExceeded
	}

	draft, err := s.generateDraft(ctx, req.Body, req.OcrTexts)
	if err != nil {
		return nil, err
	}

	return s.persistNote(ctx, accountID, req.Title, req.Body, req.Images, req.OcrTexts, draft)
}

// collectOcrTexts applies the heuristic plus the explicit force flag. OCR
// failures never propagate.
func (s *NoteService) collectOcrTexts(ctx context.Context, post *RawPost, forceOcr bool) []string {
	shouldOcr := forceOcr || (len(post.Images) > 0 && ShouldPerformOCR(post.Body))
	if !shouldOcr {
		return []string{}
	}
	return s.fetcher.FetchOcrTexts(ctx, post.Images)
}

func (s *NoteService) generateDraft(ctx context.Context, body string, ocrTexts []string) (*db_models.ItineraryDraft, error) {
	combined := strings.TrimSpace(body + " " + strings.Join(ocrTexts, " "))
	raw, err := s.generator.ExtractItinerary(ctx, combined)
	if err != nil {
		return nil, err
	}

	draft, err := ParseItineraryDraft(raw, defaultImportDays)
	if err != nil {
		return nil, err
	}

	// Imports keep whatever day count the generator produced; only the
	// numbering and nil slices get normalized.
	return RepairDraft(draft, len(draft.Data)), nil
}

func (s *NoteService) persistNote(ctx context.Context, accountID uuid.UUID, title, body string, images, ocrTexts []string, draft *db_models.ItineraryDraft) (*response_models.NoteResponse, error) {
	if title == "" {
		title = "无标题"
	}
	if body == "" {
		body = "无正文"
	}

	note := &db_models.XhsNote{
		AccountID: accountID,
		Title:     title,
		Body:      body,
		Images:    images,
		OcrTexts:  ocrTexts,
		JSONBody:  db_models.DraftColumn(*draft),
	}
	if err := s.noteRepo.Insert(ctx, note); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := response_models.NoteResponseFrom(note)
	return &resp, nil
}

func (s *NoteService) ListNotes(ctx context.Context, accountID uuid.UUID) ([]response_models.NoteResponse, error) {
	notes, err := s.noteRepo.ListByAccountId(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	responses := make([]response_models.NoteResponse, 0, len(notes))
	for i := range notes {
		responses = append(responses, response_models.NoteResponseFrom(&notes[i]))
	}
	return responses, nil
}

func (s *NoteService) GetNote(ctx context.Context, accountID, id uuid.UUID) (*response_models.NoteResponse, error) {
	note, err := s.noteRepo.GetById(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if note == nil {
		return nil, utils.ErrNoteNotFound
	}
	if note.AccountID != accountID {
		return nil, utils.ErrForbidden
	}

	resp := response_models.NoteResponseFrom(note)
	return &resp, nil
}

func (s *NoteService) DeleteNote(ctx context.Context, accountID, id uuid.UUID) error {
	note, err := s.noteRepo.GetById(ctx, id)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if note == nil {
		return utils.ErrNoteNotFound
	}
	if note.AccountID != accountID {
		return utils.ErrForbidden
	}

	if err := s.noteRepo.DeleteById(ctx, id); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *NoteService) ResolveDayCoordinates(ctx context.Context, accountID, noteID uuid.UUID, day int) (*response_models.DayCoordinatesResponse, error) {
	note, err := s.noteRepo.GetById(ctx, noteID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if note == nil {
		return nil, utils.ErrNoteNotFound
	}
	if note.AccountID != accountID {
		return nil, utils.ErrForbidden
	}

	if day < 1 {
		day = 1
	}

	var places []db_models.Place
	for _, d := range note.JSONBody.Data {
		if d.Day == day {
			places = d.Places
			break
		}
	}

	city := note.JSONBody.City
	resolved := make([]response_models.PlaceWithCoordinates, len(places))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(coordinateLookupConcurrency)
	for i, place := range places {
		g.Go(func() error {
			entry := response_models.PlaceWithCoordinates{
				Name:        place.Name,
				Description: place.Description,
			}
			if coords := s.geo.Geocode(gctx, place.Name, city); coords != nil {
				entry.Latitude = &coords.Latitude
				entry.Longitude = &coords.Longitude
			}
			resolved[i] = entry
			return nil
		})
	}
	g.Wait()

	return &response_models.DayCoordinatesResponse{
		City:   city,
		Day:    day,
		Places: resolved,
	}, nil
}

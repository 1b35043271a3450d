package services

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"tripnote/internal/models/db_models"
)

type fakeNoteRepo struct {
	count    int64
	countErr error
	notes    map[uuid.UUID]*db_models.XhsNote
	inserted []*db_models.XhsNote
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{notes: make(map[uuid.UUID]*db_models.XhsNote)}
}

func (r *fakeNoteRepo) CountByAccountId(ctx context.Context, accountID uuid.UUID) (int64, error) {
	return r.count, r.countErr
}

func (r *fakeNoteRepo) Insert(ctx context.Context, note *db_models.XhsNote) error {
	note.ID = uuid.New()
	r.notes[note.ID] = note
	r.inserted = append(r.inserted, note)
	return nil
}

func (r *fakeNoteRepo) ListByAccountId(ctx context.Context, accountID uuid.UUID) ([]db_models.XhsNote, error) {
	var out []db_models.XhsNote
	for _, n := range r.notes {
		if n.AccountID == accountID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r *fakeNoteRepo) GetById(ctx context.Context, id uuid.UUID) (*db_models.XhsNote, error) {
	return r.notes[id], nil
}

func (r *fakeNoteRepo) DeleteById(ctx context.Context, id uuid.UUID) error {
	delete(r.notes, id)
	return nil
}

type fakeItineraryRepo struct {
	count       int64
	itineraries map[uuid.UUID]*db_models.Itinerary
	inserted    []*db_models.Itinerary
}

func newFakeItineraryRepo() *fakeItineraryRepo {
	return &fakeItineraryRepo{itineraries: make(map[uuid.UUID]*db_models.Itinerary)}
}

func (r *fakeItineraryRepo) CountByAccountId(ctx context.Context, accountID uuid.UUID) (int64, error) {
	return r.count, nil
}

func (r *fakeItineraryRepo) Insert(ctx context.Context, itinerary *db_models.Itinerary) error {
	itinerary.ID = uuid.New()
	r.itineraries[itinerary.ID] = itinerary
	r.inserted = append(r.inserted, itinerary)
	return nil
}

func (r *fakeItineraryRepo) Update(ctx context.Context, itinerary *db_models.Itinerary) error {
	r.itineraries[itinerary.ID] = itinerary
	return nil
}

func (r *fakeItineraryRepo) ListByAccountId(ctx context.Context, accountID uuid.UUID) ([]db_models.Itinerary, error) {
	var out []db_models.Itinerary
	for _, it := range r.itineraries {
		if it.AccountID == accountID {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (r *fakeItineraryRepo) GetById(ctx context.Context, id uuid.UUID) (*db_models.Itinerary, error) {
	return r.itineraries[id], nil
}

func (r *fakeItineraryRepo) DeleteById(ctx context.Context, id uuid.UUID) error {
	delete(r.itineraries, id)
	return nil
}

type fakeFetcher struct {
	post       *RawPost
	fetchErr   error
	ocrTexts   []string
	fetchCalls int32
	ocrCalls   int32
}

func (f *fakeFetcher) FetchPost(ctx context.Context, shareURL string) (*RawPost, error) {
	atomic.AddInt32(&f.fetchCalls, 1)
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.post, nil
}

func (f *fakeFetcher) FetchOcrTexts(ctx context.Context, images []string) []string {
	atomic.AddInt32(&f.ocrCalls, 1)
	return f.ocrTexts
}

type fakeGenerator struct {
	reply          string
	err            error
	extractCalls   int32
	recommendCalls int32
}

func (g *fakeGenerator) ExtractItinerary(ctx context.Context, combinedText string) (string, error) {
	atomic.AddInt32(&g.extractCalls, 1)
	return g.reply, g.err
}

func (g *fakeGenerator) RecommendItinerary(ctx context.Context, city, keyword string, days int) (string, error) {
	atomic.AddInt32(&g.recommendCalls, 1)
	return g.reply, g.err
}

type fakeGeo struct {
	mu           sync.Mutex
	coords       map[string]Coordinates
	images       map[string]string
	geocodeCalls int
	imageCalls   int
}

func (g *fakeGeo) Geocode(ctx context.Context, placeName, city string) *Coordinates {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.geocodeCalls++
	if c, ok := g.coords[placeName]; ok {
		return &c
	}
	return nil
}

func (g *fakeGeo) FetchPlaceImage(ctx context.Context, city, placeName string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.imageCalls++
	if img, ok := g.images[placeName]; ok {
		return img
	}
	return placeholderImage
}

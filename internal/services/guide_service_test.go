package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tripnote/internal/models/db_models"
	"tripnote/internal/models/request_models"
	"tripnote/pkg/utils"
)

const recommendedDraftJSON = `{
  "city": "杭州",
  "data": [
    {"day": 1, "places": [
      {"name": "西湖", "description": "环湖骑行"},
      {"name": "灵隐寺", "description": "上香祈福"}
    ]},
    {"day": 2, "places": [
      {"name": "西溪湿地", "description": "坐船游湿地"}
    ]}
  ]
}`

func TestCreateGuide(t *testing.T) {
	repo := newFakeItineraryRepo()
	generator := &fakeGenerator{reply: recommendedDraftJSON}
	geo := &fakeGeo{images: map[string]string{
		"西湖":   "https://img.example.com/xihu.jpg",
		"灵隐寺": "https://img.example.com/lingyin.jpg",
	}}
	svc := NewGuideService(repo, generator, geo)

	accountID := uuid.New()
	guide, err := svc.CreateGuide(context.Background(), accountID, "杭州", "", 2)

	require.NoError(t, err)
	assert.Equal(t, "杭州", guide.City)
	require.Len(t, guide.Schedule, 2)

	// Every place carries an image, lookup misses fall back to the
	// placeholder, and order follows the generated draft.
	assert.Equal(t, "https://img.example.com/xihu.jpg", guide.Schedule[0].Places[0].Image)
	assert.Equal(t, "https://img.example.com/lingyin.jpg", guide.Schedule[0].Places[1].Image)
	assert.Equal(t, "/default.jpg", guide.Schedule[1].Places[0].Image)
	assert.Equal(t, 3, geo.imageCalls)

	require.Len(t, repo.inserted, 1)
	assert.Equal(t, accountID, repo.inserted[0].AccountID)
	assert.False(t, repo.inserted[0].GeneratedAt.IsZero())
}

func TestCreateGuideTruncatesExtraDays(t *testing.T) {
	repo := newFakeItineraryRepo()
	generator := &fakeGenerator{reply: recommendedDraftJSON}
	svc := NewGuideService(repo, generator, &fakeGeo{})

	guide, err := svc.CreateGuide(context.Background(), uuid.New(), "杭州", "美食", 1)

	require.NoError(t, err)
	require.Len(t, guide.Schedule, 1)
	assert.Equal(t, 1, guide.Schedule[0].Day)
	assert.Equal(t, "西湖", guide.Schedule[0].Places[0].Name)
}

func TestCreateGuideQuota(t *testing.T) {
	repo := newFakeItineraryRepo()
	repo.count = 9
	generator := &fakeGenerator{}
	svc := NewGuideService(repo, generator, &fakeGeo{})

	_, err := svc.CreateGuide(context.Background(), uuid.New(), "杭州", "", 2)

	assert.ErrorIs(t, err, utils.ErrGuideQuotaExceeded)
	assert.Equal(t, int32(0), generator.recommendCalls)
}

func TestCreateGuideRequiresCity(t *testing.T) {
	svc := NewGuideService(newFakeItineraryRepo(), &fakeGenerator{}, &fakeGeo{})

	_, err := svc.CreateGuide(context.Background(), uuid.New(), "  ", "", 2)
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestCreateGuideExtractionFailure(t *testing.T) {
	repo := newFakeItineraryRepo()
	generator := &fakeGenerator{reply: "抱歉，我无法规划这个行程。"}
	svc := NewGuideService(repo, generator, &fakeGeo{})

	_, err := svc.CreateGuide(context.Background(), uuid.New(), "杭州", "", 2)

	assert.ErrorIs(t, err, utils.ErrExtractionFailure)
	assert.Empty(t, repo.inserted)
}

func TestUpdateGuide(t *testing.T) {
	repo := newFakeItineraryRepo()
	owner := uuid.New()
	itinerary := &db_models.Itinerary{
		AccountID: owner,
		City:      "杭州",
		Schedule:  db_models.Schedule{{Day: 1, Places: []db_models.Place{{Name: "西湖"}}}},
	}
	require.NoError(t, repo.Insert(context.Background(), itinerary))

	svc := NewGuideService(repo, &fakeGenerator{}, &fakeGeo{})

	updated, err := svc.UpdateGuide(context.Background(), owner, itinerary.ID, request_models.UpdateGuideRequest{
		Schedule: db_models.Schedule{{Day: 1, Places: []db_models.Place{{Name: "灵隐寺"}}}},
	})

	require.NoError(t, err)
	assert.Equal(t, "杭州", updated.City)
	assert.Equal(t, "灵隐寺", updated.Schedule[0].Places[0].Name)
}

func TestUpdateGuideOwnership(t *testing.T) {
	repo := newFakeItineraryRepo()
	itinerary := &db_models.Itinerary{AccountID: uuid.New(), City: "杭州"}
	require.NoError(t, repo.Insert(context.Background(), itinerary))

	svc := NewGuideService(repo, &fakeGenerator{}, &fakeGeo{})

	_, err := svc.UpdateGuide(context.Background(), uuid.New(), itinerary.ID, request_models.UpdateGuideRequest{
		Schedule: db_models.Schedule{},
	})
	assert.ErrorIs(t, err, utils.ErrForbidden)
}

func TestDeleteGuide(t *testing.T) {
	repo := newFakeItineraryRepo()
	owner := uuid.New()
	itinerary := &db_models.Itinerary{AccountID: owner, City: "杭州"}
	require.NoError(t, repo.Insert(context.Background(), itinerary))

	svc := NewGuideService(repo, &fakeGenerator{}, &fakeGeo{})

	assert.ErrorIs(t, svc.DeleteGuide(context.Background(), uuid.New(), itinerary.ID), utils.ErrForbidden)
	assert.NoError(t, svc.DeleteGuide(context.Background(), owner, itinerary.ID))
	assert.ErrorIs(t, svc.DeleteGuide(context.Background(), owner, itinerary.ID), utils.ErrItineraryNotFound)
}

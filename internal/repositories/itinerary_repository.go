package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"tripnote/internal/models/db_models"
)

type ItineraryRepository interface {
	CountByAccountId(ctx context.Context, accountID uuid.UUID) (int64, error)
	Insert(ctx context.Context, itinerary *db_models.Itinerary) error
	Update(ctx context.Context, itinerary *db_models.Itinerary) error
	ListByAccountId(ctx context.Context, accountID uuid.UUID) ([]db_models.Itinerary, error)
	GetById(ctx context.Context, id uuid.UUID) (*db_models.Itinerary, error)
	DeleteById(ctx context.Context, id uuid.UUID) error
}

type itineraryRepository struct {
	db *gorm.DB
}

func NewItineraryRepository(db *gorm.DB) ItineraryRepository {
	return &itineraryRepository{db: db}
}

func (r *itineraryRepository) CountByAccountId(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Itinerary{}).
		Where("account_id = ?", accountID).
		Count(&count).Error
	return count, err
}

func (r *itineraryRepository) Insert(ctx context.Context, itinerary *db_models.Itinerary) error {
	return r.db.WithContext(ctx).Create(itinerary).Error
}

func (r *itineraryRepository) Update(ctx context.Context, itinerary *db_models.Itinerary) error {
	return r.db.WithContext(ctx).Save(itinerary).Error
}

func (r *itineraryRepository) ListByAccountId(ctx context.Context, accountID uuid.UUID) ([]db_models.Itinerary, error) {
	var itineraries []db_models.Itinerary
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&itineraries).Error
	if err != nil {
		return nil, err
	}
	return itineraries, nil
}

func (r *itineraryRepository) GetById(ctx context.Context, id uuid.UUID) (*db_models.Itinerary, error) {
	var itinerary db_models.Itinerary
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&itinerary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &itinerary, nil
}

func (r *itineraryRepository) DeleteById(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&db_models.Itinerary{}).Error
}

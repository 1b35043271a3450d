package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"tripnote/internal/models/db_models"
)

type NoteRepository interface {
	CountByAccountId(ctx context.Context, accountID uuid.UUID) (int64, error)
	Insert(ctx context.Context, note *db_models.XhsNote) error
	ListByAccountId(ctx context.Context, accountID uuid.UUID) ([]db_models.XhsNote, error)
	GetById(ctx context.Context, id uuid.UUID) (*db_models.XhsNote, error)
	DeleteById(ctx context.Context, id uuid.UUID) error
}

type noteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) CountByAccountId(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.XhsNote{}).
		Where("account_id = ?", accountID).
		Count(&count).Error
	return count, err
}

func (r *noteRepository) Insert(ctx context.Context, note *db_models.XhsNote) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *noteRepository) ListByAccountId(ctx context.Context, accountID uuid.UUID) ([]db_models.XhsNote, error) {
	var notes []db_models.XhsNote
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *noteRepository) GetById(ctx context.Context, id uuid.UUID) (*db_models.XhsNote, error) {
	var note db_models.XhsNote
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&note).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &note, nil
}

func (r *noteRepository) DeleteById(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&db_models.XhsNote{}).Error
}

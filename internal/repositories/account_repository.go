package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"tripnote/internal/models/db_models"
)

type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*db_models.Account, error)
	Insert(ctx context.Context, account *db_models.Account) error
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) FindByEmail(ctx context.Context, email string) (*db_models.Account, error) {
	var account db_models.Account
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) Insert(ctx context.Context, account *db_models.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

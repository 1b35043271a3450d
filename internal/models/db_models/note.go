package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// XhsNote is an imported social-media post together with the itinerary
// draft extracted from it.
type XhsNote struct {
	BaseModel
	AccountID uuid.UUID      `gorm:"type:uuid;index"`
	Title     string
	Body      string
	Images    pq.StringArray `gorm:"type:text[]"`
	OcrTexts  pq.StringArray `gorm:"type:text[]"`
	JSONBody  DraftColumn    `gorm:"type:jsonb"`
}

package db_models

import (
	"time"

	"github.com/google/uuid"
)

type Itinerary struct {
	BaseModel
	AccountID   uuid.UUID `gorm:"type:uuid;index"`
	City        string
	Schedule    Schedule `gorm:"type:jsonb"`
	GeneratedAt time.Time
}

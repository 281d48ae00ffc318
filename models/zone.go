package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Zone is a cultivation area inside a farm. The nullable SupervisorID gives
// each zone at most one supervisor; reassigning overwrites with no history.
type Zone struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string      `gorm:"size:100;not null" json:"name"`
	Description  string      `gorm:"type:text" json:"description"`
	FarmID       uuid.UUID   `gorm:"type:uuid;not null;index" json:"farmId"`
	Farm         *Farm       `gorm:"foreignKey:FarmID" json:"farm,omitempty"`
	SupervisorID *uuid.UUID  `gorm:"type:uuid" json:"supervisorId,omitempty"`
	Supervisor   *Supervisor `gorm:"foreignKey:SupervisorID" json:"supervisor,omitempty"`
	IsActive     bool        `gorm:"default:true" json:"isActive"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`

	Codes []Code `gorm:"foreignKey:ZoneID" json:"-"`
}

func (z *Zone) BeforeCreate(tx *gorm.DB) (err error) {
	if z.ID == uuid.Nil {
		z.ID = uuid.New()
	}
	return
}

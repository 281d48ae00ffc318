package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Farm is the top-level tenant unit. Zones and codes belong to exactly one
// farm; hr and crop_lead users are scoped to one farm through User.FarmID.
type Farm struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Location    string         `gorm:"size:200" json:"location"`
	Description string         `gorm:"type:text" json:"description"`
	Boundary    datatypes.JSON `gorm:"type:jsonb" json:"boundary,omitempty"` // optional GeoJSON Polygon perimeter
	IsActive    bool           `gorm:"default:true" json:"isActive"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`

	Zones []Zone `gorm:"foreignKey:FarmID" json:"-"`
	Codes []Code `gorm:"foreignKey:FarmID" json:"-"`
}

func (f *Farm) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Code identifies a worker/harvester within a farm. The composite unique
// index lets the same literal code exist in different farms but never twice
// in the same one; it is also the backstop for concurrent bulk creations.
type Code struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Code            string     `gorm:"size:20;not null;uniqueIndex:idx_codes_code_farm" json:"code"`
	PersonFirstName string     `gorm:"size:100;not null" json:"personFirstName"`
	PersonLastName  string     `gorm:"size:100;not null" json:"personLastName"`
	Phone           string     `gorm:"size:20" json:"phone"`
	ZoneID          *uuid.UUID `gorm:"type:uuid;index" json:"zoneId,omitempty"` // nil = unassigned pool
	Zone            *Zone      `gorm:"foreignKey:ZoneID" json:"zone,omitempty"`
	FarmID          uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_codes_code_farm" json:"farmId"`
	Farm            *Farm      `gorm:"foreignKey:FarmID" json:"farm,omitempty"`
	IsActive        bool       `gorm:"default:true" json:"isActive"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func (c *Code) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Supervisor is a global record; it becomes farm-relevant only once a zone
// references it. AccessKey is the credential the field device logs in with.
type Supervisor struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName    string     `gorm:"size:100;not null" json:"firstName"`
	LastName     string     `gorm:"size:100;not null" json:"lastName"`
	Phone        string     `gorm:"size:20" json:"phone"`
	Email        string     `gorm:"size:120" json:"email"`
	AccessKey    string     `gorm:"size:50;uniqueIndex;not null" json:"accessKey"`
	IsActive     bool       `gorm:"default:true" json:"isActive"`
	LastAccessAt *time.Time `json:"lastAccessAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (s *Supervisor) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

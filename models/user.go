// models/user.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Application roles. There is no default role: anything outside this set
// is denied everywhere.
const (
	RoleAdmin    = "admin"
	RoleHR       = "hr"
	RoleCropLead = "crop_lead"
)

func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleHR, RoleCropLead:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string     `gorm:"size:80;uniqueIndex;not null" json:"username"`
	Email        string     `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	Role         string     `gorm:"size:20;not null" json:"role"`
	FarmID       *uuid.UUID `gorm:"type:uuid;index" json:"farmId,omitempty"` // nil for admin, required in practice for hr/crop_lead
	Farm         *Farm      `gorm:"foreignKey:FarmID" json:"farm,omitempty"`
	IsActive     bool       `gorm:"default:true" json:"isActive"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return
}

package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
	"p9e.in/finca/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "05082025_create_core_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Farm{}, &models.Supervisor{}, &models.Zone{},
					&models.Code{}, &models.User{})
			},
		},
		{
			ID: "12082025_add_farm_scope_indexes",
			Migrate: func(tx *gorm.DB) error {
				// Covering indexes for the per-farm list queries
				if err := tx.Exec("CREATE INDEX IF NOT EXISTS idx_zones_farm_active ON zones(farm_id, is_active)").Error; err != nil {
					return err
				}
				return tx.Exec("CREATE INDEX IF NOT EXISTS idx_codes_farm_zone ON codes(farm_id, zone_id)").Error
			},
		},
		{
			ID: "26082025_add_farm_boundary",
			Migrate: func(tx *gorm.DB) error {
				// Boundary column arrived after the initial schema; AutoMigrate
				// adds it on existing installs and no-ops on fresh ones.
				return tx.AutoMigrate(&models.Farm{})
			},
		},
	})
	return m.Migrate()
}

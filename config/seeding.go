package config

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"p9e.in/finca/models"
)

// SeedDefaultAdmin creates the bootstrap administrator account if it does
// not exist yet. The password comes from DEFAULT_ADMIN_PASSWORD and should
// be changed on first login.
func SeedDefaultAdmin() {
	var existing models.User
	if err := DB.Where("username = ?", "admin").First(&existing).Error; err == nil {
		return
	}

	password := os.Getenv("DEFAULT_ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing default admin password: %v", err)
		return
	}

	admin := models.User{
		Username:     "admin",
		Email:        "admin@finca.local",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("Error seeding default admin: %v", err)
		return
	}
	log.Println("Seeded default admin user (username=admin)")
}

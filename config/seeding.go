package config

import (
	"errors"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"p9e.in/buildtrack/models"
)

// RunAllSeeding runs all seeding operations in the correct order
func RunAllSeeding() error {
	log.Println("=== Starting Database Seeding ===")

	log.Println("[1/2] Seeding Default Admin...")
	if err := SeedAdminUser(); err != nil {
		return err
	}

	log.Println("[2/2] Seeding Starter Equipment...")
	if err := SeedEquipment(); err != nil {
		return err
	}

	log.Println("=== Database Seeding Complete ===")
	return nil
}

// SeedAdminUser creates the bootstrap admin account if no admin exists.
// Password comes from ADMIN_PASSWORD; without it the seed is skipped so a
// default credential never ships by accident.
func SeedAdminUser() error {
	var existing models.User
	err := DB.Where("role = ?", models.RoleAdmin).First(&existing).Error
	if err == nil {
		log.Println("Admin user already present, skipping")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Println("ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:         "Administrator",
		Email:        "admin@buildtrack.local",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("✅ Seeded admin user %s", admin.Email)
	return nil
}

// SeedEquipment loads a starter inventory when the table is empty.
func SeedEquipment() error {
	var count int64
	if err := DB.Model(&models.Equipment{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Equipment already present, skipping")
		return nil
	}

	items := []models.Equipment{
		{Name: "Concrete Mixer CM-200", Type: "mixer", Status: models.EquipmentAvailable, DailyRate: 85},
		{Name: "Excavator EX-12", Type: "excavator", Status: models.EquipmentAvailable, DailyRate: 450},
		{Name: "Tipper Truck TT-7", Type: "truck", Status: models.EquipmentAvailable, DailyRate: 220},
		{Name: "Scaffolding Set A", Type: "scaffolding", Status: models.EquipmentAvailable, DailyRate: 40},
		{Name: "Compactor Plate CP-3", Type: "compactor", Status: models.EquipmentAvailable, DailyRate: 60},
	}
	if err := DB.Create(&items).Error; err != nil {
		return err
	}
	log.Printf("✅ Seeded %d equipment items", len(items))
	return nil
}

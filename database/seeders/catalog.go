package seeders

import (
	"gorm.io/gorm"

	"github.com/hassanmehmood/medicart/app/models"
	"github.com/hassanmehmood/medicart/config"
	"github.com/hassanmehmood/medicart/pkg/auth"
)

func init() {
	Register("admin-user", SeedAdminUser)
	Register("categories", SeedCategories)
	Register("medicines", SeedMedicines)
}

// SeedAdminUser creates the initial admin account. Credentials come from
// ADMIN_EMAIL / ADMIN_PASSWORD so the defaults never ship to production.
func SeedAdminUser(db *gorm.DB) error {
	email := config.Get("ADMIN_EMAIL", "admin@medicart.local")
	password := config.Get("ADMIN_PASSWORD", "changeme123")

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:     "Administrator",
		Email:    email,
		Password: hash,
		Role:     auth.RoleAdmin,
	}
	return db.Where(models.User{Email: email}).FirstOrCreate(&admin).Error
}

func SeedCategories(db *gorm.DB) error {
	names := map[string]string{
		"Pain Relief":      "Analgesics and anti-inflammatory medicines",
		"Antibiotics":      "Prescription antibiotics",
		"Vitamins":         "Vitamins and dietary supplements",
		"Cold & Flu":       "Cough, cold and flu remedies",
		"Digestive Health": "Antacids and digestive aids",
		"First Aid":        "Bandages, antiseptics and wound care",
	}
	for name, desc := range names {
		category := models.Category{Name: name, Description: desc}
		if err := db.Where(models.Category{Name: name}).FirstOrCreate(&category).Error; err != nil {
			return err
		}
	}
	return nil
}

func SeedMedicines(db *gorm.DB) error {
	type entry struct {
		name, description, category string
		price                       float64
		stock                       int
	}
	catalog := []entry{
		{"Paracetamol 500mg", "Pack of 20 tablets", "Pain Relief", 3.49, 500},
		{"Ibuprofen 200mg", "Pack of 16 tablets", "Pain Relief", 4.25, 350},
		{"Amoxicillin 250mg", "Capsules, pack of 21", "Antibiotics", 9.99, 120},
		{"Vitamin C 1000mg", "Effervescent tablets, pack of 20", "Vitamins", 6.50, 400},
		{"Vitamin D3 2000IU", "Softgels, pack of 60", "Vitamins", 8.75, 300},
		{"Cough Syrup 100ml", "Non-drowsy expectorant", "Cold & Flu", 5.99, 200},
		{"Antacid Chewables", "Pack of 48 tablets", "Digestive Health", 4.80, 250},
		{"Adhesive Bandages", "Assorted sizes, box of 40", "First Aid", 2.99, 600},
	}

	for _, e := range catalog {
		var category models.Category
		if err := db.Where("name = ?", e.category).First(&category).Error; err != nil {
			return err
		}
		medicine := models.Medicine{
			Name:        e.name,
			Description: e.description,
			Price:       e.price,
			Stock:       e.stock,
			CategoryID:  category.ID,
		}
		if err := db.Where(models.Medicine{Name: e.name}).FirstOrCreate(&medicine).Error; err != nil {
			return err
		}
	}
	return nil
}

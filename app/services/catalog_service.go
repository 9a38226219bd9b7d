package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/hassanmehmood/medicart/app/models"
	"github.com/hassanmehmood/medicart/app/repositories"
	"github.com/hassanmehmood/medicart/pkg/cache"
	"github.com/hassanmehmood/medicart/pkg/orm"
	"github.com/hassanmehmood/medicart/pkg/storage"
)

// ErrStockBelowZero rejects admin edits that would set negative stock.
var ErrStockBelowZero = errors.New("catalog: stock cannot be negative")

const categoriesCacheKey = "medicart:categories"

// CatalogService covers category and medicine CRUD plus the browse surface.
type CatalogService struct {
	categories *repositories.CategoryRepository
	medicines  *repositories.MedicineRepository
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{
		categories: repositories.NewCategoryRepository(db),
		medicines:  repositories.NewMedicineRepository(db),
	}
}

// Categories serves the cached category list, invalidated on every admin
// write.
func (s *CatalogService) Categories() ([]models.Category, error) {
	return s.categories.AllCached(categoriesCacheKey, 10*time.Minute)
}

type CategoryInput struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"nullable,max=2000"`
}

func (s *CatalogService) CreateCategory(in CategoryInput) (models.Category, error) {
	category := models.Category{Name: in.Name, Description: in.Description}
	if err := s.categories.Create(&category); err != nil {
		return category, err
	}
	cache.Del(categoriesCacheKey) //nolint:errcheck
	return category, nil
}

func (s *CatalogService) UpdateCategory(id uint, in CategoryInput) (models.Category, error) {
	category, err := s.categories.FindByID(id)
	if err != nil {
		return category, err
	}

	category.Name = in.Name
	category.Description = in.Description
	if err := s.categories.Update(&category); err != nil {
		return category, err
	}
	cache.Del(categoriesCacheKey) //nolint:errcheck
	return category, nil
}

func (s *CatalogService) DeleteCategory(id uint) error {
	if err := s.categories.Delete(id); err != nil {
		return err
	}
	cache.Del(categoriesCacheKey) //nolint:errcheck
	return nil
}

// Medicines lists the browsable catalog with optional search and category
// filters.
func (s *CatalogService) Medicines(f repositories.Filter, page, limit int) ([]models.Medicine, orm.Pagination, error) {
	return s.medicines.List(f, page, limit)
}

func (s *CatalogService) Medicine(id uint) (models.Medicine, error) {
	return s.medicines.FindByID(id)
}

type MedicineInput struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description string  `json:"description" validate:"nullable,max=5000"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	CategoryID  uint    `json:"categoryId" validate:"required"`
	Image       string  `json:"image" validate:"nullable,max=512"`
}

func (s *CatalogService) CreateMedicine(in MedicineInput) (models.Medicine, error) {
	if in.Stock < 0 {
		return models.Medicine{}, ErrStockBelowZero
	}
	if _, err := s.categories.FindByID(in.CategoryID); err != nil {
		return models.Medicine{}, fmt.Errorf("catalog: category %d: %w", in.CategoryID, err)
	}

	medicine := models.Medicine{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		CategoryID:  in.CategoryID,
		Image:       in.Image,
	}
	return medicine, s.medicines.Create(&medicine)
}

func (s *CatalogService) UpdateMedicine(id uint, in MedicineInput) (models.Medicine, error) {
	if in.Stock < 0 {
		return models.Medicine{}, ErrStockBelowZero
	}

	medicine, err := s.medicines.FindByID(id)
	if err != nil {
		return medicine, err
	}

	medicine.Name = in.Name
	medicine.Description = in.Description
	medicine.Price = in.Price
	medicine.Stock = in.Stock
	medicine.CategoryID = in.CategoryID
	if in.Image != "" {
		medicine.Image = in.Image
	}
	return medicine, s.medicines.Update(&medicine)
}

func (s *CatalogService) DeleteMedicine(id uint) error {
	return s.medicines.Delete(id)
}

// AttachImage stores uploaded image bytes on the configured disk and saves
// the public URL on the medicine.
func (s *CatalogService) AttachImage(id uint, filename string, data []byte) (models.Medicine, error) {
	medicine, err := s.medicines.FindByID(id)
	if err != nil {
		return medicine, err
	}

	path := fmt.Sprintf("medicines/%d/%s", id, filename)
	if err := storage.Put(path, data); err != nil {
		return medicine, err
	}

	medicine.Image = storage.URL(path)
	return medicine, s.medicines.Update(&medicine)
}

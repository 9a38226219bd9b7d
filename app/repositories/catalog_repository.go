package repositories

import (
	"time"

	"gorm.io/gorm"

	"github.com/hassanmehmood/medicart/app/models"
	"github.com/hassanmehmood/medicart/pkg/orm"
)

// CategoryRepository handles database operations for Category.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// AllCached serves the category list through Redis; it changes rarely and
// heads every storefront page.
func (r *CategoryRepository) AllCached(key string, ttl time.Duration) ([]models.Category, error) {
	var categories []models.Category
	err := orm.Wrap(r.db.Order("name")).Cached(key, ttl, &categories)
	return categories, err
}

func (r *CategoryRepository) FindByID(id uint) (models.Category, error) {
	var category models.Category
	err := r.db.First(&category, id).Error
	return category, err
}

func (r *CategoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

func (r *CategoryRepository) Update(category *models.Category) error {
	return r.db.Save(category).Error
}

func (r *CategoryRepository) Delete(id uint) error {
	return r.db.Delete(&models.Category{}, id).Error
}

// MedicineRepository handles database operations for Medicine.
type MedicineRepository struct {
	db *gorm.DB
}

func NewMedicineRepository(db *gorm.DB) *MedicineRepository {
	return &MedicineRepository{db: db}
}

// WithTx binds the repository to a transaction handle.
func (r *MedicineRepository) WithTx(tx *gorm.DB) *MedicineRepository {
	return &MedicineRepository{db: tx}
}

// Filter narrows catalog listings.
type Filter struct {
	Search     string
	CategoryID uint
}

func (r *MedicineRepository) List(f Filter, page, limit int) ([]models.Medicine, orm.Pagination, error) {
	q := r.db.Model(&models.Medicine{})
	if f.Search != "" {
		q = q.Where("name LIKE ?", "%"+f.Search+"%")
	}
	if f.CategoryID != 0 {
		q = q.Where("category_id = ?", f.CategoryID)
	}

	var medicines []models.Medicine
	pagination, err := orm.Wrap(q).Order("name").GetWithPagination(&medicines, page, limit)
	return medicines, pagination, err
}

func (r *MedicineRepository) FindByID(id uint) (models.Medicine, error) {
	var medicine models.Medicine
	err := r.db.First(&medicine, id).Error
	return medicine, err
}

func (r *MedicineRepository) FindByIDs(ids []uint) ([]models.Medicine, error) {
	var medicines []models.Medicine
	err := r.db.Where("id IN ?", ids).Find(&medicines).Error
	return medicines, err
}

func (r *MedicineRepository) Create(medicine *models.Medicine) error {
	return r.db.Create(medicine).Error
}

func (r *MedicineRepository) Update(medicine *models.Medicine) error {
	return r.db.Save(medicine).Error
}

func (r *MedicineRepository) Delete(id uint) error {
	return r.db.Delete(&models.Medicine{}, id).Error
}

// ReserveStock decrements stock and bumps sales for one order line in a
// single guarded UPDATE. The WHERE clause carries the availability check,
// so a concurrent checkout can never drive stock negative: zero rows
// affected means the quantity was no longer available.
func (r *MedicineRepository) ReserveStock(medicineID uint, quantity int) (bool, error) {
	result := r.db.Model(&models.Medicine{}).
		Where("id = ? AND stock >= ?", medicineID, quantity).
		Updates(map[string]interface{}{
			"stock": gorm.Expr("stock - ?", quantity),
			"sales": gorm.Expr("sales + ?", quantity),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// RestoreStock reverses a reservation when an order is cancelled.
func (r *MedicineRepository) RestoreStock(medicineID uint, quantity int) error {
	return r.db.Model(&models.Medicine{}).
		Where("id = ?", medicineID).
		Updates(map[string]interface{}{
			"stock": gorm.Expr("stock + ?", quantity),
			"sales": gorm.Expr("sales - ?", quantity),
		}).Error
}

// LowStock lists medicines at or below threshold, most depleted first.
func (r *MedicineRepository) LowStock(threshold int) ([]models.Medicine, error) {
	var medicines []models.Medicine
	err := r.db.Where("stock <= ?", threshold).Order("stock asc").Find(&medicines).Error
	return medicines, err
}

// TopSelling lists the n best sellers.
func (r *MedicineRepository) TopSelling(n int) ([]models.Medicine, error) {
	var medicines []models.Medicine
	err := r.db.Order("sales desc").Limit(n).Find(&medicines).Error
	return medicines, err
}

// SetRating writes the recomputed aggregate for one medicine.
func (r *MedicineRepository) SetRating(medicineID uint, rating float64, count int) error {
	return r.db.Model(&models.Medicine{}).
		Where("id = ?", medicineID).
		Updates(map[string]interface{}{"rating": rating, "review_count": count}).Error
}

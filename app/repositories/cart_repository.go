package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/hassanmehmood/medicart/app/models"
)

// CartRepository handles database operations for CartItem.
type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

func (r *CartRepository) WithTx(tx *gorm.DB) *CartRepository {
	return &CartRepository{db: tx}
}

// Items returns the user's cart with medicine rows preloaded.
func (r *CartRepository) Items(userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.Preload("Medicine").Where("user_id = ?", userID).Order("id").Find(&items).Error
	return items, err
}

// Count returns the number of lines in the user's cart.
func (r *CartRepository) Count(userID uint) (int64, error) {
	var n int64
	err := r.db.Model(&models.CartItem{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}

// Add upserts a cart line: re-adding a medicine already in the cart
// increments its quantity instead of inserting a duplicate.
func (r *CartRepository) Add(userID, medicineID uint, quantity int) (models.CartItem, error) {
	var item models.CartItem
	err := r.db.Where("user_id = ? AND medicine_id = ?", userID, medicineID).First(&item).Error

	switch {
	case err == nil:
		item.Quantity += quantity
		return item, r.db.Save(&item).Error

	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.CartItem{UserID: userID, MedicineID: medicineID, Quantity: quantity}
		return item, r.db.Create(&item).Error

	default:
		return item, err
	}
}

// SetQuantity overwrites the quantity of one cart line owned by userID.
func (r *CartRepository) SetQuantity(userID, itemID uint, quantity int) (models.CartItem, error) {
	var item models.CartItem
	if err := r.db.Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error; err != nil {
		return item, err
	}

	item.Quantity = quantity
	return item, r.db.Save(&item).Error
}

// Remove deletes one cart line owned by userID.
func (r *CartRepository) Remove(userID, itemID uint) error {
	return r.db.Where("id = ? AND user_id = ?", itemID, userID).Delete(&models.CartItem{}).Error
}

// Clear empties the user's cart.
func (r *CartRepository) Clear(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}

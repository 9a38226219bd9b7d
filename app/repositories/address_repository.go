package repositories

import (
	"gorm.io/gorm"

	"github.com/hassanmehmood/medicart/app/models"
)

// AddressRepository handles database operations for Address.
type AddressRepository struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) *AddressRepository {
	return &AddressRepository{db: db}
}

func (r *AddressRepository) WithTx(tx *gorm.DB) *AddressRepository {
	return &AddressRepository{db: tx}
}

func (r *AddressRepository) ForUser(userID uint) ([]models.Address, error) {
	var addresses []models.Address
	err := r.db.Where("user_id = ?", userID).Order("is_default desc, id").Find(&addresses).Error
	return addresses, err
}

func (r *AddressRepository) FindByID(userID, id uint) (models.Address, error) {
	var address models.Address
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&address).Error
	return address, err
}

// FindByComponents matches an existing address on the exact (street, city,
// state, zip) tuple. This is the dedup key used during checkout.
func (r *AddressRepository) FindByComponents(userID uint, street, city, state, zip string) (models.Address, error) {
	var address models.Address
	err := r.db.Where(
		"user_id = ? AND street = ? AND city = ? AND state = ? AND zip = ?",
		userID, street, city, state, zip,
	).First(&address).Error
	return address, err
}

func (r *AddressRepository) Create(address *models.Address) error {
	return r.db.Create(address).Error
}

func (r *AddressRepository) Update(address *models.Address) error {
	return r.db.Save(address).Error
}

func (r *AddressRepository) Delete(userID, id uint) error {
	return r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Address{}).Error
}

// SetDefault flips the default flag to addressID in one statement, so no
// interleaving can leave a user with two defaults.
func (r *AddressRepository) SetDefault(userID, addressID uint) error {
	return r.db.Model(&models.Address{}).
		Where("user_id = ?", userID).
		Update("is_default", gorm.Expr("(id = ?)", addressID)).Error
}

package services

import (
	"gorm.io/gorm"

	"github.com/hassanmehmood/medicart/app/models"
	"github.com/hassanmehmood/medicart/app/repositories"
)

// AddressService manages the user's address book outside of checkout.
type AddressService struct {
	addresses *repositories.AddressRepository
}

func NewAddressService(db *gorm.DB) *AddressService {
	return &AddressService{addresses: repositories.NewAddressRepository(db)}
}

func (s *AddressService) List(userID uint) ([]models.Address, error) {
	return s.addresses.ForUser(userID)
}

type AddressInput struct {
	Street  string `json:"street" validate:"required,max=255"`
	City    string `json:"city" validate:"required,max=100"`
	State   string `json:"state" validate:"required,max=100"`
	Zip     string `json:"zip" validate:"required,max=20"`
	Country string `json:"country" validate:"nullable,max=100"`
	Phone   string `json:"phone" validate:"nullable,max=30"`
}

// Create adds an address, reusing an identical existing row instead of
// duplicating it — the same dedup rule checkout applies.
func (s *AddressService) Create(userID uint, in AddressInput) (models.Address, error) {
	if existing, err := s.addresses.FindByComponents(userID, in.Street, in.City, in.State, in.Zip); err == nil {
		return existing, nil
	}

	address := models.Address{
		UserID:  userID,
		Street:  in.Street,
		City:    in.City,
		State:   in.State,
		Zip:     in.Zip,
		Country: in.Country,
		Phone:   in.Phone,
	}
	return address, s.addresses.Create(&address)
}

func (s *AddressService) Update(userID, id uint, in AddressInput) (models.Address, error) {
	address, err := s.addresses.FindByID(userID, id)
	if err != nil {
		return address, err
	}

	address.Street = in.Street
	address.City = in.City
	address.State = in.State
	address.Zip = in.Zip
	address.Country = in.Country
	address.Phone = in.Phone
	return address, s.addresses.Update(&address)
}

func (s *AddressService) Delete(userID, id uint) error {
	return s.addresses.Delete(userID, id)
}

// SetDefault makes one address the default in a single statement; the
// user can never end up with two defaults.
func (s *AddressService) SetDefault(userID, id uint) error {
	if _, err := s.addresses.FindByID(userID, id); err != nil {
		return err
	}
	return s.addresses.SetDefault(userID, id)
}

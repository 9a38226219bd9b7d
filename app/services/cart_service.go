package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/hassanmehmood/medicart/app/models"
	"github.com/hassanmehmood/medicart/app/repositories"
)

// ErrUnknownMedicine rejects cart additions for medicines that don't exist.
var ErrUnknownMedicine = errors.New("cart: unknown medicine")

// CartService manages a user's cart lines.
type CartService struct {
	cart      *repositories.CartRepository
	medicines *repositories.MedicineRepository
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{
		cart:      repositories.NewCartRepository(db),
		medicines: repositories.NewMedicineRepository(db),
	}
}

// Cart is the user's cart plus its running total.
type Cart struct {
	Items []models.CartItem `json:"items"`
	Total float64           `json:"total"`
}

func (s *CartService) Get(userID uint) (Cart, error) {
	items, err := s.cart.Items(userID)
	if err != nil {
		return Cart{}, err
	}

	var total float64
	for _, item := range items {
		total += item.Medicine.Price * float64(item.Quantity)
	}
	return Cart{Items: items, Total: total}, nil
}

type AddToCartInput struct {
	MedicineID uint `json:"medicineId" validate:"required"`
	Quantity   int  `json:"quantity" validate:"required,gte=1"`
}

// Add upserts a line: re-adding increments quantity.
func (s *CartService) Add(userID uint, in AddToCartInput) (models.CartItem, error) {
	if _, err := s.medicines.FindByID(in.MedicineID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.CartItem{}, ErrUnknownMedicine
		}
		return models.CartItem{}, err
	}

	return s.cart.Add(userID, in.MedicineID, in.Quantity)
}

type UpdateCartInput struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

func (s *CartService) UpdateQuantity(userID, itemID uint, in UpdateCartInput) (models.CartItem, error) {
	return s.cart.SetQuantity(userID, itemID, in.Quantity)
}

func (s *CartService) Remove(userID, itemID uint) error {
	return s.cart.Remove(userID, itemID)
}

func (s *CartService) Clear(userID uint) error {
	return s.cart.Clear(userID)
}

package models

import "gorm.io/gorm"

// Order statuses.
const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

// Payment statuses.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
)

// Order is the header row of a checkout. ShippingAddress is a denormalized
// snapshot so historical orders stay stable when the address book changes;
// AddressID additionally points at the deduplicated Address row when the
// client supplied a structured address.
type Order struct {
	gorm.Model
	UserID          uint    `gorm:"not null;index" json:"user_id"`
	AddressID       *uint   `gorm:"index" json:"address_id"`
	ShippingAddress string  `gorm:"type:text;not null" json:"shipping_address"`
	PaymentMethod   string  `gorm:"size:50;not null" json:"payment_method"`
	Total           float64 `gorm:"not null" json:"total"`
	Status          string  `gorm:"size:50;not null;default:pending" json:"status"`

	Items   []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Payment *Payment    `gorm:"foreignKey:OrderID" json:"payment,omitempty"`
}

// OrderItem snapshots one cart line. Price is the unit price at checkout
// time; later catalog edits never change past orders.
type OrderItem struct {
	gorm.Model
	OrderID    uint    `gorm:"not null;index" json:"order_id"`
	MedicineID uint    `gorm:"not null;index" json:"medicine_id"`
	Quantity   int     `gorm:"not null" json:"quantity"`
	Price      float64 `gorm:"not null" json:"price"`

	Medicine Medicine `gorm:"foreignKey:MedicineID" json:"medicine,omitempty"`
}

// Payment records how an order was paid. Cash-on-delivery rows stay
// pending with an empty transaction id until delivery.
type Payment struct {
	gorm.Model
	OrderID       uint    `gorm:"not null;uniqueIndex" json:"order_id"`
	UserID        uint    `gorm:"not null;index" json:"user_id"`
	Method        string  `gorm:"size:50;not null" json:"method"`
	Status        string  `gorm:"size:50;not null;default:pending" json:"status"`
	TransactionID string  `gorm:"size:100" json:"transaction_id"`
	Amount        float64 `gorm:"not null" json:"amount"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem represents a single line item within an order. The structure is
// opaque to this service beyond the non-empty check at creation.
type OrderItem struct {
	Name    string  `json:"name"`
	Qty     int     `json:"qty"`
	Image   string  `json:"image"`
	Price   float64 `json:"price"` // Price at the time of order
	Product string  `json:"product"`
}

// ShippingAddress is the delivery address captured at creation time.
type ShippingAddress struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// PaymentResult records the confirmation returned by the payment processor
// when an order is marked paid.
type PaymentResult struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	UpdateTime   string `json:"update_time"`
	EmailAddress string `json:"email_address"`
}

// PaymentPayer identifies who paid, as reported by the payment processor.
type PaymentPayer struct {
	EmailAddress string `json:"email_address"`
}

// PaymentConfirmation is the payload a payment processor posts back when an
// order has been paid.
type PaymentConfirmation struct {
	ID         string        `json:"id"`
	Status     string        `json:"status"`
	UpdateTime string        `json:"update_time"`
	Payer      *PaymentPayer `json:"payer"`
}

// OwnerRef is the expanded owner reference attached when an order is
// returned with its user resolved.
type OwnerRef struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Order represents a customer order. Ownership and the item/pricing fields
// never change after creation; only the paid/delivered status fields and
// their timestamps transition.
type Order struct {
	ID              string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID          string          `json:"user" gorm:"index;type:varchar(36)"`
	Owner           *OwnerRef       `json:"userInfo,omitempty" gorm:"-"`
	OrderItems      []OrderItem     `json:"orderItems" gorm:"serializer:json"`
	ShippingAddress ShippingAddress `json:"shippingAddress" gorm:"serializer:json"`
	PaymentMethod   string          `json:"paymentMethod"`
	ItemsPrice      float64         `json:"itemsPrice"`
	TaxPrice        float64         `json:"taxPrice"`
	ShippingPrice   float64         `json:"shippingPrice"`
	TotalPrice      float64         `json:"totalPrice"`
	IsPaid          bool            `json:"isPaid"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	PaymentResult   *PaymentResult  `json:"paymentResult,omitempty" gorm:"serializer:json"`
	IsDelivered     bool            `json:"isDelivered"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty"`
	gorm.Model      `json:"-"` // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

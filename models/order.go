package models

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"userId"`
	ShippingAddress ShippingAddress `gorm:"type:jsonb;not null" json:"shippingAddress"`
	PaymentMethod   string          `gorm:"not null" json:"paymentMethod"`
	ItemsPrice      Money           `gorm:"type:decimal(12,2);not null" json:"itemsPrice"`
	ShippingPrice   Money           `gorm:"type:decimal(12,2);not null" json:"shippingPrice"`
	TaxPrice        Money           `gorm:"type:decimal(12,2);not null" json:"taxPrice"`
	TotalPrice      Money           `gorm:"type:decimal(12,2);not null" json:"totalPrice"`
	IsPaid          bool            `gorm:"default:false" json:"isPaid"`
	PaidAt          *time.Time      `json:"paidAt"`
	IsDelivered     bool            `gorm:"default:false" json:"isDelivered"`
	DeliveredAt     *time.Time      `json:"deliveredAt"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	OrderItems      []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"orderItems"`
}

type OrderItem struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"orderId"`
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey" json:"productId"`
	Qty       int       `gorm:"not null" json:"qty"`
	Price     Money     `gorm:"type:decimal(12,2);not null" json:"price"`
	Name      string    `gorm:"not null" json:"name"`
	Slug      string    `gorm:"not null" json:"slug"`
	Image     string    `json:"image"`
}

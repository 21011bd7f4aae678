package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// CartItem is a single product line in a cart. Price is a decimal
// string with exactly two fraction digits; Qty never goes below zero —
// a line whose qty would reach zero is removed instead.
type CartItem struct {
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Image     string    `json:"image"`
	Price     string    `json:"price"`
	Qty       int       `json:"qty"`
}

// CartItems stores the item list as a JSONB document on the cart row.
type CartItems []CartItem

func (ci CartItems) Value() (driver.Value, error) {
	return json.Marshal(ci)
}

func (ci *CartItems) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, ci)
	case string:
		return json.Unmarshal([]byte(v), ci)
	case nil:
		*ci = nil
		return nil
	}
	return errors.New("unsupported type for CartItems")
}

// Cart is owned by an anonymous session until a user signs in, after
// which it is owned by the user. Version backs compare-and-swap
// updates so two concurrent mutations cannot silently overwrite each
// other.
type Cart struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID        *uuid.UUID `gorm:"type:uuid;index" json:"userId"`
	SessionCartID string     `gorm:"index;not null" json:"sessionCartId"`
	Items         CartItems  `gorm:"type:jsonb;not null" json:"items"`
	ItemsPrice    Money      `gorm:"type:decimal(12,2);not null" json:"itemsPrice"`
	ShippingPrice Money      `gorm:"type:decimal(12,2);not null" json:"shippingPrice"`
	TaxPrice      Money      `gorm:"type:decimal(12,2);not null" json:"taxPrice"`
	TotalPrice    Money      `gorm:"type:decimal(12,2);not null" json:"totalPrice"`
	Version       int64      `gorm:"not null;default:1" json:"-"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

// FindItem returns the index of the line for productID, or -1.
func (c *Cart) FindItem(productID uuid.UUID) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

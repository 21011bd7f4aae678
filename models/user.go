package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ShippingAddress is stored as a JSONB document on the user row and
// snapshotted onto orders at checkout.
type ShippingAddress struct {
	FullName      string `json:"fullName"`
	StreetAddress string `json:"streetAddress"`
	City          string `json:"city"`
	PostalCode    string `json:"postalCode"`
	Country       string `json:"country"`
}

func (a ShippingAddress) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *ShippingAddress) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	case nil:
		*a = ShippingAddress{}
		return nil
	}
	return errors.New("unsupported type for ShippingAddress")
}

type User struct {
	ID            uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name          string           `gorm:"not null" json:"name"`
	Email         string           `gorm:"uniqueIndex;not null" json:"email"`
	Password      string           `gorm:"not null" json:"-"`
	Role          string           `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	Address       *ShippingAddress `gorm:"type:jsonb" json:"address"`
	PaymentMethod string           `json:"paymentMethod"`
	CreatedAt     time.Time        `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time        `gorm:"autoUpdateTime" json:"updatedAt"`
}

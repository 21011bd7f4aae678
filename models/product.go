package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// StringSlice stores a list of strings as a JSONB column.
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *StringSlice) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	case nil:
		*s = nil
		return nil
	}
	return errors.New("unsupported type for StringSlice")
}

type Product struct {
	ID          uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string      `gorm:"not null" json:"name"`
	Slug        string      `gorm:"uniqueIndex;not null" json:"slug"`
	Category    string      `gorm:"not null" json:"category"`
	Description string      `gorm:"not null" json:"description"`
	Brand       string      `gorm:"not null" json:"brand"`
	Images      StringSlice `gorm:"type:jsonb" json:"images"`
	Price       Money       `gorm:"type:decimal(12,2);not null" json:"price"`
	Stock       int         `gorm:"not null" json:"stock"`
	Rating      Money       `gorm:"type:decimal(3,2);default:0" json:"rating"`
	NumReviews  int         `gorm:"default:0" json:"numReviews"`
	IsFeatured  bool        `gorm:"default:false" json:"isFeatured"`
	Banner      *string     `json:"banner"`
	CreatedAt   time.Time   `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time   `gorm:"autoUpdateTime" json:"updatedAt"`
}

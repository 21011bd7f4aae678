package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/rohitkandpal03/shopz-store/models"
)

// OrderCreated is published after a checkout transaction commits.
type OrderCreated struct {
	Event      string            `json:"event"`
	OrderID    uuid.UUID         `json:"orderId"`
	UserID     uuid.UUID         `json:"userId"`
	Items      []models.CartItem `json:"items"`
	TotalPrice string            `json:"totalPrice"`
	Timestamp  time.Time         `json:"timestamp"`
}

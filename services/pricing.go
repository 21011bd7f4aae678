package services

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rohitkandpal03/shopz-store/models"
)

// PriceSet holds the derived price fields of a cart. Every field
// serializes as a decimal string with exactly two fraction digits.
type PriceSet struct {
	ItemsPrice    models.Money `json:"itemsPrice"`
	ShippingPrice models.Money `json:"shippingPrice"`
	TaxPrice      models.Money `json:"taxPrice"`
	TotalPrice    models.Money `json:"totalPrice"`
}

var (
	freeShippingThreshold = decimal.NewFromInt(100)
	flatShippingFee       = decimal.NewFromInt(10)
	taxRate               = decimal.RequireFromString("0.15")
)

// ParsePrice accepts a number or a numeric string and returns it as a
// decimal. Anything else is an error, never a panic.
func ParsePrice(value interface{}) (decimal.Decimal, error) {
	switch v := value.(type) {
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid numeric string %q", v)
		}
		return d, nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case float32:
		return decimal.NewFromFloat32(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid numeric value %q", v)
		}
		return d, nil
	case decimal.Decimal:
		return v, nil
	case models.Money:
		return v.Decimal, nil
	default:
		return decimal.Zero, fmt.Errorf("price is not a number or a numeric string: %T", value)
	}
}

// round2 rounds half-up to the nearest cent. decimal arithmetic keeps
// this exact; there is no float epsilon adjustment.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// CalcPrice derives the four price fields from a list of cart items:
//
//	itemsPrice    = round2(Σ price × qty)
//	shippingPrice = 0 if itemsPrice > 100, else a flat 10
//	taxPrice      = round2(0.15 × itemsPrice)
//	totalPrice    = round2(itemsPrice + shippingPrice + taxPrice)
//
// Pure and order-independent over the items.
func CalcPrice(items []models.CartItem) (PriceSet, error) {
	sum := decimal.Zero
	for _, item := range items {
		price, err := ParsePrice(item.Price)
		if err != nil {
			return PriceSet{}, err
		}
		sum = sum.Add(price.Mul(decimal.NewFromInt(int64(item.Qty))))
	}

	itemsPrice := round2(sum)

	shippingPrice := flatShippingFee
	if itemsPrice.GreaterThan(freeShippingThreshold) {
		shippingPrice = decimal.Zero
	}

	taxPrice := round2(itemsPrice.Mul(taxRate))
	totalPrice := round2(itemsPrice.Add(shippingPrice).Add(taxPrice))

	return PriceSet{
		ItemsPrice:    models.NewMoney(itemsPrice),
		ShippingPrice: models.NewMoney(shippingPrice),
		TaxPrice:      models.NewMoney(taxPrice),
		TotalPrice:    models.NewMoney(totalPrice),
	}, nil
}

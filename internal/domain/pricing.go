package domain

import "github.com/shopspring/decimal"

type SeatCategory string

const (
	SeatRegular SeatCategory = "Regular"
	SeatPremium SeatCategory = "Premium"
	SeatVIP     SeatCategory = "VIP"
)

var (
	surcharges = map[SeatCategory]decimal.Decimal{
		SeatRegular: decimal.Zero,
		SeatPremium: decimal.NewFromInt(10),
		SeatVIP:     decimal.NewFromInt(20),
	}

	// ServiceFeeRate is applied to the seat subtotal.
	ServiceFeeRate = decimal.RequireFromString("0.06")
)

func SeatCategories() []SeatCategory {
	return []SeatCategory{SeatRegular, SeatPremium, SeatVIP}
}

func (c SeatCategory) Valid() bool {
	_, ok := surcharges[c]
	return ok
}

// Surcharge returns the fixed add-on for the category. Unknown categories
// are priced as Regular.
func (c SeatCategory) Surcharge() decimal.Decimal {
	s, ok := surcharges[c]
	if !ok {
		return decimal.Zero
	}

	return s
}

func SeatPrice(basePrice decimal.Decimal, category SeatCategory) decimal.Decimal {
	return basePrice.Add(category.Surcharge())
}

type PricedSeat struct {
	Name     string
	Category SeatCategory
	Price    decimal.Decimal
}

type Quote struct {
	BasePrice  decimal.Decimal
	Seats      []PricedSeat
	Subtotal   decimal.Decimal
	ServiceFee decimal.Decimal
	Total      decimal.Decimal
}

// NewQuote prices the selected seat names against the theater's catalog.
// Names missing from the catalog fall back to Regular.
func NewQuote(basePrice decimal.Decimal, seatNames []string, catalog []Seat) Quote {
	categories := make(map[string]SeatCategory, len(catalog))
	for _, seat := range catalog {
		categories[seat.Name] = seat.Type
	}

	seats := make([]PricedSeat, len(seatNames))
	subtotal := decimal.Zero

	for i, name := range seatNames {
		category, ok := categories[name]
		if !ok || !category.Valid() {
			category = SeatRegular
		}

		price := SeatPrice(basePrice, category)
		subtotal = subtotal.Add(price)

		seats[i] = PricedSeat{
			Name:     name,
			Category: category,
			Price:    price,
		}
	}

	fee := subtotal.Mul(ServiceFeeRate)

	return Quote{
		BasePrice:  basePrice,
		Seats:      seats,
		Subtotal:   subtotal,
		ServiceFee: fee,
		Total:      subtotal.Add(fee),
	}
}

// DisplayTotal is the total rounded to cents.
func (q Quote) DisplayTotal() decimal.Decimal {
	return q.Total.Round(2)
}

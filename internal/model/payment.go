package model

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Amount is a currency amount that decodes defensively: missing, null or
// non-numeric JSON values coerce to zero instead of failing the whole
// document. External payment feeds are not trusted to send clean numbers.
type Amount float64

// UnmarshalJSON implements json.Unmarshaler with defensive coercion.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*a = 0
		return nil
	}

	// Accept both bare numbers and quoted numeric strings.
	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			*a = 0
			return nil
		}
		s = strings.TrimSpace(str)
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*a = 0
		return nil
	}

	*a = Amount(f)
	return nil
}

// Float64 returns the coerced numeric value.
func (a Amount) Float64() float64 {
	return float64(a)
}

// Payment represents a payment record created when a user pays a bill.
type Payment struct {
	ID        string    `json:"id"`
	BillID    string    `json:"bill_id"`
	Email     string    `json:"email"`
	PayerName string    `json:"payer_name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Amount    Amount    `json:"amount"`
	Date      time.Time `json:"date"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TotalAmount sums the coerced amounts of a payment set.
func TotalAmount(payments []*Payment) float64 {
	var total float64
	for _, p := range payments {
		total += p.Amount.Float64()
	}
	return total
}

// Package models defines the client-side data types for the Sweet Shop CLI.
package models

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// ID is a backend-assigned identifier. The backend serializes identifiers as
// JSON numbers while other deployments use strings; ID accepts both and
// always marshals back as a string.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty id")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(id))
}

// Sweet is a purchasable inventory item. The authoritative copy lives in the
// backend; the client only caches it. Price uses decimal.Decimal because the
// backend transmits it as a string ("12.99") while older deployments send a
// number; both decode losslessly.
type Sweet struct {
	Id          ID              `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Description string          `json:"description,omitempty"`
	Image       string          `json:"image,omitempty"`
}

// InStock reports whether at least one unit is available.
func (s Sweet) InStock() bool {
	return s.Quantity > 0
}

func (s Sweet) String() string {
	stock := fmt.Sprintf("%d in stock", s.Quantity)
	if !s.InStock() {
		stock = "out of stock"
	}
	return fmt.Sprintf("[%s] %s (%s) $%s, %s", s.Id, s.Name, s.Category, s.Price.StringFixed(2), stock)
}

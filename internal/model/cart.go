package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ItemType is the closed set of things an order line can reference.
type ItemType string

const (
	ItemTypeBook    ItemType = "book"
	ItemTypeProduct ItemType = "product"
	ItemTypeAddon   ItemType = "addon"
)

// ParseItemType validates an item type coming off the wire. Add-ons are
// never sent by clients; they only appear on order lines.
func ParseItemType(s string) (ItemType, error) {
	switch ItemType(s) {
	case ItemTypeBook, ItemTypeProduct:
		return ItemType(s), nil
	default:
		return "", fmt.Errorf("unknown item type %q", s)
	}
}

// Price is a decimal amount that tolerates being sent as either a JSON
// number or a numeric string, but never coerces anything else.
type Price float64

// UnmarshalJSON implements json.Unmarshaler.
func (p *Price) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if len(s) >= 2 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return ErrInvalidPrice
		}
		s = strings.TrimSpace(str)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return ErrInvalidPrice
	}
	*p = Price(v)
	return nil
}

// CartLine is one entry in the session cart, keyed by "{type}_{id}".
type CartLine struct {
	ID       int64    `json:"id"`
	Type     ItemType `json:"type"`
	Title    string   `json:"title"`
	Price    Price    `json:"price"`
	Image    string   `json:"image"`
	Quantity int      `json:"quantity"`
}

// Cart is the session-scoped mapping of line key to line.
type Cart map[string]CartLine

// LineKey builds the composite cart key for an item.
func LineKey(itemType ItemType, itemID int64) string {
	return fmt.Sprintf("%s_%d", itemType, itemID)
}

// Count returns the total quantity across all lines.
func (c Cart) Count() int {
	n := 0
	for _, line := range c {
		n += line.Quantity
	}
	return n
}

// Total returns the monetary total (price x quantity) across all lines.
// Add-ons are not part of the cart and are added separately.
func (c Cart) Total() float64 {
	t := 0.0
	for _, line := range c {
		t += float64(line.Price) * float64(line.Quantity)
	}
	return t
}

// AddonSelection maps a fixed add-on key to its selected state.
type AddonSelection map[string]bool

// AddToCartRequest is the request payload for cart additions.
type AddToCartRequest struct {
	ID    int64  `json:"id"`
	Type  string `json:"type"`
	Title string `json:"title"`
	Price Price  `json:"price"`
	Image string `json:"image"`
}

// CartSummary is returned by every mutating cart endpoint so the client can
// refresh its badge without a second round trip.
type CartSummary struct {
	Success   bool    `json:"success"`
	CartCount int     `json:"cart_count"`
	Total     float64 `json:"total"`
}

// CartView is the full cart listing, including the add-on total.
type CartView struct {
	CartCount  int        `json:"cart_count"`
	Items      []CartLine `json:"items"`
	AddonTotal float64    `json:"addon_total"`
	Total      float64    `json:"total"`
}

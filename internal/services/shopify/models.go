package shopify

import (
	"encoding/json"
	"fmt"
)

// Product is the slice of the products/create and products/update webhook
// payload this service acts on.
type Product struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	Tags     string    `json:"tags"`
	Variants []Variant `json:"variants"`
}

// Variant represents a product variant
type Variant struct {
	ID             int64       `json:"id"`
	Title          string      `json:"title"`
	Price          Money       `json:"price"`
	CompareAtPrice Money       `json:"compare_at_price"`
	Metafields     []Metafield `json:"metafields"`
}

// Metafield represents a variant metafield entry
type Metafield struct {
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Value     string `json:"value"`
}

// Money is a price field. The REST webhook payload carries these as decimal
// strings, but some producers send bare numbers; both decode to the textual
// form. JSON null decodes to the empty string.
type Money string

func (m *Money) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*m = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*m = Money(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*m = Money(n.String())
	return nil
}

func (m Money) String() string { return string(m) }

// ProductGID builds the Admin GraphQL global ID for a numeric product id.
func ProductGID(id int64) string {
	return fmt.Sprintf("gid://shopify/Product/%d", id)
}

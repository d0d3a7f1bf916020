package listing

import (
	"fmt"
	"strings"
)

// Listing is one synthetic real-estate record.
type Listing struct {
	Neighborhood            string `json:"neighborhood" jsonschema:"neighborhood name"`
	Price                   Price  `json:"price" jsonschema:"display price, e.g. $650,000"`
	Bedrooms                int    `json:"bedrooms" jsonschema:"number of bedrooms"`
	Bathrooms               int    `json:"bathrooms" jsonschema:"number of bathrooms"`
	HouseSize               string `json:"house_size" jsonschema:"house size, e.g. 2400 sqft"`
	Description             string `json:"description" jsonschema:"property description"`
	NeighborhoodDescription string `json:"neighborhood_description" jsonschema:"neighborhood description"`
}

// Document renders the text that gets embedded into the vector index.
func (l Listing) Document() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Neighborhood: %s\n", l.Neighborhood)
	fmt.Fprintf(&b, "Price: %s\n", l.Price)
	fmt.Fprintf(&b, "Bedrooms: %d\n", l.Bedrooms)
	fmt.Fprintf(&b, "Bathrooms: %d\n", l.Bathrooms)
	fmt.Fprintf(&b, "Size: %s\n", l.HouseSize)
	fmt.Fprintf(&b, "Description: %s\n", l.Description)
	fmt.Fprintf(&b, "Neighborhood Description: %s", l.NeighborhoodDescription)
	return b.String()
}

// ID returns the positional index id used when the listing is indexed.
func ID(position int) string {
	return fmt.Sprintf("listing_%d", position)
}

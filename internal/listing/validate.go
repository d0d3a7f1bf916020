package listing

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrInvalidListing = errors.New("invalid listing")

// record mirrors Listing with pointer fields so that missing and null keys
// can be told apart from zero values.
type record struct {
	Neighborhood            *string `json:"neighborhood"`
	Price                   *Price  `json:"price"`
	Bedrooms                *int    `json:"bedrooms"`
	Bathrooms               *int    `json:"bathrooms"`
	HouseSize               *string `json:"house_size"`
	Description             *string `json:"description"`
	NeighborhoodDescription *string `json:"neighborhood_description"`
}

// Decode parses a single JSON object into a validated Listing.
func Decode(data []byte) (Listing, error) {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return Listing{}, fmt.Errorf("%w: %v", ErrInvalidListing, err)
	}

	missing := r.missingFields()
	if len(missing) > 0 {
		return Listing{}, fmt.Errorf("%w: missing fields %v", ErrInvalidListing, missing)
	}

	l := Listing{
		Neighborhood:            *r.Neighborhood,
		Price:                   *r.Price,
		Bedrooms:                *r.Bedrooms,
		Bathrooms:               *r.Bathrooms,
		HouseSize:               *r.HouseSize,
		Description:             *r.Description,
		NeighborhoodDescription: *r.NeighborhoodDescription,
	}

	if err := l.Validate(); err != nil {
		return Listing{}, err
	}
	return l, nil
}

func (r record) missingFields() []string {
	var missing []string
	if r.Neighborhood == nil {
		missing = append(missing, "neighborhood")
	}
	if r.Price == nil {
		missing = append(missing, "price")
	}
	if r.Bedrooms == nil {
		missing = append(missing, "bedrooms")
	}
	if r.Bathrooms == nil {
		missing = append(missing, "bathrooms")
	}
	if r.HouseSize == nil {
		missing = append(missing, "house_size")
	}
	if r.Description == nil {
		missing = append(missing, "description")
	}
	if r.NeighborhoodDescription == nil {
		missing = append(missing, "neighborhood_description")
	}
	return missing
}

// Validate checks the value-level invariants of a listing.
func (l Listing) Validate() error {
	amount, ok := l.Price.Amount()
	if !ok {
		return fmt.Errorf("%w: price %q does not parse", ErrInvalidListing, l.Price.String())
	}
	if amount < 0 {
		return fmt.Errorf("%w: negative price %q", ErrInvalidListing, l.Price.String())
	}
	if l.Bedrooms < 0 {
		return fmt.Errorf("%w: negative bedrooms %d", ErrInvalidListing, l.Bedrooms)
	}
	if l.Bathrooms < 0 {
		return fmt.Errorf("%w: negative bathrooms %d", ErrInvalidListing, l.Bathrooms)
	}
	return nil
}

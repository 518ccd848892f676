// Package schema holds the declarative constraint table for listing records
// and the engine that evaluates candidates against it. Rules live in one
// place: adding a field to the record means adding one entry here.
package schema

import (
	"github.com/smallbiznis/domora/internal/listing/domain"
)

// Candidate is a possibly partial listing record as submitted by the
// presentation layer. Nil means the field was not supplied.
type Candidate struct {
	PropertyID  *string
	Title       *string
	Price       *int64
	Description *string
	Area        *int64
	Floors      *int64
	Facing      *string
	Category    *string
	Type        *string
	Bedrooms    *int64
	Bathrooms   *int64
	StreetName  *string
	City        *string
	State       *string
	Country     *string
	OwnerRef    *string
}

// Kind selects which constraint set applies to a field.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindEnum
)

// Rule is one row of the constraint table. Messages are the user-facing
// violation texts; EnumMessage takes the offending value as its only verb.
type Rule struct {
	Field    string
	Kind     Kind
	Required bool

	MaxLen int
	Min    *int64
	Max    *int64
	Enum   []string

	RequiredMessage string
	MaxLenMessage   string
	MinMessage      string
	MaxMessage      string
	EnumMessage     string

	stringValue func(Candidate) *string
	intValue    func(Candidate) *int64
}

func i64(v int64) *int64 { return &v }

// Table returns the constraint table in evaluation order. address.state has
// no entry: it is optional and unconstrained.
func Table() []Rule {
	return []Rule{
		{
			Field: "propertyId", Kind: KindString, Required: true,
			RequiredMessage: "Please provide a property ID",
			stringValue:     func(c Candidate) *string { return c.PropertyID },
		},
		{
			Field: "title", Kind: KindString, Required: true, MaxLen: 100,
			RequiredMessage: "Please provide a title for the property",
			MaxLenMessage:   "Title cannot be more than 100 characters",
			stringValue:     func(c Candidate) *string { return c.Title },
		},
		{
			Field: "price", Kind: KindInt, Required: true, Min: i64(1000), Max: i64(100000000),
			RequiredMessage: "Please provide a price for the property",
			MinMessage:      "Price cannot be less than 1000",
			MaxMessage:      "Price cannot be more than 100000000",
			intValue:        func(c Candidate) *int64 { return c.Price },
		},
		{
			Field: "description", Kind: KindString, Required: true, MaxLen: 3000,
			RequiredMessage: "Please provide a description for the property",
			MaxLenMessage:   "Description cannot be more than 3000 characters",
			stringValue:     func(c Candidate) *string { return c.Description },
		},
		{
			Field: "area", Kind: KindInt, Required: true, Min: i64(10), Max: i64(200000),
			RequiredMessage: "Please provide the area of the property",
			MinMessage:      "Area cannot be less than 10 sq.feet",
			MaxMessage:      "Area cannot be more than 200000 sq.feet",
			intValue:        func(c Candidate) *int64 { return c.Area },
		},
		{
			Field: "floors", Kind: KindInt, Required: true, Min: i64(1), Max: i64(200),
			RequiredMessage: "Please provide the number of floors in the property",
			MinMessage:      "Number of floors cannot be less than 1",
			MaxMessage:      "Number of floors cannot be more than 200",
			intValue:        func(c Candidate) *int64 { return c.Floors },
		},
		{
			Field: "facing", Kind: KindEnum, Required: true, Enum: domain.FacingValues(),
			RequiredMessage: "Please provide the facing direction of the property",
			EnumMessage:     "%s is not in the facing list",
			stringValue:     func(c Candidate) *string { return c.Facing },
		},
		{
			Field: "category", Kind: KindEnum, Required: true, Enum: domain.CategoryValues(),
			RequiredMessage: "Please provide a category for the property",
			EnumMessage:     "%s is not in the category list",
			stringValue:     func(c Candidate) *string { return c.Category },
		},
		{
			Field: "type", Kind: KindEnum, Enum: domain.TypeValues(),
			EnumMessage: "%s is not in the type list",
			stringValue: func(c Candidate) *string { return c.Type },
		},
		{
			Field: "bedrooms", Kind: KindInt, Min: i64(0),
			MinMessage: "Bedrooms cannot be less than 0",
			intValue:   func(c Candidate) *int64 { return c.Bedrooms },
		},
		{
			Field: "bathrooms", Kind: KindInt, Min: i64(0),
			MinMessage: "Bathrooms cannot be less than 0",
			intValue:   func(c Candidate) *int64 { return c.Bathrooms },
		},
		{
			Field: "address.streetName", Kind: KindString, Required: true,
			RequiredMessage: "Please provide a street name or landmark for the property",
			stringValue:     func(c Candidate) *string { return c.StreetName },
		},
		{
			Field: "address.city", Kind: KindString, Required: true,
			RequiredMessage: "Please provide the city of the property",
			stringValue:     func(c Candidate) *string { return c.City },
		},
		{
			Field: "address.country", Kind: KindString, Required: true,
			RequiredMessage: "Please provide the country of the property",
			stringValue:     func(c Candidate) *string { return c.Country },
		},
		{
			Field: "ownerRef", Kind: KindString, Required: true,
			RequiredMessage: "Please provide a property owner",
			stringValue:     func(c Candidate) *string { return c.OwnerRef },
		},
	}
}

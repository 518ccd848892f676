package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Facing is a compass direction a property faces.
type Facing string

const (
	FacingNorth     Facing = "North"
	FacingSouth     Facing = "South"
	FacingEast      Facing = "East"
	FacingWest      Facing = "West"
	FacingNorthEast Facing = "North-East"
	FacingNorthWest Facing = "North-West"
	FacingSouthEast Facing = "South-East"
	FacingSouthWest Facing = "South-West"
)

// FacingValues lists every accepted facing, in schema order.
func FacingValues() []string {
	return []string{
		string(FacingNorth), string(FacingSouth), string(FacingEast), string(FacingWest),
		string(FacingNorthEast), string(FacingNorthWest), string(FacingSouthEast), string(FacingSouthWest),
	}
}

// Category is the kind of property being listed.
type Category string

const (
	CategoryHouse       Category = "House"
	CategoryApartment   Category = "Apartment"
	CategoryRoom        Category = "Room"
	CategoryShopSpace   Category = "Shop Space"
	CategoryOfficeSpace Category = "Office Space"
)

func CategoryValues() []string {
	return []string{
		string(CategoryHouse), string(CategoryApartment), string(CategoryRoom),
		string(CategoryShopSpace), string(CategoryOfficeSpace),
	}
}

// ListingType distinguishes rental from sale listings.
type ListingType string

const (
	TypeRent ListingType = "Rent"
	TypeSale ListingType = "Sale"
)

func TypeValues() []string {
	return []string{string(TypeRent), string(TypeSale)}
}

// Address is the composite location of a listing. State is optional.
type Address struct {
	StreetName string `gorm:"column:street_name;not null" json:"streetName"`
	City       string `gorm:"column:city;not null" json:"city"`
	State      string `gorm:"column:state;not null;default:''" json:"state,omitempty"`
	Country    string `gorm:"column:country;not null" json:"country"`
}

// ImageDescriptor is an opaque reference handed over by the image store.
// The engine persists it unopened.
type ImageDescriptor struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId,omitempty"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
}

// Listing is the persisted listing record. PropertyID, Title, Slug and
// OwnerRef never change after creation.
type Listing struct {
	ID          snowflake.ID                         `gorm:"primaryKey" json:"id"`
	PropertyID  string                               `gorm:"column:property_id;not null;uniqueIndex" json:"property_id"`
	Title       string                               `gorm:"not null" json:"title"`
	Slug        string                               `gorm:"not null;uniqueIndex" json:"slug"`
	Price       int64                                `gorm:"not null;index" json:"price"`
	Description string                               `gorm:"not null" json:"description"`
	Area        int64                                `gorm:"not null" json:"area"`
	Floors      int64                                `gorm:"not null" json:"floors"`
	Facing      Facing                               `gorm:"not null" json:"facing"`
	Category    Category                             `gorm:"not null" json:"category"`
	Type        ListingType                          `gorm:"not null;default:Rent;index" json:"type"`
	Bedrooms    int64                                `gorm:"not null;default:0;index" json:"bedrooms"`
	Bathrooms   int64                                `gorm:"not null;default:0;index" json:"bathrooms"`
	Amenities   datatypes.JSONSlice[string]          `json:"amenities"`
	Address     Address                              `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	Images      datatypes.JSONSlice[ImageDescriptor] `json:"images"`
	OwnerRef    string                               `gorm:"column:owner_ref;not null;index" json:"owner_ref"`
	Status      bool                                 `gorm:"not null;default:true" json:"status"`
	Archived    bool                                 `gorm:"not null;default:false;index" json:"archived"`
	CreatedAt   time.Time                            `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time                            `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Listing) TableName() string {
	return "listings"
}

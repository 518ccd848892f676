package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/domora/pkg/db/pagination"
)

// AddressInput is the address as submitted by the presentation layer.
type AddressInput struct {
	StreetName string
	City       string
	State      string
	Country    string
}

// CreateListingRequest is a candidate record for creation. Numeric fields are
// pointers so that "absent" and "zero" stay distinguishable for validation.
type CreateListingRequest struct {
	PropertyID  string
	Title       string
	Price       *int64
	Description string
	Area        *int64
	Floors      *int64
	Facing      string
	Category    string
	Type        string
	Bedrooms    *int64
	Bathrooms   *int64
	Amenities   []string
	Address     AddressInput
	Images      []ImageDescriptor
	OwnerRef    string
}

// UpdateListingRequest carries a partial update. Only non-nil fields are
// validated and applied. PropertyID addresses the target; title, slug and
// owner are immutable and deliberately absent.
type UpdateListingRequest struct {
	PropertyID string

	Price       *int64
	Description *string
	Area        *int64
	Floors      *int64
	Facing      *string
	Category    *string
	Type        *string
	Bedrooms    *int64
	Bathrooms   *int64
	Amenities   *[]string
	Address     *AddressInput
	Images      *[]ImageDescriptor
	Status      *bool
}

type ListListingsRequest struct {
	Type            string
	Category        string
	Facing          string
	MinPrice        *int64
	MaxPrice        *int64
	MinBedrooms     *int64
	MinBathrooms    *int64
	OwnerRef        string
	IncludeArchived bool
	Page            pagination.Pagination
}

type ListListingsResponse struct {
	pagination.PageInfo
	Listings []Listing `json:"listings"`
}

type Service interface {
	Create(ctx context.Context, req CreateListingRequest) (Listing, error)
	Update(ctx context.Context, req UpdateListingRequest) (Listing, error)
	Archive(ctx context.Context, propertyID string) error
	Get(ctx context.Context, propertyID string) (Listing, error)
	GetBySlug(ctx context.Context, slug string) (Listing, error)
	List(ctx context.Context, req ListListingsRequest) (ListListingsResponse, error)
}

var (
	ErrNotFound           = errors.New("not_found")
	ErrPropertyIDConflict = errors.New("property_id_conflict")
	ErrSlugConflict       = errors.New("slug_conflict")
	ErrOwnerNotFound      = errors.New("owner_not_found")
	ErrInvalidRequest     = errors.New("invalid_request")

	// ErrImmutableField rejects updates that address a field fixed at
	// creation time (propertyId, title, slug, ownerRef).
	ErrImmutableField = errors.New("immutable_field")
)

// Violation names one constraint the candidate record broke.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every violation of a candidate record. The
// record is never partially applied.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	return "validation_error"
}

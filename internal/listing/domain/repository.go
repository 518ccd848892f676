package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/domora/pkg/db/pagination"
	"gorm.io/gorm"
)

// ListFilter composes the recognized query predicates with logical AND.
// Archived records are excluded unless IncludeArchived is set.
type ListFilter struct {
	Type            string
	Category        string
	Facing          string
	MinPrice        *int64
	MaxPrice        *int64
	MinBedrooms     *int64
	MinBathrooms    *int64
	OwnerRef        string
	IncludeArchived bool
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, listing *Listing) error
	FindByPropertyID(ctx context.Context, db *gorm.DB, propertyID string) (*Listing, error)
	FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*Listing, error)
	PropertyIDExists(ctx context.Context, db *gorm.DB, propertyID string) (bool, error)
	SlugExists(ctx context.Context, db *gorm.DB, slug string) (bool, error)
	UpdateFields(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error
	List(ctx context.Context, db *gorm.DB, filter ListFilter, page pagination.Pagination) ([]*Listing, int64, error)
}

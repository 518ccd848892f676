package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/domora/internal/listing/domain"
	"github.com/smallbiznis/domora/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, listing *domain.Listing) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO listings (
			id, property_id, title, slug, price, description, area, floors,
			facing, category, type, bedrooms, bathrooms, amenities,
			address_street_name, address_city, address_state, address_country,
			images, owner_ref, status, archived, created_at, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		listing.ID,
		listing.PropertyID,
		listing.Title,
		listing.Slug,
		listing.Price,
		listing.Description,
		listing.Area,
		listing.Floors,
		listing.Facing,
		listing.Category,
		listing.Type,
		listing.Bedrooms,
		listing.Bathrooms,
		listing.Amenities,
		listing.Address.StreetName,
		listing.Address.City,
		listing.Address.State,
		listing.Address.Country,
		listing.Images,
		listing.OwnerRef,
		listing.Status,
		listing.Archived,
		listing.CreatedAt,
		listing.UpdatedAt,
	).Error
}

func (r *repo) FindByPropertyID(ctx context.Context, db *gorm.DB, propertyID string) (*domain.Listing, error) {
	var listing domain.Listing
	err := db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		First(&listing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *repo) FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*domain.Listing, error) {
	var listing domain.Listing
	err := db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&listing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *repo) PropertyIDExists(ctx context.Context, db *gorm.DB, propertyID string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.Listing{}).
		Where("property_id = ?", propertyID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) SlugExists(ctx context.Context, db *gorm.DB, slug string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.Listing{}).
		Where("slug = ?", slug).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) UpdateFields(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return db.WithContext(ctx).
		Model(&domain.Listing{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter, page pagination.Pagination) ([]*domain.Listing, int64, error) {
	stmt := db.WithContext(ctx).Model(&domain.Listing{})
	stmt = applyFilter(stmt, filter)

	var total int64
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var listings []*domain.Listing
	err := stmt.
		Order("created_at desc, id desc").
		Offset(page.Offset()).
		Limit(page.PageSize).
		Find(&listings).Error
	if err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

func applyFilter(stmt *gorm.DB, filter domain.ListFilter) *gorm.DB {
	if !filter.IncludeArchived {
		stmt = stmt.Where("archived = ?", false)
	}
	if filter.Type != "" {
		stmt = stmt.Where("type = ?", filter.Type)
	}
	if filter.Category != "" {
		stmt = stmt.Where("category = ?", filter.Category)
	}
	if filter.Facing != "" {
		stmt = stmt.Where("facing = ?", filter.Facing)
	}
	if filter.MinPrice != nil {
		stmt = stmt.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		stmt = stmt.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.MinBedrooms != nil {
		stmt = stmt.Where("bedrooms >= ?", *filter.MinBedrooms)
	}
	if filter.MinBathrooms != nil {
		stmt = stmt.Where("bathrooms >= ?", *filter.MinBathrooms)
	}
	if filter.OwnerRef != "" {
		stmt = stmt.Where("owner_ref = ?", filter.OwnerRef)
	}
	return stmt
}

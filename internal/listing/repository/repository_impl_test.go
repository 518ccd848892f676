package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/domora/internal/listing/domain"
	"github.com/smallbiznis/domora/pkg/db/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_loc=auto", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	require.NoError(t, db.AutoMigrate(&domain.Listing{}))
	return db
}

func mustNode(t *testing.T) *snowflake.Node {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return node
}

func newListing(node *snowflake.Node, propertyID, title, slug string, mutate ...func(*domain.Listing)) *domain.Listing {
	now := time.Now().UTC()
	l := &domain.Listing{
		ID:          node.Generate(),
		PropertyID:  propertyID,
		Title:       title,
		Slug:        slug,
		Price:       25000,
		Description: "Two bedroom house close to the park.",
		Area:        1200,
		Floors:      2,
		Facing:      domain.FacingNorth,
		Category:    domain.CategoryHouse,
		Type:        domain.TypeRent,
		Bedrooms:    2,
		Bathrooms:   1,
		Amenities:   datatypes.NewJSONSlice([]string{"parking"}),
		Address: domain.Address{
			StreetName: "12 Baker Street",
			City:       "Pune",
			Country:    "India",
		},
		Images:    datatypes.NewJSONSlice([]domain.ImageDescriptor{}),
		OwnerRef:  "owner_dev",
		Status:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, m := range mutate {
		m(l)
	}
	return l
}

func TestInsertAndFind(t *testing.T) {
	db := setupDB(t)
	node := mustNode(t)
	r := Provide()
	ctx := context.Background()

	created := newListing(node, "prop-1", "Cozy Home", "cozy-home")
	require.NoError(t, r.Insert(ctx, db, created))

	byProp, err := r.FindByPropertyID(ctx, db, "prop-1")
	require.NoError(t, err)
	require.NotNil(t, byProp)
	assert.Equal(t, created.ID, byProp.ID)
	assert.Equal(t, "cozy-home", byProp.Slug)
	assert.Equal(t, []string{"parking"}, []string(byProp.Amenities))
	assert.Equal(t, "Pune", byProp.Address.City)

	bySlug, err := r.FindBySlug(ctx, db, "cozy-home")
	require.NoError(t, err)
	require.NotNil(t, bySlug)
	assert.Equal(t, created.ID, bySlug.ID)

	missing, err := r.FindByPropertyID(ctx, db, "prop-unknown")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestExistenceChecks(t *testing.T) {
	db := setupDB(t)
	node := mustNode(t)
	r := Provide()
	ctx := context.Background()

	require.NoError(t, r.Insert(ctx, db, newListing(node, "prop-1", "Cozy Home", "cozy-home")))

	exists, err := r.PropertyIDExists(ctx, db, "prop-1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = r.PropertyIDExists(ctx, db, "prop-2")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = r.SlugExists(ctx, db, "cozy-home")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = r.SlugExists(ctx, db, "cozy-home-0001")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestInsertEnforcesUniqueness(t *testing.T) {
	db := setupDB(t)
	node := mustNode(t)
	r := Provide()
	ctx := context.Background()

	require.NoError(t, r.Insert(ctx, db, newListing(node, "prop-1", "Cozy Home", "cozy-home")))

	err := r.Insert(ctx, db, newListing(node, "prop-1", "Other", "other"))
	assert.Error(t, err, "duplicate property_id must be rejected")

	err = r.Insert(ctx, db, newListing(node, "prop-2", "Cozy Home", "cozy-home"))
	assert.Error(t, err, "duplicate slug must be rejected")
}

func TestUpdateFields(t *testing.T) {
	db := setupDB(t)
	node := mustNode(t)
	r := Provide()
	ctx := context.Background()

	created := newListing(node, "prop-1", "Cozy Home", "cozy-home")
	require.NoError(t, r.Insert(ctx, db, created))

	require.NoError(t, r.UpdateFields(ctx, db, created.ID, map[string]any{
		"price":        30000,
		"address_city": "Mumbai",
		"archived":     true,
	}))

	got, err := r.FindByPropertyID(ctx, db, "prop-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(30000), got.Price)
	assert.Equal(t, "Mumbai", got.Address.City)
	assert.True(t, got.Archived)
	assert.Equal(t, "Cozy Home", got.Title)
}

func TestListFiltersAndOrdering(t *testing.T) {
	db := setupDB(t)
	node := mustNode(t)
	r := Provide()
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	insert := func(propertyID, slug string, offset time.Duration, mutate ...func(*domain.Listing)) {
		l := newListing(node, propertyID, "Listing "+propertyID, slug, mutate...)
		l.CreatedAt = base.Add(offset)
		l.UpdatedAt = l.CreatedAt
		require.NoError(t, r.Insert(ctx, db, l))
	}

	insert("prop-1", "listing-1", 1*time.Minute)
	insert("prop-2", "listing-2", 2*time.Minute, func(l *domain.Listing) {
		l.Type = domain.TypeSale
		l.Price = 5000000
		l.Bedrooms = 4
	})
	insert("prop-3", "listing-3", 3*time.Minute, func(l *domain.Listing) {
		l.Archived = true
	})
	insert("prop-4", "listing-4", 4*time.Minute, func(l *domain.Listing) {
		l.Category = domain.CategoryApartment
		l.Bedrooms = 3
	})

	// default view hides archived, newest first
	items, total, err := r.List(ctx, db, domain.ListFilter{}, pagination.Pagination{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, items, 3)
	assert.Equal(t, "prop-4", items[0].PropertyID)
	assert.Equal(t, "prop-2", items[1].PropertyID)
	assert.Equal(t, "prop-1", items[2].PropertyID)

	// archived shown on request
	_, total, err = r.List(ctx, db, domain.ListFilter{IncludeArchived: true}, pagination.Pagination{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)

	// type filter
	items, total, err = r.List(ctx, db, domain.ListFilter{Type: "Sale"}, pagination.Pagination{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "prop-2", items[0].PropertyID)

	// price range
	minPrice := int64(1000000)
	items, _, err = r.List(ctx, db, domain.ListFilter{MinPrice: &minPrice}, pagination.Pagination{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "prop-2", items[0].PropertyID)

	// bedroom floor combines with other predicates
	minBedrooms := int64(3)
	items, _, err = r.List(ctx, db, domain.ListFilter{MinBedrooms: &minBedrooms, Type: "Rent"}, pagination.Pagination{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "prop-4", items[0].PropertyID)
}

func TestListPagination(t *testing.T) {
	db := setupDB(t)
	node := mustNode(t)
	r := Provide()
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i := 1; i <= 5; i++ {
		l := newListing(node, fmt.Sprintf("prop-%d", i), fmt.Sprintf("Listing %d", i), fmt.Sprintf("listing-%d", i))
		l.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		l.UpdatedAt = l.CreatedAt
		require.NoError(t, r.Insert(ctx, db, l))
	}

	first, total, err := r.List(ctx, db, domain.ListFilter{}, pagination.Pagination{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, first, 2)
	assert.Equal(t, "prop-5", first[0].PropertyID)
	assert.Equal(t, "prop-4", first[1].PropertyID)

	second, _, err := r.List(ctx, db, domain.ListFilter{}, pagination.Pagination{Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.Equal(t, "prop-3", second[0].PropertyID)
	assert.Equal(t, "prop-2", second[1].PropertyID)

	last, _, err := r.List(ctx, db, domain.ListFilter{}, pagination.Pagination{Page: 3, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, last, 1)
	assert.Equal(t, "prop-1", last[0].PropertyID)
}

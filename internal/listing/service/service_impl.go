package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/domora/internal/config"
	"github.com/smallbiznis/domora/internal/identity"
	"github.com/smallbiznis/domora/internal/listing/domain"
	"github.com/smallbiznis/domora/internal/listing/schema"
	"github.com/smallbiznis/domora/internal/listing/slugger"
	obsmetrics "github.com/smallbiznis/domora/internal/observability/metrics"
	"github.com/smallbiznis/domora/pkg/db"
	"github.com/smallbiznis/domora/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	Identity identity.Resolver
	Cfg      *config.ListingConfigHolder
	Metrics  *obsmetrics.ListingMetrics `optional:"true"`
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	identity identity.Resolver
	cfg      *config.ListingConfigHolder
	metrics  *obsmetrics.ListingMetrics
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("listing.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		identity: p.Identity,
		cfg:      p.Cfg,
		metrics:  p.Metrics,
	}
}

// Create validates the candidate, resolves the owner, derives a slug and
// persists the record. On a slug uniqueness race it re-probes and retries,
// bounded by the configured attempt budget; nothing partial is ever written.
func (s *Service) Create(ctx context.Context, req domain.CreateListingRequest) (domain.Listing, error) {
	result := schema.Validate(candidateFromCreate(req), schema.ModeCreate)
	if !result.Valid() {
		return domain.Listing{}, &domain.ValidationError{Violations: result.Violations}
	}

	ownerRef := strings.TrimSpace(req.OwnerRef)
	ok, err := s.identity.OwnerExists(ctx, ownerRef)
	if err != nil {
		return domain.Listing{}, err
	}
	if !ok {
		return domain.Listing{}, domain.ErrOwnerNotFound
	}

	attempts := s.cfg.Get().SlugMaxAttempts
	for attempt := 0; attempt < attempts; attempt++ {
		slugValue, err := slugger.Generate(req.Title, func(v string) (bool, error) {
			return s.repo.SlugExists(ctx, s.db, v)
		})
		if err != nil {
			return domain.Listing{}, err
		}

		listing := s.buildListing(req, ownerRef, slugValue)
		err = s.repo.Insert(ctx, s.db, &listing)
		if err == nil {
			s.metrics.RecordCreated()
			s.log.Info("listing created",
				zap.String("property_id", listing.PropertyID),
				zap.String("slug", listing.Slug),
			)
			return listing, nil
		}

		if !db.IsDuplicateKeyErr(err) {
			return domain.Listing{}, err
		}

		// The backend reports one opaque duplicate error. A taken
		// propertyId is fatal; otherwise a rival create won the slug
		// and the next attempt probes past it.
		exists, exErr := s.repo.PropertyIDExists(ctx, s.db, req.PropertyID)
		if exErr != nil {
			return domain.Listing{}, exErr
		}
		if exists {
			return domain.Listing{}, domain.ErrPropertyIDConflict
		}

		s.metrics.RecordSlugCollision()
		s.log.Warn("slug conflict, regenerating",
			zap.String("property_id", req.PropertyID),
			zap.String("slug", slugValue),
			zap.Int("attempt", attempt+1),
		)
	}

	return domain.Listing{}, domain.ErrSlugConflict
}

// Update applies a partial update. A partially invalid update is rejected in
// full; archived listings remain updatable.
func (s *Service) Update(ctx context.Context, req domain.UpdateListingRequest) (domain.Listing, error) {
	propertyID := strings.TrimSpace(req.PropertyID)
	if propertyID == "" {
		return domain.Listing{}, domain.ErrInvalidRequest
	}

	listing, err := s.repo.FindByPropertyID(ctx, s.db, propertyID)
	if err != nil {
		return domain.Listing{}, err
	}
	if listing == nil {
		return domain.Listing{}, domain.ErrNotFound
	}

	result := schema.Validate(candidateFromUpdate(req), schema.ModeUpdate)
	if !result.Valid() {
		return domain.Listing{}, &domain.ValidationError{Violations: result.Violations}
	}

	fields := updateFields(req)
	if len(fields) == 0 {
		return *listing, nil
	}
	fields["updated_at"] = time.Now().UTC()

	if err := s.repo.UpdateFields(ctx, s.db, listing.ID, fields); err != nil {
		return domain.Listing{}, err
	}

	updated, err := s.repo.FindByPropertyID(ctx, s.db, propertyID)
	if err != nil {
		return domain.Listing{}, err
	}
	if updated == nil {
		return domain.Listing{}, domain.ErrNotFound
	}
	return *updated, nil
}

// Archive flips the soft-delete flag. Archived listings disappear from
// default queries but stay stored and updatable.
func (s *Service) Archive(ctx context.Context, propertyID string) error {
	propertyID = strings.TrimSpace(propertyID)
	if propertyID == "" {
		return domain.ErrInvalidRequest
	}

	listing, err := s.repo.FindByPropertyID(ctx, s.db, propertyID)
	if err != nil {
		return err
	}
	if listing == nil {
		return domain.ErrNotFound
	}
	if listing.Archived {
		return nil
	}

	err = s.repo.UpdateFields(ctx, s.db, listing.ID, map[string]any{
		"archived":   true,
		"updated_at": time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	s.metrics.RecordArchived()
	s.log.Info("listing archived", zap.String("property_id", propertyID))
	return nil
}

func (s *Service) Get(ctx context.Context, propertyID string) (domain.Listing, error) {
	propertyID = strings.TrimSpace(propertyID)
	if propertyID == "" {
		return domain.Listing{}, domain.ErrInvalidRequest
	}

	listing, err := s.repo.FindByPropertyID(ctx, s.db, propertyID)
	if err != nil {
		return domain.Listing{}, err
	}
	if listing == nil {
		return domain.Listing{}, domain.ErrNotFound
	}
	return *listing, nil
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (domain.Listing, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return domain.Listing{}, domain.ErrInvalidRequest
	}

	listing, err := s.repo.FindBySlug(ctx, s.db, slug)
	if err != nil {
		return domain.Listing{}, err
	}
	if listing == nil {
		return domain.Listing{}, domain.ErrNotFound
	}
	return *listing, nil
}

func (s *Service) List(ctx context.Context, req domain.ListListingsRequest) (domain.ListListingsResponse, error) {
	cfg := s.cfg.Get()
	page := req.Page.Normalize(cfg.DefaultPageSize, cfg.MaxPageSize)

	filter := domain.ListFilter{
		Type:            strings.TrimSpace(req.Type),
		Category:        strings.TrimSpace(req.Category),
		Facing:          strings.TrimSpace(req.Facing),
		MinPrice:        req.MinPrice,
		MaxPrice:        req.MaxPrice,
		MinBedrooms:     req.MinBedrooms,
		MinBathrooms:    req.MinBathrooms,
		OwnerRef:        strings.TrimSpace(req.OwnerRef),
		IncludeArchived: req.IncludeArchived,
	}

	items, total, err := s.repo.List(ctx, s.db, filter, page)
	if err != nil {
		return domain.ListListingsResponse{}, err
	}

	listings := make([]domain.Listing, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		listings = append(listings, *item)
	}

	return domain.ListListingsResponse{
		PageInfo: pagination.BuildPageInfo(page, total),
		Listings: listings,
	}, nil
}

func (s *Service) buildListing(req domain.CreateListingRequest, ownerRef, slugValue string) domain.Listing {
	now := time.Now().UTC()

	listingType := domain.ListingType(strings.TrimSpace(req.Type))
	if listingType == "" {
		listingType = domain.TypeRent
	}

	amenities := req.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	images := req.Images
	if images == nil {
		images = []domain.ImageDescriptor{}
	}

	return domain.Listing{
		ID:          s.genID.Generate(),
		PropertyID:  strings.TrimSpace(req.PropertyID),
		Title:       strings.TrimSpace(req.Title),
		Slug:        slugValue,
		Price:       deref(req.Price),
		Description: strings.TrimSpace(req.Description),
		Area:        deref(req.Area),
		Floors:      deref(req.Floors),
		Facing:      domain.Facing(strings.TrimSpace(req.Facing)),
		Category:    domain.Category(strings.TrimSpace(req.Category)),
		Type:        listingType,
		Bedrooms:    deref(req.Bedrooms),
		Bathrooms:   deref(req.Bathrooms),
		Amenities:   datatypes.NewJSONSlice(amenities),
		Address: domain.Address{
			StreetName: strings.TrimSpace(req.Address.StreetName),
			City:       strings.TrimSpace(req.Address.City),
			State:      strings.TrimSpace(req.Address.State),
			Country:    strings.TrimSpace(req.Address.Country),
		},
		Images:    datatypes.NewJSONSlice(images),
		OwnerRef:  ownerRef,
		Status:    true,
		Archived:  false,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func candidateFromCreate(req domain.CreateListingRequest) schema.Candidate {
	return schema.Candidate{
		PropertyID:  ptr(req.PropertyID),
		Title:       ptr(req.Title),
		Price:       req.Price,
		Description: ptr(req.Description),
		Area:        req.Area,
		Floors:      req.Floors,
		Facing:      ptr(req.Facing),
		Category:    ptr(req.Category),
		Type:        optionalPtr(req.Type),
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		StreetName:  ptr(req.Address.StreetName),
		City:        ptr(req.Address.City),
		State:       optionalPtr(req.Address.State),
		Country:     ptr(req.Address.Country),
		OwnerRef:    ptr(req.OwnerRef),
	}
}

func candidateFromUpdate(req domain.UpdateListingRequest) schema.Candidate {
	c := schema.Candidate{
		Price:     req.Price,
		Area:      req.Area,
		Floors:    req.Floors,
		Facing:    req.Facing,
		Category:  req.Category,
		Type:      req.Type,
		Bedrooms:  req.Bedrooms,
		Bathrooms: req.Bathrooms,
	}
	if req.Description != nil {
		c.Description = req.Description
	}
	if req.Address != nil {
		c.StreetName = ptr(req.Address.StreetName)
		c.City = ptr(req.Address.City)
		c.State = optionalPtr(req.Address.State)
		c.Country = ptr(req.Address.Country)
	}
	return c
}

func updateFields(req domain.UpdateListingRequest) map[string]any {
	fields := map[string]any{}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.Description != nil {
		fields["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Area != nil {
		fields["area"] = *req.Area
	}
	if req.Floors != nil {
		fields["floors"] = *req.Floors
	}
	if req.Facing != nil {
		fields["facing"] = strings.TrimSpace(*req.Facing)
	}
	if req.Category != nil {
		fields["category"] = strings.TrimSpace(*req.Category)
	}
	if req.Type != nil {
		fields["type"] = strings.TrimSpace(*req.Type)
	}
	if req.Bedrooms != nil {
		fields["bedrooms"] = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		fields["bathrooms"] = *req.Bathrooms
	}
	if req.Amenities != nil {
		fields["amenities"] = datatypes.NewJSONSlice(*req.Amenities)
	}
	if req.Address != nil {
		fields["address_street_name"] = strings.TrimSpace(req.Address.StreetName)
		fields["address_city"] = strings.TrimSpace(req.Address.City)
		fields["address_state"] = strings.TrimSpace(req.Address.State)
		fields["address_country"] = strings.TrimSpace(req.Address.Country)
	}
	if req.Images != nil {
		fields["images"] = datatypes.NewJSONSlice(*req.Images)
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	return fields
}

func ptr(v string) *string {
	return &v
}

func optionalPtr(v string) *string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return &v
}

func deref(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

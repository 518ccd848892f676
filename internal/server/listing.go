package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	listingdomain "github.com/smallbiznis/domora/internal/listing/domain"
	"github.com/smallbiznis/domora/pkg/db/pagination"
)

type addressPayload struct {
	StreetName string `json:"streetName"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
}

type createListingRequest struct {
	PropertyID  string                           `json:"propertyId"`
	Title       string                           `json:"title"`
	Price       *int64                           `json:"price"`
	Description string                           `json:"description"`
	Area        *int64                           `json:"area"`
	Floors      *int64                           `json:"floors"`
	Facing      string                           `json:"facing"`
	Category    string                           `json:"category"`
	Type        string                           `json:"type"`
	Bedrooms    *int64                           `json:"bedrooms"`
	Bathrooms   *int64                           `json:"bathrooms"`
	Amenities   []string                         `json:"amenities"`
	Address     addressPayload                   `json:"address"`
	Images      []listingdomain.ImageDescriptor  `json:"images"`
	OwnerRef    string                           `json:"ownerRef"`
}

func (s *Server) CreateListing(c *gin.Context) {
	var req createListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.listingSvc.Create(c.Request.Context(), listingdomain.CreateListingRequest{
		PropertyID:  strings.TrimSpace(req.PropertyID),
		Title:       strings.TrimSpace(req.Title),
		Price:       req.Price,
		Description: req.Description,
		Area:        req.Area,
		Floors:      req.Floors,
		Facing:      strings.TrimSpace(req.Facing),
		Category:    strings.TrimSpace(req.Category),
		Type:        strings.TrimSpace(req.Type),
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		Amenities:   req.Amenities,
		Address: listingdomain.AddressInput{
			StreetName: strings.TrimSpace(req.Address.StreetName),
			City:       strings.TrimSpace(req.Address.City),
			State:      strings.TrimSpace(req.Address.State),
			Country:    strings.TrimSpace(req.Address.Country),
		},
		Images:   req.Images,
		OwnerRef: strings.TrimSpace(req.OwnerRef),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

type updateListingRequest struct {
	// Fixed at creation time; present here only so that an explicit
	// attempt to change them is rejected instead of silently dropped.
	PropertyID *string `json:"propertyId"`
	Title      *string `json:"title"`
	Slug       *string `json:"slug"`
	OwnerRef   *string `json:"ownerRef"`

	Price       *int64                           `json:"price"`
	Description *string                          `json:"description"`
	Area        *int64                           `json:"area"`
	Floors      *int64                           `json:"floors"`
	Facing      *string                          `json:"facing"`
	Category    *string                          `json:"category"`
	Type        *string                          `json:"type"`
	Bedrooms    *int64                           `json:"bedrooms"`
	Bathrooms   *int64                           `json:"bathrooms"`
	Amenities   *[]string                        `json:"amenities"`
	Address     *addressPayload                  `json:"address"`
	Images      *[]listingdomain.ImageDescriptor `json:"images"`
	Status      *bool                            `json:"status"`
}

func (s *Server) UpdateListing(c *gin.Context) {
	var req updateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if field := firstImmutableField(req); field != "" {
		AbortWithError(c, immutableFieldError(field))
		return
	}

	update := listingdomain.UpdateListingRequest{
		PropertyID:  strings.TrimSpace(c.Param("propertyId")),
		Price:       req.Price,
		Description: req.Description,
		Area:        req.Area,
		Floors:      req.Floors,
		Facing:      req.Facing,
		Category:    req.Category,
		Type:        req.Type,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		Amenities:   req.Amenities,
		Images:      req.Images,
		Status:      req.Status,
	}
	if req.Address != nil {
		update.Address = &listingdomain.AddressInput{
			StreetName: strings.TrimSpace(req.Address.StreetName),
			City:       strings.TrimSpace(req.Address.City),
			State:      strings.TrimSpace(req.Address.State),
			Country:    strings.TrimSpace(req.Address.Country),
		}
	}

	resp, err := s.listingSvc.Update(c.Request.Context(), update)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func firstImmutableField(req updateListingRequest) string {
	switch {
	case req.PropertyID != nil:
		return "propertyId"
	case req.Title != nil:
		return "title"
	case req.Slug != nil:
		return "slug"
	case req.OwnerRef != nil:
		return "ownerRef"
	default:
		return ""
	}
}

func (s *Server) ArchiveListing(c *gin.Context) {
	err := s.listingSvc.Archive(c.Request.Context(), strings.TrimSpace(c.Param("propertyId")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "archived"})
}

func (s *Server) GetListing(c *gin.Context) {
	resp, err := s.listingSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("propertyId")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetListingBySlug(c *gin.Context) {
	resp, err := s.listingSvc.GetBySlug(c.Request.Context(), strings.TrimSpace(c.Param("slug")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListListings(c *gin.Context) {
	var query struct {
		Type            string `form:"type"`
		Category        string `form:"category"`
		Facing          string `form:"facing"`
		MinPrice        string `form:"min_price"`
		MaxPrice        string `form:"max_price"`
		MinBedrooms     string `form:"min_bedrooms"`
		MinBathrooms    string `form:"min_bathrooms"`
		OwnerRef        string `form:"owner_ref"`
		IncludeArchived string `form:"include_archived"`
		Page            int    `form:"page,default=1"`
		PageSize        int    `form:"page_size"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	minPrice, err := parseOptionalInt64(query.MinPrice)
	if err != nil {
		AbortWithError(c, newValidationError("min_price", "invalid_min_price", "invalid min_price"))
		return
	}
	maxPrice, err := parseOptionalInt64(query.MaxPrice)
	if err != nil {
		AbortWithError(c, newValidationError("max_price", "invalid_max_price", "invalid max_price"))
		return
	}
	minBedrooms, err := parseOptionalInt64(query.MinBedrooms)
	if err != nil {
		AbortWithError(c, newValidationError("min_bedrooms", "invalid_min_bedrooms", "invalid min_bedrooms"))
		return
	}
	minBathrooms, err := parseOptionalInt64(query.MinBathrooms)
	if err != nil {
		AbortWithError(c, newValidationError("min_bathrooms", "invalid_min_bathrooms", "invalid min_bathrooms"))
		return
	}
	includeArchived, err := parseOptionalBool(query.IncludeArchived)
	if err != nil {
		AbortWithError(c, newValidationError("include_archived", "invalid_include_archived", "invalid include_archived"))
		return
	}

	req := listingdomain.ListListingsRequest{
		Type:         strings.TrimSpace(query.Type),
		Category:     strings.TrimSpace(query.Category),
		Facing:       strings.TrimSpace(query.Facing),
		MinPrice:     minPrice,
		MaxPrice:     maxPrice,
		MinBedrooms:  minBedrooms,
		MinBathrooms: minBathrooms,
		OwnerRef:     strings.TrimSpace(query.OwnerRef),
		Page: pagination.Pagination{
			Page:     query.Page,
			PageSize: query.PageSize,
		},
	}
	if includeArchived != nil {
		req.IncludeArchived = *includeArchived
	}

	resp, err := s.listingSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	marketapp "github.com/agrihub/backend/internal/application/marketplace"
)

// ListingHandler handles marketplace listing endpoints
type ListingHandler struct {
	BaseHandler
	listingService *marketapp.ListingService
}

// NewListingHandler creates a new ListingHandler
func NewListingHandler(listingService *marketapp.ListingService) *ListingHandler {
	return &ListingHandler{
		listingService: listingService,
	}
}

// Create godoc
// @ID           createListing
// @Summary      Publish a produce listing
// @Tags         listings
// @Accept       json
// @Produce      json
// @Param        request body marketapp.CreateListingRequest true "Listing creation request"
// @Success      201 {object} APIResponse[marketapp.ListingResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /market/listings [post]
func (h *ListingHandler) Create(c *gin.Context) {
	sellerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req marketapp.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	listing, err := h.listingService.Create(c.Request.Context(), sellerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, listing)
}

// GetByID godoc
// @ID           getListingById
// @Summary      Get listing by ID
// @Tags         listings
// @Produce      json
// @Param        id path string true "Listing ID" format(uuid)
// @Success      200 {object} APIResponse[marketapp.ListingResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /market/listings/{id} [get]
func (h *ListingHandler) GetByID(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid listing ID format")
		return
	}

	listing, err := h.listingService.GetByID(c.Request.Context(), listingID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, listing)
}

// Browse godoc
// @ID           browseListings
// @Summary      Browse active listings
// @Tags         listings
// @Produce      json
// @Param        crop_type query string false "Crop type"
// @Param        search query string false "Search term (title, crop)"
// @Param        min_price query number false "Minimum price per kg"
// @Param        max_price query number false "Maximum price per kg"
// @Param        min_rating query number false "Minimum seller rating"
// @Param        sort_by query string false "Sort field" Enums(price_per_kg, created_at, rating)
// @Param        sort_desc query bool false "Sort descending"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]marketapp.ListingResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /market/listings [get]
func (h *ListingHandler) Browse(c *gin.Context) {
	var filter marketapp.ListingListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	listings, total, err := h.listingService.Browse(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, listings, total, filter.Page, filter.PageSize)
}

// ListMine godoc
// @ID           listMyListings
// @Summary      List the authenticated seller's listings
// @Tags         listings
// @Produce      json
// @Param        status query string false "Listing status"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]marketapp.ListingResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /market/listings/mine [get]
func (h *ListingHandler) ListMine(c *gin.Context) {
	sellerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter marketapp.ListingListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	listings, total, err := h.listingService.ListMine(c.Request.Context(), sellerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, listings, total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updateListing
// @Summary      Update a listing
// @Tags         listings
// @Accept       json
// @Produce      json
// @Param        id path string true "Listing ID" format(uuid)
// @Param        request body marketapp.UpdateListingRequest true "Listing update request"
// @Success      200 {object} APIResponse[marketapp.ListingResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /market/listings/{id} [put]
func (h *ListingHandler) Update(c *gin.Context) {
	sellerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid listing ID format")
		return
	}

	var req marketapp.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	listing, err := h.listingService.Update(c.Request.Context(), sellerID, listingID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, listing)
}

// Restock godoc
// @ID           restockListing
// @Summary      Add quantity to a listing
// @Tags         listings
// @Accept       json
// @Produce      json
// @Param        id path string true "Listing ID" format(uuid)
// @Param        request body marketapp.RestockListingRequest true "Restock details"
// @Success      200 {object} APIResponse[marketapp.ListingResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /market/listings/{id}/restock [post]
func (h *ListingHandler) Restock(c *gin.Context) {
	sellerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid listing ID format")
		return
	}

	var req marketapp.RestockListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	listing, err := h.listingService.Restock(c.Request.Context(), sellerID, listingID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, listing)
}

// Delist godoc
// @ID           delistListing
// @Summary      Withdraw a listing from the marketplace
// @Tags         listings
// @Produce      json
// @Param        id path string true "Listing ID" format(uuid)
// @Success      200 {object} APIResponse[marketapp.ListingResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /market/listings/{id}/delist [post]
func (h *ListingHandler) Delist(c *gin.Context) {
	sellerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid listing ID format")
		return
	}

	listing, err := h.listingService.Delist(c.Request.Context(), sellerID, listingID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, listing)
}

package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	marketapp "github.com/agrihub/backend/internal/application/marketplace"
)

// ReviewHandler handles listing review endpoints
type ReviewHandler struct {
	BaseHandler
	reviewService *marketapp.ReviewService
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService *marketapp.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// UpdateReviewCommentRequest represents a review comment edit
// @Description Request body for editing a review comment
type UpdateReviewCommentRequest struct {
	Comment string `json:"comment" binding:"required,max=2000"`
}

// Create godoc
// @ID           createReview
// @Summary      Review a delivered order
// @Description  One review per order, by the buyer, after delivery
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        request body marketapp.CreateReviewRequest true "Review request"
// @Success      201 {object} APIResponse[marketapp.ReviewResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /market/reviews [post]
func (h *ReviewHandler) Create(c *gin.Context) {
	buyerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req marketapp.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), buyerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, review)
}

// ListForListing godoc
// @ID           listReviews
// @Summary      List reviews for a listing
// @Tags         reviews
// @Produce      json
// @Param        id path string true "Listing ID" format(uuid)
// @Param        stars query int false "Filter by star rating" minimum(1) maximum(5)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]marketapp.ReviewResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /market/listings/{id}/reviews [get]
func (h *ReviewHandler) ListForListing(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid listing ID format")
		return
	}

	var stars *int
	if v := c.Query("stars"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 5 {
			h.BadRequest(c, "stars must be between 1 and 5")
			return
		}
		stars = &parsed
	}

	page, pageSize := pagination(c)
	reviews, total, err := h.reviewService.ListForListing(c.Request.Context(), listingID, stars, page, pageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, reviews, total, page, pageSize)
}

// UpdateComment godoc
// @ID           updateReviewComment
// @Summary      Edit a review comment
// @Description  The star rating is immutable; only the comment text can be edited, by its author
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        id path string true "Review ID" format(uuid)
// @Param        request body UpdateReviewCommentRequest true "New comment"
// @Success      200 {object} APIResponse[marketapp.ReviewResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /market/reviews/{id} [put]
func (h *ReviewHandler) UpdateComment(c *gin.Context) {
	buyerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid review ID format")
		return
	}

	var req UpdateReviewCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	review, err := h.reviewService.UpdateComment(c.Request.Context(), buyerID, reviewID, req.Comment)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, review)
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	communityapp "github.com/agrihub/backend/internal/application/community"
)

// CommentHandler handles post comment endpoints
type CommentHandler struct {
	BaseHandler
	commentService *communityapp.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentService *communityapp.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// Create godoc
// @ID           createComment
// @Summary      Reply to a post
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        id path string true "Post ID" format(uuid)
// @Param        request body communityapp.CreateCommentRequest true "Comment body"
// @Success      201 {object} APIResponse[communityapp.CommentResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /community/posts/{id}/comments [post]
func (h *CommentHandler) Create(c *gin.Context) {
	authorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid post ID format")
		return
	}

	var req communityapp.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), authorID, postID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, comment)
}

// ListForPost godoc
// @ID           listComments
// @Summary      List comments on a post
// @Tags         comments
// @Produce      json
// @Param        id path string true "Post ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]communityapp.CommentResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /community/posts/{id}/comments [get]
func (h *CommentHandler) ListForPost(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid post ID format")
		return
	}

	page, pageSize := pagination(c)
	comments, total, err := h.commentService.ListForPost(c.Request.Context(), postID, page, pageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, comments, total, page, pageSize)
}

// Update godoc
// @ID           updateComment
// @Summary      Edit a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        id path string true "Comment ID" format(uuid)
// @Param        request body communityapp.CreateCommentRequest true "New comment body"
// @Success      200 {object} APIResponse[communityapp.CommentResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /community/comments/{id} [put]
func (h *CommentHandler) Update(c *gin.Context) {
	authorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid comment ID format")
		return
	}

	var req communityapp.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	comment, err := h.commentService.Update(c.Request.Context(), authorID, commentID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, comment)
}

// Delete godoc
// @ID           deleteComment
// @Summary      Delete a comment
// @Tags         comments
// @Produce      json
// @Param        id path string true "Comment ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /community/comments/{id} [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	authorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid comment ID format")
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), authorID, commentID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

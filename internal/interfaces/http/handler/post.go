package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	communityapp "github.com/agrihub/backend/internal/application/community"
	"github.com/agrihub/backend/internal/domain/community"
)

// PostHandler handles community post endpoints
type PostHandler struct {
	BaseHandler
	postService *communityapp.PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService *communityapp.PostService) *PostHandler {
	return &PostHandler{
		postService: postService,
	}
}

// Create godoc
// @ID           createPost
// @Summary      Publish a community post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        request body communityapp.CreatePostRequest true "Post creation request"
// @Success      201 {object} APIResponse[communityapp.PostResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /community/posts [post]
func (h *PostHandler) Create(c *gin.Context) {
	authorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req communityapp.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	post, err := h.postService.Create(c.Request.Context(), authorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, post)
}

// GetByID godoc
// @ID           getPostById
// @Summary      Get post by ID
// @Description  Liked and bookmarked flags reflect the requesting user
// @Tags         posts
// @Produce      json
// @Param        id path string true "Post ID" format(uuid)
// @Success      200 {object} APIResponse[communityapp.PostResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /community/posts/{id} [get]
func (h *PostHandler) GetByID(c *gin.Context) {
	viewerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid post ID format")
		return
	}

	post, err := h.postService.GetByID(c.Request.Context(), viewerID, postID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, post)
}

// Feed godoc
// @ID           postFeed
// @Summary      Browse the community feed
// @Tags         posts
// @Produce      json
// @Param        topic query string false "Topic"
// @Param        author_id query string false "Author ID" format(uuid)
// @Param        search query string false "Search term (title, body)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]communityapp.PostResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /community/posts [get]
func (h *PostHandler) Feed(c *gin.Context) {
	viewerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter communityapp.PostListFilter
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

	posts, total, err := h.postService.Feed(c.Request.Context(), viewerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, posts, total, filter.Page, filter.PageSize)
}

// Bookmarks godoc
// @ID           bookmarkedPosts
// @Summary      List posts the user has bookmarked
// @Tags         posts
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]communityapp.PostResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /community/posts/bookmarks [get]
func (h *PostHandler) Bookmarks(c *gin.Context) {
	viewerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter communityapp.PostListFilter
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

	posts, total, err := h.postService.Bookmarks(c.Request.Context(), viewerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, posts, total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updatePost
// @Summary      Edit a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        id path string true "Post ID" format(uuid)
// @Param        request body communityapp.UpdatePostRequest true "Post update request"
// @Success      200 {object} APIResponse[communityapp.PostResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /community/posts/{id} [put]
func (h *PostHandler) Update(c *gin.Context) {
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

	var req communityapp.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	post, err := h.postService.Update(c.Request.Context(), authorID, postID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, post)
}

// Delete godoc
// @ID           deletePost
// @Summary      Delete a post
// @Tags         posts
// @Produce      json
// @Param        id path string true "Post ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /community/posts/{id} [delete]
func (h *PostHandler) Delete(c *gin.Context) {
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

	if err := h.postService.Delete(c.Request.Context(), authorID, postID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ToggleLike godoc
// @ID           togglePostLike
// @Summary      Like or unlike a post
// @Description  Toggles the like: a second call undoes the first. The response carries the new state and counter.
// @Tags         posts
// @Produce      json
// @Param        id path string true "Post ID" format(uuid)
// @Success      200 {object} APIResponse[communityapp.ToggleResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /community/posts/{id}/like [post]
func (h *PostHandler) ToggleLike(c *gin.Context) {
	h.toggle(c, community.ReactionKindLike)
}

// ToggleBookmark godoc
// @ID           togglePostBookmark
// @Summary      Bookmark or unbookmark a post
// @Tags         posts
// @Produce      json
// @Param        id path string true "Post ID" format(uuid)
// @Success      200 {object} APIResponse[communityapp.ToggleResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /community/posts/{id}/bookmark [post]
func (h *PostHandler) ToggleBookmark(c *gin.Context) {
	h.toggle(c, community.ReactionKindBookmark)
}

func (h *PostHandler) toggle(c *gin.Context, kind community.ReactionKind) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid post ID format")
		return
	}

	result, err := h.postService.Toggle(c.Request.Context(), userID, postID, kind)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

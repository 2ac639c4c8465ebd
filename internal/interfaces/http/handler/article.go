package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	knowledgeapp "github.com/agrihub/backend/internal/application/knowledge"
)

// ArticleHandler handles knowledge base article endpoints
type ArticleHandler struct {
	BaseHandler
	articleService *knowledgeapp.ArticleService
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(articleService *knowledgeapp.ArticleService) *ArticleHandler {
	return &ArticleHandler{
		articleService: articleService,
	}
}

// Create godoc
// @ID           createArticle
// @Summary      Draft a knowledge article
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        request body knowledgeapp.CreateArticleRequest true "Article creation request"
// @Success      201 {object} APIResponse[knowledgeapp.ArticleResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /knowledge/articles [post]
func (h *ArticleHandler) Create(c *gin.Context) {
	authorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req knowledgeapp.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	article, err := h.articleService.Create(c.Request.Context(), authorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, article)
}

// Read godoc
// @ID           readArticle
// @Summary      Read an article
// @Description  Reading a published article increments its view counter. Authors can read their own drafts.
// @Tags         articles
// @Produce      json
// @Param        id path string true "Article ID" format(uuid)
// @Success      200 {object} APIResponse[knowledgeapp.ArticleResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /knowledge/articles/{id} [get]
func (h *ArticleHandler) Read(c *gin.Context) {
	readerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	articleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid article ID format")
		return
	}

	article, err := h.articleService.Read(c.Request.Context(), readerID, articleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, article)
}

// Browse godoc
// @ID           browseArticles
// @Summary      Browse published articles
// @Tags         articles
// @Produce      json
// @Param        category query string false "Category"
// @Param        tag query string false "Tag"
// @Param        search query string false "Search term (title, summary)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]knowledgeapp.ArticleResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /knowledge/articles [get]
func (h *ArticleHandler) Browse(c *gin.Context) {
	var filter knowledgeapp.ArticleListFilter
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

	articles, total, err := h.articleService.Browse(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, articles, total, filter.Page, filter.PageSize)
}

// ListMine godoc
// @ID           listMyArticles
// @Summary      List the authenticated author's articles in any state
// @Tags         articles
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]knowledgeapp.ArticleResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /knowledge/articles/mine [get]
func (h *ArticleHandler) ListMine(c *gin.Context) {
	authorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter knowledgeapp.ArticleListFilter
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

	articles, err := h.articleService.ListMine(c.Request.Context(), authorID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, articles)
}

// Update godoc
// @ID           updateArticle
// @Summary      Update an article
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        id path string true "Article ID" format(uuid)
// @Param        request body knowledgeapp.UpdateArticleRequest true "Article update request"
// @Success      200 {object} APIResponse[knowledgeapp.ArticleResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /knowledge/articles/{id} [put]
func (h *ArticleHandler) Update(c *gin.Context) {
	authorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	articleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid article ID format")
		return
	}

	var req knowledgeapp.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	article, err := h.articleService.Update(c.Request.Context(), authorID, articleID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, article)
}

// Publish godoc
// @ID           publishArticle
// @Summary      Publish a draft article
// @Tags         articles
// @Produce      json
// @Param        id path string true "Article ID" format(uuid)
// @Success      200 {object} APIResponse[knowledgeapp.ArticleResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /knowledge/articles/{id}/publish [post]
func (h *ArticleHandler) Publish(c *gin.Context) {
	h.transition(c, h.articleService.Publish)
}

// Archive godoc
// @ID           archiveArticle
// @Summary      Archive a published article
// @Tags         articles
// @Produce      json
// @Param        id path string true "Article ID" format(uuid)
// @Success      200 {object} APIResponse[knowledgeapp.ArticleResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /knowledge/articles/{id}/archive [post]
func (h *ArticleHandler) Archive(c *gin.Context) {
	h.transition(c, h.articleService.Archive)
}

// Delete godoc
// @ID           deleteArticle
// @Summary      Delete an article
// @Tags         articles
// @Produce      json
// @Param        id path string true "Article ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /knowledge/articles/{id} [delete]
func (h *ArticleHandler) Delete(c *gin.Context) {
	authorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	articleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid article ID format")
		return
	}

	if err := h.articleService.Delete(c.Request.Context(), authorID, articleID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

func (h *ArticleHandler) transition(c *gin.Context, fn func(ctx context.Context, authorID, id uuid.UUID) (*knowledgeapp.ArticleResponse, error)) {
	authorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	articleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid article ID format")
		return
	}

	article, err := fn(c.Request.Context(), authorID, articleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, article)
}

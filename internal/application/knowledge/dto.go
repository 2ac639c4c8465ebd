package knowledge

import (
	"time"

	"github.com/google/uuid"

	"github.com/agrihub/backend/internal/domain/knowledge"
)

// CreateArticleRequest contains input for drafting an article
type CreateArticleRequest struct {
	Category string `json:"category" binding:"required"`
	Title    string `json:"title" binding:"required"`
	Summary  string `json:"summary"`
	Body     string `json:"body" binding:"required"`
	Tags     string `json:"tags"`
}

// UpdateArticleRequest contains input for editing an article
type UpdateArticleRequest struct {
	Category string `json:"category" binding:"required"`
	Title    string `json:"title" binding:"required"`
	Summary  string `json:"summary"`
	Body     string `json:"body" binding:"required"`
	Tags     string `json:"tags"`
}

// ArticleListFilter contains query options for browsing articles
type ArticleListFilter struct {
	Category string `form:"category"`
	Tag      string `form:"tag"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size" binding:"omitempty,max=100"`
}

// ArticleResponse is the client shape of an article
type ArticleResponse struct {
	ID          uuid.UUID  `json:"id"`
	AuthorID    uuid.UUID  `json:"author_id"`
	Category    string     `json:"category"`
	Title       string     `json:"title"`
	Summary     string     `json:"summary,omitempty"`
	Body        string     `json:"body,omitempty"`
	Tags        string     `json:"tags,omitempty"`
	Status      string     `json:"status"`
	ViewCount   int64      `json:"view_count"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToArticleResponse maps an article to its client shape
func ToArticleResponse(a *knowledge.Article) *ArticleResponse {
	return &ArticleResponse{
		ID:          a.ID,
		AuthorID:    a.OwnerID,
		Category:    a.Category.String(),
		Title:       a.Title,
		Summary:     a.Summary,
		Body:        a.Body,
		Tags:        a.Tags,
		Status:      string(a.Status),
		ViewCount:   a.ViewCount,
		PublishedAt: a.PublishedAt,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// toSummaryResponse drops the body for list views
func toSummaryResponse(a *knowledge.Article) ArticleResponse {
	resp := ToArticleResponse(a)
	resp.Body = ""
	return *resp
}

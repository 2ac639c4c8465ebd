package knowledge

import (
	"time"

	"github.com/google/uuid"

	"github.com/agrihub/backend/internal/domain/shared"
)

// ArticleCategory groups knowledge base articles
type ArticleCategory string

const (
	ArticleCategoryCropGuide   ArticleCategory = "CROP_GUIDE"
	ArticleCategoryPestControl ArticleCategory = "PEST_CONTROL"
	ArticleCategorySoilHealth  ArticleCategory = "SOIL_HEALTH"
	ArticleCategoryIrrigation  ArticleCategory = "IRRIGATION"
	ArticleCategoryPostHarvest ArticleCategory = "POST_HARVEST"
	ArticleCategoryFinance     ArticleCategory = "FINANCE"
)

// IsValid checks if the category is a valid ArticleCategory
func (c ArticleCategory) IsValid() bool {
	switch c {
	case ArticleCategoryCropGuide, ArticleCategoryPestControl, ArticleCategorySoilHealth,
		ArticleCategoryIrrigation, ArticleCategoryPostHarvest, ArticleCategoryFinance:
		return true
	}
	return false
}

// String returns the string representation of ArticleCategory
func (c ArticleCategory) String() string {
	return string(c)
}

// ArticleStatus represents the publication state of an article
type ArticleStatus string

const (
	ArticleStatusDraft     ArticleStatus = "DRAFT"
	ArticleStatusPublished ArticleStatus = "PUBLISHED"
	ArticleStatusArchived  ArticleStatus = "ARCHIVED"
)

// IsValid checks if the status is a valid ArticleStatus
func (s ArticleStatus) IsValid() bool {
	switch s {
	case ArticleStatusDraft, ArticleStatusPublished, ArticleStatusArchived:
		return true
	}
	return false
}

// Article represents a knowledge base article aggregate root. The owner
// is the authoring editor; published articles are readable by everyone.
type Article struct {
	shared.OwnedAggregateRoot
	Category    ArticleCategory `json:"category"`
	Title       string          `json:"title"`
	Summary     string          `json:"summary"`
	Body        string          `json:"body"` // Markdown
	Tags        string          `json:"tags"` // JSON array of tag strings
	Status      ArticleStatus   `json:"status"`
	ViewCount   int64           `json:"view_count"`
	PublishedAt *time.Time      `json:"published_at"`
}

// NewArticle creates a new draft article
func NewArticle(authorID uuid.UUID, category ArticleCategory, title, summary, body string) (*Article, error) {
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Article category is not valid")
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Article title cannot be empty")
	}
	if len(title) > 200 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Article title cannot exceed 200 characters")
	}
	if body == "" {
		return nil, shared.NewDomainError("INVALID_BODY", "Article body cannot be empty")
	}

	return &Article{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(authorID),
		Category:           category,
		Title:              title,
		Summary:            summary,
		Body:               body,
		Status:             ArticleStatusDraft,
	}, nil
}

// Update edits the article content. Published articles can be edited in
// place; archived ones cannot.
func (a *Article) Update(category ArticleCategory, title, summary, body, tags string) error {
	if a.Status == ArticleStatusArchived {
		return shared.NewDomainError("INVALID_STATE", "Cannot edit an archived article")
	}
	if !category.IsValid() {
		return shared.NewDomainError("INVALID_CATEGORY", "Article category is not valid")
	}
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Article title cannot be empty")
	}
	if body == "" {
		return shared.NewDomainError("INVALID_BODY", "Article body cannot be empty")
	}

	a.Category = category
	a.Title = title
	a.Summary = summary
	a.Body = body
	a.Tags = tags
	a.UpdatedAt = time.Now()

	return nil
}

// Publish makes the article visible to all users
func (a *Article) Publish() error {
	if a.Status != ArticleStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft articles can be published")
	}

	now := time.Now()
	a.Status = ArticleStatusPublished
	a.PublishedAt = &now
	a.UpdatedAt = now

	return nil
}

// Archive removes the article from readers without deleting it
func (a *Article) Archive() error {
	if a.Status != ArticleStatusPublished {
		return shared.NewDomainError("INVALID_STATE", "Only published articles can be archived")
	}

	a.Status = ArticleStatusArchived
	a.UpdatedAt = time.Now()

	return nil
}

// IsReadable returns true if the article is visible to readers
func (a *Article) IsReadable() bool {
	return a.Status == ArticleStatusPublished
}

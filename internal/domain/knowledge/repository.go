package knowledge

import (
	"context"

	"github.com/google/uuid"

	"github.com/agrihub/backend/internal/domain/shared"
)

// ArticleFilter defines filtering options for article queries
type ArticleFilter struct {
	shared.Filter
	Category *ArticleCategory
	Status   *ArticleStatus
	Tag      *string
	Search   *string // matches title, summary or body
}

// ArticleRepository defines the interface for article persistence
type ArticleRepository interface {
	// FindByID finds an article by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Article, error)

	// FindPublished finds published articles with filtering
	FindPublished(ctx context.Context, filter ArticleFilter) ([]Article, error)

	// FindAllForAuthor finds an author's articles in any status
	FindAllForAuthor(ctx context.Context, authorID uuid.UUID, filter ArticleFilter) ([]Article, error)

	// IncrementViews bumps the view counter without loading the aggregate
	IncrementViews(ctx context.Context, id uuid.UUID) error

	// Save creates or updates an article
	Save(ctx context.Context, article *Article) error

	// DeleteForAuthor soft deletes an article for its author
	DeleteForAuthor(ctx context.Context, authorID, id uuid.UUID) error

	// CountPublished counts published articles with optional filters
	CountPublished(ctx context.Context, filter ArticleFilter) (int64, error)
}

package persistence

import (
	"context"
	"errors"

	"github.com/agrihub/backend/internal/domain/knowledge"
	"github.com/agrihub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormArticleRepository implements ArticleRepository using GORM
type GormArticleRepository struct {
	db *gorm.DB
}

// NewGormArticleRepository creates a new GormArticleRepository
func NewGormArticleRepository(db *gorm.DB) *GormArticleRepository {
	return &GormArticleRepository{db: db}
}

// FindByID finds an article by its ID
func (r *GormArticleRepository) FindByID(ctx context.Context, id uuid.UUID) (*knowledge.Article, error) {
	var article knowledge.Article
	if err := r.db.WithContext(ctx).First(&article, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &article, nil
}

// FindPublished finds published articles with filtering
func (r *GormArticleRepository) FindPublished(ctx context.Context, filter knowledge.ArticleFilter) ([]knowledge.Article, error) {
	var articles []knowledge.Article
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&knowledge.Article{}).
			Where("status = ?", knowledge.ArticleStatusPublished),
		filter,
	)

	if err := query.Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

// FindAllForAuthor finds an author's articles in any status
func (r *GormArticleRepository) FindAllForAuthor(ctx context.Context, authorID uuid.UUID, filter knowledge.ArticleFilter) ([]knowledge.Article, error) {
	var articles []knowledge.Article
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&knowledge.Article{}).Where("owner_id = ?", authorID),
		filter,
	)

	if err := query.Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

// IncrementViews bumps the view counter without loading the aggregate
func (r *GormArticleRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&knowledge.Article{}).
		Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Save creates or updates an article
func (r *GormArticleRepository) Save(ctx context.Context, article *knowledge.Article) error {
	return r.db.WithContext(ctx).Save(article).Error
}

// DeleteForAuthor deletes an article within its author scope
func (r *GormArticleRepository) DeleteForAuthor(ctx context.Context, authorID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&knowledge.Article{}, "owner_id = ? AND id = ?", authorID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountPublished counts published articles with optional filters
func (r *GormArticleRepository) CountPublished(ctx context.Context, filter knowledge.ArticleFilter) (int64, error) {
	var count int64
	query := r.applyConditions(
		r.db.WithContext(ctx).Model(&knowledge.Article{}).
			Where("status = ?", knowledge.ArticleStatusPublished),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter conditions, ordering and pagination
func (r *GormArticleRepository) applyFilter(query *gorm.DB, filter knowledge.ArticleFilter) *gorm.DB {
	query = r.applyConditions(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ArticleSortFields, "published_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyConditions applies filter conditions without pagination
func (r *GormArticleRepository) applyConditions(query *gorm.DB, filter knowledge.ArticleFilter) *gorm.DB {
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Tag != nil && *filter.Tag != "" {
		query = query.Where("tags LIKE ?", "%\""+*filter.Tag+"\"%")
	}
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		query = query.Where("title ILIKE ? OR summary ILIKE ? OR body ILIKE ?", pattern, pattern, pattern)
	}
	return query
}

// Ensure GormArticleRepository implements ArticleRepository
var _ knowledge.ArticleRepository = (*GormArticleRepository)(nil)

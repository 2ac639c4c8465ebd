package knowledge

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agrihub/backend/internal/domain/knowledge"
	"github.com/agrihub/backend/internal/domain/shared"
)

// ArticleService handles the knowledge base
type ArticleService struct {
	articleRepo knowledge.ArticleRepository
	logger      *zap.Logger
}

// NewArticleService creates a new ArticleService
func NewArticleService(articleRepo knowledge.ArticleRepository, logger *zap.Logger) *ArticleService {
	return &ArticleService{articleRepo: articleRepo, logger: logger}
}

// Create drafts a new article
func (s *ArticleService) Create(ctx context.Context, authorID uuid.UUID, req CreateArticleRequest) (*ArticleResponse, error) {
	article, err := knowledge.NewArticle(authorID, knowledge.ArticleCategory(req.Category), req.Title, req.Summary, req.Body)
	if err != nil {
		return nil, err
	}
	article.Tags = req.Tags

	if err := s.articleRepo.Save(ctx, article); err != nil {
		return nil, err
	}

	s.logger.Info("article drafted",
		zap.String("article_id", article.ID.String()),
		zap.String("category", article.Category.String()))

	return ToArticleResponse(article), nil
}

// Read retrieves a published article and counts the view. The counter
// bump is fire-and-forget; a miss never blocks the read.
func (s *ArticleService) Read(ctx context.Context, readerID, id uuid.UUID) (*ArticleResponse, error) {
	article, err := s.articleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !article.IsReadable() && article.OwnerID != readerID {
		return nil, shared.ErrNotFound
	}

	if article.IsReadable() && article.OwnerID != readerID {
		if err := s.articleRepo.IncrementViews(ctx, id); err != nil {
			s.logger.Warn("view counter bump failed",
				zap.String("article_id", id.String()), zap.Error(err))
		} else {
			article.ViewCount++
		}
	}

	return ToArticleResponse(article), nil
}

// Browse lists published articles. Bodies are omitted from list views.
func (s *ArticleService) Browse(ctx context.Context, filter ArticleListFilter) ([]ArticleResponse, int64, error) {
	domainFilter, err := s.buildFilter(filter)
	if err != nil {
		return nil, 0, err
	}

	articles, err := s.articleRepo.FindPublished(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.articleRepo.CountPublished(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ArticleResponse, len(articles))
	for i := range articles {
		responses[i] = toSummaryResponse(&articles[i])
	}
	return responses, total, nil
}

// ListMine lists the author's own articles in any status
func (s *ArticleService) ListMine(ctx context.Context, authorID uuid.UUID, filter ArticleListFilter) ([]ArticleResponse, error) {
	domainFilter, err := s.buildFilter(filter)
	if err != nil {
		return nil, err
	}

	articles, err := s.articleRepo.FindAllForAuthor(ctx, authorID, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]ArticleResponse, len(articles))
	for i := range articles {
		responses[i] = toSummaryResponse(&articles[i])
	}
	return responses, nil
}

// Update edits the author's own article
func (s *ArticleService) Update(ctx context.Context, authorID, id uuid.UUID, req UpdateArticleRequest) (*ArticleResponse, error) {
	article, err := s.findForAuthor(ctx, authorID, id)
	if err != nil {
		return nil, err
	}

	if err := article.Update(knowledge.ArticleCategory(req.Category), req.Title, req.Summary, req.Body, req.Tags); err != nil {
		return nil, err
	}
	if err := s.articleRepo.Save(ctx, article); err != nil {
		return nil, err
	}

	return ToArticleResponse(article), nil
}

// Publish makes a draft visible to all readers
func (s *ArticleService) Publish(ctx context.Context, authorID, id uuid.UUID) (*ArticleResponse, error) {
	return s.transition(ctx, authorID, id, (*knowledge.Article).Publish)
}

// Archive pulls a published article from readers
func (s *ArticleService) Archive(ctx context.Context, authorID, id uuid.UUID) (*ArticleResponse, error) {
	return s.transition(ctx, authorID, id, (*knowledge.Article).Archive)
}

// Delete removes the author's own article
func (s *ArticleService) Delete(ctx context.Context, authorID, id uuid.UUID) error {
	return s.articleRepo.DeleteForAuthor(ctx, authorID, id)
}

func (s *ArticleService) transition(ctx context.Context, authorID, id uuid.UUID, fn func(*knowledge.Article) error) (*ArticleResponse, error) {
	article, err := s.findForAuthor(ctx, authorID, id)
	if err != nil {
		return nil, err
	}
	if err := fn(article); err != nil {
		return nil, err
	}
	if err := s.articleRepo.Save(ctx, article); err != nil {
		return nil, err
	}
	return ToArticleResponse(article), nil
}

func (s *ArticleService) findForAuthor(ctx context.Context, authorID, id uuid.UUID) (*knowledge.Article, error) {
	article, err := s.articleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article.OwnerID != authorID {
		return nil, shared.ErrForbidden
	}
	return article, nil
}

func (s *ArticleService) buildFilter(filter ArticleListFilter) (knowledge.ArticleFilter, error) {
	domainFilter := knowledge.ArticleFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  "published_at",
			OrderDir: "desc",
		},
	}

	if filter.Category != "" {
		category := knowledge.ArticleCategory(filter.Category)
		if !category.IsValid() {
			return knowledge.ArticleFilter{}, shared.NewDomainError("INVALID_CATEGORY", "Article category is not valid")
		}
		domainFilter.Category = &category
	}
	if filter.Tag != "" {
		domainFilter.Tag = &filter.Tag
	}
	if filter.Search != "" {
		domainFilter.Search = &filter.Search
	}

	return domainFilter, nil
}

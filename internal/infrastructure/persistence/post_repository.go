package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/agrihub/backend/internal/domain/community"
	"github.com/agrihub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPostRepository implements PostRepository using GORM
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates a new GormPostRepository
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// FindByID finds a post by its ID
func (r *GormPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*community.Post, error) {
	var post community.Post
	if err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// FindAll finds posts across the community with filtering
func (r *GormPostRepository) FindAll(ctx context.Context, filter community.PostFilter) ([]community.Post, error) {
	var posts []community.Post
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&community.Post{}),
		filter,
	)

	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// FindBookmarkedByUser finds posts the user has bookmarked
func (r *GormPostRepository) FindBookmarkedByUser(ctx context.Context, userID uuid.UUID, filter community.PostFilter) ([]community.Post, error) {
	var posts []community.Post
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&community.Post{}).
			Joins("JOIN reactions ON reactions.post_id = posts.id").
			Where("reactions.user_id = ? AND reactions.kind = ?", userID, community.ReactionKindBookmark),
		filter,
	)

	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Save creates or updates a post
func (r *GormPostRepository) Save(ctx context.Context, post *community.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

// DeleteForAuthor deletes a post within its author scope
func (r *GormPostRepository) DeleteForAuthor(ctx context.Context, authorID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&community.Post{}, "owner_id = ? AND id = ?", authorID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts posts with optional filters
func (r *GormPostRepository) Count(ctx context.Context, filter community.PostFilter) (int64, error) {
	var count int64
	query := r.applyConditions(
		r.db.WithContext(ctx).Model(&community.Post{}),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter conditions, ordering and pagination
func (r *GormPostRepository) applyFilter(query *gorm.DB, filter community.PostFilter) *gorm.DB {
	query = r.applyConditions(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, PostSortFields, "created_at")
	query = query.Order("posts." + orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyConditions applies filter conditions without pagination
func (r *GormPostRepository) applyConditions(query *gorm.DB, filter community.PostFilter) *gorm.DB {
	if filter.Topic != nil {
		query = query.Where("topic = ?", *filter.Topic)
	}
	if filter.AuthorID != nil {
		query = query.Where("posts.owner_id = ?", *filter.AuthorID)
	}
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		query = query.Where("posts.title ILIKE ? OR posts.body ILIKE ?", pattern, pattern)
	}
	return query
}

// Ensure GormPostRepository implements PostRepository
var _ community.PostRepository = (*GormPostRepository)(nil)

// GormCommentRepository implements CommentRepository using GORM
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// FindByID finds a comment by its ID
func (r *GormCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*community.Comment, error) {
	var comment community.Comment
	if err := r.db.WithContext(ctx).First(&comment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// FindAllForPost finds comments under a post
func (r *GormCommentRepository) FindAllForPost(ctx context.Context, postID uuid.UUID, filter community.CommentFilter) ([]community.Comment, error) {
	var comments []community.Comment
	query := r.db.WithContext(ctx).Model(&community.Comment{}).Where("post_id = ?", postID)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	query = query.Order("created_at ASC")

	if err := query.Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// Save creates or updates a comment
func (r *GormCommentRepository) Save(ctx context.Context, comment *community.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

// DeleteForAuthor deletes a comment within its author scope
func (r *GormCommentRepository) DeleteForAuthor(ctx context.Context, authorID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&community.Comment{}, "owner_id = ? AND id = ?", authorID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForPost counts comments under a post
func (r *GormCommentRepository) CountForPost(ctx context.Context, postID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&community.Comment{}).
		Where("post_id = ?", postID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormCommentRepository implements CommentRepository
var _ community.CommentRepository = (*GormCommentRepository)(nil)

// GormReactionRepository implements ReactionRepository using GORM
type GormReactionRepository struct {
	db *gorm.DB
}

// NewGormReactionRepository creates a new GormReactionRepository
func NewGormReactionRepository(db *gorm.DB) *GormReactionRepository {
	return &GormReactionRepository{db: db}
}

// Find returns the user's reaction of the given kind on a post
func (r *GormReactionRepository) Find(ctx context.Context, userID, postID uuid.UUID, kind community.ReactionKind) (*community.Reaction, error) {
	var reaction community.Reaction
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ? AND kind = ?", userID, postID, kind).
		First(&reaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &reaction, nil
}

// ToggleTx inserts or removes the reaction row and moves the post's
// denormalized counter by exactly one, in a single transaction.
// Returns true when the reaction is now present.
func (r *GormReactionRepository) ToggleTx(ctx context.Context, userID, postID uuid.UUID, kind community.ReactionKind) (bool, error) {
	counterColumn := "like_count"
	if kind == community.ReactionKindBookmark {
		counterColumn = "bookmark_count"
	}

	var added bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND post_id = ? AND kind = ?", userID, postID, kind).
			Delete(&community.Reaction{})
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected > 0 {
			// Reaction removed; counter goes down but never below zero
			added = false
			return tx.Model(&community.Post{}).
				Where("id = ? AND "+counterColumn+" > 0", postID).
				Updates(map[string]interface{}{
					counterColumn: gorm.Expr(counterColumn + " - 1"),
					"updated_at":  time.Now(),
				}).Error
		}

		reaction, err := community.NewReaction(userID, postID, kind)
		if err != nil {
			return err
		}
		if err := tx.Create(reaction).Error; err != nil {
			return err
		}

		added = true
		update := tx.Model(&community.Post{}).
			Where("id = ?", postID).
			Updates(map[string]interface{}{
				counterColumn: gorm.Expr(counterColumn + " + 1"),
				"updated_at":  time.Now(),
			})
		if update.Error != nil {
			return update.Error
		}
		if update.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return added, nil
}

// CountForPost counts reactions of a kind on a post
func (r *GormReactionRepository) CountForPost(ctx context.Context, postID uuid.UUID, kind community.ReactionKind) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&community.Reaction{}).
		Where("post_id = ? AND kind = ?", postID, kind).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormReactionRepository implements ReactionRepository
var _ community.ReactionRepository = (*GormReactionRepository)(nil)

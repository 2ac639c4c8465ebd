package community

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agrihub/backend/internal/domain/community"
	"github.com/agrihub/backend/internal/domain/shared"
)

// CommentService handles replies under feed posts
type CommentService struct {
	commentRepo community.CommentRepository
	postRepo    community.PostRepository
	logger      *zap.Logger
}

// NewCommentService creates a new CommentService
func NewCommentService(
	commentRepo community.CommentRepository,
	postRepo community.PostRepository,
	logger *zap.Logger,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		logger:      logger,
	}
}

// Create replies to a post and bumps its comment count
func (s *CommentService) Create(ctx context.Context, authorID, postID uuid.UUID, req CreateCommentRequest) (*CommentResponse, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment, err := community.NewComment(authorID, postID, req.Body)
	if err != nil {
		return nil, err
	}
	if err := s.commentRepo.Save(ctx, comment); err != nil {
		return nil, err
	}

	post.IncrementComments()
	if err := s.postRepo.Save(ctx, post); err != nil {
		s.logger.Warn("failed to bump comment count",
			zap.String("post_id", postID.String()), zap.Error(err))
	}

	return ToCommentResponse(comment), nil
}

// ListForPost lists comments under a post, oldest first
func (s *CommentService) ListForPost(ctx context.Context, postID uuid.UUID, page, pageSize int) ([]CommentResponse, int64, error) {
	filter := community.CommentFilter{
		Filter: shared.Filter{
			Page:     page,
			PageSize: pageSize,
			OrderBy:  "created_at",
			OrderDir: "asc",
		},
	}

	comments, err := s.commentRepo.FindAllForPost(ctx, postID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.commentRepo.CountForPost(ctx, postID)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CommentResponse, len(comments))
	for i := range comments {
		responses[i] = *ToCommentResponse(&comments[i])
	}
	return responses, total, nil
}

// Update edits the author's own comment
func (s *CommentService) Update(ctx context.Context, authorID, id uuid.UUID, req CreateCommentRequest) (*CommentResponse, error) {
	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID() != authorID {
		return nil, shared.ErrForbidden
	}

	if err := comment.Update(req.Body); err != nil {
		return nil, err
	}
	if err := s.commentRepo.Save(ctx, comment); err != nil {
		return nil, err
	}

	return ToCommentResponse(comment), nil
}

// Delete removes the author's own comment and drops the post counter
func (s *CommentService) Delete(ctx context.Context, authorID, id uuid.UUID) error {
	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if comment.AuthorID() != authorID {
		return shared.ErrForbidden
	}

	if err := s.commentRepo.DeleteForAuthor(ctx, authorID, id); err != nil {
		return err
	}

	post, err := s.postRepo.FindByID(ctx, comment.PostID)
	if err == nil {
		post.DecrementComments()
		if err := s.postRepo.Save(ctx, post); err != nil {
			s.logger.Warn("failed to drop comment count",
				zap.String("post_id", comment.PostID.String()), zap.Error(err))
		}
	}

	return nil
}

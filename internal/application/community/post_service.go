package community

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agrihub/backend/internal/domain/community"
	"github.com/agrihub/backend/internal/domain/shared"
)

// PostService handles the community feed
type PostService struct {
	postRepo     community.PostRepository
	reactionRepo community.ReactionRepository
	eventBus     shared.EventPublisher
	logger       *zap.Logger
}

// NewPostService creates a new PostService
func NewPostService(
	postRepo community.PostRepository,
	reactionRepo community.ReactionRepository,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *PostService {
	return &PostService{
		postRepo:     postRepo,
		reactionRepo: reactionRepo,
		eventBus:     eventBus,
		logger:       logger,
	}
}

// Create publishes a post to the feed
func (s *PostService) Create(ctx context.Context, authorID uuid.UUID, req CreatePostRequest) (*PostResponse, error) {
	post, err := community.NewPost(authorID, community.PostTopic(req.Topic), req.Title, req.Body)
	if err != nil {
		return nil, err
	}
	if req.PhotoURLs != "" {
		post.SetPhotoURLs(req.PhotoURLs)
	}

	if err := s.postRepo.Save(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info("post created",
		zap.String("post_id", post.ID.String()),
		zap.String("topic", post.Topic.String()))

	s.publishEvents(ctx, post)

	return ToPostResponse(post), nil
}

// GetByID retrieves a post with the viewer's toggle state attached
func (s *PostService) GetByID(ctx context.Context, viewerID, id uuid.UUID) (*PostResponse, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToPostResponse(post)
	s.attachViewerState(ctx, viewerID, resp)
	return resp, nil
}

// Feed lists posts community-wide with filtering
func (s *PostService) Feed(ctx context.Context, viewerID uuid.UUID, filter PostListFilter) ([]PostResponse, int64, error) {
	domainFilter, err := s.buildFilter(filter)
	if err != nil {
		return nil, 0, err
	}

	posts, err := s.postRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.postRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return s.toResponses(ctx, viewerID, posts), total, nil
}

// Bookmarks lists the viewer's bookmarked posts
func (s *PostService) Bookmarks(ctx context.Context, viewerID uuid.UUID, filter PostListFilter) ([]PostResponse, int64, error) {
	domainFilter, err := s.buildFilter(filter)
	if err != nil {
		return nil, 0, err
	}

	posts, err := s.postRepo.FindBookmarkedByUser(ctx, viewerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return s.toResponses(ctx, viewerID, posts), int64(len(posts)), nil
}

// Update edits the author's own post
func (s *PostService) Update(ctx context.Context, authorID, id uuid.UUID, req UpdatePostRequest) (*PostResponse, error) {
	post, err := s.findForAuthor(ctx, authorID, id)
	if err != nil {
		return nil, err
	}

	if err := post.Update(community.PostTopic(req.Topic), req.Title, req.Body); err != nil {
		return nil, err
	}
	if err := s.postRepo.Save(ctx, post); err != nil {
		return nil, err
	}

	return ToPostResponse(post), nil
}

// Delete removes the author's own post
func (s *PostService) Delete(ctx context.Context, authorID, id uuid.UUID) error {
	return s.postRepo.DeleteForAuthor(ctx, authorID, id)
}

// Toggle flips a like or bookmark on a post and reports the new state.
// The reaction row and the post counter move together in one
// transaction so the counter can never drift by more than a crash.
func (s *PostService) Toggle(ctx context.Context, userID, postID uuid.UUID, kind community.ReactionKind) (*ToggleResponse, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_REACTION", "Reaction kind is not valid")
	}

	if _, err := s.postRepo.FindByID(ctx, postID); err != nil {
		return nil, err
	}

	active, err := s.reactionRepo.ToggleTx(ctx, userID, postID, kind)
	if err != nil {
		return nil, err
	}

	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	count := post.LikeCount
	if kind == community.ReactionKindBookmark {
		count = post.BookmarkCount
	}

	return &ToggleResponse{
		PostID: postID,
		Kind:   string(kind),
		Active: active,
		Count:  count,
	}, nil
}

func (s *PostService) findForAuthor(ctx context.Context, authorID, id uuid.UUID) (*community.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.AuthorID() != authorID {
		return nil, shared.ErrForbidden
	}
	return post, nil
}

func (s *PostService) buildFilter(filter PostListFilter) (community.PostFilter, error) {
	domainFilter := community.PostFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  "created_at",
			OrderDir: "desc",
		},
	}

	if filter.Topic != "" {
		topic := community.PostTopic(filter.Topic)
		if !topic.IsValid() {
			return community.PostFilter{}, shared.NewDomainError("INVALID_TOPIC", "Post topic is not valid")
		}
		domainFilter.Topic = &topic
	}
	if filter.AuthorID != nil {
		domainFilter.AuthorID = filter.AuthorID
	}
	if filter.Search != "" {
		domainFilter.Search = &filter.Search
	}

	return domainFilter, nil
}

// toResponses maps posts and attaches the viewer's toggle state to each
func (s *PostService) toResponses(ctx context.Context, viewerID uuid.UUID, posts []community.Post) []PostResponse {
	responses := make([]PostResponse, len(posts))
	for i := range posts {
		responses[i] = *ToPostResponse(&posts[i])
		s.attachViewerState(ctx, viewerID, &responses[i])
	}
	return responses
}

func (s *PostService) attachViewerState(ctx context.Context, viewerID uuid.UUID, resp *PostResponse) {
	if viewerID == uuid.Nil {
		return
	}
	if _, err := s.reactionRepo.Find(ctx, viewerID, resp.ID, community.ReactionKindLike); err == nil {
		resp.Liked = true
	} else if !errors.Is(err, shared.ErrNotFound) {
		s.logger.Warn("reaction lookup failed", zap.Error(err))
	}
	if _, err := s.reactionRepo.Find(ctx, viewerID, resp.ID, community.ReactionKindBookmark); err == nil {
		resp.Bookmarked = true
	} else if !errors.Is(err, shared.ErrNotFound) {
		s.logger.Warn("reaction lookup failed", zap.Error(err))
	}
}

func (s *PostService) publishEvents(ctx context.Context, post *community.Post) {
	if s.eventBus == nil {
		return
	}
	for _, event := range post.GetDomainEvents() {
		if err := s.eventBus.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish event",
				zap.String("event_type", event.EventType()), zap.Error(err))
		}
	}
	post.ClearDomainEvents()
}

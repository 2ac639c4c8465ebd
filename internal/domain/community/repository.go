package community

import (
	"context"

	"github.com/google/uuid"

	"github.com/agrihub/backend/internal/domain/shared"
)

// PostFilter defines filtering options for feed queries
type PostFilter struct {
	shared.Filter
	Topic    *PostTopic
	AuthorID *uuid.UUID
	Search   *string // matches title or body
}

// PostRepository defines the interface for post persistence. The feed
// is community-wide; editing is author-scoped.
type PostRepository interface {
	// FindByID finds a post by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Post, error)

	// FindAll finds posts across the community with filtering
	FindAll(ctx context.Context, filter PostFilter) ([]Post, error)

	// FindBookmarkedByUser finds posts the user has bookmarked
	FindBookmarkedByUser(ctx context.Context, userID uuid.UUID, filter PostFilter) ([]Post, error)

	// Save creates or updates a post
	Save(ctx context.Context, post *Post) error

	// DeleteForAuthor soft deletes a post for its author
	DeleteForAuthor(ctx context.Context, authorID, id uuid.UUID) error

	// Count counts posts with optional filters
	Count(ctx context.Context, filter PostFilter) (int64, error)
}

// ReactionRepository defines the interface for reaction persistence.
// ToggleTx flips the user's reaction and moves the post counter by one
// in a single transaction.
type ReactionRepository interface {
	// Find returns the user's reaction of the given kind on a post, or
	// shared.ErrNotFound.
	Find(ctx context.Context, userID, postID uuid.UUID, kind ReactionKind) (*Reaction, error)

	// ToggleTx inserts or removes the reaction row and adjusts the
	// post's denormalized counter atomically. Returns true when the
	// reaction is now present.
	ToggleTx(ctx context.Context, userID, postID uuid.UUID, kind ReactionKind) (bool, error)

	// CountForPost counts reactions of a kind on a post
	CountForPost(ctx context.Context, postID uuid.UUID, kind ReactionKind) (int64, error)
}

// CommentFilter defines filtering options for comment queries
type CommentFilter struct {
	shared.Filter
}

// CommentRepository defines the interface for comment persistence
type CommentRepository interface {
	// FindByID finds a comment by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Comment, error)

	// FindAllForPost finds comments under a post
	FindAllForPost(ctx context.Context, postID uuid.UUID, filter CommentFilter) ([]Comment, error)

	// Save creates or updates a comment
	Save(ctx context.Context, comment *Comment) error

	// DeleteForAuthor soft deletes a comment for its author
	DeleteForAuthor(ctx context.Context, authorID, id uuid.UUID) error

	// CountForPost counts comments under a post
	CountForPost(ctx context.Context, postID uuid.UUID) (int64, error)
}

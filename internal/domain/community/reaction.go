package community

import (
	"github.com/google/uuid"

	"github.com/agrihub/backend/internal/domain/shared"
)

// ReactionKind distinguishes likes from bookmarks
type ReactionKind string

const (
	ReactionKindLike     ReactionKind = "LIKE"
	ReactionKindBookmark ReactionKind = "BOOKMARK"
)

// IsValid checks if the kind is a valid ReactionKind
func (k ReactionKind) IsValid() bool {
	return k == ReactionKindLike || k == ReactionKindBookmark
}

// Reaction records one user's toggle state on a post. At most one row
// exists per (user, post, kind); the repository enforces uniqueness.
type Reaction struct {
	shared.BaseEntity
	UserID uuid.UUID    `json:"user_id"`
	PostID uuid.UUID    `json:"post_id"`
	Kind   ReactionKind `json:"kind"`
}

// NewReaction creates a new reaction row
func NewReaction(userID, postID uuid.UUID, kind ReactionKind) (*Reaction, error) {
	if userID == uuid.Nil || postID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REACTION", "Reaction needs a user and a post")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_REACTION", "Reaction kind is not valid")
	}

	return &Reaction{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		PostID:     postID,
		Kind:       kind,
	}, nil
}

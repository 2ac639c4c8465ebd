package community

import (
	"time"

	"github.com/google/uuid"

	"github.com/agrihub/backend/internal/domain/shared"
)

// Comment represents a reply under a community post
type Comment struct {
	shared.OwnedAggregateRoot
	PostID uuid.UUID `json:"post_id"`
	Body   string    `json:"body"`
}

// NewComment creates a new comment
func NewComment(authorID, postID uuid.UUID, body string) (*Comment, error) {
	if postID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_POST", "Comment must reference a post")
	}
	if body == "" {
		return nil, shared.NewDomainError("INVALID_BODY", "Comment body cannot be empty")
	}
	if len(body) > 2000 {
		return nil, shared.NewDomainError("INVALID_BODY", "Comment body cannot exceed 2000 characters")
	}

	return &Comment{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(authorID),
		PostID:             postID,
		Body:               body,
	}, nil
}

// AuthorID returns the comment author
func (c *Comment) AuthorID() uuid.UUID {
	return c.OwnerID
}

// Update edits the comment body
func (c *Comment) Update(body string) error {
	if body == "" {
		return shared.NewDomainError("INVALID_BODY", "Comment body cannot be empty")
	}
	if len(body) > 2000 {
		return shared.NewDomainError("INVALID_BODY", "Comment body cannot exceed 2000 characters")
	}

	c.Body = body
	c.UpdatedAt = time.Now()

	return nil
}

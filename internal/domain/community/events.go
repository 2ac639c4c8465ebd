package community

import (
	"github.com/google/uuid"

	"github.com/agrihub/backend/internal/domain/shared"
)

// PostCreatedEvent is raised when a new post hits the feed. Gamification
// counts it as farm activity.
type PostCreatedEvent struct {
	shared.BaseDomainEvent
	PostID uuid.UUID `json:"post_id"`
	Topic  PostTopic `json:"topic"`
	Title  string    `json:"title"`
}

// EventType returns the event type name
func (e *PostCreatedEvent) EventType() string {
	return "PostCreated"
}

// NewPostCreatedEvent creates a new PostCreatedEvent
func NewPostCreatedEvent(post *Post) *PostCreatedEvent {
	return &PostCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("PostCreated", "Post", post.ID, post.OwnerID),
		PostID:          post.ID,
		Topic:           post.Topic,
		Title:           post.Title,
	}
}

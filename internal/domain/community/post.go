package community

import (
	"time"

	"github.com/google/uuid"

	"github.com/agrihub/backend/internal/domain/shared"
)

// PostTopic classifies a community post
type PostTopic string

const (
	PostTopicQuestion    PostTopic = "QUESTION"     // Asking for advice
	PostTopicTip         PostTopic = "TIP"          // Sharing a technique
	PostTopicShowcase    PostTopic = "SHOWCASE"     // Photos of the farm
	PostTopicMarketTalk  PostTopic = "MARKET_TALK"  // Prices and buyers
	PostTopicPestAlert   PostTopic = "PEST_ALERT"   // Outbreak warnings
	PostTopicGeneralChat PostTopic = "GENERAL_CHAT" //
)

// IsValid checks if the topic is a valid PostTopic
func (t PostTopic) IsValid() bool {
	switch t {
	case PostTopicQuestion, PostTopicTip, PostTopicShowcase,
		PostTopicMarketTalk, PostTopicPestAlert, PostTopicGeneralChat:
		return true
	}
	return false
}

// String returns the string representation of PostTopic
func (t PostTopic) String() string {
	return string(t)
}

// Post represents a community feed post aggregate root. Like and
// bookmark counts are denormalized; per-user toggle state lives in
// Reaction rows and the service keeps the two consistent.
type Post struct {
	shared.OwnedAggregateRoot
	Topic         PostTopic `json:"topic"`
	Title         string    `json:"title"`
	Body          string    `json:"body"`
	PhotoURLs     string    `json:"photo_urls"` // JSON array of photo URLs
	LikeCount     int64     `json:"like_count"`
	BookmarkCount int64     `json:"bookmark_count"`
	CommentCount  int64     `json:"comment_count"`
}

// NewPost creates a new community post
func NewPost(authorID uuid.UUID, topic PostTopic, title, body string) (*Post, error) {
	if !topic.IsValid() {
		return nil, shared.NewDomainError("INVALID_TOPIC", "Post topic is not valid")
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Post title cannot be empty")
	}
	if len(title) > 200 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Post title cannot exceed 200 characters")
	}
	if body == "" {
		return nil, shared.NewDomainError("INVALID_BODY", "Post body cannot be empty")
	}
	if len(body) > 10000 {
		return nil, shared.NewDomainError("INVALID_BODY", "Post body cannot exceed 10000 characters")
	}

	post := &Post{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(authorID),
		Topic:              topic,
		Title:              title,
		Body:               body,
	}

	post.AddDomainEvent(NewPostCreatedEvent(post))

	return post, nil
}

// AuthorID returns the owner of the post
func (p *Post) AuthorID() uuid.UUID {
	return p.OwnerID
}

// Update edits the post content
func (p *Post) Update(topic PostTopic, title, body string) error {
	if !topic.IsValid() {
		return shared.NewDomainError("INVALID_TOPIC", "Post topic is not valid")
	}
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Post title cannot be empty")
	}
	if body == "" {
		return shared.NewDomainError("INVALID_BODY", "Post body cannot be empty")
	}

	p.Topic = topic
	p.Title = title
	p.Body = body
	p.UpdatedAt = time.Now()

	return nil
}

// SetPhotoURLs sets the post photo URLs (JSON array)
func (p *Post) SetPhotoURLs(urls string) {
	p.PhotoURLs = urls
	p.UpdatedAt = time.Now()
}

// ApplyReaction moves the matching counter by exactly one in the given
// direction. Counters never go below zero.
func (p *Post) ApplyReaction(kind ReactionKind, added bool) error {
	delta := int64(1)
	if !added {
		delta = -1
	}

	switch kind {
	case ReactionKindLike:
		if p.LikeCount+delta < 0 {
			return shared.NewDomainError("INVALID_STATE", "Like count cannot go negative")
		}
		p.LikeCount += delta
	case ReactionKindBookmark:
		if p.BookmarkCount+delta < 0 {
			return shared.NewDomainError("INVALID_STATE", "Bookmark count cannot go negative")
		}
		p.BookmarkCount += delta
	default:
		return shared.NewDomainError("INVALID_REACTION", "Reaction kind is not valid")
	}

	p.UpdatedAt = time.Now()
	return nil
}

// IncrementComments bumps the denormalized comment count
func (p *Post) IncrementComments() {
	p.CommentCount++
	p.UpdatedAt = time.Now()
}

// DecrementComments drops the denormalized comment count
func (p *Post) DecrementComments() {
	if p.CommentCount > 0 {
		p.CommentCount--
	}
	p.UpdatedAt = time.Now()
}

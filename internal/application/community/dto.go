package community

import (
	"time"

	"github.com/google/uuid"

	"github.com/agrihub/backend/internal/domain/community"
)

// CreatePostRequest contains input for publishing a feed post
type CreatePostRequest struct {
	Topic     string `json:"topic" binding:"required"`
	Title     string `json:"title" binding:"required"`
	Body      string `json:"body" binding:"required"`
	PhotoURLs string `json:"photo_urls"`
}

// UpdatePostRequest contains input for editing a post
type UpdatePostRequest struct {
	Topic string `json:"topic" binding:"required"`
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}

// PostListFilter contains query options for the feed
type PostListFilter struct {
	Topic    string     `form:"topic"`
	AuthorID *uuid.UUID `form:"author_id"`
	Search   string     `form:"search"`
	Page     int        `form:"page"`
	PageSize int        `form:"page_size" binding:"omitempty,max=100"`
}

// PostResponse is the client shape of a post. Liked and Bookmarked
// reflect the requesting user's toggle state.
type PostResponse struct {
	ID            uuid.UUID `json:"id"`
	AuthorID      uuid.UUID `json:"author_id"`
	Topic         string    `json:"topic"`
	Title         string    `json:"title"`
	Body          string    `json:"body"`
	PhotoURLs     string    `json:"photo_urls,omitempty"`
	LikeCount     int64     `json:"like_count"`
	BookmarkCount int64     `json:"bookmark_count"`
	CommentCount  int64     `json:"comment_count"`
	Liked         bool      `json:"liked"`
	Bookmarked    bool      `json:"bookmarked"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToPostResponse maps a post to its client shape
func ToPostResponse(p *community.Post) *PostResponse {
	return &PostResponse{
		ID:            p.ID,
		AuthorID:      p.AuthorID(),
		Topic:         p.Topic.String(),
		Title:         p.Title,
		Body:          p.Body,
		PhotoURLs:     p.PhotoURLs,
		LikeCount:     p.LikeCount,
		BookmarkCount: p.BookmarkCount,
		CommentCount:  p.CommentCount,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ToggleResponse reports the new toggle state after a like or bookmark
type ToggleResponse struct {
	PostID uuid.UUID `json:"post_id"`
	Kind   string    `json:"kind"`
	Active bool      `json:"active"`
	Count  int64     `json:"count"`
}

// CreateCommentRequest contains input for replying to a post
type CreateCommentRequest struct {
	Body string `json:"body" binding:"required"`
}

// CommentResponse is the client shape of a comment
type CommentResponse struct {
	ID        uuid.UUID `json:"id"`
	PostID    uuid.UUID `json:"post_id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// ToCommentResponse maps a comment to its client shape
func ToCommentResponse(c *community.Comment) *CommentResponse {
	return &CommentResponse{
		ID:        c.ID,
		PostID:    c.PostID,
		AuthorID:  c.AuthorID(),
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
	}
}

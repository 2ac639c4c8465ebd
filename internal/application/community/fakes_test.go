package community

import (
	"context"

	"github.com/google/uuid"

	"github.com/agrihub/backend/internal/domain/community"
	"github.com/agrihub/backend/internal/domain/shared"
)

type capturingEventBus struct {
	events []shared.DomainEvent
}

func (b *capturingEventBus) Publish(_ context.Context, events ...shared.DomainEvent) error {
	b.events = append(b.events, events...)
	return nil
}

func (b *capturingEventBus) eventTypes() []string {
	types := make([]string, len(b.events))
	for i, e := range b.events {
		types[i] = e.EventType()
	}
	return types
}

// fakePostRepo is an in-memory PostRepository sharing state with
// fakeReactionRepo so bookmark lookups work.
type fakePostRepo struct {
	posts     map[uuid.UUID]*community.Post
	reactions *fakeReactionRepo
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[uuid.UUID]*community.Post)}
}

func (r *fakePostRepo) FindByID(_ context.Context, id uuid.UUID) (*community.Post, error) {
	if p, ok := r.posts[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakePostRepo) FindAll(_ context.Context, filter community.PostFilter) ([]community.Post, error) {
	var out []community.Post
	for _, p := range r.posts {
		if matchesPostFilter(p, filter) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePostRepo) FindBookmarkedByUser(_ context.Context, userID uuid.UUID, filter community.PostFilter) ([]community.Post, error) {
	var out []community.Post
	for _, p := range r.posts {
		if !matchesPostFilter(p, filter) {
			continue
		}
		if r.reactions != nil && r.reactions.has(userID, p.ID, community.ReactionKindBookmark) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePostRepo) Save(_ context.Context, post *community.Post) error {
	copied := *post
	r.posts[post.ID] = &copied
	return nil
}

func (r *fakePostRepo) DeleteForAuthor(_ context.Context, authorID, id uuid.UUID) error {
	if p, ok := r.posts[id]; ok && p.AuthorID() == authorID {
		delete(r.posts, id)
		return nil
	}
	return shared.ErrNotFound
}

func (r *fakePostRepo) Count(_ context.Context, filter community.PostFilter) (int64, error) {
	var count int64
	for _, p := range r.posts {
		if matchesPostFilter(p, filter) {
			count++
		}
	}
	return count, nil
}

func matchesPostFilter(p *community.Post, filter community.PostFilter) bool {
	if filter.Topic != nil && p.Topic != *filter.Topic {
		return false
	}
	if filter.AuthorID != nil && p.AuthorID() != *filter.AuthorID {
		return false
	}
	return true
}

type reactionKey struct {
	userID uuid.UUID
	postID uuid.UUID
	kind   community.ReactionKind
}

// fakeReactionRepo emulates the toggle transaction against the shared
// post store
type fakeReactionRepo struct {
	rows     map[reactionKey]*community.Reaction
	postRepo *fakePostRepo
}

func newFakeReactionRepo(postRepo *fakePostRepo) *fakeReactionRepo {
	r := &fakeReactionRepo{rows: make(map[reactionKey]*community.Reaction), postRepo: postRepo}
	postRepo.reactions = r
	return r
}

func (r *fakeReactionRepo) has(userID, postID uuid.UUID, kind community.ReactionKind) bool {
	_, ok := r.rows[reactionKey{userID, postID, kind}]
	return ok
}

func (r *fakeReactionRepo) Find(_ context.Context, userID, postID uuid.UUID, kind community.ReactionKind) (*community.Reaction, error) {
	if row, ok := r.rows[reactionKey{userID, postID, kind}]; ok {
		copied := *row
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeReactionRepo) ToggleTx(_ context.Context, userID, postID uuid.UUID, kind community.ReactionKind) (bool, error) {
	post, ok := r.postRepo.posts[postID]
	if !ok {
		return false, shared.ErrNotFound
	}

	key := reactionKey{userID, postID, kind}
	if _, exists := r.rows[key]; exists {
		delete(r.rows, key)
		if err := post.ApplyReaction(kind, false); err != nil {
			return false, err
		}
		return false, nil
	}

	reaction, err := community.NewReaction(userID, postID, kind)
	if err != nil {
		return false, err
	}
	r.rows[key] = reaction
	if err := post.ApplyReaction(kind, true); err != nil {
		return false, err
	}
	return true, nil
}

func (r *fakeReactionRepo) CountForPost(_ context.Context, postID uuid.UUID, kind community.ReactionKind) (int64, error) {
	var count int64
	for key := range r.rows {
		if key.postID == postID && key.kind == kind {
			count++
		}
	}
	return count, nil
}

// fakeCommentRepo is an in-memory CommentRepository
type fakeCommentRepo struct {
	comments map[uuid.UUID]*community.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[uuid.UUID]*community.Comment)}
}

func (r *fakeCommentRepo) FindByID(_ context.Context, id uuid.UUID) (*community.Comment, error) {
	if c, ok := r.comments[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeCommentRepo) FindAllForPost(_ context.Context, postID uuid.UUID, _ community.CommentFilter) ([]community.Comment, error) {
	var out []community.Comment
	for _, c := range r.comments {
		if c.PostID == postID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) Save(_ context.Context, comment *community.Comment) error {
	copied := *comment
	r.comments[comment.ID] = &copied
	return nil
}

func (r *fakeCommentRepo) DeleteForAuthor(_ context.Context, authorID, id uuid.UUID) error {
	if c, ok := r.comments[id]; ok && c.AuthorID() == authorID {
		delete(r.comments, id)
		return nil
	}
	return shared.ErrNotFound
}

func (r *fakeCommentRepo) CountForPost(_ context.Context, postID uuid.UUID) (int64, error) {
	var count int64
	for _, c := range r.comments {
		if c.PostID == postID {
			count++
		}
	}
	return count, nil
}

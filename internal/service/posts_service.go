package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/social-network/internal/domain"
	"github.com/spec-kit/social-network/internal/events"
	"github.com/spec-kit/social-network/internal/repository"
	apperrors "github.com/spec-kit/social-network/pkg/util"
)

// PostCreateInput carries validated post fields.
type PostCreateInput struct {
	Title       string
	Description string
	ImageURL    *string
}

// CommentPage is a paginated slice of a post's comments.
type CommentPage struct {
	Total    int              `json:"total"`
	Comments []domain.Comment `json:"comments"`
}

// PostsService implements publication, like and comment flows.
type PostsService struct {
	posts      repository.PostRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewPostsService builds the service.
func NewPostsService(posts repository.PostRepository, users repository.UserRepository, dispatcher events.Dispatcher) *PostsService {
	return &PostsService{posts: posts, users: users, dispatcher: dispatcher}
}

// Create stores a new post authored by the caller.
func (s *PostsService) Create(ctx context.Context, authorID string, in PostCreateInput) (*domain.Post, error) {
	post := &domain.Post{
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		AuthorID:    authorID,
	}
	if err := s.posts.Insert(ctx, post); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.EventPostCreated, authorID, events.PostCreatedPayload{
		PostID: post.ID,
		Title:  post.Title,
	})
	return post, nil
}

// List returns active posts with author info, like counts and the total
// matching count for pagination.
func (s *PostsService) List(ctx context.Context, filter repository.PostFilter) ([]repository.ListedPost, int64, error) {
	posts, total, err := s.posts.List(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.NewInternalError(err)
	}
	return posts, total, nil
}

// Get returns an active post by id.
func (s *PostsService) Get(ctx context.Context, postID string) (*domain.Post, error) {
	return s.activePost(ctx, postID)
}

// ByUser returns the latest active posts of a user.
func (s *PostsService) ByUser(ctx context.Context, userID string, limit int64) ([]domain.Post, error) {
	posts, err := s.posts.FindByAuthor(ctx, userID, limit)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return posts, nil
}

// SoftDelete marks a post deleted. Only the author or an administrator
// may do it; the record stays in the collection.
func (s *PostsService) SoftDelete(ctx context.Context, postID string, actor *domain.User) error {
	post, err := s.activePost(ctx, postID)
	if err != nil {
		return err
	}

	if post.AuthorID != actor.ID && !actor.IsAdmin() {
		return apperrors.NewForbidden("only the author or an administrator can delete this post")
	}

	if err := s.posts.SoftDelete(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("post", nil)
		}
		return apperrors.NewInternalError(err)
	}
	return nil
}

// AddLike records a like; at most one per user per post.
func (s *PostsService) AddLike(ctx context.Context, postID, userID string) (*domain.Post, error) {
	post, err := s.activePost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.LikedBy(userID) {
		return nil, apperrors.NewConflict("post already liked", "like")
	}

	updated, err := s.posts.AddLike(ctx, postID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("post", nil)
		}
		return nil, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.EventPostLiked, userID, events.PostLikedPayload{
		PostID:       postID,
		PostAuthorID: post.AuthorID,
	})
	return updated, nil
}

// RemoveLike removes a previously recorded like.
func (s *PostsService) RemoveLike(ctx context.Context, postID, userID string) (*domain.Post, error) {
	post, err := s.activePost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.LikedBy(userID) {
		return nil, apperrors.NewConflict("post not liked yet", "like")
	}

	updated, err := s.posts.RemoveLike(ctx, postID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("post", nil)
		}
		return nil, apperrors.NewInternalError(err)
	}
	return updated, nil
}

// AddComment appends a comment subdocument to the post.
func (s *PostsService) AddComment(ctx context.Context, postID, authorID, content string) (*domain.Post, error) {
	post, err := s.activePost(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := domain.Comment{
		ID:        uuid.NewString(),
		Content:   content,
		AuthorID:  authorID,
		CreatedAt: time.Now().UTC(),
	}

	updated, err := s.posts.AddComment(ctx, postID, comment)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("post", nil)
		}
		return nil, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.EventCommentAdded, authorID, events.CommentAddedPayload{
		PostID:       postID,
		CommentID:    comment.ID,
		PostAuthorID: post.AuthorID,
	})
	return updated, nil
}

// UpdateComment edits a comment; only its author may do it. The edited
// flag is set permanently.
func (s *PostsService) UpdateComment(ctx context.Context, postID, commentID, actorID, content string) (*domain.Post, error) {
	post, err := s.activePost(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment, ok := post.CommentByID(commentID)
	if !ok {
		return nil, apperrors.NewNotFound("comment", nil)
	}
	if comment.AuthorID != actorID {
		return nil, apperrors.NewForbidden("only the comment author can edit it")
	}

	updated, err := s.posts.UpdateComment(ctx, postID, commentID, content)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("comment", nil)
		}
		return nil, apperrors.NewInternalError(err)
	}
	return updated, nil
}

// Comments returns a page of a post's comments, newest first.
func (s *PostsService) Comments(ctx context.Context, postID string, offset, limit int) (*CommentPage, error) {
	post, err := s.activePost(ctx, postID)
	if err != nil {
		return nil, err
	}

	comments := append([]domain.Comment{}, post.Comments...)
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})

	if limit <= 0 {
		limit = 5
	}
	if offset < 0 {
		offset = 0
	}
	total := len(comments)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	return &CommentPage{Total: total, Comments: comments[offset:end]}, nil
}

func (s *PostsService) activePost(ctx context.Context, postID string) (*domain.Post, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("post", nil)
		}
		return nil, apperrors.NewInternalError(err)
	}
	return post, nil
}

func (s *PostsService) publish(ctx context.Context, typ events.EventType, actorID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      typ,
		ActorID:   actorID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
}

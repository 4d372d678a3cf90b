package service

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/spec-kit/social-network/internal/domain"
	"github.com/spec-kit/social-network/internal/repository"
)

// fakeUserRepo is an in-memory credential store honoring the adapter
// contract, including duplicate-key reporting on insert.
type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[string]*domain.User
	nextID int

	insertErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Insert(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.insertErr != nil {
		return r.insertErr
	}
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return &repository.DuplicateIdentifierError{Field: "username"}
		}
		if existing.Email == user.Email {
			return &repository.DuplicateIdentifierError{Field: "email"}
		}
	}

	r.nextID++
	user.ID = "user-" + strconv.Itoa(r.nextID)
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) FindByIdentifier(_ context.Context, identifier string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == strings.ToLower(identifier) || user.Username == identifier {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) SetActive(_ context.Context, id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.Active = active
	return nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, *user)
	}
	return users, nil
}

func (r *fakeUserRepo) delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
}

// fakePostRepo is an in-memory post store.
type fakePostRepo struct {
	mu     sync.Mutex
	posts  map[string]*domain.Post
	nextID int
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[string]*domain.Post)}
}

func (r *fakePostRepo) Insert(_ context.Context, post *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	post.ID = "post-" + strconv.Itoa(r.nextID)
	if post.Likes == nil {
		post.Likes = []string{}
	}
	if post.Comments == nil {
		post.Comments = []domain.Comment{}
	}
	post.CreatedAt = time.Now().UTC()
	post.UpdatedAt = post.CreatedAt
	clone := clonePost(post)
	r.posts[post.ID] = &clone
	return nil
}

func (r *fakePostRepo) FindByID(_ context.Context, id string) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok || post.Deleted {
		return nil, repository.ErrNotFound
	}
	clone := clonePost(post)
	return &clone, nil
}

func (r *fakePostRepo) List(_ context.Context, filter repository.PostFilter) ([]repository.ListedPost, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var listed []repository.ListedPost
	for _, post := range r.posts {
		if post.Deleted {
			continue
		}
		if filter.AuthorID != "" && post.AuthorID != filter.AuthorID {
			continue
		}
		listed = append(listed, repository.ListedPost{
			Post:       clonePost(post),
			LikesCount: int64(len(post.Likes)),
		})
	}
	return listed, int64(len(listed)), nil
}

func (r *fakePostRepo) FindByAuthor(_ context.Context, authorID string, limit int64) ([]domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var posts []domain.Post
	for _, post := range r.posts {
		if post.Deleted || post.AuthorID != authorID {
			continue
		}
		posts = append(posts, clonePost(post))
		if limit > 0 && int64(len(posts)) >= limit {
			break
		}
	}
	return posts, nil
}

func (r *fakePostRepo) SoftDelete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok || post.Deleted {
		return repository.ErrNotFound
	}
	post.Deleted = true
	return nil
}

func (r *fakePostRepo) AddLike(_ context.Context, postID, userID string) (*domain.Post, error) {
	return r.mutate(postID, func(post *domain.Post) {
		if !post.LikedBy(userID) {
			post.Likes = append(post.Likes, userID)
		}
	})
}

func (r *fakePostRepo) RemoveLike(_ context.Context, postID, userID string) (*domain.Post, error) {
	return r.mutate(postID, func(post *domain.Post) {
		kept := post.Likes[:0]
		for _, id := range post.Likes {
			if id != userID {
				kept = append(kept, id)
			}
		}
		post.Likes = kept
	})
}

func (r *fakePostRepo) AddComment(_ context.Context, postID string, comment domain.Comment) (*domain.Post, error) {
	return r.mutate(postID, func(post *domain.Post) {
		post.Comments = append(post.Comments, comment)
	})
}

func (r *fakePostRepo) UpdateComment(_ context.Context, postID, commentID, content string) (*domain.Post, error) {
	return r.mutate(postID, func(post *domain.Post) {
		for i := range post.Comments {
			if post.Comments[i].ID == commentID {
				post.Comments[i].Content = content
				post.Comments[i].Edited = true
			}
		}
	})
}

func (r *fakePostRepo) PostsPerUser(_ context.Context, from, to time.Time) ([]repository.UserPostCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int64)
	for _, post := range r.posts {
		if post.Deleted || post.CreatedAt.Before(from) || post.CreatedAt.After(to) {
			continue
		}
		counts[post.AuthorID]++
	}
	result := make([]repository.UserPostCount, 0, len(counts))
	for userID, total := range counts {
		result = append(result, repository.UserPostCount{UserID: userID, TotalPosts: total})
	}
	return result, nil
}

func (r *fakePostRepo) CommentsTotal(_ context.Context, from, to time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total int64
	for _, post := range r.posts {
		if post.Deleted {
			continue
		}
		for _, comment := range post.Comments {
			if !comment.CreatedAt.Before(from) && !comment.CreatedAt.After(to) {
				total++
			}
		}
	}
	return total, nil
}

func (r *fakePostRepo) CommentsPerPost(_ context.Context, from, to time.Time) ([]repository.PostCommentCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []repository.PostCommentCount
	for _, post := range r.posts {
		if post.Deleted {
			continue
		}
		var total int64
		for _, comment := range post.Comments {
			if !comment.CreatedAt.Before(from) && !comment.CreatedAt.After(to) {
				total++
			}
		}
		if total > 0 {
			result = append(result, repository.PostCommentCount{PostID: post.ID, Title: post.Title, TotalComments: total})
		}
	}
	return result, nil
}

func (r *fakePostRepo) mutate(postID string, fn func(*domain.Post)) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[postID]
	if !ok || post.Deleted {
		return nil, repository.ErrNotFound
	}
	fn(post)
	clone := clonePost(post)
	return &clone, nil
}

func clonePost(post *domain.Post) domain.Post {
	clone := *post
	clone.Likes = append([]string{}, post.Likes...)
	clone.Comments = append([]domain.Comment{}, post.Comments...)
	return clone
}

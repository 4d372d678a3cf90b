package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/social-network/internal/api/dto"
	"github.com/spec-kit/social-network/internal/auth"
	"github.com/spec-kit/social-network/internal/repository"
	"github.com/spec-kit/social-network/internal/service"
	"github.com/spec-kit/social-network/internal/storage"
	apperrors "github.com/spec-kit/social-network/pkg/util"
)

// PostsHandler manages publication, like and comment endpoints.
type PostsHandler struct {
	posts  *service.PostsService
	users  *service.UsersService
	images *storage.ImageStore
}

// NewPostsHandler constructs the handler.
func NewPostsHandler(postsService *service.PostsService, usersService *service.UsersService, images *storage.ImageStore) *PostsHandler {
	return &PostsHandler{posts: postsService, users: usersService, images: images}
}

// Create handles POST /posts. Multipart form with optional image file.
func (h *PostsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return validationError(err)
	}

	// an uploaded file wins over an external URL
	var imageURL *string
	if file, err := c.FormFile("image"); err == nil && file != nil {
		url, err := h.images.Save(file)
		if err != nil {
			return err
		}
		imageURL = &url
	} else if req.ImageURL != "" {
		imageURL = &req.ImageURL
	}

	post, err := h.posts.Create(c.Context(), principal.SubjectID, service.PostCreateInput{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    imageURL,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": post})
}

// List handles GET /posts with sorting, author filter and pagination.
func (h *PostsHandler) List(c *fiber.Ctx) error {
	filter := repository.PostFilter{
		AuthorID: c.Query("user_id"),
		Sort:     repository.PostSortDate,
		Offset:   queryInt64(c, "offset", 0),
		Limit:    queryInt64(c, "limit", 10),
	}
	if c.Query("sort_by") == string(repository.PostSortLikes) {
		filter.Sort = repository.PostSortLikes
	}

	posts, total, err := h.posts.List(c.Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": posts, "total": total})
}

// ByUser handles GET /posts/user/:userId.
func (h *PostsHandler) ByUser(c *fiber.Ctx) error {
	posts, err := h.posts.ByUser(c.Context(), c.Params("userId"), queryInt64(c, "limit", 3))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": posts})
}

// Get handles GET /posts/:id.
func (h *PostsHandler) Get(c *fiber.Ctx) error {
	post, err := h.posts.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": post})
}

// Delete handles DELETE /posts/:id (soft delete, author or admin).
func (h *PostsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	// the guard path never hits the store, so the actor's live role is
	// fetched here where the permission decision needs it
	actor, err := h.users.Profile(c.Context(), principal.SubjectID)
	if err != nil {
		return err
	}

	if err := h.posts.SoftDelete(c.Context(), c.Params("id"), actor); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// Like handles POST /posts/:id/likes.
func (h *PostsHandler) Like(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	post, err := h.posts.AddLike(c.Context(), c.Params("id"), principal.SubjectID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": post})
}

// Unlike handles DELETE /posts/:id/likes.
func (h *PostsHandler) Unlike(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	post, err := h.posts.RemoveLike(c.Context(), c.Params("id"), principal.SubjectID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": post})
}

// AddComment handles POST /posts/:id/comments.
func (h *PostsHandler) AddComment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return validationError(err)
	}

	post, err := h.posts.AddComment(c.Context(), c.Params("id"), principal.SubjectID, req.Content)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": post})
}

// UpdateComment handles PUT /posts/:id/comments/:commentId.
func (h *PostsHandler) UpdateComment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return validationError(err)
	}

	post, err := h.posts.UpdateComment(c.Context(), c.Params("id"), c.Params("commentId"), principal.SubjectID, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": post})
}

// Comments handles GET /posts/:id/comments with pagination.
func (h *PostsHandler) Comments(c *fiber.Ctx) error {
	page, err := h.posts.Comments(c.Context(), c.Params("id"),
		int(queryInt64(c, "offset", 0)), int(queryInt64(c, "limit", 5)))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": page})
}

package dto

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// CreatePostRequest is the post-creation payload. The image may come as
// a multipart file or as an external URL; the file wins when both are
// present.
type CreatePostRequest struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	ImageURL    string `json:"image_url" form:"image_url"`
}

// Validate applies post field rules.
func (r CreatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Description, validation.Required, validation.Length(1, 5000)),
		validation.Field(&r.ImageURL, is.URL),
	)
}

// CreateCommentRequest adds or edits a comment.
type CreateCommentRequest struct {
	Content string `json:"content"`
}

// Validate requires non-empty content.
func (r CreateCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.Required, validation.Length(1, 1000)),
	)
}

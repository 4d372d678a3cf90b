package domain

import "time"

// Comment is a subdocument embedded in a post.
type Comment struct {
	ID        string    `bson:"_id" json:"id"`
	Content   string    `bson:"content" json:"content"`
	AuthorID  string    `bson:"author_id" json:"author_id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	Edited    bool      `bson:"edited" json:"edited"`
}

// Post is a publication with its likes and comments.
//
// Likes holds the ids of users who liked the post, at most once each.
// Deleted marks a soft-deleted post; deleted posts stay in the
// collection but are excluded from every listing.
type Post struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	ImageURL    *string   `bson:"image_url,omitempty" json:"image_url,omitempty"`
	AuthorID    string    `bson:"author_id" json:"author_id"`
	Likes       []string  `bson:"likes" json:"likes"`
	Comments    []Comment `bson:"comments" json:"comments"`
	Deleted     bool      `bson:"deleted" json:"-"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// LikedBy reports whether the given user already liked the post.
func (p *Post) LikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// CommentByID returns the embedded comment with the given id, if any.
func (p *Post) CommentByID(commentID string) (*Comment, bool) {
	for i := range p.Comments {
		if p.Comments[i].ID == commentID {
			return &p.Comments[i], true
		}
	}
	return nil, false
}

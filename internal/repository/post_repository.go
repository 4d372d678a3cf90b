package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/spec-kit/social-network/internal/domain"
)

// PostSort selects the ordering of post listings.
type PostSort string

const (
	PostSortDate  PostSort = "date"
	PostSortLikes PostSort = "likes"
)

// PostFilter narrows and paginates post listings.
type PostFilter struct {
	AuthorID string
	Sort     PostSort
	Offset   int64
	Limit    int64
}

// PostAuthor is the projected author joined into a listed post.
type PostAuthor struct {
	ID        string  `bson:"_id" json:"id"`
	Username  string  `bson:"username" json:"username"`
	FirstName string  `bson:"first_name" json:"first_name"`
	LastName  string  `bson:"last_name" json:"last_name"`
	AvatarURL *string `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
}

// ListedPost is a post enriched with its author and like count.
type ListedPost struct {
	domain.Post `bson:",inline"`
	Author      PostAuthor `bson:"author" json:"author"`
	LikesCount  int64      `bson:"likes_count" json:"likes_count"`
}

// UserPostCount aggregates posts authored per user in a range.
type UserPostCount struct {
	UserID     string `bson:"user_id" json:"user_id"`
	FirstName  string `bson:"first_name" json:"first_name"`
	LastName   string `bson:"last_name" json:"last_name"`
	TotalPosts int64  `bson:"total_posts" json:"total_posts"`
}

// PostCommentCount aggregates comments per post in a range.
type PostCommentCount struct {
	PostID        string `bson:"post_id" json:"post_id"`
	Title         string `bson:"title" json:"title"`
	TotalComments int64  `bson:"total_comments" json:"total_comments"`
}

// PostRepository defines persistence access for posts, likes and
// comments.
type PostRepository interface {
	Insert(ctx context.Context, post *domain.Post) error
	// FindByID returns the post only while it is not soft-deleted.
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	List(ctx context.Context, filter PostFilter) ([]ListedPost, int64, error)
	FindByAuthor(ctx context.Context, authorID string, limit int64) ([]domain.Post, error)
	SoftDelete(ctx context.Context, id string) error
	AddLike(ctx context.Context, postID, userID string) (*domain.Post, error)
	RemoveLike(ctx context.Context, postID, userID string) (*domain.Post, error)
	AddComment(ctx context.Context, postID string, comment domain.Comment) (*domain.Post, error)
	UpdateComment(ctx context.Context, postID, commentID, content string) (*domain.Post, error)

	PostsPerUser(ctx context.Context, from, to time.Time) ([]UserPostCount, error)
	CommentsTotal(ctx context.Context, from, to time.Time) (int64, error)
	CommentsPerPost(ctx context.Context, from, to time.Time) ([]PostCommentCount, error)
}

type postRepository struct {
	coll *mongo.Collection
}

// NewPostRepository returns a Mongo-backed implementation.
func NewPostRepository(db *mongo.Database) PostRepository {
	return &postRepository{coll: db.Collection("posts")}
}

func (r *postRepository) Insert(ctx context.Context, post *domain.Post) error {
	now := time.Now().UTC()
	if post.ID == "" {
		post.ID = bson.NewObjectID().Hex()
	}
	if post.Likes == nil {
		post.Likes = []string{}
	}
	if post.Comments == nil {
		post.Comments = []domain.Comment{}
	}
	post.CreatedAt = now
	post.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, post)
	return err
}

func (r *postRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	return r.findOne(ctx, bson.M{"_id": id, "deleted": false})
}

func (r *postRepository) List(ctx context.Context, filter PostFilter) ([]ListedPost, int64, error) {
	match := bson.M{"deleted": false}
	if filter.AuthorID != "" {
		match["author_id"] = filter.AuthorID
	}

	sort := bson.D{{Key: "created_at", Value: -1}}
	if filter.Sort == PostSortLikes {
		sort = bson.D{{Key: "likes_count", Value: -1}, {Key: "created_at", Value: -1}}
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	pipeline := []bson.M{
		{"$match": match},
		{"$addFields": bson.M{
			"likes_count": bson.M{"$size": bson.M{"$ifNull": bson.A{"$likes", bson.A{}}}},
		}},
		{"$sort": sort},
		{"$skip": offset},
		{"$limit": limit},
		{"$lookup": bson.M{
			"from":         "users",
			"localField":   "author_id",
			"foreignField": "_id",
			"as":           "author",
		}},
		{"$unwind": "$author"},
		{"$project": bson.M{
			"title":       1,
			"description": 1,
			"image_url":   1,
			"author_id":   1,
			"likes":       1,
			"likes_count": 1,
			"comments":    1,
			"deleted":     1,
			"created_at":  1,
			"updated_at":  1,
			"author": bson.M{
				"_id":        "$author._id",
				"username":   "$author.username",
				"first_name": "$author.first_name",
				"last_name":  "$author.last_name",
				"avatar_url": "$author.avatar_url",
			},
		}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var posts []ListedPost
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, 0, err
	}

	total, err := r.coll.CountDocuments(ctx, match)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) FindByAuthor(ctx context.Context, authorID string, limit int64) ([]domain.Post, error) {
	if limit <= 0 {
		limit = 3
	}
	opts := options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(limit)
	cursor, err := r.coll.Find(ctx, bson.M{"author_id": authorID, "deleted": false}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []domain.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) SoftDelete(ctx context.Context, id string) error {
	update := bson.M{"$set": bson.M{"deleted": true, "updated_at": time.Now().UTC()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id, "deleted": false}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postRepository) AddLike(ctx context.Context, postID, userID string) (*domain.Post, error) {
	update := bson.M{
		"$addToSet": bson.M{"likes": userID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	}
	return r.findOneAndUpdate(ctx, bson.M{"_id": postID, "deleted": false}, update)
}

func (r *postRepository) RemoveLike(ctx context.Context, postID, userID string) (*domain.Post, error) {
	update := bson.M{
		"$pull": bson.M{"likes": userID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	return r.findOneAndUpdate(ctx, bson.M{"_id": postID, "deleted": false}, update)
}

func (r *postRepository) AddComment(ctx context.Context, postID string, comment domain.Comment) (*domain.Post, error) {
	update := bson.M{
		"$push": bson.M{"comments": comment},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	return r.findOneAndUpdate(ctx, bson.M{"_id": postID, "deleted": false}, update)
}

func (r *postRepository) UpdateComment(ctx context.Context, postID, commentID, content string) (*domain.Post, error) {
	filter := bson.M{"_id": postID, "deleted": false, "comments._id": commentID}
	update := bson.M{"$set": bson.M{
		"comments.$.content": content,
		"comments.$.edited":  true,
		"updated_at":         time.Now().UTC(),
	}}
	return r.findOneAndUpdate(ctx, filter, update)
}

func (r *postRepository) PostsPerUser(ctx context.Context, from, to time.Time) ([]UserPostCount, error) {
	pipeline := []bson.M{
		{"$match": bson.M{
			"created_at": bson.M{"$gte": from, "$lte": to},
			"deleted":    false,
		}},
		{"$group": bson.M{
			"_id":         "$author_id",
			"total_posts": bson.M{"$sum": 1},
		}},
		{"$lookup": bson.M{
			"from":         "users",
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "user",
		}},
		{"$unwind": "$user"},
		{"$project": bson.M{
			"_id":         0,
			"user_id":     "$_id",
			"first_name":  "$user.first_name",
			"last_name":   "$user.last_name",
			"total_posts": 1,
		}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var counts []UserPostCount
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *postRepository) CommentsTotal(ctx context.Context, from, to time.Time) (int64, error) {
	pipeline := []bson.M{
		{"$unwind": "$comments"},
		{"$match": bson.M{
			"comments.created_at": bson.M{"$gte": from, "$lte": to},
			"deleted":             false,
		}},
		{"$count": "total_comments"},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var result []struct {
		TotalComments int64 `bson:"total_comments"`
	}
	if err := cursor.All(ctx, &result); err != nil {
		return 0, err
	}
	if len(result) == 0 {
		return 0, nil
	}
	return result[0].TotalComments, nil
}

func (r *postRepository) CommentsPerPost(ctx context.Context, from, to time.Time) ([]PostCommentCount, error) {
	pipeline := []bson.M{
		{"$unwind": "$comments"},
		{"$match": bson.M{
			"comments.created_at": bson.M{"$gte": from, "$lte": to},
			"deleted":             false,
		}},
		{"$group": bson.M{
			"_id":            "$_id",
			"title":          bson.M{"$first": "$title"},
			"total_comments": bson.M{"$sum": 1},
		}},
		{"$project": bson.M{
			"_id":            0,
			"post_id":        "$_id",
			"title":          1,
			"total_comments": 1,
		}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var counts []PostCommentCount
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *postRepository) findOne(ctx context.Context, filter bson.M) (*domain.Post, error) {
	var post domain.Post
	if err := r.coll.FindOne(ctx, filter).Decode(&post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*domain.Post, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var post domain.Post
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

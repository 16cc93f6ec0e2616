package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anonto42/dura-blog/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const postsCounterID = "posts"

// MongoPostRepository implements PostRepository for MongoDB.
// Integer IDs come from a counters collection so they are never reused.
type MongoPostRepository struct {
	collection *mongo.Collection
	counters   *mongo.Collection
	client     *mongo.Client
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{
		collection: db.Collection("posts"),
		counters:   db.Collection("counters"),
		client:     db.Client(),
	}
}

// EnsureIndexes creates the unique title index and the ordering index
func (r *MongoPostRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "title", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("posts_title_key"),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}},
			Options: options.Index().SetName("posts_created_at_idx"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create post indexes: %w", err)
	}
	return nil
}

func (r *MongoPostRepository) nextID(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": postsCounterID},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate post id: %w", err)
	}
	return counter.Seq, nil
}

// ListPosts returns every post, newest first
func (r *MongoPostRepository) ListPosts(ctx context.Context) ([]models.Post, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}
	return posts, nil
}

// GetPostByID retrieves a post by ID
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id int64) (*models.Post, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// GetPostByTitle retrieves a post by its exact title
func (r *MongoPostRepository) GetPostByTitle(ctx context.Context, title string) (*models.Post, error) {
	return r.findOne(ctx, bson.M{"title": title})
}

func (r *MongoPostRepository) findOne(ctx context.Context, filter bson.M) (*models.Post, error) {
	var post models.Post
	if err := r.collection.FindOne(ctx, filter).Decode(&post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return &post, nil
}

// CreatePost inserts a new post; ID and CreatedAt are assigned here
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	id, err := r.nextID(ctx)
	if err != nil {
		return err
	}
	post.ID = id
	// BSON datetimes carry millisecond precision
	post.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	if _, err := r.collection.InsertOne(ctx, post); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateTitle
		}
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

// UpdatePost replaces title and content of an existing post and returns the stored document
func (r *MongoPostRepository) UpdatePost(ctx context.Context, id int64, title, content string) (*models.Post, error) {
	update := bson.M{
		"$set": bson.M{
			"title":   title,
			"content": content,
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post models.Post
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&post)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, ErrPostNotFound
		case mongo.IsDuplicateKeyError(err):
			return nil, ErrDuplicateTitle
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return &post, nil
}

// DeletePost permanently removes a post by ID
func (r *MongoPostRepository) DeletePost(ctx context.Context, id int64) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

// Ping checks the primary is reachable
func (r *MongoPostRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}

var _ PostRepository = (*MongoPostRepository)(nil)

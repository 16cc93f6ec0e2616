//go:generate go run go.uber.org/mock/mockgen -source=post_repository.go -destination=../mocks/mock_post_repository.go -package=mocks
package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anonto42/dura-blog/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	ListPosts(ctx context.Context) ([]models.Post, error)
	GetPostByID(ctx context.Context, id int64) (*models.Post, error)
	GetPostByTitle(ctx context.Context, title string) (*models.Post, error)
	CreatePost(ctx context.Context, post *models.Post) error
	UpdatePost(ctx context.Context, id int64, title, content string) (*models.Post, error)
	DeletePost(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}

// GormPostRepository implements PostRepository on top of GORM.
// It serves both the PostgreSQL and the SQLite dialects.
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates a new GormPostRepository
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// ListPosts returns every post, newest first
func (r *GormPostRepository) ListPosts(ctx context.Context) ([]models.Post, error) {
	posts := []models.Post{}
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// GetPostByID retrieves a post by ID
func (r *GormPostRepository) GetPostByID(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}
	return &post, nil
}

// GetPostByTitle retrieves a post by its exact title
func (r *GormPostRepository) GetPostByTitle(ctx context.Context, title string) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Where("title = ?", title).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post by title: %w", err)
	}
	return &post, nil
}

// CreatePost inserts a new post; ID and CreatedAt are assigned here
func (r *GormPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = 0
	post.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateTitle
		}
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

// UpdatePost replaces title and content of an existing post and returns the stored row
func (r *GormPostRepository) UpdatePost(ctx context.Context, id int64, title, content string) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&post, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Post{}).Where("id = ?", id).Updates(map[string]interface{}{
			"title":   title,
			"content": content,
		}).Error; err != nil {
			return err
		}
		post.Title = title
		post.Content = content
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrPostNotFound
		case isDuplicateKey(err):
			return nil, ErrDuplicateTitle
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return &post, nil
}

// DeletePost permanently removes a post by ID
func (r *GormPostRepository) DeletePost(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete post: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

// Ping verifies the underlying connection pool is reachable
func (r *GormPostRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

var _ PostRepository = (*GormPostRepository)(nil)

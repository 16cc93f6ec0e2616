package services

import (
	"context"
	"errors"

	"github.com/anonto42/dura-blog/backend/internal/models"
	"github.com/anonto42/dura-blog/backend/internal/repositories"
)

// PostService defines the business operations on posts
type PostService interface {
	List(ctx context.Context) ([]models.Post, error)
	Create(ctx context.Context, title, content string) (*models.Post, error)
	Update(ctx context.Context, id int64, title, content string) (*models.Post, error)
	Delete(ctx context.Context, id int64) error
}

type postService struct {
	postRepository repositories.PostRepository
}

// NewPostService creates a PostService backed by the given repository
func NewPostService(postRepo repositories.PostRepository) PostService {
	return &postService{postRepository: postRepo}
}

// List returns all posts, newest first
func (s *postService) List(ctx context.Context) ([]models.Post, error) {
	posts, err := s.postRepository.ListPosts(ctx)
	if err != nil {
		return nil, unavailable("list posts", err)
	}
	return posts, nil
}

// Create validates the fields, rejects a taken title and persists the post.
// The title lookup and the insert are not atomic; the store's unique index
// reports the lost race as ErrDuplicateTitle.
func (s *postService) Create(ctx context.Context, title, content string) (*models.Post, error) {
	if err := validateFields(title, content); err != nil {
		return nil, err
	}

	_, err := s.postRepository.GetPostByTitle(ctx, title)
	switch {
	case err == nil:
		return nil, &ConflictError{Title: title}
	case !errors.Is(err, repositories.ErrPostNotFound):
		return nil, unavailable("check title", err)
	}

	post := &models.Post{Title: title, Content: content}
	if err := s.postRepository.CreatePost(ctx, post); err != nil {
		if errors.Is(err, repositories.ErrDuplicateTitle) {
			return nil, &ConflictError{Title: title}
		}
		return nil, unavailable("create post", err)
	}
	return post, nil
}

// Update replaces title and content of an existing post.
// Title uniqueness against other posts is not pre-checked here.
func (s *postService) Update(ctx context.Context, id int64, title, content string) (*models.Post, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	if err := validateFields(title, content); err != nil {
		return nil, err
	}

	post, err := s.postRepository.UpdatePost(ctx, id, title, content)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrPostNotFound):
			return nil, &NotFoundError{ID: id}
		case errors.Is(err, repositories.ErrDuplicateTitle):
			return nil, &ConflictError{Title: title}
		}
		return nil, unavailable("update post", err)
	}
	return post, nil
}

// Delete permanently removes a post
func (s *postService) Delete(ctx context.Context, id int64) error {
	if err := validateID(id); err != nil {
		return err
	}

	if err := s.postRepository.DeletePost(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return &NotFoundError{ID: id}
		}
		return unavailable("delete post", err)
	}
	return nil
}

func validateID(id int64) error {
	if id <= 0 {
		return NewValidationError("id", "must be a positive integer")
	}
	return nil
}

func validateFields(title, content string) error {
	if title == "" {
		return NewValidationError("title", "is required")
	}
	if content == "" {
		return NewValidationError("content", "is required")
	}
	return nil
}

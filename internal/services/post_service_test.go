package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/anonto42/dura-blog/backend/internal/mocks"
	"github.com/anonto42/dura-blog/backend/internal/models"
	"github.com/anonto42/dura-blog/backend/internal/repositories"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var errStoreDown = errors.New("connection refused")

func TestPostService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("should return posts from the store", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockPostRepository(ctrl)
		svc := NewPostService(mockRepo)

		now := time.Now()
		stored := []models.Post{
			{ID: 2, Title: "newer", Content: "b", CreatedAt: now},
			{ID: 1, Title: "older", Content: "a", CreatedAt: now.Add(-time.Minute)},
		}
		mockRepo.EXPECT().ListPosts(ctx).Return(stored, nil).Times(1)

		posts, err := svc.List(ctx)

		req.NoError(err)
		req.Equal(stored, posts)
	})

	t.Run("should report the store as unavailable on failure", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockPostRepository(ctrl)
		svc := NewPostService(mockRepo)

		mockRepo.EXPECT().ListPosts(ctx).Return(nil, errStoreDown).Times(1)

		posts, err := svc.List(ctx)

		req.ErrorIs(err, ErrServiceUnavailable)
		req.Nil(posts)
	})
}

func TestPostService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("should create a post when the title is free", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockPostRepository(ctrl)
		svc := NewPostService(mockRepo)

		mockRepo.EXPECT().GetPostByTitle(ctx, "Hello").Return(nil, repositories.ErrPostNotFound).Times(1)
		mockRepo.EXPECT().
			CreatePost(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, post *models.Post) error {
				post.ID = 7
				post.CreatedAt = time.Now()
				return nil
			}).
			Times(1)

		post, err := svc.Create(ctx, "Hello", "World")

		req.NoError(err)
		req.Equal(int64(7), post.ID)
		req.Equal("Hello", post.Title)
		req.Equal("World", post.Content)
		req.False(post.CreatedAt.IsZero())
	})

	t.Run("should reject empty fields without touching the store", func(t *testing.T) {
		cases := []struct {
			name    string
			title   string
			content string
			field   string
		}{
			{name: "empty title", title: "", content: "World", field: "title"},
			{name: "empty content", title: "Hello", content: "", field: "content"},
			{name: "both empty", title: "", content: "", field: "title"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				req := require.New(t)
				ctrl := gomock.NewController(t)
				mockRepo := mocks.NewMockPostRepository(ctrl)
				svc := NewPostService(mockRepo)

				_, err := svc.Create(ctx, tc.title, tc.content)

				req.True(IsValidationError(err))
				var valErr *ValidationError
				req.ErrorAs(err, &valErr)
				req.Equal(tc.field, valErr.Field)
			})
		}
	})

	t.Run("should reject a title that already exists", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockPostRepository(ctrl)
		svc := NewPostService(mockRepo)

		mockRepo.EXPECT().
			GetPostByTitle(ctx, "Hello").
			Return(&models.Post{ID: 1, Title: "Hello", Content: "old"}, nil).
			Times(1)
		mockRepo.EXPECT().CreatePost(gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.Create(ctx, "Hello", "different content")

		req.True(IsConflict(err))
	})

	t.Run("should map a lost uniqueness race to a conflict", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockPostRepository(ctrl)
		svc := NewPostService(mockRepo)

		mockRepo.EXPECT().GetPostByTitle(ctx, "Hello").Return(nil, repositories.ErrPostNotFound).Times(1)
		mockRepo.EXPECT().CreatePost(ctx, gomock.Any()).Return(repositories.ErrDuplicateTitle).Times(1)

		_, err := svc.Create(ctx, "Hello", "World")

		req.True(IsConflict(err))
	})

	t.Run("should report the store as unavailable when the title lookup fails", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockPostRepository(ctrl)
		svc := NewPostService(mockRepo)

		mockRepo.EXPECT().GetPostByTitle(ctx, "Hello").Return(nil, errStoreDown).Times(1)

		_, err := svc.Create(ctx, "Hello", "World")

		req.ErrorIs(err, ErrServiceUnavailable)
		req.False(IsConflict(err))
	})
}

func TestPostService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("should return the updated post", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockPostRepository(ctrl)
		svc := NewPostService(mockRepo)

		createdAt := time.Now().Add(-time.Hour)
		mockRepo.EXPECT().
			UpdatePost(ctx, int64(3), "Hello2", "World2").
			Return(&models.Post{ID: 3, Title: "Hello2", Content: "World2", CreatedAt: createdAt}, nil).
			Times(1)

		post, err := svc.Update(ctx, 3, "Hello2", "World2")

		req.NoError(err)
		req.Equal(int64(3), post.ID)
		req.Equal("Hello2", post.Title)
		req.Equal(createdAt, post.CreatedAt)
	})

	t.Run("should not pre-check title uniqueness", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockPostRepository(ctrl)
		svc := NewPostService(mockRepo)

		mockRepo.EXPECT().GetPostByTitle(gomock.Any(), gomock.Any()).Times(0)
		mockRepo.EXPECT().
			UpdatePost(ctx, int64(3), "t", "c").
			Return(&models.Post{ID: 3, Title: "t", Content: "c"}, nil).
			Times(1)

		_, err := svc.Update(ctx, 3, "t", "c")
		require.NoError(t, err)
	})

	t.Run("should reject a missing id", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockPostRepository(ctrl)
		svc := NewPostService(mockRepo)

		_, err := svc.Update(ctx, 0, "t", "c")

		req.True(IsValidationError(err))
	})

	t.Run("should reject empty fields", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockPostRepository(ctrl)
		svc := NewPostService(mockRepo)

		_, err := svc.Update(ctx, 3, "t", "")

		req.True(IsValidationError(err))
	})

	t.Run("should report a missing post as not found", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockPostRepository(ctrl)
		svc := NewPostService(mockRepo)

		mockRepo.EXPECT().UpdatePost(ctx, int64(99), "t", "c").Return(nil, repositories.ErrPostNotFound).Times(1)

		_, err := svc.Update(ctx, 99, "t", "c")

		req.True(IsNotFound(err))
		var notFound *NotFoundError
		req.ErrorAs(err, &notFound)
		req.Equal(int64(99), notFound.ID)
	})

	t.Run("should report a title taken by another post as a conflict", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockPostRepository(ctrl)
		svc := NewPostService(mockRepo)

		mockRepo.EXPECT().UpdatePost(ctx, int64(3), "taken", "c").Return(nil, repositories.ErrDuplicateTitle).Times(1)

		_, err := svc.Update(ctx, 3, "taken", "c")

		req.True(IsConflict(err))
	})

	t.Run("should report store failures as unavailable", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockPostRepository(ctrl)
		svc := NewPostService(mockRepo)

		mockRepo.EXPECT().UpdatePost(ctx, int64(3), "t", "c").Return(nil, errStoreDown).Times(1)

		_, err := svc.Update(ctx, 3, "t", "c")

		req.ErrorIs(err, ErrServiceUnavailable)
	})
}

func TestPostService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("should delete an existing post", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockPostRepository(ctrl)
		svc := NewPostService(mockRepo)

		mockRepo.EXPECT().DeletePost(ctx, int64(5)).Return(nil).Times(1)

		require.NoError(t, svc.Delete(ctx, 5))
	})

	t.Run("should reject a missing id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockPostRepository(ctrl)
		svc := NewPostService(mockRepo)

		err := svc.Delete(ctx, -1)

		require.True(t, IsValidationError(err))
	})

	t.Run("should report a missing post as not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockPostRepository(ctrl)
		svc := NewPostService(mockRepo)

		mockRepo.EXPECT().DeletePost(ctx, int64(5)).Return(repositories.ErrPostNotFound).Times(1)

		err := svc.Delete(ctx, 5)

		require.True(t, IsNotFound(err))
	})

	t.Run("should report store failures as unavailable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockPostRepository(ctrl)
		svc := NewPostService(mockRepo)

		mockRepo.EXPECT().DeletePost(ctx, int64(5)).Return(errStoreDown).Times(1)

		err := svc.Delete(ctx, 5)

		require.ErrorIs(t, err, ErrServiceUnavailable)
		require.False(t, IsNotFound(err))
	})
}

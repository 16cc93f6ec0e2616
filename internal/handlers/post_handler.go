package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/anonto42/dura-blog/backend/internal/models"
	"github.com/anonto42/dura-blog/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postService services.PostService
	logger      *slog.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService services.PostService, logger *slog.Logger) *PostHandler {
	return &PostHandler{
		postService: postService,
		logger:      logger,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.GET("/posts", h.GetPosts)
	g.POST("/posts", h.CreatePost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
}

// GetPosts lists every post, newest first
func (h *PostHandler) GetPosts(c echo.Context) error {
	posts, err := h.postService.List(c.Request().Context())
	if err != nil {
		return handleServiceError(c, h.logger, err, operationMessages{internal: msgFetchFailed})
	}
	return c.JSON(http.StatusOK, posts)
}

// CreatePost creates a new post
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, msgInvalidPayload)
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, http.StatusBadRequest, msgFieldRequired)
	}

	post, err := h.postService.Create(c.Request().Context(), req.Title, req.Content)
	if err != nil {
		return handleServiceError(c, h.logger, err, operationMessages{
			validation: msgFieldRequired,
			internal:   msgCreateFailed,
		})
	}

	return c.JSON(http.StatusCreated, models.APIResponse{
		Success: true,
		Message: msgPostCreated,
		Data:    post,
	})
}

// UpdatePost replaces the title and content of an existing post
func (h *PostHandler) UpdatePost(c echo.Context) error {
	postID, ok := parsePostID(c)
	if !ok {
		return writeError(c, http.StatusBadRequest, msgInvalidPost)
	}

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, msgInvalidPayload)
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, http.StatusBadRequest, msgAllFields)
	}

	post, err := h.postService.Update(c.Request().Context(), postID, req.Title, req.Content)
	if err != nil {
		return handleServiceError(c, h.logger, err, operationMessages{
			validation: msgAllFields,
			internal:   msgUpdateFailed,
		})
	}

	return c.JSON(http.StatusOK, post)
}

// DeletePost permanently deletes a post
func (h *PostHandler) DeletePost(c echo.Context) error {
	postID, ok := parsePostID(c)
	if !ok {
		return writeError(c, http.StatusBadRequest, msgInvalidPost)
	}

	if err := h.postService.Delete(c.Request().Context(), postID); err != nil {
		return handleServiceError(c, h.logger, err, operationMessages{
			validation: msgInvalidPost,
			internal:   msgDeleteFailed,
		})
	}

	return c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Message: msgPostDeleted,
	})
}

func parsePostID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

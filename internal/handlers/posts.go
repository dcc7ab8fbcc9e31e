package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gameshelf/internal/dto"
	apierrors "gameshelf/internal/errors"
	"gameshelf/internal/middleware"
	"gameshelf/internal/services"
	"gameshelf/internal/utils"
)

// PostHandler coordinates post-related HTTP handlers.
type PostHandler struct {
	postService *services.PostService
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(postService *services.PostService) *PostHandler {
	return &PostHandler{
		postService: postService,
	}
}

// CreatePost creates a post authored by the authenticated user.
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreatePostRequest struct {
		Title string `json:"title" binding:"required"`
		Body  string `json:"body" binding:"required"`
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	post, err := h.postService.CreatePost(services.CreatePostInput{
		AuthorID: userID,
		Title:    req.Title,
		Body:     req.Body,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTitleRequired),
			errors.Is(err, services.ErrBodyRequired):
			apierrors.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrUnknownAuthor):
			apierrors.UnknownUser(c, err.Error())
		default:
			apierrors.InternalError(c, "Internal server error")
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToPostDTO(*post))
}

// ListPosts returns posts newest first with pagination.
func (h *PostHandler) ListPosts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	posts, total, err := h.postService.ListPosts(params.Page, params.Limit)
	if err != nil {
		apierrors.InternalError(c, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, dto.ToPostListResponse(posts, params.Page, params.Limit, total))
}

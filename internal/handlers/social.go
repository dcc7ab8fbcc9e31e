package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gameshelf/internal/dto"
	apierrors "gameshelf/internal/errors"
	"gameshelf/internal/middleware"
	"gameshelf/internal/services"
	"gameshelf/internal/utils"
)

// SocialHandler coordinates follow and user-discovery HTTP handlers.
type SocialHandler struct {
	socialService *services.SocialService
}

// NewSocialHandler creates a new SocialHandler.
func NewSocialHandler(socialService *services.SocialService) *SocialHandler {
	return &SocialHandler{
		socialService: socialService,
	}
}

// BrowseUsers lists other users, optionally filtered by a username substring.
func (h *SocialHandler) BrowseUsers(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)
	search := c.Query("search")

	summaries, total, err := h.socialService.BrowseUsers(userID, search, params.Page, params.Limit)
	if err != nil {
		apierrors.InternalError(c, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserListResponse(summaries, params.Page, params.Limit, total))
}

// FollowUser creates a follow edge from the authenticated user.
func (h *SocialHandler) FollowUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	if _, err := h.socialService.FollowUser(userID, targetID); err != nil {
		respondSocialError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Now following user",
	})
}

// UnfollowUser removes the follow edge from the authenticated user.
func (h *SocialHandler) UnfollowUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.socialService.UnfollowUser(userID, targetID); err != nil {
		respondSocialError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Unfollowed user",
	})
}

// ListFollowing returns the users the authenticated user follows.
func (h *SocialHandler) ListFollowing(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	users, err := h.socialService.ListFollowing(userID)
	if err != nil {
		apierrors.InternalError(c, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": dto.ToUserDTOs(users),
	})
}

// ListFollowers returns the users following the authenticated user.
func (h *SocialHandler) ListFollowers(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	users, err := h.socialService.ListFollowers(userID)
	if err != nil {
		apierrors.InternalError(c, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": dto.ToUserDTOs(users),
	})
}

// CommonGames returns the games shared with another user, scored by
// relevance.
func (h *SocialHandler) CommonGames(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	sortBy, descending := services.ParseCommonGamesSort(c.Query("sort"), c.Query("order"))

	games, err := h.socialService.CommonGames(userID, targetID, sortBy, descending)
	if err != nil {
		respondSocialError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"games": games,
		"count": len(games),
	})
}

func respondSocialError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrSelfFollow):
		apierrors.Conflict(c, apierrors.ErrCodeSelfFollow, err.Error())
	case errors.Is(err, services.ErrAlreadyFollowing):
		apierrors.Conflict(c, apierrors.ErrCodeAlreadyFollowing, err.Error())
	case errors.Is(err, services.ErrNotFollowing):
		apierrors.Conflict(c, apierrors.ErrCodeNotFollowing, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.UnknownUser(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gameshelf/internal/constants"
	"gameshelf/internal/dto"
	apierrors "gameshelf/internal/errors"
	"gameshelf/internal/middleware"
	"gameshelf/internal/services"
)

// RecommendationHandler coordinates recommendation and tagging HTTP handlers.
type RecommendationHandler struct {
	recService *services.RecommendationService
	aiService  *services.AIService
}

// NewRecommendationHandler creates a new RecommendationHandler.
func NewRecommendationHandler(
	recService *services.RecommendationService,
	aiService *services.AIService,
) *RecommendationHandler {
	return &RecommendationHandler{
		recService: recService,
		aiService:  aiService,
	}
}

// GetRecommendations returns scored game suggestions for the user.
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	recs, err := h.recService.Recommend(userID)
	if err != nil {
		apierrors.InternalError(c, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recommendations": dto.ToRecommendationDTOs(recs),
	})
}

// GetPreferences returns the user's preferred tags plus the full tag list.
func (h *RecommendationHandler) GetPreferences(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	tags, err := h.recService.GetPreferences(userID)
	if err != nil {
		apierrors.InternalError(c, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tags":           tags,
		"available_tags": constants.PopularTags,
	})
}

// SetPreferences replaces the user's preferred tags.
func (h *RecommendationHandler) SetPreferences(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type PreferencesRequest struct {
		Tags []string `json:"tags" binding:"required"`
	}

	var req PreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.recService.SetPreferences(userID, req.Tags); err != nil {
		respondRecommendationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Preferences updated",
	})
}

// GetGameTags returns the tags attached to a game.
func (h *RecommendationHandler) GetGameTags(c *gin.Context) {
	gameID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid game ID")
		return
	}

	tags, err := h.recService.GetGameTags(gameID)
	if err != nil {
		respondRecommendationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tags": tags,
	})
}

// SetGameTags replaces the tags attached to a game.
func (h *RecommendationHandler) SetGameTags(c *gin.Context) {
	gameID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid game ID")
		return
	}

	type GameTagsRequest struct {
		Tags []string `json:"tags" binding:"required"`
	}

	var req GameTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.recService.SetGameTags(gameID, req.Tags); err != nil {
		respondRecommendationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Tags updated",
	})
}

// SuggestGameTags asks the AI service for tags matching a game's name.
func (h *RecommendationHandler) SuggestGameTags(c *gin.Context) {
	gameID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid game ID")
		return
	}

	if h.aiService == nil || !h.aiService.Enabled() {
		apierrors.ServiceUnavailable(c, "AI tag suggestions are not configured")
		return
	}

	game, err := h.recService.GetGame(gameID)
	if err != nil {
		respondRecommendationError(c, err)
		return
	}

	tags, err := h.aiService.SuggestTagsForGame(c.Request.Context(), game.Name)
	if err != nil {
		apierrors.ServiceUnavailable(c, "AI tag suggestion failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tags": tags,
	})
}

func respondRecommendationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUnknownTag):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrUnknownGame):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}

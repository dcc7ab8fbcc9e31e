package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gameshelf/internal/dto"
	apierrors "gameshelf/internal/errors"
	"gameshelf/internal/epic"
	"gameshelf/internal/middleware"
	"gameshelf/internal/services"
	"gameshelf/internal/steam"
)

// LibraryHandler coordinates library and import HTTP handlers.
type LibraryHandler struct {
	libraryService *services.LibraryService
	importService  *services.ImportService
}

// NewLibraryHandler creates a new LibraryHandler.
func NewLibraryHandler(libraryService *services.LibraryService, importService *services.ImportService) *LibraryHandler {
	return &LibraryHandler{
		libraryService: libraryService,
		importService:  importService,
	}
}

// ListLibrary returns the authenticated user's library, sortable by
// name, playtime or import time.
func (h *LibraryHandler) ListLibrary(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	sort, descending := services.ParseLibrarySort(c.Query("sort"), c.Query("order"))

	entries, err := h.libraryService.ListLibrary(userID, sort, descending)
	if err != nil {
		respondLibraryError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLibraryResponse(entries))
}

// RandomGame returns one random entry from the user's library.
func (h *LibraryHandler) RandomGame(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	entry, err := h.libraryService.RandomGame(userID)
	if err != nil {
		respondLibraryError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLibraryEntryDTO(*entry))
}

// RemoveGame deletes one game from the user's library.
func (h *LibraryHandler) RemoveGame(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	gameID, err := strconv.ParseUint(c.Param("game_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid game ID")
		return
	}

	if err := h.libraryService.RemoveEntry(userID, gameID); err != nil {
		respondLibraryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Game removed from library",
	})
}

// AddGame manually adds one game to the user's library, creating or
// refreshing the catalog row for its appid.
func (h *LibraryHandler) AddGame(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type AddGameRequest struct {
		AppID           string `json:"appid" binding:"required"`
		Name            string `json:"name" binding:"required"`
		Platform        string `json:"platform"`
		PlaytimeForever int64  `json:"playtime_forever"`
	}

	var req AddGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	game, err := h.libraryService.UpsertGame(services.UpsertGameInput{
		AppID:           req.AppID,
		Platform:        req.Platform,
		Name:            req.Name,
		PlaytimeForever: req.PlaytimeForever,
	})
	if err != nil {
		respondLibraryError(c, err)
		return
	}

	entry, err := h.libraryService.ImportEntry(userID, game.ID, req.PlaytimeForever)
	if err != nil {
		respondLibraryError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.LibraryEntryDTO{
		Game:            dto.ToGameDTO(*game),
		PlaytimeForever: entry.PlaytimeForever,
		ImportedAt:      entry.ImportedAt,
	})
}

// ImportSteam imports the user's Steam library from a SteamID64, vanity
// name, or profile URL.
func (h *LibraryHandler) ImportSteam(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type ImportSteamRequest struct {
		SteamID string `json:"steam_id" binding:"required"`
	}

	var req ImportSteamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.importService.ImportSteam(c.Request.Context(), userID, req.SteamID)
	if err != nil {
		respondImportError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ImportEpic imports the user's Epic library through the Ecom API.
func (h *LibraryHandler) ImportEpic(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type ImportEpicRequest struct {
		AccountID string `json:"account_id" binding:"required"`
	}

	var req ImportEpicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.importService.ImportEpic(c.Request.Context(), userID, req.AccountID)
	if err != nil {
		respondImportError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ImportEpicManifest imports games from pasted launcher-manifest data or a
// manual one-game-per-line list.
func (h *LibraryHandler) ImportEpicManifest(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type ImportManifestRequest struct {
		Data string `json:"data" binding:"required"`
	}

	var req ImportManifestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.importService.ImportEpicManifest(userID, req.Data)
	if err != nil {
		respondImportError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func respondLibraryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.UnknownUser(c, err.Error())
	case errors.Is(err, services.ErrUnknownGame):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrEmptyLibrary):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}

func respondImportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrImportInputRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNoGamesFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, steam.ErrAPIKeyMissing),
		errors.Is(err, epic.ErrCredentialsMissing):
		apierrors.ServiceUnavailable(c, err.Error())
	case errors.Is(err, steam.ErrVanityNotFound),
		errors.Is(err, steam.ErrPrivateProfile),
		errors.Is(err, epic.ErrAuthFailed),
		errors.Is(err, epic.ErrPartnerAccessDenied):
		apierrors.ImportFailure(c, err.Error())
	default:
		apierrors.ImportFailure(c, "Storefront import failed")
	}
}

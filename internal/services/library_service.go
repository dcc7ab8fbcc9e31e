package services

import (
	"errors"
	"fmt"
	"math/rand"

	"gorm.io/gorm"

	"gameshelf/internal/models"
	"gameshelf/internal/repository"
)

var (
	ErrUnknownGame  = errors.New("game not found")
	ErrEmptyLibrary = errors.New("library is empty")
)

// LibraryService handles the shared game catalog and per-user libraries
type LibraryService struct {
	gameRepo    repository.GameRepository
	libraryRepo repository.LibraryRepository
	userRepo    repository.UserRepository
}

// NewLibraryService creates a new LibraryService
func NewLibraryService(
	gameRepo repository.GameRepository,
	libraryRepo repository.LibraryRepository,
	userRepo repository.UserRepository,
) *LibraryService {
	return &LibraryService{
		gameRepo:    gameRepo,
		libraryRepo: libraryRepo,
		userRepo:    userRepo,
	}
}

// UpsertGameInput represents one game to insert or refresh in the catalog
type UpsertGameInput struct {
	AppID           string
	Platform        string
	Name            string
	PlaytimeForever int64
	ImgIconURL      string
	ImgLogoURL      string
}

// UpsertGame inserts a game or refreshes the mutable fields of the existing
// row with the same appid.
func (s *LibraryService) UpsertGame(input UpsertGameInput) (*models.Game, error) {
	if input.AppID == "" {
		return nil, fmt.Errorf("appid is required")
	}
	if input.Platform == "" {
		input.Platform = models.PlatformSteam
	}

	game, err := s.gameRepo.Upsert(&models.Game{
		AppID:           input.AppID,
		Platform:        input.Platform,
		Name:            input.Name,
		PlaytimeForever: input.PlaytimeForever,
		ImgIconURL:      input.ImgIconURL,
		ImgLogoURL:      input.ImgLogoURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert game: %w", err)
	}

	return game, nil
}

// ImportEntry records (or refreshes) a user's ownership of a game.
func (s *LibraryService) ImportEntry(userID, gameID uint64, playtimeForever int64) (*models.LibraryEntry, error) {
	if err := s.ensureUserExists(userID); err != nil {
		return nil, err
	}
	if _, err := s.gameRepo.FindByID(gameID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownGame
		}
		return nil, fmt.Errorf("failed to verify game: %w", err)
	}

	entry, err := s.libraryRepo.Upsert(&models.LibraryEntry{
		UserID:          userID,
		GameID:          gameID,
		PlaytimeForever: playtimeForever,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert library entry: %w", err)
	}

	return entry, nil
}

// ParseLibrarySort maps query values onto the sort whitelist; anything
// unknown falls back to name ascending.
func ParseLibrarySort(sort, order string) (repository.LibrarySort, bool) {
	var s repository.LibrarySort
	switch sort {
	case "playtime":
		s = repository.LibrarySortPlaytime
	case "imported":
		s = repository.LibrarySortImported
	default:
		s = repository.LibrarySortName
	}
	return s, order == "desc"
}

// ListLibrary returns a user's library entries with their games.
func (s *LibraryService) ListLibrary(userID uint64, sort repository.LibrarySort, descending bool) ([]models.LibraryEntry, error) {
	if err := s.ensureUserExists(userID); err != nil {
		return nil, err
	}

	entries, err := s.libraryRepo.List(repository.LibraryFilter{
		UserID:     userID,
		Sort:       sort,
		Descending: descending,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list library: %w", err)
	}

	return entries, nil
}

// RandomGame picks a random entry from the user's library.
func (s *LibraryService) RandomGame(userID uint64) (*models.LibraryEntry, error) {
	entries, err := s.ListLibrary(userID, repository.LibrarySortName, false)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrEmptyLibrary
	}

	entry := entries[rand.Intn(len(entries))]
	return &entry, nil
}

// RemoveEntry deletes one game from the user's library.
func (s *LibraryService) RemoveEntry(userID, gameID uint64) error {
	if err := s.libraryRepo.Remove(userID, gameID); err != nil {
		return fmt.Errorf("failed to remove library entry: %w", err)
	}
	return nil
}

func (s *LibraryService) ensureUserExists(userID uint64) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to verify user: %w", err)
	}
	return nil
}

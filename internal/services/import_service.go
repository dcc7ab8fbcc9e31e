package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gameshelf/internal/epic"
	"gameshelf/internal/models"
	"gameshelf/internal/repository"
	"gameshelf/internal/steam"
)

var (
	ErrImportInputRequired = errors.New("import input is required")
	ErrNoGamesFound        = errors.New("no games found to import")
)

// ImportService orchestrates storefront imports: fetch the remote library
// first, then write everything inside one transaction. A fetch failure aborts
// before any row is touched.
type ImportService struct {
	libraryRepo repository.LibraryRepository
	steamClient *steam.Client
	epicClient  *epic.Client
}

// NewImportService creates a new ImportService
func NewImportService(
	libraryRepo repository.LibraryRepository,
	steamClient *steam.Client,
	epicClient *epic.Client,
) *ImportService {
	return &ImportService{
		libraryRepo: libraryRepo,
		steamClient: steamClient,
		epicClient:  epicClient,
	}
}

// ImportResult summarizes one completed import
type ImportResult struct {
	Platform string `json:"platform"`
	Imported int    `json:"imported"`
}

// ImportSteam imports a user's Steam library. The input may be a SteamID64, a
// vanity name, or a full profile URL.
func (s *ImportService) ImportSteam(ctx context.Context, userID uint64, input string) (*ImportResult, error) {
	if input == "" {
		return nil, ErrImportInputRequired
	}

	steamID, err := s.steamClient.ResolveSteamID(ctx, input)
	if err != nil {
		return nil, err
	}

	owned, err := s.steamClient.GetOwnedGames(ctx, steamID)
	if err != nil {
		return nil, err
	}
	if len(owned) == 0 {
		return nil, ErrNoGamesFound
	}

	games := make([]repository.GameImport, 0, len(owned))
	for _, g := range owned {
		games = append(games, repository.GameImport{
			AppID:           strconv.FormatInt(g.AppID, 10),
			Name:            g.Name,
			Platform:        models.PlatformSteam,
			PlaytimeForever: g.PlaytimeForever,
			ImgIconURL:      g.ImgIconURL,
			ImgLogoURL:      g.ImgLogoURL,
		})
	}

	if err := s.libraryRepo.ImportBatch(userID, games, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to import steam library: %w", err)
	}

	return &ImportResult{Platform: models.PlatformSteam, Imported: len(games)}, nil
}

// ImportEpic imports a user's Epic library through the Ecom API.
func (s *ImportService) ImportEpic(ctx context.Context, userID uint64, accountID string) (*ImportResult, error) {
	if accountID == "" {
		return nil, ErrImportInputRequired
	}

	token, err := s.epicClient.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	entitlements, err := s.epicClient.GetEntitlements(ctx, accountID, token)
	if err != nil {
		return nil, err
	}
	if len(entitlements) == 0 {
		return nil, ErrNoGamesFound
	}

	games := make([]repository.GameImport, 0, len(entitlements))
	for _, ent := range entitlements {
		appid := ent.OfferID
		if appid == "" {
			appid = epic.SlugAppID(ent.Name)
		}
		games = append(games, repository.GameImport{
			AppID:    appid,
			Name:     ent.Name,
			Platform: models.PlatformEpic,
		})
	}

	if err := s.libraryRepo.ImportBatch(userID, games, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to import epic library: %w", err)
	}

	return &ImportResult{Platform: models.PlatformEpic, Imported: len(games)}, nil
}

// ImportEpicManifest imports games from pasted launcher-manifest data, falling
// back to the manual one-game-per-line format when no manifest parses.
func (s *ImportService) ImportEpicManifest(userID uint64, data string) (*ImportResult, error) {
	if data == "" {
		return nil, ErrImportInputRequired
	}

	parsed := epic.ParseManifest(data)
	if len(parsed) == 0 {
		parsed = epic.ParseManualList(data)
	}
	if len(parsed) == 0 {
		return nil, ErrNoGamesFound
	}

	games := make([]repository.GameImport, 0, len(parsed))
	for _, g := range parsed {
		games = append(games, repository.GameImport{
			AppID:    g.CatalogAppID(),
			Name:     g.Name,
			Platform: models.PlatformEpic,
		})
	}

	if err := s.libraryRepo.ImportBatch(userID, games, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to import epic manifest: %w", err)
	}

	return &ImportResult{Platform: models.PlatformEpic, Imported: len(games)}, nil
}

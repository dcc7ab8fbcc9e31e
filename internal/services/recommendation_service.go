package services

import (
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"gameshelf/internal/constants"
	"gameshelf/internal/models"
	"gameshelf/internal/repository"
)

var ErrUnknownTag = errors.New("unknown tag")

// RecommendationService scores games against a user's tag preferences and
// the libraries of the users they follow.
type RecommendationService struct {
	prefRepo    repository.PreferenceRepository
	libraryRepo repository.LibraryRepository
	followRepo  repository.FollowRepository
	gameRepo    repository.GameRepository
}

// NewRecommendationService creates a new RecommendationService
func NewRecommendationService(
	prefRepo repository.PreferenceRepository,
	libraryRepo repository.LibraryRepository,
	followRepo repository.FollowRepository,
	gameRepo repository.GameRepository,
) *RecommendationService {
	return &RecommendationService{
		prefRepo:    prefRepo,
		libraryRepo: libraryRepo,
		followRepo:  followRepo,
		gameRepo:    gameRepo,
	}
}

// Recommendation is one scored suggestion
type Recommendation struct {
	Game  models.Game `json:"game"`
	Score float64     `json:"score"`
}

// Recommend scores unowned games by summed preference-tag weights, boosts
// games owned by followed users, and returns the top suggestions.
func (s *RecommendationService) Recommend(userID uint64) ([]Recommendation, error) {
	ownedIDs, err := s.libraryRepo.OwnedGameIDs(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owned games: %w", err)
	}

	scores := make(map[uint64]float64)
	games := make(map[uint64]models.Game)

	prefs, err := s.prefRepo.ListPreferences(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list preferences: %w", err)
	}
	for _, pref := range prefs {
		tagged, err := s.prefRepo.GamesByTag(pref.Tag, ownedIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to find games for tag %q: %w", pref.Tag, err)
		}
		for _, game := range tagged {
			scores[game.ID] += pref.Weight
			games[game.ID] = game
		}
	}

	followingIDs, err := s.followRepo.FollowingIDs(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list following ids: %w", err)
	}
	if len(followingIDs) > 0 {
		friendGames, err := s.prefRepo.GamesOwnedByUsers(followingIDs, ownedIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to list followed users' games: %w", err)
		}
		for _, game := range friendGames {
			scores[game.ID] += constants.FollowedUserBoost
			games[game.ID] = game
		}
	}

	recs := make([]Recommendation, 0, len(scores))
	for id, score := range scores {
		recs = append(recs, Recommendation{Game: games[id], Score: score})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		return recs[i].Game.Name < recs[j].Game.Name
	})

	if len(recs) > constants.MaxRecommendations {
		recs = recs[:constants.MaxRecommendations]
	}
	return recs, nil
}

// SetPreferences replaces a user's tag preferences. Tags outside the known
// list are rejected.
func (s *RecommendationService) SetPreferences(userID uint64, tags []string) error {
	prefs := make([]models.UserPreference, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		if !constants.IsKnownTag(tag) {
			return fmt.Errorf("%w: %q", ErrUnknownTag, tag)
		}
		if seen[tag] {
			continue
		}
		seen[tag] = true
		prefs = append(prefs, models.UserPreference{
			UserID: userID,
			Tag:    tag,
			Weight: 1.0,
		})
	}

	if err := s.prefRepo.ReplacePreferences(userID, prefs); err != nil {
		return fmt.Errorf("failed to replace preferences: %w", err)
	}
	return nil
}

// GetPreferences returns the user's preferred tags.
func (s *RecommendationService) GetPreferences(userID uint64) ([]string, error) {
	prefs, err := s.prefRepo.ListPreferences(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list preferences: %w", err)
	}

	tags := make([]string, 0, len(prefs))
	for _, pref := range prefs {
		tags = append(tags, pref.Tag)
	}
	return tags, nil
}

// SetGameTags replaces the tags attached to a game.
func (s *RecommendationService) SetGameTags(gameID uint64, tags []string) error {
	if _, err := s.gameRepo.FindByID(gameID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnknownGame
		}
		return fmt.Errorf("failed to verify game: %w", err)
	}

	deduped := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		if !constants.IsKnownTag(tag) {
			return fmt.Errorf("%w: %q", ErrUnknownTag, tag)
		}
		if seen[tag] {
			continue
		}
		seen[tag] = true
		deduped = append(deduped, tag)
	}

	if err := s.prefRepo.ReplaceGameTags(gameID, deduped); err != nil {
		return fmt.Errorf("failed to replace game tags: %w", err)
	}
	return nil
}

// GetGame returns one catalog game.
func (s *RecommendationService) GetGame(gameID uint64) (*models.Game, error) {
	game, err := s.gameRepo.FindByID(gameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownGame
		}
		return nil, fmt.Errorf("failed to find game: %w", err)
	}
	return game, nil
}

// GetGameTags returns the tags attached to a game.
func (s *RecommendationService) GetGameTags(gameID uint64) ([]string, error) {
	if _, err := s.gameRepo.FindByID(gameID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownGame
		}
		return nil, fmt.Errorf("failed to verify game: %w", err)
	}

	tags, err := s.prefRepo.ListGameTags(gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list game tags: %w", err)
	}
	return tags, nil
}

package repository

import (
	"gorm.io/gorm"

	"gameshelf/internal/models"
)

// GormPreferenceRepository is a GORM implementation of PreferenceRepository
type GormPreferenceRepository struct {
	db *gorm.DB
}

// NewPreferenceRepository creates a new PreferenceRepository
func NewPreferenceRepository(db *gorm.DB) PreferenceRepository {
	return &GormPreferenceRepository{db: db}
}

// ReplacePreferences atomically replaces a user's tag preferences
func (r *GormPreferenceRepository) ReplacePreferences(userID uint64, prefs []models.UserPreference) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserPreference{}).Error; err != nil {
			return err
		}

		if len(prefs) == 0 {
			return nil
		}

		for i := range prefs {
			prefs[i].UserID = userID
		}
		return tx.Create(&prefs).Error
	})
}

// ListPreferences lists a user's tag preferences
func (r *GormPreferenceRepository) ListPreferences(userID uint64) ([]models.UserPreference, error) {
	var prefs []models.UserPreference
	err := r.db.Where("user_id = ?", userID).Find(&prefs).Error
	return prefs, err
}

// ReplaceGameTags atomically replaces the tags attached to a game
func (r *GormPreferenceRepository) ReplaceGameTags(gameID uint64, tags []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("game_id = ?", gameID).Delete(&models.GameTag{}).Error; err != nil {
			return err
		}

		if len(tags) == 0 {
			return nil
		}

		gameTags := make([]models.GameTag, len(tags))
		for i, tag := range tags {
			gameTags[i] = models.GameTag{GameID: gameID, Tag: tag}
		}
		return tx.Create(&gameTags).Error
	})
}

// ListGameTags lists the tags attached to a game
func (r *GormPreferenceRepository) ListGameTags(gameID uint64) ([]string, error) {
	var tags []string
	err := r.db.
		Model(&models.GameTag{}).
		Where("game_id = ?", gameID).
		Order("tag ASC").
		Pluck("tag", &tags).Error
	return tags, err
}

// GamesByTag returns games carrying a tag, excluding the given catalog IDs
func (r *GormPreferenceRepository) GamesByTag(tag string, excludeGameIDs []uint64) ([]models.Game, error) {
	query := r.db.
		Model(&models.Game{}).
		Joins("JOIN game_tag ON game_tag.game_id = game.id").
		Where("game_tag.tag = ?", tag)

	if len(excludeGameIDs) > 0 {
		query = query.Where("game.id NOT IN ?", excludeGameIDs)
	}

	var games []models.Game
	err := query.Find(&games).Error
	return games, err
}

// GamesOwnedByUsers returns games in any of the given users' libraries
func (r *GormPreferenceRepository) GamesOwnedByUsers(userIDs []uint64, excludeGameIDs []uint64) ([]models.Game, error) {
	if len(userIDs) == 0 {
		return []models.Game{}, nil
	}

	query := r.db.
		Model(&models.Game{}).
		Distinct("game.*").
		Joins("JOIN user_game_library ON user_game_library.game_id = game.id").
		Where("user_game_library.user_id IN ?", userIDs)

	if len(excludeGameIDs) > 0 {
		query = query.Where("game.id NOT IN ?", excludeGameIDs)
	}

	var games []models.Game
	err := query.Find(&games).Error
	return games, err
}

package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gameshelf/internal/models"
)

// GormGameRepository is a GORM implementation of GameRepository
type GormGameRepository struct {
	db *gorm.DB
}

// NewGameRepository creates a new GameRepository
func NewGameRepository(db *gorm.DB) GameRepository {
	return &GormGameRepository{db: db}
}

// Upsert inserts or updates a game keyed by appid. The conflict handling is
// a single INSERT ... ON CONFLICT DO UPDATE so concurrent imports of the
// same game cannot race the unique constraint.
func (r *GormGameRepository) Upsert(game *models.Game) (*models.Game, error) {
	return upsertGame(r.db, game)
}

func upsertGame(db *gorm.DB, game *models.Game) (*models.Game, error) {
	err := db.
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "appid"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "playtime_forever", "img_icon_url", "img_logo_url",
			}),
		}).
		Create(game).Error
	if err != nil {
		return nil, err
	}

	// On the update path the insert does not report the existing row's ID,
	// so resolve it by appid the way the importer always has.
	var saved models.Game
	if err := db.Where("appid = ?", game.AppID).First(&saved).Error; err != nil {
		return nil, err
	}

	return &saved, nil
}

// FindByID finds a game by catalog ID
func (r *GormGameRepository) FindByID(id uint64) (*models.Game, error) {
	var game models.Game
	if err := r.db.First(&game, id).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

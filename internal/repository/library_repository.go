package repository

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gameshelf/internal/models"
)

// GormLibraryRepository is a GORM implementation of LibraryRepository
type GormLibraryRepository struct {
	db *gorm.DB
}

// NewLibraryRepository creates a new LibraryRepository
func NewLibraryRepository(db *gorm.DB) LibraryRepository {
	return &GormLibraryRepository{db: db}
}

// Upsert inserts a library row or updates the existing (user, game) row's
// playtime and imported_at in a single atomic statement.
func (r *GormLibraryRepository) Upsert(entry *models.LibraryEntry) (*models.LibraryEntry, error) {
	return upsertLibraryEntry(r.db, entry)
}

func upsertLibraryEntry(db *gorm.DB, entry *models.LibraryEntry) (*models.LibraryEntry, error) {
	if entry.ImportedAt.IsZero() {
		entry.ImportedAt = time.Now()
	}

	err := db.
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "game_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"playtime_forever": entry.PlaytimeForever,
				"imported_at":      entry.ImportedAt,
			}),
		}).
		Create(entry).Error
	if err != nil {
		return nil, err
	}

	var saved models.LibraryEntry
	if err := db.Where("user_id = ? AND game_id = ?", entry.UserID, entry.GameID).First(&saved).Error; err != nil {
		return nil, err
	}

	return &saved, nil
}

// ImportBatch upserts every game and library row of one import inside a
// single transaction. A failure anywhere rolls back the whole batch, so a
// broken storefront response never leaves partial library state behind.
func (r *GormLibraryRepository) ImportBatch(userID uint64, games []GameImport, importedAt time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, g := range games {
			game, err := upsertGame(tx, &models.Game{
				AppID:           g.AppID,
				Name:            g.Name,
				Platform:        g.Platform,
				PlaytimeForever: g.PlaytimeForever,
				ImgIconURL:      g.ImgIconURL,
				ImgLogoURL:      g.ImgLogoURL,
			})
			if err != nil {
				return err
			}

			if _, err := upsertLibraryEntry(tx, &models.LibraryEntry{
				UserID:          userID,
				GameID:          game.ID,
				PlaytimeForever: g.PlaytimeForever,
				ImportedAt:      importedAt,
			}); err != nil {
				return err
			}
		}

		return nil
	})
}

// List retrieves a user's library entries with their games
func (r *GormLibraryRepository) List(filter LibraryFilter) ([]models.LibraryEntry, error) {
	query := r.db.
		Model(&models.LibraryEntry{}).
		Joins("JOIN game ON game.id = user_game_library.game_id").
		Where("user_game_library.user_id = ?", filter.UserID).
		Preload("Game")

	direction := "ASC"
	if filter.Descending {
		direction = "DESC"
	}

	// Ordering column comes from a fixed whitelist, never from user input.
	switch filter.Sort {
	case LibrarySortPlaytime:
		query = query.Order("user_game_library.playtime_forever " + direction)
	case LibrarySortImported:
		query = query.Order("user_game_library.imported_at " + direction)
	default:
		query = query.Order("game.name " + direction)
	}

	var entries []models.LibraryEntry
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}

	return entries, nil
}

// Remove deletes one entry from a user's library
func (r *GormLibraryRepository) Remove(userID, gameID uint64) error {
	return r.db.
		Where("user_id = ? AND game_id = ?", userID, gameID).
		Delete(&models.LibraryEntry{}).Error
}

// OwnedGameIDs returns the catalog IDs in a user's library
func (r *GormLibraryRepository) OwnedGameIDs(userID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.
		Model(&models.LibraryEntry{}).
		Where("user_id = ?", userID).
		Pluck("game_id", &ids).Error
	return ids, err
}

// CommonGames returns games present in both users' libraries
func (r *GormLibraryRepository) CommonGames(userID, otherID uint64) ([]CommonGame, error) {
	var games []CommonGame
	err := r.db.
		Table("game").
		Select("game.id AS game_id, game.appid AS app_id, game.name, game.img_logo_url,"+
			" my_lib.playtime_forever AS my_playtime,"+
			" their_lib.playtime_forever AS their_playtime").
		Joins("INNER JOIN user_game_library my_lib ON game.id = my_lib.game_id AND my_lib.user_id = ?", userID).
		Joins("INNER JOIN user_game_library their_lib ON game.id = their_lib.game_id AND their_lib.user_id = ?", otherID).
		Scan(&games).Error
	return games, err
}

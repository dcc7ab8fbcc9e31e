package repository

import (
	"errors"

	"gorm.io/gorm"

	"gameshelf/internal/models"
)

// GormFollowRepository is a GORM implementation of FollowRepository
type GormFollowRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new FollowRepository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &GormFollowRepository{db: db}
}

// Create inserts a directed follow edge
func (r *GormFollowRepository) Create(follow *models.Follow) error {
	return r.db.Create(follow).Error
}

// Delete removes a directed follow edge
func (r *GormFollowRepository) Delete(followerID, followingID uint64) (bool, error) {
	result := r.db.
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Exists reports whether the directed edge exists
func (r *GormFollowRepository) Exists(followerID, followingID uint64) (bool, error) {
	var follow models.Follow
	err := r.db.
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		First(&follow).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ListFollowing lists edges going out from a user, newest first
func (r *GormFollowRepository) ListFollowing(userID uint64) ([]models.Follow, error) {
	var follows []models.Follow
	err := r.db.
		Where("follower_id = ?", userID).
		Order("created_at DESC").
		Preload("Following").
		Find(&follows).Error
	return follows, err
}

// ListFollowers lists edges coming in to a user, newest first
func (r *GormFollowRepository) ListFollowers(userID uint64) ([]models.Follow, error) {
	var follows []models.Follow
	err := r.db.
		Where("following_id = ?", userID).
		Order("created_at DESC").
		Preload("Follower").
		Find(&follows).Error
	return follows, err
}

// FollowingIDs returns the IDs a user follows
func (r *GormFollowRepository) FollowingIDs(userID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.
		Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Pluck("following_id", &ids).Error
	return ids, err
}

package models

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Follow is a directed edge from a follower to an author. The pair is
// unique; both ends go null when the corresponding account is deleted.
type Follow struct {
	ID        uint      `gorm:"primary_key;autoIncrement" json:"id"`
	UserID    *uint     `gorm:"index;uniqueIndex:idx_follows_unique" json:"user_id"`
	AuthorID  *uint     `gorm:"index;uniqueIndex:idx_follows_unique" json:"author_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// SaveFollow inserts the edge, ignoring a duplicate pair. Returns whether
// a new row was actually created.
func (f *Follow) SaveFollow(db *gorm.DB) (bool, error) {
	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&f)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (f *Follow) FollowExists(db *gorm.DB, userID, authorID uint) (bool, error) {
	var count int64
	err := db.Model(&Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (f *Follow) DeleteFollow(db *gorm.DB, userID, authorID uint) (int64, error) {
	result := db.Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&Follow{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// FollowerIDs returns the IDs of everyone following the given author.
func (f *Follow) FollowerIDs(db *gorm.DB, authorID uint) ([]uint, error) {
	var ids []uint
	err := db.Model(&Follow{}).
		Where("author_id = ? AND user_id IS NOT NULL", authorID).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// OrphanUserFollows nulls the deleted account out of its follow edges and
// fixes up the denormalized counters on the surviving side.
func (f *Follow) OrphanUserFollows(db *gorm.DB, uid uint) error {
	if err := db.Exec(
		"UPDATE users SET followers_count = followers_count - 1 WHERE followers_count > 0 AND id IN (SELECT author_id FROM follows WHERE user_id = ?)",
		uid,
	).Error; err != nil {
		return err
	}
	if err := db.Exec(
		"UPDATE users SET following_count = following_count - 1 WHERE following_count > 0 AND id IN (SELECT user_id FROM follows WHERE author_id = ?)",
		uid,
	).Error; err != nil {
		return err
	}
	if err := db.Model(&Follow{}).Where("user_id = ?", uid).
		Updates(map[string]interface{}{"user_id": nil}).Error; err != nil {
		return err
	}
	return db.Model(&Follow{}).Where("author_id = ?", uid).
		Updates(map[string]interface{}{"author_id": nil}).Error
}

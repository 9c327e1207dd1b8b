package models

import (
	"html"
	"strings"
	"time"

	"gorm.io/gorm"
)

type Group struct {
	ID          uint      `gorm:"primary_key;autoIncrement" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Slug        string    `gorm:"size:100;not null;unique" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	Posts       []Post    `gorm:"foreignKey:GroupID" json:"-"`
	CreatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (g *Group) Prepare() {
	g.Title = html.EscapeString(strings.TrimSpace(g.Title))
	g.Slug = strings.ToLower(strings.TrimSpace(g.Slug))
	g.Description = html.EscapeString(strings.TrimSpace(g.Description))
	g.CreatedAt = time.Now()
	g.UpdatedAt = time.Now()
}

func (g *Group) Validate() map[string]string {
	var errorMessages = make(map[string]string)

	if g.Title == "" {
		errorMessages["Required_title"] = "Title is required"
	}
	if g.Slug == "" {
		errorMessages["Required_slug"] = "Slug is required"
	} else if !isSlug(g.Slug) {
		errorMessages["Invalid_slug"] = "Slug may only contain lowercase letters, digits, hyphens and underscores"
	}
	return errorMessages
}

func isSlug(value string) bool {
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}

func (g *Group) SaveGroup(db *gorm.DB) (*Group, error) {
	if err := db.Create(&g).Error; err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Group) FindAllGroups(db *gorm.DB) (*[]Group, error) {
	groups := []Group{}
	if err := db.Order("title asc").Limit(100).Find(&groups).Error; err != nil {
		return nil, err
	}
	return &groups, nil
}

func (g *Group) FindGroupBySlug(db *gorm.DB, slug string) (*Group, error) {
	var group Group
	err := db.Where("slug = ?", strings.ToLower(strings.TrimSpace(slug))).Take(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (g *Group) UpdateAGroup(db *gorm.DB) (*Group, error) {
	err := db.Model(&Group{}).Where("id = ?", g.ID).Updates(map[string]interface{}{
		"title":       g.Title,
		"slug":        g.Slug,
		"description": g.Description,
		"updated_at":  time.Now(),
	}).Error
	if err != nil {
		return nil, err
	}
	err = db.Where("id = ?", g.ID).Take(&g).Error
	if err != nil {
		return nil, err
	}
	return g, nil
}

// DeleteAGroup removes the group and nulls out the group reference on its
// posts. Posts are never deleted with their group.
func (g *Group) DeleteAGroup(db *gorm.DB, gid uint) (int64, error) {
	var deleted int64
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := (&Post{}).OrphanGroupPosts(tx, gid); err != nil {
			return err
		}
		result := tx.Where("id = ?", gid).Delete(&Group{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

package models

import (
	"html"
	"strings"
	"time"

	"gorm.io/gorm"
)

type Post struct {
	ID        uint      `gorm:"primary_key;autoIncrement" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Author    *User     `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"author,omitempty"`
	AuthorID  *uint     `gorm:"index" json:"author_id"`
	Group     *Group    `gorm:"foreignKey:GroupID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"group,omitempty"`
	GroupID   *uint     `gorm:"index" json:"group_id"`
	ImagePath string    `gorm:"size:255" json:"image_path"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (p *Post) Prepare() {
	p.Text = html.EscapeString(strings.TrimSpace(p.Text))
	p.Author = nil
	p.Group = nil
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
}

func (p *Post) Validate() map[string]string {
	var errorMessages = make(map[string]string)

	if p.Text == "" {
		errorMessages["Required_text"] = "Text is required"
	}
	return errorMessages
}

func (p *Post) SavePost(db *gorm.DB) (*Post, error) {
	if err := db.Create(&p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Post) FindPostByID(db *gorm.DB, pid uint) (*Post, error) {
	var post Post
	err := db.Preload("Author").Preload("Group").First(&post, pid).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Feeds are newest first; ties on the timestamp break on ID so pages are
// stable under concurrent inserts.
const feedOrder = "created_at desc, id desc"

func (p *Post) CountAllPosts(db *gorm.DB) (int64, error) {
	var total int64
	err := db.Model(&Post{}).Count(&total).Error
	return total, err
}

func (p *Post) FindAllPosts(db *gorm.DB, limit, offset int) (*[]Post, error) {
	posts := []Post{}
	err := db.Preload("Author").Preload("Group").
		Order(feedOrder).Limit(limit).Offset(offset).Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return &posts, nil
}

func (p *Post) CountGroupPosts(db *gorm.DB, gid uint) (int64, error) {
	var total int64
	err := db.Model(&Post{}).Where("group_id = ?", gid).Count(&total).Error
	return total, err
}

func (p *Post) FindGroupPosts(db *gorm.DB, gid uint, limit, offset int) (*[]Post, error) {
	posts := []Post{}
	err := db.Preload("Author").Preload("Group").
		Where("group_id = ?", gid).
		Order(feedOrder).Limit(limit).Offset(offset).Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return &posts, nil
}

func (p *Post) CountAuthorPosts(db *gorm.DB, uid uint) (int64, error) {
	var total int64
	err := db.Model(&Post{}).Where("author_id = ?", uid).Count(&total).Error
	return total, err
}

func (p *Post) FindAuthorPosts(db *gorm.DB, uid uint, limit, offset int) (*[]Post, error) {
	posts := []Post{}
	err := db.Preload("Author").Preload("Group").
		Where("author_id = ?", uid).
		Order(feedOrder).Limit(limit).Offset(offset).Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return &posts, nil
}

func (p *Post) CountFollowPosts(db *gorm.DB, uid uint) (int64, error) {
	var total int64
	err := db.Model(&Post{}).
		Joins("JOIN follows ON follows.author_id = posts.author_id").
		Where("follows.user_id = ?", uid).
		Count(&total).Error
	return total, err
}

// FindFollowPosts returns posts authored by anyone the viewer follows.
func (p *Post) FindFollowPosts(db *gorm.DB, uid uint, limit, offset int) (*[]Post, error) {
	posts := []Post{}
	err := db.Preload("Author").Preload("Group").
		Joins("JOIN follows ON follows.author_id = posts.author_id").
		Where("follows.user_id = ?", uid).
		Order("posts.created_at desc, posts.id desc").
		Limit(limit).Offset(offset).Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return &posts, nil
}

func (p *Post) UpdateAPost(db *gorm.DB) (*Post, error) {
	err := db.Model(&Post{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"text":       p.Text,
		"group_id":   p.GroupID,
		"image_path": p.ImagePath,
	}).Error
	if err != nil {
		return nil, err
	}
	err = db.Preload("Author").Preload("Group").First(p, p.ID).Error
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Post) DeleteAPost(db *gorm.DB, pid uint) (int64, error) {
	var deleted int64
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := (&Comment{}).OrphanPostComments(tx, pid); err != nil {
			return err
		}
		result := tx.Where("id = ?", pid).Delete(&Post{})
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

// OrphanUserPosts nulls the author reference on a deleted user's posts.
func (p *Post) OrphanUserPosts(db *gorm.DB, uid uint) error {
	return db.Model(&Post{}).Where("author_id = ?", uid).
		Updates(map[string]interface{}{"author_id": nil}).Error
}

// OrphanGroupPosts nulls the group reference on posts of a deleted group.
func (p *Post) OrphanGroupPosts(db *gorm.DB, gid uint) error {
	return db.Model(&Post{}).Where("group_id = ?", gid).
		Updates(map[string]interface{}{"group_id": nil}).Error
}

package models

import (
	"html"
	"strings"
	"time"

	"gorm.io/gorm"
)

type Comment struct {
	ID        uint      `gorm:"primary_key;autoIncrement" json:"id"`
	Post      *Post     `gorm:"foreignKey:PostID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	PostID    *uint     `gorm:"index" json:"post_id"`
	Author    *User     `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"author,omitempty"`
	AuthorID  *uint     `gorm:"index" json:"author_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Comment) Prepare() {
	c.Text = html.EscapeString(strings.TrimSpace(c.Text))
	c.Author = nil
	c.Post = nil
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
}

func (c *Comment) Validate() map[string]string {
	var errorMessages = make(map[string]string)

	if c.Text == "" {
		errorMessages["Required_text"] = "Text is required"
	}
	if c.PostID == nil {
		errorMessages["Required_post"] = "Post is required"
	}
	return errorMessages
}

func (c *Comment) SaveComment(db *gorm.DB) (*Comment, error) {
	if err := db.Create(&c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Comment) GetPostComments(db *gorm.DB, pid uint) (*[]Comment, error) {
	comments := []Comment{}
	err := db.Preload("Author").Where("post_id = ?", pid).
		Order("created_at desc, id desc").Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return &comments, nil
}

func (c *Comment) CountPostComments(db *gorm.DB, pid uint) (int64, error) {
	var total int64
	err := db.Model(&Comment{}).Where("post_id = ?", pid).Count(&total).Error
	return total, err
}

func (c *Comment) DeleteAComment(db *gorm.DB, cid uint) (int64, error) {
	result := db.Where("id = ?", cid).Delete(&Comment{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// OrphanUserComments nulls the author reference on a deleted user's comments.
func (c *Comment) OrphanUserComments(db *gorm.DB, uid uint) error {
	return db.Model(&Comment{}).Where("author_id = ?", uid).
		Updates(map[string]interface{}{"author_id": nil}).Error
}

// OrphanPostComments nulls the post reference when a post is deleted;
// comments outlive their post.
func (c *Comment) OrphanPostComments(db *gorm.DB, pid uint) error {
	return db.Model(&Comment{}).Where("post_id = ?", pid).
		Updates(map[string]interface{}{"post_id": nil}).Error
}

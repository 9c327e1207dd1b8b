package controllers

import "time"

type UserDTO struct {
	ID             uint      `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	AvatarPath     string    `json:"avatar_path"`
	IsAdmin        bool      `json:"is_admin"`
	FollowersCount int64     `json:"followers_count"`
	FollowingCount int64     `json:"following_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type AuthorDTO struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type GroupDTO struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type PostDTO struct {
	ID        uint       `json:"id"`
	Text      string     `json:"text"`
	Author    *AuthorDTO `json:"author"`
	Group     *GroupDTO  `json:"group"`
	ImagePath string     `json:"image_path"`
	CreatedAt time.Time  `json:"created_at"`
}

type CommentDTO struct {
	ID        uint       `json:"id"`
	PostID    *uint      `json:"post_id"`
	Author    *AuthorDTO `json:"author"`
	Text      string     `json:"text"`
	CreatedAt time.Time  `json:"created_at"`
}

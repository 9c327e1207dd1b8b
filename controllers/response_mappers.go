package controllers

import "Yatube/models"

func userToResponse(user *models.User) UserDTO {
	return UserDTO{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		AvatarPath:     user.AvatarPath,
		IsAdmin:        user.IsAdmin,
		FollowersCount: user.FollowersCount,
		FollowingCount: user.FollowingCount,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}

func authorToDTO(author *models.User) *AuthorDTO {
	// Deleted authors stay null in the payload; the post itself survives.
	if author == nil || author.ID == 0 {
		return nil
	}
	return &AuthorDTO{ID: author.ID, Username: author.Username}
}

func groupToDTO(group *models.Group) *GroupDTO {
	if group == nil || group.ID == 0 {
		return nil
	}
	return &GroupDTO{
		ID:          group.ID,
		Title:       group.Title,
		Slug:        group.Slug,
		Description: group.Description,
	}
}

func postToDTO(post *models.Post) PostDTO {
	return PostDTO{
		ID:        post.ID,
		Text:      post.Text,
		Author:    authorToDTO(post.Author),
		Group:     groupToDTO(post.Group),
		ImagePath: post.ImagePath,
		CreatedAt: post.CreatedAt,
	}
}

func postsToDTOs(posts []models.Post) []PostDTO {
	dtos := make([]PostDTO, len(posts))
	for i := range posts {
		dtos[i] = postToDTO(&posts[i])
	}
	return dtos
}

func commentToDTO(comment *models.Comment) CommentDTO {
	return CommentDTO{
		ID:        comment.ID,
		PostID:    comment.PostID,
		Author:    authorToDTO(comment.Author),
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
	}
}

func commentsToDTOs(comments []models.Comment) []CommentDTO {
	dtos := make([]CommentDTO, len(comments))
	for i := range comments {
		dtos[i] = commentToDTO(&comments[i])
	}
	return dtos
}

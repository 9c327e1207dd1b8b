package controllers

import (
	"Yatube/middlewares"
)

func (s *Server) initializeRoutes() {

	// Site pages
	s.Router.GET("/", s.Index)
	s.Router.GET("/group/:slug/", s.GroupPosts)
	s.Router.GET("/profile/:username/", s.Profile)
	s.Router.GET("/posts/:id/", s.PostDetail)
	s.Router.GET("/follow/", middlewares.LoginRequiredMiddleware(s.DB), s.FollowIndex)

	// Writing routes redirect anonymous visitors to the login page
	s.Router.POST("/create/", middlewares.LoginRequiredMiddleware(s.DB), s.CreatePost)
	s.Router.POST("/posts/:id/edit/", middlewares.LoginRequiredMiddleware(s.DB), s.EditPost)
	s.Router.POST("/posts/:id/comment", middlewares.LoginRequiredMiddleware(s.DB), s.AddComment)
	s.Router.POST("/profile/:username/follow/", middlewares.LoginRequiredMiddleware(s.DB), s.ProfileFollow)
	s.Router.POST("/profile/:username/unfollow/", middlewares.LoginRequiredMiddleware(s.DB), s.ProfileUnfollow)

	// Static pages
	s.Router.GET("/about/author/", s.AboutAuthor)
	s.Router.GET("/about/tech/", s.AboutTech)

	// Auth routes
	s.Router.POST("/auth/signup/", s.CreateUser)
	s.Router.GET("/auth/login/", s.LoginForm)
	s.Router.POST("/auth/login/", middlewares.LoginRateLimitMiddleware(), s.Login)

	// Users routes
	s.Router.GET("/users/", s.GetUsers)
	s.Router.GET("/users/:id", s.GetUser)
	s.Router.PUT("/users/:id", middlewares.TokenAuthMiddleware(s.DB), s.UpdateUser)
	s.Router.PUT("/users/:id/avatar", middlewares.TokenAuthMiddleware(s.DB), s.UpdateAvatar)
	s.Router.DELETE("/users/:id", middlewares.TokenAuthMiddleware(s.DB), s.DeleteUser)

	// Group administration
	s.Router.GET("/groups/", s.GetGroups)
	s.Router.POST("/groups/", middlewares.TokenAuthMiddleware(s.DB), middlewares.AdminOnlyMiddleware(), s.CreateGroup)
	s.Router.PUT("/group/:slug/", middlewares.TokenAuthMiddleware(s.DB), middlewares.AdminOnlyMiddleware(), s.UpdateGroup)
	s.Router.DELETE("/group/:slug/", middlewares.TokenAuthMiddleware(s.DB), middlewares.AdminOnlyMiddleware(), s.DeleteGroup)
}

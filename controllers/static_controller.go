package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AboutAuthor serves the static author page.
func (server *Server) AboutAuthor(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"response": gin.H{
			"title": "Об авторе проекта",
			"text":  "Автор этого проекта учится бэкенд-разработке и пишет этот сайт как учебную работу.",
		},
	})
}

// AboutTech serves the static technology page.
func (server *Server) AboutTech(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"response": gin.H{
			"title": "Технологии",
			"text":  "Сайт написан на Go c использованием Gin и GORM, кэширует ленты в Redis и хранит изображения в S3.",
		},
	})
}

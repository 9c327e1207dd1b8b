package middlewares

import (
	"net/http"
	"os"
	"strings"

	"Yatube/auth"
	"Yatube/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TokenAuthMiddleware rejects requests without a valid token. Used for the
// API-style routes (user and group management).
func TokenAuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := auth.ExtractTokenID(c.Request)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		var user models.User
		if err := db.Select("id", "is_admin").First(&user, userID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		c.Set("userID", userID)
		c.Set("isAdmin", user.IsAdmin)
		c.Next()
	}
}

// LoginRequiredMiddleware guards the browser-style routes. An
// unauthenticated request is sent to the login page with the original
// path preserved in the "next" parameter, never failed hard.
func LoginRequiredMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := auth.ExtractTokenID(c.Request)
		if err != nil {
			redirectToLogin(c)
			return
		}

		var user models.User
		if err := db.Select("id", "is_admin").First(&user, userID).Error; err != nil {
			redirectToLogin(c)
			return
		}

		c.Set("userID", userID)
		c.Set("isAdmin", user.IsAdmin)
		c.Next()
	}
}

func redirectToLogin(c *gin.Context) {
	// The path goes into "next" unescaped, the way Django's login_required
	// builds it, so clients land back on the page they asked for.
	c.Redirect(http.StatusFound, "/auth/login/?next="+c.Request.URL.Path)
	c.Abort()
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		allowed := []string{"http://localhost:3000"}
		if extra := os.Getenv("ALLOWED_ORIGINS"); extra != "" {
			for _, o := range strings.Split(extra, ",") {
				if trimmed := strings.TrimSpace(o); trimmed != "" {
					allowed = append(allowed, trimmed)
				}
			}
		}

		for _, o := range allowed {
			if o == origin {
				c.Writer.Header().Set("Access-Control-Allow-Origin", o)
				break
			}
		}

		c.Writer.Header().Set("Vary", "Origin")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers",
			"Content-Type, Authorization, Content-Length, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods",
			"POST, GET, OPTIONS, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

package controllers

import (
	"net/http"

	"Yatube/auth"
	"Yatube/models"
	"Yatube/security"
	"Yatube/utils/formaterror"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// Login godoc
// @Summary      Log in
// @Description  Exchange email and password for a JWT.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Router       /auth/login/ [post]
func (server *Server) Login(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Cannot unmarshal body",
		})
		return
	}

	user.Prepare()
	errorMessages := user.Validate("login")
	if len(errorMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errorMessages,
		})
		return
	}

	userData, err := server.SignIn(user.Email, user.Password)
	if err != nil {
		formattedError := formaterror.FormatError(err.Error())
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  formattedError,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": userData,
	})
}

// SignIn verifies the credentials and returns the user details with a
// signed token.
func (server *Server) SignIn(email, password string) (map[string]interface{}, error) {
	userData := make(map[string]interface{})

	user := models.User{}
	if err := server.DB.Model(models.User{}).Where("email = ?", email).Take(&user).Error; err != nil {
		return nil, err
	}
	err := security.VerifyPassword(user.Password, password)
	if err != nil && err == bcrypt.ErrMismatchedHashAndPassword {
		return nil, err
	}
	token, err := auth.CreateToken(user.ID)
	if err != nil {
		return nil, err
	}

	userData["token"] = token
	userData["id"] = user.ID
	userData["username"] = user.Username
	userData["email"] = user.Email
	userData["avatar_path"] = user.AvatarPath
	return userData, nil
}

// LoginForm is where anonymous writers land when a page needs a login
// first. The next parameter carries the page they came from.
func (server *Server) LoginForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"response": gin.H{
			"title": "Войти",
			"next":  c.Query("next"),
		},
	})
}

package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tada170/POSS/config"
	"github.com/tada170/POSS/database"
	"github.com/tada170/POSS/models"
	"github.com/tada170/POSS/token"
	"gorm.io/gorm"
)

// Login never tells the caller whether the email or the password was wrong.
func Login(context *gin.Context) {
	var payload LoginPayload
	if err := context.ShouldBindJSON(&payload); err != nil {
		context.JSON(http.StatusBadRequest, ErrorResponse{Error: "Does not bind schema"})
		context.Abort()
		return
	}

	user, getError := models.GetUserByEmail(payload.Email)
	if getError != nil {
		if !errors.Is(getError, gorm.ErrRecordNotFound) {
			context.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Could not make search result"})
			context.Abort()
			return
		}
		context.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
		context.Abort()
		return
	}
	if !user.ValidatePassword(payload.Password) {
		context.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
		context.Abort()
		return
	}

	signedToken, err := token.GenerateToken(user)
	if err != nil {
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Error generating tokens"})
		context.Abort()
		return
	}

	expiresAt := time.Now().Add(time.Minute * time.Duration(config.Cfg.Server.ExpirationMinutes))
	session := models.Session{
		Token:     signedToken,
		UserID:    user.ID,
		RoleID:    user.RoleID,
		ExpiresAt: expiresAt,
	}
	if res := database.PostgresDB.Create(&session); res.Error != nil {
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Could not create session"})
		context.Abort()
		return
	}

	var role models.Role
	if res := database.PostgresDB.Where("ID = ?", user.RoleID).First(&role); res.Error != nil {
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Could not make search result"})
		context.Abort()
		return
	}

	context.SetCookie("session", signedToken,
		config.Cfg.Server.ExpirationMinutes*60, "/", "", false, true)
	context.JSON(http.StatusOK, LoginResponse{
		Token:     signedToken,
		UserID:    user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		RoleID:    user.RoleID,
		Role:      role.Name,
	})
}

// Logout drops the server-side session row, the token is dead afterwards
// even though its signature stays valid until expiry.
func Logout(context *gin.Context) {
	sessionToken, ok := context.Get("session_token")
	if !ok {
		context.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authorization failed"})
		context.Abort()
		return
	}
	if res := database.PostgresDB.Where("token = ?", sessionToken).
		Delete(&models.Session{}); res.Error != nil {
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Could not destroy session"})
		context.Abort()
		return
	}
	context.SetCookie("session", "", -1, "/", "", false, true)
	context.JSON(http.StatusOK, MessageResponse{Message: "Logged out"})
}

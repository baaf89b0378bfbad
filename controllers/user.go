package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tada170/POSS/database"
	"github.com/tada170/POSS/models"
	"gorm.io/gorm"
)

func GetUsers(context *gin.Context) {
	var users []UserSchema

	err := database.PostgresDB.Model(models.User{}).
		Select("users.id as user_id, users.first_name, users.last_name, users.email, users.role_id, roles.name as role").
		Joins("left join roles on roles.id = users.role_id").
		Order("users.id").Scan(&users).Error
	if err != nil {
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		context.Abort()
		return
	}
	context.JSON(http.StatusOK, users)
}

func GetUser(context *gin.Context) {
	var user UserSchema

	res := database.PostgresDB.Model(models.User{}).
		Select("users.id as user_id, users.first_name, users.last_name, users.email, users.role_id, roles.name as role").
		Joins("left join roles on roles.id = users.role_id").
		Where("users.id = ?", context.Param("id")).Scan(&user)
	if res.Error != nil {
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: res.Error.Error()})
		context.Abort()
		return
	}
	if res.RowsAffected == 0 {
		context.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
		context.Abort()
		return
	}
	context.JSON(http.StatusOK, user)
}

func CreateUser(context *gin.Context) {
	var user models.User
	if err := context.ShouldBindJSON(&user); err != nil {
		context.JSON(http.StatusBadRequest, ErrorResponse{Error: "Does not bind schema"})
		context.Abort()
		return
	}
	if user.Password == "" {
		context.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing password"})
		context.Abort()
		return
	}

	hashedPassword, err := models.HashPassword(user.Password)
	if err != nil {
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Could not hash password"})
		context.Abort()
		return
	}
	user.Password = hashedPassword

	if err := user.CreateUser(); err != nil {
		if isUniqueViolation(err) {
			context.JSON(http.StatusConflict, ErrorResponse{Error: "Email already in use"})
			context.Abort()
			return
		}
		if isForeignKeyViolation(err) {
			context.JSON(http.StatusConflict, ErrorResponse{Error: "No such role"})
			context.Abort()
			return
		}
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Could not create user"})
		context.Abort()
		return
	}
	context.JSON(http.StatusCreated, gin.H{"UzivatelID": user.ID})
}

func UpdateUser(context *gin.Context) {
	var payload models.User
	if err := context.ShouldBindJSON(&payload); err != nil {
		context.JSON(http.StatusBadRequest, ErrorResponse{Error: "Does not bind schema"})
		context.Abort()
		return
	}

	var user models.User
	if res := database.PostgresDB.Where("ID = ?", context.Param("id")).First(&user); res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			context.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
		} else {
			context.JSON(http.StatusInternalServerError, ErrorResponse{Error: res.Error.Error()})
		}
		context.Abort()
		return
	}

	updates := map[string]interface{}{
		"first_name": payload.FirstName,
		"last_name":  payload.LastName,
		"email":      payload.Email,
		"role_id":    payload.RoleID,
	}
	// password changes only when a new one is sent
	if payload.Password != "" {
		hashedPassword, err := models.HashPassword(payload.Password)
		if err != nil {
			context.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Could not hash password"})
			context.Abort()
			return
		}
		updates["password"] = hashedPassword
	}

	if err := database.PostgresDB.Model(&user).Updates(updates).Error; err != nil {
		if isUniqueViolation(err) {
			context.JSON(http.StatusConflict, ErrorResponse{Error: "Email already in use"})
			context.Abort()
			return
		}
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Could not update user"})
		context.Abort()
		return
	}
	context.JSON(http.StatusOK, MessageResponse{Message: "User updated successfully"})
}

func DeleteUser(context *gin.Context) {
	var user models.User
	if res := database.PostgresDB.Where("ID = ?", context.Param("id")).First(&user); res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			context.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
		} else {
			context.JSON(http.StatusInternalServerError, ErrorResponse{Error: res.Error.Error()})
		}
		context.Abort()
		return
	}

	var orders int64
	if err := database.PostgresDB.Model(models.Transaction{}).
		Where("user_id = ?", user.ID).Count(&orders).Error; err != nil {
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		context.Abort()
		return
	}
	if orders > 0 {
		context.JSON(http.StatusConflict, ErrorResponse{Error: "Cannot delete user with associated orders"})
		context.Abort()
		return
	}

	if err := database.PostgresDB.Delete(&user).Error; err != nil {
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Could not delete user"})
		context.Abort()
		return
	}
	context.Status(http.StatusNoContent)
}

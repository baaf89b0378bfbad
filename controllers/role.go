package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tada170/POSS/database"
	"github.com/tada170/POSS/models"
	"gorm.io/gorm"
)

func GetRoles(context *gin.Context) {
	var roles []models.Role
	if err := database.PostgresDB.Order("id").Find(&roles).Error; err != nil {
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		context.Abort()
		return
	}
	context.JSON(http.StatusOK, roles)
}

func CreateRole(context *gin.Context) {
	var payload NamePayload
	if err := context.ShouldBindJSON(&payload); err != nil {
		context.JSON(http.StatusBadRequest, ErrorResponse{Error: "Does not bind schema"})
		context.Abort()
		return
	}

	role := models.Role{Name: payload.Name}
	if err := database.PostgresDB.Create(&role).Error; err != nil {
		if isUniqueViolation(err) {
			context.JSON(http.StatusConflict, ErrorResponse{Error: "Role already exists"})
			context.Abort()
			return
		}
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Could not create role"})
		context.Abort()
		return
	}
	context.JSON(http.StatusCreated, gin.H{"RoleID": role.ID})
}

func DeleteRole(context *gin.Context) {
	var role models.Role
	if res := database.PostgresDB.Where("ID = ?", context.Param("id")).First(&role); res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			context.JSON(http.StatusNotFound, ErrorResponse{Error: "Role not found"})
		} else {
			context.JSON(http.StatusInternalServerError, ErrorResponse{Error: res.Error.Error()})
		}
		context.Abort()
		return
	}

	var users int64
	if err := database.PostgresDB.Model(models.User{}).
		Where("role_id = ?", role.ID).Count(&users).Error; err != nil {
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		context.Abort()
		return
	}
	if users > 0 {
		context.JSON(http.StatusConflict, ErrorResponse{Error: "Cannot delete role with associated users"})
		context.Abort()
		return
	}

	if err := database.PostgresDB.Delete(&role).Error; err != nil {
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Could not delete role"})
		context.Abort()
		return
	}
	context.Status(http.StatusNoContent)
}

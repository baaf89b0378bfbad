package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tada170/POSS/database"
	"github.com/tada170/POSS/models"
	"gorm.io/gorm"
)

func GetCategories(context *gin.Context) {
	var categories []models.Category
	if err := database.PostgresDB.Order("id").Find(&categories).Error; err != nil {
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		context.Abort()
		return
	}
	context.JSON(http.StatusOK, categories)
}

func CreateCategory(context *gin.Context) {
	var payload NamePayload
	if err := context.ShouldBindJSON(&payload); err != nil {
		context.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing category name"})
		context.Abort()
		return
	}

	category := models.Category{Name: payload.Name}
	if err := database.PostgresDB.Create(&category).Error; err != nil {
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Could not create category"})
		context.Abort()
		return
	}
	context.JSON(http.StatusCreated, MessageResponse{Message: "Category added successfully"})
}

func UpdateCategory(context *gin.Context) {
	var payload NamePayload
	if err := context.ShouldBindJSON(&payload); err != nil {
		context.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing category name"})
		context.Abort()
		return
	}

	res := database.PostgresDB.Model(models.Category{}).
		Where("ID = ?", context.Param("id")).Update("Name", payload.Name)
	if res.Error != nil {
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Could not update category"})
		context.Abort()
		return
	}
	if res.RowsAffected == 0 {
		context.JSON(http.StatusNotFound, ErrorResponse{Error: "Category not found"})
		context.Abort()
		return
	}
	context.JSON(http.StatusOK, MessageResponse{Message: "Category updated successfully"})
}

func DeleteCategory(context *gin.Context) {
	var category models.Category
	if res := database.PostgresDB.Where("ID = ?", context.Param("id")).First(&category); res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			context.JSON(http.StatusNotFound, ErrorResponse{Error: "Category not found"})
		} else {
			context.JSON(http.StatusInternalServerError, ErrorResponse{Error: res.Error.Error()})
		}
		context.Abort()
		return
	}

	var products int64
	if err := database.PostgresDB.Model(models.Product{}).
		Where("category_id = ?", category.ID).Count(&products).Error; err != nil {
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		context.Abort()
		return
	}
	if products > 0 {
		context.JSON(http.StatusConflict, ErrorResponse{Error: "Cannot delete category with associated products"})
		context.Abort()
		return
	}

	if err := database.PostgresDB.Delete(&category).Error; err != nil {
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Could not delete category"})
		context.Abort()
		return
	}
	context.JSON(http.StatusOK, MessageResponse{Message: "Category deleted successfully"})
}

package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tada170/POSS/database"
	"github.com/tada170/POSS/models"
	"gorm.io/gorm"
)

func GetAllergens(context *gin.Context) {
	var allergens []models.Allergen
	if err := database.PostgresDB.Order("id").Find(&allergens).Error; err != nil {
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		context.Abort()
		return
	}
	context.JSON(http.StatusOK, allergens)
}

func CreateAllergen(context *gin.Context) {
	var payload NamePayload
	if err := context.ShouldBindJSON(&payload); err != nil {
		context.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing allergen name"})
		context.Abort()
		return
	}

	allergen := models.Allergen{Name: payload.Name}
	if err := database.PostgresDB.Create(&allergen).Error; err != nil {
		if isUniqueViolation(err) {
			context.JSON(http.StatusConflict, ErrorResponse{Error: "Allergen already exists"})
			context.Abort()
			return
		}
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Could not create allergen"})
		context.Abort()
		return
	}
	context.JSON(http.StatusCreated, gin.H{"AlergenID": allergen.ID})
}

func DeleteAllergen(context *gin.Context) {
	var allergen models.Allergen
	if res := database.PostgresDB.Where("ID = ?", context.Param("id")).First(&allergen); res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			context.JSON(http.StatusNotFound, ErrorResponse{Error: "Allergen not found"})
		} else {
			context.JSON(http.StatusInternalServerError, ErrorResponse{Error: res.Error.Error()})
		}
		context.Abort()
		return
	}

	var links int64
	if err := database.PostgresDB.Table("product_allergens").
		Where("allergen_id = ?", allergen.ID).Count(&links).Error; err != nil {
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		context.Abort()
		return
	}
	if links > 0 {
		context.JSON(http.StatusConflict, ErrorResponse{Error: "Cannot delete allergen with associated products"})
		context.Abort()
		return
	}

	if err := database.PostgresDB.Delete(&allergen).Error; err != nil {
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Could not delete allergen"})
		context.Abort()
		return
	}
	context.Status(http.StatusNoContent)
}

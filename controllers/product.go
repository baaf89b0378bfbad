package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tada170/POSS/database"
	"github.com/tada170/POSS/models"
	"gorm.io/gorm"
)

func GetProducts(context *gin.Context) {
	var products []models.Product
	if err := database.PostgresDB.Preload("Allergens").Order("id").Find(&products).Error; err != nil {
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		context.Abort()
		return
	}
	context.JSON(http.StatusOK, products)
}

func GetProductsByCategory(context *gin.Context) {
	var products []models.Product
	err := database.PostgresDB.Preload("Allergens").
		Where("category_id = ?", context.Param("categoryId")).
		Order("id").Find(&products).Error
	if err != nil {
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		context.Abort()
		return
	}
	if len(products) == 0 {
		context.JSON(http.StatusNotFound, ErrorResponse{Error: "No products in category"})
		context.Abort()
		return
	}
	context.JSON(http.StatusOK, products)
}

func CreateProduct(context *gin.Context) {
	var payload ProductPayload
	if err := context.ShouldBindJSON(&payload); err != nil {
		context.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing product details"})
		context.Abort()
		return
	}
	if *payload.Price < 0 {
		context.JSON(http.StatusBadRequest, ErrorResponse{Error: "Price must not be negative"})
		context.Abort()
		return
	}
	if payload.CategoryID == 0 {
		context.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing product details"})
		context.Abort()
		return
	}

	product := models.Product{
		Name:       payload.Name,
		Price:      *payload.Price,
		CategoryID: payload.CategoryID,
	}
	for _, allergenId := range payload.Allergens {
		product.Allergens = append(product.Allergens, models.Allergen{ID: allergenId})
	}

	// product row and its allergen links land in one transaction
	err := database.PostgresDB.Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Allergens.*").Create(&product).Error
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			context.JSON(http.StatusConflict, ErrorResponse{Error: "No such category or allergen"})
			context.Abort()
			return
		}
		if isCheckViolation(err) {
			context.JSON(http.StatusBadRequest, ErrorResponse{Error: "Price must not be negative"})
			context.Abort()
			return
		}
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Could not create product"})
		context.Abort()
		return
	}
	context.JSON(http.StatusCreated, gin.H{"ProduktID": product.ID})
}

func UpdateProduct(context *gin.Context) {
	var payload ProductPayload
	if err := context.ShouldBindJSON(&payload); err != nil {
		context.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing product details"})
		context.Abort()
		return
	}
	if *payload.Price < 0 {
		context.JSON(http.StatusBadRequest, ErrorResponse{Error: "Price must not be negative"})
		context.Abort()
		return
	}

	var product models.Product
	if res := database.PostgresDB.Where("ID = ?", context.Param("id")).First(&product); res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			context.JSON(http.StatusNotFound, ErrorResponse{Error: "Product not found"})
		} else {
			context.JSON(http.StatusInternalServerError, ErrorResponse{Error: res.Error.Error()})
		}
		context.Abort()
		return
	}

	allergens := make([]models.Allergen, 0, len(payload.Allergens))
	for _, allergenId := range payload.Allergens {
		allergens = append(allergens, models.Allergen{ID: allergenId})
	}

	// scalar update plus a full relink of the allergen set, atomically
	err := database.PostgresDB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"name":  payload.Name,
			"price": *payload.Price,
		}
		if payload.CategoryID != 0 {
			updates["category_id"] = payload.CategoryID
		}
		if err := tx.Model(&product).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM product_allergens WHERE product_id = ?", product.ID).Error; err != nil {
			return err
		}
		for _, allergen := range allergens {
			if err := tx.Exec("INSERT INTO product_allergens (product_id, allergen_id) VALUES (?, ?)",
				product.ID, allergen.ID).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			context.JSON(http.StatusConflict, ErrorResponse{Error: "No such category or allergen"})
			context.Abort()
			return
		}
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Could not update product"})
		context.Abort()
		return
	}
	context.JSON(http.StatusOK, MessageResponse{Message: "Product updated successfully"})
}

func DeleteProduct(context *gin.Context) {
	var product models.Product
	if res := database.PostgresDB.Where("ID = ?", context.Param("id")).First(&product); res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			context.JSON(http.StatusNotFound, ErrorResponse{Error: "Product not found"})
		} else {
			context.JSON(http.StatusInternalServerError, ErrorResponse{Error: res.Error.Error()})
		}
		context.Abort()
		return
	}

	// cascade: item rows, then allergen links, then the product itself
	err := database.PostgresDB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", product.ID).
			Delete(&models.TransactionItem{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM product_allergens WHERE product_id = ?", product.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&product).Error
	})
	if err != nil {
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Could not delete product"})
		context.Abort()
		return
	}
	context.Status(http.StatusNoContent)
}

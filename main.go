package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tada170/POSS/config"
	"github.com/tada170/POSS/controllers"
	"github.com/tada170/POSS/database"
	"github.com/tada170/POSS/middleware"
	"github.com/tada170/POSS/models"
	"gorm.io/gorm"
)

const RoleAdmin = "Admin"

func initRouter(api *gin.RouterGroup) {

	api.GET("/healthcheck", func(c *gin.Context) {})
	api.POST("/users/login", controllers.Login)
	api.Use(middleware.Authenticate)
	{
		api.POST("/users/logout", controllers.Logout)

		api.GET("/users", controllers.GetUsers)
		api.GET("/users/:id", controllers.GetUser)
		api.POST("/users", middleware.RequireRole(RoleAdmin), controllers.CreateUser)
		api.PUT("/users/:id", middleware.RequireRole(RoleAdmin), controllers.UpdateUser)
		api.DELETE("/users/:id", middleware.RequireRole(RoleAdmin), controllers.DeleteUser)

		api.GET("/roles", controllers.GetRoles)
		api.POST("/roles", middleware.RequireRole(RoleAdmin), controllers.CreateRole)
		api.DELETE("/roles/:id", middleware.RequireRole(RoleAdmin), controllers.DeleteRole)

		api.GET("/categories", controllers.GetCategories)
		api.POST("/categories", controllers.CreateCategory)
		api.PUT("/categories/:id", controllers.UpdateCategory)
		api.DELETE("/categories/:id", controllers.DeleteCategory)

		api.GET("/allergens", controllers.GetAllergens)
		api.POST("/allergens", controllers.CreateAllergen)
		api.DELETE("/allergens/:id", controllers.DeleteAllergen)

		api.GET("/products", controllers.GetProducts)
		api.GET("/products/category/:categoryId", controllers.GetProductsByCategory)
		api.POST("/products", controllers.CreateProduct)
		api.PUT("/products/:id", controllers.UpdateProduct)
		api.DELETE("/products/:id", controllers.DeleteProduct)

		api.GET("/orders", controllers.GetOrders)
		api.POST("/orders", controllers.CreateOrder)
		api.GET("/orders/user/:userId", controllers.GetOrdersByUser)
		api.GET("/orders/:id", controllers.GetOrder)
		api.DELETE("/orders/:id", controllers.DeleteOrder)
		api.POST("/orders/:id/items", controllers.AddOrderItems)
		api.GET("/orders/:id/remaining", controllers.GetRemainingItems)
		api.PATCH("/orders/:id/payment", controllers.UpdatePayment)
	}
}
func MigrateDB() error {
	if err := database.PostgresDB.AutoMigrate(
		&models.Role{}, &models.User{}, &models.Category{}, &models.Allergen{},
		&models.Product{}, &models.Transaction{}, &models.TransactionItem{},
		&models.Session{}); err != nil {
		return err
	}
	return nil
}
func LoadRoles() error {
	content, readErr := ioutil.ReadFile("data/roles.json")
	if readErr != nil {
		return readErr
	}
	var roles []models.Role
	if err := json.Unmarshal(content, &roles); err != nil {
		return err
	}
	for _, role := range roles {
		if err := database.PostgresDB.Create(&role).Error; err != nil {
			var pgErr *pgconn.PgError
			if errors.Is(err, gorm.ErrDuplicatedKey) || (errors.As(err, &pgErr) && pgErr.Code == "23505") {
				continue
			}
			return err
		}
	}
	return nil
}
func LoadAllergens() error {
	content, readErr := ioutil.ReadFile("data/allergens.json")
	if readErr != nil {
		return readErr
	}
	var allergens []models.Allergen
	if err := json.Unmarshal(content, &allergens); err != nil {
		return err
	}
	for _, allergen := range allergens {
		if err := database.PostgresDB.Create(&allergen).Error; err != nil {
			var pgErr *pgconn.PgError
			if errors.Is(err, gorm.ErrDuplicatedKey) || (errors.As(err, &pgErr) && pgErr.Code == "23505") {
				continue
			}
			return err
		}
	}
	return nil
}

func main() {
	config.Cfg.Init()
	if err := database.InitDatabase(); err != nil {
		panic(err)
	}
	if err := MigrateDB(); err != nil {
		panic(err)
	}
	if err := LoadRoles(); err != nil {
		panic(err)
	}
	if err := LoadAllergens(); err != nil {
		panic(err)
	}
	r := gin.Default()
	api := r.Group("/api")
	initRouter(api)

	if err := r.Run(fmt.Sprintf(":%s", config.Cfg.Server.Port)); err != nil {
		panic("[Error] failed to start Gin server due to: " + err.Error())
	}
}

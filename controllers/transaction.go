package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tada170/POSS/database"
	"github.com/tada170/POSS/models"
	"gorm.io/gorm"
)

const orderListSelect = `transactions.id as order_id, transactions.name as order_name,
	users.first_name || ' ' || users.last_name as owner_name,
	transactions.created_at as order_date, transactions.paid as order_paid,
	transaction_items.id as item_id, transaction_items.product_id,
	products.name as product_name, transaction_items.quantity,
	transaction_items.price, transaction_items.paid as item_paid,
	allergens.name as allergen`

func orderListQuery(db *gorm.DB) *gorm.DB {
	return db.Model(models.Transaction{}).
		Select(orderListSelect).
		Joins("left join users on users.id = transactions.user_id").
		Joins("left join transaction_items on transaction_items.transaction_id = transactions.id and transaction_items.deleted_at is null").
		Joins("left join products on products.id = transaction_items.product_id").
		Joins("left join product_allergens on product_allergens.product_id = transaction_items.product_id").
		Joins("left join allergens on allergens.id = product_allergens.allergen_id").
		Order("transactions.id, transaction_items.id, allergens.id")
}

// BuildOrderSchemas folds the flat join rows into nested orders. Rows arrive
// ordered by (order, item, allergen); items keep first-seen order within
// their order and allergen names are deduplicated per item.
func BuildOrderSchemas(rows []OrderRow) []OrderSchema {
	orders := make([]OrderSchema, 0)
	orderIndex := make(map[uint]int)
	itemIndex := make(map[uint]map[uint]int)

	for _, row := range rows {
		pos, seen := orderIndex[row.OrderID]
		if !seen {
			pos = len(orders)
			orderIndex[row.OrderID] = pos
			itemIndex[row.OrderID] = make(map[uint]int)
			orders = append(orders, OrderSchema{
				OrderID:   row.OrderID,
				Name:      row.OrderName,
				OwnerName: row.OwnerName,
				Date:      row.OrderDate,
				Paid:      row.OrderPaid,
				Items:     []OrderItemSchema{},
			})
		}
		if row.ItemID == nil {
			continue
		}

		items := &orders[pos].Items
		itemPos, itemSeen := itemIndex[row.OrderID][*row.ItemID]
		if !itemSeen {
			item := OrderItemSchema{
				ItemID:    *row.ItemID,
				Allergens: []string{},
			}
			if row.ProductID != nil {
				item.ProductID = *row.ProductID
			}
			if row.ProductName != nil {
				item.ProductName = *row.ProductName
			}
			if row.Quantity != nil {
				item.Quantity = *row.Quantity
			}
			if row.Price != nil {
				item.Price = *row.Price
			}
			if row.ItemPaid != nil {
				item.Paid = *row.ItemPaid
			}
			if row.Allergen != nil {
				item.Allergens = append(item.Allergens, *row.Allergen)
			}
			itemIndex[row.OrderID][*row.ItemID] = len(*items)
			*items = append(*items, item)
			continue
		}

		if row.Allergen == nil {
			continue
		}
		item := &(*items)[itemPos]
		duplicate := false
		for _, name := range item.Allergens {
			if name == *row.Allergen {
				duplicate = true
				break
			}
		}
		if !duplicate {
			item.Allergens = append(item.Allergens, *row.Allergen)
		}
	}
	return orders
}

func GetOrders(context *gin.Context) {
	var rows []OrderRow
	if err := orderListQuery(database.PostgresDB).Scan(&rows).Error; err != nil {
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		context.Abort()
		return
	}
	context.JSON(http.StatusOK, BuildOrderSchemas(rows))
}

func GetOrder(context *gin.Context) {
	var rows []OrderRow
	err := orderListQuery(database.PostgresDB).
		Where("transactions.id = ?", context.Param("id")).Scan(&rows).Error
	if err != nil {
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		context.Abort()
		return
	}
	orders := BuildOrderSchemas(rows)
	if len(orders) == 0 {
		context.JSON(http.StatusNotFound, ErrorResponse{Error: "Order not found"})
		context.Abort()
		return
	}
	context.JSON(http.StatusOK, orders[0])
}

func GetOrdersByUser(context *gin.Context) {
	orders := make([]OrderSummarySchema, 0)
	err := database.PostgresDB.Model(models.Transaction{}).
		Select("id as order_id, name as order_name, created_at as order_date, paid as order_paid").
		Where("user_id = ?", context.Param("userId")).
		Order("created_at desc").Scan(&orders).Error
	if err != nil {
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		context.Abort()
		return
	}
	context.JSON(http.StatusOK, orders)
}

func CreateOrder(context *gin.Context) {
	var payload CreateOrderPayload
	if err := context.ShouldBindJSON(&payload); err != nil {
		context.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing order name"})
		context.Abort()
		return
	}

	userId, ok := context.Get("user_id")
	if !ok {
		context.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authorization failed"})
		context.Abort()
		return
	}

	order := models.Transaction{Name: payload.Name, UserID: userId.(uint)}
	if err := database.PostgresDB.Create(&order).Error; err != nil {
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Could not create order"})
		context.Abort()
		return
	}
	context.JSON(http.StatusCreated, gin.H{"TransakceID": order.ID})
}

func DeleteOrder(context *gin.Context) {
	var order models.Transaction
	if res := database.PostgresDB.Where("ID = ?", context.Param("id")).First(&order); res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			context.JSON(http.StatusNotFound, ErrorResponse{Error: "Order not found"})
		} else {
			context.JSON(http.StatusInternalServerError, ErrorResponse{Error: res.Error.Error()})
		}
		context.Abort()
		return
	}

	err := database.PostgresDB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("transaction_id = ?", order.ID).
			Delete(&models.TransactionItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
	if err != nil {
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Could not delete order"})
		context.Abort()
		return
	}
	context.Status(http.StatusNoContent)
}

// AddOrderItems expands every requested quantity into single-unit rows so
// each row can later be paid on its own, snapshotting the product price.
func AddOrderItems(context *gin.Context) {
	var items []OrderItemPayload
	if err := context.ShouldBindJSON(&items); err != nil {
		context.JSON(http.StatusBadRequest, ErrorResponse{Error: "Does not bind schema"})
		context.Abort()
		return
	}
	if len(items) == 0 {
		context.JSON(http.StatusBadRequest, ErrorResponse{Error: "Order must contain at least one item"})
		context.Abort()
		return
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			context.JSON(http.StatusBadRequest,
				ErrorResponse{Error: fmt.Sprintf("Invalid quantity for product %d", item.ProductID)})
			context.Abort()
			return
		}
		if item.Price != nil && *item.Price < 0 {
			context.JSON(http.StatusBadRequest,
				ErrorResponse{Error: fmt.Sprintf("Invalid price for product %d", item.ProductID)})
			context.Abort()
			return
		}
	}

	var order models.Transaction
	if res := database.PostgresDB.Where("ID = ?", context.Param("id")).First(&order); res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			context.JSON(http.StatusNotFound, ErrorResponse{Error: "Order not found"})
		} else {
			context.JSON(http.StatusInternalServerError, ErrorResponse{Error: res.Error.Error()})
		}
		context.Abort()
		return
	}

	err := database.PostgresDB.Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			price := item.Price
			if price == nil {
				var product models.Product
				if res := tx.Where("ID = ?", item.ProductID).First(&product); res.Error != nil {
					return res.Error
				}
				price = &product.Price
			}
			for i := 0; i < item.Quantity; i++ {
				row := models.TransactionItem{
					TransactionID: order.ID,
					ProductID:     item.ProductID,
					Quantity:      1,
					Price:         *price,
				}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}
		}
		// new unpaid rows reopen the tab
		return tx.Model(&order).Update("Paid", false).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || isForeignKeyViolation(err) {
			context.JSON(http.StatusNotFound, ErrorResponse{Error: "Product not found"})
			context.Abort()
			return
		}
		if isCheckViolation(err) {
			context.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid order item"})
			context.Abort()
			return
		}
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Could not add order items"})
		context.Abort()
		return
	}
	context.JSON(http.StatusCreated, MessageResponse{Message: "Items added to order successfully"})
}

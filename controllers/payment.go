package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tada170/POSS/database"
	"github.com/tada170/POSS/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var errInsufficientRemaining = errors.New("payment quantity exceeds remaining unpaid items")

// GetRemainingItems reports, per product, how many unpaid unit rows the
// order still carries.
func GetRemainingItems(context *gin.Context) {
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

	var remaining []RemainingSchema
	err := database.PostgresDB.Model(models.TransactionItem{}).
		Select("product_id, sum(quantity) as quantity").
		Where("transaction_id = ? AND paid = ?", order.ID, false).
		Group("product_id").
		Order("product_id").Scan(&remaining).Error
	if err != nil {
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		context.Abort()
		return
	}
	if remaining == nil {
		remaining = []RemainingSchema{}
	}
	context.JSON(http.StatusOK, remaining)
}

// payLines marks, for each request line, the oldest unpaid rows of that
// product as paid. Any line asking for more than remains fails the whole
// batch, nothing is committed.
func payLines(tx *gorm.DB, orderId uint, lines []PaymentLine) error {
	for _, line := range lines {
		var rowIds []uint
		err := tx.Model(models.TransactionItem{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("transaction_id = ? AND product_id = ? AND paid = ?", orderId, line.ProductID, false).
			Order("id").
			Pluck("id", &rowIds).Error
		if err != nil {
			return err
		}
		if line.Quantity > len(rowIds) {
			return errInsufficientRemaining
		}

		err = tx.Model(models.TransactionItem{}).
			Where("id IN ?", rowIds[:line.Quantity]).
			Update("paid", true).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// payAll marks every unpaid row of the order as paid.
func payAll(tx *gorm.DB, orderId uint) error {
	return tx.Model(models.TransactionItem{}).
		Where("transaction_id = ? AND paid = ?", orderId, false).
		Update("paid", true).Error
}

// UpdatePayment settles part or all of an order. With Polozky it pays the
// requested quantities per product, otherwise Zaplaceno: true settles every
// remaining row. The legacy order-level paid flag is recomputed inside the
// same transaction, it is derived state and never authoritative on its own.
func UpdatePayment(context *gin.Context) {
	var payload PaymentPayload
	if err := context.ShouldBindJSON(&payload); err != nil {
		context.JSON(http.StatusBadRequest, ErrorResponse{Error: "Does not bind schema"})
		context.Abort()
		return
	}
	if len(payload.Items) == 0 && !payload.Paid {
		context.JSON(http.StatusBadRequest, ErrorResponse{Error: "Nothing to pay"})
		context.Abort()
		return
	}
	for _, line := range payload.Items {
		if line.Quantity <= 0 {
			context.JSON(http.StatusBadRequest,
				ErrorResponse{Error: fmt.Sprintf("Invalid quantity for product %d", line.ProductID)})
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
		if len(payload.Items) > 0 {
			if err := payLines(tx, order.ID, payload.Items); err != nil {
				return err
			}
		} else {
			if err := payAll(tx, order.ID); err != nil {
				return err
			}
		}

		var unpaid int64
		err := tx.Model(models.TransactionItem{}).
			Where("transaction_id = ? AND paid = ?", order.ID, false).
			Count(&unpaid).Error
		if err != nil {
			return err
		}
		return tx.Model(&order).Update("Paid", unpaid == 0).Error
	})
	if err != nil {
		if errors.Is(err, errInsufficientRemaining) {
			context.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
			context.Abort()
			return
		}
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Could not process payment"})
		context.Abort()
		return
	}
	context.JSON(http.StatusOK, MessageResponse{Message: "Order payment status updated successfully"})
}

package unit

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/tada170/POSS/controllers"
	"github.com/tada170/POSS/database"
	"gorm.io/gorm"
)

func TestDeleteCategory(t *testing.T) {
	sqlDB, db, mock := DbMock(t)
	defer sqlDB.Close()

	database.PostgresDB = db

	selectCategorySQL := `SELECT \* FROM "categories" WHERE ID = \$1 AND "categories"."deleted_at" IS NULL ORDER BY "categories"."id" LIMIT \$2`
	countProductsSQL := `SELECT count\(\*\) FROM "products" WHERE (.+)`
	categoryRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "created_at", "updated_at", "deleted_at", "name"}).
			AddRow(1, time.Now(), time.Now(), nil, "Soups")
	}

	t.Run("Category in use is not deleted", func(t *testing.T) {
		mock.ExpectQuery(selectCategorySQL).
			WithArgs("1", 1).
			WillReturnRows(categoryRows())
		mock.ExpectQuery(countProductsSQL).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		gin.SetMode(gin.TestMode)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request, _ = http.NewRequest(http.MethodDelete, "/", nil)
		c.Params = []gin.Param{{Key: "id", Value: "1"}}

		controllers.DeleteCategory(c)

		if w.Code != http.StatusConflict || w.Body.String() != `{"error":"Cannot delete category with associated products"}` {
			b, _ := ioutil.ReadAll(w.Body)
			t.Error(w.Code, string(b))
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("There were unfulfilled expectations: %s", err)
		}

	})

	t.Run("Unreferenced category is deleted", func(t *testing.T) {
		mock.ExpectQuery(selectCategorySQL).
			WithArgs("1", 1).
			WillReturnRows(categoryRows())
		mock.ExpectQuery(countProductsSQL).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		deleteCategorySQL := `UPDATE "categories" SET "deleted_at"=(.+)`
		mock.ExpectBegin()
		mock.ExpectExec(deleteCategorySQL).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		gin.SetMode(gin.TestMode)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request, _ = http.NewRequest(http.MethodDelete, "/", nil)
		c.Params = []gin.Param{{Key: "id", Value: "1"}}

		controllers.DeleteCategory(c)

		if w.Code != http.StatusOK {
			b, _ := ioutil.ReadAll(w.Body)
			t.Error(w.Code, string(b))
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("There were unfulfilled expectations: %s", err)
		}

	})

	t.Run("Missing category returns 404", func(t *testing.T) {
		mock.ExpectQuery(selectCategorySQL).
			WithArgs("9", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		gin.SetMode(gin.TestMode)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request, _ = http.NewRequest(http.MethodDelete, "/", nil)
		c.Params = []gin.Param{{Key: "id", Value: "9"}}

		controllers.DeleteCategory(c)

		if w.Code != http.StatusNotFound || w.Body.String() != `{"error":"Category not found"}` {
			b, _ := ioutil.ReadAll(w.Body)
			t.Error(w.Code, string(b))
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("There were unfulfilled expectations: %s", err)
		}

	})
}

func TestCreateProduct(t *testing.T) {
	sqlDB, db, mock := DbMock(t)
	defer sqlDB.Close()

	database.PostgresDB = db

	postProduct := func(t *testing.T, payload interface{}) (*httptest.ResponseRecorder, *gin.Context) {
		gin.SetMode(gin.TestMode)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body, err := json.Marshal(payload)
		assert.NoError(t, err)

		c.Request, _ = http.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
		return w, c
	}

	t.Run("Negative price never reaches the store", func(t *testing.T) {
		payload := map[string]interface{}{
			"Nazev":   "Goulash",
			"Cena":    -50,
			"KategID": 1}

		w, c := postProduct(t, payload)

		controllers.CreateProduct(c)

		if w.Code != http.StatusBadRequest || w.Body.String() != `{"error":"Price must not be negative"}` {
			b, _ := ioutil.ReadAll(w.Body)
			t.Error(w.Code, string(b))
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("There were unfulfilled expectations: %s", err)
		}

	})

	t.Run("Missing price never reaches the store", func(t *testing.T) {
		payload := map[string]interface{}{
			"Nazev":   "Goulash",
			"KategID": 1}

		w, c := postProduct(t, payload)

		controllers.CreateProduct(c)

		if w.Code != http.StatusBadRequest {
			b, _ := ioutil.ReadAll(w.Body)
			t.Error(w.Code, string(b))
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("There were unfulfilled expectations: %s", err)
		}

	})

	t.Run("Product and allergen links are created in one transaction", func(t *testing.T) {
		payload := map[string]interface{}{
			"Nazev":    "Goulash",
			"Cena":     120,
			"KategID":  1,
			"Alergeny": []uint{1, 3}}

		insertProductSQL := `INSERT INTO "products" (.+)`
		insertLinksSQL := `INSERT INTO "product_allergens" (.+)`
		productRow := sqlmock.NewRows([]string{"id"}).AddRow(5)

		mock.ExpectBegin()
		mock.ExpectQuery(insertProductSQL).WillReturnRows(productRow)
		mock.ExpectExec(insertLinksSQL).WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		w, c := postProduct(t, payload)

		controllers.CreateProduct(c)

		if w.Code != http.StatusCreated || w.Body.String() != `{"ProduktID":5}` {
			b, _ := ioutil.ReadAll(w.Body)
			t.Error(w.Code, string(b))
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("There were unfulfilled expectations: %s", err)
		}

	})
}

package unit

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/tada170/POSS/config"
	"github.com/tada170/POSS/controllers"
	"github.com/tada170/POSS/database"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func DbMock(t *testing.T) (*sql.DB, *gorm.DB, sqlmock.Sqlmock) {
	sqldb, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	gormdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn: sqldb,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		t.Fatal(err)
	}
	return sqldb, gormdb, mock
}

func userColumns() []string {
	return []string{"id", "created_at", "updated_at", "deleted_at",
		"first_name", "last_name", "email", "password", "role_id"}
}

func TestLogin(t *testing.T) {
	sqlDB, db, mock := DbMock(t)
	defer sqlDB.Close()

	database.PostgresDB = db
	config.Cfg.Server.SecretKey = "unit-test-secret"
	config.Cfg.Server.ExpirationMinutes = 120

	// bcrypt hash of "admin"
	hashedPass := "$2a$14$3S5a3omnocQh0KqgOBjjh.dA/TdNRUnaETsLV5PqjrJ/Gs757i8NS"
	selectUserSQL := `SELECT \* FROM "users" WHERE Email = \$1 AND "users"."deleted_at" IS NULL ORDER BY "users"."id" LIMIT \$2`

	t.Run("Should not bind login schema StatusBadRequest", func(t *testing.T) {
		payload := map[string]interface{}{
			"user":  "admin@pos.local",
			"Heslo": "admin"}

		gin.SetMode(gin.TestMode)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		loginBody, err := json.Marshal(payload)
		assert.NoError(t, err)

		c.Request, _ = http.NewRequest(http.MethodPost, "/", bytes.NewReader(loginBody))

		controllers.Login(c)

		if w.Code != http.StatusBadRequest || w.Body.String() != `{"error":"Does not bind schema"}` {
			b, _ := ioutil.ReadAll(w.Body)
			t.Error(w.Code, string(b))
		}
		if err = mock.ExpectationsWereMet(); err != nil {
			t.Errorf("There were unfulfilled expectations: %s", err)
		}

	})

	t.Run("Unknown email gets the same generic 401", func(t *testing.T) {
		payload := map[string]interface{}{
			"Email": "ghost@pos.local",
			"Heslo": "admin"}

		mock.ExpectQuery(selectUserSQL).
			WithArgs(payload["Email"], 1).
			WillReturnError(gorm.ErrRecordNotFound)

		gin.SetMode(gin.TestMode)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		loginBody, err := json.Marshal(payload)
		assert.NoError(t, err)

		c.Request, _ = http.NewRequest(http.MethodPost, "/", bytes.NewReader(loginBody))

		controllers.Login(c)

		if w.Code != http.StatusUnauthorized || w.Body.String() != `{"error":"Invalid email or password"}` {
			b, _ := ioutil.ReadAll(w.Body)
			t.Error(w.Code, string(b))
		}
		if err = mock.ExpectationsWereMet(); err != nil {
			t.Errorf("There were unfulfilled expectations: %s", err)
		}

	})

	t.Run("Wrong password gets the same generic 401", func(t *testing.T) {
		payload := map[string]interface{}{
			"Email": "admin@pos.local",
			"Heslo": "not-the-password"}

		userRow := sqlmock.NewRows(userColumns()).
			AddRow(1, time.Now(), time.Now(), nil, "Ada", "Adminova", payload["Email"], hashedPass, 1)
		mock.ExpectQuery(selectUserSQL).
			WithArgs(payload["Email"], 1).
			WillReturnRows(userRow)

		gin.SetMode(gin.TestMode)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		loginBody, err := json.Marshal(payload)
		assert.NoError(t, err)

		c.Request, _ = http.NewRequest(http.MethodPost, "/", bytes.NewReader(loginBody))

		controllers.Login(c)

		if w.Code != http.StatusUnauthorized || w.Body.String() != `{"error":"Invalid email or password"}` {
			b, _ := ioutil.ReadAll(w.Body)
			t.Error(w.Code, string(b))
		}
		if err = mock.ExpectationsWereMet(); err != nil {
			t.Errorf("There were unfulfilled expectations: %s", err)
		}

	})

	t.Run("Successful login creates a session row", func(t *testing.T) {
		payload := map[string]interface{}{
			"Email": "admin@pos.local",
			"Heslo": "admin"}

		userRow := sqlmock.NewRows(userColumns()).
			AddRow(1, time.Now(), time.Now(), nil, "Ada", "Adminova", payload["Email"], hashedPass, 1)
		mock.ExpectQuery(selectUserSQL).
			WithArgs(payload["Email"], 1).
			WillReturnRows(userRow)

		sessionSQL := `INSERT INTO "sessions" (.+)`
		mock.ExpectBegin()
		mock.ExpectExec(sessionSQL).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		roleSQL := `SELECT \* FROM "roles" WHERE ID = \$1 AND "roles"."deleted_at" IS NULL ORDER BY "roles"."id" LIMIT \$2`
		roleRow := sqlmock.NewRows([]string{"id", "created_at", "updated_at", "deleted_at", "name"}).
			AddRow(1, time.Now(), time.Now(), nil, "Admin")
		mock.ExpectQuery(roleSQL).WithArgs(1, 1).WillReturnRows(roleRow)

		gin.SetMode(gin.TestMode)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		loginBody, err := json.Marshal(payload)
		assert.NoError(t, err)

		c.Request, _ = http.NewRequest(http.MethodPost, "/", bytes.NewReader(loginBody))

		controllers.Login(c)

		if w.Code != http.StatusOK {
			b, _ := ioutil.ReadAll(w.Body)
			t.Error(w.Code, string(b))
		}

		var response controllers.LoginResponse
		err = json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.NotEqual(t, "", response.Token)
		assert.Equal(t, "Admin", response.Role)

		if err = mock.ExpectationsWereMet(); err != nil {
			t.Errorf("There were unfulfilled expectations: %s", err)
		}

	})

	t.Run("Role lookup failure fails the login", func(t *testing.T) {
		payload := map[string]interface{}{
			"Email": "admin@pos.local",
			"Heslo": "admin"}

		userRow := sqlmock.NewRows(userColumns()).
			AddRow(1, time.Now(), time.Now(), nil, "Ada", "Adminova", payload["Email"], hashedPass, 1)
		mock.ExpectQuery(selectUserSQL).
			WithArgs(payload["Email"], 1).
			WillReturnRows(userRow)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "sessions" (.+)`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		roleSQL := `SELECT \* FROM "roles" WHERE ID = \$1 AND "roles"."deleted_at" IS NULL ORDER BY "roles"."id" LIMIT \$2`
		mock.ExpectQuery(roleSQL).WithArgs(1, 1).
			WillReturnError(errors.New("connection reset by peer"))

		gin.SetMode(gin.TestMode)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		loginBody, err := json.Marshal(payload)
		assert.NoError(t, err)

		c.Request, _ = http.NewRequest(http.MethodPost, "/", bytes.NewReader(loginBody))

		controllers.Login(c)

		if w.Code != http.StatusInternalServerError || w.Body.String() != `{"error":"Could not make search result"}` {
			b, _ := ioutil.ReadAll(w.Body)
			t.Error(w.Code, string(b))
		}
		if err = mock.ExpectationsWereMet(); err != nil {
			t.Errorf("There were unfulfilled expectations: %s", err)
		}

	})
}

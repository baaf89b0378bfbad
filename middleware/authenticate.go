package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tada170/POSS/controllers"
	"github.com/tada170/POSS/database"
	"github.com/tada170/POSS/models"
	"github.com/tada170/POSS/token"
)

// SessionCookie is set on login so browser page loads authenticate without
// an Authorization header.
const SessionCookie = "session"

func clientToken(context *gin.Context) string {
	if header := context.Request.Header.Get("Authorization"); header != "" {
		return header
	}
	if cookie, err := context.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}

func Authenticate(context *gin.Context) {

	signedToken := clientToken(context)
	if signedToken == "" {
		context.JSON(http.StatusUnauthorized,
			controllers.ErrorResponse{Error: "No authorization provided"})
		context.Abort()
		return
	}
	claims, err := token.ValidateToken(signedToken)
	if err != nil {
		context.JSON(http.StatusUnauthorized, controllers.ErrorResponse{Error: err.Error()})
		context.Abort()
		return
	}

	// A valid signature is not enough: the session row must still exist,
	// logout deletes it.
	var session models.Session
	if res := database.PostgresDB.Where("token = ?", signedToken).First(&session); res.Error != nil {
		context.JSON(http.StatusUnauthorized, controllers.ErrorResponse{Error: "Session expired or revoked"})
		context.Abort()
		return
	}
	if session.ExpiresAt.Before(time.Now()) {
		database.PostgresDB.Delete(&session)
		context.JSON(http.StatusUnauthorized, controllers.ErrorResponse{Error: "Session expired or revoked"})
		context.Abort()
		return
	}

	context.Set("user_id", claims.UserID)
	context.Set("role_id", claims.RoleID)
	context.Set("session_token", session.Token)
	context.Next()
}

// RequireRole rejects sessions whose role name is not in the allowed set.
func RequireRole(allowed ...string) gin.HandlerFunc {
	return func(context *gin.Context) {
		roleId, ok := context.Get("role_id")
		if !ok {
			context.JSON(http.StatusUnauthorized, controllers.ErrorResponse{Error: "Authorization failed"})
			context.Abort()
			return
		}
		var role models.Role
		if res := database.PostgresDB.Where("ID = ?", roleId).First(&role); res.Error != nil {
			context.JSON(http.StatusForbidden, controllers.ErrorResponse{Error: "Forbidden"})
			context.Abort()
			return
		}
		for _, name := range allowed {
			if role.Name == name {
				context.Next()
				return
			}
		}
		context.JSON(http.StatusForbidden, controllers.ErrorResponse{Error: "Forbidden"})
		context.Abort()
	}
}

//go:build unit

package api_test

import (
	"net/http"

	"hotel-booking/internal/domain/auth"
	"hotel-booking/internal/domain/user"
	"hotel-booking/internal/handler/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	customerToken = "customer-token"
	adminToken    = "admin-token"
)

var (
	customer = auth.NewPrincipal(uuid.MustParse("11111111-1111-1111-1111-111111111111"), user.RoleCustomer)
	admin    = auth.NewPrincipal(uuid.MustParse("22222222-2222-2222-2222-222222222222"), user.RoleAdmin)
)

// fakeAuth stands in for the JWT middleware: the bearer value picks the principal.
func fakeAuth(c *gin.Context) {
	switch c.GetHeader("Authorization") {
	case "Bearer " + customerToken:
		middleware.SetPrincipal(c, customer)
	case "Bearer " + adminToken:
		middleware.SetPrincipal(c, admin)
	default:
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
		return
	}
	c.Next()
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	return r
}

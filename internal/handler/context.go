package handler

import (
	"net/http"

	"github.com/Re1354/building-management-system/internal/middleware"
	"github.com/Re1354/building-management-system/internal/models"
	"github.com/Re1354/building-management-system/internal/util"

	"github.com/gin-gonic/gin"
)

// requireUser fetches the authenticated admin, answering 401 when the route
// was mounted without AuthMiddleware.
func requireUser(c *gin.Context) (*models.User, bool) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Not authorized")
		return nil, false
	}
	return user, true
}

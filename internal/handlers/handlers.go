package handlers

import (
	"net/http"

	"github.com/bikebay/server/internal/apperr"
	"github.com/bikebay/server/internal/helpers"
	"github.com/bikebay/server/internal/models"
	"github.com/gin-gonic/gin"
)

// actorFrom pulls the authenticated claims the middleware stored on the
// context and reduces them to the acting principal.
func actorFrom(c *gin.Context) (models.Actor, bool) {
	value, exists := c.Get("user")
	if !exists {
		return models.Actor{}, false
	}
	claims, ok := value.(*helpers.EnhancedClaims)
	if !ok {
		return models.Actor{}, false
	}
	return claims.Actor(), true
}

func respondError(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), models.ErrorResponse(err.Error()))
}

func respondUnauthenticated(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
}

package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academy-backoffice-api/internal/middleware"
	"github.com/noah-isme/academy-backoffice-api/internal/models"
	appErrors "github.com/noah-isme/academy-backoffice-api/pkg/errors"
	"github.com/noah-isme/academy-backoffice-api/pkg/response"
)

// actorFromContext returns the authenticated actor, writing a 401 when the request carries none.
func actorFromContext(c *gin.Context) (models.AuthContext, bool) {
	actor := middleware.Actor(c)
	if actor.UserID == "" {
		response.Error(c, appErrors.ErrUnauthorized)
		return actor, false
	}
	return actor, true
}

func bindJSON(c *gin.Context, dest interface{}, message string) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.Invalid(err, message))
		return false
	}
	return true
}

func queryBool(c *gin.Context, key string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(c.Query(key)))
	return err == nil && v
}

func queryInt(c *gin.Context, key string) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, appErrors.Validation(key + " must be a number")
	}
	return v, nil
}

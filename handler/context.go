package handler

import (
	"notable/middleware"
	"notable/model"
	"notable/utils"

	"github.com/gin-gonic/gin"
)

// requireIdentity fetches the caller resolved by the auth middleware and
// answers 401 itself when it is missing.
func requireIdentity(c *gin.Context) (model.Identity, bool) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		utils.Unauthorized(c, "Missing or invalid token")
	}
	return identity, ok
}

package handler

import (
	"errors"
	"log"

	"notable/dto"
	"notable/repository"
	"notable/services"
	"notable/usecase"
	"notable/utils"

	"github.com/gin-gonic/gin"
)

// LogoutHandler revokes the presented refresh token. Malformed, expired,
// unknown and already-revoked tokens are all expected failures and answer
// 400, never 500. A second logout with the same token must fail.
func LogoutHandler(c *gin.Context, tokenService *usecase.TokenService) {
	var req dto.LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "missing refresh token")
		return
	}

	err := tokenService.Revoke(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrTokenRevoked):
			utils.BadRequest(c, "token already revoked")
		case errors.Is(err, repository.ErrTokenNotFound),
			errors.Is(err, services.ErrTokenMalformed),
			errors.Is(err, services.ErrTokenExpired),
			errors.Is(err, services.ErrWrongTokenType):
			utils.BadRequest(c, "invalid refresh token")
		default:
			log.Printf("Logout failed: %v", err)
			utils.InternalError(c, "failed to logout")
		}
		return
	}

	utils.Success(c, gin.H{"message": "successfully logged out"})
}

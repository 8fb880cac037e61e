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

// RefreshTokenHandler mints a new access token from a live refresh token.
// The refresh token itself is not rotated.
func RefreshTokenHandler(c *gin.Context, tokenService *usecase.TokenService) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "missing refresh token")
		return
	}

	access, err := tokenService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		// Malformed, expired, unknown, revoked, orphaned: one generic 401.
		case errors.Is(err, services.ErrTokenMalformed),
			errors.Is(err, services.ErrTokenExpired),
			errors.Is(err, services.ErrWrongTokenType),
			errors.Is(err, repository.ErrTokenNotFound),
			errors.Is(err, repository.ErrTokenRevoked),
			errors.Is(err, repository.ErrUserNotFound):
			utils.Unauthorized(c, "invalid refresh token")
		default:
			log.Printf("Refresh failed: %v", err)
			utils.InternalError(c, "failed to refresh token")
		}
		return
	}

	utils.Success(c, dto.AccessTokenResponse{Access: access})
}

package handler

import (
	"errors"
	"log"

	"notable/dto"
	"notable/usecase"
	"notable/utils"

	"github.com/gin-gonic/gin"
)

// LoginHandler exchanges credentials for an access/refresh token pair.
// Unknown username and wrong password produce the same 401.
func LoginHandler(c *gin.Context, userService *usecase.UserService, tokenService *usecase.TokenService) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.TrackAuthAttempt("failure", "validation")
		utils.BadRequest(c, "invalid request body")
		return
	}

	user, err := userService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			utils.TrackAuthAttempt("failure", "login")
			utils.Unauthorized(c, "invalid credentials")
			return
		}
		log.Printf("Login failed: %v", err)
		utils.InternalError(c, "failed to authenticate")
		return
	}

	access, refresh, err := tokenService.Issue(c.Request.Context(), user, c.Request.UserAgent())
	if err != nil {
		log.Printf("Token issue failed for user %s: %v", user.UserID, err)
		utils.InternalError(c, "failed to generate tokens")
		return
	}

	utils.TrackAuthAttempt("success", "login")
	utils.Success(c, dto.TokenPairResponse{
		Access:  access,
		Refresh: refresh,
	})
}

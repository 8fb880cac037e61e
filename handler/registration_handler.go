package handler

import (
	"errors"
	"log"

	"notable/dto"
	"notable/usecase"
	"notable/utils"

	"github.com/gin-gonic/gin"
)

// RegistrationHandler creates a new account. The response never carries
// the password hash.
func RegistrationHandler(c *gin.Context, userService *usecase.UserService) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "invalid request body")
		return
	}

	user, err := userService.Register(c.Request.Context(), &req)
	if err != nil {
		var validationErr *usecase.ValidationError
		switch {
		case errors.Is(err, usecase.ErrUsernameTaken):
			utils.BadRequest(c, "username already exists")
		case errors.Is(err, usecase.ErrPasswordMismatch):
			utils.BadRequest(c, "passwords do not match")
		case errors.As(err, &validationErr):
			utils.BadRequest(c, validationErr.Message)
		default:
			log.Printf("Registration failed: %v", err)
			utils.InternalError(c, "failed to register user")
		}
		return
	}

	utils.Created(c, dto.ToUserResponse(user))
}

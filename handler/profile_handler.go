package handler

import (
	"errors"
	"log"

	"notable/dto"
	"notable/repository"
	"notable/usecase"
	"notable/utils"

	"github.com/gin-gonic/gin"
)

func GetUserProfileHandler(c *gin.Context, userService *usecase.UserService) {
	caller, ok := requireIdentity(c)
	if !ok {
		return
	}

	user, err := userService.GetProfile(c.Request.Context(), caller.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			utils.NotFound(c, "user not found")
			return
		}
		log.Printf("Profile lookup failed for %s: %v", caller.UserID, err)
		utils.InternalError(c, "failed to fetch profile")
		return
	}

	utils.Success(c, dto.ToUserResponse(user))
}

// DeleteUserHandler removes the caller's account; their notes and refresh
// tokens go with it.
func DeleteUserHandler(c *gin.Context, userService *usecase.UserService) {
	caller, ok := requireIdentity(c)
	if !ok {
		return
	}

	if err := userService.DeleteAccount(c.Request.Context(), caller.UserID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			utils.NotFound(c, "user not found")
			return
		}
		log.Printf("Account deletion failed for %s: %v", caller.UserID, err)
		utils.InternalError(c, "failed to delete account")
		return
	}

	utils.NoContent(c)
}

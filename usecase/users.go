package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"notable/dto"
	"notable/model"
	"notable/repository"
	"notable/services"

	"github.com/google/uuid"
)

var (
	// ErrInvalidCredentials covers both unknown-username and wrong-password
	// so callers cannot enumerate usernames.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrPasswordMismatch   = errors.New("passwords do not match")
)

type UserService struct {
	UsersRepo *repository.UserRepo
	NotesRepo *repository.NotesRepo
	TokenRepo *repository.TokenRepo
}

// Register creates an account from an already shape-validated request.
// The stored password is an argon2id hash, never the plaintext.
func (s *UserService) Register(ctx context.Context, req *dto.RegisterRequest) (*model.User, error) {
	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	username := req.Username
	if strings.TrimSpace(username) == "" {
		return nil, newValidationError("username must not be blank")
	}
	if len(username) > model.MaxUsernameLength {
		return nil, newValidationError(fmt.Sprintf("username exceeds %d characters", model.MaxUsernameLength))
	}

	hash, err := services.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		UserID:    uuid.New().String(),
		Username:  username,
		Email:     req.Email,
		Password:  hash,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsAdmin:   false, // never settable through registration
		IsActive:  true,
		CreatedAt: time.Now(),
	}

	if err := s.UsersRepo.AddUser(ctx, user); err != nil {
		if err.Error() == "username already exists" {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	return user, nil
}

// Authenticate verifies username/password and returns the account.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.UsersRepo.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if !services.ComparePasswords(user.Password, password) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	return s.UsersRepo.FindUser(ctx, userID)
}

// DeleteAccount removes the user and cascades to their notes and refresh
// tokens.
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.NotesRepo.DeleteUserNotes(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user notes: %w", err)
	}
	if err := s.TokenRepo.DeleteUserTokens(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user tokens: %w", err)
	}
	return s.UsersRepo.DeleteUser(ctx, userID)
}

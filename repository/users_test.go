package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"notable/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func setupUsersTest(t *testing.T) (*UserRepo, func()) {
	client, err := mongo.Connect(context.Background(),
		options.Client().ApplyURI("mongodb://localhost:27017"))
	if err != nil {
		t.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	db := client.Database("notable_test")
	if err := SetupIndexes(db); err != nil {
		t.Fatalf("Failed to setup indexes: %v", err)
	}

	userRepo := GetUserRepo(client)

	cleanup := func() {
		if err := db.Collection("users").Drop(context.Background()); err != nil {
			t.Errorf("Failed to clean up test collection: %v", err)
		}
		if err := client.Disconnect(context.Background()); err != nil {
			t.Errorf("Failed to disconnect from MongoDB: %v", err)
		}
	}

	return userRepo, cleanup
}

func testUser(username string) *model.User {
	return &model.User{
		UserID:    uuid.New().String(),
		Username:  username,
		Email:     username + "@example.com",
		Password:  "salt$hash",
		FirstName: "Test",
		LastName:  "User",
		IsActive:  true,
		CreatedAt: time.Now(),
	}
}

func TestUsernameUniqueness(t *testing.T) {
	userRepo, cleanup := setupUsersTest(t)
	defer cleanup()

	username := "user_" + uuid.New().String()[:8]
	if err := userRepo.AddUser(context.Background(), testUser(username)); err != nil {
		t.Fatalf("Failed to add user: %v", err)
	}

	err := userRepo.AddUser(context.Background(), testUser(username))
	if err == nil || err.Error() != "username already exists" {
		t.Errorf("Expected duplicate-username error, got %v", err)
	}
}

func TestFindUserByUsername(t *testing.T) {
	userRepo, cleanup := setupUsersTest(t)
	defer cleanup()

	user := testUser("user_" + uuid.New().String()[:8])
	if err := userRepo.AddUser(context.Background(), user); err != nil {
		t.Fatalf("Failed to add user: %v", err)
	}

	found, err := userRepo.FindUserByUsername(context.Background(), user.Username)
	if err != nil {
		t.Fatalf("Failed to find user: %v", err)
	}
	if found == nil || found.UserID != user.UserID {
		t.Errorf("Expected to find user %s, got %+v", user.UserID, found)
	}

	// Unknown usernames are a nil result, not an error
	missing, err := userRepo.FindUserByUsername(context.Background(), "no_such_user")
	if err != nil {
		t.Fatalf("Unexpected error for unknown username: %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil for unknown username, got %+v", missing)
	}
}

func TestDeleteUser(t *testing.T) {
	userRepo, cleanup := setupUsersTest(t)
	defer cleanup()

	user := testUser("user_" + uuid.New().String()[:8])
	if err := userRepo.AddUser(context.Background(), user); err != nil {
		t.Fatalf("Failed to add user: %v", err)
	}

	if err := userRepo.DeleteUser(context.Background(), user.UserID); err != nil {
		t.Fatalf("Failed to delete user: %v", err)
	}
	if _, err := userRepo.FindUser(context.Background(), user.UserID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound after delete, got %v", err)
	}
	if err := userRepo.DeleteUser(context.Background(), user.UserID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound on double delete, got %v", err)
	}
}

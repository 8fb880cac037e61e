package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"notable/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func setupTokensTest(t *testing.T) (*TokenRepo, func()) {
	client, err := mongo.Connect(context.Background(),
		options.Client().ApplyURI("mongodb://localhost:27017"))
	if err != nil {
		t.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	tokenRepo := GetTokenRepo(client)

	cleanup := func() {
		if err := client.Database("notable_test").Collection("refresh_tokens").Drop(context.Background()); err != nil {
			t.Errorf("Failed to clean up test collection: %v", err)
		}
		if err := client.Disconnect(context.Background()); err != nil {
			t.Errorf("Failed to disconnect from MongoDB: %v", err)
		}
	}

	return tokenRepo, cleanup
}

func activeToken(userID string) *model.RefreshToken {
	now := time.Now()
	return &model.RefreshToken{
		JTI:       uuid.New().String(),
		UserID:    userID,
		Device:    "test",
		IssuedAt:  now,
		ExpiresAt: now.Add(7 * 24 * time.Hour),
		Revoked:   false,
	}
}

func TestRevokeTokenLifecycle(t *testing.T) {
	tokenRepo, cleanup := setupTokensTest(t)
	defer cleanup()

	token := activeToken(uuid.New().String())
	if err := tokenRepo.InsertToken(context.Background(), token); err != nil {
		t.Fatalf("Failed to insert token: %v", err)
	}

	found, err := tokenRepo.FindToken(context.Background(), token.JTI)
	if err != nil {
		t.Fatalf("Failed to find token: %v", err)
	}
	if found.Revoked {
		t.Fatal("Fresh token should not be revoked")
	}

	revoked, err := tokenRepo.RevokeToken(context.Background(), token.JTI)
	if err != nil {
		t.Fatalf("First revoke should succeed: %v", err)
	}
	if !revoked.Revoked || revoked.RevokedAt == nil {
		t.Error("Revoked record should carry the revoked flag and timestamp")
	}

	// Revocation is terminal; a second attempt is an error, not a no-op
	if _, err := tokenRepo.RevokeToken(context.Background(), token.JTI); !errors.Is(err, ErrTokenRevoked) {
		t.Errorf("Expected ErrTokenRevoked on second revoke, got %v", err)
	}
}

func TestRevokeUnknownToken(t *testing.T) {
	tokenRepo, cleanup := setupTokensTest(t)
	defer cleanup()

	if _, err := tokenRepo.RevokeToken(context.Background(), uuid.New().String()); !errors.Is(err, ErrTokenNotFound) {
		t.Errorf("Expected ErrTokenNotFound, got %v", err)
	}
}

func TestConcurrentRevokeSingleWinner(t *testing.T) {
	tokenRepo, cleanup := setupTokensTest(t)
	defer cleanup()

	token := activeToken(uuid.New().String())
	if err := tokenRepo.InsertToken(context.Background(), token); err != nil {
		t.Fatalf("Failed to insert token: %v", err)
	}

	const attempts = 10
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := tokenRepo.RevokeToken(context.Background(), token.JTI)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	successes := 0
	for err := range results {
		if err == nil {
			successes++
		} else if !errors.Is(err, ErrTokenRevoked) {
			t.Errorf("Unexpected error from concurrent revoke: %v", err)
		}
	}

	if successes != 1 {
		t.Errorf("Expected exactly one successful revoke, got %d", successes)
	}
}

func TestDeleteUserTokens(t *testing.T) {
	tokenRepo, cleanup := setupTokensTest(t)
	defer cleanup()

	userID := uuid.New().String()
	for i := 0; i < 3; i++ {
		if err := tokenRepo.InsertToken(context.Background(), activeToken(userID)); err != nil {
			t.Fatalf("Failed to insert token: %v", err)
		}
	}
	other := activeToken(uuid.New().String())
	if err := tokenRepo.InsertToken(context.Background(), other); err != nil {
		t.Fatalf("Failed to insert token: %v", err)
	}

	if err := tokenRepo.DeleteUserTokens(context.Background(), userID); err != nil {
		t.Fatalf("Failed to delete user tokens: %v", err)
	}

	// Other users' tokens survive the cascade
	if _, err := tokenRepo.FindToken(context.Background(), other.JTI); err != nil {
		t.Errorf("Unrelated token should survive, got %v", err)
	}
}

package repository

import (
	"context"
	"errors"
	"os"
	"time"

	"notable/model"
	"notable/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrTokenNotFound = errors.New("refresh token not found")
	// ErrTokenRevoked covers both lookup of a revoked token and a second
	// revocation attempt; the transition out of Active happens once.
	ErrTokenRevoked = errors.New("refresh token already revoked")
)

type TokenRepo struct {
	MongoCollection *mongo.Collection
}

func GetTokenRepo(client *mongo.Client) *TokenRepo {
	dbName := os.Getenv("MONGO_DB")
	return &TokenRepo{
		MongoCollection: client.Database(dbName).Collection("refresh_tokens"),
	}
}

// InsertToken records a freshly issued refresh token as Active.
func (r *TokenRepo) InsertToken(ctx context.Context, token *model.RefreshToken) error {
	timer := utils.TrackDBOperation("insert", "refresh_tokens")
	defer timer.ObserveDuration()

	if token.JTI == "" || token.UserID == "" {
		utils.TrackError("database", "invalid_token_data")
		return errors.New("token JTI and user ID required")
	}

	_, err := r.MongoCollection.InsertOne(ctx, token)
	return err
}

func (r *TokenRepo) FindToken(ctx context.Context, jti string) (*model.RefreshToken, error) {
	timer := utils.TrackDBOperation("find", "refresh_tokens")
	defer timer.ObserveDuration()

	var token model.RefreshToken
	err := r.MongoCollection.FindOne(ctx, bson.M{"_id": jti}).Decode(&token)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return &token, nil
}

// RevokeToken transitions Active -> Revoked. The filter matches only the
// un-revoked row, so concurrent revocations of the same token produce
// exactly one success; every other caller sees ErrTokenRevoked.
func (r *TokenRepo) RevokeToken(ctx context.Context, jti string) (*model.RefreshToken, error) {
	timer := utils.TrackDBOperation("update", "refresh_tokens")
	defer timer.ObserveDuration()

	now := time.Now()
	filter := bson.M{"_id": jti, "revoked": false}
	update := bson.M{"$set": bson.M{
		"revoked":    true,
		"revoked_at": now,
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var token model.RefreshToken
	err := r.MongoCollection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&token)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			return nil, err
		}
		// Distinguish never-issued from already-revoked for the caller's
		// error message; both are failures.
		existing, findErr := r.FindToken(ctx, jti)
		if findErr != nil {
			return nil, ErrTokenNotFound
		}
		if existing.Revoked {
			return nil, ErrTokenRevoked
		}
		return nil, ErrTokenNotFound
	}

	return &token, nil
}

// DeleteUserTokens drops every refresh-token record for the user (account
// deletion cascade).
func (r *TokenRepo) DeleteUserTokens(ctx context.Context, userID string) error {
	timer := utils.TrackDBOperation("delete", "refresh_tokens")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}

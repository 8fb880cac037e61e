package usecase

import (
	"context"
	"strings"
	"time"

	"notable/model"
	"notable/repository"
	"notable/services"
	"notable/utils"

	"github.com/mileusna/useragent"
)

type TokenService struct {
	TokenRepo *repository.TokenRepo
	UsersRepo *repository.UserRepo
}

// Issue mints an access/refresh pair and records the refresh token as
// Active, labeled with the issuing client's device.
func (s *TokenService) Issue(ctx context.Context, user *model.User, userAgent string) (string, string, error) {
	access, err := services.GenerateAccessToken(user.UserID, user.IsAdmin)
	if err != nil {
		return "", "", err
	}

	refresh, jti, expiresAt, err := services.GenerateRefreshToken(user.UserID)
	if err != nil {
		return "", "", err
	}

	record := &model.RefreshToken{
		JTI:       jti,
		UserID:    user.UserID,
		Device:    deviceLabel(userAgent),
		IssuedAt:  time.Now(),
		ExpiresAt: expiresAt,
		Revoked:   false,
	}

	if err := s.TokenRepo.InsertToken(ctx, record); err != nil {
		return "", "", err
	}

	utils.TrackAuthAttempt("success", "issue")
	return access, refresh, nil
}

// Refresh validates a refresh token against signature, expiry, type and
// revocation state, then mints a new access token. No rotation.
func (s *TokenService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := services.ParseRefreshToken(refreshToken)
	if err != nil {
		utils.TrackAuthAttempt("failure", "refresh")
		return "", err
	}

	// Redis fast path; a miss still checks the durable record.
	if services.IsRevokedCached(ctx, claims.JTI) {
		utils.TrackAuthAttempt("failure", "refresh")
		return "", repository.ErrTokenRevoked
	}

	record, err := s.TokenRepo.FindToken(ctx, claims.JTI)
	if err != nil {
		utils.TrackAuthAttempt("failure", "refresh")
		return "", err
	}
	if record.Revoked {
		utils.TrackAuthAttempt("failure", "refresh")
		return "", repository.ErrTokenRevoked
	}

	// Re-read the user so a freshly granted or removed admin role takes
	// effect on the next access token.
	user, err := s.UsersRepo.FindUser(ctx, claims.UserID)
	if err != nil {
		return "", err
	}

	access, err := services.GenerateAccessToken(user.UserID, user.IsAdmin)
	if err != nil {
		return "", err
	}

	utils.TrackAuthAttempt("success", "refresh")
	return access, nil
}

// Revoke transitions the refresh token to its terminal Revoked state.
// Malformed, expired, unknown and already-revoked tokens all fail; under
// concurrent revocation exactly one caller succeeds.
func (s *TokenService) Revoke(ctx context.Context, refreshToken string) error {
	claims, err := services.ParseRefreshToken(refreshToken)
	if err != nil {
		utils.TrackAuthAttempt("failure", "logout")
		return err
	}

	record, err := s.TokenRepo.RevokeToken(ctx, claims.JTI)
	if err != nil {
		utils.TrackAuthAttempt("failure", "logout")
		return err
	}

	services.MarkRevoked(ctx, record.JTI, record.ExpiresAt)
	utils.TrackAuthAttempt("success", "logout")
	return nil
}

func deviceLabel(userAgent string) string {
	if userAgent == "" {
		return "unknown"
	}
	ua := useragent.Parse(userAgent)
	label := strings.TrimSpace(ua.Name + " " + ua.OS)
	if label == "" {
		return "unknown"
	}
	return label
}

package services

import (
	"errors"
	"fmt"
	"time"

	"notable/config"
	"notable/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token has expired")
	ErrWrongTokenType = errors.New("wrong token type")
)

var jwtConfig config.JWTConfig

func InitJWT(cfg config.JWTConfig) {
	jwtConfig = cfg
}

// TokenClaims is the parsed, verified content of one of our JWTs.
type TokenClaims struct {
	UserID    string
	IsAdmin   bool
	TokenType string
	JTI       string
	ExpiresAt time.Time
}

// GenerateAccessToken mints a short-lived stateless access token. It is
// validated by signature and expiry alone and is never persisted.
func GenerateAccessToken(userID string, isAdmin bool) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  userID,
		"is_admin": isAdmin,
		"type":     TokenTypeAccess,
		"jti":      uuid.New().String(),
		"iss":      jwtConfig.Issuer,
		"iat":      now.Unix(),
		"exp":      now.Add(jwtConfig.AccessExpiration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtConfig.SecretKey))
}

// GenerateRefreshToken mints a refresh token and returns its JTI and expiry
// so the caller can persist the revocation record.
func GenerateRefreshToken(userID string) (string, string, time.Time, error) {
	now := time.Now()
	jti := uuid.New().String()
	expiresAt := now.Add(jwtConfig.RefreshExpiration)

	claims := jwt.MapClaims{
		"user_id": userID,
		"type":    TokenTypeRefresh,
		"jti":     jti,
		"iss":     jwtConfig.Issuer,
		"iat":     now.Unix(),
		"exp":     expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(jwtConfig.SecretKey))
	if err != nil {
		return "", "", time.Time{}, err
	}
	return signed, jti, expiresAt, nil
}

// ParseToken verifies signature and expiry and extracts our claims.
func ParseToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(jwtConfig.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["user_id"] == nil || claims["exp"] == nil {
		return nil, ErrTokenMalformed
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, ErrTokenMalformed
	}

	parsed := &TokenClaims{UserID: userID}

	if tokenType, ok := claims["type"].(string); ok {
		parsed.TokenType = tokenType
	}
	if jti, ok := claims["jti"].(string); ok {
		parsed.JTI = jti
	}
	if isAdmin, ok := claims["is_admin"].(bool); ok {
		parsed.IsAdmin = isAdmin
	}
	if exp, ok := claims["exp"].(float64); ok {
		parsed.ExpiresAt = time.Unix(int64(exp), 0)
	}

	if iss, ok := claims["iss"].(string); ok && iss != jwtConfig.Issuer {
		return nil, ErrTokenMalformed
	}

	return parsed, nil
}

// ValidateAccessToken is the stateless check used on every authenticated
// request. It never consults revocation state.
func ValidateAccessToken(tokenString string) (*model.Identity, error) {
	claims, err := ParseToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TokenTypeAccess {
		return nil, ErrWrongTokenType
	}
	return &model.Identity{UserID: claims.UserID, IsAdmin: claims.IsAdmin}, nil
}

// ParseRefreshToken verifies a refresh token's signature, expiry and type.
func ParseRefreshToken(tokenString string) (*TokenClaims, error) {
	claims, err := ParseToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TokenTypeRefresh || claims.JTI == "" {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}

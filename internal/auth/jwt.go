package auth

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenTypeAccess        = "access"
	TokenTypeRefresh       = "refresh"
	TokenTypePasswordReset = "password_reset"
)

const (
	accessTokenTTL        = 15 * time.Minute
	refreshTokenTTL       = 7 * 24 * time.Hour
	passwordResetTokenTTL = time.Hour
)

var jwtSecret string

func InitJWTSecret() error {
	jwtSecret = os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is not set")
	}
	return nil
}

func signToken(userID uint, tokenType string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    userID,
		"token_type": tokenType,
		"exp":        time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

// GenerateAccessToken issues a short-lived bearer token. Role and team are
// deliberately not embedded: the middleware reloads the user row on every
// request so policy always sees the current role and team.
func GenerateAccessToken(userID uint) (string, error) {
	return signToken(userID, TokenTypeAccess, accessTokenTTL)
}

func GenerateRefreshToken(userID uint) (string, error) {
	return signToken(userID, TokenTypeRefresh, refreshTokenTTL)
}

func GeneratePasswordResetToken(userID uint) (string, error) {
	return signToken(userID, TokenTypePasswordReset, passwordResetTokenTTL)
}

// VerifyJWT parses and validates a token, requiring the given token_type
// claim so refresh and reset tokens cannot stand in for access tokens.
func VerifyJWT(tokenString string, tokenType string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)

	if !ok || claims["token_type"] != tokenType {
		return nil, fmt.Errorf("invalid token type")
	}

	return token, nil
}

// UserIDFromToken extracts the user_id claim from a verified token.
func UserIDFromToken(token *jwt.Token) (uint, error) {
	claims, ok := token.Claims.(jwt.MapClaims)

	if !ok {
		return 0, fmt.Errorf("invalid token claims")
	}

	userIDFloat, ok := claims["user_id"].(float64)

	if !ok {
		return 0, fmt.Errorf("invalid user ID in token claims")
	}

	return uint(userIDFloat), nil
}

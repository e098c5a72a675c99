package utils

import (
	"os"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

type UserClaims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
}

type contextKey string

const UserContextKey contextKey = "user"

func GetUser(c *gin.Context) *UserClaims {
	user, exists := c.Get(string(UserContextKey))
	if !exists {
		return nil
	}
	if userClaims, ok := user.(*UserClaims); ok {
		return userClaims
	}
	return nil
}

// GenerateTokenPair signs an access token carrying the user's id and role and
// a longer-lived refresh token. The refresh token's expiry is returned so the
// caller can persist it.
func GenerateTokenPair(userID uint, role string) (accessToken, refreshToken string, refreshExpiry time.Time, err error) {
	secret := []byte(os.Getenv("JWT_SECRET"))

	accessBase := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(time.Hour * 24 * 7).Unix(),
	})
	accessToken, err = accessBase.SignedString(secret)
	if err != nil {
		return "", "", time.Time{}, err
	}

	refreshExpiry = time.Now().Add(time.Hour * 24 * 30)
	refreshBase := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     refreshExpiry.Unix(),
	})
	refreshToken, err = refreshBase.SignedString(secret)
	if err != nil {
		return "", "", time.Time{}, err
	}

	return accessToken, refreshToken, refreshExpiry, nil
}

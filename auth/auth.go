package auth

import (
	"fmt"
	"os"
	"strings"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"eventgallery/db"
)

const sessionLifetime = time.Hour * 672 // 28 days

func sessionSecret() string {
	return os.Getenv("SESSION_SECRET")
}

func hashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

func checkPassword(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}

// GenerateSessionToken signs a session for userID. Clients treat the
// result as an opaque bearer string.
func GenerateSessionToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"userID": userID,
		"exp":    time.Now().Add(sessionLifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(sessionSecret()))
}

func parseSessionToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(sessionSecret()), nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}
	userID, ok := claims["userID"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("invalid user id in token claims")
	}
	return userID, nil
}

func isRevoked(tokenString string) bool {
	var count int
	err := db.GalleryDB.QueryRow(`SELECT COUNT(*) FROM revoked_sessions WHERE token = ?`, tokenString).Scan(&count)
	return err == nil && count > 0
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// Middleware rejects requests without a valid, unrevoked session.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.JSON(401, gin.H{"message": "Authorization header required"})
			c.Abort()
			return
		}

		userID, err := parseSessionToken(tokenString)
		if err != nil || isRevoked(tokenString) {
			c.JSON(401, gin.H{"message": "Invalid or expired session"})
			c.Abort()
			return
		}

		c.Set("userID", userID)
		c.Set("sessionToken", tokenString)
		c.Next()
	}
}

// OptionalMiddleware resolves the viewer when a valid credential is
// present but never rejects. Public endpoints use it so viewer-relative
// fields can still be computed for signed-in callers.
func OptionalMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString != "" {
			if userID, err := parseSessionToken(tokenString); err == nil && !isRevoked(tokenString) {
				c.Set("userID", userID)
			}
		}
		c.Next()
	}
}

// ViewerID returns the authenticated user id set by the middleware, or
// "" for anonymous callers.
func ViewerID(c *gin.Context) string {
	return c.GetString("userID")
}

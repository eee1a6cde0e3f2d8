package middleware

import (
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Gin context key under which AuthRequired stores the caller's id.
const PlayerIDKey = "player_id"

const tokenLifetime = 24 * time.Hour

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// IssuePlayerToken signs a bearer token identifying the player.
func IssuePlayerToken(playerID uint) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(playerID), 10),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// PlayerFromToken extracts the authenticated player id from the
// request's Authorization header.
func PlayerFromToken(c *gin.Context) (uint, error) {
	header := c.GetHeader("Authorization")
	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found || raw == "" {
		return 0, errors.New("missing bearer token")
	}

	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return 0, err
	}
	if !token.Valid {
		return 0, errors.New("invalid token")
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, errors.New("invalid token subject")
	}
	return uint(id), nil
}

// AuthRequired rejects requests without a valid bearer token and stores
// the player id for the handler.
func AuthRequired(c *gin.Context) {
	playerID, err := PlayerFromToken(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.Set(PlayerIDKey, playerID)
	c.Next()
}

// PlayerID reads the id AuthRequired stored on the context.
func PlayerID(c *gin.Context) uint {
	v, ok := c.Get(PlayerIDKey)
	if !ok {
		return 0
	}
	id, _ := v.(uint)
	return id
}

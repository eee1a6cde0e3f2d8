package controllers

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strconv"

	"vanguard/middleware"
	models "vanguard/models/postgres"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// @Summary Registers a new player
// @Description Mints a player id together with its secret key; the key is shown once and only its hash is stored
// @Tags player
// @Produce json
// @Success 200 {object} object{player_id=integer,key=string}
// @Failure 500 {object} object{error=string}
// @Router /players [post]
func RegisterPlayer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		keyBytes := make([]byte, 16)
		if _, err := rand.Read(keyBytes); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate key"})
			return
		}
		key := hex.EncodeToString(keyBytes)

		hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash key"})
			return
		}

		player := models.Player{KeyHash: string(hash)}
		if err := db.Create(&player).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error creating player"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"player_id": player.ID, "key": key})
	}
}

// @Summary Logs a player in
// @Description Verifies the player's key and returns the bearer token game routes require
// @Tags player
// @Accept x-www-form-urlencoded
// @Produce json
// @Success 200 {object} object{token=string}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Router /login [post]
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		playerIDRaw := c.PostForm("player_id")
		key := c.PostForm("key")

		// Minimum input sanitizing
		if playerIDRaw == "" || key == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parameters can't be empty"})
			return
		}
		playerID, err := strconv.ParseUint(playerIDRaw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "player_id must be numeric"})
			return
		}

		var player models.Player
		if err := db.Where("id = ?", uint(playerID)).First(&player).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid player id or key!"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(player.KeyHash), []byte(key)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid player id or key!"})
			return
		}

		token, err := middleware.IssuePlayerToken(player.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
			return
		}

		session.Set("player_id", player.ID)
		if err := session.Save(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No session!"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}

// Logout deletes the session associated with the player
func Logout(c *gin.Context) {
	session := sessions.Default(c)
	if session.Get("player_id") == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session token"})
		return
	}

	session.Delete("player_id")
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

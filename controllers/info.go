package controllers

import (
	"net/http"

	game_constants "vanguard/constants/game"

	"github.com/gin-gonic/gin"
)

// @Summary Server information
// @Description Reports the server version and the client versions it accepts
// @Tags info
// @Produce json
// @Success 200 {object} object{server_version=string,client_versions=[]string}
// @Router / [get]
func Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"server_version":  game_constants.ServerVersion,
		"client_versions": game_constants.ClientVersions,
		"you":             c.Request.UserAgent(),
	})
}

// @Summary Liveness check
// @Tags info
// @Produce json
// @Success 200 {object} object{message=string}
// @Router /ping [get]
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

package controllers

import (
	"net/http"

	"vanguard/middleware"
	"vanguard/services/match"

	"github.com/gin-gonic/gin"
)

// @Summary Lists the caller's matches
// @Description Returns every match the authenticated player participates in
// @Tags match
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {object} object{matches=[]match.MatchSummary}
// @Failure 500 {object} object{error=string}
// @Router /auth/matches/my [get]
// @Security ApiKeyAuth
func GetPlayerMatches(queries *match.Queries) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID := middleware.PlayerID(c)

		matches, err := queries.ListPlayerMatches(playerID)
		if err != nil {
			c.JSON(statusFromError(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"matches": matches})
	}
}

type createMatchRequest struct {
	MapCode string `json:"map_code" binding:"required"`
	Side    string `json:"side" binding:"required"`
}

// @Summary Creates a new match
// @Description Creates a match on the requested map with the caller on the requested side and returns its join code
// @Tags match
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {object} object{match_code=string}
// @Failure 400 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/matches [post]
// @Security ApiKeyAuth
func CreateMatch(engine *match.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID := middleware.PlayerID(c)

		var req createMatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "map_code and side are required"})
			return
		}

		code, err := engine.CreateMatch(playerID, req.Side, req.MapCode)
		if err != nil {
			c.JSON(statusFromError(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"match_code": code})
	}
}

// @Summary Match details for a prospective joiner
// @Description Public view of a match: status, map and the free side if there is one
// @Tags match
// @Produce json
// @Param match_code path string true "Join code of the match"
// @Success 200 {object} match.MatchDetails
// @Failure 404 {object} object{error=string}
// @Router /matches/{match_code} [get]
func GetMatchDetails(queries *match.Queries) gin.HandlerFunc {
	return func(c *gin.Context) {
		details, err := queries.GetMatchDetails(c.Param("match_code"))
		if err != nil {
			c.JSON(statusFromError(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, details)
	}
}

// @Summary Joins a match
// @Description Puts the caller on the free side of a match awaiting an opponent
// @Tags match
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param match_code path string true "Join code of the match"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /auth/matches/{match_code}/join [post]
// @Security ApiKeyAuth
func JoinMatch(engine *match.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID := middleware.PlayerID(c)

		if err := engine.JoinMatch(playerID, c.Param("match_code")); err != nil {
			c.JSON(statusFromError(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "joined match successfully"})
	}
}

// @Summary The caller's status in a match
// @Description Returns the caller's side and status together with the match status
// @Tags match
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param match_code path string true "Join code of the match"
// @Success 200 {object} match.PlayerStatusView
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/matches/{match_code}/status [get]
// @Security ApiKeyAuth
func GetPlayerMatchStatus(queries *match.Queries) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID := middleware.PlayerID(c)

		status, err := queries.GetPlayerStatus(c.Param("match_code"), playerID)
		if err != nil {
			c.JSON(statusFromError(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, status)
	}
}

// @Summary Full match state
// @Description Returns the board state a participant needs to take their turn
// @Tags match
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param match_code path string true "Join code of the match"
// @Success 200 {object} match.StateView
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/matches/{match_code}/state [get]
// @Security ApiKeyAuth
func GetMatchState(queries *match.Queries) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID := middleware.PlayerID(c)

		state, err := queries.GetMatchState(c.Param("match_code"), playerID)
		if err != nil {
			c.JSON(statusFromError(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, state)
	}
}

// @Summary Submits a turn
// @Description Stores the turn's payload as the new match state, hands the turn to the opponent and returns the refreshed state
// @Tags match
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param match_code path string true "Join code of the match"
// @Success 200 {object} match.StateView
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/matches/{match_code}/turn [post]
// @Security ApiKeyAuth
func SubmitTurn(engine *match.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID := middleware.PlayerID(c)

		var turn match.Turn
		if err := c.ShouldBindJSON(&turn); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid turn payload"})
			return
		}

		state, err := engine.SubmitTurn(c.Param("match_code"), playerID, turn)
		if err != nil {
			c.JSON(statusFromError(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, state)
	}
}

// @Summary Abandons a match
// @Description Marks the caller as dismissed; a running match becomes a forfeit win for the opponent
// @Tags match
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param match_code path string true "Join code of the match"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/matches/{match_code}/abandon [post]
// @Security ApiKeyAuth
func AbandonMatch(engine *match.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID := middleware.PlayerID(c)

		if err := engine.AbandonMatch(c.Param("match_code"), playerID); err != nil {
			c.JSON(statusFromError(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "match abandoned"})
	}
}

package match_test

import (
	"encoding/json"
	"testing"

	models "vanguard/models/postgres"
	"vanguard/services/match"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPlayerMatches(t *testing.T) {
	engine, _ := newTestEngine(t, 1)
	queries := engine.Queries()

	codeA, err := engine.CreateMatch(1, models.SideBlue, testMap)
	require.NoError(t, err)
	codeB, err := engine.CreateMatch(2, models.SideRed, testMap)
	require.NoError(t, err)
	require.NoError(t, engine.JoinMatch(1, codeB))

	matches, err := queries.ListPlayerMatches(1)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	assert.Equal(t, codeA, matches[0].JoinCode)
	assert.Equal(t, models.SideBlue, matches[0].Side)
	assert.Equal(t, models.MatchStatusNew, matches[0].MatchStatus)
	assert.Equal(t, testMap, matches[0].MapCode)

	assert.Equal(t, codeB, matches[1].JoinCode)
	assert.Equal(t, models.SideBlue, matches[1].Side)
	assert.Equal(t, models.MatchStatusInProgress, matches[1].MatchStatus)

	// Stable order for a given snapshot
	again, err := queries.ListPlayerMatches(1)
	require.NoError(t, err)
	assert.Equal(t, matches, again)
}

func TestGetMatchDetails(t *testing.T) {
	engine, _ := newTestEngine(t, 1)
	queries := engine.Queries()

	code, err := engine.CreateMatch(1, models.SideBlue, testMap)
	require.NoError(t, err)

	details, err := queries.GetMatchDetails(code)
	require.NoError(t, err)
	assert.Equal(t, code, details.JoinCode)
	assert.Equal(t, models.MatchStatusNew, details.MatchStatus)
	assert.Equal(t, testMap, details.MapCode)
	assert.Equal(t, models.SideRed, details.AvailableSide)
}

func TestGetMatchDetailsFullMatchHasNoAvailableSide(t *testing.T) {
	engine, _ := newTestEngine(t, 1)
	queries := engine.Queries()

	code, err := engine.CreateMatch(1, models.SideRed, testMap)
	require.NoError(t, err)
	require.NoError(t, engine.JoinMatch(2, code))

	details, err := queries.GetMatchDetails(code)
	require.NoError(t, err)
	assert.Empty(t, details.AvailableSide)
}

func TestGetMatchDetailsUnknownCode(t *testing.T) {
	engine, _ := newTestEngine(t, 1)

	_, err := engine.Queries().GetMatchDetails("zzzzz")
	assert.ErrorIs(t, err, match.ErrMatchNotFound)
}

func TestGetPlayerStatus(t *testing.T) {
	engine, _ := newTestEngine(t, 1)
	queries := engine.Queries()

	code, err := engine.CreateMatch(1, models.SideBlue, testMap)
	require.NoError(t, err)

	status, err := queries.GetPlayerStatus(code, 1)
	require.NoError(t, err)
	assert.Equal(t, code, status.JoinCode)
	assert.Equal(t, models.SideBlue, status.PlayerSide)
	assert.Equal(t, models.PlayerStatusActive, status.PlayerStatus)
	assert.Equal(t, testMap, status.MapCode)

	_, err = queries.GetPlayerStatus(code, 9)
	assert.ErrorIs(t, err, match.ErrNotParticipant)
}

func TestGetMatchStateRoundTrip(t *testing.T) {
	engine, store := newTestEngine(t, 1)
	queries := engine.Queries()

	code, err := engine.CreateMatch(1, models.SideBlue, testMap)
	require.NoError(t, err)

	m, err := store.FindMatchByCode(code)
	require.NoError(t, err)

	payload := json.RawMessage(`{"units":[{"x":1,"y":2}],"turn":3}`)
	require.NoError(t, store.SetState(m.ID, payload))

	view, err := queries.GetMatchState(code, 1)
	require.NoError(t, err)
	assert.JSONEq(t, string(payload), string(view.Data))
	assert.Equal(t, models.SideBlue, view.PlayerSide)
	assert.Equal(t, models.PlayerStatusActive, view.PlayerStatus)

	_, err = queries.GetMatchState(code, 9)
	assert.ErrorIs(t, err, match.ErrNotParticipant)
}

package match_test

import (
	"encoding/json"
	"math/rand"
	"sync"
	"testing"

	game_constants "vanguard/constants/game"
	models "vanguard/models/postgres"
	"vanguard/services/match"
	"vanguard/services/storage"
	"vanguard/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMap = "MAP1"

func newTestEngine(t *testing.T, seed int64) (*match.Engine, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	store.AddMap(testMap)
	codes := utils.NewCodeGenerator(rand.NewSource(seed))
	return match.NewEngine(store, store, codes, match.BasicValidator{}), store
}

func matchByCode(t *testing.T, store *storage.MemoryStore, code string) *models.Match {
	t.Helper()
	m, err := store.FindMatchByCode(code)
	require.NoError(t, err)
	require.NotNil(t, m)
	return m
}

func playerSlot(t *testing.T, store *storage.MemoryStore, playerID uint, matchID uint) *models.MatchPlayer {
	t.Helper()
	slot, err := store.GetPlayer(playerID, matchID)
	require.NoError(t, err)
	require.NotNil(t, slot)
	return slot
}

func TestCreateMatch(t *testing.T) {
	engine, store := newTestEngine(t, 1)

	code, err := engine.CreateMatch(1, models.SideBlue, testMap)
	require.NoError(t, err)
	assert.Len(t, code, game_constants.JoinCodeLength)

	m := matchByCode(t, store, code)
	assert.Equal(t, models.MatchStatusNew, m.Status)

	slot := playerSlot(t, store, 1, m.ID)
	assert.Equal(t, models.SideBlue, slot.Side)
	assert.Equal(t, models.PlayerStatusActive, slot.Status)

	state, err := store.GetState(m.ID)
	require.NoError(t, err)
	assert.JSONEq(t, "{}", string(state))
}

func TestCreateMatchUnknownMap(t *testing.T) {
	engine, _ := newTestEngine(t, 1)

	_, err := engine.CreateMatch(1, models.SideBlue, "NOPE")
	assert.ErrorIs(t, err, match.ErrMapNotFound)
}

func TestCreateMatchInvalidSide(t *testing.T) {
	engine, _ := newTestEngine(t, 1)

	_, err := engine.CreateMatch(1, "GREEN", testMap)
	assert.ErrorIs(t, err, match.ErrInvalidSide)
}

func TestCreateMatchRetriesOnCodeCollision(t *testing.T) {
	// Two engines over the same store with identically seeded
	// generators: the second engine's first candidate code is the one
	// the first engine already allocated, forcing a retry.
	store := storage.NewMemoryStore()
	store.AddMap(testMap)
	engineA := match.NewEngine(store, store, utils.NewCodeGenerator(rand.NewSource(7)), match.BasicValidator{})
	engineB := match.NewEngine(store, store, utils.NewCodeGenerator(rand.NewSource(7)), match.BasicValidator{})

	codeA, err := engineA.CreateMatch(1, models.SideBlue, testMap)
	require.NoError(t, err)

	codeB, err := engineB.CreateMatch(2, models.SideRed, testMap)
	require.NoError(t, err)

	assert.NotEqual(t, codeA, codeB)
}

func TestJoinMatch(t *testing.T) {
	engine, store := newTestEngine(t, 1)

	code, err := engine.CreateMatch(1, models.SideBlue, testMap)
	require.NoError(t, err)

	require.NoError(t, engine.JoinMatch(2, code))

	m := matchByCode(t, store, code)
	assert.Equal(t, models.MatchStatusInProgress, m.Status)

	joiner := playerSlot(t, store, 2, m.ID)
	assert.Equal(t, models.SideRed, joiner.Side)
	assert.Equal(t, models.PlayerStatusActive, joiner.Status)
}

func TestJoinMatchUnknownCode(t *testing.T) {
	engine, _ := newTestEngine(t, 1)

	assert.ErrorIs(t, engine.JoinMatch(2, "zzzzz"), match.ErrMatchNotFound)
}

func TestJoinMatchTwiceSamePlayer(t *testing.T) {
	engine, _ := newTestEngine(t, 1)

	code, err := engine.CreateMatch(1, models.SideBlue, testMap)
	require.NoError(t, err)

	assert.ErrorIs(t, engine.JoinMatch(1, code), match.ErrAlreadyInMatch)
}

func TestJoinMatchAlreadyFull(t *testing.T) {
	engine, _ := newTestEngine(t, 1)

	code, err := engine.CreateMatch(1, models.SideBlue, testMap)
	require.NoError(t, err)
	require.NoError(t, engine.JoinMatch(2, code))

	assert.ErrorIs(t, engine.JoinMatch(3, code), match.ErrMatchNotJoinable)
}

func TestJoinMatchAfterHostAbandoned(t *testing.T) {
	engine, _ := newTestEngine(t, 1)

	code, err := engine.CreateMatch(1, models.SideBlue, testMap)
	require.NoError(t, err)
	require.NoError(t, engine.AbandonMatch(code, 1))

	assert.ErrorIs(t, engine.JoinMatch(2, code), match.ErrMatchNotJoinable)
}

func TestSubmitTurnFlipsActivePlayer(t *testing.T) {
	engine, store := newTestEngine(t, 1)

	code, err := engine.CreateMatch(1, models.SideBlue, testMap)
	require.NoError(t, err)
	require.NoError(t, engine.JoinMatch(2, code))

	turn := match.Turn{Data: json.RawMessage(`{"units":[3,4]}`)}
	view, err := engine.SubmitTurn(code, 2, turn)
	require.NoError(t, err)

	assert.Equal(t, models.MatchStatusInProgress, view.MatchStatus)
	assert.Equal(t, models.PlayerStatusInactive, view.PlayerStatus)
	assert.JSONEq(t, `{"units":[3,4]}`, string(view.Data))

	m := matchByCode(t, store, code)
	assert.Equal(t, models.PlayerStatusActive, playerSlot(t, store, 1, m.ID).Status)
	assert.Equal(t, models.PlayerStatusInactive, playerSlot(t, store, 2, m.ID).Status)
}

func TestSubmitWinningTurnEndsMatch(t *testing.T) {
	engine, store := newTestEngine(t, 1)

	code, err := engine.CreateMatch(1, models.SideBlue, testMap)
	require.NoError(t, err)
	require.NoError(t, engine.JoinMatch(2, code))

	_, err = engine.SubmitTurn(code, 2, match.Turn{Data: json.RawMessage(`{"units":[3]}`)})
	require.NoError(t, err)

	view, err := engine.SubmitTurn(code, 1, match.Turn{Data: json.RawMessage(`{"units":[]}`), Win: true})
	require.NoError(t, err)

	assert.Equal(t, models.MatchStatusEnded, view.MatchStatus)
	assert.Equal(t, models.PlayerStatusWin, view.PlayerStatus)

	m := matchByCode(t, store, code)
	assert.Equal(t, models.MatchStatusEnded, m.Status)
	assert.Equal(t, models.PlayerStatusWin, playerSlot(t, store, 1, m.ID).Status)
	assert.Equal(t, models.PlayerStatusLoss, playerSlot(t, store, 2, m.ID).Status)
}

func TestSubmitTurnRejectsOutsiders(t *testing.T) {
	engine, _ := newTestEngine(t, 1)

	code, err := engine.CreateMatch(1, models.SideBlue, testMap)
	require.NoError(t, err)

	_, err = engine.SubmitTurn(code, 9, match.Turn{Data: json.RawMessage(`{}`)})
	assert.ErrorIs(t, err, match.ErrNotParticipant)
}

func TestSubmitTurnRejectsMalformedPayload(t *testing.T) {
	engine, _ := newTestEngine(t, 1)

	code, err := engine.CreateMatch(1, models.SideBlue, testMap)
	require.NoError(t, err)

	_, err = engine.SubmitTurn(code, 1, match.Turn{Data: json.RawMessage(`{broken`)})
	assert.ErrorIs(t, err, match.ErrInvalidTurn)
}

func TestSubmitTurnUnknownCode(t *testing.T) {
	engine, _ := newTestEngine(t, 1)

	_, err := engine.SubmitTurn("zzzzz", 1, match.Turn{Data: json.RawMessage(`{}`)})
	assert.ErrorIs(t, err, match.ErrMatchNotFound)
}

func TestAbandonNewMatch(t *testing.T) {
	engine, store := newTestEngine(t, 1)

	code, err := engine.CreateMatch(1, models.SideBlue, testMap)
	require.NoError(t, err)

	require.NoError(t, engine.AbandonMatch(code, 1))

	m := matchByCode(t, store, code)
	assert.Equal(t, models.MatchStatusEnded, m.Status)
	assert.Equal(t, models.PlayerStatusDismissed, playerSlot(t, store, 1, m.ID).Status)
}

func TestAbandonRunningMatchForfeits(t *testing.T) {
	engine, store := newTestEngine(t, 1)

	code, err := engine.CreateMatch(1, models.SideBlue, testMap)
	require.NoError(t, err)
	require.NoError(t, engine.JoinMatch(2, code))

	require.NoError(t, engine.AbandonMatch(code, 1))

	m := matchByCode(t, store, code)
	assert.Equal(t, models.MatchStatusForfeit, m.Status)
	assert.Equal(t, models.PlayerStatusDismissed, playerSlot(t, store, 1, m.ID).Status)
	assert.Equal(t, models.PlayerStatusWin, playerSlot(t, store, 2, m.ID).Status)
}

func TestAbandonTerminalMatchKeepsStatus(t *testing.T) {
	engine, store := newTestEngine(t, 1)

	code, err := engine.CreateMatch(1, models.SideBlue, testMap)
	require.NoError(t, err)
	require.NoError(t, engine.JoinMatch(2, code))
	require.NoError(t, engine.AbandonMatch(code, 1))

	// Second abandonment, this time from the winner of the forfeit.
	require.NoError(t, engine.AbandonMatch(code, 2))

	m := matchByCode(t, store, code)
	assert.Equal(t, models.MatchStatusForfeit, m.Status)
	assert.Equal(t, models.PlayerStatusDismissed, playerSlot(t, store, 2, m.ID).Status)
}

func TestAbandonUnknownCode(t *testing.T) {
	engine, _ := newTestEngine(t, 1)

	assert.ErrorIs(t, engine.AbandonMatch("zzzzz", 1), match.ErrMatchNotFound)
}

func TestAbandonRequiresParticipant(t *testing.T) {
	engine, _ := newTestEngine(t, 1)

	code, err := engine.CreateMatch(1, models.SideBlue, testMap)
	require.NoError(t, err)

	assert.ErrorIs(t, engine.AbandonMatch(code, 9), match.ErrNotParticipant)
}

func TestConcurrentJoinsAdmitExactlyOne(t *testing.T) {
	engine, store := newTestEngine(t, 1)

	code, err := engine.CreateMatch(1, models.SideBlue, testMap)
	require.NoError(t, err)

	const joiners = 16
	var wg sync.WaitGroup
	results := make([]error, joiners)
	for i := 0; i < joiners; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = engine.JoinMatch(uint(100+i), code)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, match.ErrMatchNotJoinable)
		}
	}
	assert.Equal(t, 1, succeeded)

	m := matchByCode(t, store, code)
	players, err := store.ListPlayers(m.ID)
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.NotEqual(t, players[0].Side, players[1].Side)
}

func TestConcurrentTurnsKeepExactlyOneActive(t *testing.T) {
	engine, store := newTestEngine(t, 1)

	code, err := engine.CreateMatch(1, models.SideBlue, testMap)
	require.NoError(t, err)
	require.NoError(t, engine.JoinMatch(2, code))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			player := uint(1 + i%2)
			_, err := engine.SubmitTurn(code, player, match.Turn{Data: json.RawMessage(`{"n":1}`)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	m := matchByCode(t, store, code)
	players, err := store.ListPlayers(m.ID)
	require.NoError(t, err)

	active := 0
	for _, p := range players {
		if p.Status == models.PlayerStatusActive {
			active++
		} else {
			assert.Equal(t, models.PlayerStatusInactive, p.Status)
		}
	}
	assert.Equal(t, 1, active)
}

type recordingListener struct {
	mu         sync.Mutex
	terminated []uint
}

func (l *recordingListener) MatchTerminated(matchID uint) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.terminated = append(l.terminated, matchID)
}

func TestTerminationListenerNotified(t *testing.T) {
	engine, store := newTestEngine(t, 1)
	listener := &recordingListener{}
	engine.OnTermination(listener)

	code, err := engine.CreateMatch(1, models.SideBlue, testMap)
	require.NoError(t, err)
	require.NoError(t, engine.JoinMatch(2, code))

	_, err = engine.SubmitTurn(code, 1, match.Turn{Data: json.RawMessage(`{}`), Win: true})
	require.NoError(t, err)

	m := matchByCode(t, store, code)
	assert.Equal(t, []uint{m.ID}, listener.terminated)
}

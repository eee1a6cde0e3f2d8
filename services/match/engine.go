package match

import (
	"errors"
	"log"

	game_constants "vanguard/constants/game"
	models "vanguard/models/postgres"
	"vanguard/utils"
)

// TerminationListener is notified after a match reaches a terminal
// status. Listener failures never fail the operation that ended the
// match.
type TerminationListener interface {
	MatchTerminated(matchID uint)
}

// Engine owns the match lifecycle: creation, joining, turn exchange and
// termination. It keeps no match state of its own; everything durable
// lives behind the Repository, so the engine is stateless between calls
// apart from the per-match locks serializing mutations.
type Engine struct {
	repo      Repository
	maps      MapCatalog
	codes     *utils.CodeGenerator
	validator TurnValidator
	queries   *Queries
	locks     *matchLocks
	listener  TerminationListener
}

func NewEngine(repo Repository, maps MapCatalog, codes *utils.CodeGenerator, validator TurnValidator) *Engine {
	return &Engine{
		repo:      repo,
		maps:      maps,
		codes:     codes,
		validator: validator,
		queries:   NewQueries(repo, maps),
		locks:     newMatchLocks(),
	}
}

// OnTermination registers the listener told about terminal transitions.
func (e *Engine) OnTermination(l TerminationListener) {
	e.listener = l
}

// Queries exposes the read-only projections sharing this engine's
// repository.
func (e *Engine) Queries() *Queries {
	return e.queries
}

// CreateMatch creates a NEW match on the given map with the host on the
// requested side and returns the minted join code. Join-code collisions
// are resolved internally by regenerating; the caller never sees one.
func (e *Engine) CreateMatch(hostPlayerID uint, hostSide, mapCode string) (string, error) {
	if !models.IsValidSide(hostSide) {
		return "", ErrInvalidSide
	}

	mapID, err := e.maps.CodeToID(mapCode)
	if err != nil {
		return "", err
	}

	for attempt := 0; attempt < game_constants.MaxJoinCodeAttempts; attempt++ {
		code := e.codes.Generate(game_constants.JoinCodeLength)

		existing, err := e.repo.FindMatchByCode(code)
		if err != nil {
			return "", err
		}
		if existing != nil {
			continue
		}

		matchID, err := e.repo.CreateMatch(mapID, code)
		if errors.Is(err, ErrDuplicateCode) {
			// Lost the race for this code, mint another one.
			continue
		}
		if err != nil {
			return "", err
		}

		if err := e.repo.JoinPlayer(matchID, hostPlayerID, hostSide); err != nil {
			return "", err
		}
		if err := e.repo.CreateEmptyState(matchID); err != nil {
			return "", err
		}
		return code, nil
	}

	return "", ErrCodeSpaceExhausted
}

// JoinMatch puts the player on the single free side of a NEW match and
// moves the match to IN_PROGRESS.
func (e *Engine) JoinMatch(playerID uint, joinCode string) error {
	m, err := e.repo.FindMatchByCode(joinCode)
	if err != nil {
		return err
	}
	if m == nil {
		return ErrMatchNotFound
	}

	unlock := e.locks.Lock(m.ID)
	defer unlock()

	// Re-read under the lock; the status may have moved since the
	// code lookup.
	m, err = e.repo.GetMatchInfo(m.ID)
	if err != nil {
		return err
	}
	if m == nil {
		return ErrMatchNotFound
	}

	slot, err := e.repo.GetPlayer(playerID, m.ID)
	if err != nil {
		return err
	}
	if slot != nil {
		return ErrAlreadyInMatch
	}

	if m.Status != models.MatchStatusNew {
		return ErrMatchNotJoinable
	}

	players, err := e.repo.ListPlayers(m.ID)
	if err != nil {
		return err
	}
	if len(players) >= game_constants.MaxPlayersPerMatch {
		return ErrMatchNotJoinable
	}
	side := availableSide(players)
	if side == "" {
		return ErrMatchNotJoinable
	}

	if err := e.repo.JoinPlayer(m.ID, playerID, side); err != nil {
		if errors.Is(err, ErrSlotTaken) || errors.Is(err, ErrAlreadyInMatch) {
			return ErrMatchNotJoinable
		}
		return err
	}

	return e.repo.UpdateMatchStatus(m.ID, models.MatchStatusInProgress)
}

// SubmitTurn stores the turn's payload as the new match state and flips
// the active player; a terminal turn ends the match in the acting
// player's favor instead. The returned view is re-read after the
// mutation, so it always reflects the transition just applied.
func (e *Engine) SubmitTurn(joinCode string, playerID uint, turn Turn) (*StateView, error) {
	m, err := e.repo.FindMatchByCode(joinCode)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrMatchNotFound
	}

	unlock := e.locks.Lock(m.ID)
	defer unlock()

	slot, err := e.repo.GetPlayer(playerID, m.ID)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, ErrNotParticipant
	}

	current, err := e.repo.GetState(m.ID)
	if err != nil {
		return nil, err
	}

	verdict, err := e.validator.Evaluate(current, turn)
	if err != nil {
		return nil, err
	}
	if !verdict.Legal {
		return nil, ErrInvalidTurn
	}

	if err := e.repo.SetState(m.ID, turn.Data); err != nil {
		return nil, err
	}

	if verdict.Terminal {
		if err := e.repo.UpdateOtherPlayersStatus(m.ID, playerID, models.PlayerStatusLoss); err != nil {
			return nil, err
		}
		if err := e.repo.UpdatePlayerStatus(m.ID, playerID, models.PlayerStatusWin); err != nil {
			return nil, err
		}
		if err := e.repo.UpdateMatchStatus(m.ID, models.MatchStatusEnded); err != nil {
			return nil, err
		}
		e.notifyTerminated(m.ID)
	} else {
		if err := e.repo.UpdateOtherPlayersStatus(m.ID, playerID, models.PlayerStatusActive); err != nil {
			return nil, err
		}
		if err := e.repo.UpdatePlayerStatus(m.ID, playerID, models.PlayerStatusInactive); err != nil {
			return nil, err
		}
	}

	return e.queries.GetMatchState(joinCode, playerID)
}

// AbandonMatch removes the player from play. Abandoning a running match
// forfeits it and awards the win to the remaining participant;
// abandoning a match still waiting for an opponent just ends it. On an
// already-terminal match the match record is left untouched. In every
// branch the abandoning player ends up DISMISSED.
func (e *Engine) AbandonMatch(joinCode string, playerID uint) error {
	m, err := e.repo.FindMatchByCode(joinCode)
	if err != nil {
		return err
	}
	if m == nil {
		return ErrMatchNotFound
	}

	unlock := e.locks.Lock(m.ID)
	defer unlock()

	m, err = e.repo.GetMatchInfo(m.ID)
	if err != nil {
		return err
	}
	if m == nil {
		return ErrMatchNotFound
	}

	slot, err := e.repo.GetPlayer(playerID, m.ID)
	if err != nil {
		return err
	}
	if slot == nil {
		return ErrNotParticipant
	}

	switch m.Status {
	case models.MatchStatusInProgress:
		if err := e.repo.UpdateMatchStatus(m.ID, models.MatchStatusForfeit); err != nil {
			return err
		}
		if err := e.repo.UpdateOtherPlayersStatus(m.ID, playerID, models.PlayerStatusWin); err != nil {
			return err
		}
		e.notifyTerminated(m.ID)
	case models.MatchStatusNew:
		if err := e.repo.UpdateMatchStatus(m.ID, models.MatchStatusEnded); err != nil {
			return err
		}
		e.notifyTerminated(m.ID)
	default:
		// Already terminal, leave the match record alone.
	}

	return e.repo.UpdatePlayerStatus(m.ID, playerID, models.PlayerStatusDismissed)
}

func (e *Engine) notifyTerminated(matchID uint) {
	if e.listener == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("termination listener panicked for match %d: %v", matchID, r)
		}
	}()
	e.listener.MatchTerminated(matchID)
}

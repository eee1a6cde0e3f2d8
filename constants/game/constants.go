package game_constants

// Server and supported client versions, reported by the info endpoint.
const ServerVersion = "1.2.0"

var ClientVersions = []string{"0.6.0", "0.7.0"}

// Join codes are short and human-typed, so the space is small on
// purpose; uniqueness is enforced with a retry loop on creation.
const JoinCodeLength = 5

// Maximum number of attempts when minting a join code before the
// creation is aborted. Hitting this means the code space is close to
// exhausted, not that anything is logically wrong.
const MaxJoinCodeAttempts = 50

const MaxPlayersPerMatch = 2

package leaderboarddb

import "errors"

// ErrNotFound is returned when a player has no statistics.
var ErrNotFound = errors.New("leaderboard entry not found")

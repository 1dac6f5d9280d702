package leaderboardservice

import (
	"context"
	"errors"
	"fmt"

	leaderboarddomain "github.com/Black-And-White-Club/belote-bot/app/modules/leaderboard/domain"
	leaderboarddb "github.com/Black-And-White-Club/belote-bot/app/modules/leaderboard/infrastructure/repositories"
	sessionevents "github.com/Black-And-White-Club/belote-bot/app/modules/session/events"
	"github.com/Black-And-White-Club/belote-bot/pkg/attr"
	"github.com/Black-And-White-Club/belote-bot/pkg/results"
	"github.com/uptrace/bun"
)

// RecordMatch credits both teams of a finished match and their players.
func (s *LeaderboardService) RecordMatch(ctx context.Context, match sessionevents.MatchFinishedPayload) (bool, error) {
	result, err := withTelemetry(s, ctx, "RecordMatch", match.SessionID.String(), func(ctx context.Context) (results.OperationResult[bool, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[bool, error], error) {
			return s.recordMatchLogic(ctx, db, match)
		})
	})
	return unwrap(result, err)
}

func (s *LeaderboardService) recordMatchLogic(ctx context.Context, db bun.IDB, match sessionevents.MatchFinishedPayload) (results.OperationResult[bool, error], error) {
	now := s.now()

	fresh, err := s.repo.MarkRecorded(ctx, db, match.SessionID, now)
	if err != nil {
		return results.OperationResult[bool, error]{}, fmt.Errorf("failed to mark match recorded: %w", err)
	}
	if !fresh {
		s.logger.InfoContext(ctx, "Match already recorded, skipping",
			attr.ExtractCorrelationID(ctx),
			attr.String("session_id", match.SessionID.String()),
		)
		return results.SuccessResult[bool, error](false), nil
	}

	for _, outcome := range leaderboarddomain.MatchOutcomes(match.TeamA, match.TeamB, match.BonusMalus) {
		if err := s.repo.ApplyOutcome(ctx, db, outcome, now); err != nil {
			return results.OperationResult[bool, error]{}, fmt.Errorf("failed to apply outcome: %w", err)
		}
	}

	return results.SuccessResult[bool, error](true), nil
}

// Standings returns the ranked teams and players.
func (s *LeaderboardService) Standings(ctx context.Context) (*Standings, error) {
	result, err := withTelemetry(s, ctx, "Standings", "all", func(ctx context.Context) (results.OperationResult[*Standings, error], error) {
		db := s.idb()

		teams, err := s.repo.TeamStandings(ctx, db)
		if err != nil {
			return results.OperationResult[*Standings, error]{}, fmt.Errorf("failed to load team standings: %w", err)
		}
		players, err := s.repo.PlayerStandings(ctx, db)
		if err != nil {
			return results.OperationResult[*Standings, error]{}, fmt.Errorf("failed to load player standings: %w", err)
		}

		teamEntries := make([]leaderboarddomain.Entry, 0, len(teams))
		for _, t := range teams {
			teamEntries = append(teamEntries, t.Entry())
		}
		playerEntries := make([]leaderboarddomain.Entry, 0, len(players))
		for _, p := range players {
			playerEntries = append(playerEntries, p.Entry())
		}

		return results.SuccessResult[*Standings, error](&Standings{
			Teams:   leaderboarddomain.Rank(teamEntries),
			Players: leaderboarddomain.Rank(playerEntries),
		}), nil
	})
	return unwrap(result, err)
}

// MergePlayers folds the statistics of source into target and removes source.
func (s *LeaderboardService) MergePlayers(ctx context.Context, source, target string) (*leaderboarddomain.Entry, error) {
	result, err := withTelemetry(s, ctx, "MergePlayers", source+"->"+target, func(ctx context.Context) (results.OperationResult[*leaderboarddomain.Entry, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[*leaderboarddomain.Entry, error], error) {
			return s.mergePlayersLogic(ctx, db, source, target)
		})
	})
	return unwrap(result, err)
}

func (s *LeaderboardService) mergePlayersLogic(ctx context.Context, db bun.IDB, source, target string) (results.OperationResult[*leaderboarddomain.Entry, error], error) {
	if _, err := leaderboarddomain.Merge(leaderboarddomain.Entry{Name: source}, leaderboarddomain.Entry{Name: target}); err != nil {
		return results.FailureResult[*leaderboarddomain.Entry](err), nil
	}

	from, err := s.repo.GetPlayer(ctx, db, source)
	if err != nil {
		if errors.Is(err, leaderboarddb.ErrNotFound) {
			return results.FailureResult[*leaderboarddomain.Entry](err), nil
		}
		return results.OperationResult[*leaderboarddomain.Entry, error]{}, fmt.Errorf("failed to load %q: %w", source, err)
	}
	into, err := s.repo.GetPlayer(ctx, db, target)
	if err != nil {
		if errors.Is(err, leaderboarddb.ErrNotFound) {
			return results.FailureResult[*leaderboarddomain.Entry](err), nil
		}
		return results.OperationResult[*leaderboarddomain.Entry, error]{}, fmt.Errorf("failed to load %q: %w", target, err)
	}

	merged, err := leaderboarddomain.Merge(from.Entry(), into.Entry())
	if err != nil {
		return results.FailureResult[*leaderboarddomain.Entry](err), nil
	}

	into.Victories = merged.Victories
	into.GamesPlayed = merged.GamesPlayed
	into.Points = merged.Points
	into.UpdatedAt = s.now()
	if err := s.repo.SavePlayer(ctx, db, into); err != nil {
		return results.OperationResult[*leaderboarddomain.Entry, error]{}, fmt.Errorf("failed to save %q: %w", target, err)
	}
	if err := s.repo.DeletePlayer(ctx, db, source); err != nil {
		return results.OperationResult[*leaderboarddomain.Entry, error]{}, fmt.Errorf("failed to delete %q: %w", source, err)
	}

	return results.SuccessResult[*leaderboarddomain.Entry, error](&merged), nil
}

// Reset clears all statistics.
func (s *LeaderboardService) Reset(ctx context.Context) error {
	_, err := withTelemetry(s, ctx, "Reset", "all", func(ctx context.Context) (results.OperationResult[struct{}, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[struct{}, error], error) {
			if err := s.repo.Reset(ctx, db); err != nil {
				return results.OperationResult[struct{}, error]{}, fmt.Errorf("failed to reset leaderboard: %w", err)
			}
			return results.SuccessResult[struct{}, error](struct{}{}), nil
		})
	})
	return err
}

// idb returns the database handle for read-only queries.
func (s *LeaderboardService) idb() bun.IDB {
	if s.db == nil {
		return nil
	}
	return s.db
}

// IsValidationError reports whether err is a rejected request.
func IsValidationError(err error) bool {
	return errors.Is(err, leaderboarddomain.ErrSamePlayer) || errors.Is(err, leaderboarddomain.ErrEmptyName)
}

package sessiondb

import (
	"testing"

	scoringdomain "github.com/Black-And-White-Club/belote-bot/app/modules/scoring/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

func TestGameSession_StateRoundTrip(t *testing.T) {
	m, err := scoringdomain.NewMatch(
		scoringdomain.NewTeam("alice", "bob"),
		scoringdomain.NewTeam("carol", "dave"),
		1000, 2,
	)
	if err != nil {
		t.Fatalf("NewMatch: %v", err)
	}
	m, _, err = scoringdomain.AddRound(m,
		scoringdomain.RoundInput{Contract: scoringdomain.Capot, Achieved: scoringdomain.FullHand},
		scoringdomain.RoundInput{})
	if err != nil {
		t.Fatalf("AddRound: %v", err)
	}

	row := &GameSession{SessionID: uuid.New()}
	row.Apply(m)

	if row.TeamATotal != 500 || row.TeamBTotal != 0 || row.IsFinished || row.Winner != "" {
		t.Fatalf("unexpected derived columns: %+v", row)
	}
	if diff := cmp.Diff(m, row.State()); diff != "" {
		t.Fatalf("state round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestGameSession_ApplyEmptyMatch(t *testing.T) {
	m, err := scoringdomain.NewMatch(scoringdomain.Team{Name: "a / b"}, scoringdomain.Team{Name: "c/d"}, 2000, 0)
	if err != nil {
		t.Fatalf("NewMatch: %v", err)
	}

	row := &GameSession{}
	row.Apply(m)

	if row.Rounds == nil {
		t.Fatalf("rounds must be stored as an empty array")
	}
	if len(row.TeamAPlayers) != 0 {
		t.Fatalf("players column = %v, want empty", row.TeamAPlayers)
	}
	if got := row.State().TeamA.Members(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("members = %v", got)
	}
}

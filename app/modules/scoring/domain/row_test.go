package scoringdomain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuildRow_FirstRound(t *testing.T) {
	got := BuildRow(nil, 1, 0, RoundInput{Contract: 90, Achieved: 130, Belote: 20}, RoundInput{Achieved: 30})

	want := RoundRecord{
		Number: 1,
		Dealer: 0,
		TeamA: TeamRow{
			Contract:          90,
			Achieved:          130,
			Belote:            20,
			Gap:               40,
			TheoreticalGap:    40,
			TheoreticalPoints: 150,
			Points:            240,
			Total:             240,
		},
		TeamB: TeamRow{
			Achieved: 30,
			Points:   30,
			Total:    30,
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("BuildRow mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildRow_CarriesCumulativeValues(t *testing.T) {
	first := BuildRow(nil, 1, 0, RoundInput{Contract: 90, Achieved: 130}, RoundInput{Achieved: 30})
	second := BuildRow([]RoundRecord{first}, 2, 1, RoundInput{Achieved: 40}, RoundInput{Contract: 100, Achieved: 120})

	if second.TeamA.TheoreticalGap != first.TeamA.TheoreticalGap {
		t.Errorf("defender gap advanced: %d -> %d", first.TeamA.TheoreticalGap, second.TeamA.TheoreticalGap)
	}
	if second.TeamB.TheoreticalGap != 20 {
		t.Errorf("taker cumulative gap = %d, want 20", second.TeamB.TheoreticalGap)
	}
	if second.TeamA.Total != first.TeamA.Total+second.TeamA.Points {
		t.Errorf("team A total = %d, want %d", second.TeamA.Total, first.TeamA.Total+second.TeamA.Points)
	}
	if second.TeamB.Total != 30+220 {
		t.Errorf("team B total = %d, want 250", second.TeamB.Total)
	}
}

func TestBuildRow_Idempotent(t *testing.T) {
	history := []RoundRecord{
		BuildRow(nil, 1, 0, RoundInput{Contract: 80, Achieved: 90}, RoundInput{Achieved: 70}),
	}
	a := RoundInput{Achieved: 20, Remark: RemarkDouble}
	b := RoundInput{Contract: 140, Achieved: 140, Belote: 20}

	first := BuildRow(history, 2, 1, a, b)
	second := BuildRow(history, 2, 1, a, b)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("BuildRow not idempotent (-first +second):\n%s", diff)
	}
	if len(history) != 1 {
		t.Fatalf("history was modified, len = %d", len(history))
	}
}

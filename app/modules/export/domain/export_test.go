package exportdomain

import (
	"strings"
	"testing"
	"time"

	scoringdomain "github.com/Black-And-White-Club/belote-bot/app/modules/scoring/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

func TestFilename(t *testing.T) {
	day := time.Date(2026, 3, 14, 21, 30, 0, 0, time.UTC)

	tests := []struct {
		name         string
		teamA, teamB string
		want         string
	}{
		{"plain", "Les Bleus", "Les Rouges", "Belote_les-bleus_vs_les-rouges_2026-03-14.xlsx"},
		{"accents", "Élodie/René", "Zoé & Loïc", "Belote_elodie-rene_vs_zoe-and-loic_2026-03-14.xlsx"},
		{"blank falls back", "", "???", "Belote_equipe-a_vs_equipe-b_2026-03-14.xlsx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Filename(tt.teamA, tt.teamB, day); got != tt.want {
				t.Errorf("Filename() = %q, want %q", got, tt.want)
			}
		})
	}

	if got := ChartFilename("A", "B", day); got != "Belote_a_vs_b_2026-03-14.png" {
		t.Errorf("ChartFilename() = %q", got)
	}
}

func TestObjectKey(t *testing.T) {
	id := uuid.MustParse("6f1c1d2e-8a57-4c1e-9f6b-1d2f3a4b5c6d")
	want := "exports/6f1c1d2e-8a57-4c1e-9f6b-1d2f3a4b5c6d/match.xlsx"
	if got := ObjectKey(id, "match.xlsx"); got != want {
		t.Errorf("ObjectKey() = %q, want %q", got, want)
	}
}

func TestSheetName(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		existing []string
		want     string
	}{
		{"kept", "Les Bleus", nil, "Les Bleus"},
		{"forbidden characters", "Alice/Bob", nil, "Alice-Bob"},
		{"truncated", strings.Repeat("x", 40), nil, strings.Repeat("x", 31)},
		{"empty", "", nil, "Équipe"},
		{"duplicate", "Alice-Bob", []string{"Alice-Bob"}, "Alice-Bob (2)"},
		{"duplicate ignoring case", "alice-bob", []string{"Alice-Bob"}, "alice-bob (2)"},
		{"summary clash", SummarySheet, nil, SummarySheet + " (2)"},
		{"duplicate truncated", strings.Repeat("y", 35), []string{strings.Repeat("y", 31)}, strings.Repeat("y", 27) + " (2)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SheetName(tt.in, tt.existing...); got != tt.want {
				t.Errorf("SheetName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTeamRows(t *testing.T) {
	rounds := []scoringdomain.RoundRecord{
		{
			Number: 1,
			TeamA:  scoringdomain.TeamRow{Contract: 100, Achieved: 120, Belote: 20, Gap: 20, TheoreticalGap: 40, Points: 200, Total: 200},
			TeamB:  scoringdomain.TeamRow{Achieved: 40, Points: 40, Total: 40},
		},
		{
			Number: 2,
			TeamA:  scoringdomain.TeamRow{Achieved: 0, Points: 0, Total: 200},
			TeamB: scoringdomain.TeamRow{
				Contract: scoringdomain.Capot, Achieved: scoringdomain.FullHand, Label: scoringdomain.LabelCapot,
				Remark: scoringdomain.RemarkDouble, Points: 1000, Total: 1040,
			},
		},
	}

	wantA := [][]any{
		{1, "100", "", 120, 20, 40, 20, "", 200, 200},
		{2, "", "", 0, 0, 0, 0, "", 0, 200},
	}
	if diff := cmp.Diff(wantA, TeamRows(rounds, scoringdomain.SideA)); diff != "" {
		t.Errorf("TeamRows(A) mismatch (-want +got):\n%s", diff)
	}

	wantB := [][]any{
		{1, "", "", 40, 0, 0, 0, "", 40, 40},
		{2, "Capot", "", "Capot", 0, 0, 0, "Coinche", 1000, 1040},
	}
	if diff := cmp.Diff(wantB, TeamRows(rounds, scoringdomain.SideB)); diff != "" {
		t.Errorf("TeamRows(B) mismatch (-want +got):\n%s", diff)
	}
}

func TestTeamRowsMarksFailure(t *testing.T) {
	rounds := []scoringdomain.RoundRecord{{
		Number: 1,
		TeamA:  scoringdomain.TeamRow{Contract: 120, Achieved: 90, Failed: true, Gap: 30, Total: 0},
	}}
	row := TeamRows(rounds, scoringdomain.SideA)[0]
	if row[2] != "X" {
		t.Errorf("failure column = %v, want X", row[2])
	}
}

func TestLeader(t *testing.T) {
	if got := Leader(scoringdomain.SideA, 100, 2100); got != scoringdomain.SideA {
		t.Errorf("declared winner ignored: %s", got)
	}
	if got := Leader(scoringdomain.SideNone, 900, 400); got != scoringdomain.SideA {
		t.Errorf("Leader() = %s, want A", got)
	}
	if got := Leader(scoringdomain.SideNone, 400, 400); got != scoringdomain.SideB {
		t.Errorf("tie should go to B, got %s", got)
	}
}

func TestSeries(t *testing.T) {
	rounds := []scoringdomain.RoundRecord{
		{Number: 1, TeamA: scoringdomain.TeamRow{Total: 160}, TeamB: scoringdomain.TeamRow{Total: 0}},
		{Number: 2, TeamA: scoringdomain.TeamRow{Total: 160}, TeamB: scoringdomain.TeamRow{Total: 250}},
	}
	xs, a, b := Series(rounds)
	if diff := cmp.Diff([]float64{0, 1, 2}, xs); diff != "" {
		t.Errorf("xs (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{0, 160, 160}, a); diff != "" {
		t.Errorf("team A (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{0, 0, 250}, b); diff != "" {
		t.Errorf("team B (-want +got):\n%s", diff)
	}
}

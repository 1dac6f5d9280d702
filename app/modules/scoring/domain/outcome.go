package scoringdomain

import (
	"fmt"
	"strings"
)

// Ranking points of a finished match.
const (
	WinPoints        = 6
	MinWinnerPoints  = 2
	FailureBonusAt   = 2
	FailureBonus     = 1
	WorthlessPenalty = 2
)

// TeamTally is one team's share of a bonus/malus evaluation.
type TeamTally struct {
	Failures       int `json:"failures"`
	GroceryAlerts  int `json:"grocery_alerts"`
	WorthlessCount int `json:"worthless_count"`
	Bonus          int `json:"bonus"`
	Malus          int `json:"malus"`
	Final          int `json:"final"`
}

// BonusMalus converts a finished match into leaderboard points.
type BonusMalus struct {
	TeamA  TeamTally `json:"team_a"`
	TeamB  TeamTally `json:"team_b"`
	Winner Side      `json:"winner"`
}

// Team returns the tally of the given side.
func (b BonusMalus) Team(side Side) TeamTally {
	if side == SideB {
		return b.TeamB
	}
	return b.TeamA
}

// EvaluateBonusMalus scans the history once and applies the bonus/malus rules.
// A tie yields bonus-only scores and SideNone as winner.
func EvaluateBonusMalus(history []RoundRecord, totalA, totalB int) BonusMalus {
	var a, b TeamTally
	for _, record := range history {
		tallyRow(&a, record, SideA)
		tallyRow(&b, record, SideB)
	}

	if b.Failures >= FailureBonusAt {
		a.Bonus = FailureBonus
	}
	if a.Failures >= FailureBonusAt {
		b.Bonus = FailureBonus
	}

	result := BonusMalus{TeamA: a, TeamB: b}
	switch {
	case totalA > totalB:
		result.Winner = SideA
		result.TeamA = settleWinner(a)
		result.TeamB.Final = b.Bonus
	case totalB > totalA:
		result.Winner = SideB
		result.TeamB = settleWinner(b)
		result.TeamA.Final = a.Bonus
	default:
		result.TeamA.Final = a.Bonus
		result.TeamB.Final = b.Bonus
	}
	return result
}

func tallyRow(t *TeamTally, record RoundRecord, side Side) {
	row := record.Team(side)
	if row.Failed {
		t.Failures++
	}
	if row.Contract <= NoContract {
		return
	}
	alert := ClassifyRowAlert(record, side)
	if alert.IsGrocery() {
		t.GroceryAlerts++
	}
	if alert == AlertWorthless {
		t.WorthlessCount++
	}
}

func settleWinner(t TeamTally) TeamTally {
	t.Malus = t.GroceryAlerts/2 + WorthlessPenalty*t.WorthlessCount
	t.Final = max(MinWinnerPoints, WinPoints+t.Bonus-t.Malus)
	return t
}

// FormatBreakdown renders the points detail shown at the end of a match.
func FormatBreakdown(result BonusMalus, teamAName, teamBName string) string {
	var sb strings.Builder

	if result.Winner == SideNone {
		sb.WriteString("Match nul\n")
		fmt.Fprintf(&sb, "  %s : %d points\n", teamAName, result.TeamA.Final)
		fmt.Fprintf(&sb, "  %s : %d points\n", teamBName, result.TeamB.Final)
		return sb.String()
	}

	names := map[Side]string{SideA: teamAName, SideB: teamBName}
	winner, loser := result.Winner, result.Winner.Other()
	w, l := result.Team(winner), result.Team(loser)

	sb.WriteString("Détail des Points\n\n")
	fmt.Fprintf(&sb, "%s (Gagnant)\n", names[winner])
	fmt.Fprintf(&sb, "  Points de base : %d\n", WinPoints)
	if w.Bonus > 0 {
		fmt.Fprintf(&sb, "  Bonus chutes adverses (%d ≥ %d) : +%d\n", l.Failures, FailureBonusAt, w.Bonus)
	}
	if grocery := w.GroceryAlerts / 2; grocery > 0 {
		fmt.Fprintf(&sb, "  Malus épicerie (%d alarmes ÷ 2) : -%d\n", w.GroceryAlerts, grocery)
	}
	if w.WorthlessCount > 0 {
		fmt.Fprintf(&sb, "  Malus \"vous êtes nuls\" (%d × %d) : -%d\n", w.WorthlessCount, WorthlessPenalty, w.WorthlessCount*WorthlessPenalty)
	}
	fmt.Fprintf(&sb, "  Total : %d points\n\n", w.Final)

	fmt.Fprintf(&sb, "%s (Perdant)\n", names[loser])
	sb.WriteString("  Points de base : 0\n")
	if l.Bonus > 0 {
		fmt.Fprintf(&sb, "  Bonus chutes adverses (%d ≥ %d) : +%d\n", w.Failures, FailureBonusAt, l.Bonus)
	}
	fmt.Fprintf(&sb, "  Total : %d points\n", l.Final)

	return sb.String()
}

// Package exportdomain lays out exported match files.
package exportdomain

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	scoringdomain "github.com/Black-And-White-Club/belote-bot/app/modules/scoring/domain"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// ErrNothingToExport is returned for a session without rounds.
var ErrNothingToExport = errors.New("no scores to export")

// SummarySheet is the name of the totals sheet.
const SummarySheet = "Résumé"

// Columns heads every team sheet.
var Columns = []string{
	"Mène", "Contrat", "Chute", "Réalisé", "Écart", "Écarts Théo",
	"Belote", "Remarques", "Points", "Total",
}

// Filename names the workbook of a match played on day.
func Filename(teamA, teamB string, day time.Time) string {
	return fmt.Sprintf("Belote_%s_vs_%s_%s.xlsx", slugOrTeam(teamA, "a"), slugOrTeam(teamB, "b"), day.Format(time.DateOnly))
}

// ChartFilename names the chart that goes with Filename.
func ChartFilename(teamA, teamB string, day time.Time) string {
	return fmt.Sprintf("Belote_%s_vs_%s_%s.png", slugOrTeam(teamA, "a"), slugOrTeam(teamB, "b"), day.Format(time.DateOnly))
}

func slugOrTeam(name, side string) string {
	if s := slug.Make(name); s != "" {
		return s
	}
	return "equipe-" + side
}

// ObjectKey is where a session's file lives in object storage.
func ObjectKey(sessionID uuid.UUID, filename string) string {
	return "exports/" + sessionID.String() + "/" + filename
}

// SheetName makes a team name usable as a worksheet name: at most 31
// characters, none of : \ / ? * [ ], and distinct from the summary sheet and
// existing.
func SheetName(name string, existing ...string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			r = '-'
		}
		out = append(out, r)
	}
	if len(out) > 31 {
		out = out[:31]
	}
	candidate := string(out)
	if candidate == "" {
		candidate = "Équipe"
	}

	for i := 2; taken(existing, candidate); i++ {
		suffix := " (" + strconv.Itoa(i) + ")"
		base := out
		if keep := 31 - len(suffix); len(base) > keep {
			base = base[:keep]
		}
		candidate = string(base) + suffix
	}
	return candidate
}

// taken compares the way spreadsheet applications do, ignoring case.
func taken(existing []string, name string) bool {
	if strings.EqualFold(name, SummarySheet) {
		return true
	}
	return slices.ContainsFunc(existing, func(s string) bool { return strings.EqualFold(s, name) })
}

// TeamRows renders the history of one side as sheet rows, in Columns order.
func TeamRows(rounds []scoringdomain.RoundRecord, side scoringdomain.Side) [][]any {
	rows := make([][]any, 0, len(rounds))
	for _, record := range rounds {
		row := record.Team(side)
		rows = append(rows, []any{
			record.Number,
			row.Contract.Label(),
			failedMark(row.Failed),
			achieved(row),
			row.Gap,
			row.TheoreticalGap,
			row.Belote,
			row.Remark.Display(),
			row.Points,
			row.Total,
		})
	}
	return rows
}

func failedMark(failed bool) string {
	if failed {
		return "X"
	}
	return ""
}

func achieved(row scoringdomain.TeamRow) any {
	switch row.Label {
	case scoringdomain.LabelCapot:
		return "Capot"
	case scoringdomain.LabelGenerale:
		return "Générale"
	case scoringdomain.LabelNotCapot:
		return "Pas capot"
	}
	return row.Achieved
}

// Leader is the side shown as winner in the summary: the declared winner
// when there is one, else the higher total, else B.
func Leader(winner scoringdomain.Side, totalA, totalB int) scoringdomain.Side {
	if winner != scoringdomain.SideNone {
		return winner
	}
	if totalA > totalB {
		return scoringdomain.SideA
	}
	return scoringdomain.SideB
}

// Series is the running total of each side after every round, starting at 0.
func Series(rounds []scoringdomain.RoundRecord) (xs, totalsA, totalsB []float64) {
	xs = make([]float64, 0, len(rounds)+1)
	totalsA = make([]float64, 0, len(rounds)+1)
	totalsB = make([]float64, 0, len(rounds)+1)

	xs = append(xs, 0)
	totalsA = append(totalsA, 0)
	totalsB = append(totalsB, 0)
	for i, record := range rounds {
		xs = append(xs, float64(i+1))
		totalsA = append(totalsA, float64(record.TeamA.Total))
		totalsB = append(totalsB, float64(record.TeamB.Total))
	}
	return xs, totalsA, totalsB
}
